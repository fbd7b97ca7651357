// Package config loads tokenkeeper settings from a YAML file with
// environment overrides.
//
// Sources, highest priority first:
//  1. environment variables;
//  2. the file passed explicitly or named by TOKENKEEPER_CONFIG;
//  3. ./config.yaml when present;
//  4. defaults.
package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
)

const (
	defaultPath = "config.yaml"
	pathEnv     = "TOKENKEEPER_CONFIG"
)

type Config struct {
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	I18n    I18nConfig    `yaml:"i18n"`
	Log     LogConfig     `yaml:"log"`
	Stub    StubConfig    `yaml:"stub"`
}

type APIConfig struct {
	BaseURL        string        `yaml:"base_url"        env:"TOKENKEEPER_API_URL"         env-default:"http://localhost:8080"`
	HttpTimeout    time.Duration `yaml:"http_timeout"    env:"TOKENKEEPER_HTTP_TIMEOUT"`
	RefreshTimeout time.Duration `yaml:"refresh_timeout" env:"TOKENKEEPER_REFRESH_TIMEOUT" env-default:"10s"`
}

type StorageConfig struct {
	Path string `yaml:"path" env:"TOKENKEEPER_DB_PATH" env-default:"./tokens.db"`
	// Secret enables at-rest encryption of stored values when set.
	Secret string `yaml:"secret" env:"TOKENKEEPER_SECRET"`
	// Debug keeps everything in a temporary database removed on exit.
	Debug bool `yaml:"debug" env:"TOKENKEEPER_DEBUG"`
}

type I18nConfig struct {
	Path string `yaml:"path" env:"TOKENKEEPER_I18N_PATH"`
	Lang string `yaml:"lang" env:"TOKENKEEPER_LANG" env-default:"ko"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"TOKENKEEPER_LOG_LEVEL" env-default:"info"`
	JSON  bool   `yaml:"json"  env:"TOKENKEEPER_LOG_JSON"`
}

type StubConfig struct {
	Addr  string            `yaml:"addr"  env:"TOKENKEEPER_STUB_ADDR"  env-default:":8080"`
	Users map[string]string `yaml:"users" env:"TOKENKEEPER_STUB_USERS"`
}

// Load reads path, falling back to TOKENKEEPER_CONFIG, ./config.yaml and
// finally to environment only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv(pathEnv)
	}
	if path == "" {
		if _, err := os.Stat(defaultPath); err == nil {
			path = defaultPath
		}
	}

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, errors.Wrap(err, "failed to read env")
		}
		return &cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "config file %q", path)
	}
	// ReadConfig overlays the environment on top of the file
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	return &cfg, nil
}
