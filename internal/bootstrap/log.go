package bootstrap

import (
	"os"

	"github.com/pechorka/tokenkeeper/internal/config"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func Logger(cfg config.LogConfig) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if cfg.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}
	logger.SetLevel(level)
	return logger, nil
}
