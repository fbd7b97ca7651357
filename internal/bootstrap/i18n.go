package bootstrap

import (
	"io"

	"github.com/pechorka/tokenkeeper/internal/config"
	"github.com/pechorka/tokenkeeper/internal/service"
	"github.com/pechorka/tokenkeeper/pkg/i18n"
	"github.com/pechorka/tokenkeeper/pkg/watcher"
	"github.com/sirupsen/logrus"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Messages builds the message catalog. When a catalog file is configured it
// is loaded and watched for changes until the returned closer is closed.
func Messages(cfg config.I18nConfig, log logrus.FieldLogger) (*i18n.Catalog, io.Closer, error) {
	catalog, err := i18n.New(service.DefaultMessages, service.DefaultLang)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Path == "" {
		return catalog, nopCloser{}, nil
	}
	w, err := watcher.LoadAndWatch(cfg.Path, catalog, log)
	if err != nil {
		return nil, nil, err
	}
	return catalog, w, nil
}
