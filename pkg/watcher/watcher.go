package watcher

import (
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Loader interface {
	Load(path string) error
}

type Watcher struct {
	stop chan struct{}
	done chan error
}

// LoadAndWatch loads path once and reloads it whenever the file is written.
// Reload failures are logged and the previously loaded contents stay in use.
func LoadAndWatch(path string, loader Loader, log logrus.FieldLogger) (*Watcher, error) {
	err := loader.Load(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load file")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create watcher")
	}
	err = watcher.Add(path)
	if err != nil {
		watcher.Close()
		return nil, errors.Wrap(err, "failed to add file to watcher")
	}
	log = log.WithField("path", path)
	stop := make(chan struct{})
	done := make(chan error)
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					if err := loader.Load(path); err != nil {
						log.WithError(err).Warn("failed to reload file")
						continue
					}
					log.Debug("file reloaded")
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("failed to watch file")
			case <-stop:
				done <- watcher.Close()
				return
			}
		}
	}()
	return &Watcher{stop: stop, done: done}, nil
}

func (w *Watcher) Close() error {
	close(w.stop)
	return <-w.done
}
