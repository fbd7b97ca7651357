package bootstrap

import (
	"github.com/pechorka/tokenkeeper/internal/config"
	"github.com/pechorka/tokenkeeper/internal/session"
	"github.com/pechorka/tokenkeeper/internal/storage"
	"github.com/pechorka/tokenkeeper/internal/storage/sealed"
	"github.com/pechorka/tokenkeeper/pkg/encryptor"
	"github.com/pkg/errors"
)

// Tokens opens the bolt database described by cfg and returns the token
// repository on top of it together with the underlying storage, which the
// caller must close.
func Tokens(cfg config.StorageConfig) (*session.Repository, *storage.Storage, error) {
	var (
		db  *storage.Storage
		err error
	)
	if cfg.Debug {
		db, err = storage.NewTempStorage()
	} else {
		db, err = storage.NewStorage(cfg.Path)
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open token storage")
	}

	var kv session.Store = db
	if cfg.Secret != "" {
		kv = sealed.New(db, encryptor.NewEncryptor(cfg.Secret))
	}
	return session.NewRepository(kv, IsNotFound), db, nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
