package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var (
	ErrNotFound = errors.New("not found")
)

var bktKV = []byte("kv")

// Storage is a wrapper around bolt.DB
type Storage struct {
	db        *bolt.DB
	closeFunc func() error
}

// NewStorage creates a new storage
func NewStorage(path string) (*Storage, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open bolt db")
	}
	return &Storage{
		db:        db,
		closeFunc: db.Close,
	}, nil
}

// NewTempStorage creates a storage in a throwaway file that is removed on Close.
func NewTempStorage() (*Storage, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("tokenkeeper-%s.db", uuid.New().String()))
	storage, err := NewStorage(path)
	if err != nil {
		return nil, err
	}
	originalCloseFunc := storage.closeFunc
	storage.closeFunc = func() error {
		if err := originalCloseFunc(); err != nil {
			return err
		}
		return os.Remove(path)
	}
	return storage, nil
}

// Close closes the storage
func (s *Storage) Close() error {
	return s.closeFunc()
}

// Get returns a copy of the value stored under key or ErrNotFound.
func (s *Storage) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bktKV)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		// bolt values are only valid inside the transaction
		value = append([]byte(nil), v...)
		return nil
	})
	return value, err
}

// Set stores value under key, replacing whatever was there.
func (s *Storage) Set(key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bktKV)
		if err != nil {
			return err
		}
		if err = b.Put([]byte(key), value); err != nil {
			return errors.Wrapf(err, "failed to put %q", key)
		}
		return nil
	})
}

func (s *Storage) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bktKV)
		if b == nil {
			return ErrNotFound
		}
		if b.Get([]byte(key)) == nil {
			return ErrNotFound
		}
		if err := b.Delete([]byte(key)); err != nil {
			return errors.Wrapf(err, "failed to delete %q", key)
		}
		return nil
	})
}
