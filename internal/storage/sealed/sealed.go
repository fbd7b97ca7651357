// Package sealed encrypts values before they reach an underlying key-value store.
package sealed

import (
	"github.com/pkg/errors"
)

// ErrCorrupt is returned by Get when a stored value cannot be decrypted.
var ErrCorrupt = errors.New("stored value is corrupt")

type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

type Cipher interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

type Store struct {
	kv     KV
	cipher Cipher
}

func New(kv KV, cipher Cipher) *Store {
	return &Store{kv: kv, cipher: cipher}
}

func (s *Store) Get(key string) ([]byte, error) {
	v, err := s.kv.Get(key)
	if err != nil {
		return nil, err
	}
	plain, err := s.cipher.Open(v)
	if err != nil {
		return nil, errors.Wrapf(ErrCorrupt, "open %q: %v", key, err)
	}
	return plain, nil
}

func (s *Store) Set(key string, value []byte) error {
	sealed, err := s.cipher.Seal(value)
	if err != nil {
		return err
	}
	return s.kv.Set(key, sealed)
}
