package encryptor

import (
	"crypto/sha256"
	"encoding/base64"

	"github.com/gtank/cryptopasta"
	"github.com/pkg/errors"
)

type Encryptor struct {
	secret *[32]byte
}

// NewEncryptor derives a 256-bit key from secretString.
func NewEncryptor(secretString string) *Encryptor {
	secret := sha256.Sum256([]byte(secretString))
	return &Encryptor{secret: &secret}
}

// Seal encrypts plaintext and returns it base64 encoded.
func (e *Encryptor) Seal(plaintext []byte) ([]byte, error) {
	encryptedBytes, err := cryptopasta.Encrypt(plaintext, e.secret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encrypt value")
	}
	out := make([]byte, base64.StdEncoding.EncodedLen(len(encryptedBytes)))
	base64.StdEncoding.Encode(out, encryptedBytes)
	return out, nil
}

func (e *Encryptor) Open(sealed []byte) ([]byte, error) {
	decodedBytes := make([]byte, base64.StdEncoding.DecodedLen(len(sealed)))
	n, err := base64.StdEncoding.Decode(decodedBytes, sealed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode value")
	}
	decryptedBytes, err := cryptopasta.Decrypt(decodedBytes[:n], e.secret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decrypt value")
	}
	return decryptedBytes, nil
}
