package encryptor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncryptor(t *testing.T) {
	t.Run("seal -> open", func(t *testing.T) {
		so := require.New(t)
		e := NewEncryptor("secret")

		sealed, err := e.Seal([]byte("hello"))
		so.NoError(err)
		so.NotEqual("hello", string(sealed))

		opened, err := e.Open(sealed)
		so.NoError(err)
		so.Equal("hello", string(opened))
	})

	t.Run("wrong secret", func(t *testing.T) {
		so := require.New(t)

		sealed, err := NewEncryptor("secret").Seal([]byte("hello"))
		so.NoError(err)

		_, err = NewEncryptor("other").Open(sealed)
		so.Error(err)
	})

	t.Run("not base64", func(t *testing.T) {
		_, err := NewEncryptor("secret").Open([]byte("%%%"))
		require.Error(t, err)
	})
}
