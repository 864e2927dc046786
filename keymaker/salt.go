package keymaker

import (
	"crypto/rand"
	"errors"
	"io"
)

// -----------------------------------------------------------------------------

// GenerateSalt returns size cryptographically secure random bytes read from rg.
// If rg is nil, crypto/rand.Reader is used.
func GenerateSalt(rg io.Reader, size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.New("invalid salt size")
	}
	if rg == nil {
		rg = rand.Reader
	}

	salt := make([]byte, size)
	n, err := rg.Read(salt)
	if err != nil || n != size {
		return nil, errors.New("unable to generate salt")
	}

	// Done
	return salt, nil
}
