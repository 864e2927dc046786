package keymaker

import (
	"errors"

	"golang.org/x/crypto/scrypt"
)

// -----------------------------------------------------------------------------

const (
	defaultScryptN = 32768
	defaultScryptR = 8
	defaultScryptP = 1
)

// -----------------------------------------------------------------------------

// Scrypt derives keys from a password using scrypt.
type Scrypt struct {
	password  []byte
	salt      []byte
	n         int
	r         int
	p         int
	keyLength int
}

// ScryptOptions configure the scrypt key maker.
type ScryptOptions struct {
	Password []byte
	Salt     []byte

	// N is the CPU/memory cost parameter. Must be a power of two. Defaults to 32768.
	N int

	// R defaults to 8.
	R int

	// P defaults to 1.
	P int

	// KeyLength is the desired key length in bytes. Defaults to 32.
	KeyLength int
}

// -----------------------------------------------------------------------------

// NewScrypt creates a scrypt key maker.
func NewScrypt(opts ScryptOptions) *Scrypt {
	km := Scrypt{
		password:  opts.Password,
		salt:      opts.Salt,
		n:         opts.N,
		r:         opts.R,
		p:         opts.P,
		keyLength: opts.KeyLength,
	}
	if km.n <= 0 {
		km.n = defaultScryptN
	}
	if km.r <= 0 {
		km.r = defaultScryptR
	}
	if km.p <= 0 {
		km.p = defaultScryptP
	}
	if km.keyLength <= 0 {
		km.keyLength = defaultKeyLength
	}

	// Done
	return &km
}

// KeyLength returns the desired key length in bytes.
func (km *Scrypt) KeyLength() int {
	return km.keyLength
}

// DeriveKey derives a key of exactly the given length in bytes.
func (km *Scrypt) DeriveKey(length int) ([]byte, error) {
	if length <= 0 {
		return nil, errors.New("invalid key length")
	}
	return scrypt.Key(km.password, km.salt, km.n, km.r, km.p, length)
}
