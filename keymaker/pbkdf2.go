// Package keymaker provides KeyMaker implementations that turn a password (or a
// reassembled secret) into raw key bytes of a requested length.
package keymaker

import (
	"crypto/sha256"
	"errors"
	"hash"

	"golang.org/x/crypto/pbkdf2"
)

// -----------------------------------------------------------------------------

const (
	defaultKeyLength        = 32
	defaultPBKDF2Iterations = 600000
)

// -----------------------------------------------------------------------------

// PBKDF2 derives keys from a password using PBKDF2 (RFC 8018), the canonical
// PBES2 key derivation function.
type PBKDF2 struct {
	password   []byte
	salt       []byte
	iterations int
	hash       func() hash.Hash
	keyLength  int
}

// PBKDF2Options configure the PBKDF2 key maker.
type PBKDF2Options struct {
	Password []byte
	Salt     []byte

	// Iterations defaults to 600000.
	Iterations int

	// Hash defaults to sha256.New.
	Hash func() hash.Hash

	// KeyLength is the desired key length in bytes. Defaults to 32.
	KeyLength int
}

// -----------------------------------------------------------------------------

// NewPBKDF2 creates a PBKDF2 key maker.
func NewPBKDF2(opts PBKDF2Options) *PBKDF2 {
	km := PBKDF2{
		password:   opts.Password,
		salt:       opts.Salt,
		iterations: opts.Iterations,
		hash:       opts.Hash,
		keyLength:  opts.KeyLength,
	}
	if km.iterations <= 0 {
		km.iterations = defaultPBKDF2Iterations
	}
	if km.hash == nil {
		km.hash = sha256.New
	}
	if km.keyLength <= 0 {
		km.keyLength = defaultKeyLength
	}

	// Done
	return &km
}

// KeyLength returns the desired key length in bytes.
func (km *PBKDF2) KeyLength() int {
	return km.keyLength
}

// DeriveKey derives a key of exactly the given length in bytes. The same
// password, salt and parameters always produce the same key.
func (km *PBKDF2) DeriveKey(length int) ([]byte, error) {
	if length <= 0 {
		return nil, errors.New("invalid key length")
	}
	return pbkdf2.Key(km.password, km.salt, km.iterations, length, km.hash), nil
}
