package keymaker

import (
	"crypto/sha256"
	"errors"
	"io"

	"github.com/mxmauro/shamir"
	"golang.org/x/crypto/hkdf"

	"github.com/qryptic/qryptic/util"
)

// -----------------------------------------------------------------------------

// ShareSet reassembles a secret previously split with SplitSecret and stretches
// it to the requested key length with HKDF. Any combination of at least
// threshold shares recreates the same key.
type ShareSet struct {
	shares    [][]byte
	salt      []byte
	keyLength int
}

// -----------------------------------------------------------------------------

// NewShareSet creates a key maker from the given shares. The salt binds the
// derived key to a context and may be nil.
func NewShareSet(shares [][]byte, salt []byte, keyLength int) *ShareSet {
	if keyLength <= 0 {
		keyLength = defaultKeyLength
	}
	return &ShareSet{
		shares:    shares,
		salt:      salt,
		keyLength: keyLength,
	}
}

// SplitSecret splits the given secret into the given amount of shares so that
// any threshold of them can reassemble it.
func SplitSecret(secret []byte, shares int, threshold int) ([][]byte, error) {
	if shares < 2 || shares > 255 || threshold < 2 || threshold > shares {
		return nil, errors.New("invalid shares or threshold parameter")
	}
	return shamir.Split(secret, shares, threshold)
}

// -----------------------------------------------------------------------------

// KeyLength returns the desired key length in bytes.
func (km *ShareSet) KeyLength() int {
	return km.keyLength
}

// DeriveKey reassembles the secret and derives a key of exactly the given
// length in bytes. The reassembled secret is zeroed before returning.
func (km *ShareSet) DeriveKey(length int) ([]byte, error) {
	if length <= 0 {
		return nil, errors.New("invalid key length")
	}

	secret, err := shamir.Combine(km.shares)
	if err != nil {
		return nil, err
	}
	defer util.SafeZeroMem(secret)

	key := make([]byte, length)
	_, err = io.ReadFull(hkdf.New(sha256.New, secret, km.salt, nil), key)
	if err != nil {
		util.SafeZeroMem(key)
		return nil, err
	}

	// Done
	return key, nil
}
