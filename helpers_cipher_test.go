package qryptic_test

import (
	"errors"
)

// -----------------------------------------------------------------------------

var (
	testPlaintext = []byte("attack at dawn... or maybe at brunch")

	// Algorithms with a 64-bit block. GCM cannot be built on top of these.
	sixtyFourBitBlock = map[string]bool{
		"Blowfish": true,
		"CAST-128": true,
		"DES-EDE3": true,
		"IDEA":     true,
	}
)

// -----------------------------------------------------------------------------

// testKeyMaker derives a fixed pattern key. Good enough to exercise the cipher
// without paying for a real KDF on every test.
type testKeyMaker struct {
	keyLength int
}

func (km *testKeyMaker) KeyLength() int {
	return km.keyLength
}

func (km *testKeyMaker) DeriveKey(length int) ([]byte, error) {
	key := make([]byte, length)
	for idx := range key {
		key[idx] = byte(idx*7 + 13)
	}
	return key, nil
}

// -----------------------------------------------------------------------------

type failingKeyMaker struct{}

func (km *failingKeyMaker) KeyLength() int {
	return 32
}

func (km *failingKeyMaker) DeriveKey(int) ([]byte, error) {
	return nil, errors.New("kdf exploded")
}

// -----------------------------------------------------------------------------

// shortKeyMaker ignores the requested length and returns fewer bytes.
type shortKeyMaker struct{}

func (km *shortKeyMaker) KeyLength() int {
	return 32
}

func (km *shortKeyMaker) DeriveKey(length int) ([]byte, error) {
	return make([]byte, length-1), nil
}
