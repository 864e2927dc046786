// Package blockciphers holds the registry of block cipher engines known to the
// library. Each engine pairs a constructor with its block size and key size rule.
package blockciphers

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"strings"

	"github.com/RyuaNerin/go-krypto/seed"
	"github.com/aead/camellia"
	"github.com/aead/serpent"
	idea "github.com/dgryski/go-idea"
	"golang.org/x/crypto/blowfish"
	"golang.org/x/crypto/cast5"
	"golang.org/x/crypto/twofish"
)

// -----------------------------------------------------------------------------

// NewCipherFunc creates a block cipher from the given key.
type NewCipherFunc func(key []byte) (cipher.Block, error)

// Engine describes a single block cipher algorithm.
type Engine struct {
	name      string
	blockSize int

	// Accepted key sizes in bytes: minKeySize up to maxKeySize in steps of keySizeMult.
	minKeySize  int
	maxKeySize  int
	keySizeMult int

	newCipher NewCipherFunc
}

// -----------------------------------------------------------------------------

var enginesList = map[string]Engine{
	"aes": {
		name:      "AES",
		blockSize: aes.BlockSize,
		minKeySize: 16, maxKeySize: 32, keySizeMult: 8,
		newCipher: aes.NewCipher,
	},
	"blowfish": {
		name:      "Blowfish",
		blockSize: blowfish.BlockSize,
		minKeySize: 4, maxKeySize: 56, keySizeMult: 1,
		newCipher: newBlowfish,
	},
	"cast-128": {
		name:      "CAST-128",
		blockSize: cast5.BlockSize,
		minKeySize: cast5.KeySize, maxKeySize: cast5.KeySize, keySizeMult: 1,
		newCipher: newCast128,
	},
	"camellia": {
		name:      "Camellia",
		blockSize: camellia.BlockSize,
		minKeySize: 16, maxKeySize: 32, keySizeMult: 8,
		newCipher: camellia.NewCipher,
	},
	"des-ede3": {
		name:      "DES-EDE3",
		blockSize: des.BlockSize,
		minKeySize: 24, maxKeySize: 24, keySizeMult: 1,
		newCipher: des.NewTripleDESCipher,
	},
	"idea": {
		name:      "IDEA",
		blockSize: 8,
		minKeySize: 16, maxKeySize: 16, keySizeMult: 1,
		newCipher: newIDEA,
	},
	"seed": {
		name:      "SEED",
		blockSize: 16,
		minKeySize: 16, maxKeySize: 16, keySizeMult: 1,
		newCipher: newSEED,
	},
	"serpent": {
		name:      "Serpent",
		blockSize: serpent.BlockSize,
		minKeySize: 16, maxKeySize: 32, keySizeMult: 8,
		newCipher: serpent.NewCipher,
	},
	"twofish": {
		name:      "Twofish",
		blockSize: twofish.BlockSize,
		minKeySize: 16, maxKeySize: 32, keySizeMult: 8,
		newCipher: newTwofish,
	},
}

// -----------------------------------------------------------------------------

// Lookup returns the engine registered under the given algorithm name. The match
// is case-insensitive.
func Lookup(name string) (Engine, bool) {
	e, ok := enginesList[strings.ToLower(name)]
	return e, ok
}

// Names returns the list of registered algorithm names in canonical form.
func Names() []string {
	list := make([]string, 0, len(enginesList))
	for _, e := range enginesList {
		list = append(list, e.name)
	}
	return list
}

// -----------------------------------------------------------------------------

// Name returns the canonical algorithm name.
func (e Engine) Name() string {
	return e.name
}

// BlockSize returns the block size of the algorithm in bytes.
func (e Engine) BlockSize() int {
	return e.blockSize
}

// ValidKeySize returns the nearest key size in bytes accepted by the algorithm:
// the requested size if accepted, otherwise the largest accepted size below it,
// or the smallest accepted size if the request is below the minimum.
func (e Engine) ValidKeySize(requested int) int {
	if requested <= e.minKeySize {
		return e.minKeySize
	}
	if requested >= e.maxKeySize {
		return e.maxKeySize
	}
	return e.minKeySize + ((requested-e.minKeySize)/e.keySizeMult)*e.keySizeMult
}

// New creates a block cipher instance from the given key.
func (e Engine) New(key []byte) (cipher.Block, error) {
	return e.newCipher(key)
}

// -----------------------------------------------------------------------------

func newBlowfish(key []byte) (cipher.Block, error) {
	blk, err := blowfish.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return blk, nil
}

func newCast128(key []byte) (cipher.Block, error) {
	blk, err := cast5.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return blk, nil
}

func newTwofish(key []byte) (cipher.Block, error) {
	blk, err := twofish.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return blk, nil
}

func newIDEA(key []byte) (cipher.Block, error) {
	blk, err := idea.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return blk, nil
}

func newSEED(key []byte) (cipher.Block, error) {
	blk, err := seed.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return blk, nil
}
