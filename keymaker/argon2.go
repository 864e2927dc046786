package keymaker

import (
	"errors"

	"golang.org/x/crypto/argon2"
)

// -----------------------------------------------------------------------------

const (
	defaultArgon2Time    = 3
	defaultArgon2Memory  = 64 * 1024 // KiB
	defaultArgon2Threads = 4
)

// -----------------------------------------------------------------------------

// Argon2id derives keys from a password using Argon2id.
type Argon2id struct {
	password  []byte
	salt      []byte
	time      uint32
	memory    uint32
	threads   uint8
	keyLength int
}

// Argon2idOptions configure the Argon2id key maker.
type Argon2idOptions struct {
	Password []byte
	Salt     []byte

	// Time defaults to 3 iterations.
	Time uint32

	// Memory defaults to 64 MiB, expressed in KiB.
	Memory uint32

	// Threads defaults to 4.
	Threads uint8

	// KeyLength is the desired key length in bytes. Defaults to 32.
	KeyLength int
}

// -----------------------------------------------------------------------------

// NewArgon2id creates an Argon2id key maker.
func NewArgon2id(opts Argon2idOptions) *Argon2id {
	km := Argon2id{
		password:  opts.Password,
		salt:      opts.Salt,
		time:      opts.Time,
		memory:    opts.Memory,
		threads:   opts.Threads,
		keyLength: opts.KeyLength,
	}
	if km.time == 0 {
		km.time = defaultArgon2Time
	}
	if km.memory == 0 {
		km.memory = defaultArgon2Memory
	}
	if km.threads == 0 {
		km.threads = defaultArgon2Threads
	}
	if km.keyLength <= 0 {
		km.keyLength = defaultKeyLength
	}

	// Done
	return &km
}

// KeyLength returns the desired key length in bytes.
func (km *Argon2id) KeyLength() int {
	return km.keyLength
}

// DeriveKey derives a key of exactly the given length in bytes.
func (km *Argon2id) DeriveKey(length int) ([]byte, error) {
	if length <= 0 {
		return nil, errors.New("invalid key length")
	}
	return argon2.IDKey(km.password, km.salt, km.time, km.memory, km.threads, uint32(length)), nil
}
