package qryptic

import (
	"errors"
)

// -----------------------------------------------------------------------------

var (
	// ErrUnsupportedAlgorithm is returned by `Encrypt` and `Decrypt` when the selected
	// algorithm name does not resolve to a known algorithm.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrUnsupportedOperation is returned by `Encrypt` and `Decrypt` when the selected
	// operation code does not resolve to a known operation mode.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrKeyDerivationFailed is returned when the key maker cannot produce a key.
	ErrKeyDerivationFailed = errors.New("key derivation failed")

	// ErrMissingInitialVector is returned by `Decrypt` when the selected mode needs
	// an initial vector and none was set. The initial vector is only auto-generated
	// during encryption, never during decryption.
	ErrMissingInitialVector = errors.New("missing initial vector")

	// ErrAuthenticationFailed is returned by `Decrypt` when the stored authentication
	// tag of an authenticated mode does not verify. No plaintext is emitted.
	ErrAuthenticationFailed = errors.New("authentication failed")

	ErrEncryptionFailed = errors.New("encryption failed")
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidEnvelope is returned when a serialized envelope cannot be decoded.
	ErrInvalidEnvelope = errors.New("invalid envelope")
)
