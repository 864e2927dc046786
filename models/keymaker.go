package models

// -----------------------------------------------------------------------------

// KeyMaker is the minimal interface that must be implemented by all key derivation
// collaborators. The cipher validates KeyLength against the selected algorithm and
// then asks for a key of the validated length.
type KeyMaker interface {
	// KeyLength returns the desired key length in bytes.
	KeyLength() int

	// DeriveKey derives a key of exactly the given length in bytes.
	DeriveKey(length int) ([]byte, error)
}
