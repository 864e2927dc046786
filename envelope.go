package qryptic

import (
	bstd "github.com/deneonet/benc/std"

	"github.com/qryptic/qryptic/models"
)

// -----------------------------------------------------------------------------

const (
	envelopeVersion = 1
)

// -----------------------------------------------------------------------------

// Envelope bundles a ciphertext with the cipher identity, initial vector and
// authentication value it was produced with, in a versioned binary form. It is
// a boundary convenience only; Encrypt and Decrypt never require it.
type Envelope struct {
	FullName       string
	InitialVector  []byte
	Authentication []byte
	Ciphertext     []byte
}

// -----------------------------------------------------------------------------

// Serialize encodes the envelope.
func (e *Envelope) Serialize() []byte {
	bufSize := bstd.SizeUint16() +
		bstd.SizeString(e.FullName) +
		bstd.SizeBytes(e.InitialVector) +
		bstd.SizeBytes(e.Authentication) +
		bstd.SizeBytes(e.Ciphertext)
	buf := make([]byte, bufSize)

	ofs := bstd.MarshalUint16(0, buf, envelopeVersion)
	ofs = bstd.MarshalString(ofs, buf, e.FullName)
	ofs = bstd.MarshalBytes(ofs, buf, e.InitialVector)
	ofs = bstd.MarshalBytes(ofs, buf, e.Authentication)
	ofs = bstd.MarshalBytes(ofs, buf, e.Ciphertext)

	// Done
	return buf
}

// DeserializeEnvelope decodes a serialized envelope.
func DeserializeEnvelope(buf []byte) (*Envelope, error) {
	if len(buf) <= bstd.SizeUint16() {
		return nil, ErrInvalidEnvelope
	}

	e := Envelope{}

	ofs, version, err := bstd.UnmarshalUint16(0, buf)
	if err != nil {
		return nil, ErrInvalidEnvelope
	}
	switch version {
	case 1:
		ofs, e.FullName, err = bstd.UnmarshalString(ofs, buf)
		if err != nil {
			return nil, ErrInvalidEnvelope
		}
		ofs, e.InitialVector, err = bstd.UnmarshalBytesCopied(ofs, buf)
		if err != nil {
			return nil, ErrInvalidEnvelope
		}
		ofs, e.Authentication, err = bstd.UnmarshalBytesCopied(ofs, buf)
		if err != nil {
			return nil, ErrInvalidEnvelope
		}
		ofs, e.Ciphertext, err = bstd.UnmarshalBytesCopied(ofs, buf)
		if err != nil {
			return nil, ErrInvalidEnvelope
		}

	default:
		return nil, ErrInvalidEnvelope
	}

	// Check if we reached the end of the buffer.
	if ofs != len(buf) {
		return nil, ErrInvalidEnvelope
	}

	// Done
	return &e, nil
}

// -----------------------------------------------------------------------------

// Seal encrypts the given plaintext and returns a serialized envelope carrying
// the ciphertext together with the cipher identity, the generated initial
// vector and the authentication value.
func (c *Cipher) Seal(plaintext []byte, keyMaker models.KeyMaker) ([]byte, error) {
	ciphertext, err := c.Encrypt(plaintext, keyMaker)
	if err != nil {
		return nil, err
	}

	e := Envelope{
		FullName:       c.FullName(),
		InitialVector:  c.initialVector,
		Authentication: c.authentication,
		Ciphertext:     ciphertext,
	}

	// Done
	return e.Serialize(), nil
}

// Open decodes a serialized envelope, applies its cipher identity, initial
// vector and authentication value, and decrypts the carried ciphertext.
func (c *Cipher) Open(buf []byte, keyMaker models.KeyMaker) ([]byte, error) {
	e, err := DeserializeEnvelope(buf)
	if err != nil {
		return nil, err
	}

	c.SetFullName(e.FullName)
	c.SetInitialVector(e.InitialVector)
	c.SetAuthentication(e.Authentication)

	// Done
	return c.Decrypt(e.Ciphertext, keyMaker)
}
