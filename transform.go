package qryptic

import (
	"crypto/rand"
	"errors"

	"github.com/qryptic/qryptic/crypto/blockciphers"
	"github.com/qryptic/qryptic/crypto/ciphermodes"
	"github.com/qryptic/qryptic/models"
	"github.com/qryptic/qryptic/util"
)

// -----------------------------------------------------------------------------

// Encrypt encrypts the given plaintext with a key obtained from the key maker.
// A fresh initial vector is generated and stored in the cipher; authenticated
// operations additionally store the produced tag, replacing any externally set
// authentication value. Non-authenticated operations leave the stored
// authentication value untouched so a caller-computed MAC can live alongside
// the ciphertext.
func (c *Cipher) Encrypt(plaintext []byte, keyMaker models.KeyMaker) ([]byte, error) {
	engine, mode, err := c.resolveSuite()
	if err != nil {
		return nil, err
	}

	// Derive the key. Zero-ize on exit.
	key, err := c.deriveKey(engine, keyMaker)
	if err != nil {
		return nil, err
	}
	defer util.SafeZeroMem(key)

	block, err := engine.New(key)
	if err != nil {
		return nil, util.WrapError(ErrEncryptionFailed, err)
	}

	// The initial vector must never be reused across encryptions under the same
	// key, so a fresh one is generated on every call.
	iv, err := c.generateIV(mode.IVSize(block.BlockSize()))
	if err != nil {
		return nil, util.WrapError(ErrEncryptionFailed, err)
	}

	ciphertext, tag, err := mode.Encrypt(block, iv, plaintext)
	if err != nil {
		return nil, util.WrapError(ErrEncryptionFailed, err)
	}

	// Authenticated operations own their tag; an externally set value is stale
	// at this point and is discarded.
	if mode.Authenticated() {
		c.authentication = tag
	}
	c.initialVector = iv

	// Done
	return ciphertext, nil
}

// Decrypt decrypts the given ciphertext with a key obtained from the key maker.
// The key maker must produce the same key that was used during encryption, and
// the stored initial vector and authentication values must be the ones produced
// by that encryption. The initial vector is never regenerated here.
func (c *Cipher) Decrypt(ciphertext []byte, keyMaker models.KeyMaker) ([]byte, error) {
	engine, mode, err := c.resolveSuite()
	if err != nil {
		return nil, err
	}

	// Derive the key. Zero-ize on exit.
	key, err := c.deriveKey(engine, keyMaker)
	if err != nil {
		return nil, err
	}
	defer util.SafeZeroMem(key)

	block, err := engine.New(key)
	if err != nil {
		return nil, util.WrapError(ErrDecryptionFailed, err)
	}

	var iv []byte
	if ivSize := mode.IVSize(block.BlockSize()); ivSize > 0 {
		iv = c.initialVector
		if len(iv) == 0 {
			return nil, ErrMissingInitialVector
		}
		if len(iv) != ivSize {
			return nil, util.WrapError(ErrDecryptionFailed, errors.New("initial vector length mismatch"))
		}
	}

	plaintext, err := mode.Decrypt(block, iv, ciphertext, c.authentication)
	if err != nil {
		// Only a failed tag verification is an authentication failure; anything
		// else means the transform itself could not run on this pairing.
		if errors.Is(err, ciphermodes.ErrAuthentication) {
			return nil, util.WrapError(ErrAuthenticationFailed, err)
		}
		return nil, util.WrapError(ErrDecryptionFailed, err)
	}

	// Done
	return plaintext, nil
}

// -----------------------------------------------------------------------------

func (c *Cipher) deriveKey(engine blockciphers.Engine, keyMaker models.KeyMaker) ([]byte, error) {
	if keyMaker == nil {
		return nil, util.WrapError(ErrKeyDerivationFailed, errors.New("no key maker given"))
	}

	keyLength := engine.ValidKeySize(keyMaker.KeyLength())
	key, err := keyMaker.DeriveKey(keyLength)
	if err != nil {
		return nil, util.WrapError(ErrKeyDerivationFailed, err)
	}
	if len(key) != keyLength {
		util.SafeZeroMem(key)
		return nil, util.WrapError(ErrKeyDerivationFailed, errors.New("key maker returned a wrong key length"))
	}

	// Done
	return key, nil
}

func (c *Cipher) generateIV(size int) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}
	rg := c.rg
	if rg == nil {
		rg = rand.Reader
	}
	iv := make([]byte, size)
	n, err := rg.Read(iv)
	if err != nil || n != size {
		return nil, errors.New("unable to generate initial vector")
	}
	return iv, nil
}
