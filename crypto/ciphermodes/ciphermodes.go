// Package ciphermodes holds the registry of block cipher operation modes. Modes
// are either authenticated (they produce and verify an authentication tag as part
// of the transform) or raw (they never touch authentication material).
package ciphermodes

import (
	"crypto/cipher"
	"errors"
	"strings"

	"github.com/ProtonMail/go-crypto/eax"

	"github.com/qryptic/qryptic/util"
)

// -----------------------------------------------------------------------------

const (
	gcmNonceSize = 12
	eaxNonceSize = 16
	maxTagSize   = 16
)

// -----------------------------------------------------------------------------

// ErrAuthentication is returned by authenticated modes when the tag does not
// verify. Other errors from an authenticated decrypt mean the transform itself
// could not run.
var ErrAuthentication = errors.New("authentication tag mismatch")

// -----------------------------------------------------------------------------

// EncryptFunc runs the forward transform. Authenticated modes return the tag
// separately from the ciphertext; raw modes return a nil tag.
type EncryptFunc func(block cipher.Block, iv []byte, plaintext []byte) (ciphertext []byte, tag []byte, err error)

// DecryptFunc runs the inverse transform. Authenticated modes verify the given
// tag; raw modes ignore it.
type DecryptFunc func(block cipher.Block, iv []byte, ciphertext []byte, tag []byte) ([]byte, error)

// IVSizeFunc returns the initial vector size in bytes for the given block size.
type IVSizeFunc func(blockSize int) int

type modeFuncs struct {
	code          string
	authenticated bool
	ivSize        IVSizeFunc
	encrypt       EncryptFunc
	decrypt       DecryptFunc
}

// Mode is a single operation mode drawn from the registry.
type Mode struct {
	fn modeFuncs
}

// -----------------------------------------------------------------------------

var modesList = map[string]modeFuncs{
	"cbc": {
		code:    "CBC",
		ivSize:  blockSizeIV,
		encrypt: encryptCBC,
		decrypt: decryptCBC,
	},
	"cfb": {
		code:    "CFB",
		ivSize:  blockSizeIV,
		encrypt: encryptCFB,
		decrypt: decryptCFB,
	},
	"ctr": {
		code:    "CTR",
		ivSize:  blockSizeIV,
		encrypt: encryptCTR,
		decrypt: decryptCTR,
	},
	"eax": {
		code:          "EAX",
		authenticated: true,
		ivSize:        func(int) int { return eaxNonceSize },
		encrypt:       encryptEAX,
		decrypt:       decryptEAX,
	},
	"ecb": {
		code:    "ECB",
		ivSize:  func(int) int { return 0 },
		encrypt: encryptECB,
		decrypt: decryptECB,
	},
	"gcm": {
		code:          "GCM",
		authenticated: true,
		ivSize:        func(int) int { return gcmNonceSize },
		encrypt:       encryptGCM,
		decrypt:       decryptGCM,
	},
	"ofb": {
		code:    "OFB",
		ivSize:  blockSizeIV,
		encrypt: encryptOFB,
		decrypt: decryptOFB,
	},
}

// -----------------------------------------------------------------------------

// Lookup returns the mode registered under the given operation code. The match
// is case-insensitive.
func Lookup(code string) (Mode, bool) {
	fn, ok := modesList[strings.ToLower(code)]
	return Mode{fn: fn}, ok
}

// Codes returns the list of registered operation codes in canonical form.
func Codes() []string {
	list := make([]string, 0, len(modesList))
	for _, fn := range modesList {
		list = append(list, fn.code)
	}
	return list
}

// -----------------------------------------------------------------------------

// Code returns the canonical operation code.
func (m Mode) Code() string {
	return m.fn.code
}

// Authenticated returns true if the mode produces and verifies its own
// authentication tag.
func (m Mode) Authenticated() bool {
	return m.fn.authenticated
}

// IVSize returns the initial vector size in bytes for the given block size.
func (m Mode) IVSize(blockSize int) int {
	return m.fn.ivSize(blockSize)
}

// Encrypt runs the forward transform.
func (m Mode) Encrypt(block cipher.Block, iv []byte, plaintext []byte) ([]byte, []byte, error) {
	return m.fn.encrypt(block, iv, plaintext)
}

// Decrypt runs the inverse transform.
func (m Mode) Decrypt(block cipher.Block, iv []byte, ciphertext []byte, tag []byte) ([]byte, error) {
	return m.fn.decrypt(block, iv, ciphertext, tag)
}

// -----------------------------------------------------------------------------

func blockSizeIV(blockSize int) int {
	return blockSize
}

// -----------------------------------------------------------------------------
// CBC

func encryptCBC(block cipher.Block, iv []byte, plaintext []byte) ([]byte, []byte, error) {
	// Encrypt in place so the padded cleartext copy never outlives the call.
	buf := pkcs7Pad(plaintext, block.BlockSize())
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(buf, buf)
	return buf, nil, nil
}

func decryptCBC(block cipher.Block, iv []byte, ciphertext []byte, _ []byte) ([]byte, error) {
	blockSize := block.BlockSize()
	if len(ciphertext) == 0 || len(ciphertext)%blockSize != 0 {
		return nil, errors.New("ciphertext is not block aligned")
	}
	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)
	plaintext, err := pkcs7Unpad(padded, blockSize)
	if err != nil {
		util.SafeZeroMem(padded)
		return nil, err
	}
	return plaintext, nil
}

// -----------------------------------------------------------------------------
// CFB

func encryptCFB(block cipher.Block, iv []byte, plaintext []byte) ([]byte, []byte, error) {
	ciphertext := make([]byte, len(plaintext))
	cipher.NewCFBEncrypter(block, iv).XORKeyStream(ciphertext, plaintext)
	return ciphertext, nil, nil
}

func decryptCFB(block cipher.Block, iv []byte, ciphertext []byte, _ []byte) ([]byte, error) {
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCFBDecrypter(block, iv).XORKeyStream(plaintext, ciphertext)
	return plaintext, nil
}

// -----------------------------------------------------------------------------
// CTR

func encryptCTR(block cipher.Block, iv []byte, plaintext []byte) ([]byte, []byte, error) {
	ciphertext := make([]byte, len(plaintext))
	cipher.NewCTR(block, iv).XORKeyStream(ciphertext, plaintext)
	return ciphertext, nil, nil
}

func decryptCTR(block cipher.Block, iv []byte, ciphertext []byte, _ []byte) ([]byte, error) {
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCTR(block, iv).XORKeyStream(plaintext, ciphertext)
	return plaintext, nil
}

// -----------------------------------------------------------------------------
// OFB

func encryptOFB(block cipher.Block, iv []byte, plaintext []byte) ([]byte, []byte, error) {
	ciphertext := make([]byte, len(plaintext))
	cipher.NewOFB(block, iv).XORKeyStream(ciphertext, plaintext)
	return ciphertext, nil, nil
}

func decryptOFB(block cipher.Block, iv []byte, ciphertext []byte, _ []byte) ([]byte, error) {
	plaintext := make([]byte, len(ciphertext))
	cipher.NewOFB(block, iv).XORKeyStream(plaintext, ciphertext)
	return plaintext, nil
}

// -----------------------------------------------------------------------------
// ECB
//
// The standard library deliberately omits ECB, so the block loop lives here.

func encryptECB(block cipher.Block, _ []byte, plaintext []byte) ([]byte, []byte, error) {
	blockSize := block.BlockSize()
	// Encrypt in place so the padded cleartext copy never outlives the call.
	buf := pkcs7Pad(plaintext, blockSize)
	for ofs := 0; ofs < len(buf); ofs += blockSize {
		block.Encrypt(buf[ofs:ofs+blockSize], buf[ofs:ofs+blockSize])
	}
	return buf, nil, nil
}

func decryptECB(block cipher.Block, _ []byte, ciphertext []byte, _ []byte) ([]byte, error) {
	blockSize := block.BlockSize()
	if len(ciphertext) == 0 || len(ciphertext)%blockSize != 0 {
		return nil, errors.New("ciphertext is not block aligned")
	}
	padded := make([]byte, len(ciphertext))
	for ofs := 0; ofs < len(ciphertext); ofs += blockSize {
		block.Decrypt(padded[ofs:ofs+blockSize], ciphertext[ofs:ofs+blockSize])
	}
	plaintext, err := pkcs7Unpad(padded, blockSize)
	if err != nil {
		util.SafeZeroMem(padded)
		return nil, err
	}
	return plaintext, nil
}

// -----------------------------------------------------------------------------
// GCM
//
// GCM is only defined over 128-bit block ciphers; pairing it with a 64-bit block
// algorithm fails when the AEAD is constructed.

func encryptGCM(block cipher.Block, iv []byte, plaintext []byte) ([]byte, []byte, error) {
	aead, err := cipher.NewGCMWithNonceSize(block, gcmNonceSize)
	if err != nil {
		return nil, nil, err
	}
	ciphertext, tag := sealDetached(aead, iv, plaintext)
	return ciphertext, tag, nil
}

func decryptGCM(block cipher.Block, iv []byte, ciphertext []byte, tag []byte) ([]byte, error) {
	aead, err := cipher.NewGCMWithNonceSize(block, gcmNonceSize)
	if err != nil {
		return nil, err
	}
	return openDetached(aead, iv, ciphertext, tag)
}

// -----------------------------------------------------------------------------
// EAX
//
// The tag is capped at the block size so that 64-bit block algorithms work too.

func newEAX(block cipher.Block) (cipher.AEAD, error) {
	tagSize := block.BlockSize()
	if tagSize > maxTagSize {
		tagSize = maxTagSize
	}
	return eax.NewEAXWithNonceAndTagSize(block, eaxNonceSize, tagSize)
}

func encryptEAX(block cipher.Block, iv []byte, plaintext []byte) ([]byte, []byte, error) {
	aead, err := newEAX(block)
	if err != nil {
		return nil, nil, err
	}
	ciphertext, tag := sealDetached(aead, iv, plaintext)
	return ciphertext, tag, nil
}

func decryptEAX(block cipher.Block, iv []byte, ciphertext []byte, tag []byte) ([]byte, error) {
	aead, err := newEAX(block)
	if err != nil {
		return nil, err
	}
	return openDetached(aead, iv, ciphertext, tag)
}

// -----------------------------------------------------------------------------

// sealDetached encrypts and splits the tag off the sealed output.
func sealDetached(aead cipher.AEAD, iv []byte, plaintext []byte) ([]byte, []byte) {
	sealed := aead.Seal(nil, iv, plaintext, nil)
	split := len(sealed) - aead.Overhead()

	ciphertext := sealed[:split:split]
	tag := make([]byte, aead.Overhead())
	copy(tag, sealed[split:])

	return ciphertext, tag
}

// openDetached joins ciphertext and tag back together and verifies while
// decrypting. No plaintext is returned when verification fails.
func openDetached(aead cipher.AEAD, iv []byte, ciphertext []byte, tag []byte) ([]byte, error) {
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)
	plaintext, err := aead.Open(nil, iv, sealed, nil)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}
