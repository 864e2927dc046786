package ciphermodes_test

import (
	"bytes"
	"crypto/aes"
	"crypto/des"
	"errors"
	"testing"

	"golang.org/x/crypto/blowfish"

	"github.com/qryptic/qryptic/crypto/ciphermodes"
)

// -----------------------------------------------------------------------------

var (
	testKey   = []byte("0123456789abcdef0123456789abcdef")
	testPlain = []byte("the quick brown fox jumps over the lazy dog")
)

// -----------------------------------------------------------------------------

func TestLookup(t *testing.T) {
	for _, code := range []string{"cbc", "CBC", "gCm", "EAX", "ecb", "ofb", "cfb", "ctr"} {
		if _, ok := ciphermodes.Lookup(code); !ok {
			t.Fatalf("%q was not found", code)
		}
	}
	if _, ok := ciphermodes.Lookup("xts"); ok {
		t.Fatal("unknown mode was found")
	}
	if len(ciphermodes.Codes()) != 7 {
		t.Fatalf("unexpected registry size %d", len(ciphermodes.Codes()))
	}
}

func TestAuthenticatedFlags(t *testing.T) {
	authenticated := map[string]bool{
		"CBC": false, "CFB": false, "CTR": false, "EAX": true,
		"ECB": false, "GCM": true, "OFB": false,
	}
	for code, want := range authenticated {
		m, ok := ciphermodes.Lookup(code)
		if !ok {
			t.Fatalf("%q was not found", code)
		}
		if m.Authenticated() != want {
			t.Fatalf("%q: authenticated = %v, want %v", code, m.Authenticated(), want)
		}
		if m.Code() != code {
			t.Fatalf("%q: canonical code is %q", code, m.Code())
		}
	}
}

func TestRoundTripOverAES(t *testing.T) {
	block, err := aes.NewCipher(testKey)
	if err != nil {
		t.Fatal(err)
	}

	// Odd plaintext lengths stress the padding of the block aligned modes and
	// the keystream of the streaming ones.
	for _, plainLen := range []int{0, 1, 15, 16, 17, len(testPlain)} {
		plain := testPlain[:plainLen]

		for _, code := range []string{"CBC", "CFB", "CTR", "EAX", "ECB", "GCM", "OFB"} {
			m, _ := ciphermodes.Lookup(code)

			iv := make([]byte, m.IVSize(block.BlockSize()))
			for idx := range iv {
				iv[idx] = byte(idx + 101)
			}

			ciphertext, tag, err := m.Encrypt(block, iv, plain)
			if err != nil {
				t.Fatalf("%s len=%d: encrypt: %v", code, plainLen, err)
			}
			if m.Authenticated() != (len(tag) != 0) {
				t.Fatalf("%s: tag presence does not match mode kind", code)
			}

			decrypted, err := m.Decrypt(block, iv, ciphertext, tag)
			if err != nil {
				t.Fatalf("%s len=%d: decrypt: %v", code, plainLen, err)
			}
			if !bytes.Equal(decrypted, plain) {
				t.Fatalf("%s len=%d: round trip mismatch", code, plainLen)
			}
		}
	}
}

func TestIVSizes(t *testing.T) {
	sizes := map[string]int{
		"CBC": 16, "CFB": 16, "CTR": 16, "OFB": 16,
		"ECB": 0, "GCM": 12, "EAX": 16,
	}
	for code, want := range sizes {
		m, _ := ciphermodes.Lookup(code)
		if got := m.IVSize(16); got != want {
			t.Fatalf("%q: IV size %d, want %d", code, got, want)
		}
	}

	// Block chaining modes follow the block size.
	m, _ := ciphermodes.Lookup("CBC")
	if got := m.IVSize(8); got != 8 {
		t.Fatalf("CBC over a 64-bit block: IV size %d, want 8", got)
	}
}

func TestGCMRequiresWideBlock(t *testing.T) {
	block, err := des.NewTripleDESCipher([]byte("123456789012345678901234"))
	if err != nil {
		t.Fatal(err)
	}

	m, _ := ciphermodes.Lookup("GCM")
	if _, _, err = m.Encrypt(block, make([]byte, 12), testPlain); err == nil {
		t.Fatal("GCM accepted a 64-bit block cipher")
	}
	_, err = m.Decrypt(block, make([]byte, 12), testPlain, nil)
	if err == nil {
		t.Fatal("GCM accepted a 64-bit block cipher on decrypt")
	}
	// Construction failure is not a tag mismatch.
	if errors.Is(err, ciphermodes.ErrAuthentication) {
		t.Fatal("construction failure reported as a tag mismatch")
	}
}

func TestTagMismatchSentinel(t *testing.T) {
	block, err := aes.NewCipher(testKey)
	if err != nil {
		t.Fatal(err)
	}

	m, _ := ciphermodes.Lookup("GCM")
	iv := make([]byte, m.IVSize(block.BlockSize()))
	ciphertext, tag, err := m.Encrypt(block, iv, testPlain)
	if err != nil {
		t.Fatal(err)
	}

	tag[0] ^= 0x01
	if _, err = m.Decrypt(block, iv, ciphertext, tag); !errors.Is(err, ciphermodes.ErrAuthentication) {
		t.Fatalf("expected tag mismatch, got %v", err)
	}
}

func TestEAXOverNarrowBlock(t *testing.T) {
	block, err := blowfish.NewCipher(testKey[:16])
	if err != nil {
		t.Fatal(err)
	}

	m, _ := ciphermodes.Lookup("EAX")
	iv := make([]byte, m.IVSize(block.BlockSize()))
	for idx := range iv {
		iv[idx] = byte(idx)
	}

	ciphertext, tag, err := m.Encrypt(block, iv, testPlain)
	if err != nil {
		t.Fatal(err)
	}
	// The tag is capped at the block size.
	if len(tag) != block.BlockSize() {
		t.Fatalf("tag size %d, want %d", len(tag), block.BlockSize())
	}

	decrypted, err := m.Decrypt(block, iv, ciphertext, tag)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decrypted, testPlain) {
		t.Fatal("round trip mismatch")
	}
}

func TestPaddingRejection(t *testing.T) {
	block, err := aes.NewCipher(testKey)
	if err != nil {
		t.Fatal(err)
	}

	m, _ := ciphermodes.Lookup("CBC")
	iv := make([]byte, m.IVSize(block.BlockSize()))

	// Not block aligned.
	if _, err = m.Decrypt(block, iv, make([]byte, 17), nil); err == nil {
		t.Fatal("misaligned ciphertext was accepted")
	}

	// Empty ciphertext cannot carry padding.
	if _, err = m.Decrypt(block, iv, nil, nil); err == nil {
		t.Fatal("empty ciphertext was accepted")
	}

	// Truncating a valid ciphertext to its first block leaves "the quick brown "
	// as the final decrypted block, whose last byte cannot be valid padding.
	ciphertext, _, err := m.Encrypt(block, iv, testPlain)
	if err != nil {
		t.Fatal(err)
	}
	plaintext, err := m.Decrypt(block, iv, ciphertext[:block.BlockSize()], nil)
	if err == nil {
		t.Fatal("corrupted padding was accepted")
	}
	if len(plaintext) != 0 {
		t.Fatal("plaintext emitted on rejected padding")
	}
}

func TestPaddedEncryptionLeavesInputIntact(t *testing.T) {
	block, err := aes.NewCipher(testKey)
	if err != nil {
		t.Fatal(err)
	}

	for _, code := range []string{"CBC", "ECB"} {
		m, _ := ciphermodes.Lookup(code)
		iv := make([]byte, m.IVSize(block.BlockSize()))

		plaintext := make([]byte, len(testPlain))
		copy(plaintext, testPlain)

		// The transform pads and encrypts a private copy; the caller's buffer
		// must come back untouched.
		ciphertext, _, err := m.Encrypt(block, iv, plaintext)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(plaintext, testPlain) {
			t.Fatalf("%s: caller plaintext was modified", code)
		}
		if bytes.Contains(ciphertext, testPlain) {
			t.Fatalf("%s: plaintext leaked into ciphertext", code)
		}

		decrypted, err := m.Decrypt(block, iv, ciphertext, nil)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(decrypted, testPlain) {
			t.Fatalf("%s: round trip mismatch", code)
		}
	}
}
