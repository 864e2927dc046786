package qryptic_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/qryptic/qryptic"
	"github.com/qryptic/qryptic/keymaker"
)

// -----------------------------------------------------------------------------

func TestPasswordBasedRoundTrip(t *testing.T) {
	t.Log("Generating a salt...")
	salt, err := keymaker.GenerateSalt(nil, 16)
	if err != nil {
		t.Fatal(err)
	}

	km := keymaker.NewPBKDF2(keymaker.PBKDF2Options{
		Password:   []byte("hunter2"),
		Salt:       salt,
		Iterations: 1000,
	})

	t.Log("Encrypting with AES/GCM...")
	c := qryptic.New(qryptic.AES, qryptic.GCM)
	sealed, err := c.Seal([]byte("the vault combination is 12-34-56"), km)
	if err != nil {
		t.Fatal(err)
	}

	t.Log("Opening with the same password and salt...")
	d := qryptic.New(qryptic.AES, qryptic.GCM)
	plaintext, err := d.Open(sealed, km)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(plaintext, []byte("the vault combination is 12-34-56")) {
		t.Fatal("original and opened text mismatch")
	}

	t.Log("Opening with a wrong password must fail authentication...")
	wrong := keymaker.NewPBKDF2(keymaker.PBKDF2Options{
		Password:   []byte("*******"),
		Salt:       salt,
		Iterations: 1000,
	})
	_, err = qryptic.New(qryptic.AES, qryptic.GCM).Open(sealed, wrong)
	if !errors.Is(err, qryptic.ErrAuthenticationFailed) {
		t.Fatalf("expected authentication failure, got %v", err)
	}
}

func TestShareBasedRoundTrip(t *testing.T) {
	secret := make([]byte, 32)
	for idx := range secret {
		secret[idx] = byte(idx ^ 0x5a)
	}

	t.Log("Splitting the secret 5 ways with threshold 3...")
	shares, err := keymaker.SplitSecret(secret, 5, 3)
	if err != nil {
		t.Fatal(err)
	}

	t.Log("Encrypting with three shares...")
	c := qryptic.New(qryptic.Serpent, qryptic.EAX)
	sealed, err := c.Seal(testPlaintext, keymaker.NewShareSet(shares[:3], nil, 32))
	if err != nil {
		t.Fatal(err)
	}

	t.Log("Opening with a different share subset...")
	plaintext, err := qryptic.New(qryptic.AES, qryptic.GCM).Open(sealed, keymaker.NewShareSet(shares[2:], nil, 32))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(plaintext, testPlaintext) {
		t.Fatal("original and opened text mismatch")
	}
}
