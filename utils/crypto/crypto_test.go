package crypto

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, KeyLength)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	return key
}

func TestSealOpenRoundTrip(t *testing.T) {
	key := testKey(t)
	plaintext := []byte(`{"id":"0198c1a2","role":"admin"}`)
	aad := []byte("v4.local.")

	sealed, err := Seal(key, plaintext, aad)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	opened, err := Open(key, sealed, aad)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Errorf("round trip mismatch: got %q, want %q", opened, plaintext)
	}
}

func TestSealProducesFreshNonce(t *testing.T) {
	key := testKey(t)
	plaintext := []byte("same message")

	first, err := Seal(key, plaintext, nil)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	second, err := Seal(key, plaintext, nil)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	if bytes.Equal(first, second) {
		t.Error("two seals of the same plaintext produced identical output")
	}
}

func TestOpenRejectsWrongKey(t *testing.T) {
	key := testKey(t)
	other := testKey(t)

	sealed, err := Seal(key, []byte("secret"), nil)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	if _, err := Open(other, sealed, nil); err == nil {
		t.Error("expected decryption failure under a different key")
	}
}

func TestOpenRejectsTamperedCiphertext(t *testing.T) {
	key := testKey(t)

	sealed, err := Seal(key, []byte("secret"), nil)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	sealed[len(sealed)-1] ^= 0x01
	if _, err := Open(key, sealed, nil); err == nil {
		t.Error("expected authentication failure after flipping a ciphertext bit")
	}
}

func TestOpenRejectsTamperedAdditionalData(t *testing.T) {
	key := testKey(t)

	sealed, err := Seal(key, []byte("secret"), []byte("v4.local."))
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	if _, err := Open(key, sealed, []byte("v4.public.")); err == nil {
		t.Error("expected authentication failure with different additional data")
	}
}

func TestInvalidKeyLength(t *testing.T) {
	short := make([]byte, KeyLength-1)

	if _, err := Seal(short, []byte("x"), nil); err != ErrInvalidKeyLength {
		t.Errorf("Seal with short key: got %v, want ErrInvalidKeyLength", err)
	}
	if _, err := Open(short, make([]byte, 64), nil); err != ErrInvalidKeyLength {
		t.Errorf("Open with short key: got %v, want ErrInvalidKeyLength", err)
	}
}

func TestOpenRejectsShortMessage(t *testing.T) {
	key := testKey(t)

	if _, err := Open(key, []byte("too short"), nil); err != ErrMessageTooShort {
		t.Errorf("got %v, want ErrMessageTooShort", err)
	}
}
