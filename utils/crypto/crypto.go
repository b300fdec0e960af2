package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeyLength is the required symmetric key length (256 bits)
const KeyLength = chacha20poly1305.KeySize

var (
	ErrInvalidKeyLength = errors.New("invalid key length")
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrMessageTooShort  = errors.New("message too short")
)

// Seal encrypts plaintext with XChaCha20-Poly1305 and returns nonce||ciphertext.
// The additional data is authenticated but not encrypted.
func Seal(key, plaintext, additionalData []byte) ([]byte, error) {
	if len(key) != KeyLength {
		return nil, ErrInvalidKeyLength
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return aead.Seal(nonce, nonce, plaintext, additionalData), nil
}

// Open decrypts a nonce||ciphertext message produced by Seal. Tampering with
// either the message or the additional data fails authentication.
func Open(key, message, additionalData []byte) ([]byte, error) {
	if len(key) != KeyLength {
		return nil, ErrInvalidKeyLength
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	if len(message) < aead.NonceSize() {
		return nil, ErrMessageTooShort
	}

	nonce, ciphertext := message[:aead.NonceSize()], message[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, additionalData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}

	return plaintext, nil
}
