package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("password does not match")
)

// MinPasswordLength is the shortest password accepted for admin
// accounts, on register and on password change alike.
const MinPasswordLength = 8

// bcrypt cost 12 keeps a single hash in the hundreds of milliseconds
// on current hardware.
const bcryptCost = 12

// HashPassword bcrypt-hashes a password, rejecting ones shorter than
// MinPasswordLength before any work is done.
func HashPassword(password string) (string, error) {
	if !IsPasswordValid(password) {
		return "", ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword compares a stored hash against a candidate password.
// A mismatch returns ErrPasswordMismatch; anything else means the hash
// itself is malformed.
func VerifyPassword(hashedPassword, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}

// IsPasswordValid reports whether a password meets the length floor.
func IsPasswordValid(password string) bool {
	return len(password) >= MinPasswordLength
}
