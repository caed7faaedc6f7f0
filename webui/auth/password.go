// Package auth provides password and session handling for the panel bridge.
// This file contains the bcrypt password hasher.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost factor. Cost 12 takes roughly 250ms on
// modern hardware; raise it as hardware improves.
const DefaultCost = 12

var (
	// ErrEmptyPassword is returned when attempting to hash an empty password.
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrPasswordMismatch is returned when verification fails. It does not
	// reveal whether the stored hash itself was valid.
	ErrPasswordMismatch = errors.New("password does not match")
)

// HashPassword creates a bcrypt hash of password. The hash embeds a random
// salt and the cost factor, so it is safe for direct storage.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks password against a stored bcrypt hash. Any failure,
// including a malformed hash, is reported as ErrPasswordMismatch.
func VerifyPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
