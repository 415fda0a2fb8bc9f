package models

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor used by SetPassword.
var PasswordCost = bcrypt.DefaultCost

var ErrEmptyPassword = errors.New("password must not be empty")

func hashPassword(raw string) (string, error) {
	if raw == "" {
		return "", ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func checkPassword(hashed, raw string) bool {
	if hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}
