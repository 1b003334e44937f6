// SPDX-License-Identifier: MIT
package auth

import (
	"errors"

	"github.com/werewolves/lupus/internal/config"
	"golang.org/x/crypto/bcrypt"
)

const defaultBcryptCost = 12

// bcryptCost returns the configured cost, clamped to what bcrypt accepts
func bcryptCost() int {
	cost := config.GetInt("auth.bcrypt_cost")
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return defaultBcryptCost
	}
	return cost
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost())
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword verifies a password against a bcrypt hash using constant-time comparison
func CheckPassword(password, hash string) bool {
	if password == "" {
		return false
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
