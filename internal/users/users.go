// SPDX-License-Identifier: MIT
package users

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/werewolves/lupus/internal/auth"
	"github.com/werewolves/lupus/internal/models"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned when an email/password pair does not match
var ErrInvalidCredentials = errors.New("invalid email or password")

// MinPasswordLength is the shortest password accepted for new accounts
const MinPasswordLength = 8

// normalizeEmail lowercases and trims an email address
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser creates a new user with hashed password
// If a soft-deleted user exists with this email, it will be restored
func CreateUser(db *gorm.DB, email, password string, globalAdmin bool) (*models.User, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email address %q: %w", email, err)
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}

	// Check if active user already exists
	var existing models.User
	if db.Where("email = ?", email).First(&existing).Error == nil {
		return nil, fmt.Errorf("user with email %s already exists", email)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Check for soft-deleted user with this email
	var deleted models.User
	if db.Unscoped().Where("email = ? AND deleted_at IS NOT NULL", email).First(&deleted).Error == nil {
		if err := db.Unscoped().Model(&deleted).Updates(map[string]interface{}{
			"deleted_at":      nil,
			"password_hash":   hash,
			"is_global_admin": globalAdmin,
		}).Error; err != nil {
			return nil, fmt.Errorf("failed to restore user: %w", err)
		}
		return GetUserByID(db, deleted.ID)
	}

	user := &models.User{
		Email:         email,
		PasswordHash:  hash,
		IsGlobalAdmin: globalAdmin,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate returns the user matching email and password
func Authenticate(db *gorm.DB, email, password string) (*models.User, error) {
	user, err := GetUserByEmail(db, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email address
func GetUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func GetUserByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	return &user, nil
}

// ListUsers returns all users
func ListUsers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	if err := db.Order("email ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// DeleteUser soft-deletes a user
func DeleteUser(db *gorm.DB, id uint) error {
	result := db.Delete(&models.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}
