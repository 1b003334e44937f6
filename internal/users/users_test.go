// SPDX-License-Identifier: MIT
package users

import (
	"errors"
	"testing"

	"github.com/werewolves/lupus/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Site{}, &models.SiteUser{}, &models.Page{}, &models.Block{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)

	user, err := CreateUser(db, " Howl@Example.com ", "password123", false)
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if user.Email != "howl@example.com" {
		t.Errorf("Expected normalized email howl@example.com, got %s", user.Email)
	}
	if user.PasswordHash == "password123" {
		t.Error("Password should be hashed, not stored in plain text")
	}
	if user.IsGlobalAdmin {
		t.Error("user should not be a global admin")
	}
}

func TestCreateUserValidation(t *testing.T) {
	db := setupTestDB(t)

	if _, err := CreateUser(db, "not-an-email", "password123", false); err == nil {
		t.Error("expected error for invalid email")
	}
	if _, err := CreateUser(db, "short@example.com", "pw", false); err == nil {
		t.Error("expected error for short password")
	}
	if _, err := CreateUser(db, "dup@example.com", "password123", false); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if _, err := CreateUser(db, "dup@example.com", "password123", false); err == nil {
		t.Error("expected error for duplicate email")
	}
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)

	if _, err := CreateUser(db, "pack@example.com", "full-moon-42", true); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	user, err := Authenticate(db, "PACK@example.com", "full-moon-42")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if !user.IsGlobalAdmin {
		t.Error("expected global admin flag to be stored")
	}

	if _, err := Authenticate(db, "pack@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := Authenticate(db, "nobody@example.com", "full-moon-42"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestListUsers(t *testing.T) {
	db := setupTestDB(t)

	CreateUser(db, "user2@example.com", "password2", false)
	CreateUser(db, "user1@example.com", "password1", false)

	users, err := ListUsers(db)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("Expected 2 users, got %d", len(users))
	}
	if users[0].Email != "user1@example.com" {
		t.Errorf("expected users ordered by email, got %s first", users[0].Email)
	}
}

func TestDeleteAndRestoreUser(t *testing.T) {
	db := setupTestDB(t)

	user, _ := CreateUser(db, "delete@example.com", "password", false)

	if err := DeleteUser(db, user.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
	if _, err := GetUserByEmail(db, "delete@example.com"); err == nil {
		t.Error("Expected error when getting deleted user, got nil")
	}

	restored, err := CreateUser(db, "delete@example.com", "new-password", false)
	if err != nil {
		t.Fatalf("CreateUser after delete failed: %v", err)
	}
	if restored.ID != user.ID {
		t.Errorf("expected soft-deleted user %d to be restored, got %d", user.ID, restored.ID)
	}
	if _, err := Authenticate(db, "delete@example.com", "new-password"); err != nil {
		t.Errorf("restored user should accept the new password: %v", err)
	}
}
