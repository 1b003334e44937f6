// SPDX-License-Identifier: MIT
package db

import (
	"path/filepath"
	"testing"

	"github.com/werewolves/lupus/internal/models"
)

func TestInitDBSqlite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lupus.db")

	if err := InitDB("sqlite", path); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	defer SetDB(nil)

	for _, model := range []interface{}{&models.User{}, &models.Site{}, &models.SiteUser{}, &models.Page{}, &models.Block{}} {
		if !GetDB().Migrator().HasTable(model) {
			t.Errorf("table for %T not created", model)
		}
	}

	if !GetDB().Migrator().HasColumn(&models.Block{}, "parent_id") {
		t.Error("parent_id column not found in blocks table")
	}
	if !GetDB().Migrator().HasColumn(&models.Site{}, "theme_palette") {
		t.Error("theme_palette column not found in sites table")
	}
}

func TestInitDBUnsupportedType(t *testing.T) {
	if err := InitDB("oracle", "whatever"); err == nil {
		t.Error("expected error for unsupported database type")
	}
}

func TestMigrateIsRepeatable(t *testing.T) {
	database, err := Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := Migrate(database); err != nil {
		t.Fatalf("first migration failed: %v", err)
	}
	if err := Migrate(database); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}
