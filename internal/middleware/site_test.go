// SPDX-License-Identifier: MIT
package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
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
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	ClearSiteCache()
	t.Cleanup(ClearSiteCache)
	return db
}

func createSite(t *testing.T, db *gorm.DB, subdomain string, customDomain *string) *models.Site {
	user := models.User{Email: subdomain + "@test.com", PasswordHash: "hash"}
	db.Create(&user)

	site := &models.Site{Subdomain: subdomain, CustomDomain: customDomain, OwnerID: user.ID}
	if err := db.Create(site).Error; err != nil {
		t.Fatalf("failed to create site: %v", err)
	}
	return site
}

func resolve(mw gin.HandlerFunc, host string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.Host = host
	mw(c)
	return c, w
}

func TestSiteResolutionBySubdomain(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	createSite(t, db, "pack", nil)

	c, _ := resolve(SiteResolutionMiddleware(db, "lupus.example"), "Pack.lupus.example:8080")

	site, ok := SiteFromContext(c)
	if !ok {
		t.Fatal("Site not set in context")
	}
	if site.Subdomain != "pack" {
		t.Errorf("Expected subdomain 'pack', got '%s'", site.Subdomain)
	}
}

func TestSiteResolutionByCustomDomain(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	domain := "werewolves.example"
	createSite(t, db, "pack", &domain)

	c, _ := resolve(SiteResolutionMiddleware(db, "lupus.example"), "werewolves.example")

	site, ok := SiteFromContext(c)
	if !ok {
		t.Fatal("Site not set in context")
	}
	if site.Subdomain != "pack" {
		t.Errorf("Expected subdomain 'pack', got '%s'", site.Subdomain)
	}
}

func TestSiteResolutionNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)

	c, w := resolve(SiteResolutionMiddleware(db, "lupus.example"), "nobody.lupus.example")

	if w.Code != 404 {
		t.Errorf("Expected 404, got %d", w.Code)
	}
	if _, ok := SiteFromContext(c); ok {
		t.Error("Site should not be set for nonexistent subdomain")
	}
}

func TestSiteResolutionCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	site := createSite(t, db, "pack", nil)

	mw := SiteResolutionMiddleware(db, "lupus.example")
	resolve(mw, "pack.lupus.example")

	// served from cache even after the row changes
	db.Model(site).Update("site_title", "Renamed")
	c, _ := resolve(mw, "pack.lupus.example")
	cached, _ := SiteFromContext(c)
	if cached.SiteTitle == "Renamed" {
		t.Error("expected the cached site on the second request")
	}

	InvalidateSite(site.ID)
	c, _ = resolve(mw, "pack.lupus.example")
	fresh, _ := SiteFromContext(c)
	if fresh.SiteTitle != "Renamed" {
		t.Errorf("expected a fresh site after invalidation, got %q", fresh.SiteTitle)
	}
}

func TestExtractSubdomain(t *testing.T) {
	tests := []struct {
		host, base, want string
	}{
		{"pack.lupus.example", "lupus.example", "pack"},
		{"lupus.example", "lupus.example", ""},
		{"a.pack.lupus.example", "lupus.example", ""},
		{"pack.other.example", "lupus.example", ""},
		{"pack.lupus.example", "", ""},
	}
	for _, tt := range tests {
		if got := extractSubdomain(tt.host, tt.base); got != tt.want {
			t.Errorf("extractSubdomain(%q, %q) = %q, want %q", tt.host, tt.base, got, tt.want)
		}
	}
}
