package sites

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/werewolves/lupus/internal/models"
	"github.com/werewolves/lupus/internal/themes"
	"gorm.io/gorm"
)

// subdomainPattern matches DNS-compliant labels (RFC 1123)
var subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// Reserved subdomains that cannot be used
var reservedSubdomains = map[string]bool{
	"admin":  true,
	"api":    true,
	"www":    true,
	"mail":   true,
	"ftp":    true,
	"smtp":   true,
	"lupus":  true,
	"status": true,
}

// ErrInvalidSubdomain is returned for malformed or reserved subdomains
var ErrInvalidSubdomain = errors.New("invalid subdomain")

// ValidateSubdomain normalizes a subdomain and rejects malformed or reserved names
func ValidateSubdomain(subdomain string) (string, error) {
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	if !subdomainPattern.MatchString(subdomain) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSubdomain, subdomain)
	}
	if reservedSubdomains[subdomain] {
		return "", fmt.Errorf("%w: %q is reserved", ErrInvalidSubdomain, subdomain)
	}
	return subdomain, nil
}

// SubdomainAvailable reports whether a valid subdomain is unused, counting soft-deleted sites
func SubdomainAvailable(db *gorm.DB, subdomain string) (bool, error) {
	subdomain, err := ValidateSubdomain(subdomain)
	if err != nil {
		return false, err
	}

	var count int64
	if err := db.Unscoped().Model(&models.Site{}).Where("subdomain = ?", subdomain).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check subdomain: %w", err)
	}
	return count == 0, nil
}

// CreateSite creates a new site with the given subdomain and owner
func CreateSite(db *gorm.DB, subdomain string, ownerID uint) (*models.Site, error) {
	subdomain, err := ValidateSubdomain(subdomain)
	if err != nil {
		return nil, err
	}

	// Check if subdomain already exists
	var existing models.Site
	result := db.Where("subdomain = ?", subdomain).First(&existing)
	if result.Error == nil {
		return nil, fmt.Errorf("subdomain %s already exists", subdomain)
	}

	site := &models.Site{
		Subdomain:    subdomain,
		OwnerID:      ownerID,
		SiteTitle:    subdomain,
		ThemePalette: themes.DefaultPalette,
		MessageFont:  themes.DefaultMessageFont,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(site).Error; err != nil {
			return fmt.Errorf("failed to create site: %w", err)
		}

		// Add owner to site_users with owner role
		if err := tx.Create(&models.SiteUser{UserID: ownerID, SiteID: site.ID, Role: "owner"}).Error; err != nil {
			return fmt.Errorf("failed to add owner to site: %w", err)
		}

		// Auto-create homepage for new site
		homepage := &models.Page{SiteID: site.ID, Slug: "/", Title: subdomain}
		if err := tx.Create(homepage).Error; err != nil {
			return fmt.Errorf("failed to create homepage: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return site, nil
}

// GetSiteBySubdomain retrieves a site by subdomain
func GetSiteBySubdomain(db *gorm.DB, subdomain string) (*models.Site, error) {
	var site models.Site
	result := db.Where("subdomain = ?", subdomain).First(&site)
	if result.Error != nil {
		return nil, fmt.Errorf("site not found: %w", result.Error)
	}
	return &site, nil
}

// GetSiteByID retrieves a site by ID
func GetSiteByID(db *gorm.DB, id uint) (*models.Site, error) {
	var site models.Site
	result := db.First(&site, id)
	if result.Error != nil {
		return nil, fmt.Errorf("site not found: %w", result.Error)
	}
	return &site, nil
}

// GetSiteByDomain retrieves a site by custom domain
func GetSiteByDomain(db *gorm.DB, domain string) (*models.Site, error) {
	var site models.Site
	result := db.Where("custom_domain = ?", domain).First(&site)
	if result.Error != nil {
		return nil, fmt.Errorf("site not found: %w", result.Error)
	}
	return &site, nil
}

// ListSites returns all sites
func ListSites(db *gorm.DB) ([]models.Site, error) {
	var sites []models.Site
	result := db.Preload("Owner").Order("subdomain ASC").Find(&sites)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list sites: %w", result.Error)
	}
	return sites, nil
}

// AddUserToSite adds a user to a site with a specific role
func AddUserToSite(db *gorm.DB, siteID, userID uint, role string) error {
	// Validate role
	validRoles := map[string]bool{"owner": true, "admin": true, "editor": true}
	if !validRoles[role] {
		return fmt.Errorf("invalid role: %s (must be owner, admin, or editor)", role)
	}

	// Check if relationship already exists
	var existing models.SiteUser
	result := db.Where("site_id = ? AND user_id = ?", siteID, userID).First(&existing)
	if result.Error == nil {
		return fmt.Errorf("user already has access to this site")
	}

	siteUser := &models.SiteUser{
		UserID: userID,
		SiteID: siteID,
		Role:   role,
	}

	if err := db.Create(siteUser).Error; err != nil {
		return fmt.Errorf("failed to add user to site: %w", err)
	}

	return nil
}

// HasAccess reports whether a user owns or belongs to a site
func HasAccess(db *gorm.DB, site *models.Site, user *models.User) bool {
	if user.IsGlobalAdmin || site.OwnerID == user.ID {
		return true
	}
	var siteUser models.SiteUser
	return db.Where("site_id = ? AND user_id = ?", site.ID, user.ID).First(&siteUser).Error == nil
}

// DeleteSite soft-deletes a site
func DeleteSite(db *gorm.DB, id uint) error {
	result := db.Delete(&models.Site{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete site: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("site not found")
	}
	return nil
}

// AddCustomDomain adds a custom domain to a site
func AddCustomDomain(db *gorm.DB, siteID uint, domain string) error {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return fmt.Errorf("domain cannot be empty")
	}

	// Check if domain is already in use (including soft-deleted sites)
	var existing models.Site
	result := db.Unscoped().Where("custom_domain = ?", domain).First(&existing)
	if result.Error == nil {
		if existing.DeletedAt.Valid {
			// Domain is on a deleted site - clear it so it can be reused
			db.Unscoped().Model(&existing).Update("custom_domain", nil)
		} else {
			return fmt.Errorf("domain %s is already in use by site '%s'", domain, existing.Subdomain)
		}
	}

	site, err := GetSiteByID(db, siteID)
	if err != nil {
		return err
	}

	if err := db.Model(site).Update("custom_domain", domain).Error; err != nil {
		return fmt.Errorf("failed to add custom domain: %w", err)
	}

	return nil
}

// Settings returns the customizer settings stored on a site
func Settings(site *models.Site) themes.Settings {
	return themes.Settings{
		Palette:              site.ThemePalette,
		DarkMode:             site.DarkMode,
		AccentColor:          site.AccentColor,
		AlternativeColor:     site.AlternativeColor,
		AlternativeTextColor: site.AlternativeTextColor,
		LogoURL:              site.LogoURL,
		MessageFont:          site.MessageFont,
	}
}

// UpdateSettings validates and stores customizer settings on a site
func UpdateSettings(db *gorm.DB, siteID uint, s themes.Settings) (*models.Site, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	if s.Palette == "" {
		s.Palette = themes.DefaultPalette
	}
	if s.MessageFont == "" {
		s.MessageFont = themes.DefaultMessageFont
	}

	site, err := GetSiteByID(db, siteID)
	if err != nil {
		return nil, err
	}

	// map update so false and empty values are written too
	if err := db.Model(site).Updates(map[string]interface{}{
		"theme_palette":          s.Palette,
		"dark_mode":              s.DarkMode,
		"accent_color":           strings.TrimSpace(s.AccentColor),
		"alternative_color":      strings.TrimSpace(s.AlternativeColor),
		"alternative_text_color": strings.TrimSpace(s.AlternativeTextColor),
		"logo_url":               s.LogoURL,
		"message_font":           s.MessageFont,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	return GetSiteByID(db, siteID)
}

// ListSiteUsers returns the memberships of a site with their users loaded
func ListSiteUsers(db *gorm.DB, siteID uint) ([]models.SiteUser, error) {
	var siteUsers []models.SiteUser
	if err := db.Preload("User").Where("site_id = ?", siteID).Order("role ASC").Find(&siteUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to list site users: %w", err)
	}
	return siteUsers, nil
}
