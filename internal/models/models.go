package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a global user account
type User struct {
	ID            uint           `gorm:"primaryKey"`
	Email         string         `gorm:"uniqueIndex;not null"`
	PasswordHash  string         `gorm:"not null"`
	IsGlobalAdmin bool           `gorm:"default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`

	// Relationships
	OwnedSites []Site     `gorm:"foreignKey:OwnerID"`
	SiteUsers  []SiteUser `gorm:"foreignKey:UserID"`
}

// Site represents a website and its customizer settings
type Site struct {
	ID           uint    `gorm:"primaryKey"`
	Subdomain    string  `gorm:"uniqueIndex;not null"`
	CustomDomain *string `gorm:"uniqueIndex"` // nil when unset so the unique index allows many
	OwnerID      uint    `gorm:"not null"`
	SiteTitle    string

	// Customizer settings
	ThemePalette         string `gorm:"default:st-pauli"`
	DarkMode             bool   `gorm:"default:false"`
	AccentColor          string
	AlternativeColor     string
	AlternativeTextColor string
	LogoURL              string
	MessageFont          string `gorm:"default:condensed"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Owner     User       `gorm:"foreignKey:OwnerID"`
	SiteUsers []SiteUser `gorm:"foreignKey:SiteID"`
	Pages     []Page     `gorm:"foreignKey:SiteID"`
}

// SiteUser represents the many-to-many relationship between users and sites
type SiteUser struct {
	ID        uint           `gorm:"primaryKey"`
	UserID    uint           `gorm:"not null"`
	SiteID    uint           `gorm:"not null"`
	Role      string         `gorm:"not null"` // "owner", "admin", "editor"
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	User User `gorm:"foreignKey:UserID"`
	Site Site `gorm:"foreignKey:SiteID"`
}

// Page represents a page on a site
type Page struct {
	ID        uint           `gorm:"primaryKey"`
	SiteID    uint           `gorm:"not null;index"`
	Slug      string         `gorm:"not null"` // URL slug, "/" for the homepage
	Title     string         `gorm:"not null"`
	Published bool           `gorm:"default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Site   Site    `gorm:"foreignKey:SiteID"`
	Blocks []Block `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE"`
}

// Block represents a content block on a page.
// Blocks with a ParentID are inner blocks of a header or section.
type Block struct {
	ID        uint           `gorm:"primaryKey"`
	PageID    uint           `gorm:"not null;index"`
	ParentID  *uint          `gorm:"index"`
	Type      string         `gorm:"not null"` // "header", "section", "text"
	Order     int            `gorm:"not null"` // Display order among siblings
	Data      string         `gorm:"type:text"` // JSON attributes for the block
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Page Page `gorm:"foreignKey:PageID"`
}

// TableName overrides for consistent naming
func (User) TableName() string {
	return "users"
}

func (Site) TableName() string {
	return "sites"
}

func (SiteUser) TableName() string {
	return "site_users"
}

func (Page) TableName() string {
	return "pages"
}

func (Block) TableName() string {
	return "blocks"
}
