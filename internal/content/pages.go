// Package content stores pages and the block trees rendered on them.
package content

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/werewolves/lupus/internal/blocks"
	"github.com/werewolves/lupus/internal/models"
	"gorm.io/gorm"
)

// HomeSlug is the slug of a site's homepage
const HomeSlug = "/"

var (
	// ErrNotFound is returned when a page or block does not exist on the site
	ErrNotFound = errors.New("not found")
	// ErrNestingNotAllowed is returned when a block cannot hold the requested child
	ErrNestingNotAllowed = blocks.ErrNestingNotAllowed
	// ErrInvalidSlug is returned for slugs that are not lowercase URL paths
	ErrInvalidSlug = errors.New("invalid slug")
	// ErrSlugTaken is returned when another page on the site uses the slug
	ErrSlugTaken = errors.New("slug already in use")
	// ErrHomepage is returned when an operation would remove or move the homepage
	ErrHomepage = errors.New("the homepage cannot be deleted or renamed")
)

var slugPattern = regexp.MustCompile(`^/[a-z0-9]+(-[a-z0-9]+)*(/[a-z0-9]+(-[a-z0-9]+)*)*$`)

// NormalizeSlug lowercases a slug and gives it exactly one leading slash.
// "About/" becomes "/about".
func NormalizeSlug(slug string) (string, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	slug = "/" + strings.Trim(slug, "/")
	if slug == HomeSlug {
		return slug, nil
	}
	if !slugPattern.MatchString(slug) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}
	return slug, nil
}

// CreatePage creates an unpublished page
func CreatePage(db *gorm.DB, siteID uint, slug, title string) (*models.Page, error) {
	slug, err := NormalizeSlug(slug)
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if err := checkSlugFree(db, siteID, slug, 0); err != nil {
		return nil, err
	}

	page := &models.Page{SiteID: siteID, Slug: slug, Title: title}
	if err := db.Create(page).Error; err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return page, nil
}

// ListPages returns a site's pages ordered by slug
func ListPages(db *gorm.DB, siteID uint) ([]models.Page, error) {
	var pages []models.Page
	if err := db.Where("site_id = ?", siteID).Order("slug ASC").Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	return pages, nil
}

// GetPage loads a page belonging to siteID
func GetPage(db *gorm.DB, siteID, pageID uint) (*models.Page, error) {
	var page models.Page
	if err := db.Where("id = ? AND site_id = ?", pageID, siteID).First(&page).Error; err != nil {
		return nil, notFound("page", err)
	}
	return &page, nil
}

// GetPageBySlug loads a page by slug. The homepage is served whether or not
// it is published; every other page must be published when publishedOnly is set.
func GetPageBySlug(db *gorm.DB, siteID uint, slug string, publishedOnly bool) (*models.Page, error) {
	slug, err := NormalizeSlug(slug)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	query := db.Where("site_id = ? AND slug = ?", siteID, slug)
	if publishedOnly && slug != HomeSlug {
		query = query.Where("published = ?", true)
	}

	var page models.Page
	if err := query.First(&page).Error; err != nil {
		return nil, notFound("page", err)
	}
	return &page, nil
}

// UpdatePage changes a page's title and slug. Empty values are left unchanged.
func UpdatePage(db *gorm.DB, siteID, pageID uint, title, slug string) (*models.Page, error) {
	page, err := GetPage(db, siteID, pageID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if title = strings.TrimSpace(title); title != "" {
		updates["title"] = title
	}
	if strings.TrimSpace(slug) != "" {
		slug, err = NormalizeSlug(slug)
		if err != nil {
			return nil, err
		}
		if slug != page.Slug {
			if page.Slug == HomeSlug || slug == HomeSlug {
				return nil, ErrHomepage
			}
			if err := checkSlugFree(db, siteID, slug, page.ID); err != nil {
				return nil, err
			}
			updates["slug"] = slug
		}
	}

	if len(updates) > 0 {
		if err := db.Model(page).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update page: %w", err)
		}
	}
	return GetPage(db, siteID, pageID)
}

// SetPublished publishes or unpublishes a page
func SetPublished(db *gorm.DB, siteID, pageID uint, published bool) (*models.Page, error) {
	page, err := GetPage(db, siteID, pageID)
	if err != nil {
		return nil, err
	}
	if err := db.Model(page).Update("published", published).Error; err != nil {
		return nil, fmt.Errorf("failed to update page: %w", err)
	}
	return page, nil
}

// DeletePage deletes a page and all of its blocks
func DeletePage(db *gorm.DB, siteID, pageID uint) error {
	page, err := GetPage(db, siteID, pageID)
	if err != nil {
		return err
	}
	if page.Slug == HomeSlug {
		return ErrHomepage
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", page.ID).Delete(&models.Block{}).Error; err != nil {
			return fmt.Errorf("failed to delete blocks: %w", err)
		}
		if err := tx.Delete(page).Error; err != nil {
			return fmt.Errorf("failed to delete page: %w", err)
		}
		return nil
	})
}

func checkSlugFree(db *gorm.DB, siteID uint, slug string, exceptID uint) error {
	var count int64
	query := db.Model(&models.Page{}).Where("site_id = ? AND slug = ?", siteID, slug)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", ErrSlugTaken, slug)
	}
	return nil
}

func notFound(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}
