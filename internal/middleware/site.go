package middleware

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/werewolves/lupus/internal/config"
	"github.com/werewolves/lupus/internal/models"
	"github.com/werewolves/lupus/internal/sites"
	"gorm.io/gorm"
)

// SiteKey is the gin context key holding the resolved *models.Site
const SiteKey = "site"

const defaultCacheTTL = 60 * time.Second

// CacheEntry represents a cached site with expiration
type CacheEntry struct {
	Site      *models.Site
	ExpiresAt time.Time
}

var siteCache sync.Map

// cacheTTL reads server.site_cache_ttl, falling back to a minute
func cacheTTL() time.Duration {
	if d := config.GetDuration("server.site_cache_ttl"); d > 0 {
		return d
	}
	return defaultCacheTTL
}

// SiteResolutionMiddleware resolves the site based on Host header
func SiteResolutionMiddleware(db *gorm.DB, baseDomain string) gin.HandlerFunc {
	baseDomain = strings.ToLower(baseDomain)

	return func(c *gin.Context) {
		host := normalizeHost(c.Request.Host)

		if entry, ok := siteCache.Load(host); ok {
			cacheEntry := entry.(CacheEntry)
			if time.Now().Before(cacheEntry.ExpiresAt) {
				c.Set(SiteKey, cacheEntry.Site)
				c.Next()
				return
			}
			siteCache.Delete(host)
		}

		// Custom domain first, then subdomain of the base domain
		site, err := sites.GetSiteByDomain(db, host)
		if err != nil {
			if subdomain := extractSubdomain(host, baseDomain); subdomain != "" {
				site, err = sites.GetSiteBySubdomain(db, subdomain)
			}
		}

		if err != nil || site == nil {
			c.AbortWithStatusJSON(404, gin.H{"error": "site not found"})
			return
		}

		siteCache.Store(host, CacheEntry{
			Site:      site,
			ExpiresAt: time.Now().Add(cacheTTL()),
		})

		c.Set(SiteKey, site)
		c.Next()
	}
}

// SiteFromContext returns the site resolved for this request
func SiteFromContext(c *gin.Context) (*models.Site, bool) {
	v, ok := c.Get(SiteKey)
	if !ok {
		return nil, false
	}
	site, ok := v.(*models.Site)
	return site, ok && site != nil
}

// InvalidateSite drops every cached host that resolves to siteID.
// Called after customizer settings or domains change.
func InvalidateSite(siteID uint) {
	siteCache.Range(func(key, value any) bool {
		if value.(CacheEntry).Site.ID == siteID {
			siteCache.Delete(key)
		}
		return true
	})
}

// ClearSiteCache clears the entire site cache
func ClearSiteCache() {
	siteCache.Range(func(key, _ any) bool {
		siteCache.Delete(key)
		return true
	})
}

func normalizeHost(host string) string {
	host = strings.ToLower(host)
	if idx := strings.LastIndex(host, ":"); idx != -1 && !strings.HasSuffix(host, "]") {
		host = host[:idx]
	}
	return strings.TrimSuffix(host, ".")
}

// extractSubdomain extracts the subdomain from a host
// e.g., "pack.lupus.example" with baseDomain "lupus.example" returns "pack"
func extractSubdomain(host, baseDomain string) string {
	if baseDomain == "" || !strings.HasSuffix(host, "."+baseDomain) {
		return ""
	}

	subdomain := strings.TrimSuffix(host, "."+baseDomain)

	// nested subdomains are not sites
	if strings.Contains(subdomain, ".") {
		return ""
	}

	return subdomain
}
