package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/werewolves/lupus/internal/db"
	"github.com/werewolves/lupus/internal/models"
	"github.com/werewolves/lupus/internal/sites"
)

// CookieName is the session cookie holding the JWT
const CookieName = "lupus_token"

// tokenFromRequest reads the JWT from the session cookie or a bearer header
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// authenticate validates the request token against the resolved site.
// On failure the context is aborted and nil is returned.
func authenticate(c *gin.Context) *models.User {
	claims, err := ValidateToken(tokenFromRequest(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return nil
	}

	// Load user from database
	var user models.User
	if err := db.GetDB().First(&user, claims.UserID).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return nil
	}

	siteVal, exists := c.Get("site")
	if !exists {
		c.AbortWithStatus(http.StatusInternalServerError)
		return nil
	}
	site := siteVal.(*models.Site)

	// Tokens are issued per site; only global admins carry them across
	if claims.SiteID != site.ID && !user.IsGlobalAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token was issued for another site"})
		return nil
	}

	if !sites.HasAccess(db.GetDB(), site, &user) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You don't have access to this site"})
		return nil
	}

	// Set user in context for handlers
	c.Set("user", &user)
	return &user
}

// RequireAuth middleware validates the JWT and checks access to the resolved site
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticate(c) == nil {
			return
		}
		c.Next()
	}
}

// RequireGlobalAdmin middleware requires global admin privileges
func RequireGlobalAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := authenticate(c)
		if user == nil {
			return
		}

		if !user.IsGlobalAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Global administrator access required"})
			return
		}

		c.Next()
	}
}
