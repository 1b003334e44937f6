package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/werewolves/lupus/internal/auth"
	"github.com/werewolves/lupus/internal/config"
	"github.com/werewolves/lupus/internal/db"
	"github.com/werewolves/lupus/internal/sites"
	"github.com/werewolves/lupus/internal/users"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// sessionMaxAge is the cookie lifetime in seconds, matching the token expiry
func sessionMaxAge() int {
	hours := config.GetInt("auth.jwt_expiry_hours")
	if hours <= 0 {
		hours = 8
	}
	return hours * 3600
}

// LoginHandler exchanges credentials for a session token on the current site
func LoginHandler(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := users.Authenticate(db.GetDB(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		respondError(c, err)
		return
	}

	if !sites.HasAccess(db.GetDB(), site, user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this site"})
		return
	}

	token, err := auth.GenerateToken(user, site)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.CookieName, token, sessionMaxAge(), "/", "", config.GetBool("server.tls_enabled"), true)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":              user.ID,
			"email":           user.Email,
			"is_global_admin": user.IsGlobalAdmin,
		},
		"site": gin.H{"id": site.ID, "subdomain": site.Subdomain},
	})
}

// LogoutHandler clears the session cookie
func LogoutHandler(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", config.GetBool("server.tls_enabled"), true)
	c.Status(http.StatusNoContent)
}

// MeHandler returns the signed-in user and site
func MeHandler(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":              user.ID,
			"email":           user.Email,
			"is_global_admin": user.IsGlobalAdmin,
		},
		"site": gin.H{"id": site.ID, "subdomain": site.Subdomain, "title": siteTitle(site)},
	})
}
