package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/werewolves/lupus/internal/blocks"
	"github.com/werewolves/lupus/internal/content"
	"github.com/werewolves/lupus/internal/middleware"
	"github.com/werewolves/lupus/internal/models"
	"github.com/werewolves/lupus/internal/sites"
	"github.com/werewolves/lupus/internal/themes"
)

// currentSite returns the site resolved by SiteResolutionMiddleware,
// replying 500 when it is missing
func currentSite(c *gin.Context) (*models.Site, bool) {
	site, ok := middleware.SiteFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "site not resolved"})
		return nil, false
	}
	return site, true
}

// currentUser returns the user set by auth.RequireAuth
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("user")
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// paramID parses a numeric route parameter, replying 400 when it is not one
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// respondError maps domain errors to status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, content.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, content.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, blocks.ErrUnknownType),
		errors.Is(err, blocks.ErrInvalidAttributes),
		errors.Is(err, blocks.ErrNestingNotAllowed),
		errors.Is(err, content.ErrInvalidSlug),
		errors.Is(err, content.ErrHomepage),
		errors.Is(err, themes.ErrInvalidSettings),
		errors.Is(err, sites.ErrInvalidSubdomain):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
