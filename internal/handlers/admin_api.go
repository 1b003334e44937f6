package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/werewolves/lupus/internal/db"
	"github.com/werewolves/lupus/internal/sites"
)

// SubdomainCheckHandler checks if a subdomain is available for a new site
func SubdomainCheckHandler(c *gin.Context) {
	subdomain := c.Query("subdomain")
	if subdomain == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subdomain required"})
		return
	}

	available, err := sites.SubdomainAvailable(db.GetDB(), subdomain)
	if err != nil {
		if errors.Is(err, sites.ErrInvalidSubdomain) {
			// malformed and reserved names are simply unavailable
			c.JSON(http.StatusOK, gin.H{"available": false, "reason": err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": available})
}
