package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/werewolves/lupus/internal/db"
	"github.com/werewolves/lupus/internal/middleware"
	"github.com/werewolves/lupus/internal/sites"
	"github.com/werewolves/lupus/internal/themes"
)

func paletteNames() []string {
	var names []string
	for _, p := range themes.ListPalettes() {
		names = append(names, p.Name)
	}
	return names
}

// GetSettingsHandler returns the customizer settings and the available choices
func GetSettingsHandler(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"settings":      sites.Settings(site),
		"palettes":      paletteNames(),
		"message_fonts": themes.ListMessageFonts(),
	})
}

// UpdateSettingsHandler validates and stores the customizer settings
func UpdateSettingsHandler(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}

	var req themes.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := sites.UpdateSettings(db.GetDB(), site.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	// the resolved site carries its settings, so cached copies are stale now
	middleware.InvalidateSite(site.ID)

	c.JSON(http.StatusOK, gin.H{"settings": sites.Settings(updated)})
}
