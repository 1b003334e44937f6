package handlers

import (
	"errors"
	"fmt"
	"html"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/werewolves/lupus/internal/blocks"
	"github.com/werewolves/lupus/internal/config"
	"github.com/werewolves/lupus/internal/content"
	"github.com/werewolves/lupus/internal/db"
	"github.com/werewolves/lupus/internal/models"
	"github.com/werewolves/lupus/internal/sites"
	"github.com/werewolves/lupus/internal/themes"
)

// ThemeSettingsKey is the context key themeMiddleware stores themes.Settings under
const ThemeSettingsKey = "themeSettings"

// ServeHomepage renders the site's homepage
func ServeHomepage(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}

	page, err := content.GetPageBySlug(db.GetDB(), site.ID, content.HomeSlug, true)
	if err != nil {
		if !errors.Is(err, content.ErrNotFound) {
			log.Printf("Error loading homepage for site %d: %v", site.ID, err)
		}
		// No homepage exists yet - show placeholder
		title := html.EscapeString(siteTitle(site))
		body := fmt.Sprintf(`<div class="placeholder"><h1>%s</h1><p>This site hasn't been set up yet.</p></div>`, title)
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(document(site, siteTitle(site), body)))
		return
	}

	servePage(c, site, page)
}

// ServePage renders a published page by its slug
func ServePage(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}

	page, err := content.GetPageBySlug(db.GetDB(), site.ID, c.Request.URL.Path, true)
	if err != nil {
		if !errors.Is(err, content.ErrNotFound) {
			log.Printf("Error loading page %s for site %d: %v", c.Request.URL.Path, site.ID, err)
		}
		body := `<div class="not-found"><h1>404</h1><p>The page you're looking for doesn't exist or hasn't been published yet.</p><p><a href="/">Home</a></p></div>`
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(document(site, "Page Not Found", body)))
		return
	}

	servePage(c, site, page)
}

// ServeThemeCSS serves the site's customizer variables and block styles
func ServeThemeCSS(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}

	settings := sites.Settings(site)
	if v, ok := c.Get(ThemeSettingsKey); ok {
		if s, ok := v.(themes.Settings); ok {
			settings = s
		}
	}

	css := themes.GenerateCSS(settings)
	if config.GetBool("render.minify_css") {
		minified, err := themes.Stylesheet(settings)
		if err != nil {
			log.Printf("Serving unminified stylesheet for site %d: %v", site.ID, err)
		} else {
			css = minified
		}
	}

	c.Header("Cache-Control", "public, max-age=300")
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(css))
}

func servePage(c *gin.Context, site *models.Site, page *models.Page) {
	body, err := content.RenderPage(db.GetDB(), page.ID, blocks.ModeSave)
	if err != nil {
		log.Printf("Error rendering page %d: %v", page.ID, err)
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(document(site, "Error", "<p>Something went wrong.</p>")))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(document(site, page.Title, body)))
}

func siteTitle(site *models.Site) string {
	if site.SiteTitle != "" {
		return site.SiteTitle
	}
	return site.Subdomain
}

// document wraps rendered blocks in a page linking the theme stylesheet
func document(site *models.Site, title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<title>%s | %s</title>
	<link rel="stylesheet" href="/theme.css">
</head>
<body>
<main class="site-main">
%s
</main>
</body>
</html>
`, html.EscapeString(title), html.EscapeString(siteTitle(site)), body)
}
