package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/werewolves/lupus/internal/blocks"
	"github.com/werewolves/lupus/internal/content"
	"github.com/werewolves/lupus/internal/db"
	"github.com/werewolves/lupus/internal/models"
)

type pageResponse struct {
	ID        uint             `json:"id"`
	Slug      string           `json:"slug"`
	Title     string           `json:"title"`
	Published bool             `json:"published"`
	UpdatedAt time.Time        `json:"updated_at"`
	Blocks    []*blockResponse `json:"blocks,omitempty"`
}

type blockResponse struct {
	ID       uint             `json:"id"`
	Type     string           `json:"type"`
	Data     json.RawMessage  `json:"data"`
	Children []*blockResponse `json:"children,omitempty"`
}

type pageRequest struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

func newPageResponse(page *models.Page) *pageResponse {
	return &pageResponse{
		ID:        page.ID,
		Slug:      page.Slug,
		Title:     page.Title,
		Published: page.Published,
		UpdatedAt: page.UpdatedAt,
	}
}

func newBlockResponses(nodes []*blocks.Node) []*blockResponse {
	out := make([]*blockResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &blockResponse{
			ID:       n.ID,
			Type:     n.Type,
			Data:     rawData(n.Data),
			Children: newBlockResponses(n.Children),
		})
	}
	return out
}

func rawData(data string) json.RawMessage {
	if !json.Valid([]byte(data)) {
		return json.RawMessage("{}")
	}
	return json.RawMessage(data)
}

// ListPagesHandler lists the site's pages
func ListPagesHandler(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}

	pages, err := content.ListPages(db.GetDB(), site.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]*pageResponse, 0, len(pages))
	for i := range pages {
		out = append(out, newPageResponse(&pages[i]))
	}
	c.JSON(http.StatusOK, gin.H{"pages": out})
}

// CreatePageHandler creates a new draft page
func CreatePageHandler(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}

	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Slug == "" || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug and title are required"})
		return
	}

	page, err := content.CreatePage(db.GetDB(), site.ID, req.Slug, req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newPageResponse(page))
}

// GetPageHandler returns a page with its block tree
func GetPageHandler(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}
	pageID, ok := paramID(c, "id")
	if !ok {
		return
	}

	page, err := content.GetPage(db.GetDB(), site.ID, pageID)
	if err != nil {
		respondError(c, err)
		return
	}
	tree, err := content.LoadTree(db.GetDB(), page.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := newPageResponse(page)
	resp.Blocks = newBlockResponses(tree)
	c.JSON(http.StatusOK, resp)
}

// UpdatePageHandler changes a page's title or slug
func UpdatePageHandler(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}
	pageID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	page, err := content.UpdatePage(db.GetDB(), site.ID, pageID, req.Title, req.Slug)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPageResponse(page))
}

// DeletePageHandler deletes a page and its blocks
func DeletePageHandler(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}
	pageID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := content.DeletePage(db.GetDB(), site.ID, pageID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PublishPageHandler makes a page visible to visitors
func PublishPageHandler(c *gin.Context) {
	setPublished(c, true)
}

// UnpublishPageHandler hides a page from visitors
func UnpublishPageHandler(c *gin.Context) {
	setPublished(c, false)
}

func setPublished(c *gin.Context, published bool) {
	site, ok := currentSite(c)
	if !ok {
		return
	}
	pageID, ok := paramID(c, "id")
	if !ok {
		return
	}

	page, err := content.SetPublished(db.GetDB(), site.ID, pageID, published)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPageResponse(page))
}
