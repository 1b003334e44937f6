// SPDX-License-Identifier: MIT
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/werewolves/lupus/internal/blocks"
	"github.com/werewolves/lupus/internal/content"
	"github.com/werewolves/lupus/internal/db"
	"github.com/werewolves/lupus/internal/models"
)

type createBlockRequest struct {
	Type     string          `json:"type" binding:"required"`
	ParentID *uint           `json:"parent_id"`
	Data     json.RawMessage `json:"data"`
}

type updateBlockRequest struct {
	Data json.RawMessage `json:"data"`
}

// previewRequest is an unsaved block, optionally with inner blocks
type previewRequest struct {
	Type     string            `json:"type" binding:"required"`
	Data     json.RawMessage   `json:"data"`
	Children []*previewRequest `json:"children"`
}

func (p *previewRequest) node() *blocks.Node {
	n := &blocks.Node{Type: p.Type, Data: string(p.Data)}
	for _, child := range p.Children {
		if child != nil {
			n.Children = append(n.Children, child.node())
		}
	}
	return n
}

func blockJSON(block *models.Block) gin.H {
	return gin.H{
		"id":        block.ID,
		"page_id":   block.PageID,
		"parent_id": block.ParentID,
		"type":      block.Type,
		"order":     block.Order,
		"data":      rawData(block.Data),
	}
}

// CreateBlockHandler appends a block to a page, or inside parent_id
func CreateBlockHandler(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}
	pageID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req createBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "block type is required"})
		return
	}

	block, err := content.AddBlock(db.GetDB(), site.ID, pageID, req.ParentID, req.Type, string(req.Data))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, blockJSON(block))
}

// UpdateBlockHandler replaces a block's attributes
func UpdateBlockHandler(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}
	blockID, ok := paramID(c, "block_id")
	if !ok {
		return
	}

	var req updateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	block, err := content.UpdateBlock(db.GetDB(), site.ID, blockID, string(req.Data))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blockJSON(block))
}

// DeleteBlockHandler deletes a block and its inner blocks
func DeleteBlockHandler(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}
	blockID, ok := paramID(c, "block_id")
	if !ok {
		return
	}

	if err := content.DeleteBlock(db.GetDB(), site.ID, blockID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MoveBlockUpHandler swaps a block with its previous sibling
func MoveBlockUpHandler(c *gin.Context) {
	moveBlock(c, content.Up)
}

// MoveBlockDownHandler swaps a block with its next sibling
func MoveBlockDownHandler(c *gin.Context) {
	moveBlock(c, content.Down)
}

func moveBlock(c *gin.Context, dir content.Direction) {
	site, ok := currentSite(c)
	if !ok {
		return
	}
	blockID, ok := paramID(c, "block_id")
	if !ok {
		return
	}

	if err := content.MoveBlock(db.GetDB(), site.ID, blockID, dir); err != nil {
		respondError(c, err)
		return
	}
	block, err := content.GetBlock(db.GetDB(), site.ID, blockID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blockJSON(block))
}

// PreviewBlockHandler renders unsaved attributes as editor preview markup
func PreviewBlockHandler(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "block type is required"})
		return
	}

	html, err := blocks.Render(req.node(), blocks.ModePreview)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"html": html})
}
