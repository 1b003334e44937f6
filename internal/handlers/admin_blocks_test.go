// SPDX-License-Identifier: MIT
package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/werewolves/lupus/internal/content"
)

type blockResult struct {
	ID       uint  `json:"id"`
	ParentID *uint `json:"parent_id"`
	Order    int   `json:"order"`
}

func TestCreateBlockHandler(t *testing.T) {
	database := setupHandlerTestDB(t)
	site, user := seedSite(t, database, "pack", "alpha@example.com", "full-moon-rising")
	page, _ := content.CreatePage(database, site.ID, "/rules", "Rules")
	r := newRouter(site, user)
	path := fmt.Sprintf("/admin/api/pages/%d/blocks", page.ID)

	w := doJSON(t, r, "POST", path, gin.H{"type": "section", "data": gin.H{"backgroundFeature": "background-message", "backgroundMessage": "AWOO"}})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var section blockResult
	decodeBody(t, w, &section)

	w = doJSON(t, r, "POST", path, gin.H{"type": "text", "parent_id": section.ID, "data": gin.H{"content": "inside"}})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201 for an inner block, got %d: %s", w.Code, w.Body.String())
	}
	var inner blockResult
	decodeBody(t, w, &inner)
	if inner.ParentID == nil || *inner.ParentID != section.ID {
		t.Errorf("expected parent %d, got %v", section.ID, inner.ParentID)
	}
}

func TestCreateBlockHandlerRejectsInvalid(t *testing.T) {
	database := setupHandlerTestDB(t)
	site, user := seedSite(t, database, "pack", "alpha@example.com", "full-moon-rising")
	page, _ := content.CreatePage(database, site.ID, "/rules", "Rules")
	header, _ := content.AddBlock(database, site.ID, page.ID, nil, "header", "")
	r := newRouter(site, user)
	path := fmt.Sprintf("/admin/api/pages/%d/blocks", page.ID)

	tests := []struct {
		name string
		body interface{}
		code int
	}{
		{"missing type", gin.H{}, http.StatusBadRequest},
		{"unknown type", gin.H{"type": "carousel"}, http.StatusBadRequest},
		{"section in header", gin.H{"type": "section", "parent_id": header.ID}, http.StatusBadRequest},
		{"bad background", gin.H{"type": "section", "data": gin.H{"background": "plaid"}}, http.StatusBadRequest},
		{"script image url", gin.H{"type": "header", "data": gin.H{"backgroundImageURL": "javascript:alert(1)"}}, http.StatusBadRequest},
		{"missing parent", gin.H{"type": "text", "parent_id": 999}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := doJSON(t, r, "POST", path, tt.body); w.Code != tt.code {
				t.Errorf("Expected status %d, got %d: %s", tt.code, w.Code, w.Body.String())
			}
		})
	}
}

func TestUpdateDeleteAndMoveBlock(t *testing.T) {
	database := setupHandlerTestDB(t)
	site, user := seedSite(t, database, "pack", "alpha@example.com", "full-moon-rising")
	page, _ := content.CreatePage(database, site.ID, "/rules", "Rules")
	first, _ := content.AddBlock(database, site.ID, page.ID, nil, "text", `{"content":"first"}`)
	second, _ := content.AddBlock(database, site.ID, page.ID, nil, "text", `{"content":"second"}`)
	r := newRouter(site, user)

	w := doJSON(t, r, "PUT", fmt.Sprintf("/admin/api/blocks/%d", first.ID), gin.H{"data": gin.H{"content": "edited"}})
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "edited") {
		t.Errorf("update failed: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, "POST", fmt.Sprintf("/admin/api/blocks/%d/move-up", second.ID), nil)
	var moved blockResult
	decodeBody(t, w, &moved)
	if moved.Order != first.Order {
		t.Errorf("expected second block to take order %d, got %d", first.Order, moved.Order)
	}

	if w := doJSON(t, r, "DELETE", fmt.Sprintf("/admin/api/blocks/%d", first.ID), nil); w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if w := doJSON(t, r, "PUT", fmt.Sprintf("/admin/api/blocks/%d", first.ID), gin.H{"data": gin.H{}}); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for a deleted block, got %d", w.Code)
	}
}

func TestPreviewBlockHandler(t *testing.T) {
	database := setupHandlerTestDB(t)
	site, user := seedSite(t, database, "pack", "alpha@example.com", "full-moon-rising")
	r := newRouter(site, user)

	w := doJSON(t, r, "POST", "/admin/api/blocks/preview", gin.H{
		"type": "section",
		"data": gin.H{"backgroundFeature": "background-message", "backgroundMessage": "Hi"},
		"children": []gin.H{
			{"type": "text", "data": gin.H{"content": "inner"}},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		HTML string `json:"html"`
	}
	decodeBody(t, w, &resp)
	if !strings.Contains(resp.HTML, strings.Repeat("Hi ", 20)) {
		t.Errorf("expected edit-time padding in preview: %s", resp.HTML)
	}
	if strings.Contains(resp.HTML, "&#160;") || strings.Contains(resp.HTML, "aria-hidden") {
		t.Errorf("preview should not carry saved markup: %s", resp.HTML)
	}
	if !strings.Contains(resp.HTML, "inner") {
		t.Errorf("expected inner blocks in preview: %s", resp.HTML)
	}

	w = doJSON(t, r, "POST", "/admin/api/blocks/preview", gin.H{"type": "marquee"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for an unknown type, got %d", w.Code)
	}
}
