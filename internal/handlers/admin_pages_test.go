package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/werewolves/lupus/internal/content"
)

func TestCreateAndListPages(t *testing.T) {
	database := setupHandlerTestDB(t)
	site, user := seedSite(t, database, "pack", "alpha@example.com", "full-moon-rising")
	r := newRouter(site, user)

	w := doJSON(t, r, "POST", "/admin/api/pages", pageRequest{Slug: "Rules", Title: "Pack Rules"})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var created pageResponse
	decodeBody(t, w, &created)
	if created.Slug != "/rules" || created.Published {
		t.Errorf("unexpected page: %+v", created)
	}

	w = doJSON(t, r, "POST", "/admin/api/pages", pageRequest{Slug: "/rules", Title: "Again"})
	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409 for a duplicate slug, got %d", w.Code)
	}

	w = doJSON(t, r, "POST", "/admin/api/pages", pageRequest{Slug: "bad slug", Title: "Bad"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for an invalid slug, got %d", w.Code)
	}

	w = doJSON(t, r, "GET", "/admin/api/pages", nil)
	var list struct {
		Pages []pageResponse `json:"pages"`
	}
	decodeBody(t, w, &list)
	if len(list.Pages) != 2 || list.Pages[0].Slug != "/" || list.Pages[1].Slug != "/rules" {
		t.Errorf("expected homepage and /rules, got %+v", list.Pages)
	}
}

func TestGetPageHandlerReturnsBlockTree(t *testing.T) {
	database := setupHandlerTestDB(t)
	site, user := seedSite(t, database, "pack", "alpha@example.com", "full-moon-rising")
	page, _ := content.CreatePage(database, site.ID, "/rules", "Rules")
	section, _ := content.AddBlock(database, site.ID, page.ID, nil, "section", `{"background":"alternative-colors"}`)
	content.AddBlock(database, site.ID, page.ID, &section.ID, "text", `{"content":"inner"}`)

	w := doJSON(t, newRouter(site, user), "GET", fmt.Sprintf("/admin/api/pages/%d", page.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp pageResponse
	decodeBody(t, w, &resp)
	if len(resp.Blocks) != 1 || resp.Blocks[0].Type != "section" {
		t.Fatalf("expected one section, got %+v", resp.Blocks)
	}
	if len(resp.Blocks[0].Children) != 1 || resp.Blocks[0].Children[0].Type != "text" {
		t.Errorf("expected the inner text block, got %+v", resp.Blocks[0].Children)
	}
}

func TestPageHandlersNotFoundAndBadID(t *testing.T) {
	database := setupHandlerTestDB(t)
	site, user := seedSite(t, database, "pack", "alpha@example.com", "full-moon-rising")
	other, _ := seedSite(t, database, "other", "beta@example.com", "full-moon-rising")
	foreign, _ := content.CreatePage(database, other.ID, "/secret", "Secret")
	r := newRouter(site, user)

	if w := doJSON(t, r, "GET", "/admin/api/pages/abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for a bad id, got %d", w.Code)
	}
	if w := doJSON(t, r, "GET", "/admin/api/pages/999", nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
	if w := doJSON(t, r, "DELETE", fmt.Sprintf("/admin/api/pages/%d", foreign.ID), nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for another site's page, got %d", w.Code)
	}
}

func TestUpdatePublishAndDeletePage(t *testing.T) {
	database := setupHandlerTestDB(t)
	site, user := seedSite(t, database, "pack", "alpha@example.com", "full-moon-rising")
	page, _ := content.CreatePage(database, site.ID, "/rules", "Rules")
	r := newRouter(site, user)
	path := fmt.Sprintf("/admin/api/pages/%d", page.ID)

	w := doJSON(t, r, "PUT", path, pageRequest{Title: "House Rules"})
	var updated pageResponse
	decodeBody(t, w, &updated)
	if updated.Title != "House Rules" || updated.Slug != "/rules" {
		t.Errorf("unexpected page after update: %+v", updated)
	}

	w = doJSON(t, r, "POST", path+"/publish", nil)
	decodeBody(t, w, &updated)
	if !updated.Published {
		t.Error("expected page to be published")
	}

	w = doJSON(t, r, "POST", path+"/unpublish", nil)
	decodeBody(t, w, &updated)
	if updated.Published {
		t.Error("expected page to be unpublished")
	}

	if w := doJSON(t, r, "DELETE", path, nil); w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if w := doJSON(t, r, "GET", path, nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 after delete, got %d", w.Code)
	}

	home, _ := content.GetPageBySlug(database, site.ID, "/", false)
	if w := doJSON(t, r, "DELETE", fmt.Sprintf("/admin/api/pages/%d", home.ID), nil); w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 deleting the homepage, got %d", w.Code)
	}
}
