package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/werewolves/lupus/internal/sites"
	"github.com/werewolves/lupus/internal/themes"
)

func TestGetSettingsHandler(t *testing.T) {
	database := setupHandlerTestDB(t)
	site, user := seedSite(t, database, "pack", "alpha@example.com", "full-moon-rising")

	w := doJSON(t, newRouter(site, user), "GET", "/admin/api/settings", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp struct {
		Settings     themes.Settings `json:"settings"`
		Palettes     []string        `json:"palettes"`
		MessageFonts []string        `json:"message_fonts"`
	}
	decodeBody(t, w, &resp)
	if resp.Settings.Palette != themes.DefaultPalette {
		t.Errorf("expected default palette, got %q", resp.Settings.Palette)
	}
	if len(resp.Palettes) != len(themes.ListPalettes()) || len(resp.MessageFonts) == 0 {
		t.Errorf("expected palette and font choices, got %+v", resp)
	}
}

func TestUpdateSettingsHandler(t *testing.T) {
	database := setupHandlerTestDB(t)
	site, user := seedSite(t, database, "pack", "alpha@example.com", "full-moon-rising")
	r := newRouter(site, user)

	w := doJSON(t, r, "PUT", "/admin/api/settings", themes.Settings{
		Palette:          "moonlight",
		DarkMode:         true,
		AlternativeColor: "#112233",
		MessageFont:      "serif",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	stored, _ := sites.GetSiteByID(database, site.ID)
	got := sites.Settings(stored)
	if got.Palette != "moonlight" || !got.DarkMode || got.AlternativeColor != "#112233" || got.MessageFont != "serif" {
		t.Errorf("settings not stored: %+v", got)
	}
}

func TestUpdateSettingsHandlerRejectsInvalid(t *testing.T) {
	database := setupHandlerTestDB(t)
	site, user := seedSite(t, database, "pack", "alpha@example.com", "full-moon-rising")
	r := newRouter(site, user)

	for _, body := range []string{
		`{"palette":"neon"}`,
		`{"accent_color":"red"}`,
		`{"logo_url":"javascript:alert(1)"}`,
		`{"palette":`,
	} {
		w := doJSON(t, r, "PUT", "/admin/api/settings", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", body, w.Code)
		}
		if !strings.Contains(w.Body.String(), "error") {
			t.Errorf("%s: expected an error body", body)
		}
	}
}
