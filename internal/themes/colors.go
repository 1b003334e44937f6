package themes

import (
	"regexp"
	"strings"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Colors represents all generated colors for a theme
type Colors struct {
	Primary         string // Main brand color
	Secondary       string // Accent/highlight color
	Background      string // Page background
	Text            string // Main text color
	TextMuted       string // Secondary/muted text
	Alternative     string // alternative-colors section background
	AlternativeText string // alternative-colors section text
	Overlay         string // image overlay tint
	Message         string // decorative background message
}

// IsHexColor reports whether s is a #RGB or #RRGGBB color
func IsHexColor(s string) bool {
	return hexColor.MatchString(s)
}

// GenerateColors resolves the full color set for customizer settings.
// Overrides that are not hex colors are ignored.
func GenerateColors(s Settings) *Colors {
	palette := GetPalette(s.Palette)
	if palette == nil {
		palette = GetPalette(DefaultPalette)
	}

	var colors *Colors
	if s.DarkMode {
		colors = generateDarkColors(palette)
	} else {
		colors = generateLightColors(palette)
	}

	if c := strings.TrimSpace(s.AccentColor); IsHexColor(c) {
		colors.Secondary = c
	}
	if c := strings.TrimSpace(s.AlternativeColor); IsHexColor(c) {
		colors.Alternative = c
	}
	if c := strings.TrimSpace(s.AlternativeTextColor); IsHexColor(c) {
		colors.AlternativeText = c
	}
	return colors
}

// generateLightColors creates colors for light mode
func generateLightColors(palette *Palette) *Colors {
	return &Colors{
		Primary:         palette.Primary,
		Secondary:       palette.Secondary,
		Background:      "#ffffff",
		Text:            "#111111",
		TextMuted:       "#6b7280",
		Alternative:     palette.Alternative,
		AlternativeText: palette.AlternativeText,
		Overlay:         "#000000",
		Message:         palette.Primary,
	}
}

// generateDarkColors creates colors for dark mode
func generateDarkColors(palette *Palette) *Colors {
	return &Colors{
		Primary:         "#f1f5f9", // Light version of primary
		Secondary:       palette.Secondary,
		Background:      "#0f172a",
		Text:            "#f1f5f9",
		TextMuted:       "#94a3b8",
		Alternative:     palette.Alternative,
		AlternativeText: palette.AlternativeText,
		Overlay:         "#000000",
		Message:         "#334155",
	}
}
