package themes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/werewolves/lupus/internal/blocks"
)

// Font stacks available for the decorative background message
var messageFonts = map[string]string{
	"system":    `system-ui, -apple-system, "Segoe UI", sans-serif`,
	"condensed": `"Roboto Condensed", "Arial Narrow", sans-serif`,
	"serif":     `Georgia, "Times New Roman", serif`,
	"mono":      `ui-monospace, "SFMono-Regular", Menlo, monospace`,
}

// DefaultMessageFont is used when a site names an unknown font
const DefaultMessageFont = "condensed"

// ErrInvalidSettings is returned for customizer values that cannot be applied
var ErrInvalidSettings = errors.New("invalid settings")

// Settings are the per-site customizer values that end up as CSS variables
type Settings struct {
	Palette              string `json:"palette"`
	DarkMode             bool   `json:"dark_mode"`
	AccentColor          string `json:"accent_color"`
	AlternativeColor     string `json:"alternative_color"`
	AlternativeTextColor string `json:"alternative_text_color"`
	LogoURL              string `json:"logo_url"`
	MessageFont          string `json:"message_font"`
}

// Validate reports the first setting that cannot be applied
func (s Settings) Validate() error {
	if s.Palette != "" && GetPalette(s.Palette) == nil {
		return fmt.Errorf("%w: unknown palette %s", ErrInvalidSettings, s.Palette)
	}
	colors := map[string]string{
		"accent_color":           s.AccentColor,
		"alternative_color":      s.AlternativeColor,
		"alternative_text_color": s.AlternativeTextColor,
	}
	for name, value := range colors {
		if value = strings.TrimSpace(value); value != "" && !IsHexColor(value) {
			return fmt.Errorf("%w: %s must be a hex color, got %q", ErrInvalidSettings, name, value)
		}
	}
	if err := blocks.ValidateImageURL(s.LogoURL); err != nil {
		return fmt.Errorf("%w: logo_url: %v", ErrInvalidSettings, err)
	}
	if s.MessageFont != "" {
		if _, ok := messageFonts[s.MessageFont]; !ok {
			return fmt.Errorf("%w: unknown message font %s", ErrInvalidSettings, s.MessageFont)
		}
	}
	return nil
}

// MessageFontStack returns the CSS font-family for a font name
func MessageFontStack(name string) string {
	if stack, ok := messageFonts[name]; ok {
		return stack
	}
	return messageFonts[DefaultMessageFont]
}

// ListMessageFonts returns the selectable font names
func ListMessageFonts() []string {
	return []string{"system", "condensed", "serif", "mono"}
}
