// SPDX-License-Identifier: MIT
package themes

import (
	"fmt"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/werewolves/lupus/internal/blocks"
)

var minifier = newMinifier()

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	return m
}

// GenerateCSS generates the customizer variables followed by the block styles
func GenerateCSS(s Settings) string {
	colors := GenerateColors(s)

	var b strings.Builder
	b.WriteString(":root {\n")
	fmt.Fprintf(&b, "  --lupus-color-primary: %s;\n", colors.Primary)
	fmt.Fprintf(&b, "  --lupus-color-secondary: %s;\n", colors.Secondary)
	fmt.Fprintf(&b, "  --lupus-color-bg: %s;\n", colors.Background)
	fmt.Fprintf(&b, "  --lupus-color-text: %s;\n", colors.Text)
	fmt.Fprintf(&b, "  --lupus-color-text-muted: %s;\n", colors.TextMuted)
	fmt.Fprintf(&b, "  --lupus-alternative-bg: %s;\n", colors.Alternative)
	fmt.Fprintf(&b, "  --lupus-alternative-text: %s;\n", colors.AlternativeText)
	fmt.Fprintf(&b, "  --lupus-overlay: %s;\n", colors.Overlay)
	fmt.Fprintf(&b, "  --lupus-message-color: %s;\n", colors.Message)
	fmt.Fprintf(&b, "  --lupus-message-font: %s;\n", MessageFontStack(s.MessageFont))
	// an invalid logo leaves the variable unset so the logo container stays empty
	if s.LogoURL != "" && blocks.ValidateImageURL(s.LogoURL) == nil {
		fmt.Fprintf(&b, "  --lupus-logo-url: url(%s);\n", s.LogoURL)
	}
	b.WriteString("}\n")
	b.WriteString(blockCSS(blocks.BlockClass(blocks.TypeHeader), blocks.BlockClass(blocks.TypeSection)))
	return b.String()
}

// Stylesheet returns GenerateCSS minified for serving
func Stylesheet(s Settings) (string, error) {
	out, err := minifier.String("text/css", GenerateCSS(s))
	if err != nil {
		return "", fmt.Errorf("failed to minify stylesheet: %w", err)
	}
	return out, nil
}

func blockCSS(header, section string) string {
	return strings.NewReplacer("HEADER", header, "SECTION", section).Replace(`
body {
  background-color: var(--lupus-color-bg);
  color: var(--lupus-color-text);
}

a {
  color: var(--lupus-color-secondary);
}

.HEADER, .SECTION {
  position: relative;
  overflow: hidden;
}

.HEADER.full-sized, .SECTION.full-sized {
  min-height: 100vh;
}

.HEADER__inner, .SECTION__inner {
  position: relative;
  z-index: 2;
  padding: 4rem 1.5rem;
}

.HEADER__image-overlay, .SECTION__image-overlay {
  position: absolute;
  inset: 0;
  z-index: 1;
  background-color: var(--lupus-overlay);
  opacity: 0.4;
}

.HEADER__image-container, .SECTION__image-container {
  position: absolute;
  inset: 0;
  z-index: 0;
  background-size: cover;
  background-position: center;
}

.HEADER.image-fixed .HEADER__image-container,
.SECTION.image.image-fixed .SECTION__image-container {
  background-attachment: fixed;
}

@media (prefers-reduced-motion: reduce) {
  .HEADER.image-fixed .HEADER__image-container,
  .SECTION.image.image-fixed .SECTION__image-container {
    background-attachment: scroll;
  }
}

.HEADER__photocredit, .SECTION__photocredit {
  position: absolute;
  right: 1rem;
  bottom: 0.5rem;
  z-index: 2;
  font-size: 0.75rem;
  color: var(--lupus-color-text-muted);
}

.SECTION.alternative-colors,
.SECTION__before.alternative-colors,
.SECTION__after.alternative-colors {
  background-color: var(--lupus-alternative-bg);
  color: var(--lupus-alternative-text);
}

.SECTION.horizontal .SECTION__inner {
  display: flex;
  overflow-x: auto;
  scroll-snap-type: x mandatory;
}

.SECTION__logo-container {
  position: absolute;
  inset: 0;
  z-index: 0;
  background-image: var(--lupus-logo-url, none);
  background-repeat: no-repeat;
  background-position: center;
  background-size: contain;
  opacity: 0.08;
}

.SECTION__message-container {
  position: absolute;
  inset: 0;
  z-index: 0;
  overflow: hidden;
  pointer-events: none;
  user-select: none;
  font-family: var(--lupus-message-font);
  color: var(--lupus-message-color);
  opacity: 0.15;
}

.SECTION__message-line {
  display: flex;
  white-space: nowrap;
  font-size: 4rem;
  text-transform: uppercase;
}

.SECTION__message-line:nth-child(even) {
  transform: translateX(-25%);
}
`)
}
