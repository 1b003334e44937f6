package blocks

import (
	"fmt"
	"html"
	"strings"
)

// TextBlockData represents the JSON structure for text blocks
type TextBlockData struct {
	Content string `json:"content"`
}

// renderTextBlock renders a text block with HTML escaping and line break preservation
func renderTextBlock(dataJSON string) (string, error) {
	var data TextBlockData
	if err := decode(dataJSON, &data); err != nil {
		return "", fmt.Errorf("failed to parse text block data: %w", err)
	}

	// Escape HTML to prevent XSS
	safe := html.EscapeString(data.Content)

	// Preserve line breaks
	formatted := strings.ReplaceAll(safe, "\n", "<br>")

	return fmt.Sprintf(`<div class="text-block">%s</div>`, formatted), nil
}
