package blocks

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/werewolves/lupus/internal/textpad"
)

// ClassPrefix is prepended to a block type to form its CSS class name
const ClassPrefix = "wp-block-lupus-"

// Message grid dimensions: groups, lines per group, fragments per line
const (
	messageGroups    = 3
	messageLines     = 3
	messageFragments = 3
)

// creditPolicy keeps links and plain text, nothing else
var creditPolicy = newCreditPolicy()

// previewMessages memoizes edit-time padding by message
var previewMessages = textpad.NewCache(textpad.EditGenerator(), textpad.DefaultCacheSize)

func newCreditPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.AllowElements("a")
	p.RequireNoFollowOnLinks(true)
	return p
}

// BlockClass returns the root CSS class of a block type
func BlockClass(blockType string) string {
	return ClassPrefix + blockType
}

// SanitizeCredit strips everything but links from photo credit HTML
func SanitizeCredit(s string) string {
	return strings.TrimSpace(creditPolicy.Sanitize(s))
}

// classNames joins the non-empty class names with single spaces
func classNames(names ...string) string {
	var parts []string
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, " ")
}

// when returns name if cond holds
func when(cond bool, name string) string {
	if cond {
		return name
	}
	return ""
}

// SavedMessage returns the padded background message as persisted markup.
// The message is escaped per copy so the repetition count is that of the
// raw message.
func SavedMessage(message string) string {
	n := textpad.SaveGenerator().Repetitions(message)
	if n == 0 {
		return ""
	}
	return strings.Repeat(html.EscapeString(message)+textpad.NBSP, n)
}

// SetPreviewCacheSize bounds how many padded preview messages are kept
func SetPreviewCacheSize(size int) {
	previewMessages.Resize(size)
}

// PreviewMessage returns the padded background message for the editor preview
func PreviewMessage(message string) string {
	return html.EscapeString(previewMessages.Generate(message))
}

func writeImage(b *strings.Builder, class, imageURL string) {
	b.WriteString(`<span class="` + class + `__image-overlay"></span>`)
	if imageURL != "" {
		b.WriteString(`<div style="background-image:url(` + html.EscapeString(imageURL) + `)" class="` + class + `__image-container"></div>`)
	}
}

func writeCredit(b *strings.Builder, class, credit string, placeholder bool) {
	safe := SanitizeCredit(credit)
	if placeholder {
		b.WriteString(`<p class="` + class + `__photocredit" data-placeholder="Photo Credit">` + safe + `</p>`)
		return
	}
	if safe == "" {
		return
	}
	b.WriteString(`<p class="` + class + `__photocredit">` + safe + `</p>`)
}

func writeMessageGrid(b *strings.Builder, class, text string, hidden bool) {
	if hidden {
		b.WriteString(`<div aria-hidden="true" class="` + class + `__message-container">`)
	} else {
		b.WriteString(`<div class="` + class + `__message-container">`)
	}
	for i := 0; i < messageGroups; i++ {
		b.WriteString(`<div class="` + class + `__message-group">`)
		for j := 0; j < messageLines; j++ {
			b.WriteString(`<div class="` + class + `__message-line">`)
			for k := 0; k < messageFragments; k++ {
				b.WriteString(`<div class="` + class + `__message-line__inner">` + text + `</div>`)
			}
			b.WriteString(`</div>`)
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
}
