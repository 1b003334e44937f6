package blocks

import "strings"

// saveHeader renders the persisted header markup
func saveHeader(a HeaderAttributes, inner string) string {
	class := BlockClass(TypeHeader)

	var b strings.Builder
	b.WriteString(`<header class="` + classNames(class, when(a.FullSized, "full-sized"), "image", when(a.BackgroundParallax, "image-fixed")) + `">`)
	b.WriteString(`<div class="` + class + `__inner is-layout-constrained">` + inner + `</div>`)
	writeImage(&b, class, a.BackgroundImageURL)
	if a.PhotoCredit {
		writeCredit(&b, class, a.PhotoCreditText, false)
	}
	b.WriteString(`</header>`)
	return b.String()
}

// previewHeader renders the header as the editor shows it
func previewHeader(a HeaderAttributes, inner string) string {
	class := BlockClass(TypeHeader)

	var b strings.Builder
	b.WriteString(`<header class="` + classNames(class, when(a.FullSized, "full-sized"), when(a.BackgroundParallax, "image-fixed")) + `">`)
	b.WriteString(`<div class="` + class + `__inner is-layout-constrained">` + inner + `</div>`)
	writeImage(&b, class, a.BackgroundImageURL)
	if a.PhotoCredit {
		writeCredit(&b, class, a.PhotoCreditText, true)
	}
	b.WriteString(`</header>`)
	return b.String()
}
