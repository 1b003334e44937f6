package blocks

import "strings"

// saveSection renders the persisted section markup, wrapped by the
// before and after edge elements.
func saveSection(a SectionAttributes, inner string) string {
	class := BlockClass(TypeSection)

	var b strings.Builder
	b.WriteString(`<div class="` + classNames(class+"__before", a.Background) + `"></div>`)
	b.WriteString(`<section class="` + sectionClasses(a, class) + `">`)
	b.WriteString(`<div class="` + class + `__inner">` + inner + `</div>`)

	if a.ShowsLogo() {
		b.WriteString(`<div class="` + class + `__logo-container"></div>`)
	}
	if a.ShowsMessage() {
		writeMessageGrid(&b, class, SavedMessage(a.BackgroundMessage), true)
	}
	if a.Background == BackgroundImage {
		writeImage(&b, class, a.BackgroundImageURL)
		if a.PhotoCredit {
			writeCredit(&b, class, a.PhotoCreditText, false)
		}
	}

	b.WriteString(`</section>`)
	b.WriteString(`<div class="` + classNames(class+"__after", a.Background) + `"></div>`)
	return b.String()
}

// previewSection renders the section as the editor shows it
func previewSection(a SectionAttributes, inner string) string {
	class := BlockClass(TypeSection)

	var b strings.Builder
	b.WriteString(`<section class="` + classNames(class, when(a.FullSized, "full-sized"), a.Background, when(a.Horizontal, "horizontal")) + `">`)
	b.WriteString(`<div class="` + class + `__inner">` + inner + `</div>`)

	if a.ShowsLogo() {
		b.WriteString(`<div class="` + class + `__logo-container"></div>`)
	}
	if a.ShowsMessage() {
		writeMessageGrid(&b, class, PreviewMessage(a.BackgroundMessage), false)
	}

	b.WriteString(`</section>`)
	return b.String()
}

func sectionClasses(a SectionAttributes, class string) string {
	feature := ""
	if a.ShowsLogo() {
		feature = FeatureLogo
	}
	return classNames(
		class,
		when(a.FullSized, "full-sized"),
		a.Background,
		feature,
		when(a.BackgroundParallax, "image-fixed"),
		when(a.Horizontal, "horizontal"),
	)
}
