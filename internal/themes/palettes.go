package themes

// DefaultPalette is used when a site names an unknown palette
const DefaultPalette = "st-pauli"

// Palette defines the base colors for a theme
type Palette struct {
	Name            string // "st-pauli", "moonlight", etc.
	Primary         string // hex color #RRGGBB
	Secondary       string // hex color #RRGGBB
	Alternative     string // background of alternative-colors sections
	AlternativeText string // text on alternative-colors sections
}

var palettes = map[string]*Palette{
	"st-pauli": {
		Name:            "st-pauli",
		Primary:         "#5c3a21",
		Secondary:       "#c8102e",
		Alternative:     "#5c3a21",
		AlternativeText: "#ffffff",
	},
	"moonlight": {
		Name:            "moonlight",
		Primary:         "#1e293b",
		Secondary:       "#facc15",
		Alternative:     "#0f172a",
		AlternativeText: "#f8fafc",
	},
	"forest": {
		Name:            "forest",
		Primary:         "#166534",
		Secondary:       "#a3e635",
		Alternative:     "#14532d",
		AlternativeText: "#ecfccb",
	},
	"pitch": {
		Name:            "pitch",
		Primary:         "#15803d",
		Secondary:       "#ffffff",
		Alternative:     "#f0fdf4",
		AlternativeText: "#14532d",
	},
	"slate": {
		Name:            "slate",
		Primary:         "#64748b",
		Secondary:       "#0f172a",
		Alternative:     "#e2e8f0",
		AlternativeText: "#0f172a",
	},
	"crimson": {
		Name:            "crimson",
		Primary:         "#c8102e",
		Secondary:       "#111827",
		Alternative:     "#111827",
		AlternativeText: "#fef2f2",
	},
}

// GetPalette returns a palette by name
func GetPalette(name string) *Palette {
	return palettes[name]
}

// ListPalettes returns all available palettes in order
func ListPalettes() []*Palette {
	names := []string{"st-pauli", "moonlight", "forest", "pitch", "slate", "crimson"}
	var list []*Palette
	for _, name := range names {
		if p := GetPalette(name); p != nil {
			list = append(list, p)
		}
	}
	return list
}
