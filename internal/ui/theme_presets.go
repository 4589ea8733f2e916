package ui

// ThemePreset represents a predefined color theme
type ThemePreset struct {
	Name        string
	Description string
	Config      ThemeConfig
}

// PresetThemeNames defines the display order of themes
var PresetThemeNames = []string{
	"gruvbox",
	"nord",
	"solarized",
	"dracula",
	"clinic",
}

// PresetThemes contains all predefined themes
var PresetThemes = map[string]ThemePreset{
	"gruvbox": {
		Name:        "gruvbox",
		Description: "Retro groove color scheme (default)",
		Config: ThemeConfig{
			Primary:   "#b8bb26", // green
			Secondary: "#83a598", // aqua
			Tip:       "#8ec07c", // bright aqua
			Caution:   "#fabd2f", // yellow
			Info:      "#d3869b", // purple
			Muted:     "#928374", // gray
			Text:      "#ebdbb2", // foreground
		},
	},
	"nord": {
		Name:        "nord",
		Description: "Arctic, north-bluish color palette",
		Config: ThemeConfig{
			Primary:   "#88c0d0", // frost cyan
			Secondary: "#81a1c1", // frost blue
			Tip:       "#a3be8c", // aurora green
			Caution:   "#ebcb8b", // aurora yellow
			Info:      "#b48ead", // aurora purple
			Muted:     "#4c566a", // polar night
			Text:      "#eceff4", // snow storm
		},
	},
	"solarized": {
		Name:        "solarized",
		Description: "Precision colors for machines and people",
		Config: ThemeConfig{
			Primary:   "#268bd2", // blue
			Secondary: "#2aa198", // cyan
			Tip:       "#859900", // green
			Caution:   "#b58900", // yellow
			Info:      "#6c71c4", // violet
			Muted:     "#586e75", // base01
			Text:      "#839496", // base0
		},
	},
	"dracula": {
		Name:        "dracula",
		Description: "Dark theme with purple accents",
		Config: ThemeConfig{
			Primary:   "#bd93f9", // purple
			Secondary: "#8be9fd", // cyan
			Tip:       "#50fa7b", // green
			Caution:   "#f1fa8c", // yellow
			Info:      "#ff79c6", // pink
			Muted:     "#6272a4", // comment grey
			Text:      "#f8f8f2", // foreground
		},
	},
	"clinic": {
		Name:        "clinic",
		Description: "Calm 256-color palette for light terminals",
		Config: ThemeConfig{
			Primary:   "25",  // deep blue
			Secondary: "31",  // teal
			Tip:       "29",  // green
			Caution:   "130", // amber
			Info:      "61",  // slate violet
			Muted:     "245", // grey
			Text:      "236", // near black
		},
	},
}

// GetPresetTheme returns a preset by name, or nil if not found
func GetPresetTheme(name string) *ThemePreset {
	if preset, ok := PresetThemes[name]; ok {
		return &preset
	}
	return nil
}

// MatchPresetTheme finds a preset that matches the given colors, or returns empty string
func MatchPresetTheme(cfg ThemeConfig) string {
	for _, name := range PresetThemeNames {
		if themesMatch(cfg, PresetThemes[name].Config) {
			return name
		}
	}
	return ""
}

func themesMatch(a, b ThemeConfig) bool {
	return a.Primary == b.Primary &&
		a.Secondary == b.Secondary &&
		a.Tip == b.Tip &&
		a.Caution == b.Caution &&
		a.Info == b.Info &&
		a.Muted == b.Muted &&
		a.Text == b.Text
}
