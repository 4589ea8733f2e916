package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestThemeFromConfigOverrides(t *testing.T) {
	theme := ThemeFromConfig(ThemeConfig{Tip: "#00ff00", Caution: "214"})
	if theme.Tip != lipgloss.Color("#00ff00") {
		t.Fatalf("tip = %q, want #00ff00", theme.Tip)
	}
	if theme.Caution != lipgloss.Color("214") {
		t.Fatalf("caution = %q, want 214", theme.Caution)
	}
	if theme.Info != DefaultTheme().Info {
		t.Fatalf("info changed unexpectedly: %q", theme.Info)
	}
}

func TestPlainStylesEmitNoEscapes(t *testing.T) {
	var buf bytes.Buffer
	s := NewPlainStyles(&buf)

	out := s.Emphasis.Render("rest") + s.TipCard.Render("ice")
	if out != ansi.Strip(out) {
		t.Fatalf("plain styles emitted escape codes: %q", out)
	}
	if !strings.Contains(out, "╭") {
		t.Fatalf("card border missing: %q", out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"rhinoplasty recovery", 10, "rhinopl..."},
		{"코성형 회복 가이드", 8, "코성..."},
		{"abcdef", 3, "abc"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestThemePresets(t *testing.T) {
	for _, name := range PresetThemeNames {
		preset := GetPresetTheme(name)
		if preset == nil {
			t.Fatalf("preset %q listed but not defined", name)
		}
		if got := MatchPresetTheme(preset.Config); got != name {
			t.Errorf("MatchPresetTheme(%s) = %q", name, got)
		}
	}
	if len(PresetThemeNames) != len(PresetThemes) {
		t.Fatalf("%d names for %d presets", len(PresetThemeNames), len(PresetThemes))
	}

	theme := ThemeFromConfig(ThemeConfig{Preset: "nord", Caution: "214"})
	if theme.Tip != lipgloss.Color("#a3be8c") {
		t.Fatalf("preset tip = %q", theme.Tip)
	}
	if theme.Caution != lipgloss.Color("214") {
		t.Fatalf("override lost: caution = %q", theme.Caution)
	}

	if ThemeFromConfig(ThemeConfig{Preset: "no-such"}).Tip != DefaultTheme().Tip {
		t.Fatal("unknown preset changed the theme")
	}
}
