package cmd

import (
	"fmt"
	"os"

	"github.com/medijourney/recovery-guide/internal/guide"
	"github.com/medijourney/recovery-guide/internal/render"
	"github.com/medijourney/recovery-guide/internal/ui"
	"github.com/spf13/cobra"
)

const themeSample = `## 🕐 Week 1
Keep your head **elevated** while resting.
💡 Tip
- Cold compress for 15 minutes
⚠️ Caution
- Avoid strenuous exercise
`

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "Preview the built-in color presets",
	Long: `Render a short sample guide with every built-in theme preset.

Select one with:
  guide config set theme.preset nord`,
	Args: cobra.NoArgs,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	table, err := loadLocales(cfg)
	if err != nil {
		return err
	}
	lang, err := resolveLanguage(cfg, table, "en")
	if err != nil {
		return err
	}
	doc := guide.Parse(themeSample, lang)

	out := os.Stdout
	plain := plainOutput(out)
	width := flagWidth
	if width <= 0 {
		width = min(ui.TerminalWidth(out), 72)
	}

	current := cfg.Theme.Preset
	if current == "" {
		current = ui.MatchPresetTheme(ui.ThemeConfig{
			Primary:   cfg.Theme.Primary,
			Secondary: cfg.Theme.Secondary,
			Tip:       cfg.Theme.Tip,
			Caution:   cfg.Theme.Caution,
			Info:      cfg.Theme.Info,
			Muted:     cfg.Theme.Muted,
			Text:      cfg.Theme.Text,
		})
	}

	previous := ui.GetTheme()
	defer ui.SetTheme(previous)

	for i, name := range ui.PresetThemeNames {
		preset := ui.GetPresetTheme(name)
		ui.SetTheme(ui.ThemeFromConfig(preset.Config))

		if i > 0 {
			fmt.Fprintln(out)
		}
		marker := ""
		if name == current {
			marker = " (current)"
		}
		fmt.Fprintf(out, "%s%s: %s\n\n", name, marker, preset.Description)
		if err := render.NewTerminal(render.Options{Width: width, Plain: plain}).Render(out, doc); err != nil {
			return err
		}
	}
	return nil
}
