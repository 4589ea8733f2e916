package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/medijourney/recovery-guide/internal/config"
	"github.com/medijourney/recovery-guide/internal/guide"
	"github.com/medijourney/recovery-guide/internal/store"
	"github.com/medijourney/recovery-guide/internal/tui/pager"
	"github.com/medijourney/recovery-guide/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Render a stored guide",
	Long: `Look up a guide by id in the configured source and render it.

A guide missing in the requested language is shown in the fallback language.

Examples:
  guide show rhinoplasty
  guide show rhinoplasty --lang en --format markdown`,
	Args:              cobra.ExactArgs(1),
	RunE:              runShow,
	ValidArgsFunction: guideIDCompletion,
}

var viewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Open a stored guide in a scrollable pager",
	Long: `Open a guide full-screen. Use n/p to jump between weeks and q to quit.

When stdout is not a terminal the guide is rendered as with "show".`,
	Args:              cobra.ExactArgs(1),
	RunE:              runView,
	ValidArgsFunction: guideIDCompletion,
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(viewCmd)
}

// loadGuide looks up a stored guide and parses it with the vocabulary of
// the language it was actually found in.
func loadGuide(ctx context.Context, id string) (*config.Config, *store.Guide, guide.Document, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	table, err := loadLocales(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	requested := requestedLanguage(cfg)
	g, err := lookupGuide(ctx, cfg, id, requested)
	if err != nil {
		return nil, nil, nil, err
	}
	if g.Language != requested {
		warnf("no %s version of %q, showing %s", requested, id, g.Language)
	}

	lang, err := resolveLanguage(cfg, table, g.Language)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, g, guide.Parse(g.Content, lang), nil
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, _, doc, err := loadGuide(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return writeGuide(cfg, doc)
}

func runView(cmd *cobra.Command, args []string) error {
	if !ui.IsTerminal(os.Stdout) {
		slog.Debug("stdout is not a terminal, rendering without pager")
		return runShow(cmd, args)
	}

	_, g, doc, err := loadGuide(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	title := g.Title
	if title == "" {
		title = g.ID
	}
	title += " (" + g.Language + ")"

	plain := plainOutput(os.Stdout)
	styles := ui.NewStyles(os.Stdout)
	if plain {
		styles = ui.NewPlainStyles(os.Stdout)
	}
	return pager.Run(title, doc, styles, plain)
}
