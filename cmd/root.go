package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

var (
	flagLang    string
	flagFormat  string
	flagWidth   int
	flagNoColor bool
	flagDebug   bool
	flagDBPath  string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagLang, "lang", "l", "", "Guide language (overrides config language)")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "", "Output format: term, glamour, markdown, html, text, json")
	rootCmd.PersistentFlags().IntVarP(&flagWidth, "width", "w", 0, "Wrap width (default: terminal width)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colors and text attributes")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Override guide database path")

	rootCmd.RegisterFlagCompletionFunc("lang", languageFlagCompletion)
	rootCmd.RegisterFlagCompletionFunc("format", formatFlagCompletion)
}

var rootCmd = &cobra.Command{
	Use:   "guide",
	Short: "Render post-operative recovery guides",
	Long: `guide turns lightly marked-up recovery guide text into structured,
readable output: week-by-week sections, tip, caution and notice cards.

Examples:
  guide render rhinoplasty.ko.md          # render a local file
  cat guide.md | guide render - -l en     # render stdin as English
  guide import rhinoplasty guide.ko.md    # store a guide
  guide show rhinoplasty                  # render a stored guide
  guide view rhinoplasty                  # open it in a pager
  guide list --match 'rhino*'             # list stored guides

  guide config                            # view configuration
  guide config completion zsh             # shell completions`,
	Version:           Version,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if flagDebug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
