package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/medijourney/recovery-guide/internal/guide"
	"github.com/medijourney/recovery-guide/internal/locale"
	"github.com/medijourney/recovery-guide/internal/ui"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [file|-]",
	Short: "Render guide text from a file or stdin",
	Long: `Parse guide text and render it. With no file, or "-", text is read from stdin.

The language is taken from --lang, then from a <name>.<lang>.md file name,
then from the configured language.

Examples:
  guide render rhinoplasty.ko.md
  guide render notes.md --lang en --format html > notes.html
  pbpaste | guide render -f json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	table, err := loadLocales(cfg)
	if err != nil {
		return err
	}

	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	content, err := readInput(path)
	if err != nil {
		return err
	}

	code := requestedLanguage(cfg)
	if !cmd.Flags().Changed("lang") {
		if fromName := languageFromPath(path, table); fromName != "" {
			code = fromName
		}
	}
	lang, err := resolveLanguage(cfg, table, code)
	if err != nil {
		return err
	}

	return writeGuide(cfg, guide.Parse(content, lang))
}

// readInput reads a file, or stdin for "-".
func readInput(path string) (string, error) {
	if path == "-" {
		if ui.IsTerminal(os.Stdin) {
			return "", fmt.Errorf("no input: pass a file or pipe guide text on stdin")
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// splitGuideName splits "<id>.<lang>.md" into id and language. ok is
// false when the name has no language part.
func splitGuideName(path string) (id, lang string, ok bool) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if !strings.EqualFold(ext, ".md") && !strings.EqualFold(ext, ".txt") {
		return "", "", false
	}
	stem := strings.TrimSuffix(base, ext)
	i := strings.LastIndex(stem, ".")
	if i <= 0 || i == len(stem)-1 {
		return "", "", false
	}
	return stem[:i], stem[i+1:], true
}

// languageFromPath returns the language named in a guide file name, if
// the table knows it.
func languageFromPath(path string, table *locale.Table) string {
	_, code, ok := splitGuideName(path)
	if !ok {
		return ""
	}
	lang, err := table.Get(code)
	if err != nil {
		return ""
	}
	return lang.Code
}
