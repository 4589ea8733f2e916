package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/medijourney/recovery-guide/internal/guide"
	"github.com/medijourney/recovery-guide/internal/locale"
	"github.com/medijourney/recovery-guide/internal/store"
	"github.com/medijourney/recovery-guide/internal/ui"
	"github.com/spf13/cobra"
)

// guideFilePattern matches <id>.<lang>.md files anywhere under a directory.
const guideFilePattern = "**/*.*.md"

var (
	importTitle string
	importDir   string
	importCheck bool
)

var importCmd = &cobra.Command{
	Use:   "import <id> <file>",
	Short: "Store guide text in the local database",
	Long: `Store a guide under an id and language, replacing any previous version.

With --dir, every <id>.<lang>.md file below the directory is imported.

Examples:
  guide import rhinoplasty rhinoplasty.ko.md
  guide import rhinoplasty notes.txt --lang en --title "Rhinoplasty"
  guide import --dir ./guides`,
	Args: func(cmd *cobra.Command, args []string) error {
		if importDir != "" {
			if importTitle != "" {
				return fmt.Errorf("--title cannot be combined with --dir")
			}
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importTitle, "title", "", "Guide title (default: first heading)")
	importCmd.Flags().StringVar(&importDir, "dir", "", "Import every <id>.<lang>.md file under this directory")
	importCmd.Flags().BoolVar(&importCheck, "check", false, "Parse and report without writing")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	table, err := loadLocales(cfg)
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if importDir != "" {
		return importDirectory(ctx, s, table, importDir)
	}

	id, path := args[0], args[1]
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
	return importOne(ctx, s, table, id, code, content)
}

func importOne(ctx context.Context, s *store.SQLiteStore, table *locale.Table, id, code, content string) error {
	lang, err := table.Get(code)
	if err != nil {
		return fmt.Errorf("cannot import %s: %w", id, err)
	}

	doc := guide.Parse(content, lang)
	g := &store.Guide{
		ID:       id,
		Language: lang.Code,
		Title:    importTitle,
		Content:  content,
	}
	if g.Title == "" {
		g.Title = guideTitle(doc, lang, id)
	}

	if importCheck {
		fmt.Printf("%s %s (%s): %d blocks, %d weeks\n", ui.BulletIcon, id, lang.Code, len(doc), countWeeks(doc))
		return nil
	}
	if err := s.Put(ctx, g); err != nil {
		return err
	}
	fmt.Printf("%s Imported %s (%s) %q\n", ui.SuccessIcon, g.ID, g.Language, g.Title)
	return nil
}

// importDirectory imports every <id>.<lang>.md below dir. Files whose
// language is not configured are skipped with a warning.
func importDirectory(ctx context.Context, s *store.SQLiteStore, table *locale.Table, dir string) error {
	matches, err := doublestar.Glob(os.DirFS(dir), guideFilePattern, doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no <id>.<lang>.md files under %s", dir)
	}

	var imported, skipped int
	for _, rel := range matches {
		id, code, ok := splitGuideName(rel)
		if !ok {
			continue
		}
		if _, err := table.Get(code); err != nil {
			warnf("skipping %s: %v", rel, err)
			skipped++
			continue
		}
		data, err := fs.ReadFile(os.DirFS(dir), rel)
		if err != nil {
			return fmt.Errorf("read %s: %w", filepath.Join(dir, rel), err)
		}
		if err := importOne(ctx, s, table, id, code, string(data)); err != nil {
			return err
		}
		imported++
	}

	fmt.Printf("%d imported, %d skipped\n", imported, skipped)
	return nil
}

// guideTitle picks a display title: the first heading or week title
// without its week marker, or the id.
func guideTitle(doc guide.Document, lang *locale.Language, id string) string {
	for _, h := range doc.Headings() {
		t := strings.TrimSpace(h.Text)
		for _, marker := range lang.WeekMarkers {
			t = strings.TrimSpace(strings.TrimPrefix(t, marker))
		}
		if t != "" {
			return t
		}
	}
	return id
}

func countWeeks(doc guide.Document) int {
	n := 0
	for _, b := range doc {
		if _, ok := b.(*guide.WeekSection); ok {
			n++
		}
	}
	return n
}
