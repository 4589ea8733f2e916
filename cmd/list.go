package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gobwas/glob"
	"github.com/medijourney/recovery-guide/internal/store"
	"github.com/medijourney/recovery-guide/internal/ui"
	"github.com/spf13/cobra"
)

const (
	listIDWidth    = 24
	listTitleWidth = 36
)

var (
	listMatch string
	listLimit int
	listJSON  bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored guides",
	Long: `List guides in the local database. --lang filters by language,
--match filters ids with a glob pattern.

Examples:
  guide list
  guide list --lang ko
  guide list --match 'rhino*' --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listMatch, "match", "m", "", "Only ids matching this glob (e.g. 'eye*')")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of guides")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := store.ListOptions{}
	if cmd.Flags().Changed("lang") {
		opts.Language = flagLang
	}
	guides, err := s.List(cmd.Context(), opts)
	if err != nil {
		return err
	}

	guides, err = filterGuides(guides, listMatch, listLimit)
	if err != nil {
		return err
	}

	if listJSON {
		out := make([]listEntry, len(guides))
		for i, g := range guides {
			out[i] = listEntry{ID: g.ID, Language: g.Language, Title: g.Title, UpdatedAt: g.UpdatedAt.Format(time.RFC3339)}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(guides) == 0 {
		fmt.Println("No guides found.")
		return nil
	}

	styles := ui.DefaultStyles()
	fmt.Printf("%s %-4s %s %s\n", ui.PadRight("ID", listIDWidth), "LANG", ui.PadRight("TITLE", listTitleWidth), "UPDATED")
	fmt.Println(strings.Repeat("-", listIDWidth+listTitleWidth+20))
	for _, g := range guides {
		fmt.Printf("%s %-4s %s %s\n",
			ui.PadRight(ui.Truncate(g.ID, listIDWidth), listIDWidth),
			g.Language,
			ui.PadRight(ui.Truncate(g.Title, listTitleWidth), listTitleWidth),
			styles.Muted.Render(humanize.Time(g.UpdatedAt)))
	}
	return nil
}

type listEntry struct {
	ID        string `json:"id"`
	Language  string `json:"language"`
	Title     string `json:"title"`
	UpdatedAt string `json:"updated_at"`
}

// filterGuides keeps guides whose id matches pattern (all when empty) and
// applies limit when positive.
func filterGuides(guides []store.Guide, pattern string, limit int) ([]store.Guide, error) {
	if pattern != "" {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid --match pattern %q: %w", pattern, err)
		}
		kept := guides[:0]
		for _, guide := range guides {
			if g.Match(guide.ID) {
				kept = append(kept, guide)
			}
		}
		guides = kept
	}
	if limit > 0 && len(guides) > limit {
		guides = guides[:limit]
	}
	return guides, nil
}
