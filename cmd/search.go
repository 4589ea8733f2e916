package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/medijourney/recovery-guide/internal/ui"
	"github.com/spf13/cobra"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over stored guides",
	Long: `Search guide titles and text. Results are ranked by BM25.

Examples:
  guide search swelling
  guide search 붓기 --lang ko`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("query cannot be empty")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	lang := ""
	if cmd.Flags().Changed("lang") {
		lang = flagLang
	}
	results, err := s.Search(cmd.Context(), query, lang, searchLimit)
	if err != nil {
		return err
	}

	if searchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No guides found.")
		return nil
	}

	fmt.Printf("%s %-4s %s\n", ui.PadRight("ID", listIDWidth), "LANG", "SNIPPET")
	fmt.Println(strings.Repeat("-", 96))
	for _, r := range results {
		fmt.Printf("%s %-4s %s\n", ui.PadRight(ui.Truncate(r.ID, listIDWidth), listIDWidth), r.Language, ui.Truncate(oneLine(r.Snippet), 64))
	}
	return nil
}

// oneLine collapses whitespace runs, including newlines, to single spaces.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
