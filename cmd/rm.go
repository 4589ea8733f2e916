package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/medijourney/recovery-guide/internal/cache"
	"github.com/medijourney/recovery-guide/internal/store"
	"github.com/medijourney/recovery-guide/internal/ui"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete one language version of a stored guide",
	Long: `Delete the guide in the --lang (or configured) language from the local
database, along with any cached copy.

Examples:
  guide rm rhinoplasty --lang en`,
	Args:              cobra.ExactArgs(1),
	RunE:              runRm,
	ValidArgsFunction: guideIDCompletion,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	id, lang := args[0], requestedLanguage(cfg)
	if err := s.Delete(cmd.Context(), id, lang); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundError(cmd.Context(), cfg, id, lang)
		}
		return err
	}

	if c, err := cache.New("", cfg.Cache.TTL); err == nil {
		if err := c.Remove(id, lang); err != nil {
			slog.Warn("failed to remove cached guide", "guide", id, "lang", lang, "error", err)
		}
	}

	fmt.Printf("%s Deleted %s (%s)\n", ui.SuccessIcon, id, lang)
	return nil
}
