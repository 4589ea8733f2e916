package cmd

import (
	"context"
	"strings"

	"github.com/medijourney/recovery-guide/internal/locale"
	"github.com/medijourney/recovery-guide/internal/render"
	"github.com/spf13/cobra"
)

func filterPrefix(values []string, prefix string) []string {
	var out []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			out = append(out, v)
		}
	}
	return out
}

// languageCompletions lists configured language codes, falling back to the
// built-in set when config or locale loading fails.
func languageCompletions(toComplete string) []string {
	codes := locale.BuiltinCodes()
	if cfg, err := loadConfig(); err == nil {
		if table, err := loadLocales(cfg); err == nil {
			codes = table.Codes()
		}
	}
	return filterPrefix(codes, toComplete)
}

func languageFlagCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return languageCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
}

func formatFlagCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(render.Formats(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// guideIDCompletion completes the first argument with stored guide ids.
func guideIDCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	s, err := openStore(cfg)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer s.Close()

	ids, err := s.IDs(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return filterPrefix(ids, toComplete), cobra.ShellCompDirectiveNoFileComp
}
