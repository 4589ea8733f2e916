package cmd

import (
	"fmt"
	"strings"

	"github.com/medijourney/recovery-guide/internal/locale"
	"github.com/medijourney/recovery-guide/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var localesCmd = &cobra.Command{
	Use:   "locales [code]",
	Short: "List configured guide languages",
	Long: `List the languages guides can be written in, with their card titles.
With a code, print that language's full vocabulary as YAML. Copy it into
the locales directory to customize it or to start a new language.

Examples:
  guide locales
  guide locales ko
  guide locales en > ~/.config/recovery-guide/locales/vi.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLocales,
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return languageCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
}

func init() {
	rootCmd.AddCommand(localesCmd)
}

func runLocales(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	table, err := loadLocales(cfg)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		lang, err := table.Get(args[0])
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(lang)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	}

	styles := ui.DefaultStyles()
	fmt.Printf("%-5s %s %-8s %s\n", "CODE", ui.PadRight("NAME", 12), "SOURCE", "CARDS")
	fmt.Println(strings.Repeat("-", 72))
	for _, code := range table.Codes() {
		lang, _ := table.Get(code)
		marker := " "
		if code == cfg.Language {
			marker = "*"
		}
		fmt.Printf("%-5s %s %-8s %s\n",
			marker+code,
			ui.PadRight(ui.Truncate(lang.Name, 12), 12),
			lang.Source.SourceName(),
			styles.Muted.Render(cardTitles(lang)))
	}
	return nil
}

func cardTitles(lang *locale.Language) string {
	return strings.Join([]string{lang.Titles.Tip, lang.Titles.Caution, lang.Titles.Info}, " / ")
}
