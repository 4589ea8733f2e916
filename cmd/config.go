package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/medijourney/recovery-guide/internal/config"
	"github.com/medijourney/recovery-guide/internal/render"
	"github.com/medijourney/recovery-guide/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	installCompletions bool
	configInitForce    bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage guide configuration",
	Long: `View or edit your guide configuration.

Examples:
  guide config                        # show current config
  guide config path                   # print the config file path
  guide config get cache.ttl          # print one value
  guide config set language en        # change one value
  guide config completion zsh         # generate shell completions`,
	RunE: configShow, // Default to show
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print configuration file path",
	RunE:  configPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default values",
	RunE:  configInit,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value, including defaults and GUIDE_* environment overrides.

Examples:
  guide config get language
  guide config get remote`,
	Args:              cobra.ExactArgs(1),
	RunE:              configGet,
	ValidArgsFunction: configGetCompletion,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value while preserving comments.

Examples:
  guide config set language ja
  guide config set source remote
  guide config set remote.base_url https://example.supabase.co
  guide config set cache.ttl 2h
  guide config set theme.tip "#8ec07c"`,
	Args:              cobra.ExactArgs(2),
	RunE:              configSet,
	ValidArgsFunction: configSetCompletion,
}

var configCompletionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script, or install it with --install.

Examples:
  guide config completion bash
  guide config completion zsh --install`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:      configCompletion,
}

func init() {
	configCompletionCmd.Flags().BoolVar(&installCompletions, "install", false, "Install the completion script for the current user")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configCompletionCmd)
}

func configShow(cmd *cobra.Command, args []string) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		fmt.Printf("# No config file (using defaults)\n")
		fmt.Printf("# Create one with: guide config init\n\n")
	} else {
		fmt.Printf("# %s\n\n", configPath)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func configPath(cmd *cobra.Command, args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func configInit(cmd *cobra.Command, args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	if config.Exists() && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func configGet(cmd *cobra.Command, args []string) error {
	if _, err := config.Load(); err != nil {
		return err
	}

	key := args[0]
	value, ok := config.Get(key)
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	if strings.HasSuffix(key, "api_key") {
		value = "********"
	}

	switch v := value.(type) {
	case string, bool, int, int64, float64:
		fmt.Println(v)
		return nil
	}
	data, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func configSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if !slices.Contains(configKeys, key) {
		return fmt.Errorf("unknown config key %q", key)
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config: %w", err)
	}

	out, err := setConfigValue(data, key, value)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, out, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("%s = %s\n", key, value)
	return nil
}

// setConfigValue sets a dotted key in YAML source, keeping comments and
// key order. Empty source starts a new document.
func setConfigValue(data []byte, key, value string) ([]byte, error) {
	var root yaml.Node
	if len(bytes.TrimSpace(data)) == 0 {
		root = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	} else if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := setYAMLValue(&root, strings.Split(key, "."), value); err != nil {
		return nil, fmt.Errorf("failed to set value: %w", err)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()
	return buf.Bytes(), nil
}

// setYAMLValue navigates/creates the path in a yaml.Node tree and sets the value
func setYAMLValue(root *yaml.Node, path []string, value string) error {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return fmt.Errorf("invalid document structure")
	}

	current := root.Content[0]
	if current.Kind != yaml.MappingNode {
		return fmt.Errorf("root is not a mapping")
	}

	for i, part := range path {
		isLast := i == len(path)-1

		found := false
		for j := 0; j < len(current.Content); j += 2 {
			if current.Content[j].Value != part {
				continue
			}
			next := current.Content[j+1]
			if isLast {
				next.Kind = yaml.ScalarNode
				next.Value = value
				next.Tag = ""
				next.Content = nil
			} else {
				if next.Kind != yaml.MappingNode {
					// Replace a scalar with a mapping
					next.Kind = yaml.MappingNode
					next.Content = nil
					next.Value = ""
					next.Tag = ""
				}
				current = next
			}
			found = true
			break
		}
		if found {
			continue
		}

		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: part}
		if isLast {
			current.Content = append(current.Content, keyNode, &yaml.Node{Kind: yaml.ScalarNode, Value: value})
		} else {
			mapping := &yaml.Node{Kind: yaml.MappingNode}
			current.Content = append(current.Content, keyNode, mapping)
			current = mapping
		}
	}

	return nil
}

var configKeys = []string{
	"language",
	"fallback_language",
	"source",
	"locales_dir",
	"store.path",
	"remote.base_url",
	"remote.api_key",
	"remote.table",
	"cache.enabled",
	"cache.ttl",
	"render.format",
	"render.width",
	"theme.preset",
	"theme.primary",
	"theme.secondary",
	"theme.tip",
	"theme.caution",
	"theme.info",
	"theme.muted",
	"theme.text",
}

// configSetCompletion provides completions for config set
func configSetCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return filterPrefix(configKeys, toComplete), cobra.ShellCompDirectiveNoFileComp
	case 1:
		return configValueCompletions(args[0], toComplete), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// configGetCompletion provides completions for config get
func configGetCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return filterPrefix(configKeys, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// configValueCompletions returns completions for config values based on key
func configValueCompletions(key, toComplete string) []string {
	switch key {
	case "language", "fallback_language":
		return languageCompletions(toComplete)
	case "source":
		return filterPrefix([]string{config.SourceSQLite, config.SourceRemote}, toComplete)
	case "render.format":
		return filterPrefix(render.Formats(), toComplete)
	case "cache.enabled":
		return filterPrefix([]string{"true", "false"}, toComplete)
	case "theme.preset":
		return filterPrefix(ui.PresetThemeNames, toComplete)
	}
	return nil
}

func configCompletion(cmd *cobra.Command, args []string) error {
	shell := args[0]

	if installCompletions {
		return installShellCompletion(shell)
	}

	switch shell {
	case "bash":
		return rootCmd.GenBashCompletion(os.Stdout)
	case "zsh":
		return rootCmd.GenZshCompletion(os.Stdout)
	case "fish":
		return rootCmd.GenFishCompletion(os.Stdout, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
	}
	return nil
}

func installShellCompletion(shell string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	var path string
	var buf bytes.Buffer

	switch shell {
	case "bash":
		path = filepath.Join(home, ".bash_completion.d", "guide")
		err = rootCmd.GenBashCompletion(&buf)
	case "zsh":
		// XDG location for user zsh functions
		path = filepath.Join(home, ".local", "share", "zsh", "site-functions", "_guide")
		err = rootCmd.GenZshCompletion(&buf)
	case "fish":
		path = filepath.Join(home, ".config", "fish", "completions", "guide.fish")
		err = rootCmd.GenFishCompletion(&buf, true)
	case "powershell":
		path = filepath.Join(home, ".config", "powershell", "completions", "guide.ps1")
		err = rootCmd.GenPowerShellCompletionWithDesc(&buf)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create completion directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write completion script: %w", err)
	}
	fmt.Printf("Installed %s completions to %s\n", shell, path)
	return nil
}
