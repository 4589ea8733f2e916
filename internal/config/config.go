package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const appName = "recovery-guide"

// Content sources.
const (
	SourceSQLite = "sqlite"
	SourceRemote = "remote"
)

type Config struct {
	Language         string       `mapstructure:"language" yaml:"language"`
	FallbackLanguage string       `mapstructure:"fallback_language" yaml:"fallback_language"`
	Source           string       `mapstructure:"source" yaml:"source"`
	LocalesDir       string       `mapstructure:"locales_dir" yaml:"locales_dir,omitempty"`
	Store            StoreConfig  `mapstructure:"store" yaml:"store"`
	Remote           RemoteConfig `mapstructure:"remote" yaml:"remote"`
	Cache            CacheConfig  `mapstructure:"cache" yaml:"cache"`
	Render           RenderConfig `mapstructure:"render" yaml:"render"`
	Theme            ThemeConfig  `mapstructure:"theme" yaml:"theme,omitempty"`
}

// StoreConfig configures the local SQLite store
type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path,omitempty"` // empty = XDG data dir, supports :memory:
}

// RemoteConfig configures the hosted REST table
type RemoteConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url,omitempty"`
	APIKey  string `mapstructure:"api_key" yaml:"api_key,omitempty"` // $VAR or ${VAR} expanded
	Table   string `mapstructure:"table" yaml:"table,omitempty"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL     time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

type RenderConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // empty picks term or text by stdout
	Width  int    `mapstructure:"width" yaml:"width,omitempty"`   // 0 = terminal width
}

// ThemeConfig allows customization of guide colors
// Colors can be ANSI color numbers (0-255) or hex codes (#RRGGBB)
type ThemeConfig struct {
	// Preset names a built-in palette; the fields below override it.
	Preset    string `mapstructure:"preset" yaml:"preset,omitempty"`
	Primary   string `mapstructure:"primary" yaml:"primary,omitempty"`     // emphasis
	Secondary string `mapstructure:"secondary" yaml:"secondary,omitempty"` // week titles, headings
	Tip       string `mapstructure:"tip" yaml:"tip,omitempty"`
	Caution   string `mapstructure:"caution" yaml:"caution,omitempty"`
	Info      string `mapstructure:"info" yaml:"info,omitempty"`
	Muted     string `mapstructure:"muted" yaml:"muted,omitempty"`
	Text      string `mapstructure:"text" yaml:"text,omitempty"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("language", "ko")
	v.SetDefault("fallback_language", "en")
	v.SetDefault("source", SourceSQLite)
	v.SetDefault("locales_dir", "")
	v.SetDefault("store.path", "")
	v.SetDefault("remote.base_url", "")
	v.SetDefault("remote.api_key", "")
	v.SetDefault("remote.table", "recovery_guides")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "30m")
	v.SetDefault("render.format", "")
	v.SetDefault("render.width", 0)
	for _, key := range []string{"preset", "primary", "secondary", "tip", "caution", "info", "muted", "text"} {
		v.SetDefault("theme."+key, "")
	}
}

// Load reads config.yaml from the config directory (or the working
// directory) into the global viper instance. Environment variables with
// the GUIDE_ prefix override file values, e.g. GUIDE_REMOTE_BASE_URL.
func Load() (*Config, error) {
	configPath, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config dir: %w", err)
	}

	v := viper.GetViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.SetEnvPrefix("GUIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// Read config file (optional - won't error if missing)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Remote.APIKey = expandEnv(cfg.Remote.APIKey)
	if cfg.Remote.APIKey == "" {
		cfg.Remote.APIKey = os.Getenv("GUIDE_API_KEY")
	}
	if cfg.LocalesDir == "" {
		cfg.LocalesDir = filepath.Join(configPath, "locales")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceSQLite:
	case SourceRemote:
		if strings.TrimSpace(c.Remote.BaseURL) == "" {
			return fmt.Errorf("source %q requires remote.base_url", SourceRemote)
		}
	default:
		return fmt.Errorf("unknown source %q (want %s or %s)", c.Source, SourceSQLite, SourceRemote)
	}
	if c.Render.Width < 0 {
		return fmt.Errorf("render.width must not be negative")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	return nil
}

// Get returns the loaded value for a dotted key, or false when the key is
// unknown. Sections return a map.
func Get(key string) (any, bool) {
	val := viper.Get(key)
	return val, val != nil
}

// expandEnv expands ${VAR} or $VAR in a string
func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		varName := s[2 : len(s)-1]
		return os.Getenv(varName)
	}
	if strings.HasPrefix(s, "$") {
		return os.Getenv(s[1:])
	}
	return s
}

// GetConfigDir returns the XDG config directory for recovery-guide.
// Uses $XDG_CONFIG_HOME if set, otherwise ~/.config
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, appName), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", appName), nil
}

// GetConfigPath returns the path where the config file should be located
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// Exists returns true if a config file exists
func Exists() bool {
	path, err := GetConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Marshal renders cfg as YAML. The API key is masked.
func Marshal(cfg *Config) ([]byte, error) {
	out := *cfg
	if out.Remote.APIKey != "" {
		out.Remote.APIKey = "********"
	}
	return yaml.Marshal(&out)
}

// Save writes the config to disk
func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
