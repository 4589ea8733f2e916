package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func setupConfigDir(t *testing.T, content string) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	dir := filepath.Join(home, "recovery-guide")
	if content != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := setupConfigDir(t, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Language != "ko" || cfg.FallbackLanguage != "en" {
		t.Fatalf("languages = %q/%q", cfg.Language, cfg.FallbackLanguage)
	}
	if cfg.Source != SourceSQLite {
		t.Fatalf("source = %q", cfg.Source)
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTL != 30*time.Minute {
		t.Fatalf("cache = %+v", cfg.Cache)
	}
	if cfg.LocalesDir != filepath.Join(dir, "locales") {
		t.Fatalf("locales_dir = %q", cfg.LocalesDir)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	setupConfigDir(t, `
language: en
source: remote
remote:
  base_url: https://guides.example.test
  api_key: ${GUIDE_TEST_KEY}
cache:
  ttl: 5m
render:
  format: html
  width: 72
theme:
  tip: "#00ff00"
`)
	t.Setenv("GUIDE_TEST_KEY", "k-123")
	t.Setenv("GUIDE_RENDER_WIDTH", "90")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Language != "en" || cfg.Source != SourceRemote {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Remote.APIKey != "k-123" {
		t.Fatalf("api key = %q, want expanded", cfg.Remote.APIKey)
	}
	if cfg.Remote.Table != "recovery_guides" {
		t.Fatalf("table default = %q", cfg.Remote.Table)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Fatalf("ttl = %v", cfg.Cache.TTL)
	}
	if cfg.Render.Width != 90 {
		t.Fatalf("width = %d, want env override 90", cfg.Render.Width)
	}
	if cfg.Theme.Tip != "#00ff00" {
		t.Fatalf("theme tip = %q", cfg.Theme.Tip)
	}

	if v, ok := Get("render.format"); !ok || v != "html" {
		t.Fatalf("Get(render.format) = %v, %v", v, ok)
	}
	if _, ok := Get("no.such.key"); ok {
		t.Fatal("Get() reported unknown key as set")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"sqlite", Config{Source: SourceSQLite}, ""},
		{"remote without url", Config{Source: SourceRemote}, "remote.base_url"},
		{"remote", Config{Source: SourceRemote, Remote: RemoteConfig{BaseURL: "http://x"}}, ""},
		{"unknown source", Config{Source: "ftp"}, "unknown source"},
		{"negative width", Config{Source: SourceSQLite, Render: RenderConfig{Width: -1}}, "render.width"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRejectsBadSource(t *testing.T) {
	setupConfigDir(t, "source: carrier-pigeon\n")
	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted unknown source")
	}
}

func TestMarshalMasksKey(t *testing.T) {
	cfg := &Config{Language: "ko", Remote: RemoteConfig{APIKey: "secret"}, Cache: CacheConfig{TTL: time.Minute}}
	out, err := Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "secret") {
		t.Fatalf("api key leaked:\n%s", out)
	}
	if !strings.Contains(string(out), "ttl: 1m0s") {
		t.Fatalf("ttl not rendered as duration:\n%s", out)
	}
	if cfg.Remote.APIKey != "secret" {
		t.Fatal("Marshal mutated the config")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	setupConfigDir(t, "")
	cfg := &Config{Language: "ja", FallbackLanguage: "en", Source: SourceSQLite, Cache: CacheConfig{Enabled: true, TTL: time.Hour}}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	viper.Reset()
	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Language != "ja" || got.Cache.TTL != time.Hour {
		t.Fatalf("Load() = %+v", got)
	}
}
