package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/medijourney/recovery-guide/internal/cache"
	"github.com/medijourney/recovery-guide/internal/config"
	"github.com/medijourney/recovery-guide/internal/guide"
	"github.com/medijourney/recovery-guide/internal/locale"
	"github.com/medijourney/recovery-guide/internal/render"
	"github.com/medijourney/recovery-guide/internal/store"
	"github.com/medijourney/recovery-guide/internal/ui"
	"github.com/sahilm/fuzzy"
)

// maxSuggestions caps "did you mean" candidates for unknown guide ids.
const maxSuggestions = 3

// loadConfig loads configuration and applies the theme.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	ui.InitTheme(ui.ThemeConfig{
		Preset:    cfg.Theme.Preset,
		Primary:   cfg.Theme.Primary,
		Secondary: cfg.Theme.Secondary,
		Tip:       cfg.Theme.Tip,
		Caution:   cfg.Theme.Caution,
		Info:      cfg.Theme.Info,
		Muted:     cfg.Theme.Muted,
		Text:      cfg.Theme.Text,
	})
	return cfg, nil
}

func loadLocales(cfg *config.Config) (*locale.Table, error) {
	table, err := locale.Load(cfg.LocalesDir)
	if err != nil {
		return nil, fmt.Errorf("load locales: %w", err)
	}
	return table, nil
}

// requestedLanguage is the --lang flag, or the configured language.
func requestedLanguage(cfg *config.Config) string {
	if strings.TrimSpace(flagLang) != "" {
		return strings.TrimSpace(flagLang)
	}
	return cfg.Language
}

// resolveLanguage returns the vocabulary for code, falling back to the
// configured fallback language.
func resolveLanguage(cfg *config.Config, table *locale.Table, code string) (*locale.Language, error) {
	if lang, err := table.Get(code); err == nil {
		return lang, nil
	}
	lang, err := table.Resolve(code, cfg.FallbackLanguage)
	if err != nil {
		return nil, err
	}
	warnf("language %q not configured, using %q", code, lang.Code)
	return lang, nil
}

func openStore(cfg *config.Config) (*store.SQLiteStore, error) {
	path := cfg.Store.Path
	if flagDBPath != "" {
		path = flagDBPath
	}
	s, err := store.NewSQLiteStore(store.Config{Path: path})
	if err != nil {
		return nil, fmt.Errorf("open guide store: %w", err)
	}
	return s, nil
}

// newProvider builds the configured lookup chain: the base source, an
// on-disk cache for remote sources, and language fallback on top.
func newProvider(cfg *config.Config) (store.Provider, func() error, error) {
	var base store.Provider
	closer := func() error { return nil }

	switch cfg.Source {
	case config.SourceRemote:
		remote, err := store.NewRemoteStore(store.RemoteConfig{
			BaseURL: cfg.Remote.BaseURL,
			APIKey:  cfg.Remote.APIKey,
			Table:   cfg.Remote.Table,
		})
		if err != nil {
			return nil, nil, err
		}
		base = remote
		if cfg.Cache.Enabled {
			c, err := cache.New("", cfg.Cache.TTL)
			if err != nil {
				return nil, nil, fmt.Errorf("open guide cache: %w", err)
			}
			base = &store.CachedProvider{Provider: remote, Cache: c}
		}
	default:
		s, err := openStore(cfg)
		if err != nil {
			return nil, nil, err
		}
		base = s
		closer = s.Close
	}

	return &store.FallbackProvider{Provider: base, Fallback: cfg.FallbackLanguage}, closer, nil
}

// newRenderer picks the output format and width from flags, config and
// the output stream.
func newRenderer(cfg *config.Config, out *os.File) (render.Renderer, error) {
	format := flagFormat
	if format == "" {
		format = cfg.Render.Format
	}
	if format == "" {
		format = render.DefaultFormat(out)
	}

	opts := render.Options{
		Width: flagWidth,
		Plain: plainOutput(out),
	}
	if opts.Width <= 0 {
		opts.Width = cfg.Render.Width
	}
	if opts.Width <= 0 {
		opts.Width = ui.TerminalWidth(out)
	}

	return render.For(format, opts)
}

// writeGuide renders doc to stdout with the configured renderer.
func writeGuide(cfg *config.Config, doc guide.Document) error {
	r, err := newRenderer(cfg, os.Stdout)
	if err != nil {
		return err
	}
	return r.Render(os.Stdout, doc)
}

// plainOutput reports whether styling must be disabled for out.
func plainOutput(out *os.File) bool {
	if flagNoColor || os.Getenv("NO_COLOR") != "" {
		return true
	}
	return !ui.IsTerminal(out)
}

// lookupGuide fetches a guide and turns a miss into an error with
// suggestions from the local store.
func lookupGuide(ctx context.Context, cfg *config.Config, id, lang string) (*store.Guide, error) {
	provider, closeProvider, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}
	defer closeProvider()

	g, err := provider.Lookup(ctx, id, lang)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFoundError(ctx, cfg, id, lang)
	}
	return g, err
}

func notFoundError(ctx context.Context, cfg *config.Config, id, lang string) error {
	msg := fmt.Sprintf("no guide %q for language %q", id, lang)
	if cfg.Source != config.SourceSQLite {
		return errors.New(msg)
	}

	s, err := openStore(cfg)
	if err != nil {
		return errors.New(msg)
	}
	defer s.Close()

	ids, err := s.IDs(ctx)
	if err != nil {
		return errors.New(msg)
	}
	if suggestions := suggestIDs(id, ids); len(suggestions) > 0 {
		msg += fmt.Sprintf("\n\nDid you mean:\n  %s", strings.Join(suggestions, "\n  "))
	}
	return errors.New(msg)
}

// suggestIDs ranks known ids against a mistyped one.
func suggestIDs(id string, known []string) []string {
	matches := fuzzy.Find(id, known)
	var out []string
	for i, m := range matches {
		if i == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ui.DefaultStyles().Muted.Render("warning:"), fmt.Sprintf(format, args...))
}
