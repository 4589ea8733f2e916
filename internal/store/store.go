// Package store looks up recovery guide content by guide id and language.
// Content comes from a local SQLite database or a hosted REST table, with
// optional language fallback and on-disk caching layered on top.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/medijourney/recovery-guide/internal/cache"
)

// ErrNotFound is returned when no guide exists for an id and language.
var ErrNotFound = errors.New("guide not found")

// Guide is one language variant of a guide's raw text.
type Guide struct {
	ID        string    `json:"id"`
	Language  string    `json:"language"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider fetches raw guide text.
type Provider interface {
	Lookup(ctx context.Context, guideID, lang string) (*Guide, error)
}

func notFound(guideID, lang string) error {
	return fmt.Errorf("%s (%s): %w", guideID, lang, ErrNotFound)
}

// FallbackProvider retries a missing guide in a second language.
type FallbackProvider struct {
	Provider Provider
	Fallback string
}

// Lookup implements Provider.
func (p *FallbackProvider) Lookup(ctx context.Context, guideID, lang string) (*Guide, error) {
	g, err := p.Provider.Lookup(ctx, guideID, lang)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return g, err
	}
	if p.Fallback == "" || p.Fallback == lang {
		return nil, err
	}
	slog.Debug("guide missing, trying fallback language", "guide", guideID, "lang", lang, "fallback", p.Fallback)
	return p.Provider.Lookup(ctx, guideID, p.Fallback)
}

// CachedProvider serves guides from an on-disk cache while fresh, and
// falls back to a stale entry when the wrapped provider fails.
type CachedProvider struct {
	Provider Provider
	Cache    *cache.GuideCache
}

// Lookup implements Provider.
func (p *CachedProvider) Lookup(ctx context.Context, guideID, lang string) (*Guide, error) {
	entry, cacheErr := p.Cache.Read(guideID, lang)
	if cacheErr == nil && p.Cache.IsValid(entry) {
		return guideFromEntry(entry), nil
	}

	g, err := p.Provider.Lookup(ctx, guideID, lang)
	if err != nil {
		if cacheErr == nil && !errors.Is(err, ErrNotFound) {
			slog.Warn("lookup failed, serving stale cache", "guide", guideID, "lang", lang, "error", err)
			return guideFromEntry(entry), nil
		}
		return nil, err
	}

	if werr := p.Cache.Write(entryFromGuide(g)); werr != nil {
		slog.Warn("failed to write guide cache", "guide", g.ID, "lang", g.Language, "error", werr)
	}
	return g, nil
}

func guideFromEntry(e *cache.Entry) *Guide {
	return &Guide{
		ID:        e.ID,
		Language:  e.Language,
		Title:     e.Title,
		Content:   e.Content,
		UpdatedAt: e.UpdatedAt,
	}
}

func entryFromGuide(g *Guide) cache.Entry {
	return cache.Entry{
		ID:        g.ID,
		Language:  g.Language,
		Title:     g.Title,
		Content:   g.Content,
		UpdatedAt: g.UpdatedAt,
	}
}
