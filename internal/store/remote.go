package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	remoteClientTimeout = 30 * time.Second
	DefaultRemoteTable  = "recovery_guides"
	remoteColumns       = "guide_id,language,title,content,updated_at"
)

// RemoteStore reads guides from a hosted REST table that accepts
// PostgREST-style filters (guide_id=eq.X).
type RemoteStore struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	table      string
}

// RemoteConfig configures a RemoteStore.
type RemoteConfig struct {
	BaseURL string
	APIKey  string
	Table   string // default DefaultRemoteTable
}

type remoteRow struct {
	GuideID   string    `json:"guide_id"`
	Language  string    `json:"language"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRemoteStore returns a REST-backed provider.
func NewRemoteStore(cfg RemoteConfig) (*RemoteStore, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("remote base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid remote base URL: %w", err)
	}
	table := cfg.Table
	if table == "" {
		table = DefaultRemoteTable
	}
	return &RemoteStore{
		httpClient: &http.Client{Timeout: remoteClientTimeout},
		baseURL:    base,
		apiKey:     cfg.APIKey,
		table:      table,
	}, nil
}

// Lookup implements Provider.
func (r *RemoteStore) Lookup(ctx context.Context, guideID, lang string) (*Guide, error) {
	q := url.Values{}
	q.Set("guide_id", "eq."+guideID)
	q.Set("language", "eq."+lang)
	q.Set("select", remoteColumns)
	q.Set("limit", "1")
	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", r.baseURL, url.PathEscape(r.table), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if r.apiKey != "" {
		req.Header.Set("apikey", r.apiKey)
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch guide %s: %w", guideID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("remote store returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rows []remoteRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode remote response: %w", err)
	}
	if len(rows) == 0 {
		return nil, notFound(guideID, lang)
	}

	row := rows[0]
	return &Guide{
		ID:        row.GuideID,
		Language:  row.Language,
		Title:     row.Title,
		Content:   row.Content,
		UpdatedAt: row.UpdatedAt,
	}, nil
}
