package store

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/medijourney/recovery-guide/internal/cache"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "guides.db")
	s, err := NewSQLiteStore(Config{Path: dbPath})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStorePutLookupSearchDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	g := &Guide{ID: "rhinoplasty", Language: "en", Title: "Rhinoplasty", Content: "Keep the splint dry for a week."}
	if err := s.Put(ctx, g); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Lookup(ctx, "rhinoplasty", "en")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got.Content != g.Content || got.Title != "Rhinoplasty" {
		t.Fatalf("Lookup() = %+v", got)
	}
	created := got.CreatedAt

	results, err := s.Search(ctx, "splint", "", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].ID != "rhinoplasty" {
		t.Fatalf("Search() = %+v", results)
	}

	// Upsert replaces content and the FTS row.
	if err := s.Put(ctx, &Guide{ID: "rhinoplasty", Language: "en", Content: "Sleep with your head raised."}); err != nil {
		t.Fatalf("Put() update error = %v", err)
	}
	if results, _ := s.Search(ctx, "splint", "", 10); len(results) != 0 {
		t.Fatalf("stale FTS row still matches: %+v", results)
	}
	if results, _ := s.Search(ctx, "raised", "", 10); len(results) != 1 {
		t.Fatalf("updated content not indexed: %+v", results)
	}
	got, _ = s.Lookup(ctx, "rhinoplasty", "en")
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("CreatedAt changed on update: %v -> %v", created, got.CreatedAt)
	}

	if err := s.Delete(ctx, "rhinoplasty", "en"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Lookup(ctx, "rhinoplasty", "en"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Lookup() after delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "rhinoplasty", "en"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete() error = %v, want ErrNotFound", err)
	}
	if results, _ := s.Search(ctx, "raised", "", 10); len(results) != 0 {
		t.Fatalf("deleted guide still searchable: %+v", results)
	}
}

func TestSQLiteStoreListAndIDs(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, g := range []*Guide{
		{ID: "lift", Language: "ko", Content: "a"},
		{ID: "lift", Language: "en", Content: "b"},
		{ID: "eyelid", Language: "ko", Content: "c"},
	} {
		if err := s.Put(ctx, g); err != nil {
			t.Fatalf("Put(%s/%s) error = %v", g.ID, g.Language, err)
		}
	}

	all, err := s.List(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 || all[0].ID != "eyelid" || all[1].Language != "en" {
		t.Fatalf("List() order = %+v", all)
	}

	ko, _ := s.List(ctx, ListOptions{Language: "ko"})
	if len(ko) != 2 {
		t.Fatalf("List(ko) = %d rows, want 2", len(ko))
	}
	limited, _ := s.List(ctx, ListOptions{Limit: 1})
	if len(limited) != 1 {
		t.Fatalf("List(limit 1) = %d rows", len(limited))
	}

	ids, err := s.IDs(ctx)
	if err != nil {
		t.Fatalf("IDs() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != "eyelid" || ids[1] != "lift" {
		t.Fatalf("IDs() = %v", ids)
	}
}

func TestSQLiteStorePutValidation(t *testing.T) {
	s := newTestStore(t)
	tests := []*Guide{
		nil,
		{Language: "en", Content: "x"},
		{ID: "a", Content: "x"},
		{ID: "a", Language: "en", Content: "  "},
	}
	for i, g := range tests {
		if err := s.Put(context.Background(), g); err == nil {
			t.Errorf("case %d: Put() succeeded, want error", i)
		}
	}
}

func TestSearchTreatsOperatorsLiterally(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	if err := s.Put(ctx, &Guide{ID: "a", Language: "en", Content: "ice and rest"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Search(ctx, `ice AND "rest`, "", 5); err != nil {
		t.Fatalf("Search() with operators error = %v", err)
	}
	if got, _ := s.Search(ctx, "   ", "", 5); got != nil {
		t.Fatalf("blank query = %+v, want nil", got)
	}
}

func TestMemoryStore(t *testing.T) {
	s, err := NewSQLiteStore(Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("NewSQLiteStore(:memory:) error = %v", err)
	}
	defer s.Close()
	if err := s.Put(context.Background(), &Guide{ID: "a", Language: "en", Content: "x"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
}

func TestResolveDBPath(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	got, err := ResolveDBPath("")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dataHome, "recovery-guide", "guides.db"); got != want {
		t.Fatalf("ResolveDBPath(\"\") = %q, want %q", got, want)
	}
	if got, _ := ResolveDBPath(":memory:"); got != ":memory:" {
		t.Fatalf("ResolveDBPath(:memory:) = %q", got)
	}
	t.Setenv("GUIDE_TEST_DIR", dataHome)
	if got, _ := ResolveDBPath("$GUIDE_TEST_DIR/x.db"); got != filepath.Join(dataHome, "x.db") {
		t.Fatalf("env expansion = %q", got)
	}
}

type fakeProvider struct {
	guides map[string]*Guide
	err    error
	calls  atomic.Int32
}

func (f *fakeProvider) Lookup(_ context.Context, id, lang string) (*Guide, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	if g, ok := f.guides[id+"/"+lang]; ok {
		return g, nil
	}
	return nil, notFound(id, lang)
}

func TestFallbackProvider(t *testing.T) {
	base := &fakeProvider{guides: map[string]*Guide{
		"lift/en": {ID: "lift", Language: "en", Content: "english"},
		"lift/ko": {ID: "lift", Language: "ko", Content: "korean"},
		"nose/en": {ID: "nose", Language: "en", Content: "english only"},
	}}
	p := &FallbackProvider{Provider: base, Fallback: "en"}
	ctx := context.Background()

	tests := []struct {
		id, lang string
		wantLang string
		wantErr  bool
	}{
		{"lift", "ko", "ko", false},
		{"nose", "ko", "en", false},
		{"nose", "en", "en", false},
		{"chin", "ko", "", true},
	}
	for _, tt := range tests {
		g, err := p.Lookup(ctx, tt.id, tt.lang)
		if tt.wantErr {
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Lookup(%s,%s) error = %v, want ErrNotFound", tt.id, tt.lang, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Lookup(%s,%s) error = %v", tt.id, tt.lang, err)
		}
		if g.Language != tt.wantLang {
			t.Errorf("Lookup(%s,%s) language = %s, want %s", tt.id, tt.lang, g.Language, tt.wantLang)
		}
	}

	// Transport errors are not retried in the fallback language.
	base.err = errors.New("boom")
	base.calls.Store(0)
	if _, err := p.Lookup(ctx, "lift", "ko"); err == nil || base.calls.Load() != 1 {
		t.Fatalf("error = %v, calls = %d", err, base.calls.Load())
	}
}

func TestCachedProvider(t *testing.T) {
	base := &fakeProvider{guides: map[string]*Guide{
		"lift/ko": {ID: "lift", Language: "ko", Title: "Lift", Content: "korean"},
	}}
	c := &cache.GuideCache{Dir: t.TempDir(), TTL: time.Hour}
	p := &CachedProvider{Provider: base, Cache: c}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		g, err := p.Lookup(ctx, "lift", "ko")
		if err != nil {
			t.Fatalf("Lookup() error = %v", err)
		}
		if g.Content != "korean" || g.Title != "Lift" {
			t.Fatalf("Lookup() = %+v", g)
		}
	}
	if n := base.calls.Load(); n != 1 {
		t.Fatalf("provider called %d times, want 1", n)
	}

	// Expired entries are refetched; failures fall back to the stale copy.
	c.TTL = time.Nanosecond
	base.err = errors.New("offline")
	g, err := p.Lookup(ctx, "lift", "ko")
	if err != nil {
		t.Fatalf("stale Lookup() error = %v", err)
	}
	if g.Content != "korean" {
		t.Fatalf("stale Lookup() = %+v", g)
	}
	if n := base.calls.Load(); n != 2 {
		t.Fatalf("provider called %d times, want 2", n)
	}

	base.err = nil
	if _, err := p.Lookup(ctx, "chin", "ko"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing guide error = %v", err)
	}
}

func TestRemoteStore(t *testing.T) {
	var gotQuery, gotKey, gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("guide_id") + "|" + r.URL.Query().Get("language")
		gotKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("guide_id") == "eq.missing" {
			w.Write([]byte(`[]`))
			return
		}
		if r.URL.Query().Get("guide_id") == "eq.broken" {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"db down"}`))
			return
		}
		w.Write([]byte(`[{"guide_id":"lift","language":"ko","title":"안면거상","content":"## 🕐 1주차","updated_at":"2026-01-02T03:04:05Z"}]`))
	}))
	defer srv.Close()

	r, err := NewRemoteStore(RemoteConfig{BaseURL: srv.URL + "/", APIKey: "secret"})
	if err != nil {
		t.Fatalf("NewRemoteStore() error = %v", err)
	}
	ctx := context.Background()

	g, err := r.Lookup(ctx, "lift", "ko")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if g.Title != "안면거상" || g.Content != "## 🕐 1주차" || g.UpdatedAt.Year() != 2026 {
		t.Fatalf("Lookup() = %+v", g)
	}
	if gotPath != "/rest/v1/recovery_guides" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "eq.lift|eq.ko" {
		t.Errorf("filters = %q", gotQuery)
	}
	if gotKey != "secret" || gotAuth != "Bearer secret" {
		t.Errorf("headers apikey=%q authorization=%q", gotKey, gotAuth)
	}

	if _, err := r.Lookup(ctx, "missing", "ko"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing error = %v, want ErrNotFound", err)
	}
	if _, err := r.Lookup(ctx, "broken", "ko"); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("server error = %v", err)
	}
}

func TestNewRemoteStoreRequiresURL(t *testing.T) {
	if _, err := NewRemoteStore(RemoteConfig{}); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}
