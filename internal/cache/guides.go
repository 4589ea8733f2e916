package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultTTL = 30 * time.Minute
	cacheDir   = "recovery-guide"
	guidesDir  = "guides"
)

// Entry is one cached guide variant.
type Entry struct {
	ID        string    `json:"id"`
	Language  string    `json:"language"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
	FetchedAt time.Time `json:"fetched_at"`
}

// GuideCache stores fetched guides as JSON files, one per id and language.
type GuideCache struct {
	Dir string
	TTL time.Duration
}

// New returns a cache rooted at dir. An empty dir selects the XDG cache
// directory; a non-positive ttl selects DefaultTTL.
func New(dir string, ttl time.Duration) (*GuideCache, error) {
	if dir == "" {
		base, err := GetCacheDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, guidesDir)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &GuideCache{Dir: dir, TTL: ttl}, nil
}

// GetCacheDir returns the XDG cache directory for recovery-guide.
func GetCacheDir() (string, error) {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, cacheDir), nil
}

// path maps (id, lang) to <id>.<lang>.json. Languages may not contain a
// dot, so the last dot always separates the two parts.
func (c *GuideCache) path(id, lang string) (string, error) {
	name := id + "." + lang
	if id == "" || lang == "" || strings.Contains(lang, ".") ||
		strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid cache key %q", name)
	}
	return filepath.Join(c.Dir, name+".json"), nil
}

// Read returns the cached entry for (id, lang). A missing file is reported
// as an error satisfying errors.Is(err, fs.ErrNotExist).
func (c *GuideCache) Read(id, lang string) (*Entry, error) {
	path, err := c.path(id, lang)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &entry, nil
}

// Write stores entry atomically. FetchedAt is set to now when zero.
func (c *GuideCache) Write(entry Entry) error {
	path, err := c.path(entry.ID, entry.Language)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return err
	}
	if entry.FetchedAt.IsZero() {
		entry.FetchedAt = time.Now()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(c.Dir, entry.ID+"-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := f.Name()
	renamed := false
	defer func() {
		if !renamed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}
	renamed = true
	return nil
}

// Remove deletes the cached entry, if any.
func (c *GuideCache) Remove(id, lang string) error {
	path, err := c.path(id, lang)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// IsValid reports whether entry is younger than the cache TTL.
func (c *GuideCache) IsValid(entry *Entry) bool {
	if entry == nil {
		return false
	}
	return time.Since(entry.FetchedAt) < c.TTL
}
