package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Config controls SQLite store initialization.
type Config struct {
	Path string // Optional DB path override (supports :memory:)
}

// ListOptions configures guide listing.
type ListOptions struct {
	Language string
	Limit    int
}

// SearchResult is a BM25 match from the full-text index.
type SearchResult struct {
	ID       string  `json:"id"`
	Language string  `json:"language"`
	Title    string  `json:"title"`
	Snippet  string  `json:"snippet"`
	Score    float64 `json:"score"`
}

// SQLiteStore persists guides in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS guides (
    id         TEXT NOT NULL,
    language   TEXT NOT NULL,
    title      TEXT NOT NULL DEFAULT '',
    content    TEXT NOT NULL,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_guides_id_language ON guides(id, language);

CREATE VIRTUAL TABLE IF NOT EXISTS guides_fts USING fts5(
    id UNINDEXED,
    language UNINDEXED,
    title,
    content,
    content='guides',
    content_rowid='rowid',
    tokenize='unicode61'
);
`

// NewSQLiteStore opens guides.db and initializes the schema.
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	dbPath, err := ResolveDBPath(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve guide db path: %w", err)
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create guide data directory: %w", err)
		}
	}

	dsn := dbPath
	if strings.Contains(dsn, "?") {
		dsn += "&"
	} else {
		dsn += "?"
	}
	dsn += "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open guide db: %w", err)
	}
	if dbPath == ":memory:" {
		// Each new connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize guide schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// GetDataDir returns the XDG data directory for recovery-guide.
func GetDataDir() (string, error) {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "recovery-guide"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "recovery-guide"), nil
}

// ResolveDBPath resolves an optional DB path override. An empty override
// selects guides.db in the data directory.
func ResolveDBPath(pathOverride string) (string, error) {
	pathOverride = strings.TrimSpace(pathOverride)
	if pathOverride == "" {
		dataDir, err := GetDataDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dataDir, "guides.db"), nil
	}
	if pathOverride == ":memory:" {
		return pathOverride, nil
	}

	pathOverride = os.ExpandEnv(pathOverride)
	if strings.HasPrefix(pathOverride, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		pathOverride = filepath.Join(homeDir, pathOverride[2:])
	}

	abs, err := filepath.Abs(pathOverride)
	if err != nil {
		return "", fmt.Errorf("resolve db path %q: %w", pathOverride, err)
	}
	return abs, nil
}

// Put inserts or replaces the (ID, Language) variant and syncs FTS.
// CreatedAt is kept from an existing row.
func (s *SQLiteStore) Put(ctx context.Context, g *Guide) error {
	if g == nil {
		return fmt.Errorf("guide is nil")
	}
	g.ID = strings.TrimSpace(g.ID)
	g.Language = strings.TrimSpace(g.Language)
	if g.ID == "" || g.Language == "" {
		return fmt.Errorf("guide id and language are required")
	}
	if strings.TrimSpace(g.Content) == "" {
		return fmt.Errorf("content is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	old, rowID, err := getGuideTx(ctx, tx, g.ID, g.Language)
	if err != nil {
		return err
	}

	now := time.Now()
	g.UpdatedAt = now
	if old != nil {
		g.CreatedAt = old.CreatedAt
		if _, err := tx.ExecContext(ctx,
			`UPDATE guides SET title = ?, content = ?, updated_at = ? WHERE rowid = ?`,
			g.Title, g.Content, g.UpdatedAt, rowID); err != nil {
			return fmt.Errorf("update guide: %w", err)
		}
		if err := syncFTSDelete(ctx, tx, rowID, old); err != nil {
			return fmt.Errorf("sync fts delete: %w", err)
		}
	} else {
		if g.CreatedAt.IsZero() {
			g.CreatedAt = now
		}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO guides (id, language, title, content, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			g.ID, g.Language, g.Title, g.Content, g.CreatedAt, g.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert guide: %w", err)
		}
		if rowID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("get guide rowid: %w", err)
		}
	}

	if err := syncFTSInsert(ctx, tx, rowID, g); err != nil {
		return fmt.Errorf("sync fts insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put guide: %w", err)
	}
	return nil
}

// Lookup implements Provider.
func (s *SQLiteStore) Lookup(ctx context.Context, guideID, lang string) (*Guide, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, language, title, content, created_at, updated_at
		FROM guides
		WHERE id = ? AND language = ?`,
		guideID, lang)

	g, err := scanGuide(row)
	if err == sql.ErrNoRows {
		return nil, notFound(guideID, lang)
	}
	if err != nil {
		return nil, fmt.Errorf("get guide: %w", err)
	}
	return g, nil
}

// Delete removes one language variant and syncs FTS.
func (s *SQLiteStore) Delete(ctx context.Context, guideID, lang string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	g, rowID, err := getGuideTx(ctx, tx, guideID, lang)
	if err != nil {
		return err
	}
	if g == nil {
		return notFound(guideID, lang)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM guides WHERE rowid = ?`, rowID); err != nil {
		return fmt.Errorf("delete guide: %w", err)
	}
	if err := syncFTSDelete(ctx, tx, rowID, g); err != nil {
		return fmt.Errorf("sync fts delete: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete guide: %w", err)
	}
	return nil
}

// List returns stored guides ordered by id then language.
func (s *SQLiteStore) List(ctx context.Context, opts ListOptions) ([]Guide, error) {
	query := `
		SELECT id, language, title, content, created_at, updated_at
		FROM guides
		WHERE (? = '' OR language = ?)
		ORDER BY id, language`
	args := []any{opts.Language, opts.Language}
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list guides: %w", err)
	}
	defer rows.Close()

	var out []Guide
	for rows.Next() {
		g, err := scanGuide(rows)
		if err != nil {
			return nil, fmt.Errorf("scan guide: %w", err)
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

// IDs returns the distinct stored guide ids, sorted.
func (s *SQLiteStore) IDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT id FROM guides ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list guide ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Search performs a BM25 full-text search over titles and content. Each
// whitespace-separated term is matched literally.
func (s *SQLiteStore) Search(ctx context.Context, query, lang string, limit int) ([]SearchResult, error) {
	match := ftsQuery(query)
	if match == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id,
		       g.language,
		       g.title,
		       snippet(guides_fts, 3, '[', ']', '...', 16) AS snippet,
		       bm25(guides_fts) AS score
		FROM guides_fts
		JOIN guides g ON g.rowid = guides_fts.rowid
		WHERE guides_fts MATCH ?
		  AND (? = '' OR g.language = ?)
		ORDER BY bm25(guides_fts)
		LIMIT ?`, match, lang, lang, limit)
	if err != nil {
		return nil, fmt.Errorf("search guides: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		var rawScore float64
		if err := rows.Scan(&r.ID, &r.Language, &r.Title, &r.Snippet, &rawScore); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		// bm25() is negative; more negative is more relevant.
		r.Score = -rawScore
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the underlying DB.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ftsQuery quotes each term so FTS5 operators in user input are literal.
func ftsQuery(q string) string {
	fields := strings.Fields(q)
	for i, f := range fields {
		fields[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(fields, " ")
}

func scanGuide(scanner interface{ Scan(dest ...any) error }) (*Guide, error) {
	var g Guide
	if err := scanner.Scan(&g.ID, &g.Language, &g.Title, &g.Content, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

func getGuideTx(ctx context.Context, tx *sql.Tx, guideID, lang string) (*Guide, int64, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT rowid, id, language, title, content, created_at, updated_at
		FROM guides
		WHERE id = ? AND language = ?`,
		guideID, lang)

	var rowID int64
	var g Guide
	err := row.Scan(&rowID, &g.ID, &g.Language, &g.Title, &g.Content, &g.CreatedAt, &g.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("get guide: %w", err)
	}
	return &g, rowID, nil
}

func syncFTSInsert(ctx context.Context, tx *sql.Tx, rowID int64, g *Guide) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO guides_fts(rowid, id, language, title, content) VALUES(?, ?, ?, ?, ?)`,
		rowID, g.ID, g.Language, g.Title, g.Content)
	return err
}

func syncFTSDelete(ctx context.Context, tx *sql.Tx, rowID int64, g *Guide) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO guides_fts(guides_fts, rowid, id, language, title, content) VALUES('delete', ?, ?, ?, ?, ?)`,
		rowID, g.ID, g.Language, g.Title, g.Content)
	return err
}
