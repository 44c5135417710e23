package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"docseek/internal/domain"
)

// Store is the full-text page index. Everything above the service-client
// boundary treats it as an opaque external search engine; only the client
// adapter and the indexing command talk to it directly.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if necessary) the index database at dbPath
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA temp_store = memory",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}

	s := &Store{db: db, path: dbPath}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS pages (
			id TEXT PRIMARY KEY,
			url TEXT NOT NULL,
			title TEXT NOT NULL,
			section TEXT NOT NULL,
			body TEXT NOT NULL,
			indexed_at TIMESTAMP NOT NULL
		)`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS pages_fts USING fts5(title, body)`,
		`CREATE INDEX IF NOT EXISTS idx_pages_section ON pages(section)`,
		`CREATE TABLE IF NOT EXISTS index_meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

// Info returns metadata about the current index build
func (s *Store) Info(ctx context.Context) (domain.IndexInfo, error) {
	var info domain.IndexInfo

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM index_meta`)
	if err != nil {
		return info, fmt.Errorf("querying index metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return info, fmt.Errorf("scanning index metadata: %w", err)
		}
		switch key {
		case metaBuildID:
			info.BuildID = value
		case metaBuiltAt:
			info.BuiltAt = value
		}
	}
	if err := rows.Err(); err != nil {
		return info, fmt.Errorf("reading index metadata: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages`).Scan(&info.PageCount); err != nil {
		return info, fmt.Errorf("counting pages: %w", err)
	}

	return info, nil
}

const (
	metaBuildID = "build_id"
	metaBuiltAt = "built_at"
)
