package index

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"docseek/internal/domain"
)

var indexableExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".mdx":      true,
	".txt":      true,
	".html":     true,
}

// Build walks docsDir and replaces the index contents with one page per
// documentation file. The whole swap happens in a single transaction, so a
// reader never observes a half-built index.
func (s *Store) Build(ctx context.Context, docsDir string) (domain.IndexInfo, error) {
	logger := slog.With("component", "index")
	var info domain.IndexInfo

	root, err := filepath.Abs(docsDir)
	if err != nil {
		return info, fmt.Errorf("resolving docs directory: %w", err)
	}

	pages, err := collectPages(ctx, root)
	if err != nil {
		return info, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return info, fmt.Errorf("beginning transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil {
				logger.Warn("rollback failed", "error", err)
			}
		}
	}()

	for _, stmt := range []string{`DELETE FROM pages`, `DELETE FROM pages_fts`, `DELETE FROM index_meta`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return info, fmt.Errorf("clearing previous index: %w", err)
		}
	}

	pageStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pages (id, url, title, section, body, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return info, fmt.Errorf("preparing page statement: %w", err)
	}
	defer func() { _ = pageStmt.Close() }()

	ftsStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pages_fts (rowid, title, body)
		VALUES ((SELECT rowid FROM pages WHERE id = ?), ?, ?)`)
	if err != nil {
		return info, fmt.Errorf("preparing FTS statement: %w", err)
	}
	defer func() { _ = ftsStmt.Close() }()

	now := time.Now().UTC()
	for _, p := range pages {
		if _, err := pageStmt.ExecContext(ctx, p.id, p.url, p.title, p.section, p.body, now); err != nil {
			return info, fmt.Errorf("inserting page %s: %w", p.url, err)
		}
		if _, err := ftsStmt.ExecContext(ctx, p.id, p.title, p.body); err != nil {
			return info, fmt.Errorf("inserting page %s into FTS: %w", p.url, err)
		}
	}

	info.BuildID = uuid.NewString()
	info.BuiltAt = now.Format(time.RFC3339)
	info.PageCount = len(pages)

	metaStmt, err := tx.PrepareContext(ctx, `INSERT INTO index_meta (key, value) VALUES (?, ?)`)
	if err != nil {
		return info, fmt.Errorf("preparing metadata statement: %w", err)
	}
	defer func() { _ = metaStmt.Close() }()

	for key, value := range map[string]string{
		metaBuildID: info.BuildID,
		metaBuiltAt: info.BuiltAt,
	} {
		if _, err := metaStmt.ExecContext(ctx, key, value); err != nil {
			return info, fmt.Errorf("writing index metadata: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return info, fmt.Errorf("committing index build: %w", err)
	}
	committed = true

	logger.Info("index built", "pages", info.PageCount, "build_id", info.BuildID)
	return info, nil
}

// page is an indexable documentation file prepared for insertion
type page struct {
	id      string
	url     string
	title   string
	section string
	body    string
}

func collectPages(ctx context.Context, root string) ([]page, error) {
	var pages []page

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			// Hidden directories are never part of a published docs tree
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !indexableExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		body := NormalizeText(stripMarkup(string(raw)))
		title := extractTitle(string(raw))
		if title == "" {
			title = titleFromPath(rel)
		}

		pages = append(pages, page{
			id:      rel,
			url:     pageURL(rel),
			title:   title,
			section: sectionOf(rel),
			body:    body,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking docs directory: %w", err)
	}

	return pages, nil
}

// sectionOf derives the facet value from the first path element; top-level
// files land in the "docs" section
func sectionOf(rel string) string {
	if i := strings.IndexByte(rel, '/'); i > 0 {
		return rel[:i]
	}
	return "docs"
}

// pageURL maps a source file path to its published URL
func pageURL(rel string) string {
	ext := filepath.Ext(rel)
	trimmed := strings.TrimSuffix(rel, ext)
	trimmed = strings.TrimSuffix(trimmed, "index")
	trimmed = strings.TrimSuffix(trimmed, "/")
	if trimmed == "" {
		return "/"
	}
	return "/" + trimmed + "/"
}

// extractTitle returns the first markdown heading, if any
func extractTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "# "))
		}
	}
	return ""
}

// titleFromPath falls back to a humanized file name
func titleFromPath(rel string) string {
	base := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	if base == "index" {
		base = filepath.Base(filepath.Dir(rel))
	}
	base = strings.ReplaceAll(base, "-", " ")
	base = strings.ReplaceAll(base, "_", " ")
	return strings.TrimSpace(base)
}
