package index

import (
	"context"
	"fmt"
	"strings"

	"docseek/internal/domain"
)

// Match is a lazy search hit. The initial MATCH pass yields only page ids;
// excerpt and detail resolution is a second, per-match step so callers can
// resolve hits concurrently.
type Match struct {
	ID    string
	store *Store
	expr  string
}

// Result is one page of matches plus the total count across all pages
type Result struct {
	TotalMatches int
	Matches      []*Match
}

// Search runs a full-text query against the index. Results are ordered by
// bm25 relevance and truncated to limit; TotalMatches counts every hit.
// section narrows the search to one facet value; empty means no filter.
func (s *Store) Search(ctx context.Context, query, section string, limit int) (*Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if limit < 1 {
		limit = 10
	}

	// Queries get the same diacritic folding as indexed text
	expr := buildMatchExpr(NormalizeText(query))

	where := `pages_fts MATCH ?`
	args := []any{expr}
	if section != "" {
		where += ` AND p.section = ?`
		args = append(args, section)
	}

	var total int
	countSQL := `
		SELECT COUNT(*)
		FROM pages p
		JOIN pages_fts f ON p.rowid = f.rowid
		WHERE ` + where
	if err := s.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting matches: %w", err)
	}

	pageSQL := `
		SELECT p.id
		FROM pages p
		JOIN pages_fts f ON p.rowid = f.rowid
		WHERE ` + where + `
		ORDER BY bm25(pages_fts)
		LIMIT ?`
	rows, err := s.db.QueryContext(ctx, pageSQL, append(args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("querying matches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := &Result{TotalMatches: total}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		result.Matches = append(result.Matches, &Match{ID: id, store: s, expr: expr})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading matches: %w", err)
	}

	return result, nil
}

// Resolve loads the match's full detail, including a highlighted excerpt.
// The snippet markers are the characters consumed by the presentation layer
// to emphasize matched terms.
func (m *Match) Resolve(ctx context.Context) (domain.ResultItem, error) {
	item := domain.ResultItem{ID: m.ID}

	row := m.store.db.QueryRowContext(ctx, `
		SELECT p.url, p.title, p.section,
		       snippet(pages_fts, 1, ?, ?, '…', 16)
		FROM pages p
		JOIN pages_fts f ON p.rowid = f.rowid
		WHERE p.id = ? AND pages_fts MATCH ?`,
		HighlightOpen, HighlightClose, m.ID, m.expr)

	if err := row.Scan(&item.URL, &item.Title, &item.Section, &item.Excerpt); err != nil {
		return item, fmt.Errorf("resolving match %s: %w", m.ID, err)
	}
	return item, nil
}

// Sections returns the distinct section facet values with page counts
func (s *Store) Sections(ctx context.Context) ([]domain.Facet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT section, COUNT(*)
		FROM pages
		GROUP BY section
		ORDER BY section`)
	if err != nil {
		return nil, fmt.Errorf("querying sections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var facets []domain.Facet
	for rows.Next() {
		var f domain.Facet
		if err := rows.Scan(&f.Value, &f.Count); err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		facets = append(facets, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading sections: %w", err)
	}

	return facets, nil
}

// Highlight markers embedded in excerpts by snippet()
const (
	HighlightOpen  = "\x01"
	HighlightClose = "\x02"
)

// buildMatchExpr turns raw user input into an FTS5 MATCH expression. Each
// term is quoted so punctuation never reaches the FTS5 parser, and the last
// term matches as a prefix to support search-as-you-type.
func buildMatchExpr(query string) string {
	terms := strings.Fields(query)
	parts := make([]string, 0, len(terms))
	for i, term := range terms {
		quoted := `"` + strings.ReplaceAll(term, `"`, `""`) + `"`
		if i == len(terms)-1 {
			quoted += "*"
		}
		parts = append(parts, quoted)
	}
	return strings.Join(parts, " ")
}
