package client

import (
	"context"

	"docseek/internal/domain"
	"docseek/internal/index"
)

// SQLiteOpener returns an Opener backed by the local SQLite FTS index.
// Opening fails when the path is unwritable or the file is not a usable
// database, which the client caches as a permanent initialization failure.
func SQLiteOpener(indexPath string) Opener {
	return func() (Service, error) {
		store, err := index.Open(indexPath)
		if err != nil {
			return nil, err
		}
		return &sqliteService{store: store}, nil
	}
}

// sqliteService adapts index.Store to the Service boundary
type sqliteService struct {
	store *index.Store
}

func (s *sqliteService) Search(ctx context.Context, query, section string, limit int) (ServiceResult, error) {
	result, err := s.store.Search(ctx, query, section, limit)
	if err != nil {
		return nil, err
	}
	return sqliteResult{result: result}, nil
}

func (s *sqliteService) Sections(ctx context.Context) ([]domain.Facet, error) {
	return s.store.Sections(ctx)
}

// Close closes the underlying index
func (s *sqliteService) Close() error {
	return s.store.Close()
}

type sqliteResult struct {
	result *index.Result
}

func (r sqliteResult) Total() int { return r.result.TotalMatches }

func (r sqliteResult) Matches() []Match {
	matches := make([]Match, len(r.result.Matches))
	for i, m := range r.result.Matches {
		matches[i] = m
	}
	return matches
}
