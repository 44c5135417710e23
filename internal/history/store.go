package history

import (
	"log/slog"
	"strings"
	"sync"
)

// DefaultLimit is the default maximum number of recent queries kept
const DefaultLimit = 5

// Store keeps a bounded, deduplicated, most-recent-first list of committed
// search queries. The in-memory list is authoritative for the session;
// persistence through the backend is best-effort and failures are swallowed.
type Store struct {
	mu      sync.Mutex
	queries []string
	limit   int
	backend Backend
	logger  *slog.Logger
}

// NewStore creates a store backed by backend, loading any persisted
// queries. Malformed or unreadable persisted data yields an empty list.
func NewStore(backend Backend, limit int) *Store {
	if limit < 1 {
		limit = DefaultLimit
	}

	s := &Store{
		limit:   limit,
		backend: backend,
		logger:  slog.With("component", "history"),
	}

	if backend != nil {
		queries, err := backend.Load()
		if err != nil {
			s.logger.Debug("loading persisted history failed", "error", err)
		} else {
			s.queries = sanitize(queries, limit)
		}
	}

	return s
}

// Add records a committed query at the front of the list. An existing equal
// entry is moved to the front rather than duplicated; the list is truncated
// to the store's limit. Empty (after trimming) queries are ignored.
func (s *Store) Add(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	s.mu.Lock()
	filtered := make([]string, 0, len(s.queries)+1)
	filtered = append(filtered, query)
	for _, q := range s.queries {
		if q != query {
			filtered = append(filtered, q)
		}
	}
	if len(filtered) > s.limit {
		filtered = filtered[:s.limit]
	}
	s.queries = filtered
	snapshot := append([]string(nil), s.queries...)
	s.mu.Unlock()

	s.persist(snapshot)
}

// Queries returns the recent queries, most recent first
func (s *Store) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// Len returns the number of recorded queries
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queries)
}

// Clear empties the list and best-effort removes the persisted record
func (s *Store) Clear() {
	s.mu.Lock()
	s.queries = nil
	s.mu.Unlock()

	if s.backend == nil {
		return
	}
	if err := s.backend.Clear(); err != nil {
		s.logger.Debug("clearing persisted history failed", "error", err)
	}
}

func (s *Store) persist(queries []string) {
	if s.backend == nil {
		return
	}
	if err := s.backend.Store(queries); err != nil {
		s.logger.Debug("persisting history failed", "error", err)
	}
}

// sanitize drops empty and duplicate entries from persisted data, keeping
// first occurrences, and truncates to limit
func sanitize(queries []string, limit int) []string {
	seen := make(map[string]bool, len(queries))
	out := make([]string, 0, len(queries))
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" || seen[q] {
			continue
		}
		seen[q] = true
		out = append(out, q)
		if len(out) == limit {
			break
		}
	}
	return out
}
