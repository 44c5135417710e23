package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"docseek/internal/domain"
)

// Sentinel errors returned by the client
var (
	ErrNotReady   = errors.New("search service not initialized")
	ErrEmptyQuery = errors.New("empty search query")
)

// Service is the boundary to the external full-text search engine. The
// engine resolves match detail lazily, one handle per hit.
type Service interface {
	Search(ctx context.Context, query, section string, limit int) (ServiceResult, error)
	Sections(ctx context.Context) ([]domain.Facet, error)
}

// ServiceResult is one page of lazy matches plus the total hit count
type ServiceResult interface {
	Total() int
	Matches() []Match
}

// Match is a single lazy hit whose detail is resolved on demand
type Match interface {
	Resolve(ctx context.Context) (domain.ResultItem, error)
}

// Opener initializes the underlying engine. It runs at most once per
// client; both success and failure are cached for all subsequent calls.
type Opener func() (Service, error)

// Client adapts the external search engine behind lazy one-shot
// initialization, bounded result pages, and concurrent match resolution.
type Client struct {
	open     Opener
	pageSize int
	pool     *ants.Pool
	logger   *slog.Logger

	initOnce sync.Once
	svc      Service
	initErr  error
}

// Option configures a Client
type Option func(*Client)

// WithPageSize sets the number of results per search call. Default is 10.
func WithPageSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client over the engine produced by open. Initialization is
// deferred until the first EnsureReady/Search/ListFilterValues call.
func New(open Opener, opts ...Option) (*Client, error) {
	c := &Client{
		open:     open,
		pageSize: 10,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	pool, err := ants.NewPool(resolveWorkers)
	if err != nil {
		return nil, fmt.Errorf("creating resolve pool: %w", err)
	}
	c.pool = pool

	return c, nil
}

// resolveWorkers bounds concurrent per-match detail resolution
const resolveWorkers = 4

// EnsureReady performs the one-shot engine initialization. Concurrent early
// callers share the same initialization; the outcome, success or permanent
// failure, is cached.
func (c *Client) EnsureReady() error {
	c.initOnce.Do(func() {
		svc, err := c.open()
		if err != nil {
			c.initErr = fmt.Errorf("%w: %v", ErrNotReady, err)
			c.logger.Warn("search service initialization failed", "error", err)
			return
		}
		c.svc = svc
	})
	return c.initErr
}

// Ready reports whether initialization has succeeded. It triggers
// initialization if it has not run yet.
func (c *Client) Ready() bool {
	return c.EnsureReady() == nil
}

// Search runs a query against the engine and returns a fully-resolved,
// bounded result page plus the total match count. filter narrows to one
// section; empty means no filter. Empty queries are rejected, never passed
// through to the engine.
func (c *Client) Search(ctx context.Context, query, filter string) (domain.ResultSet, error) {
	var set domain.ResultSet

	if strings.TrimSpace(query) == "" {
		return set, ErrEmptyQuery
	}
	if err := c.EnsureReady(); err != nil {
		return set, err
	}

	result, err := c.svc.Search(ctx, query, filter, c.pageSize)
	if err != nil {
		return set, fmt.Errorf("searching %q: %w", query, err)
	}

	matches := result.Matches()
	items := make([]domain.ResultItem, len(matches))
	errs := make([]error, len(matches))

	// All match details resolve concurrently; order is preserved
	var wg sync.WaitGroup
	for i, m := range matches {
		wg.Add(1)
		i, m := i, m
		task := func() {
			defer wg.Done()
			items[i], errs[i] = m.Resolve(ctx)
		}
		if err := c.pool.Submit(task); err != nil {
			// Pool rejected the task (released or overloaded), resolve inline
			task()
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return set, fmt.Errorf("resolving matches: %w", err)
		}
	}

	set.Items = items
	set.TotalMatches = result.Total()
	return set, nil
}

// ListFilterValues returns the section facet catalog. Any failure,
// including initialization failure, yields an empty catalog so the rest of
// the UI keeps working.
func (c *Client) ListFilterValues(ctx context.Context) domain.FilterCatalog {
	if err := c.EnsureReady(); err != nil {
		return domain.FilterCatalog{}
	}

	facets, err := c.svc.Sections(ctx)
	if err != nil {
		c.logger.Warn("listing filter values failed", "error", err)
		return domain.FilterCatalog{}
	}
	return domain.FilterCatalog{Sections: facets}
}

// Close releases the resolve pool and the underlying engine, if it holds
// resources
func (c *Client) Close() {
	c.pool.Release()
	if closer, ok := c.svc.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}
