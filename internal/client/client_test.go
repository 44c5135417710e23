package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docseek/internal/domain"
	"docseek/internal/index"
)

// fakeService is an in-memory Service for exercising the adapter
type fakeService struct {
	mu       sync.Mutex
	items    []domain.ResultItem
	searches int
	fail     bool
	delay    time.Duration
}

func (f *fakeService) Search(ctx context.Context, query, section string, limit int) (ServiceResult, error) {
	f.mu.Lock()
	f.searches++
	fail, delay := f.fail, f.delay
	f.mu.Unlock()

	if fail {
		return nil, fmt.Errorf("engine down")
	}

	var matches []Match
	for i := range f.items {
		if section != "" && f.items[i].Section != section {
			continue
		}
		matches = append(matches, fakeMatch{item: f.items[i], delay: delay})
		if len(matches) == limit {
			break
		}
	}
	return fakeResult{total: len(f.items), matches: matches}, nil
}

func (f *fakeService) Sections(ctx context.Context) ([]domain.Facet, error) {
	if f.fail {
		return nil, fmt.Errorf("engine down")
	}
	return []domain.Facet{{Value: "guides", Count: len(f.items)}}, nil
}

type fakeResult struct {
	total   int
	matches []Match
}

func (r fakeResult) Total() int       { return r.total }
func (r fakeResult) Matches() []Match { return r.matches }

type fakeMatch struct {
	item  domain.ResultItem
	delay time.Duration
	err   error
}

func (m fakeMatch) Resolve(ctx context.Context) (domain.ResultItem, error) {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	return m.item, m.err
}

func fakeItems(n int) []domain.ResultItem {
	items := make([]domain.ResultItem, n)
	for i := range items {
		items[i] = domain.ResultItem{
			ID:      fmt.Sprintf("page-%d", i),
			URL:     fmt.Sprintf("/page-%d/", i),
			Title:   fmt.Sprintf("Page %d", i),
			Section: "guides",
		}
	}
	return items
}

func newTestClient(t *testing.T, open Opener, opts ...Option) *Client {
	t.Helper()
	c, err := New(open, opts...)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestSearchResolvesAllMatches(t *testing.T) {
	svc := &fakeService{items: fakeItems(3)}
	c := newTestClient(t, func() (Service, error) { return svc, nil })

	set, err := c.Search(context.Background(), "anything", "")
	require.NoError(t, err)
	assert.Equal(t, 3, set.TotalMatches)
	require.Len(t, set.Items, 3)

	// Concurrent resolution preserves relevance order
	for i, item := range set.Items {
		assert.Equal(t, fmt.Sprintf("page-%d", i), item.ID)
	}
}

func TestSearchTruncatesToPageSize(t *testing.T) {
	svc := &fakeService{items: fakeItems(25)}
	c := newTestClient(t, func() (Service, error) { return svc, nil }, WithPageSize(10))

	set, err := c.Search(context.Background(), "anything", "")
	require.NoError(t, err)
	assert.Equal(t, 25, set.TotalMatches)
	assert.Len(t, set.Items, 10)
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	svc := &fakeService{items: fakeItems(1)}
	c := newTestClient(t, func() (Service, error) { return svc, nil })

	_, err := c.Search(context.Background(), "   ", "")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Zero(t, svc.searches)
}

func TestInitializationRunsOnce(t *testing.T) {
	var opens atomic.Int32
	svc := &fakeService{items: fakeItems(1)}
	c := newTestClient(t, func() (Service, error) {
		opens.Add(1)
		return svc, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.EnsureReady())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), opens.Load())
}

func TestInitializationFailureIsPermanent(t *testing.T) {
	var opens atomic.Int32
	c := newTestClient(t, func() (Service, error) {
		opens.Add(1)
		return nil, fmt.Errorf("bundle missing")
	})

	assert.ErrorIs(t, c.EnsureReady(), ErrNotReady)
	assert.ErrorIs(t, c.EnsureReady(), ErrNotReady)
	assert.False(t, c.Ready())

	_, err := c.Search(context.Background(), "query", "")
	assert.ErrorIs(t, err, ErrNotReady)

	// The failed open is never retried
	assert.Equal(t, int32(1), opens.Load())
}

func TestListFilterValuesFailureYieldsEmptyCatalog(t *testing.T) {
	t.Run("init failure", func(t *testing.T) {
		c := newTestClient(t, func() (Service, error) { return nil, fmt.Errorf("nope") })
		catalog := c.ListFilterValues(context.Background())
		assert.Empty(t, catalog.Sections)
	})

	t.Run("engine failure", func(t *testing.T) {
		c := newTestClient(t, func() (Service, error) { return &fakeService{fail: true}, nil })
		catalog := c.ListFilterValues(context.Background())
		assert.Empty(t, catalog.Sections)
	})

	t.Run("success", func(t *testing.T) {
		c := newTestClient(t, func() (Service, error) { return &fakeService{items: fakeItems(2)}, nil })
		catalog := c.ListFilterValues(context.Background())
		require.Len(t, catalog.Sections, 1)
		assert.True(t, catalog.Has("guides"))
		assert.False(t, catalog.Has("reference"))
	})
}

func TestSearchEngineFailurePropagates(t *testing.T) {
	c := newTestClient(t, func() (Service, error) { return &fakeService{fail: true}, nil })

	_, err := c.Search(context.Background(), "query", "")
	assert.Error(t, err)
}

func TestSearchSectionFilterPassedThrough(t *testing.T) {
	items := fakeItems(3)
	items[1].Section = "reference"
	svc := &fakeService{items: items}
	c := newTestClient(t, func() (Service, error) { return svc, nil })

	set, err := c.Search(context.Background(), "anything", "reference")
	require.NoError(t, err)
	require.Len(t, set.Items, 1)
	assert.Equal(t, "reference", set.Items[0].Section)
}

func TestSearchAgainstSQLiteIndex(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "index.db")

	store, err := index.Open(dbPath)
	require.NoError(t, err)
	docs := filepath.Join(dir, "docs")
	require.NoError(t, writeDoc(docs, "guides/deploy.md", "# Deploying\n\nDeploy an agent."))
	_, err = store.Build(context.Background(), docs)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	c := newTestClient(t, SQLiteOpener(dbPath))

	set, err := c.Search(context.Background(), "deploy", "")
	require.NoError(t, err)
	assert.Equal(t, 1, set.TotalMatches)
	require.Len(t, set.Items, 1)
	assert.Equal(t, "/guides/deploy/", set.Items[0].URL)

	catalog := c.ListFilterValues(context.Background())
	assert.True(t, catalog.Has("guides"))
}

func writeDoc(root, rel, content string) error {
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func TestSQLiteOpenerUnusablePath(t *testing.T) {
	// A regular file where the parent directory should be makes the path
	// unusable; the client caches this as a permanent init failure
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0644))

	c := newTestClient(t, SQLiteOpener(filepath.Join(blocker, "index.db")))
	assert.False(t, c.Ready())
	assert.False(t, c.Ready(), "failed open is never retried")
}
