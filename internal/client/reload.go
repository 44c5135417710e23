package client

import (
	"context"
	"fmt"
	"sync"

	"docseek/internal/domain"
)

// Factory creates a fresh Client, typically over a reopened index
type Factory func() (*Client, error)

// Reloader delegates to a Client that can be swapped when the underlying
// index is rebuilt on disk. One-shot initialization semantics hold per
// client generation; Reload starts a new generation.
type Reloader struct {
	mu      sync.RWMutex
	factory Factory
	current *Client
}

// NewReloader creates a reloader over the first client produced by factory
func NewReloader(factory Factory) (*Reloader, error) {
	c, err := factory()
	if err != nil {
		return nil, fmt.Errorf("creating initial client: %w", err)
	}
	return &Reloader{factory: factory, current: c}, nil
}

// Reload swaps in a fresh client and closes the old one. On factory
// failure the previous client stays active.
func (r *Reloader) Reload() error {
	next, err := r.factory()
	if err != nil {
		return fmt.Errorf("reloading client: %w", err)
	}

	r.mu.Lock()
	old := r.current
	r.current = next
	r.mu.Unlock()

	if old != nil {
		old.Close()
	}
	return nil
}

func (r *Reloader) client() *Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Ready reports whether the current client's engine initialized
func (r *Reloader) Ready() bool {
	return r.client().Ready()
}

// Search delegates to the current client
func (r *Reloader) Search(ctx context.Context, query, filter string) (domain.ResultSet, error) {
	return r.client().Search(ctx, query, filter)
}

// ListFilterValues delegates to the current client
func (r *Reloader) ListFilterValues(ctx context.Context) domain.FilterCatalog {
	return r.client().ListFilterValues(ctx)
}

// Close closes the current client
func (r *Reloader) Close() {
	r.client().Close()
}
