package controller

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"docseek/internal/domain"
	"docseek/internal/eventbus"
	"docseek/internal/history"
)

// Searcher is the service-client boundary the controller dispatches to
type Searcher interface {
	Ready() bool
	Search(ctx context.Context, query, filter string) (domain.ResultSet, error)
}

// Controller is the single source of truth for the active query, filter,
// result and loading state. It owns the debounced dispatch to the search
// service and the latest-wins suppression of superseded responses.
type Controller struct {
	searcher Searcher
	recent   *history.Store
	bus      eventbus.EventBus
	logger   *slog.Logger

	debounce time.Duration
	timeout  time.Duration

	navigateFn func(url string) // invoked on commit with the destination URL
	focusFn    func()           // invoked on Clear so the input regains focus
	notifyFn   func()           // invoked after any observable state change

	mu           sync.Mutex
	query        string
	filter       string
	results      []domain.ResultItem
	totalMatches int
	loading      bool
	failed       bool
	pending      bool // debounce timer armed
	degraded     bool
	degradedOnce sync.Once
	timer        *time.Timer
	generation   uint64 // latest dispatched generation token
	closed       bool
}

// Option configures a Controller
type Option func(*Controller)

// WithDebounce sets the quiet period between the last keystroke and the
// dispatch. Default is 150ms.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithTimeout bounds each service call. Default is 3s; a timed-out call
// surfaces as a per-query search failure.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithEventBus publishes controller lifecycle events to bus
func WithEventBus(bus eventbus.EventBus) Option {
	return func(c *Controller) {
		c.bus = bus
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a controller dispatching to searcher and recording committed
// queries in recent
func New(searcher Searcher, recent *history.Store, opts ...Option) *Controller {
	c := &Controller{
		searcher: searcher,
		recent:   recent,
		logger:   slog.Default(),
		debounce: 150 * time.Millisecond,
		timeout:  3 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetNavigateFunc sets the callback invoked with the destination URL when a
// selection is committed
func (c *Controller) SetNavigateFunc(fn func(url string)) {
	c.navigateFn = fn
}

// SetFocusFunc sets the callback invoked after Clear
func (c *Controller) SetFocusFunc(fn func()) {
	c.focusFn = fn
}

// SetNotifyFunc sets the callback invoked after any state change. The
// callback runs outside the controller lock and may arrive from timer or
// dispatch goroutines.
func (c *Controller) SetNotifyFunc(fn func()) {
	c.notifyFn = fn
}

// SetQuery updates the query text and schedules a debounced dispatch. Each
// call resets the quiet-period timer, so rapid keystrokes coalesce into one
// dispatch carrying the final text. An empty (after trimming) query cancels
// any pending dispatch and clears results synchronously without touching
// the service.
func (c *Controller) SetQuery(text string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.query = text
	c.stopTimerLocked()

	if strings.TrimSpace(text) == "" {
		// In-flight responses for the old query are stale now
		c.generation++
		c.results = nil
		c.totalMatches = 0
		c.loading = false
		c.failed = false
		c.mu.Unlock()
		c.publish(eventbus.SearchClearedEvent{})
		c.notify()
		return
	}

	c.pending = true
	c.timer = time.AfterFunc(c.debounce, c.fireDebounce)
	c.mu.Unlock()
	c.notify()
}

// SetFilter updates the active section filter ("" clears it) and, when a
// query is active, re-dispatches immediately. A filter change is a discrete
// user action, so it skips the debounce.
func (c *Controller) SetFilter(value string) {
	c.mu.Lock()
	if c.closed || c.filter == value {
		c.mu.Unlock()
		return
	}
	c.filter = value
	query := strings.TrimSpace(c.query)
	dispatch := query != ""
	if dispatch {
		c.stopTimerLocked()
	}
	c.mu.Unlock()

	c.publish(eventbus.FilterChangedEvent{Filter: value})
	if dispatch {
		c.dispatch(query, value)
	}
	c.notify()
}

// CommitSelection records the current query in the recent-query history and
// signals navigation to the item's URL
func (c *Controller) CommitSelection(item domain.ResultItem) {
	c.mu.Lock()
	query := c.query
	c.mu.Unlock()

	if c.recent != nil {
		c.recent.Add(query)
	}
	c.publish(eventbus.QueryCommittedEvent{Query: strings.TrimSpace(query), URL: item.URL})
	if c.navigateFn != nil {
		c.navigateFn(item.URL)
	}
}

// Clear resets the query and results without dispatching, then signals the
// presentation layer to re-focus the input
func (c *Controller) Clear() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.stopTimerLocked()
	c.generation++
	c.query = ""
	c.results = nil
	c.totalMatches = 0
	c.loading = false
	c.failed = false
	c.mu.Unlock()

	c.publish(eventbus.SearchClearedEvent{})
	if c.focusFn != nil {
		c.focusFn()
	}
	c.notify()
}

// Snapshot returns a consistent copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Query:        c.query,
		Filter:       c.filter,
		Results:      append([]domain.ResultItem(nil), c.results...),
		TotalMatches: c.totalMatches,
		Degraded:     c.degraded,
	}

	switch {
	case strings.TrimSpace(c.query) == "":
		snap.Phase = PhaseIdle
	case c.pending:
		snap.Phase = PhaseTyping
	case c.loading:
		snap.Phase = PhaseLoading
	case c.failed:
		snap.Phase = PhaseError
	case len(c.results) == 0:
		snap.Phase = PhaseEmpty
	default:
		snap.Phase = PhaseResults
	}

	return snap
}

// Close cancels any pending dispatch; the controller ignores calls after it
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.generation++
	c.stopTimerLocked()
}

// fireDebounce runs on the timer goroutine when the quiet period elapses
func (c *Controller) fireDebounce() {
	c.mu.Lock()
	if c.closed || !c.pending {
		c.mu.Unlock()
		return
	}
	c.pending = false
	query := strings.TrimSpace(c.query)
	filter := c.filter
	c.mu.Unlock()

	if query == "" {
		return
	}
	c.dispatch(query, filter)
}

// dispatch starts a service call for query/filter, tagged with a fresh
// generation token. Responses whose token is no longer the latest are
// discarded so out-of-order completions never overwrite newer results.
func (c *Controller) dispatch(query, filter string) {
	// Initialization failure degrades to recent-queries-only mode: the
	// service is never called again and nothing is surfaced as an error.
	if !c.searcher.Ready() {
		c.mu.Lock()
		c.degraded = true
		c.loading = false
		c.results = nil
		c.totalMatches = 0
		c.mu.Unlock()
		c.degradedOnce.Do(func() {
			c.logger.Warn("search service unavailable, degrading to link-only mode")
			c.publish(eventbus.ServiceDegradedEvent{})
		})
		c.notify()
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.generation++
	gen := c.generation
	c.loading = true
	c.failed = false
	c.mu.Unlock()

	c.publish(eventbus.SearchStartedEvent{Query: query, Filter: filter, Generation: gen})
	c.notify()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		set, err := c.searcher.Search(ctx, query, filter)

		c.mu.Lock()
		if c.closed || gen != c.generation {
			// Superseded by a newer dispatch or a clear; drop the response
			c.mu.Unlock()
			return
		}
		c.loading = false
		if err != nil {
			c.failed = true
			c.results = nil
			c.totalMatches = 0
			c.mu.Unlock()
			c.logger.Debug("search dispatch failed", "query", query, "error", err)
			c.publish(eventbus.SearchFailedEvent{Query: query, Err: err})
			c.notify()
			return
		}
		c.results = set.Items
		c.totalMatches = set.TotalMatches
		c.mu.Unlock()

		c.publish(eventbus.SearchCompletedEvent{
			Query:        query,
			Filter:       filter,
			ShownCount:   len(set.Items),
			TotalMatches: set.TotalMatches,
		})
		c.notify()
	}()
}

// stopTimerLocked cancels a pending debounce timer. Caller holds c.mu.
func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.pending = false
}

func (c *Controller) publish(event eventbus.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}

func (c *Controller) notify() {
	if c.notifyFn != nil {
		c.notifyFn()
	}
}
