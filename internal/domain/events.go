package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchStarted   EventType = "SearchStarted"
	EventSearchCompleted EventType = "SearchCompleted"
	EventSearchFailed    EventType = "SearchFailed"
	EventSearchCleared   EventType = "SearchCleared"
	EventFilterChanged   EventType = "FilterChanged"
	EventQueryCommitted  EventType = "QueryCommitted"
	EventServiceDegraded EventType = "ServiceDegraded"
	EventIndexBuilt      EventType = "IndexBuilt"
	EventIndexReloaded   EventType = "IndexReloaded"
	EventError           EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchStartedEvent is emitted when a search dispatch begins
type SearchStartedEvent struct {
	Query      string
	Filter     string
	Generation uint64
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchCompletedEvent is emitted when a dispatch finishes and its results
// were accepted (not superseded by a newer dispatch)
type SearchCompletedEvent struct {
	Query        string
	Filter       string
	ShownCount   int
	TotalMatches int
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when a dispatch fails; the UI degrades to the
// empty-results layout rather than surfacing the error
type SearchFailedEvent struct {
	Query string
	Err   error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// SearchClearedEvent is emitted when the query is cleared
type SearchClearedEvent struct{}

func (e SearchClearedEvent) Type() EventType { return EventSearchCleared }

// FilterChangedEvent is emitted when the active section filter changes
type FilterChangedEvent struct {
	Filter string // "" means no filter
}

func (e FilterChangedEvent) Type() EventType { return EventFilterChanged }

// QueryCommittedEvent is emitted when the user commits a selection and the
// query is recorded in the recent-query history
type QueryCommittedEvent struct {
	Query string
	URL   string
}

func (e QueryCommittedEvent) Type() EventType { return EventQueryCommitted }

// ServiceDegradedEvent is emitted when search service initialization fails
// and the UI falls back to recent-queries-only mode
type ServiceDegradedEvent struct {
	Err error
}

func (e ServiceDegradedEvent) Type() EventType { return EventServiceDegraded }

// IndexBuiltEvent is emitted when an index build finishes
type IndexBuiltEvent struct {
	Info IndexInfo
}

func (e IndexBuiltEvent) Type() EventType { return EventIndexBuilt }

// IndexReloadedEvent is emitted when the index file changed on disk and the
// service client was re-created
type IndexReloadedEvent struct {
	Path string
}

func (e IndexReloadedEvent) Type() EventType { return EventIndexReloaded }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
