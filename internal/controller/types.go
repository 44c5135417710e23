package controller

import "docseek/internal/domain"

// Phase is the coarse interaction state the presentation layer renders
type Phase int

const (
	PhaseIdle    Phase = iota // no query
	PhaseTyping               // debounce pending
	PhaseLoading              // dispatch in flight
	PhaseResults              // results available
	PhaseEmpty                // search ran, nothing matched
	PhaseError                // last dispatch failed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTyping:
		return "typing"
	case PhaseLoading:
		return "loading"
	case PhaseResults:
		return "results"
	case PhaseEmpty:
		return "empty"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent copy of the controller state for rendering
type Snapshot struct {
	Query        string
	Filter       string // "" means no filter
	Results      []domain.ResultItem
	TotalMatches int
	Phase        Phase
	Degraded     bool // service initialization failed, link-only mode
}

// Loading reports whether a dispatch is in flight
func (s Snapshot) Loading() bool {
	return s.Phase == PhaseLoading
}
