package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Backend is the persistence boundary for the recent-query store. It may
// fail or be unavailable; callers treat every method as best-effort.
type Backend interface {
	Load() ([]string, error)
	Store(queries []string) error
	Clear() error
}

// record is the persisted shape of the history file
type record struct {
	Queries []string `toml:"queries"`
}

// FileBackend persists recent queries as a TOML file
type FileBackend struct {
	path string
}

// NewFileBackend creates a file-based backend at path
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Load reads the persisted queries. A missing file yields an empty list.
func (b *FileBackend) Load() ([]string, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var rec record
	if err := toml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing history file: %w", err)
	}
	return rec.Queries, nil
}

// Store writes the queries, creating directories as needed
func (b *FileBackend) Store(queries []string) error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	data, err := toml.Marshal(record{Queries: queries})
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}
	return os.WriteFile(b.path, data, 0644)
}

// Clear removes the persisted record
func (b *FileBackend) Clear() error {
	if err := os.Remove(b.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing history file: %w", err)
	}
	return nil
}

// MemoryBackend is an in-memory Backend used in tests and as a fallback
// when no durable storage is configured
type MemoryBackend struct {
	mu      sync.Mutex
	queries []string
	failing bool
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// SetFailing makes every subsequent call return an error
func (b *MemoryBackend) SetFailing(failing bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failing = failing
}

func (b *MemoryBackend) Load() ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failing {
		return nil, fmt.Errorf("memory backend unavailable")
	}
	return append([]string(nil), b.queries...), nil
}

func (b *MemoryBackend) Store(queries []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failing {
		return fmt.Errorf("memory backend unavailable")
	}
	b.queries = append([]string(nil), queries...)
	return nil
}

func (b *MemoryBackend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failing {
		return fmt.Errorf("memory backend unavailable")
	}
	b.queries = nil
	return nil
}
