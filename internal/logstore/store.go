// Package logstore holds the leveled records collected during one report cycle.
package logstore

import (
	"sync"

	"github.com/sceriffo01/sp-dev-modernization/internal/domain"
)

// Store is a thread-safe, append-only sequence of records.
// Insertion order is preserved until Clear empties it.
type Store struct {
	mu      sync.RWMutex
	records []domain.Record
}

// New creates an empty store
func New() *Store {
	return &Store{}
}

// Append adds a record at the end of the store
func (s *Store) Append(level domain.LogLevel, entry domain.LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, domain.Record{Level: level, Entry: entry})
}

// Snapshot returns a copy of all records in insertion order
func (s *Store) Snapshot() []domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Record, len(s.records))
	copy(result, s.records)
	return result
}

// Count returns the number of records in the store
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Clear empties the store
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
}

// CountByLevel returns counts grouped by log level
func (s *Store) CountByLevel() map[domain.LogLevel]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[domain.LogLevel]int)
	for _, r := range s.records {
		counts[r.Level]++
	}
	return counts
}
