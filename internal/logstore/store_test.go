package logstore

import (
	"fmt"
	"sync"
	"testing"

	"github.com/sceriffo01/sp-dev-modernization/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s := New()
	require.NotNil(t, s)
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.Snapshot())
}

func TestStoreAppend(t *testing.T) {
	t.Run("adds records", func(t *testing.T) {
		s := New()

		s.Append(domain.LogLevelInformation, domain.LogEntry{Message: "first"})
		assert.Equal(t, 1, s.Count())

		s.Append(domain.LogLevelWarning, domain.LogEntry{Message: "second"})
		assert.Equal(t, 2, s.Count())
	})

	t.Run("accepts entries without a timestamp", func(t *testing.T) {
		s := New()
		s.Append(domain.LogLevelError, domain.LogEntry{})

		records := s.Snapshot()
		require.Len(t, records, 1)
		assert.True(t, records[0].Entry.EntryTime.IsZero())
		assert.Equal(t, domain.LogLevelError, records[0].Level)
	})
}

func TestStoreSnapshot(t *testing.T) {
	t.Run("returns records in insertion order", func(t *testing.T) {
		s := New()
		s.Append(domain.LogLevelInformation, domain.LogEntry{Message: "first"})
		s.Append(domain.LogLevelDebug, domain.LogEntry{Message: "second"})
		s.Append(domain.LogLevelError, domain.LogEntry{Message: "third"})

		records := s.Snapshot()
		require.Len(t, records, 3)
		assert.Equal(t, "first", records[0].Entry.Message)
		assert.Equal(t, "second", records[1].Entry.Message)
		assert.Equal(t, "third", records[2].Entry.Message)
		assert.Equal(t, domain.LogLevelDebug, records[1].Level)
	})

	t.Run("is not affected by later appends", func(t *testing.T) {
		s := New()
		s.Append(domain.LogLevelInformation, domain.LogEntry{Message: "a"})

		records := s.Snapshot()
		s.Append(domain.LogLevelInformation, domain.LogEntry{Message: "b"})

		assert.Len(t, records, 1)
		assert.Equal(t, 2, s.Count())
	})

	t.Run("mutating the copy does not touch the store", func(t *testing.T) {
		s := New()
		s.Append(domain.LogLevelInformation, domain.LogEntry{Message: "original"})

		records := s.Snapshot()
		records[0].Entry.Message = "changed"

		assert.Equal(t, "original", s.Snapshot()[0].Entry.Message)
	})
}

func TestStoreClear(t *testing.T) {
	s := New()
	s.Append(domain.LogLevelInformation, domain.LogEntry{Message: "test"})
	s.Append(domain.LogLevelInformation, domain.LogEntry{Message: "test"})

	assert.Equal(t, 2, s.Count())

	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.Snapshot())

	s.Append(domain.LogLevelInformation, domain.LogEntry{Message: "after"})
	assert.Equal(t, 1, s.Count())
}

func TestStoreCountByLevel(t *testing.T) {
	s := New()
	s.Append(domain.LogLevelDebug, domain.LogEntry{})
	s.Append(domain.LogLevelDebug, domain.LogEntry{})
	s.Append(domain.LogLevelInformation, domain.LogEntry{})
	s.Append(domain.LogLevelError, domain.LogEntry{})
	s.Append(domain.LogLevelError, domain.LogEntry{})
	s.Append(domain.LogLevelError, domain.LogEntry{})

	counts := s.CountByLevel()
	assert.Equal(t, 2, counts[domain.LogLevelDebug])
	assert.Equal(t, 1, counts[domain.LogLevelInformation])
	assert.Equal(t, 3, counts[domain.LogLevelError])
	assert.Equal(t, 0, counts[domain.LogLevelWarning])
}

func TestStoreConcurrency(t *testing.T) {
	s := New()
	var wg sync.WaitGroup

	// Writers
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Append(domain.LogLevelInformation, domain.LogEntry{
					PageID:  fmt.Sprintf("page-%d", id),
					Message: fmt.Sprintf("%d", j),
				})
			}
		}(i)
	}

	// Readers
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				records := s.Snapshot()
				assert.LessOrEqual(t, len(records), 1000)
				s.Count()
			}
		}()
	}

	wg.Wait()

	// Every write lands exactly once and per-writer order is kept
	records := s.Snapshot()
	require.Len(t, records, 1000)
	next := map[string]int{}
	for _, r := range records {
		assert.Equal(t, fmt.Sprintf("%d", next[r.Entry.PageID]), r.Entry.Message)
		next[r.Entry.PageID]++
	}
	assert.Len(t, next, 10)
}

func BenchmarkStoreAppend(b *testing.B) {
	s := New()
	entry := domain.LogEntry{Message: "benchmark entry"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Append(domain.LogLevelInformation, entry)
	}
}

func BenchmarkStoreSnapshot(b *testing.B) {
	s := New()
	for i := 0; i < 1000; i++ {
		s.Append(domain.LogLevelInformation, domain.LogEntry{Message: "entry"})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Snapshot()
	}
}
