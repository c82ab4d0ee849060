package filter

import (
	"github.com/sceriffo01/sp-dev-modernization/internal/domain"
)

// LevelFilter filters records by minimum log level
type LevelFilter struct {
	minLevel domain.LogLevel
}

// NewLevelFilter creates a level filter
func NewLevelFilter(minLevel domain.LogLevel) *LevelFilter {
	return &LevelFilter{minLevel: minLevel}
}

// Match returns true if the record level is >= minimum level
func (f *LevelFilter) Match(record *domain.Record) bool {
	return record.Level.Priority() >= f.minLevel.Priority()
}

// LevelSetFilter passes records whose level is one of a fixed set
type LevelSetFilter struct {
	levels map[domain.LogLevel]bool
}

// NewLevelSetFilter creates a filter accepting exactly the given levels
func NewLevelSetFilter(levels ...domain.LogLevel) *LevelSetFilter {
	set := make(map[domain.LogLevel]bool, len(levels))
	for _, l := range levels {
		set[l] = true
	}
	return &LevelSetFilter{levels: set}
}

// Match returns true if the record level is in the set
func (f *LevelSetFilter) Match(record *domain.Record) bool {
	return f.levels[record.Level]
}
