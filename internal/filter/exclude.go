package filter

import (
	"regexp"

	"github.com/sceriffo01/sp-dev-modernization/internal/domain"
)

// ExcludePatternFilter excludes records whose message matches a regex pattern
type ExcludePatternFilter struct {
	pattern *regexp.Regexp
}

// NewExcludePatternFilter creates an exclusion filter from a pattern string.
// An empty pattern yields a nil filter.
func NewExcludePatternFilter(pattern string) (*ExcludePatternFilter, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &ExcludePatternFilter{pattern: re}, nil
}

// Match returns true if the record does NOT match the exclusion pattern
func (f *ExcludePatternFilter) Match(record *domain.Record) bool {
	if f == nil || f.pattern == nil {
		return true
	}
	return !f.pattern.MatchString(record.Entry.Message)
}
