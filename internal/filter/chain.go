// Package filter holds the record predicates applied to a page's detail rows
// and to entry listings.
package filter

import (
	"github.com/sceriffo01/sp-dev-modernization/internal/domain"
)

// Filter determines if a record should be included
type Filter interface {
	// Match returns true if the record passes the filter
	Match(record *domain.Record) bool
}

// Chain combines multiple filters (all must pass)
type Chain struct {
	filters []Filter
}

// NewChain creates a filter chain from multiple filters
func NewChain(filters ...Filter) *Chain {
	return &Chain{filters: filters}
}

// Match returns true only if all filters pass
func (c *Chain) Match(record *domain.Record) bool {
	for _, f := range c.filters {
		if !f.Match(record) {
			return false
		}
	}
	return true
}

// Add appends a filter to the chain
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// NewDetailFilter builds the filter for a page's detail table: Information
// and Warning rows always, Debug rows only when includeDebug is set, and
// nothing matching exclude.
func NewDetailFilter(includeDebug bool, exclude *ExcludePatternFilter) *Chain {
	levels := []domain.LogLevel{domain.LogLevelInformation, domain.LogLevelWarning}
	if includeDebug {
		levels = append(levels, domain.LogLevelDebug)
	}
	chain := NewChain(NewLevelSetFilter(levels...))
	if exclude != nil {
		chain.Add(exclude)
	}
	return chain
}
