package analysis

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sceriffo01/sp-dev-modernization/internal/domain"
)

var (
	hexAddrRegex = regexp.MustCompile(`0x[0-9a-fA-F]+`)
	uuidRegex    = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	numberRegex  = regexp.MustCompile(`\d+`)
)

const (
	maxPatterns      = 5
	maxSamples       = 3
	maxPatternLength = 100
)

// normalizeMessage removes variable parts to group similar messages
func normalizeMessage(msg string) string {
	// UUIDs go first so their digits are not eaten by the number pass
	msg = uuidRegex.ReplaceAllString(msg, "<uuid>")
	msg = hexAddrRegex.ReplaceAllString(msg, "<addr>")
	msg = numberRegex.ReplaceAllString(msg, "<n>")

	if len(msg) > maxPatternLength {
		cut := maxPatternLength
		for cut > 0 && !utf8.RuneStart(msg[cut]) {
			cut--
		}
		msg = msg[:cut] + "..."
	}

	return strings.TrimSpace(msg)
}

// DetectPatterns finds issue messages that recur across the report.
// Only patterns seen at least twice are returned, most frequent first.
func DetectPatterns(issues []domain.Issue) []domain.IssuePattern {
	groups := make(map[string][]string)
	var order []string

	for _, issue := range issues {
		pattern := normalizeMessage(issue.Record.Entry.Message)
		if pattern == "" {
			continue
		}
		if _, ok := groups[pattern]; !ok {
			order = append(order, pattern)
		}
		groups[pattern] = append(groups[pattern], issue.Record.Entry.Message)
	}

	var patterns []domain.IssuePattern
	for _, pattern := range order {
		messages := groups[pattern]
		if len(messages) < 2 {
			continue
		}
		samples := messages
		if len(samples) > maxSamples {
			samples = samples[:maxSamples]
		}
		patterns = append(patterns, domain.IssuePattern{
			Pattern: pattern,
			Count:   len(messages),
			Samples: samples,
		})
	}

	// First-seen order breaks ties
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Count > patterns[j].Count
	})

	if len(patterns) > maxPatterns {
		patterns = patterns[:maxPatterns]
	}

	return patterns
}
