package domain

import (
	"fmt"
	"time"
)

// StatusKind classifies how a page transformation ended
type StatusKind string

const (
	StatusSucceeded           StatusKind = "succeeded"
	StatusSucceededWithIssues StatusKind = "succeeded_with_issues"
	StatusFailed              StatusKind = "failed"
)

// PageStatus is the outcome of a page derived from its log records
type PageStatus struct {
	Kind     StatusKind `json:"kind"`
	Warnings int        `json:"warnings"`
	Errors   int        `json:"errors"`
}

// String returns the status caption shown in the summary table
func (s PageStatus) String() string {
	switch s.Kind {
	case StatusFailed:
		return "Failed"
	case StatusSucceededWithIssues:
		return fmt.Sprintf("Succeeded with %d warnings / %d errors", s.Warnings, s.Errors)
	default:
		return "Succeeded"
	}
}

// Link is a page reference rendered as a hyperlink
type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// SummaryRow is one line of the report's summary table
type SummaryRow struct {
	PageID     string     `json:"pageId"`
	StartTime  time.Time  `json:"startTime"`
	Duration   string     `json:"duration"`
	SourcePage Link       `json:"sourcePage"`
	TargetPage Link       `json:"targetPage"`
	Status     PageStatus `json:"status"`
}

// PageReport pairs a page analysis with its summary row
type PageReport struct {
	Analysis PageAnalysis `json:"analysis"`
	Row      SummaryRow   `json:"row"`
}

// Issue is a warning, error or critical record attributed to its page
type Issue struct {
	PageID     string `json:"pageId"`
	SourcePage Link   `json:"sourcePage"`
	Record     Record `json:"record"`
}

// IssuePattern groups issues whose normalized messages are identical
type IssuePattern struct {
	Pattern string   `json:"pattern"`
	Count   int      `json:"count"`
	Samples []string `json:"samples"`
}

// Report is the aggregated, render-ready view of one flush cycle
type Report struct {
	GeneratedAt time.Time      `json:"generatedAt"`
	Pages       []PageReport   `json:"pages"`
	Warnings    []Issue        `json:"warnings,omitempty"`
	Errors      []Issue        `json:"errors,omitempty"`
	Criticals   []Issue        `json:"criticals,omitempty"`
	Recurring   []IssuePattern `json:"recurring,omitempty"`
}

// Empty reports whether no page was discovered
func (r *Report) Empty() bool {
	return r == nil || len(r.Pages) == 0
}

// ErrorOutput represents a structured error for NDJSON output
type ErrorOutput struct {
	Type          string `json:"type"`          // Always "error"
	SchemaVersion int    `json:"schemaVersion"` // Schema version for compatibility
	Code          string `json:"code"`          // Machine-readable error code
	Message       string `json:"message"`       // Human-readable message
	Hint          string `json:"hint,omitempty"`
}

// NewErrorOutput creates a new error output
// Note: SchemaVersion should be set by the caller (output package)
func NewErrorOutput(code, message string) *ErrorOutput {
	return &ErrorOutput{
		Type:    "error",
		Code:    code,
		Message: message,
	}
}
