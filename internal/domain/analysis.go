package domain

import "time"

// Setting is a key/value pair parsed from a Settings entry
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// PageAnalysis is the per-page projection of the log store.
// It is recomputed on demand and never mutated after construction.
type PageAnalysis struct {
	PageID string `json:"pageId"`

	// Timeline is every record for the page ordered by entry time
	Timeline []Record `json:"timeline"`

	Summaries []Record `json:"summaries"`
	Assets    []Record `json:"assets"`
	Details   []Record `json:"details"`
	Errors    []Record `json:"errors"`
	Warnings  []Record `json:"warnings"`
	Criticals []Record `json:"criticals"`

	// Markers, nil when the page never logged them
	SourcePage    *LogEntry `json:"sourcePage,omitempty"`
	TargetPage    *LogEntry `json:"targetPage,omitempty"`
	SourceSiteURL *LogEntry `json:"sourceSiteUrl,omitempty"`
	TargetSiteURL *LogEntry `json:"targetSiteUrl,omitempty"`

	BaseTenantURL string        `json:"baseTenantUrl"`
	StartTime     time.Time     `json:"startTime"`
	Duration      time.Duration `json:"duration"`
	Settings      []Setting     `json:"settings"`
}

// Empty reports whether the page produced no records at all
func (a *PageAnalysis) Empty() bool {
	return len(a.Timeline) == 0
}

// MarkerMessage returns the message of a marker or "" when it is unset
func MarkerMessage(marker *LogEntry) string {
	if marker == nil {
		return ""
	}
	return marker.Message
}
