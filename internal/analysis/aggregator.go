package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/sceriffo01/sp-dev-modernization/internal/domain"
)

// DiscoverPages returns the ids of the pages present in records, in the order
// their first Summary/SourceSiteUrl marker was logged.
func DiscoverPages(records []domain.Record) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range records {
		if !r.Entry.IsSummary() || r.Entry.Significance != domain.SignificanceSourceSiteURL {
			continue
		}
		if seen[r.Entry.PageID] {
			continue
		}
		seen[r.Entry.PageID] = true
		ids = append(ids, r.Entry.PageID)
	}
	return ids
}

// Aggregate analyzes every discovered page and assembles the summary table
// and issue rollup. A snapshot without discovery markers yields an empty report.
func Aggregate(records []domain.Record, generatedAt time.Time) *domain.Report {
	report := &domain.Report{GeneratedAt: generatedAt}

	for _, id := range DiscoverPages(records) {
		a := AnalyzePage(records, id)
		source := PageLink(a.BaseTenantURL, a.SourcePage)

		report.Pages = append(report.Pages, domain.PageReport{
			Analysis: a,
			Row: domain.SummaryRow{
				PageID:     id,
				StartTime:  a.StartTime,
				Duration:   FormatDuration(a.Duration),
				SourcePage: source,
				TargetPage: PageLink(a.BaseTenantURL, a.TargetPage),
				Status:     Classify(&a),
			},
		})

		for _, r := range a.Warnings {
			report.Warnings = append(report.Warnings, domain.Issue{PageID: id, SourcePage: source, Record: r})
		}
		for _, r := range a.Errors {
			if r.Entry.IsCriticalException {
				continue
			}
			report.Errors = append(report.Errors, domain.Issue{PageID: id, SourcePage: source, Record: r})
		}
		for _, r := range a.Criticals {
			report.Criticals = append(report.Criticals, domain.Issue{PageID: id, SourcePage: source, Record: r})
		}
	}

	issues := make([]domain.Issue, 0, len(report.Warnings)+len(report.Errors))
	issues = append(issues, report.Warnings...)
	issues = append(issues, report.Errors...)
	report.Recurring = DetectPatterns(issues)

	return report
}

// Classify derives the page status: any critical entry fails the page,
// otherwise warnings or errors downgrade it to succeeded-with-issues.
func Classify(a *domain.PageAnalysis) domain.PageStatus {
	status := domain.PageStatus{
		Kind:     domain.StatusSucceeded,
		Warnings: len(a.Warnings),
		Errors:   len(a.Errors),
	}
	switch {
	case len(a.Criticals) > 0:
		status.Kind = domain.StatusFailed
	case status.Warnings > 0 || status.Errors > 0:
		status.Kind = domain.StatusSucceededWithIssues
	}
	return status
}

// FormatDuration renders d as HH:MM:SS. Hours are not wrapped at 24.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// PageLink builds the hyperlink for a page marker. Server-relative paths are
// resolved against the base tenant URL; a missing marker yields an empty link.
func PageLink(baseTenantURL string, marker *domain.LogEntry) domain.Link {
	text := domain.MarkerMessage(marker)
	if text == "" {
		return domain.Link{}
	}
	if strings.HasPrefix(text, "/") {
		return domain.Link{Text: text, URL: baseTenantURL + text}
	}
	return domain.Link{Text: text, URL: text}
}
