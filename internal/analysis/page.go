// Package analysis derives per-page timelines and the cross-page report from
// a flat snapshot of log records.
package analysis

import (
	"net/url"
	"sort"
	"strings"

	"github.com/sceriffo01/sp-dev-modernization/internal/domain"
)

// AnalyzePage reconstructs the ordered timeline of one page and derives its
// markers, duration, settings and issue subsets. It never fails: anything
// that cannot be derived is left at its zero value.
func AnalyzePage(records []domain.Record, pageID string) domain.PageAnalysis {
	a := domain.PageAnalysis{PageID: pageID}

	for _, r := range records {
		if r.Entry.PageID == pageID {
			a.Timeline = append(a.Timeline, r)
		}
	}

	// Equal timestamps keep insertion order
	sort.SliceStable(a.Timeline, func(i, j int) bool {
		return a.Timeline[i].Entry.EntryTime.Before(a.Timeline[j].Entry.EntryTime)
	})

	for _, r := range a.Timeline {
		switch r.Level {
		case domain.LogLevelError:
			a.Errors = append(a.Errors, r)
		case domain.LogLevelWarning:
			a.Warnings = append(a.Warnings, r)
		}

		switch {
		case r.Entry.IsSummary():
			a.Summaries = append(a.Summaries, r)
			if r.Entry.Significance == domain.SignificanceAssetTransferred {
				a.Assets = append(a.Assets, r)
			}
			if r.Entry.IsCriticalException {
				a.Criticals = append(a.Criticals, r)
			}
			setMarker(&a, r.Entry)
		case r.Entry.IsSettings():
			if s, ok := parseSetting(r.Entry.Message); ok {
				a.Settings = append(a.Settings, s)
			}
		default:
			a.Details = append(a.Details, r)
		}
	}

	if n := len(a.Timeline); n > 0 {
		a.StartTime = a.Timeline[0].Entry.EntryTime
		a.Duration = a.Timeline[n-1].Entry.EntryTime.Sub(a.StartTime)
	}

	a.BaseTenantURL = BaseTenantURL(domain.MarkerMessage(a.SourceSiteURL))
	return a
}

// setMarker records the first summary entry seen for each marker significance
func setMarker(a *domain.PageAnalysis, entry domain.LogEntry) {
	var slot **domain.LogEntry
	switch entry.Significance {
	case domain.SignificanceSourcePage:
		slot = &a.SourcePage
	case domain.SignificanceTargetPage:
		slot = &a.TargetPage
	case domain.SignificanceSourceSiteURL:
		slot = &a.SourceSiteURL
	case domain.SignificanceTargetSiteURL:
		slot = &a.TargetSiteURL
	default:
		return
	}
	if *slot == nil {
		e := entry
		*slot = &e
	}
}

// parseSetting splits a Settings message into key and value. Messages that do
// not split into exactly two parts are dropped.
func parseSetting(message string) (domain.Setting, bool) {
	parts := strings.Split(message, domain.KeyValueSeparator)
	if len(parts) != 2 {
		return domain.Setting{}, false
	}
	return domain.Setting{Key: parts[0], Value: parts[1]}, true
}

// BaseTenantURL reduces an absolute site URL to scheme://host.
// Anything that does not parse as an absolute URL yields "".
func BaseTenantURL(siteURL string) string {
	if !strings.Contains(siteURL, "://") {
		return ""
	}
	u, err := url.Parse(strings.TrimSpace(siteURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
