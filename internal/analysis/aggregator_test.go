package analysis

import (
	"testing"
	"time"

	"github.com/sceriffo01/sp-dev-modernization/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverPages(t *testing.T) {
	t.Run("follows marker insertion order", func(t *testing.T) {
		records := []domain.Record{
			detail(domain.LogLevelInformation, "P3", at(0), "no marker yet"),
			summary("P2", at(9), domain.SignificanceSourceSiteURL, "https://b.example.com"),
			summary("P1", at(1), domain.SignificanceSourceSiteURL, "https://a.example.com"),
			summary("P3", at(5), domain.SignificanceSourceSiteURL, "https://c.example.com"),
		}

		assert.Equal(t, []string{"P2", "P1", "P3"}, DiscoverPages(records))
	})

	t.Run("repeated markers discover a page once", func(t *testing.T) {
		records := []domain.Record{
			summary("P1", at(0), domain.SignificanceSourceSiteURL, "https://a.example.com"),
			summary("P1", at(1), domain.SignificanceSourceSiteURL, "https://a.example.com"),
		}

		assert.Equal(t, []string{"P1"}, DiscoverPages(records))
	})

	t.Run("ignores pages without a site url marker", func(t *testing.T) {
		records := []domain.Record{
			summary("P1", at(0), domain.SignificanceSourcePage, "/page.aspx"),
			rec(domain.LogLevelInformation, "P2", at(0),
				domain.NewLogEntry("Transform", "https://a.example.com").WithSignificance(domain.SignificanceSourceSiteURL)),
		}

		assert.Empty(t, DiscoverPages(records))
	})
}

func TestAggregate(t *testing.T) {
	generated := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

	t.Run("empty snapshot yields empty report", func(t *testing.T) {
		report := Aggregate(nil, generated)

		require.NotNil(t, report)
		assert.True(t, report.Empty())
		assert.Equal(t, generated, report.GeneratedAt)
		assert.Empty(t, report.Warnings)
		assert.Empty(t, report.Errors)
		assert.Empty(t, report.Criticals)
	})

	t.Run("single page row", func(t *testing.T) {
		report := Aggregate(p1Records(), generated)

		require.Len(t, report.Pages, 1)
		row := report.Pages[0].Row
		assert.Equal(t, "P1", row.PageID)
		assert.Equal(t, at(0), row.StartTime)
		assert.Equal(t, "00:00:10", row.Duration)
		assert.Equal(t, domain.Link{
			Text: "/sites/x/page1.aspx",
			URL:  "https://a.example.com/sites/x/page1.aspx",
		}, row.SourcePage)
		assert.Equal(t, "https://a.example.com/sites/x/SitePages/page1.aspx", row.TargetPage.URL)
		assert.Equal(t, "Succeeded with 1 warnings / 0 errors", row.Status.String())

		require.Len(t, report.Warnings, 1)
		assert.Equal(t, "slow asset", report.Warnings[0].Record.Entry.Message)
		assert.Equal(t, "P1", report.Warnings[0].PageID)
		assert.Equal(t, row.SourcePage, report.Warnings[0].SourcePage)
	})

	t.Run("interleaved pages stay independent", func(t *testing.T) {
		records := []domain.Record{
			summary("P1", at(0), domain.SignificanceSourceSiteURL, "https://a.example.com/sites/x"),
			summary("P2", at(1), domain.SignificanceSourceSiteURL, "https://b.example.com/sites/y"),
			detail(domain.LogLevelWarning, "P2", at(2), "p2 warning"),
			detail(domain.LogLevelInformation, "P1", at(3), "p1 info"),
			detail(domain.LogLevelError, "P1", at(4), "p1 error"),
			detail(domain.LogLevelInformation, "P2", at(21), "p2 done"),
			detail(domain.LogLevelInformation, "P1", at(7), "p1 done"),
		}

		report := Aggregate(records, generated)
		require.Len(t, report.Pages, 2)

		p1 := report.Pages[0]
		assert.Equal(t, "P1", p1.Row.PageID)
		assert.Len(t, p1.Analysis.Timeline, 4)
		assert.Equal(t, "00:00:07", p1.Row.Duration)
		assert.Equal(t, "https://a.example.com", p1.Analysis.BaseTenantURL)
		assert.Equal(t, "Succeeded with 0 warnings / 1 errors", p1.Row.Status.String())

		p2 := report.Pages[1]
		assert.Equal(t, "P2", p2.Row.PageID)
		assert.Len(t, p2.Analysis.Timeline, 3)
		assert.Equal(t, "00:00:20", p2.Row.Duration)
		assert.Equal(t, "https://b.example.com", p2.Analysis.BaseTenantURL)
		assert.Equal(t, "Succeeded with 1 warnings / 0 errors", p2.Row.Status.String())

		for _, r := range p1.Analysis.Timeline {
			assert.Equal(t, "P1", r.Entry.PageID)
		}
		for _, r := range p2.Analysis.Timeline {
			assert.Equal(t, "P2", r.Entry.PageID)
		}
	})

	t.Run("critical failure does not block other pages", func(t *testing.T) {
		records := []domain.Record{
			summary("P1", at(0), domain.SignificanceSourceSiteURL, "https://a.example.com"),
			detail(domain.LogLevelWarning, "P1", at(1), "warn"),
			detail(domain.LogLevelError, "P1", at(2), "non critical"),
			rec(domain.LogLevelError, "P1", at(3),
				domain.NewLogEntry(domain.HeadingSummary, "Page transformation failed").
					Critical().WithException("Object reference not set", "at Transform()")),
			summary("P2", at(4), domain.SignificanceSourceSiteURL, "https://a.example.com"),
		}

		report := Aggregate(records, generated)
		require.Len(t, report.Pages, 2)
		assert.Equal(t, "Failed", report.Pages[0].Row.Status.String())
		assert.Equal(t, "Succeeded", report.Pages[1].Row.Status.String())

		require.Len(t, report.Errors, 1)
		assert.Equal(t, "non critical", report.Errors[0].Record.Entry.Message)
		require.Len(t, report.Criticals, 1)
		assert.Equal(t, "Object reference not set", report.Criticals[0].Record.Entry.Exception.Message)
		assert.Len(t, report.Warnings, 1)
	})

	t.Run("missing page markers degrade to empty links", func(t *testing.T) {
		records := []domain.Record{
			summary("P1", at(0), domain.SignificanceSourceSiteURL, "https://a.example.com"),
		}

		report := Aggregate(records, generated)
		require.Len(t, report.Pages, 1)
		assert.Equal(t, domain.Link{}, report.Pages[0].Row.SourcePage)
		assert.Equal(t, domain.Link{}, report.Pages[0].Row.TargetPage)
	})

	t.Run("collects recurring issues", func(t *testing.T) {
		records := []domain.Record{
			summary("P1", at(0), domain.SignificanceSourceSiteURL, "https://a.example.com"),
			detail(domain.LogLevelWarning, "P1", at(1), "Image 12 could not be found"),
			summary("P2", at(2), domain.SignificanceSourceSiteURL, "https://a.example.com"),
			detail(domain.LogLevelError, "P2", at(3), "Image 34 could not be found"),
		}

		report := Aggregate(records, generated)
		require.Len(t, report.Recurring, 1)
		assert.Equal(t, "Image <n> could not be found", report.Recurring[0].Pattern)
		assert.Equal(t, 2, report.Recurring[0].Count)
	})
}

func TestClassify(t *testing.T) {
	one := []domain.Record{{}}
	tests := []struct {
		name     string
		analysis domain.PageAnalysis
		want     string
		kind     domain.StatusKind
	}{
		{"nothing", domain.PageAnalysis{}, "Succeeded", domain.StatusSucceeded},
		{"one warning", domain.PageAnalysis{Warnings: one}, "Succeeded with 1 warnings / 0 errors", domain.StatusSucceededWithIssues},
		{"one error", domain.PageAnalysis{Errors: one}, "Succeeded with 0 warnings / 1 errors", domain.StatusSucceededWithIssues},
		{"critical wins", domain.PageAnalysis{Criticals: one, Warnings: one, Errors: one}, "Failed", domain.StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := Classify(&tt.analysis)
			assert.Equal(t, tt.want, status.String())
			assert.Equal(t, tt.kind, status.Kind)
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{10 * time.Second, "00:00:10"},
		{90*time.Minute + 5*time.Second, "01:30:05"},
		{1500 * time.Millisecond, "00:00:01"},
		{26 * time.Hour, "26:00:00"},
		{-time.Second, "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.in))
		})
	}
}

func TestPageLink(t *testing.T) {
	marker := func(msg string) *domain.LogEntry {
		e := domain.NewSummaryEntry(domain.SignificanceSourcePage, msg)
		return &e
	}

	assert.Equal(t, domain.Link{}, PageLink("https://a.example.com", nil))
	assert.Equal(t, domain.Link{}, PageLink("https://a.example.com", marker("")))
	assert.Equal(t,
		domain.Link{Text: "/sites/x/p.aspx", URL: "https://a.example.com/sites/x/p.aspx"},
		PageLink("https://a.example.com", marker("/sites/x/p.aspx")))
	assert.Equal(t,
		domain.Link{Text: "https://b.example.com/p.aspx", URL: "https://b.example.com/p.aspx"},
		PageLink("https://a.example.com", marker("https://b.example.com/p.aspx")))
	assert.Equal(t,
		domain.Link{Text: "/p.aspx", URL: "/p.aspx"},
		PageLink("", marker("/p.aspx")))
}
