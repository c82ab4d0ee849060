// Package report turns an aggregated report into text.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/sceriffo01/sp-dev-modernization/internal/analysis"
	"github.com/sceriffo01/sp-dev-modernization/internal/domain"
	"github.com/sceriffo01/sp-dev-modernization/internal/filter"
)

// TimeFormat is how entry and report times are printed
const TimeFormat = "2006-01-02 15:04:05"

const (
	titleReport    = "Modernization transformation report"
	titleSummary   = "Transformation summary"
	titleWarnings  = "Transformation warnings"
	titleErrors    = "Transformation errors"
	titleCritical  = "Critical errors"
	titleDetails   = "Transformation details"
	titleSettings  = "Transformation settings"
	titleLog       = "Transformation log"
	titleRecurring = "Recurring issues"
)

// markerCaptions labels each summary marker in the per-page overview
var markerCaptions = map[domain.Significance]string{
	domain.SignificanceSourceSiteURL:    "Source site",
	domain.SignificanceSourcePage:       "Source page",
	domain.SignificanceTargetSiteURL:    "Target site",
	domain.SignificanceTargetPage:       "Target page",
	domain.SignificanceAssetTransferred: "Asset transferred",
}

// Options controls which optional sections are rendered
type Options struct {
	// Verbose adds the per-page overview, settings and detail sections
	Verbose bool
	// IncludeDebug keeps Debug rows in the detail tables
	IncludeDebug bool
	// Exclude hides matching detail rows
	Exclude *filter.ExcludePatternFilter
}

// Renderer writes reports with a fixed token set and options
type Renderer struct {
	tokens  Tokens
	opts    Options
	details filter.Filter
}

// NewRenderer creates a renderer
func NewRenderer(tokens Tokens, opts Options) *Renderer {
	return &Renderer{
		tokens:  tokens,
		opts:    opts,
		details: filter.NewDetailFilter(opts.IncludeDebug, opts.Exclude),
	}
}

// Tokens returns the token set the renderer writes with
func (r *Renderer) Tokens() Tokens {
	return r.tokens
}

// Render returns the report text. An empty report renders as "".
func (r *Renderer) Render(rep *domain.Report) (string, error) {
	if rep.Empty() {
		return "", nil
	}

	var b strings.Builder
	r.heading(&b, r.tokens.Heading1, titleReport)

	steps := []func(*strings.Builder, *domain.Report) error{
		r.writeSummary,
		r.writeWarnings,
		r.writeErrors,
		r.writeCriticals,
	}
	if r.opts.Verbose {
		steps = append(steps, r.writePages, r.writeRecurring)
	}
	for _, step := range steps {
		if err := step(&b, rep); err != nil {
			return "", err
		}
	}

	return b.String(), nil
}

func (r *Renderer) heading(b *strings.Builder, format, title string) {
	fmt.Fprintf(b, format+"\n\n", title)
}

func (r *Renderer) table(b *strings.Builder, header []string, rows [][]string) error {
	table := r.tokens.newTable(b)
	table.Header(header)
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = r.tokens.Cell(c)
		}
		if err := table.Append(cells); err != nil {
			return fmt.Errorf("append table row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	b.WriteString("\n")
	return nil
}

func (r *Renderer) writeSummary(b *strings.Builder, rep *domain.Report) error {
	r.heading(b, r.tokens.Heading2, titleSummary)

	rows := make([][]string, 0, len(rep.Pages))
	for _, p := range rep.Pages {
		rows = append(rows, []string{
			formatTime(p.Row.StartTime),
			p.Row.Duration,
			r.tokens.Link(p.Row.SourcePage),
			r.tokens.Link(p.Row.TargetPage),
			p.Row.Status.String(),
		})
	}
	return r.table(b, []string{"Date", "Duration", "Source page", "Target page", "Status"}, rows)
}

func (r *Renderer) writeWarnings(b *strings.Builder, rep *domain.Report) error {
	if len(rep.Warnings) == 0 {
		return nil
	}
	r.heading(b, r.tokens.Heading2, titleWarnings)

	rows := make([][]string, 0, len(rep.Warnings))
	for _, w := range rep.Warnings {
		rows = append(rows, []string{
			formatTime(w.Record.Entry.EntryTime),
			r.tokens.Link(w.SourcePage),
			w.Record.Entry.Heading,
			w.Record.Entry.Message,
		})
	}
	return r.table(b, []string{"Date", "Source page", "Operation", "Message"}, rows)
}

func (r *Renderer) writeErrors(b *strings.Builder, rep *domain.Report) error {
	if len(rep.Errors) == 0 {
		return nil
	}
	r.heading(b, r.tokens.Heading2, titleErrors)

	rows := make([][]string, 0, len(rep.Errors))
	for _, e := range rep.Errors {
		rows = append(rows, []string{
			formatTime(e.Record.Entry.EntryTime),
			r.tokens.Link(e.SourcePage),
			e.Record.Entry.Heading,
			e.Record.Entry.Message,
			exceptionText(e.Record.Entry.Exception),
		})
	}
	return r.table(b, []string{"Date", "Source page", "Operation", "Message", "Exception"}, rows)
}

// writeCriticals renders one block per critical entry with full exception detail
func (r *Renderer) writeCriticals(b *strings.Builder, rep *domain.Report) error {
	if len(rep.Criticals) == 0 {
		return nil
	}
	r.heading(b, r.tokens.Heading2, titleCritical)

	for _, c := range rep.Criticals {
		r.heading(b, r.tokens.Heading3, pageTitle(c.PageID, c.SourcePage))

		entry := c.Record.Entry
		fmt.Fprintf(b, "%s%s %s\n", r.tokens.Bullet, r.tokens.Strong("Date:"), formatTime(entry.EntryTime))
		fmt.Fprintf(b, "%s%s %s\n", r.tokens.Bullet, r.tokens.Strong("Source page:"), r.tokens.Link(c.SourcePage))
		fmt.Fprintf(b, "%s%s %s\n\n", r.tokens.Bullet, r.tokens.Strong("Message:"), entry.Message)

		if entry.Exception != nil {
			fmt.Fprintf(b, "%s\n%s\n", r.tokens.CodeFence, entry.Exception.Message)
			if entry.Exception.StackTrace != "" {
				fmt.Fprintf(b, "%s\n", entry.Exception.StackTrace)
			}
			fmt.Fprintf(b, "%s\n\n", r.tokens.CodeFence)
		}
	}
	return nil
}

func (r *Renderer) writePages(b *strings.Builder, rep *domain.Report) error {
	for i := range rep.Pages {
		if err := r.writePage(b, rep, &rep.Pages[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) writePage(b *strings.Builder, rep *domain.Report, page *domain.PageReport) error {
	a := &page.Analysis
	r.heading(b, r.tokens.Heading2, titleDetails+": "+pageTitle(a.PageID, page.Row.SourcePage))

	fmt.Fprintf(b, "%s%s %s\n", r.tokens.Bullet, r.tokens.Strong("Report date:"), formatTime(rep.GeneratedAt))
	fmt.Fprintf(b, "%s%s %s\n", r.tokens.Bullet, r.tokens.Strong("Duration:"), page.Row.Duration)
	for _, s := range a.Summaries {
		caption, ok := markerCaptions[s.Entry.Significance]
		if !ok {
			continue
		}
		fmt.Fprintf(b, "%s%s %s\n", r.tokens.Bullet, r.tokens.Strong(caption+":"), markerValue(r.tokens, a.BaseTenantURL, s.Entry))
	}
	b.WriteString("\n")

	if len(a.Settings) > 0 {
		r.heading(b, r.tokens.Heading3, titleSettings)
		rows := make([][]string, 0, len(a.Settings))
		for _, s := range a.Settings {
			value := s.Value
			if value == "" {
				value = r.tokens.Unset
			}
			rows = append(rows, []string{s.Key, value})
		}
		if err := r.table(b, []string{"Setting", "Value"}, rows); err != nil {
			return err
		}
	}

	var rows [][]string
	for i := range a.Details {
		rec := &a.Details[i]
		if !r.details.Match(rec) {
			continue
		}
		rows = append(rows, []string{
			emphasize(r.tokens, rec.Level, formatTime(rec.Entry.EntryTime)),
			emphasize(r.tokens, rec.Level, rec.Entry.Heading),
			emphasize(r.tokens, rec.Level, rec.Entry.Message),
		})
	}
	if len(rows) == 0 {
		return nil
	}
	r.heading(b, r.tokens.Heading3, titleLog)
	return r.table(b, []string{"Date", "Operation", "Message"}, rows)
}

func (r *Renderer) writeRecurring(b *strings.Builder, rep *domain.Report) error {
	if len(rep.Recurring) == 0 {
		return nil
	}
	r.heading(b, r.tokens.Heading2, titleRecurring)

	rows := make([][]string, 0, len(rep.Recurring))
	for _, p := range rep.Recurring {
		example := ""
		if len(p.Samples) > 0 {
			example = p.Samples[0]
		}
		rows = append(rows, []string{fmt.Sprintf("%d", p.Count), p.Pattern, example})
	}
	return r.table(b, []string{"Count", "Pattern", "Example"}, rows)
}

// markerValue renders page markers as links and everything else as text
func markerValue(t Tokens, baseTenantURL string, entry domain.LogEntry) string {
	switch entry.Significance {
	case domain.SignificanceSourcePage, domain.SignificanceTargetPage:
		return t.Link(analysis.PageLink(baseTenantURL, &entry))
	default:
		return entry.Message
	}
}

func pageTitle(pageID string, source domain.Link) string {
	if source.Text != "" {
		return source.Text
	}
	return pageID
}

func exceptionText(ex *domain.ExceptionInfo) string {
	if ex == nil {
		return ""
	}
	if ex.StackTrace == "" {
		return ex.Message
	}
	return ex.Message + "\n" + ex.StackTrace
}

func formatTime(t time.Time) string {
	return t.Format(TimeFormat)
}
