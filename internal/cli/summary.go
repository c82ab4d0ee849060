package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sceriffo01/sp-dev-modernization/internal/analysis"
	"github.com/sceriffo01/sp-dev-modernization/internal/domain"
	"github.com/sceriffo01/sp-dev-modernization/internal/filter"
	"github.com/sceriffo01/sp-dev-modernization/internal/output"
)

// SummaryCmd prints the per-page status table of recorded entry files
type SummaryCmd struct {
	Files    []string `arg:"" required:"" type:"existingfile" help:"NDJSON entry files"`
	Entries  bool     `help:"Print every entry before the summary"`
	MinLevel string   `name:"min-level" default:"debug" enum:"debug,info,warning,error" help:"Minimum level of printed entries (debug, info, warning, error)"`
	Exclude  string   `short:"x" help:"Regex hiding matching entries"`
}

// PageOutput is one NDJSON summary row
type PageOutput struct {
	Type          string            `json:"type"` // Always "page"
	SchemaVersion int               `json:"schemaVersion"`
	Row           domain.SummaryRow `json:"row"`
	Status        string            `json:"status"`
}

// SummaryOutput is the NDJSON totals line that follows the page rows
type SummaryOutput struct {
	Type          string                `json:"type"` // Always "summary"
	SchemaVersion int                   `json:"schemaVersion"`
	Pages         int                   `json:"pages"`
	Warnings      int                   `json:"warnings"`
	Errors        int                   `json:"errors"`
	Criticals     int                   `json:"criticals"`
	Recurring     []domain.IssuePattern `json:"recurring,omitempty"`
}

// Run executes the summary command
func (c *SummaryCmd) Run(globals *Globals) error {
	maybeNoStyle(globals)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exclude, err := filter.NewExcludePatternFilter(c.Exclude)
	if err != nil {
		return c.outputError(globals, "INVALID_PATTERN", err.Error())
	}

	records, _, err := loadRecords(ctx, c.Files)
	if err != nil {
		return c.outputError(globals, "READ_ERROR", err.Error())
	}

	if c.Entries {
		if err := c.writeEntries(globals, records, exclude); err != nil {
			return err
		}
	}

	rep := analysis.Aggregate(records, newClock().Now())

	if globals.Format == "ndjson" {
		writer := output.NewNDJSONWriter(globals.Stdout)
		for _, p := range rep.Pages {
			if err := writer.WriteRaw(&PageOutput{
				Type:          "page",
				SchemaVersion: output.SchemaVersion,
				Row:           p.Row,
				Status:        p.Row.Status.String(),
			}); err != nil {
				return err
			}
		}
		return writer.WriteRaw(&SummaryOutput{
			Type:          "summary",
			SchemaVersion: output.SchemaVersion,
			Pages:         len(rep.Pages),
			Warnings:      len(rep.Warnings),
			Errors:        len(rep.Errors),
			Criticals:     len(rep.Criticals),
			Recurring:     rep.Recurring,
		})
	}

	return output.NewTextWriter(globals.Stdout).WriteSummary(rep)
}

// writeEntries prints the records passing the level and exclude filters
func (c *SummaryCmd) writeEntries(globals *Globals, records []domain.Record, exclude *filter.ExcludePatternFilter) error {
	minLevel := domain.LogLevelDebug
	if c.MinLevel != "" {
		minLevel = domain.ParseLogLevel(c.MinLevel)
	}
	chain := filter.NewChain(filter.NewLevelFilter(minLevel))
	if exclude != nil {
		chain.Add(exclude)
	}

	ndjson := output.NewNDJSONWriter(globals.Stdout)
	text := output.NewTextWriter(globals.Stdout)
	for i := range records {
		rec := &records[i]
		if !chain.Match(rec) {
			continue
		}
		var err error
		if globals.Format == "ndjson" {
			err = ndjson.Write(rec)
		} else {
			err = text.Write(rec)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *SummaryCmd) outputError(globals *Globals, code, message string) error {
	return outputErrorCommon(globals, code, message)
}
