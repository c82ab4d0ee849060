package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/sceriffo01/sp-dev-modernization/internal/config"
	"github.com/sceriffo01/sp-dev-modernization/internal/filter"
	"github.com/sceriffo01/sp-dev-modernization/internal/logstore"
	"github.com/sceriffo01/sp-dev-modernization/internal/observer"
	"github.com/sceriffo01/sp-dev-modernization/internal/output"
	"github.com/sceriffo01/sp-dev-modernization/internal/report"
	"go.uber.org/zap"
)

// newClock is swapped in tests for a mock
var newClock = func() clock.Clock { return clock.New() }

// ReportCmd builds a transformation report from recorded entry files
type ReportCmd struct {
	Files         []string `arg:"" required:"" type:"existingfile" help:"NDJSON entry files"`
	VerboseReport bool     `name:"verbose-report" help:"Add per-page overview, settings and detail sections"`
	IncludeDebug  bool     `help:"Keep Debug entries in ingestion and detail tables"`
	OutputDir     string   `short:"o" help:"Directory the report is written to (default: config or .)"`
	Discriminator string   `short:"d" help:"Suffix appended to the report file name"`
	Style         string   `help:"Report style: markdown or text (default: config or markdown)"`
	Exclude       string   `short:"x" help:"Regex hiding matching rows from the detail tables"`
	Stdout        bool     `help:"Write the report to stdout instead of a file"`
	Workers       int      `default:"4" help:"Pages ingested concurrently"`
}

// ReportOutput is the NDJSON completion record of the report command
type ReportOutput struct {
	Type          string `json:"type"` // Always "report"
	SchemaVersion int    `json:"schemaVersion"`
	RunID         string `json:"runId"`
	Directory     string `json:"directory,omitempty"`
	Path          string `json:"path,omitempty"`
	Pages         int    `json:"pages"`
	Bytes         int    `json:"bytes"`
	Written       bool   `json:"written"`
	output.ReadStats
}

// Run executes the report command
func (c *ReportCmd) Run(globals *Globals) error {
	maybeNoStyle(globals)
	applyReportDefaults(globals.Config, c)

	tokens, err := report.TokensFor(c.Style)
	if err != nil {
		return c.outputError(globals, "INVALID_STYLE", err.Error())
	}
	exclude, err := filter.NewExcludePatternFilter(c.Exclude)
	if err != nil {
		return c.outputError(globals, "INVALID_PATTERN", err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, stats, err := loadRecords(ctx, c.Files)
	if err != nil {
		return c.outputError(globals, "READ_ERROR", err.Error())
	}
	logger := globals.logger()
	logger.Debug("entries loaded",
		zap.Int("files", len(c.Files)),
		zap.Int("entries", stats.Entries),
		zap.Int("skipped", stats.Skipped))
	if stats.Invalid > 0 {
		logger.Warn("unreadable lines ignored", zap.Int("invalid", stats.Invalid))
	}

	renderer := report.NewRenderer(tokens, report.Options{
		Verbose:      c.VerboseReport,
		IncludeDebug: c.IncludeDebug,
		Exclude:      exclude,
	})

	files := output.NewFileWriter(c.OutputDir)
	var writer observer.ReportWriter = files
	if c.Stdout {
		writer = output.NewConsoleWriter(globals.Stdout)
	}

	store := logstore.New()
	if err := ingestPages(ctx, store, renderer, records, c.Workers, c.IncludeDebug); err != nil {
		return c.outputError(globals, "INGEST_FAILED", err.Error())
	}

	var result observer.FlushResult
	owner := observer.New(store, renderer, writer,
		observer.WithLogger(logger),
		observer.WithClock(newClock()),
		observer.WithIncludeDebug(c.IncludeDebug),
		observer.WithDiscriminator(c.Discriminator),
		observer.WithFlushHook(func(r observer.FlushResult) { result = r }),
	)
	owner.Flush()

	if result.Err != nil {
		return c.outputError(globals, "FLUSH_FAILED", result.Err.Error(), "check that the output directory is writable")
	}
	return c.writeResult(globals, result, stats, files.Dir())
}

func (c *ReportCmd) writeResult(globals *Globals, result observer.FlushResult, stats output.ReadStats, dir string) error {
	// the report itself already went to stdout
	if c.Stdout {
		globals.Debug("report streamed to stdout: %d pages, %d bytes", result.Pages, result.Bytes)
		return nil
	}

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(&ReportOutput{
			Type:          "report",
			SchemaVersion: output.SchemaVersion,
			RunID:         result.RunID,
			Directory:     dir,
			Path:          result.Path,
			Pages:         result.Pages,
			Bytes:         result.Bytes,
			Written:       result.Path != "",
			ReadStats:     stats,
		})
	}

	if result.Path == "" {
		_, err := fmt.Fprintf(globals.Stderr, "%s\n",
			output.Styles.Caution.Render("No pages found; no report written to "+dir))
		return err
	}
	_, err := fmt.Fprintf(globals.Stdout, "%s %s (%d pages)\n",
		output.Styles.Success.Render("Report written:"), result.Path, result.Pages)
	return err
}

func (c *ReportCmd) outputError(globals *Globals, code, message string, hint ...string) error {
	return outputErrorCommon(globals, code, message, hint...)
}

func applyReportDefaults(cfg *config.Config, c *ReportCmd) {
	if cfg != nil {
		if !c.VerboseReport && cfg.Report.IncludeVerbose {
			c.VerboseReport = true
		}
		if !c.IncludeDebug && cfg.Report.IncludeDebugEntries {
			c.IncludeDebug = true
		}
		if c.OutputDir == "" {
			c.OutputDir = cfg.Report.OutputDirectory
		}
		if c.Discriminator == "" {
			c.Discriminator = cfg.Report.NameDiscriminator
		}
		if c.Style == "" {
			c.Style = cfg.Report.Style
		}
		if c.Exclude == "" {
			c.Exclude = cfg.Report.ExcludePattern
		}
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Workers == 0 {
		c.Workers = 4
	}
}
