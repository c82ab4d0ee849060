package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sceriffo01/sp-dev-modernization/internal/config"
	"github.com/sceriffo01/sp-dev-modernization/internal/logging"
	"github.com/sceriffo01/sp-dev-modernization/internal/output"
	"go.uber.org/zap"
)

// CLI is the root command structure for pagereport
type CLI struct {
	// Global flags
	Format  string `short:"f" default:"${config_format}" enum:"ndjson,text" help:"Console output format"`
	Verbose bool   `short:"v" help:"Show debug diagnostics on stderr"`

	// Commands
	Report  ReportCmd  `cmd:"" help:"Build a transformation report from NDJSON log files"`
	Summary SummaryCmd `cmd:"" help:"Print the per-page status table without writing a report"`
	Config  ConfigCmd  `cmd:"" help:"Show or manage configuration"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// Globals holds shared state for all commands
type Globals struct {
	Format  string
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config
	Logger  *zap.Logger
}

// NewGlobalsWithConfig creates a new Globals instance with config fallbacks
func NewGlobalsWithConfig(cli *CLI, cfg *config.Config) *Globals {
	if cfg == nil {
		cfg = config.Default()
	}
	g := &Globals{
		Format:  cli.Format,
		Verbose: cli.Verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
	}

	// If verbose wasn't set via CLI, use config value
	if !cli.Verbose && cfg.Verbose {
		g.Verbose = cfg.Verbose
	}
	g.Logger = logging.New(g.Stderr, g.Verbose)

	return g
}

// Debug prints a debug message if verbose mode is enabled
func (g *Globals) Debug(format string, args ...interface{}) {
	g.logger().Debug(fmt.Sprintf(format, args...))
}

func (g *Globals) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

// maybeNoStyle strips console colors when stdout is not a terminal
func maybeNoStyle(globals *Globals) {
	if globals == nil || globals.Stdout == nil {
		return
	}
	if f, ok := globals.Stdout.(*os.File); ok {
		if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
			output.DisableStyles()
		}
	}
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(map[string]interface{}{
			"type":          "version",
			"schemaVersion": output.SchemaVersion,
			"version":       Version,
			"commit":        Commit,
		})
	}
	_, err := io.WriteString(globals.Stdout, "pagereport version "+Version+" ("+Commit+")\n")
	return err
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)
