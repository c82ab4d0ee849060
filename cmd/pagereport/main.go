package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sceriffo01/sp-dev-modernization/internal/cli"
	"github.com/sceriffo01/sp-dev-modernization/internal/config"
)

const quickStart = `pagereport - page transformation log reports

START HERE:
  pagereport report run.ndjson

Flags:
  --verbose-report    Add per-page overview, settings and detail sections
  --include-debug     Keep Debug entries
  -o DIR              Write the report into DIR

Other useful commands:
  pagereport summary run.ndjson         Per-page status without writing a report
  pagereport config generate            Sample .pagereport.yaml
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Config values become flag defaults; explicit flags still win
	vars := kong.Vars{
		"config_format": cfg.Format,
	}

	ctx := kong.Parse(&c,
		kong.Name("pagereport"),
		kong.Description("Aggregate page transformation logs into a report"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	globals := cli.NewGlobalsWithConfig(&c, cfg)
	defer func() { _ = globals.Logger.Sync() }()

	if err := ctx.Run(globals); err != nil {
		_ = globals.Logger.Sync()
		os.Exit(1)
	}
}
