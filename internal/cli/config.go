package cli

import (
	"fmt"
	"os"

	"github.com/sceriffo01/sp-dev-modernization/internal/config"
	"github.com/sceriffo01/sp-dev-modernization/internal/output"
)

// ConfigCmd shows or manages configuration
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"withargs" help:"Show current configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show configuration file path"`
	Generate ConfigGenerateCmd `cmd:"" help:"Generate sample configuration file"`
}

// ConfigShowCmd shows current configuration
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(map[string]interface{}{
			"type":    "config",
			"format":  cfg.Format,
			"verbose": cfg.Verbose,
			"report":  cfg.Report,
			"path":    config.ConfigFile(),
		})
	}

	// Text output
	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintf(globals.Stdout, "  format:  %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  verbose: %v\n", cfg.Verbose)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Report:")
	fmt.Fprintf(globals.Stdout, "  include_debug_entries: %v\n", cfg.Report.IncludeDebugEntries)
	fmt.Fprintf(globals.Stdout, "  include_verbose:       %v\n", cfg.Report.IncludeVerbose)
	fmt.Fprintf(globals.Stdout, "  output_directory:      %s\n", cfg.Report.OutputDirectory)
	fmt.Fprintf(globals.Stdout, "  style:                 %s\n", cfg.Report.Style)
	if cfg.Report.NameDiscriminator != "" {
		fmt.Fprintf(globals.Stdout, "  name_discriminator:    %s\n", cfg.Report.NameDiscriminator)
	}
	if cfg.Report.ExcludePattern != "" {
		fmt.Fprintf(globals.Stdout, "  exclude_pattern:       %s\n", cfg.Report.ExcludePattern)
	}

	if path := config.ConfigFile(); path != "" {
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintf(globals.Stdout, "Loaded from: %s\n", path)
	}

	return nil
}

// ConfigPathCmd shows config file path
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := config.ConfigFile()

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(map[string]interface{}{
			"type": "config_path",
			"path": path,
		})
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintln(globals.Stdout, "Create one at:")
		fmt.Fprintln(globals.Stdout, "  ./.pagereport.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.pagereport.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.config/pagereport/config.yaml")
	} else {
		fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	}

	return nil
}

// ConfigGenerateCmd generates a sample configuration file
type ConfigGenerateCmd struct {
	Output string `short:"o" help:"Write to this file instead of stdout"`
	Force  bool   `help:"Overwrite an existing file"`
}

const sampleHeader = `# pagereport configuration file
# Place this file at ./.pagereport.yaml, ~/.pagereport.yaml or
# ~/.config/pagereport/config.yaml
#
# format: console output of pagereport itself (text or ndjson)
# report.style: markdown (.md) or text (.txt)
# report.exclude_pattern: regex, matching detail rows are hidden
`

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	data, err := config.Marshal(config.Default())
	if err != nil {
		return outputErrorCommon(globals, "CONFIG_ERROR", err.Error())
	}
	content := append([]byte(sampleHeader), data...)

	if c.Output == "" {
		_, err := globals.Stdout.Write(content)
		return err
	}

	if !c.Force {
		if _, err := os.Stat(c.Output); err == nil {
			return outputErrorCommon(globals, "FILE_EXISTS",
				fmt.Sprintf("%s already exists", c.Output), "pass --force to overwrite")
		}
	}
	if err := os.WriteFile(c.Output, content, 0o644); err != nil {
		return outputErrorCommon(globals, "WRITE_ERROR", err.Error())
	}
	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(map[string]interface{}{
			"type": "config_generated",
			"path": c.Output,
		})
	}
	_, err = fmt.Fprintf(globals.Stdout, "Wrote %s\n", c.Output)
	return err
}
