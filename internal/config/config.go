package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format" yaml:"format"`
	Verbose bool   `mapstructure:"verbose" yaml:"verbose"`

	// Report generation settings
	Report ReportConfig `mapstructure:"report" yaml:"report"`
}

// ReportConfig controls what a flush writes and where
type ReportConfig struct {
	IncludeDebugEntries bool   `mapstructure:"include_debug_entries" yaml:"include_debug_entries"`
	IncludeVerbose      bool   `mapstructure:"include_verbose" yaml:"include_verbose"`
	OutputDirectory     string `mapstructure:"output_directory" yaml:"output_directory"`
	NameDiscriminator   string `mapstructure:"name_discriminator" yaml:"name_discriminator"`
	Style               string `mapstructure:"style" yaml:"style"`
	ExcludePattern      string `mapstructure:"exclude_pattern" yaml:"exclude_pattern"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "text",
		Verbose: false,
		Report: ReportConfig{
			OutputDirectory: ".",
			Style:           "markdown",
		},
	}
}

// Load loads configuration from files and environment
// Config file search order (highest precedence first):
// 1. ./.pagereport.yaml or ./.pagereport.yml (also without the dot)
// 2. ~/.pagereport.yaml or ~/.pagereport.yml
// 3. $XDG_CONFIG_HOME/pagereport/config.yaml (or ~/.config/pagereport/config.yaml)
// 4. /etc/pagereport/config.yaml
func Load() (*Config, error) {
	cfg := Default()

	configFile := findConfigFile()
	if configFile != "" {
		loaded, err := LoadFromFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	names := []string{".pagereport.yaml", ".pagereport.yml", "pagereport.yaml", "pagereport.yml"}

	home, homeErr := os.UserHomeDir()
	configDir, configDirErr := os.UserConfigDir()

	var searchPaths, dedicated []string

	// 1. Current directory
	cwd, err := os.Getwd()
	if err == nil {
		searchPaths = append(searchPaths, cwd)
	}

	// 2. Home directory
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}

	// 3. Config directory (e.g., ~/.config/pagereport/)
	if configDirErr == nil {
		dedicated = append(dedicated, filepath.Join(configDir, "pagereport"))
	}

	// 4. System config
	dedicated = append(dedicated, "/etc/pagereport")

	for _, dir := range append(searchPaths, dedicated...) {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	// config.yaml only counts inside the dedicated directories
	for _, dir := range dedicated {
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PAGEREPORT_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v, ok := envBool("PAGEREPORT_VERBOSE"); ok {
		cfg.Verbose = v
	}
	if v, ok := envBool("PAGEREPORT_INCLUDE_DEBUG"); ok {
		cfg.Report.IncludeDebugEntries = v
	}
	if v, ok := envBool("PAGEREPORT_INCLUDE_VERBOSE"); ok {
		cfg.Report.IncludeVerbose = v
	}
	if v := os.Getenv("PAGEREPORT_OUTPUT_DIR"); v != "" {
		cfg.Report.OutputDirectory = v
	}
	if v := os.Getenv("PAGEREPORT_DISCRIMINATOR"); v != "" {
		cfg.Report.NameDiscriminator = v
	}
	if v := os.Getenv("PAGEREPORT_STYLE"); v != "" {
		cfg.Report.Style = v
	}
}

func envBool(key string) (value, ok bool) {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	default:
		return false, false
	}
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}

// Marshal renders cfg as YAML suitable for a config file
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}
