package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath  string
	LogLevel    string
	LogFormat   string
	Debug       bool
	MetricsPort int
	Prompt      string
	ShowVersion bool
	ShowHelp    bool
	Validate    bool
}

// newFlagSet binds every flag to cfg. Log settings left empty defer to the
// configuration file; a metrics port of -1 does the same.
func newFlagSet(cfg *CLIConfig) *flag.FlagSet {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)

	fs.StringVar(&cfg.ConfigPath, "config",
		getEnv("SEQSTREAMS_CONFIG", ""),
		"Path to a JSON or YAML configuration file (env: SEQSTREAMS_CONFIG)")
	fs.StringVar(&cfg.ConfigPath, "c",
		getEnv("SEQSTREAMS_CONFIG", ""),
		"Path to a JSON or YAML configuration file (env: SEQSTREAMS_CONFIG)")

	fs.StringVar(&cfg.LogLevel, "log-level", "",
		"Log level: debug, info, warn, error (overrides config)")
	fs.StringVar(&cfg.LogFormat, "log-format", "",
		"Log format: json, text (overrides config)")

	fs.BoolVar(&cfg.Debug, "debug",
		getEnvBool("SEQSTREAMS_DEBUG", false),
		"Enable debug logging (env: SEQSTREAMS_DEBUG)")

	fs.IntVar(&cfg.MetricsPort, "metrics-port", -1,
		"Metrics server port, 0 to disable, -1 to use the config")

	fs.StringVar(&cfg.Prompt, "prompt",
		getEnv("SEQSTREAMS_PROMPT", "seq> "),
		"Shell prompt, empty for none (env: SEQSTREAMS_PROMPT)")

	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	fs.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	fs.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	fs.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")

	return fs
}

func parseFlags(args []string, output io.Writer) (*CLIConfig, error) {
	cfg := &CLIConfig{}
	fs := newFlagSet(cfg)
	fs.SetOutput(output)
	fs.Usage = func() {
		printDetailedHelp(output)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	// Override log level if debug is set
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	if cfg.ConfigPath != "" {
		if _, err := os.Stat(cfg.ConfigPath); err != nil {
			return fmt.Errorf("config file not found: %s", cfg.ConfigPath)
		}
	}

	if cfg.LogLevel != "" && !contains([]string{"debug", "info", "warn", "error"}, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	if cfg.LogFormat != "" && !contains([]string{"json", "text"}, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	if cfg.MetricsPort < -1 || cfg.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", cfg.MetricsPort)
	}

	return nil
}

func printDetailedHelp(w io.Writer) {
	_, _ = fmt.Fprintf(w, `%s - interactive shell over named integer and double sequences

Usage: %s [options]

Options:
`, appName, appName)
	fs := newFlagSet(&CLIConfig{})
	fs.SetOutput(w)
	fs.PrintDefaults()
	_, _ = fmt.Fprintf(w, `
Examples:
  # Seed sequences from a config file
  %s --config=configs/sequences.yaml

  # Expose Prometheus metrics on port 9090
  %s --metrics-port=9090

  # Validate configuration only
  %s --config=configs/sequences.yaml --validate

Type "help" inside the shell for the command list.

Version: %s
Build: %s
`, appName, appName, appName, Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
