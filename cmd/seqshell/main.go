// Package main implements seqshell, an interactive shell over a registry of
// named integer and double sequences backed by dynamic arrays or linked lists.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/c360/seqstreams/config"
	"github.com/c360/seqstreams/health"
	"github.com/c360/seqstreams/metric"
	"github.com/c360/seqstreams/registry"
)

// Build information constants
const (
	Version       = "0.1.0"
	BuildTime     = "dev"
	ConfigVersion = "1.0.0" // newest configuration layout this build understands
	appName       = "seqshell"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()

	if err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cliCfg, err := parseFlags(args, stderr)
	if err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		_, _ = fmt.Fprintf(stdout, "%s version %s\n", appName, Version)
		return nil
	}
	if cliCfg.ShowHelp {
		printDetailedHelp(stdout)
		return nil
	}

	cfg, err := initializeConfiguration(cliCfg)
	if err != nil {
		return err
	}

	logger := setupLogger(stderr, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	if cliCfg.Validate {
		_, _ = fmt.Fprintln(stdout, "configuration is valid")
		return nil
	}

	if cmp, err := config.CompareVersions(cfg.Version, ConfigVersion); err == nil && cmp > 0 {
		logger.Warn("Configuration is newer than this build",
			"config_version", cfg.Version,
			"supported_version", ConfigVersion)
	}

	logger.Info("Starting seqshell",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cliCfg.ConfigPath)

	metricsRegistry := metric.NewMetricsRegistry()

	var shell *Shell
	reg := registry.New(
		registry.WithLogger(logger),
		registry.WithMetrics(metricsRegistry),
		registry.WithHealthThresholds(cfg.Health.Thresholds()),
		registry.WithListener(func(ev registry.Event) {
			if shell != nil {
				shell.notify(ev)
			}
		}),
	)

	if err := seedSequences(reg, cfg.Sequences); err != nil {
		return err
	}
	logger.Info("Registry ready", "sequences", reg.Count())

	shell = NewShell(reg, stdout, logger, cliCfg.Prompt)
	shell.SetMetrics(metricsRegistry)
	return runWithMetrics(ctx, cfg.Metrics, metricsRegistry, reg.Health, shell, stdin, logger)
}

// initializeConfiguration loads the config file, applies flag overrides and validates the result
func initializeConfiguration(cliCfg *CLIConfig) (*config.Config, error) {
	loader := config.NewLoader()
	if cliCfg.ConfigPath != "" {
		loader.AddLayer(cliCfg.ConfigPath)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cliCfg.LogLevel != "" {
		cfg.Log.Level = cliCfg.LogLevel
	}
	if cliCfg.LogFormat != "" {
		cfg.Log.Format = cliCfg.LogFormat
	}
	switch {
	case cliCfg.MetricsPort == 0:
		cfg.Metrics.Enabled = false
	case cliCfg.MetricsPort > 0:
		cfg.Metrics.Enabled = true
		cfg.Metrics.Port = cliCfg.MetricsPort
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// seedSequences creates every configured sequence in name order
func seedSequences(reg *registry.Registry, sequences config.SequenceConfigs) error {
	for _, name := range sequences.Names() {
		kind, valueKind, values, err := sequences[name].Resolve()
		if err != nil {
			return fmt.Errorf("sequence %q: %w", name, err)
		}
		if err := reg.CreateFrom(name, kind, valueKind, values); err != nil {
			return fmt.Errorf("seed sequence %q: %w", name, err)
		}
	}
	return nil
}

// runWithMetrics runs the shell and, when enabled, the metrics server until
// the shell exits, ctx is cancelled or the server fails.
func runWithMetrics(
	ctx context.Context,
	metricsCfg config.MetricsConfig,
	metricsRegistry *metric.MetricsRegistry,
	healthCheck func() health.Status,
	shell *Shell,
	stdin io.Reader,
	logger *slog.Logger,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	if metricsCfg.Enabled {
		server := metric.NewServer(metricsCfg.Port, metricsCfg.Path, metricsRegistry)
		server.SetHealthCheck(healthCheck)
		logger.Info("Metrics server listening", "address", server.Address())
		g.Go(func() error {
			return server.Run(gctx)
		})
	}

	g.Go(func() error {
		defer cancel()
		return shell.Run(gctx, stdin)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("seqshell stopped")
	return nil
}
