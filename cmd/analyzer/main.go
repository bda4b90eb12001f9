package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"retailcli/internal/config"
	"retailcli/internal/dataprocessing"
	"retailcli/internal/exporter"
	"retailcli/internal/kpi"
)

func main() {
	inputFile := flag.String("input", "", "path to the raw retail CSV export (required)")
	outputDir := flag.String("out", "", "results directory (defaults to configured paths.results_dir)")
	configFile := flag.String("config", "", "optional YAML config file")
	logLevel := flag.String("log-level", "", "override log level (debug, info, warn, error)")
	flag.Parse()

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "usage: analyzer -input <retail.csv> [-out <dir>] [-config <file>]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *outputDir != "" {
		cfg.Paths.ResultsDir = *outputDir
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	setupLogging(cfg.Logging)

	if err := run(cfg, *inputFile); err != nil {
		slog.Error("Analysis failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, inputFile string) error {
	start := time.Now()
	ctx := context.Background()

	slog.Info("Starting retail analysis",
		"input", inputFile,
		"results_dir", cfg.Paths.ResultsDir)

	// Load raw transactions
	rawRows, loadReport, err := dataprocessing.LoadFile(inputFile)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	slog.Info("Loaded raw data",
		"rows", loadReport.LoadedRows,
		"dropped_dates", loadReport.DroppedDates)

	// Clean and derive line revenue
	cleaned, cleanReport := dataprocessing.Clean(rawRows)
	slog.Info("Cleaned data",
		"rows", cleanReport.OutputRows,
		"removed", cleanReport.Removed())

	// Compute KPI report
	calc := kpi.NewCalculator(cfg.Analysis, slog.Default())
	report, err := calc.Calculate(ctx, cleaned)
	if err != nil {
		return fmt.Errorf("calculate: %w", err)
	}

	// Persist result artifacts
	sink := exporter.NewResultSink(cfg.Paths.ResultsDir, slog.Default())
	diagnostics := exporter.RunDiagnostics{
		RunID:       report.RunID,
		GeneratedAt: report.GeneratedAt,
		InputFile:   inputFile,
		Load:        loadReport,
		Clean:       &cleanReport,
		Duration:    time.Since(start).String(),
	}
	if err := sink.Write(report, diagnostics); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	slog.Info("Analysis complete",
		"run_id", report.RunID,
		"total_revenue", report.Global.TotalRevenue,
		"customers", len(report.Customers),
		"duration", time.Since(start))

	return nil
}

// setupLogging configures the process-wide slog handler
func setupLogging(cfg config.LoggingConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
