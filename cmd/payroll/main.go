package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"payrolletl/internal/config"
	apperrors "payrolletl/internal/errors"
	"payrolletl/internal/infrastructure"
	"payrolletl/internal/pipeline"
	"payrolletl/internal/store"
)

func main() {
	inDir := flag.String("in", "", "directory containing payroll source files (.csv, .xlsx, .xls)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	exportsDir := flag.String("exports", "", "directory for spreadsheet and report exports (overrides config)")
	appendMode := flag.Bool("append", false, "append to existing relation sets instead of replacing them")
	analyzeOnly := flag.Bool("analyze", false, "skip processing and export reports from the existing database")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *exportsDir != "" {
		cfg.Export.Dir = *exportsDir
	}

	paths, err := config.ResolvePaths(cfg)
	if err != nil {
		slog.Error("Failed to resolve paths", "error", err)
		os.Exit(1)
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithRunID(context.Background(), infrastructure.NewRunID())

	logger.InfoContext(ctx, "Starting payroll processing",
		slog.String("input_dir", *inDir),
		slog.String("database", paths.DatabaseFile),
		slog.String("exports_dir", paths.ExportsDir),
		slog.Bool("append", *appendMode))

	st := store.New(paths.DatabaseFile, logger)
	runner := pipeline.New(st, paths.ExportsDir, logger)

	if *analyzeOnly || *inDir == "" {
		if *inDir == "" {
			logger.InfoContext(ctx, "No input directory given, running analysis on existing database")
		}
		runAnalysis(ctx, logger, runner)
		return
	}

	mode := store.ModeReplace
	if *appendMode {
		mode = store.ModeAppend
	}

	batch, err := runner.Run(ctx, *inDir, mode)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrTypeNoInputFiles) {
			logger.ErrorContext(ctx, "No valid files were processed; nothing was persisted",
				slog.String("input_dir", *inDir))
			fmt.Fprintf(os.Stderr, "no valid payroll files were processed in %s\n", *inDir)
			os.Exit(1)
		}
		logger.ErrorContext(ctx, "Payroll batch failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Payroll processing complete: %d files, %d records\n", batch.FileCount, len(batch.Records))
	fmt.Printf("Database: %s\n", paths.DatabaseFile)
	fmt.Printf("Exports:  %s\n", paths.ExportsDir)
}

func runAnalysis(ctx context.Context, logger *slog.Logger, runner *pipeline.Runner) {
	folder, err := runner.RunAnalysis(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Analysis export failed", slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, "analysis failed: database not found or empty, run payroll processing first")
		os.Exit(1)
	}

	fmt.Printf("Analysis reports exported to %s\n", folder)
}
