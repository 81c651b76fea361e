// Package main is the entry point for the spot ingestion batch job.
// By default it runs one pass and exits; with -schedule it keeps running and
// repeats the pass on a cron schedule until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"github.com/ittyan/family-outings/internal/config"
	"github.com/ittyan/family-outings/internal/ingest"
	"github.com/ittyan/family-outings/internal/repo"
	"github.com/ittyan/family-outings/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	output := flag.String("output", cfg.SnapshotPath, "path of the JSON snapshot to write")
	sourceFile := flag.String("source-file", cfg.SourceFile, "optional YAML/JSON file of raw spot records")
	schedule := flag.String("schedule", cfg.IngestSchedule, "cron expression; empty runs once and exits")
	flag.Parse()

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg.DatabaseURL, *output, *sourceFile, *schedule, logger); err != nil {
		logger.Error("ingest failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dsn, output, sourceFile, schedule string, logger *slog.Logger) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err := migrations.Apply(ctx, pool, logger); err != nil {
		return err
	}

	sources := []ingest.Source{ingest.SampleSource{}}
	if sourceFile != "" {
		sources = append(sources, ingest.FileSource{Path: sourceFile})
	}

	pipeline := ingest.NewPipeline(
		repo.NewIngestSink(repo.NewSpotRepo(pool), logger),
		ingest.FileSnapshot{Path: output},
		logger,
	)

	runOnce := func() error {
		report, err := pipeline.Run(ctx, sources...)
		if err != nil {
			return err
		}
		logger.InfoContext(ctx, "snapshot written", "path", output, "records", report.Deduped)
		return nil
	}

	if schedule == "" {
		return runOnce()
	}

	// SkipIfStillRunning keeps runs from overlapping; the pipeline assumes it
	// is the only writer.
	cl := cronLogger{logger}
	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))
	if _, err := c.AddFunc(schedule, func() {
		if err := runOnce(); err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorContext(ctx, "scheduled ingest failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	c.Start()
	logger.InfoContext(ctx, "ingest scheduler started", "schedule", schedule)

	<-ctx.Done()
	logger.Info("stopping ingest scheduler")
	<-c.Stop().Done()
	return nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append([]any{"error", err}, keysAndValues...)...)
}
