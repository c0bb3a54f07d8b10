// Package main provides the ingest job entry point. It loads the handbook
// and schedule documents, parses them into structured datasets, rebuilds the
// SQLite database and JSON exports, and optionally uploads a compressed
// snapshot to R2 for the server fleet to pick up.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/hsrw-ise/advisor-go/internal/config"
	"github.com/hsrw-ise/advisor-go/internal/docload"
	"github.com/hsrw-ise/advisor-go/internal/ingest"
	"github.com/hsrw-ise/advisor-go/internal/logger"
	"github.com/hsrw-ise/advisor-go/internal/r2client"
	"github.com/hsrw-ise/advisor-go/internal/snapshot"
	"github.com/hsrw-ise/advisor-go/internal/storage"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel).WithModule("ingest")
	log.Info("Starting document ingestion")

	if err := run(context.Background(), cfg, log); err != nil {
		log.WithError(err).Fatal("Ingestion failed")
	}
	log.Info("Ingestion completed")
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	start := time.Now()

	// Load both source documents concurrently; parsing is cheap compared to
	// PDF text extraction.
	var handbookLines, scheduleLines []string
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		handbookLines, err = docload.Load(cfg.HandbookPath)
		if err != nil {
			return fmt.Errorf("load handbook %s: %w", cfg.HandbookPath, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		scheduleLines, err = docload.Load(cfg.SchedulePath)
		if err != nil {
			return fmt.Errorf("load schedule %s: %w", cfg.SchedulePath, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	log.WithFields(map[string]any{
		"handbook_lines": len(handbookLines),
		"schedule_lines": len(scheduleLines),
	}).Info("Documents loaded")

	moduleMap, segments := ingest.SegmentHandbook(handbookLines)
	entries := ingest.NewScheduleParser(log).Parse(scheduleLines)
	log.WithFields(map[string]any{
		"modules":  len(moduleMap),
		"segments": len(segments),
		"entries":  len(entries),
	}).Info("Documents parsed")

	report := ingest.Validate(entries, moduleMap)
	logReport(log, report)

	if err := rebuildDatabase(ctx, cfg, moduleMap, segments, entries); err != nil {
		return err
	}
	if err := writeExports(cfg, moduleMap, entries); err != nil {
		return err
	}

	if cfg.R2Enabled {
		if err := uploadSnapshot(ctx, cfg, log); err != nil {
			return err
		}
	} else {
		log.Info("R2 disabled, skipping snapshot upload")
	}

	log.WithField("duration", time.Since(start).String()).Info("Datasets rebuilt")
	return nil
}

// logReport surfaces data-quality findings without failing the run: the
// source documents are hand-maintained and minor gaps are normal.
func logReport(log *logger.Logger, report ingest.Report) {
	entry := log.WithFields(map[string]any{
		"total_entries":    report.TotalEntries,
		"incomplete":       report.Incomplete,
		"missing_location": report.MissingLocation,
		"session_codes":    report.SessionCodes,
		"catalog_modules":  report.Modules,
	})
	if report.Clean() {
		entry.Info("Validation passed")
		return
	}
	entry.Warn("Validation found gaps")
	for _, name := range report.IncompleteNames {
		log.WithField("entry", name).Warn("Incomplete schedule entry")
	}
}

func rebuildDatabase(ctx context.Context, cfg *config.Config, moduleMap ingest.ModuleMap, segments []ingest.ModuleSegment, entries []ingest.ScheduleEntry) error {
	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.ReplaceModules(ctx, moduleMap); err != nil {
		return fmt.Errorf("store modules: %w", err)
	}
	if err := db.ReplaceSegments(ctx, segments); err != nil {
		return fmt.Errorf("store segments: %w", err)
	}
	if err := db.ReplaceEntries(ctx, entries); err != nil {
		return fmt.Errorf("store schedule entries: %w", err)
	}
	return nil
}

// writeExports mirrors the datasets as JSON files next to the database, for
// inspection and for tooling that does not speak SQLite.
func writeExports(cfg *config.Config, moduleMap ingest.ModuleMap, entries []ingest.ScheduleEntry) error {
	if err := writeJSON(cfg.ModuleMapPath(), moduleMap); err != nil {
		return fmt.Errorf("export module map: %w", err)
	}
	if err := writeJSON(cfg.ScheduleJSONPath(), entries); err != nil {
		return fmt.Errorf("export schedule: %w", err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func uploadSnapshot(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	client, err := r2client.New(ctx, r2client.Config{
		AccountID:   cfg.R2AccountID,
		AccessKeyID: cfg.R2AccessKeyID,
		SecretKey:   cfg.R2SecretAccessKey,
		BucketName:  cfg.R2BucketName,
	})
	if err != nil {
		return fmt.Errorf("create R2 client: %w", err)
	}

	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		return fmt.Errorf("reopen database for snapshot: %w", err)
	}
	defer func() { _ = db.Close() }()

	manager := snapshot.New(client, snapshot.Config{SnapshotKey: cfg.R2SnapshotKey}, log)
	etag, err := manager.Upload(ctx, db)
	if err != nil {
		return fmt.Errorf("upload snapshot: %w", err)
	}
	log.WithField("etag", etag).Info("Snapshot uploaded")
	return nil
}
