package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/hsrw-ise/advisor-go/internal/ingest"
)

// ReplaceModules rewrites the modules table with the given module map in a
// single transaction.
func (db *DB) ReplaceModules(ctx context.Context, moduleMap ingest.ModuleMap) error {
	start := time.Now()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace modules: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM modules`); err != nil {
		return fmt.Errorf("clear modules: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO modules (code, name) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert module: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	// Deterministic insert order keeps runs reproducible.
	codes := make([]string, 0, len(moduleMap))
	for code := range moduleMap {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		if _, err := stmt.ExecContext(ctx, code, moduleMap[code]); err != nil {
			return fmt.Errorf("insert module %s: %w", code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace modules: %w", err)
	}

	slog.DebugContext(ctx, "batch operation completed",
		"operation", "ReplaceModules",
		"count", len(codes),
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

// ReplaceSegments rewrites the module_segments table in a single transaction.
func (db *DB) ReplaceSegments(ctx context.Context, segments []ingest.ModuleSegment) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace segments: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM module_segments`); err != nil {
		return fmt.Errorf("clear segments: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO module_segments (code, title, content) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert segment: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, seg := range segments {
		if _, err := stmt.ExecContext(ctx, seg.Code, seg.Title, seg.Content); err != nil {
			return fmt.Errorf("insert segment %s: %w", seg.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace segments: %w", err)
	}
	return nil
}

// ReplaceEntries rewrites the schedule_entries table in a single transaction.
func (db *DB) ReplaceEntries(ctx context.Context, entries []ingest.ScheduleEntry) error {
	start := time.Now()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace entries: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_entries`); err != nil {
		return fmt.Errorf("clear schedule entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO schedule_entries
			(semester, day, start_time, end_time, module_code, module_name, type,
			 professor, room, building, floor, room_number, block_dates)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert entry: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx,
			e.Semester, e.Day, e.StartTime, e.EndTime, e.ModuleCode, e.ModuleName,
			e.Type, e.Professor, e.Room, e.Building, e.Floor, e.RoomNumber,
			e.BlockDates,
		); err != nil {
			return fmt.Errorf("insert entry %s %s: %w", e.ModuleCode, e.StartTime, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace entries: %w", err)
	}

	duration := time.Since(start)
	slog.DebugContext(ctx, "batch operation completed",
		"operation", "ReplaceEntries",
		"count", len(entries),
		"duration_ms", duration.Milliseconds())
	if duration > 500*time.Millisecond {
		slog.WarnContext(ctx, "slow batch operation",
			"operation", "ReplaceEntries",
			"count", len(entries),
			"duration_ms", duration.Milliseconds())
	}
	return nil
}

// AllModules loads the module map.
func (db *DB) AllModules(ctx context.Context) (ingest.ModuleMap, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT code, name FROM modules`)
	if err != nil {
		return nil, fmt.Errorf("query modules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	moduleMap := make(ingest.ModuleMap)
	for rows.Next() {
		var code, name string
		if err := rows.Scan(&code, &name); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		moduleMap[code] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate modules: %w", err)
	}
	return moduleMap, nil
}

// GetModuleName returns the catalog name for a handbook code.
// Returns ("", nil) when the code is unknown.
func (db *DB) GetModuleName(ctx context.Context, code string) (string, error) {
	var name string
	err := db.conn.QueryRowContext(ctx, `SELECT name FROM modules WHERE code = ?`, code).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query module %s: %w", code, err)
	}
	return name, nil
}

// AllSegments loads every handbook segment ordered by code.
func (db *DB) AllSegments(ctx context.Context) ([]ingest.ModuleSegment, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT code, title, content FROM module_segments ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("query segments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var segments []ingest.ModuleSegment
	for rows.Next() {
		var seg ingest.ModuleSegment
		if err := rows.Scan(&seg.Code, &seg.Title, &seg.Content); err != nil {
			return nil, fmt.Errorf("scan segment: %w", err)
		}
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate segments: %w", err)
	}
	return segments, nil
}

// AllEntries loads every schedule entry ordered by semester, day, start time.
func (db *DB) AllEntries(ctx context.Context) ([]ingest.ScheduleEntry, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT semester, day, start_time, end_time, module_code, module_name, type,
		       professor, room, building, floor, room_number, block_dates
		FROM schedule_entries
		ORDER BY semester, day, start_time
	`)
	if err != nil {
		return nil, fmt.Errorf("query schedule entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []ingest.ScheduleEntry
	for rows.Next() {
		var e ingest.ScheduleEntry
		if err := rows.Scan(
			&e.Semester, &e.Day, &e.StartTime, &e.EndTime, &e.ModuleCode, &e.ModuleName,
			&e.Type, &e.Professor, &e.Room, &e.Building, &e.Floor, &e.RoomNumber,
			&e.BlockDates,
		); err != nil {
			return nil, fmt.Errorf("scan schedule entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedule entries: %w", err)
	}
	return entries, nil
}

// CountEntries returns the number of schedule entries.
func (db *DB) CountEntries(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM schedule_entries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count schedule entries: %w", err)
	}
	return count, nil
}

// CountModules returns the number of catalog modules.
func (db *DB) CountModules(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM modules`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count modules: %w", err)
	}
	return count, nil
}
