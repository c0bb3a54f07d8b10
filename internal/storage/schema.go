package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// InitSchema creates all necessary tables and indexes.
// Note: WAL mode is configured in db.go.
func InitSchema(db *sql.DB) error {
	if err := createModulesTable(db); err != nil {
		return err
	}

	if err := createSegmentsTable(db); err != nil {
		return err
	}

	return createScheduleTable(db)
}

func createModulesTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS modules (
		code TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_modules_name ON modules(name);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create modules table: %w", err)
	}

	return nil
}

func createSegmentsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS module_segments (
		code TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL
	);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create module_segments table: %w", err)
	}

	return nil
}

// createScheduleTable creates the weekly session table. block_dates holds a
// JSON array of date strings; the empty array marks regular weekly sessions.
func createScheduleTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS schedule_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		semester INTEGER NOT NULL,
		day TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		module_code TEXT NOT NULL,
		module_name TEXT NOT NULL,
		type TEXT NOT NULL,
		professor TEXT,
		room TEXT,
		building TEXT,
		floor TEXT,
		room_number TEXT,
		block_dates TEXT NOT NULL DEFAULT '[]'
	);
	CREATE INDEX IF NOT EXISTS idx_schedule_semester_day ON schedule_entries(semester, day);
	CREATE INDEX IF NOT EXISTS idx_schedule_module_name ON schedule_entries(module_name);
	CREATE INDEX IF NOT EXISTS idx_schedule_module_code ON schedule_entries(module_code);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create schedule_entries table: %w", err)
	}

	return nil
}
