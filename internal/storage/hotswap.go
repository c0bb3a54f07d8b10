package storage

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"
)

// HotSwapDB wraps a DB with thread-safe hot-swap capability.
// All read operations acquire a read lock, allowing concurrent queries.
// The Swap operation acquires a write lock, blocking new queries while
// atomically replacing the underlying database connection.
type HotSwapDB struct {
	mu      sync.RWMutex
	current *DB
}

// NewHotSwapDB creates a new HotSwapDB with the given initial database path.
func NewHotSwapDB(dbPath string) (*HotSwapDB, error) {
	db, err := New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("hotswap: create initial db: %w", err)
	}

	return &HotSwapDB{current: db}, nil
}

// DB returns the current database handle.
func (h *HotSwapDB) DB() *DB {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Swap atomically replaces the current database with the one at newDBPath.
// The old database is closed asynchronously after a grace period so that
// in-flight queries can complete.
func (h *HotSwapDB) Swap(ctx context.Context, newDBPath string) error {
	// Open and validate the new database before acquiring the lock
	newDB, err := New(newDBPath)
	if err != nil {
		return fmt.Errorf("hotswap: open new db: %w", err)
	}
	if err := newDB.Ping(ctx); err != nil {
		_ = newDB.Close()
		return fmt.Errorf("hotswap: ping new db: %w", err)
	}

	h.mu.Lock()
	oldDB := h.current
	h.current = newDB
	h.mu.Unlock()

	go func() {
		time.Sleep(5 * time.Second)
		_ = oldDB.Close()

		oldPath := oldDB.Path()
		if oldPath != newDBPath && oldPath != ":memory:" {
			// Remove old .db, .db-wal, and .db-shm files
			_ = os.Remove(oldPath)
			_ = os.Remove(oldPath + "-wal")
			_ = os.Remove(oldPath + "-shm")
		}
	}()

	return nil
}

// Path returns the current database file path.
func (h *HotSwapDB) Path() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current.Path()
}

// Ping checks if the current database is accessible.
func (h *HotSwapDB) Ping(ctx context.Context) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current.Ping(ctx)
}

// Close closes the current database connection.
func (h *HotSwapDB) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current != nil {
		return h.current.Close()
	}
	return nil
}
