// Package snapshot synchronizes the advisor database with R2 object
// storage. The ingest job uploads a compressed snapshot; server instances
// download it at startup and poll for updates, hot-swapping the database
// when a new snapshot appears.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hsrw-ise/advisor-go/internal/logger"
	"github.com/hsrw-ise/advisor-go/internal/metrics"
	"github.com/hsrw-ise/advisor-go/internal/r2client"
	"github.com/hsrw-ise/advisor-go/internal/storage"
	"github.com/hsrw-ise/advisor-go/internal/timeouts"
)

// ErrNotFound indicates no snapshot exists in R2.
var ErrNotFound = errors.New("snapshot: not found")

// Config holds snapshot manager configuration.
type Config struct {
	SnapshotKey  string        // R2 object key (e.g. "advisor/advisor.db.zst")
	PollInterval time.Duration // How often to check for new snapshots
	TempDir      string        // Directory for temporary files
}

// Manager handles snapshot upload, download, and background polling.
type Manager struct {
	client  *r2client.Client
	config  Config
	log     *logger.Logger
	metrics *metrics.Metrics

	mu          sync.RWMutex
	currentETag string

	pollCancel context.CancelFunc
	pollDone   chan struct{}
}

// SetMetrics attaches a metrics recorder for swap outcomes.
func (m *Manager) SetMetrics(rec *metrics.Metrics) {
	m.metrics = rec
}

func (m *Manager) recordSwap(status string) {
	if m.metrics != nil {
		m.metrics.RecordSnapshotSwap(status)
	}
}

// New creates a snapshot manager.
func New(client *r2client.Client, cfg Config, log *logger.Logger) *Manager {
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = timeouts.SnapshotPoll
	}
	return &Manager{
		client:   client,
		config:   cfg,
		log:      log.WithModule("snapshot"),
		pollDone: make(chan struct{}),
	}
}

// Download fetches and decompresses the latest snapshot into destDir.
// Returns the path of the decompressed database and its ETag, or ErrNotFound
// when no snapshot has been uploaded yet.
func (m *Manager) Download(ctx context.Context, destDir string) (string, string, error) {
	body, etag, err := m.client.Download(ctx, m.config.SnapshotKey)
	if err != nil {
		if errors.Is(err, r2client.ErrNotFound) {
			return "", "", ErrNotFound
		}
		return "", "", fmt.Errorf("download snapshot: %w", err)
	}
	defer body.Close()

	dbPath := filepath.Join(destDir, "advisor.db")
	if err := decompressTo(body, dbPath); err != nil {
		return "", "", err
	}

	m.setETag(etag)
	return dbPath, etag, nil
}

// Upload snapshots the database and uploads it compressed. Returns the new
// ETag.
func (m *Manager) Upload(ctx context.Context, db *storage.DB) (string, error) {
	snapshotPath := filepath.Join(m.config.TempDir, fmt.Sprintf("advisor_%d.db", time.Now().UnixNano()))
	if err := db.CreateSnapshot(ctx, snapshotPath); err != nil {
		return "", fmt.Errorf("snapshot database: %w", err)
	}
	defer os.Remove(snapshotPath)

	compressedPath := snapshotPath + ".zst"
	if err := r2client.CompressFile(snapshotPath, compressedPath); err != nil {
		return "", fmt.Errorf("compress snapshot: %w", err)
	}
	defer os.Remove(compressedPath)

	f, err := os.Open(compressedPath)
	if err != nil {
		return "", fmt.Errorf("open compressed snapshot: %w", err)
	}
	defer f.Close()

	etag, err := m.client.Upload(ctx, m.config.SnapshotKey, f, "application/zstd")
	if err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}

	m.setETag(etag)
	m.log.WithFields(map[string]any{
		"key":  m.config.SnapshotKey,
		"etag": etag,
	}).Info("snapshot uploaded")
	return etag, nil
}

// StartPolling watches R2 for new snapshots. When the remote ETag changes
// the snapshot is downloaded, hot-swapped into hot, and onSwap is called so
// the caller can reload derived state. onSwap may be nil.
func (m *Manager) StartPolling(ctx context.Context, hot *storage.HotSwapDB, destDir string, onSwap func(context.Context)) {
	pollCtx, cancel := context.WithCancel(ctx)
	m.pollCancel = cancel

	go func() {
		defer close(m.pollDone)

		ticker := time.NewTicker(m.config.PollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-pollCtx.Done():
				m.log.Info("snapshot polling stopped")
				return
			case <-ticker.C:
				m.pollOnce(pollCtx, hot, destDir, onSwap)
			}
		}
	}()

	m.log.WithFields(map[string]any{
		"interval": m.config.PollInterval.String(),
		"key":      m.config.SnapshotKey,
	}).Info("snapshot polling started")
}

// StopPolling stops the polling goroutine and waits for it to exit.
func (m *Manager) StopPolling() {
	if m.pollCancel != nil {
		m.pollCancel()
		<-m.pollDone
	}
}

// pollOnce checks the remote ETag and hot-swaps on change.
func (m *Manager) pollOnce(ctx context.Context, hot *storage.HotSwapDB, destDir string, onSwap func(context.Context)) {
	remoteETag, err := m.client.HeadObject(ctx, m.config.SnapshotKey)
	if err != nil {
		if !errors.Is(err, r2client.ErrNotFound) {
			m.log.WithError(err).Warn("snapshot poll: head object failed")
		}
		return
	}

	if remoteETag == m.CurrentETag() {
		return
	}

	m.log.WithFields(map[string]any{
		"old_etag": m.CurrentETag(),
		"new_etag": remoteETag,
	}).Info("new snapshot detected")

	// Unique path so a half-written download can never clobber the live db
	newDBPath := filepath.Join(destDir, fmt.Sprintf("advisor_%d.db", time.Now().UnixNano()))

	body, _, err := m.client.Download(ctx, m.config.SnapshotKey)
	if err != nil {
		m.log.WithError(err).Error("snapshot poll: download failed")
		m.recordSwap("error")
		return
	}
	defer body.Close()

	if err := decompressTo(body, newDBPath); err != nil {
		m.log.WithError(err).Error("snapshot poll: decompress failed")
		os.Remove(newDBPath)
		m.recordSwap("error")
		return
	}

	if err := hot.Swap(ctx, newDBPath); err != nil {
		m.log.WithError(err).Error("snapshot poll: hot-swap failed")
		os.Remove(newDBPath)
		m.recordSwap("error")
		return
	}

	m.setETag(remoteETag)
	m.recordSwap("success")
	if onSwap != nil {
		onSwap(ctx)
	}
	m.log.WithField("etag", remoteETag).Info("hot-swap completed")
}

// CurrentETag returns the ETag of the currently loaded snapshot.
func (m *Manager) CurrentETag() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentETag
}

func (m *Manager) setETag(etag string) {
	m.mu.Lock()
	m.currentETag = etag
	m.mu.Unlock()
}

func decompressTo(r io.Reader, dbPath string) error {
	if err := r2client.DecompressStream(r, dbPath); err != nil {
		return fmt.Errorf("decompress snapshot: %w", err)
	}
	return nil
}
