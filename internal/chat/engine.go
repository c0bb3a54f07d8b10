// Package chat answers student questions. The engine routes each question by
// intent: schedule and module-list questions are resolved deterministically
// against the structured datasets, handbook questions go through BM25
// retrieval, and the resolved context is handed to the LLM chain for the
// final wording. Without a configured LLM the engine answers from the
// resolved data directly.
package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "github.com/hsrw-ise/advisor-go/internal/errors"
	"github.com/hsrw-ise/advisor-go/internal/genai"
	"github.com/hsrw-ise/advisor-go/internal/ingest"
	"github.com/hsrw-ise/advisor-go/internal/logger"
	"github.com/hsrw-ise/advisor-go/internal/metrics"
	"github.com/hsrw-ise/advisor-go/internal/rag"
	"github.com/hsrw-ise/advisor-go/internal/storage"
)

// Generator is the LLM surface the engine needs. *genai.FallbackChat
// implements it.
type Generator interface {
	Chat(ctx context.Context, messages []genai.Message) (string, error)
	IsEnabled() bool
}

// Answer is the engine's reply to one question.
type Answer struct {
	Text       string `json:"text"`
	Intent     string `json:"intent"`
	ModuleCode string `json:"module_code,omitempty"`
	// Generated is false when the LLM was unavailable and the text was
	// rendered from the resolved data instead.
	Generated bool `json:"generated"`
}

// Engine holds the loaded datasets and the retrieval/generation stack.
type Engine struct {
	store   *storage.HotSwapDB
	index   *rag.BM25Index
	llm     Generator
	metrics *metrics.Metrics
	log     *logger.Logger
	topK    int
	now     func() time.Time

	mu      sync.RWMutex
	modules ingest.ModuleMap
	entries []ingest.ScheduleEntry
}

// Option configures an Engine.
type Option func(*Engine)

// WithGenerator attaches an LLM chain. A nil generator leaves the engine in
// data-only mode.
func WithGenerator(g Generator) Option {
	return func(e *Engine) { e.llm = g }
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithTopK overrides how many handbook segments retrieval returns.
func WithTopK(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.topK = k
		}
	}
}

// WithClock overrides the campus clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an engine over the given database. Call Reload before
// answering questions.
func NewEngine(store *storage.HotSwapDB, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		index: rag.NewBM25Index(log),
		log:   log.WithModule("chat"),
		topK:  3,
		now:   genai.CampusNow,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reload loads the module catalog and schedule from the current database and
// rebuilds the retrieval index. Called at startup and after every snapshot
// swap.
func (e *Engine) Reload(ctx context.Context) error {
	db := e.store.DB()
	if db == nil {
		return apperrors.ErrSnapshotMissing
	}

	modules, err := db.AllModules(ctx)
	if err != nil {
		return fmt.Errorf("load modules: %w", err)
	}
	entries, err := db.AllEntries(ctx)
	if err != nil {
		return fmt.Errorf("load schedule entries: %w", err)
	}
	segments, err := db.AllSegments(ctx)
	if err != nil {
		return fmt.Errorf("load handbook segments: %w", err)
	}
	if err := e.index.Initialize(segments); err != nil {
		return fmt.Errorf("build retrieval index: %w", err)
	}

	e.mu.Lock()
	e.modules = modules
	e.entries = entries
	e.mu.Unlock()

	if e.metrics != nil {
		e.metrics.SetDatasetRecords("modules", len(modules))
		e.metrics.SetDatasetRecords("segments", len(segments))
		e.metrics.SetDatasetRecords("schedule_entries", len(entries))
	}

	e.log.WithFields(map[string]any{
		"modules": len(modules),
		"entries": len(entries),
		"indexed": e.index.Count(),
	}).Info("datasets loaded")
	return nil
}

// snapshot returns the current datasets without holding the lock during
// resolution.
func (e *Engine) snapshot() (ingest.ModuleMap, []ingest.ScheduleEntry) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.modules, e.entries
}

// Ready reports whether datasets have been loaded.
func (e *Engine) Ready() bool {
	modules, _ := e.snapshot()
	return len(modules) > 0
}

// Answer resolves and answers one question. History carries prior user and
// assistant turns; old system messages are ignored.
func (e *Engine) Answer(ctx context.Context, question string, history []genai.Message) (*Answer, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	start := time.Now()

	resolved := e.resolve(ctx, question)
	answer := &Answer{
		Intent:     string(resolved.Intent),
		ModuleCode: resolved.ModuleCode,
	}

	if e.llm == nil || !e.llm.IsEnabled() {
		answer.Text = resolved.offline()
		e.recordChat(answer.Intent, "offline", time.Since(start))
		return answer, nil
	}

	prompt := genai.BuildSystemPrompt(e.now(), resolved.Context, question, genai.ListInstruction(resolved.List))
	text, err := e.llm.Chat(ctx, genai.BuildMessages(prompt, history, question))
	if err != nil {
		e.recordChat(answer.Intent, "error", time.Since(start))
		e.log.WithError(err).WithField("intent", answer.Intent).Error("answer generation failed")
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	answer.Text = text
	answer.Generated = true
	e.recordChat(answer.Intent, "success", time.Since(start))
	return answer, nil
}

func (e *Engine) recordChat(intent, status string, d time.Duration) {
	if e.metrics == nil {
		return
	}
	e.metrics.RecordChatRequest(intent, status, d.Seconds())
}

func (e *Engine) recordRetrieval(results []rag.SearchResult) {
	if e.metrics == nil || len(results) == 0 {
		return
	}
	e.metrics.RecordRetrievalHit(rag.ConfidenceBand(results[0].Confidence))
}
