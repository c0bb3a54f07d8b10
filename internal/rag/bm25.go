// Package rag provides retrieval over handbook segments.
// Uses BM25 keyword search to pick the segments most relevant to a question
// before they are handed to the LLM as context.
package rag

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/crawlab-team/bm25"

	"github.com/hsrw-ise/advisor-go/internal/ingest"
	"github.com/hsrw-ise/advisor-go/internal/logger"
	"github.com/hsrw-ise/advisor-go/internal/stringutil"
)

// SearchResult represents a search result with confidence score.
// Confidence is derived from BM25 rank position, not semantic similarity.
type SearchResult struct {
	Code       string  // Handbook module code
	Title      string  // Module title
	Content    string  // Full segment text
	Confidence float32 // Rank-based confidence (0-1), higher = more relevant
}

// BM25Index provides keyword-based search over handbook segments.
type BM25Index struct {
	bm25Okapi   *bm25.BM25Okapi
	corpus      []string       // Segment content, one document per module
	docIDToCode map[int]string // Document index -> module code
	metadata    map[string]docMeta
	logger      *logger.Logger
	mu          sync.RWMutex
	initialized bool
}

// docMeta stores metadata for an indexed segment
type docMeta struct {
	Title   string
	Content string
}

// BM25Result represents a BM25 search result
type BM25Result struct {
	Code  string
	Title string
	Score float64 // BM25 score (higher is better)
	Rank  int     // Rank position (1-indexed)
}

// NewBM25Index creates a new BM25 index
func NewBM25Index(log *logger.Logger) *BM25Index {
	return &BM25Index{
		docIDToCode: make(map[int]string),
		metadata:    make(map[string]docMeta),
		logger:      log,
	}
}

// Initialize builds the BM25 index from handbook segments.
// Each segment becomes one document; the title is indexed together with the
// content so that title-only questions still rank the right module first.
func (idx *BM25Index) Initialize(segments []ingest.ModuleSegment) error {
	if idx == nil {
		return nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.corpus = nil
	idx.docIDToCode = make(map[int]string)
	idx.metadata = make(map[string]docMeta)
	idx.bm25Okapi = nil

	if len(segments) == 0 {
		idx.initialized = true
		return nil
	}

	var corpus []string
	docIndex := 0
	for _, seg := range segments {
		if strings.TrimSpace(seg.Content) == "" {
			continue
		}
		idx.metadata[seg.Code] = docMeta{
			Title:   seg.Title,
			Content: seg.Content,
		}
		corpus = append(corpus, seg.Title+"\n"+seg.Content)
		idx.docIDToCode[docIndex] = seg.Code
		docIndex++
	}

	if len(corpus) == 0 {
		idx.initialized = true
		return nil
	}

	idx.corpus = corpus

	// k1=1.5, b=0.75 are standard BM25 parameters
	bm25Okapi, err := bm25.NewBM25Okapi(corpus, tokenize, 1.5, 0.75, nil)
	if err != nil {
		return fmt.Errorf("failed to create BM25 index: %w", err)
	}
	idx.bm25Okapi = bm25Okapi
	idx.initialized = true

	idx.logger.WithField("docs", len(corpus)).Info("BM25 index initialized")
	return nil
}

// Search performs BM25 keyword search
// Returns results sorted by BM25 score (descending)
func (idx *BM25Index) Search(query string, topN int) ([]BM25Result, error) {
	if idx == nil || !idx.initialized || idx.bm25Okapi == nil {
		return nil, nil
	}

	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	tokenizedQuery := tokenize(query)
	if len(tokenizedQuery) == 0 {
		return nil, nil
	}

	scores, err := idx.bm25Okapi.GetScores(tokenizedQuery)
	if err != nil {
		return nil, fmt.Errorf("BM25 scoring failed: %w", err)
	}

	type scoredDoc struct {
		docID int
		score float64
	}
	var scoredDocs []scoredDoc
	for docID, score := range scores {
		if score > 0 {
			scoredDocs = append(scoredDocs, scoredDoc{docID: docID, score: score})
		}
	}

	sort.Slice(scoredDocs, func(i, j int) bool {
		return scoredDocs[i].score > scoredDocs[j].score
	})

	results := make([]BM25Result, 0, len(scoredDocs))
	for i, sd := range scoredDocs {
		code := idx.docIDToCode[sd.docID]
		if code == "" {
			continue
		}
		results = append(results, BM25Result{
			Code:  code,
			Title: idx.metadata[code].Title,
			Score: sd.score,
			Rank:  i + 1,
		})
	}

	if topN > 0 && len(results) > topN {
		results = results[:topN]
	}

	return results, nil
}

// SearchSegments performs BM25 search and returns full segments with
// confidence scores. This is the primary retrieval interface.
// Context parameter is for API compatibility (not used in BM25).
func (idx *BM25Index) SearchSegments(_ context.Context, query string, topN int) ([]SearchResult, error) {
	bm25Results, err := idx.Search(query, topN)
	if err != nil {
		return nil, err
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	results := make([]SearchResult, len(bm25Results))
	for i, r := range bm25Results {
		results[i] = SearchResult{
			Code:       r.Code,
			Title:      r.Title,
			Content:    idx.metadata[r.Code].Content,
			Confidence: computeRankConfidence(r.Rank),
		}
	}

	return results, nil
}

// computeRankConfidence calculates confidence score from BM25 rank.
// BM25 scores are unbounded and query-dependent, so we use rank as a proxy.
//
// Formula: 1 / (1 + 0.05 * rank)
//   - rank 1 → 0.95
//   - rank 5 → 0.80
//   - rank 10 → 0.67
//   - rank 20 → 0.50
func computeRankConfidence(rank int) float32 {
	if rank <= 0 {
		return 0
	}
	return float32(1.0 / (1.0 + 0.05*float64(rank)))
}

// ConfidenceBand buckets a confidence score for metrics.
func ConfidenceBand(confidence float32) string {
	switch {
	case confidence >= 0.9:
		return "high"
	case confidence >= 0.7:
		return "medium"
	default:
		return "low"
	}
}

// IsEnabled returns true if the index is initialized
func (idx *BM25Index) IsEnabled() bool {
	if idx == nil {
		return false
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.initialized && idx.bm25Okapi != nil
}

// Count returns the number of documents in the index
func (idx *BM25Index) Count() int {
	if idx == nil {
		return 0
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.corpus)
}

// tokenize splits text into lowercase word tokens.
// German umlauts are folded to ASCII so "Hörsaal" and "Hoersaal" match, and
// punctuation is treated as a separator. The handbook mixes English module
// text with German room and date fragments; a plain word tokenizer covers
// both.
func tokenize(text string) []string {
	text = strings.ToLower(stringutil.FoldUmlauts(text))

	var tokens []string
	var currentWord strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			currentWord.WriteRune(r)
		} else {
			if currentWord.Len() > 0 {
				tokens = append(tokens, currentWord.String())
				currentWord.Reset()
			}
		}
	}

	if currentWord.Len() > 0 {
		tokens = append(tokens, currentWord.String())
	}

	return tokens
}
