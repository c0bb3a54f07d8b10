package rag

import (
	"context"
	"reflect"
	"testing"

	"github.com/hsrw-ise/advisor-go/internal/ingest"
	"github.com/hsrw-ise/advisor-go/internal/logger"
)

func testSegments() []ingest.ModuleSegment {
	return []ingest.ModuleSegment{
		{
			Code:    "CI_1.01",
			Title:   "Mathematics 1",
			Content: "CI_1.01 Mathematics 1\nLinear algebra, vectors, matrices and complex numbers.",
		},
		{
			Code:    "CI_3.02",
			Title:   "Software Engineering",
			Content: "CI_3.02 Software Engineering\nRequirements engineering, UML, design patterns and testing.",
		},
		{
			Code:    "CI_5.04",
			Title:   "Communication Networks",
			Content: "CI_5.04 Communication Networks\nOSI model, routing, TCP/IP and network security. Hörsaal exercises.",
		},
	}
}

func newTestIndex(t *testing.T) *BM25Index {
	t.Helper()
	idx := NewBM25Index(logger.Discard())
	if err := idx.Initialize(testSegments()); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	return idx
}

func TestInitialize(t *testing.T) {
	idx := newTestIndex(t)

	if !idx.IsEnabled() {
		t.Error("IsEnabled() = false after Initialize")
	}
	if idx.Count() != 3 {
		t.Errorf("Count() = %d, want 3", idx.Count())
	}
}

func TestInitialize_Empty(t *testing.T) {
	idx := NewBM25Index(logger.Discard())
	if err := idx.Initialize(nil); err != nil {
		t.Fatalf("Initialize(nil) failed: %v", err)
	}

	results, err := idx.Search("mathematics", 5)
	if err != nil {
		t.Fatalf("Search() on empty index failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search() on empty index returned %d results", len(results))
	}
}

func TestSearch_RanksRelevantFirst(t *testing.T) {
	idx := newTestIndex(t)

	results, err := idx.Search("design patterns and testing", 3)
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("Search() returned no results")
	}
	if results[0].Code != "CI_3.02" {
		t.Errorf("top result = %s, want CI_3.02", results[0].Code)
	}
	if results[0].Rank != 1 {
		t.Errorf("top result rank = %d, want 1", results[0].Rank)
	}
}

func TestSearch_UmlautFolding(t *testing.T) {
	idx := newTestIndex(t)

	// "Hoersaal" must match the indexed "Hörsaal"
	results, err := idx.Search("Hoersaal", 3)
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("Search() with folded umlaut returned no results")
	}
	if results[0].Code != "CI_5.04" {
		t.Errorf("top result = %s, want CI_5.04", results[0].Code)
	}
}

func TestSearch_BlankQuery(t *testing.T) {
	idx := newTestIndex(t)

	results, err := idx.Search("   ", 5)
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if results != nil {
		t.Errorf("Search() on blank query = %v, want nil", results)
	}
}

func TestSearchSegments_ConfidenceAndContent(t *testing.T) {
	idx := newTestIndex(t)

	results, err := idx.SearchSegments(context.Background(), "routing network security", 2)
	if err != nil {
		t.Fatalf("SearchSegments() failed: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("SearchSegments() returned no results")
	}

	top := results[0]
	if top.Code != "CI_5.04" {
		t.Errorf("top result = %s, want CI_5.04", top.Code)
	}
	if top.Content == "" {
		t.Error("top result carries no segment content")
	}
	if top.Confidence <= 0.9 {
		t.Errorf("rank-1 confidence = %f, want > 0.9", top.Confidence)
	}
}

func TestComputeRankConfidence(t *testing.T) {
	tests := []struct {
		rank int
		want float32
	}{
		{1, float32(1.0 / 1.05)},
		{5, float32(1.0 / 1.25)},
		{20, 0.5},
		{0, 0},
		{-3, 0},
	}

	for _, tt := range tests {
		if got := computeRankConfidence(tt.rank); got != tt.want {
			t.Errorf("computeRankConfidence(%d) = %f, want %f", tt.rank, got, tt.want)
		}
	}
}

func TestConfidenceBand(t *testing.T) {
	tests := []struct {
		confidence float32
		want       string
	}{
		{0.95, "high"},
		{0.8, "medium"},
		{0.5, "low"},
	}

	for _, tt := range tests {
		if got := ConfidenceBand(tt.confidence); got != tt.want {
			t.Errorf("ConfidenceBand(%f) = %q, want %q", tt.confidence, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("Hörsaal 1, TCP/IP-Routing!")
	want := []string{"hoersaal", "1", "tcp", "ip", "routing"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokenize() = %v, want %v", got, want)
	}
}
