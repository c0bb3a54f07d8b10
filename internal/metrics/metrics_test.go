package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNew(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	if m == nil {
		t.Fatal("New() returned nil")
	}

	// Verify all metric fields are initialized
	if m.DatasetRecords == nil {
		t.Error("DatasetRecords is nil")
	}
	if m.SnapshotSwapsTotal == nil {
		t.Error("SnapshotSwapsTotal is nil")
	}
	if m.ChatRequestsTotal == nil {
		t.Error("ChatRequestsTotal is nil")
	}
	if m.ChatDurationSeconds == nil {
		t.Error("ChatDurationSeconds is nil")
	}
	if m.ProviderRequestsTotal == nil {
		t.Error("ProviderRequestsTotal is nil")
	}
	if m.RetrievalHitsTotal == nil {
		t.Error("RetrievalHitsTotal is nil")
	}
	if m.HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal is nil")
	}
	if m.HTTPErrorsTotal == nil {
		t.Error("HTTPErrorsTotal is nil")
	}
}

func TestRecordDatasetMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.SetDatasetRecords("modules", 42)
	m.SetDatasetRecords("schedule_entries", 120)
	m.RecordSnapshotSwap("success")
	m.RecordSnapshotSwap("error")
}

func TestRecordChatRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordChatRequest("schedule", "success", 0.8)
	m.RecordChatRequest("general", "error", 12.0)
	m.RecordProviderRequest("ollama", "success", 3.2)
	m.RecordProviderRequest("gemini", "timeout", 60.0)
	m.RecordRetrievalHit("high")
}

func TestRecordHTTPRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordHTTPRequest("/api/chat", "200", 0.3)
	m.RecordHTTPError("bad_request", "/api/chat")

	// Metrics must be collectable without duplicate registration errors
	if _, err := registry.Gather(); err != nil {
		t.Fatalf("Gather() failed: %v", err)
	}
}
