package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestNewWithWriter_Levels(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		debugSeen bool
	}{
		{
			name:      "Debug level emits debug records",
			level:     "debug",
			debugSeen: true,
		},
		{
			name:      "Info level drops debug records",
			level:     "info",
			debugSeen: false,
		},
		{
			name:      "Invalid level defaults to info",
			level:     "invalid",
			debugSeen: false,
		},
		{
			name:      "Empty level defaults to info",
			level:     "",
			debugSeen: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter(tt.level, &buf)
			if log == nil {
				t.Fatal("NewWithWriter() returned nil")
			}

			log.Debug("probe")
			if got := buf.Len() > 0; got != tt.debugSeen {
				t.Errorf("NewWithWriter(%q) debug emitted = %v, want %v", tt.level, got, tt.debugSeen)
			}
		})
	}
}

func TestLogger_WithModule(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithModule("ingest").Info("test message")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	if module, ok := logEntry["module"].(string); !ok || module != "ingest" {
		t.Errorf("WithModule() module = %v, want %q", logEntry["module"], "ingest")
	}
}

func TestLogger_WithRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithRequestID("req-123").Info("test message")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	if requestID, ok := logEntry["request_id"].(string); !ok || requestID != "req-123" {
		t.Errorf("WithRequestID() request_id = %v, want %q", logEntry["request_id"], "req-123")
	}
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithError(errors.New("boom")).Error("operation failed")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	if errField, ok := logEntry["error"].(string); !ok || errField != "boom" {
		t.Errorf("WithError() error = %v, want %q", logEntry["error"], "boom")
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Warn("test message")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	requiredFields := []string{"timestamp", "level", "message"}
	for _, field := range requiredFields {
		if _, ok := logEntry[field]; !ok {
			t.Errorf("JSON log missing required field %q", field)
		}
	}

	if logEntry["message"] != "test message" {
		t.Errorf("message = %v, want %q", logEntry["message"], "test message")
	}
	if logEntry["level"] != "warning" {
		t.Errorf("level = %v, want %q", logEntry["level"], "warning")
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	if log == nil {
		t.Fatal("Discard() returned nil")
	}
	log.WithModule("noop").Error("swallowed")
}
