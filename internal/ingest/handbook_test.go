package ingest

import (
	"strings"
	"testing"
)

func TestIsValidHeader(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		title string
		want  bool
	}{
		{"real header", "CI_3.02 Signals and systems", "Signals and systems", true},
		{"toc leader dots", "CI_1.01 Fundamentals of CS ....... 4", "Fundamentals of CS ....... 4", false},
		{"workload keyword", "CI_1.01 Workload and credits", "Workload and credits", false},
		{"hours keyword", "CI_1.01 150 h contact time", "150 h contact time", false},
		{"table stats row", "CI_1.01 4 C 5", "4 C 5", false},
		{"lowercase start", "CI_1.01 describes the examination", "describes the examination", false},
		{"quote start", `CI_1.01 "Lernziele"`, `"Lernziele"`, false},
		{"too short", "CI_1.01 Lab", "Lab", false},
		{"trailing digit", "CI_1.01 Data Science 5", "Data Science 5", false},
		{"exam jargon", "CI_1.01 Exam written 90 min graded", "Exam written 90 min graded", false},
		{"empty title", "CI_1.01 ", "", false},
		{"elective code", "CI_W.02 Autonomous Robotics", "Autonomous Robotics", true},
		{"key competence code", "CI_K.01 Scientific Writing", "Scientific Writing", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isValidHeader(tt.line, tt.title); got != tt.want {
				t.Errorf("isValidHeader(%q, %q) = %v, want %v", tt.line, tt.title, got, tt.want)
			}
		})
	}
}

func TestSegmentHandbook(t *testing.T) {
	lines := []string{
		"Module Handbook Industrial Engineering",
		"CI_1.04 Fundamentals of Computer Science ....... 12",
		"",
		"CI_1.04 Fundamentals of Computer Science",
		"Code CI_1.04",
		"Workload 150 h",
		"The module introduces algorithms and data structures.",
		"CI_3.02 Signals and systems",
		"Continuous and discrete signals, LTI systems, Fourier analysis.",
	}

	moduleMap, segments := SegmentHandbook(lines)

	if len(moduleMap) != 2 {
		t.Fatalf("got %d modules, want 2: %v", len(moduleMap), moduleMap)
	}
	if moduleMap["CI_1.04"] != "Fundamentals of Computer Science" {
		t.Errorf("CI_1.04 = %q", moduleMap["CI_1.04"])
	}
	if moduleMap["CI_3.02"] != "Signals and systems" {
		t.Errorf("CI_3.02 = %q", moduleMap["CI_3.02"])
	}

	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}
	first := segments[0]
	if first.Code != "CI_1.04" {
		t.Errorf("first segment code = %q", first.Code)
	}
	// Metadata rows matching the code pattern stay inside the segment body.
	for _, want := range []string{"Code CI_1.04", "Workload 150 h", "algorithms and data structures"} {
		if !strings.Contains(first.Content, want) {
			t.Errorf("first segment missing %q:\n%s", want, first.Content)
		}
	}
	if strings.Contains(first.Content, "Fourier") {
		t.Error("content of the next module leaked into the first segment")
	}
	if segments[1].Code != "CI_3.02" || !strings.Contains(segments[1].Content, "Fourier analysis") {
		t.Errorf("second segment = %+v", segments[1])
	}
}

func TestSegmentHandbook_FirstHeaderWins(t *testing.T) {
	lines := []string{
		"CI_3.02 Signals and systems",
		"Original content.",
		"CI_3.02 Signals and systems revisited",
		"Cross-referenced content.",
	}

	moduleMap, segments := SegmentHandbook(lines)

	if moduleMap["CI_3.02"] != "Signals and systems" {
		t.Errorf("later header overwrote title: %q", moduleMap["CI_3.02"])
	}
	if len(segments) != 2 {
		t.Errorf("both occurrences should seal segments, got %d", len(segments))
	}
}

func TestSegmentHandbook_NoiseBeforeFirstHeader(t *testing.T) {
	lines := []string{
		"Preamble text with no module code.",
		"CI_1.04 Fundamentals of Computer Science ....... 12",
	}

	moduleMap, segments := SegmentHandbook(lines)
	if len(moduleMap) != 0 || len(segments) != 0 {
		t.Errorf("got %d modules, %d segments from pure noise", len(moduleMap), len(segments))
	}
}
