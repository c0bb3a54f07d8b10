package advisor

import (
	"testing"

	"github.com/hsrw-ise/advisor-go/internal/ingest"
)

func testModuleMap() ingest.ModuleMap {
	return ingest.ModuleMap{
		"CI_1.04": "Fundamentals of Computer Science",
		"CI_3.02": "Signals and systems",
		"CI_3.05": "Data Engineering",
		"CI_5.01": "Data Science",
		"CI_W.02": "Autonomous Robotics",
	}
}

func TestMatchModule(t *testing.T) {
	tests := []struct {
		name     string
		question string
		wantCode string
		wantOK   bool
	}{
		{"exact title", "data science", "CI_5.01", true},
		{"exact beats shared word", "what is data science", "CI_5.01", true},
		{"substring", "tell me about signals and systems please", "CI_3.02", true},
		{"all words out of order", "science of data", "CI_5.01", true},
		{"single word", "robotics", "CI_W.02", true},
		{"no match", "quantum gravity", "", false},
		{"only stop words", "what is the module", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := MatchModule(tt.question, testModuleMap())
			if ok != tt.wantOK || code != tt.wantCode {
				t.Errorf("MatchModule(%q) = (%q, %v), want (%q, %v)",
					tt.question, code, ok, tt.wantCode, tt.wantOK)
			}
		})
	}
}

func TestMatchModule_DeterministicTieBreak(t *testing.T) {
	m := ingest.ModuleMap{
		"CI_2.01": "Engineering Mechanics",
		"CI_2.02": "Engineering Thermodynamics",
	}
	// "engineering" scores both titles identically; the lower code must win
	// every time.
	for i := 0; i < 10; i++ {
		code, ok := MatchModule("engineering", m)
		if !ok || code != "CI_2.01" {
			t.Fatalf("run %d: MatchModule = (%q, %v), want (CI_2.01, true)", i, code, ok)
		}
	}
}
