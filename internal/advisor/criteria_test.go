package advisor

import "testing"

func TestExtractCriteria(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     Filters
	}{
		{"none", "what is my schedule", Filters{}},
		{"ordinal word", "modules in the third semester", Filters{SemesterNum: 3}},
		{"ordinal suffix", "5th semester classes", Filters{SemesterNum: 5}},
		{"semester number form", "schedule for semester 4", Filters{SemesterNum: 4}},
		{"final semester", "what do I study in the final semester", Filters{SemesterNum: 7}},
		{"last semester", "last semester modules", Filters{SemesterNum: 7}},
		{"winter season", "winter semester modules", Filters{Season: SeasonWinter}},
		{"summer season", "what runs in summer", Filters{Season: SeasonSummer}},
		{"number and season", "semester 2 in summer", Filters{SemesterNum: 2, Season: SeasonSummer}},
		{"ordinal beats number form", "first semester or semester 3", Filters{SemesterNum: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractCriteria(tt.question); got != tt.want {
				t.Errorf("ExtractCriteria(%q) = %+v, want %+v", tt.question, got, tt.want)
			}
		})
	}
}
