package advisor

import "testing"

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     IntentResult
	}{
		{
			"plain schedule",
			"What is my schedule?",
			IntentResult{Intent: IntentSchedule},
		},
		{
			"schedule with day",
			"What classes do I have on Monday?",
			IntentResult{Intent: IntentSchedule, NeedsDay: true},
		},
		{
			"schedule with semester and day",
			"What classes does semester 3 have today?",
			IntentResult{Intent: IntentSchedule, NeedsSemester: true, NeedsDay: true},
		},
		{
			"ordinal semester hint",
			"When do 5th semester lectures start?",
			IntentResult{Intent: IntentSchedule, NeedsSemester: true},
		},
		{
			"day beats tell-me-about",
			"Tell me about Tuesday",
			IntentResult{Intent: IntentSchedule, NeedsDay: true},
		},
		{
			"block dates",
			"Are there any block dates?",
			IntentResult{Intent: IntentSchedule},
		},
		{
			"module list",
			"What modules do I have?",
			IntentResult{Intent: IntentModulesList, NeedsSemester: true},
		},
		{
			"curriculum",
			"Show me the curriculum",
			IntentResult{Intent: IntentModulesList, NeedsSemester: true},
		},
		{
			"module info",
			"Tell me about signals and systems",
			IntentResult{Intent: IntentModuleInfo},
		},
		{
			"ects question",
			"How many ECTS does mathematics give?",
			IntentResult{Intent: IntentModuleInfo},
		},
		{
			"general",
			"Hello there",
			IntentResult{Intent: IntentGeneral},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyIntent(tt.question); got != tt.want {
				t.Errorf("ClassifyIntent(%q) = %+v, want %+v", tt.question, got, tt.want)
			}
		})
	}
}
