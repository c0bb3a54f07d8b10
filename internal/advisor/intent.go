package advisor

import "strings"

// Intent is the coarse question category that decides which data source
// answers it.
type Intent string

// Intent values, in matching priority order.
const (
	IntentSchedule    Intent = "schedule"
	IntentModulesList Intent = "modules_list"
	IntentModuleInfo  Intent = "module_info"
	IntentGeneral     Intent = "general"
)

// IntentResult carries the classified intent plus hints for the router about
// which follow-up criteria the question still needs.
type IntentResult struct {
	Intent        Intent
	NeedsSemester bool
	NeedsDay      bool
}

// "block" is included so "are there any block dates?" routes to schedule.
var scheduleIndicators = []string{
	"schedule", "class", "classes", "when", "time", "timing", "today",
	"tomorrow", "day", "monday", "tuesday", "wednesday", "thursday", "friday",
	"what day", "which day", "room", "where", "professor", "instructor", "teacher",
	"block", "block dates",
}

var listIndicators = []string{
	"what modules", "what subjects", "what courses", "list of", "modules do i have",
	"subjects do i have", "courses do i have", "what do i study", "my modules",
	"my subjects", "my courses", "curriculum",
}

var infoIndicators = []string{
	"tell me about", "what is", "who teaches", "credits", "ects", "prerequisites",
	"entry requirements", "description", "workload", "content", "objectives",
}

var ordinalHints = []string{"1st", "2nd", "3rd", "4th", "5th", "6th", "7th"}

var dayHints = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

func containsAny(s string, indicators []string) bool {
	for _, ind := range indicators {
		if strings.Contains(s, ind) {
			return true
		}
	}
	return false
}

// ClassifyIntent categorizes a question by testing the indicator sets in
// fixed priority order: schedule beats list beats info. A question holding
// both a day name and "tell me about" is a schedule question.
func ClassifyIntent(question string) IntentResult {
	q := strings.ToLower(question)

	switch {
	case containsAny(q, scheduleIndicators):
		return IntentResult{
			Intent:        IntentSchedule,
			NeedsSemester: strings.Contains(q, "semester") || containsAny(q, ordinalHints),
			NeedsDay:      strings.Contains(q, "today") || containsAny(q, dayHints),
		}
	case containsAny(q, listIndicators):
		return IntentResult{Intent: IntentModulesList, NeedsSemester: true}
	case containsAny(q, infoIndicators):
		return IntentResult{Intent: IntentModuleInfo}
	default:
		return IntentResult{Intent: IntentGeneral}
	}
}
