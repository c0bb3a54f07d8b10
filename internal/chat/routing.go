package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hsrw-ise/advisor-go/internal/advisor"
	"github.com/hsrw-ise/advisor-go/internal/genai"
	"github.com/hsrw-ise/advisor-go/internal/ingest"
	"github.com/hsrw-ise/advisor-go/internal/sliceutil"
)

// resolved is the outcome of routing one question: the context block handed
// to the LLM, plus an optional verbatim module list.
type resolved struct {
	Intent     advisor.Intent
	Context    string
	List       []string
	ModuleCode string
}

// offline renders a plain answer from the resolved data for deployments
// without an LLM. Lists come back verbatim; otherwise the raw context block
// is the best available answer.
func (r resolved) offline() string {
	if len(r.List) > 0 {
		return strings.Join(r.List, "\n")
	}
	if strings.TrimSpace(r.Context) != "" {
		return r.Context
	}
	return "i don't have that in the university documents"
}

// dayWords maps day mentions, English and German, to canonical day names.
// Ordered so that a question naming two days resolves deterministically to
// the earlier one.
var dayWords = []struct{ word, day string }{
	{"monday", "Monday"}, {"montag", "Monday"},
	{"tuesday", "Tuesday"}, {"dienstag", "Tuesday"},
	{"wednesday", "Wednesday"}, {"mittwoch", "Wednesday"},
	{"thursday", "Thursday"}, {"donnerstag", "Thursday"},
	{"friday", "Friday"}, {"freitag", "Friday"},
}

// resolve routes the question by intent and builds the context block.
func (e *Engine) resolve(ctx context.Context, question string) resolved {
	modules, entries := e.snapshot()
	intent := advisor.ClassifyIntent(question)

	switch intent.Intent {
	case advisor.IntentSchedule:
		return e.resolveSchedule(question, modules, entries)
	case advisor.IntentModulesList:
		return e.resolveModulesList(question, modules)
	case advisor.IntentModuleInfo:
		return e.resolveModuleInfo(ctx, question, modules, entries)
	default:
		return resolved{
			Intent:  advisor.IntentGeneral,
			Context: e.retrieveContext(ctx, question),
		}
	}
}

// resolveSchedule answers when/where questions. A module mention resolves to
// that module's sessions; otherwise the day and semester are extracted and
// the semester's day plan is looked up, with the winter/summer season check.
func (e *Engine) resolveSchedule(question string, modules ingest.ModuleMap, entries []ingest.ScheduleEntry) resolved {
	r := resolved{Intent: advisor.IntentSchedule}

	if code, ok := advisor.MatchModule(question, modules); ok {
		r.ModuleCode = code
		name := modules[code]
		sessions := moduleSessions(name, entries, code)

		if len(sessions) > 0 {
			r.Context = fmt.Sprintf(`[OFFICIAL CLASS SCHEDULE DATA]
Module: %s
Schedule Details:
%s

IMPORTANT: Use this data to answer the user's question. Tell them the exact day, time, professor, room, and type of class.`, name, renderSessions(sessions))
			return r
		}

		r.Context = fmt.Sprintf("[SYSTEM]: Module '%s' found in catalog but no schedule data available. Inform the user to check with the department.", name)
		return r
	}

	day := e.extractDay(question)
	filters := advisor.ExtractCriteria(question)

	if filters.SemesterNum == 0 {
		r.Context = "[SYSTEM]: ask which semester they're in to provide the correct schedule."
		return r
	}

	sessions, active, season := advisor.ScheduleForDayAt(filters.SemesterNum, day, entries, e.now())

	switch {
	case !active:
		other := advisor.SeasonSummer
		seasonSems := "2, 4, 6"
		if season == advisor.SeasonSummer {
			other = advisor.SeasonWinter
		} else {
			seasonSems = "1, 3, 5, 7"
		}
		r.Context = fmt.Sprintf(`[SEMESTER_MISMATCH]
the student is in semester %d, which runs in the %s semester.
current season: %s
%s semesters: %s

explain this clearly and wish them a good break. be friendly but concise.`,
			filters.SemesterNum, other, season, season, seasonSems)

	case len(sessions) > 0:
		r.Context = fmt.Sprintf(`[OFFICIAL CLASS SCHEDULE FOR %s]
semester %d schedule:
%s

present this clearly, one line per class with day, time, module, professor, and room. include class type.`,
			strings.ToUpper(day), filters.SemesterNum, renderSessions(sessions))

	default:
		r.Context = fmt.Sprintf(`[SCHEDULE_INFO]
semester %d has no classes on %s.
tell the student they're free today. be friendly.`, filters.SemesterNum, day)
	}

	return r
}

// resolveModulesList builds the verbatim module list for a semester or
// season. The list bypasses the LLM's memory entirely.
func (e *Engine) resolveModulesList(question string, modules ingest.ModuleMap) resolved {
	r := resolved{Intent: advisor.IntentModulesList}
	filters := advisor.ExtractCriteria(question)

	if filters.SemesterNum == 0 && filters.Season == "" {
		r.Context = "[SYSTEM]: ask which semester they're in."
		return r
	}

	list := advisor.ModulesFor(modules, filters)
	if len(list) == 0 {
		r.Context = "[SYSTEM]: no modules found for specified criteria."
		return r
	}

	r.List = list
	label := "requested"
	if filters.SemesterNum != 0 {
		label = fmt.Sprintf("%d", filters.SemesterNum)
	}
	r.Context = fmt.Sprintf(`[MODULE_LIST]
here are all modules for semester %s:

%s

present this as a clean numbered list. no additional commentary unless asked.`, label, strings.Join(list, "\n"))
	return r
}

// resolveModuleInfo answers "tell me about X" questions with retrieved
// handbook text, appending the module's sessions when the question also asks
// for timing.
func (e *Engine) resolveModuleInfo(ctx context.Context, question string, modules ingest.ModuleMap, entries []ingest.ScheduleEntry) resolved {
	r := resolved{Intent: advisor.IntentModuleInfo}

	code, ok := advisor.MatchModule(question, modules)
	if !ok {
		r.Context = e.retrieveContext(ctx, question)
		return r
	}

	r.ModuleCode = code
	name := modules[code]

	results, err := e.index.SearchSegments(ctx, question, e.topK)
	if err != nil {
		e.log.WithError(err).Warn("handbook retrieval failed")
	}
	e.recordRetrieval(results)

	docs := make([]string, 0, len(results))
	for _, res := range results {
		docs = append(docs, res.Content)
	}
	r.Context = genai.ModuleDetails(code, name, docs)

	q := strings.ToLower(question)
	if strings.Contains(q, "when") || strings.Contains(q, "schedule") ||
		strings.Contains(q, "time") || strings.Contains(q, "day") {
		if sessions := moduleSessions(name, entries, code); len(sessions) > 0 {
			r.Context += fmt.Sprintf(`

CLASS SCHEDULE FOR THIS MODULE:
%s

IMPORTANT: Include this schedule information in your response.`, renderSessions(sessions))
		}
	}
	return r
}

// retrieveContext joins the top retrieved handbook segments for general
// questions.
func (e *Engine) retrieveContext(ctx context.Context, question string) string {
	results, err := e.index.SearchSegments(ctx, question, e.topK)
	if err != nil {
		e.log.WithError(err).Warn("handbook retrieval failed")
		return ""
	}
	e.recordRetrieval(results)

	docs := make([]string, 0, len(results))
	for _, r := range results {
		docs = append(docs, r.Content)
	}
	return strings.Join(docs, "\n\n---\n\n")
}

// extractDay finds the day the question asks about. "today" and questions
// without a day mention use the current campus weekday.
func (e *Engine) extractDay(question string) string {
	q := strings.ToLower(question)
	if strings.Contains(q, "today") {
		return e.now().Format("Monday")
	}
	for _, dw := range dayWords {
		if strings.Contains(q, dw.word) {
			return dw.day
		}
	}
	return e.now().Format("Monday")
}

// moduleSessions returns a module's sessions with repeated rows collapsed.
// The parser can emit the same session twice when a schedule page repeats a
// table header mid-entry.
func moduleSessions(name string, entries []ingest.ScheduleEntry, code string) []ingest.ScheduleEntry {
	sessions := advisor.ScheduleForModule(name, entries, code)
	return sliceutil.Deduplicate(sessions, func(s ingest.ScheduleEntry) string {
		return fmt.Sprintf("%d|%s|%s|%s|%s", s.Semester, s.Day, s.StartTime, s.Type, s.ModuleCode)
	})
}

// renderSessions renders schedule entries as indented JSON for the prompt.
func renderSessions(sessions []ingest.ScheduleEntry) string {
	b, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}
