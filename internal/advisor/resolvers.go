package advisor

import (
	"sort"
	"strings"
	"time"

	"github.com/hsrw-ise/advisor-go/internal/ingest"
)

// ScheduleStatus classifies why a catalog module has or lacks weekly
// sessions.
type ScheduleStatus string

// ScheduleStatus values.
const (
	// StatusScheduled means weekly sessions exist for the module's semester.
	StatusScheduled ScheduleStatus = "scheduled"
	// StatusUnscheduled means a regular-semester module has no sessions in
	// the schedule document.
	StatusUnscheduled ScheduleStatus = "unscheduled"
	// StatusSelfPaced marks W/K elective and key-competence modules, which
	// carry no fixed weekly slot by design.
	StatusSelfPaced ScheduleStatus = "self_paced"
)

// codeSegment extracts the semester identifier from a handbook code:
// "CI_3.02" -> "3", "CI_W.01" -> "W". Returns "" for malformed codes.
func codeSegment(code string) string {
	_, after, found := strings.Cut(code, "_")
	if !found {
		return ""
	}
	seg, _, _ := strings.Cut(after, ".")
	return seg
}

// ModulesFor lists the modules a student can take under the given filters.
// A student may take any module from the requested semester or an earlier
// one, as long as the season matches; W/K modules are offered only once the
// target semesters reach the elective range. The result is sorted
// "code: name" strings.
func ModulesFor(moduleMap ingest.ModuleMap, filters Filters) []string {
	season := filters.Season
	if filters.SemesterNum != 0 {
		season = SemesterSeason(filters.SemesterNum)
	}

	var targets []int
	switch season {
	case SeasonWinter:
		maxSem := filters.SemesterNum
		if maxSem == 0 {
			maxSem = WinterSemesters[len(WinterSemesters)-1]
		}
		for _, s := range WinterSemesters {
			if s <= maxSem {
				targets = append(targets, s)
			}
		}
	case SeasonSummer:
		maxSem := filters.SemesterNum
		if maxSem == 0 {
			maxSem = SummerSemesters[len(SummerSemesters)-1]
		}
		for _, s := range SummerSemesters {
			if s <= maxSem {
				targets = append(targets, s)
			}
		}
	default:
		if filters.SemesterNum != 0 {
			targets = []int{filters.SemesterNum}
		}
	}

	inTargets := func(n int) bool {
		for _, t := range targets {
			if t == n {
				return true
			}
		}
		return false
	}
	electivesOpen := false
	for _, t := range targets {
		for _, e := range ElectiveSemesters {
			if t == e {
				electivesOpen = true
			}
		}
	}

	var results []string
	for code, name := range moduleMap {
		seg := codeSegment(code)
		switch {
		case seg == "":
			continue
		case seg >= "1" && seg <= "9" && len(seg) == 1:
			if inTargets(int(seg[0] - '0')) {
				results = append(results, code+": "+name)
			}
		case seg == "W" || seg == "K":
			if electivesOpen {
				results = append(results, code+": "+name+" (Elective/Key Competence)")
			}
		}
	}

	sort.Strings(results)
	return results
}

// ScheduleForModule returns every session whose module name contains the
// given name, case-insensitively. Multiple session types per module are
// expected; all are returned unscored. The handbook code is accepted for
// interface parity but cannot narrow the search: the schedule keys sessions
// by their own 4-digit codes.
func ScheduleForModule(name string, entries []ingest.ScheduleEntry, _ string) []ingest.ScheduleEntry {
	needle := strings.ToLower(name)
	var results []ingest.ScheduleEntry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.ModuleName), needle) {
			results = append(results, e)
		}
	}
	return results
}

// ScheduleForDay returns the sessions for a semester on a weekday, checking
// first whether the semester runs in the current season. See
// ScheduleForDayAt.
func ScheduleForDay(semester int, day string, entries []ingest.ScheduleEntry) ([]ingest.ScheduleEntry, bool, Season) {
	return ScheduleForDayAt(semester, day, entries, time.Now())
}

// ScheduleForDayAt is ScheduleForDay with an explicit clock. When the
// semester is inactive this season it returns (nil, false, season) so the
// caller can explain the winter/summer mismatch instead of claiming "no
// classes today".
func ScheduleForDayAt(semester int, day string, entries []ingest.ScheduleEntry, now time.Time) ([]ingest.ScheduleEntry, bool, Season) {
	active, season := IsSemesterActiveAt(semester, now)
	if !active {
		return nil, false, season
	}

	dayNorm := ingest.NormalizeDay(day)
	var results []ingest.ScheduleEntry
	for _, e := range entries {
		if e.Semester == semester && e.Day == dayNorm {
			results = append(results, e)
		}
	}
	sortByStartTime(results)
	return results, true, season
}

// ScheduleForSemester groups a semester's sessions by weekday. All five
// teaching days are present as keys, each day sorted by start time.
func ScheduleForSemester(semester int, entries []ingest.ScheduleEntry) map[string][]ingest.ScheduleEntry {
	byDay := make(map[string][]ingest.ScheduleEntry, len(ingest.Weekdays))
	for _, day := range ingest.Weekdays {
		byDay[day] = []ingest.ScheduleEntry{}
	}
	for _, e := range entries {
		if e.Semester != semester {
			continue
		}
		if _, ok := byDay[e.Day]; ok {
			byDay[e.Day] = append(byDay[e.Day], e)
		}
	}
	for _, day := range ingest.Weekdays {
		sortByStartTime(byDay[day])
	}
	return byDay
}

// ScheduleStatusFor resolves the tri-state of a catalog module with respect
// to the weekly schedule.
func ScheduleStatusFor(code string, moduleMap ingest.ModuleMap, entries []ingest.ScheduleEntry) ScheduleStatus {
	seg := codeSegment(code)
	if seg == "W" || seg == "K" {
		return StatusSelfPaced
	}
	name, ok := moduleMap[code]
	if ok {
		if len(ScheduleForModule(name, entries, code)) > 0 {
			return StatusScheduled
		}
	}
	return StatusUnscheduled
}

// HH:MM strings sort correctly as text.
func sortByStartTime(entries []ingest.ScheduleEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StartTime < entries[j].StartTime
	})
}
