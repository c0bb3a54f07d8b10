// Package advisor resolves free-text student questions into precise lookups
// against the structured datasets built by the ingest package. Every function
// here is total and deterministic: no-match is an empty result, never an
// error, and nothing depends on LLM or retrieval quality.
package advisor

import "time"

// Season is the academic season gating which semesters currently run.
type Season string

// Season values.
const (
	SeasonWinter Season = "Winter"
	SeasonSummer Season = "Summer"
)

// Semester-to-season partition of the ISE curriculum.
var (
	WinterSemesters = []int{1, 3, 5, 7}
	SummerSemesters = []int{2, 4, 6}

	// ElectiveSemesters are the semesters in which W/K modules are offered.
	ElectiveSemesters = []int{4, 5}
)

// CurrentSeason returns the season for a point in time: October through
// March is the winter semester, April through September the summer semester.
func CurrentSeason(now time.Time) Season {
	month := int(now.Month())
	if month >= 10 || month <= 3 {
		return SeasonWinter
	}
	return SeasonSummer
}

// SemesterSeason returns the season a semester number belongs to, or "" for
// numbers outside 1-7.
func SemesterSeason(semester int) Season {
	for _, s := range WinterSemesters {
		if s == semester {
			return SeasonWinter
		}
	}
	for _, s := range SummerSemesters {
		if s == semester {
			return SeasonSummer
		}
	}
	return ""
}

// IsSemesterActiveAt reports whether the semester has classes in the season
// containing now, and which season that is.
func IsSemesterActiveAt(semester int, now time.Time) (bool, Season) {
	season := CurrentSeason(now)
	return SemesterSeason(semester) == season, season
}
