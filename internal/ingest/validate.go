package ingest

import "strings"

// Report summarizes data quality of an ingestion run. Validation only
// observes: it never mutates or discards entries.
type Report struct {
	TotalEntries    int      `json:"total_entries"`
	Incomplete      int      `json:"incomplete_entries"`
	MissingLocation int      `json:"missing_location"`
	SessionCodes    int      `json:"unique_session_codes"`
	Modules         int      `json:"catalog_modules"`
	IncompleteNames []string `json:"incomplete_names,omitempty"`
}

// Clean reports whether no quality issues were found.
func (r Report) Clean() bool {
	return r.Incomplete == 0 && r.MissingLocation == 0
}

// Validate checks the structured output for completeness. Entries missing a
// required field (semester, day, times, session code, name, professor) and
// entries without a full building/floor/room triple are counted for
// diagnostic reporting.
func Validate(entries []ScheduleEntry, moduleMap ModuleMap) Report {
	report := Report{
		TotalEntries: len(entries),
		Modules:      len(moduleMap),
	}

	codes := make(map[string]struct{})
	for i := range entries {
		e := &entries[i]

		if !e.HasLocation() {
			report.MissingLocation++
		}

		var missing []string
		if e.Semester == 0 {
			missing = append(missing, "semester")
		}
		if e.Day == "" {
			missing = append(missing, "day")
		}
		if e.StartTime == "" {
			missing = append(missing, "start_time")
		}
		if e.EndTime == "" {
			missing = append(missing, "end_time")
		}
		if e.ModuleCode == "" {
			missing = append(missing, "module_code")
		}
		if e.ModuleName == "" {
			missing = append(missing, "module_name")
		}
		if e.Professor == "" {
			missing = append(missing, "professor")
		}
		if len(missing) > 0 {
			report.Incomplete++
			name := e.ModuleName
			if name == "" {
				name = "unknown"
			}
			report.IncompleteNames = append(report.IncompleteNames,
				name+" (missing "+strings.Join(missing, ", ")+")")
		}

		if e.ModuleCode != "" {
			codes[e.ModuleCode] = struct{}{}
		}
	}
	report.SessionCodes = len(codes)

	return report
}
