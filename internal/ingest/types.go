// Package ingest turns the text lines extracted from the university's
// schedule and module-handbook documents into structured records.
// The parsers are line-oriented: PDF extraction loses table geometry, so
// structure is recovered by classifying and reassembling individual lines.
package ingest

// ModuleMap maps a handbook module code (e.g. "CI_3.02") to its canonical
// title. The first accepted header for a code wins; later mentions (table of
// contents, cross references) never overwrite it.
type ModuleMap map[string]string

// ModuleSegment is the sealed content block of one handbook module: the
// header line plus everything up to the next accepted header.
type ModuleSegment struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ScheduleEntry represents one weekly recurring class session.
// ModuleCode is the 4-digit session code from the schedule table; it
// identifies the scheduled session, not the handbook catalog module.
// BlockDates holds the comma-joined block course dates, e.g.
// "29.09.25, 03.11.25", exactly as the dataset exports them.
type ScheduleEntry struct {
	Semester   int    `json:"semester"`
	Day        string `json:"day"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	ModuleCode string `json:"module_code"`
	ModuleName string `json:"module_name"`
	Type       string `json:"type"`
	Professor  string `json:"professor"`
	Room       string `json:"room,omitempty"`
	Building   string `json:"building,omitempty"`
	Floor      string `json:"floor,omitempty"`
	RoomNumber string `json:"room_number,omitempty"`
	BlockDates string `json:"block_dates,omitempty"`
}

// HasLocation reports whether the full building/floor/room triple was
// recovered for this entry.
func (e *ScheduleEntry) HasLocation() bool {
	return e.Building != "" && e.Floor != "" && e.RoomNumber != ""
}

// TypeCodes are the session type tokens that appear between the module name
// and the professor on an entry line. Order matters: "L&E" must be tested
// before "L" and "E".
var TypeCodes = []string{"L&E", "L", "E", "P", "PT", "SL"}

// ClassTypes explains the session type codes, used in prompts and API output.
var ClassTypes = map[string]string{
	"L":   "Lecture (Vorlesung)",
	"E":   "Exercise/Tutorial (Übung)",
	"P":   "Practical/Lab (Praktikum)",
	"L&E": "Combined Lecture and Exercise",
	"PT":  "Lab Project",
	"SL":  "Self-Learning",
}

// RoomKeywords anchor the professor/room split on an entry line: text before
// the keyword is the professor, the keyword and everything after is the room.
var RoomKeywords = []string{
	"Hörsaal",
	"Seminarraum",
	"Labor",
	"RAG",
	"Cloud Resilience Lab",
	"IOT Lab",
	"E-Technik Labor",
	"d i g i t a l / o n l i n e",
	"tba",
}

// Honorifics mark a professor field as complete. A short bare continuation
// line is only appended to the professor while none of these is present.
// Exported so deployments can extend it for faculty whose names carry other
// titles.
var Honorifics = []string{"Prof.", "Mr.", "Ms.", "Dr."}

// noiseTokens are schedule lines that carry no entry data.
var noiseTokens = []string{"Start:", "biweekly", "weekly", "Gruppe", "SEITE", "VON"}
