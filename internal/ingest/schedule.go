package ingest

import (
	"regexp"
	"strings"

	"github.com/hsrw-ise/advisor-go/internal/logger"
)

var (
	semesterPattern  = regexp.MustCompile(`(\d)\.\s*Semester`)
	dayPattern       = regexp.MustCompile(`^(Monday|Tuesday|Wednesday|Thursday|Friday|Montag|Dienstag|Mittwoch|Donnerstag|Freitag)`)
	entryStartRegexp = regexp.MustCompile(`^(\d{2}:\d{2})\s+(\d{2}:\d{2})\s+(\d{4})\s+(.+)$`)
	blockDateRegexp  = regexp.MustCompile(`Block course:\s*(.+)`)
	roomCodeRegexp   = regexp.MustCompile(`\b(\d{1,2})\s+(\d{2})\s+(\d{3})\b`)
	bareRoomCode     = regexp.MustCompile(`^\d{1,2}\s+\d{2}\s+\d{3}$`)
	bareDatesRegexp  = regexp.MustCompile(`^[\d.,\s]+$`)
	numericLeadin    = regexp.MustCompile(`^\d+\s+\d{2}`)
)

// ScheduleParser is a single-pass stateful line classifier for the weekly
// class-schedule document. Each Parse call runs on fresh state; a parser
// instance is safe to reuse sequentially but not concurrently.
type ScheduleParser struct {
	log *logger.Logger
}

// NewScheduleParser creates a schedule parser that reports malformed lines
// through the given logger.
func NewScheduleParser(log *logger.Logger) *ScheduleParser {
	return &ScheduleParser{log: log.WithModule("schedule")}
}

// scheduleState is the accumulator folded over the line sequence. semester
// and day are sticky: once set by a marker line they apply to every
// following entry until the next marker.
type scheduleState struct {
	semester   int
	day        string
	pending    *ScheduleEntry
	pendingRaw string // entry-start line still missing its type code
	blockDates []string
	entries    []ScheduleEntry
}

// flush finalizes the pending entry, attaching accumulated block dates, and
// appends it to the output. Partial records never reach the output except
// through here.
func (s *scheduleState) flush() {
	if s.pending == nil {
		return
	}
	if len(s.blockDates) > 0 {
		var dates []string
		for _, chunk := range s.blockDates {
			for _, d := range strings.Split(chunk, ",") {
				if d = strings.TrimSpace(d); d != "" {
					dates = append(dates, d)
				}
			}
		}
		s.pending.BlockDates = strings.Join(dates, ", ")
	}
	s.entries = append(s.entries, *s.pending)
	s.pending = nil
}

// Parse classifies the schedule's text lines into schedule entries.
// Lines that match no recognized shape are skipped; entry-start lines
// without a type-code token are dropped with a diagnostic.
func (p *ScheduleParser) Parse(lines []string) []ScheduleEntry {
	st := &scheduleState{}

	for _, line := range lines {
		line = strings.TrimSpace(line)

		// Pagination footers carry "SEITE x VON y".
		if line == "" || strings.Contains(line, "SEITE") || strings.Contains(line, "VON") {
			continue
		}

		if m := semesterPattern.FindStringSubmatch(line); m != nil {
			p.dropHeldRaw(st)
			st.flush()
			st.semester = int(m[1][0] - '0')
			st.blockDates = nil
			continue
		}

		if m := dayPattern.FindStringSubmatch(line); m != nil {
			p.dropHeldRaw(st)
			st.flush()
			st.day = NormalizeDay(m[1])
			st.blockDates = nil
			continue
		}

		if m := entryStartRegexp.FindStringSubmatch(line); m != nil {
			p.dropHeldRaw(st)
			st.flush()
			st.blockDates = nil
			entry, ok := p.parseEntryStart(m, st.semester, st.day)
			if ok {
				st.pending = entry
			} else {
				// Multi-line module names can push the type code onto the
				// next line; hold the line and retry once merged.
				st.pendingRaw = line
			}
			continue
		}

		if st.pendingRaw != "" {
			merged := st.pendingRaw + " " + line
			st.pendingRaw = ""
			if m := entryStartRegexp.FindStringSubmatch(merged); m != nil {
				if entry, ok := p.parseEntryStart(m, st.semester, st.day); ok {
					st.pending = entry
					continue
				}
			}
			p.log.WithField("line", merged).Warn("entry line without type code, dropped")
			continue
		}

		if st.pending != nil {
			p.continueEntry(st, line)
		}
	}

	p.dropHeldRaw(st)
	st.flush()
	return st.entries
}

// dropHeldRaw reports and discards an entry-start line whose type code never
// arrived.
func (p *ScheduleParser) dropHeldRaw(st *scheduleState) {
	if st.pendingRaw == "" {
		return
	}
	p.log.WithField("line", st.pendingRaw).Warn("entry line without type code, dropped")
	st.pendingRaw = ""
}

// parseEntryStart parses the remainder of an entry-start line:
// ModuleName Type Professor Room [Building Floor RoomNumber].
func (p *ScheduleParser) parseEntryStart(m []string, semester int, day string) (*ScheduleEntry, bool) {
	rest := m[4]

	var typeCode, name, afterType string
	for _, tc := range TypeCodes {
		if before, after, found := strings.Cut(rest, " "+tc+" "); found {
			typeCode = tc
			name = strings.TrimSpace(before)
			afterType = after
			break
		}
	}
	if typeCode == "" {
		return nil, false
	}

	entry := &ScheduleEntry{
		Semester:   semester,
		Day:        day,
		StartTime:  m[1],
		EndTime:    m[2],
		ModuleCode: m[3],
		ModuleName: name,
		Type:       typeCode,
	}

	// A building/floor/room triple may sit anywhere after the type code;
	// strip it before the room-keyword scan so it cannot split the room name.
	if rc := roomCodeRegexp.FindStringSubmatch(afterType); rc != nil {
		entry.Building = rc[1]
		entry.Floor = rc[2]
		entry.RoomNumber = rc[3]
		afterType = strings.TrimSpace(roomCodeRegexp.ReplaceAllString(afterType, ""))
	}

	for _, kw := range RoomKeywords {
		if before, after, found := strings.Cut(afterType, kw); found {
			entry.Professor = strings.TrimSpace(before)
			entry.Room = strings.TrimSpace(kw + " " + strings.TrimSpace(after))
			return entry, true
		}
	}

	// No room keyword: the whole remainder is the professor.
	entry.Professor = strings.TrimSpace(afterType)
	entry.Room = "tba"
	return entry, true
}

// continueEntry routes a line that follows an open entry. The rules form a
// prioritized list; order is load-bearing, the first matching rule consumes
// the line. Unclear lines fall through to module-name continuation, the most
// common case in practice.
func (p *ScheduleParser) continueEntry(st *scheduleState, line string) {
	// Block course dates, possibly spread over several lines.
	if m := blockDateRegexp.FindStringSubmatch(line); m != nil {
		dates := strings.TrimSpace(m[1])
		if dates != "" && !strings.HasPrefix(dates, "(") {
			st.blockDates = append(st.blockDates, strings.TrimSuffix(dates, ","))
		}
		return
	}
	if len(st.blockDates) > 0 && bareDatesRegexp.MatchString(line) && strings.Contains(line, ".") {
		st.blockDates = append(st.blockDates, strings.TrimSuffix(line, ","))
		return
	}

	for _, tok := range noiseTokens {
		if strings.Contains(line, tok) {
			return
		}
	}

	// A trailing hyphen means the professor's surname broke across a PDF
	// line boundary; rejoin without a separator.
	if strings.HasSuffix(st.pending.Professor, "-") {
		st.pending.Professor += line
		return
	}

	if bareRoomCode.MatchString(line) {
		if rc := roomCodeRegexp.FindStringSubmatch(line); rc != nil && !st.pending.HasLocation() {
			st.pending.Building = rc[1]
			st.pending.Floor = rc[2]
			st.pending.RoomNumber = rc[3]
		}
		return
	}

	// A single short token while the professor field has no honorific yet is
	// most likely the rest of the name.
	if len(strings.Fields(line)) == 1 && len(st.pending.Professor) < 30 && !hasHonorific(st.pending.Professor) {
		st.pending.Professor += " " + line
		return
	}

	if len(line) > 2 && !looksLikeProfessor(line) && !numericLeadin.MatchString(line) {
		st.pending.ModuleName += " " + line
	}
}

func hasHonorific(professor string) bool {
	for _, h := range Honorifics {
		if strings.Contains(professor, h) {
			return true
		}
	}
	return false
}

func looksLikeProfessor(line string) bool {
	for _, prefix := range []string{"Prof.", "Mr.", "Ms.", "Dr.", "Block"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
