package ingest

import (
	"reflect"
	"testing"

	"github.com/hsrw-ise/advisor-go/internal/logger"
)

func parseLines(t *testing.T, lines []string) []ScheduleEntry {
	t.Helper()
	return NewScheduleParser(logger.Discard()).Parse(lines)
}

func TestParse_CompleteEntry(t *testing.T) {
	entries := parseLines(t, []string{
		"3. Semester",
		"Montag",
		"08:30 10:00 3001 Signals and Systems L Prof. Dr. Strumpen Hörsaal 1 2 01 105",
	})

	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	want := ScheduleEntry{
		Semester:   3,
		Day:        "Monday",
		StartTime:  "08:30",
		EndTime:    "10:00",
		ModuleCode: "3001",
		ModuleName: "Signals and Systems",
		Type:       "L",
		Professor:  "Prof. Dr. Strumpen",
		Room:       "Hörsaal 1",
		Building:   "2",
		Floor:      "01",
		RoomNumber: "105",
	}
	if !reflect.DeepEqual(entries[0], want) {
		t.Errorf("entry = %+v\nwant    %+v", entries[0], want)
	}
	if !entries[0].HasLocation() {
		t.Error("entry with full room code should report a location")
	}
}

func TestParse_StickySemesterAndDay(t *testing.T) {
	entries := parseLines(t, []string{
		"1. Semester",
		"Monday",
		"08:30 10:00 1001 Engineering Mathematics L Prof. Dr. Kamps Hörsaal 2",
		"10:15 11:45 1003 Applied Physics E Dr. Meier",
		"Dienstag",
		"08:30 10:00 1005 Engineering Chemistry L Prof. Dr. Wolf Seminarraum 3",
	})

	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for i, e := range entries {
		if e.Semester != 1 {
			t.Errorf("entry %d semester = %d, want 1", i, e.Semester)
		}
	}
	if entries[0].Day != "Monday" || entries[1].Day != "Monday" {
		t.Errorf("first two entries should stay on Monday: %q, %q", entries[0].Day, entries[1].Day)
	}
	if entries[2].Day != "Tuesday" {
		t.Errorf("German day marker not normalized: %q", entries[2].Day)
	}
	// No room keyword on the second line means the professor owns the rest.
	if entries[1].Professor != "Dr. Meier" || entries[1].Room != "tba" {
		t.Errorf("entry without room = %q / %q", entries[1].Professor, entries[1].Room)
	}
}

func TestParse_MultiLineModuleName(t *testing.T) {
	entries := parseLines(t, []string{
		"2. Semester",
		"Mittwoch",
		"08:30 10:00 2007 Object Oriented",
		"Programming L Prof. Dr. Hoffmann Seminarraum 2",
	})

	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.ModuleName != "Object Oriented Programming" {
		t.Errorf("ModuleName = %q", e.ModuleName)
	}
	if e.Professor != "Prof. Dr. Hoffmann" || e.Room != "Seminarraum 2" {
		t.Errorf("professor/room = %q / %q", e.Professor, e.Room)
	}
}

func TestParse_SplitProfessorName(t *testing.T) {
	entries := parseLines(t, []string{
		"5. Semester",
		"Donnerstag",
		"14:15 15:45 5002 IT Security L Prof. Dr. Große-",
		"Kampmann",
	})

	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Professor != "Prof. Dr. Große-Kampmann" {
		t.Errorf("Professor = %q", entries[0].Professor)
	}
}

func TestParse_BlockDates(t *testing.T) {
	entries := parseLines(t, []string{
		"6. Semester",
		"Freitag",
		"09:00 16:00 6042 Autonomous Robotics P Prof. Dr. Ada Labor Robotik",
		"Block course: 10.10., 17.10.,",
		"24.10., 31.10.",
	})

	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if want := "10.10., 17.10., 24.10., 31.10."; entries[0].BlockDates != want {
		t.Errorf("BlockDates = %q, want %q", entries[0].BlockDates, want)
	}
	if entries[0].Room != "Labor Robotik" {
		t.Errorf("Room = %q", entries[0].Room)
	}
}

func TestParse_BlockDatesKeepRepeats(t *testing.T) {
	// The joined string mirrors the document verbatim; a date listed twice
	// stays twice.
	entries := parseLines(t, []string{
		"6. Semester",
		"Freitag",
		"09:00 16:00 6042 Autonomous Robotics P Prof. Dr. Ada Labor Robotik",
		"Block course: 10.10., 17.10.,",
		"17.10., 31.10.",
	})

	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if want := "10.10., 17.10., 17.10., 31.10."; entries[0].BlockDates != want {
		t.Errorf("BlockDates = %q, want %q", entries[0].BlockDates, want)
	}
}

func TestParse_RoomCodeOnFollowingLine(t *testing.T) {
	entries := parseLines(t, []string{
		"1. Semester",
		"Monday",
		"08:30 10:00 1001 Engineering Mathematics L Prof. Dr. Kamps Hörsaal 2",
		"1 01 120",
	})

	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Building != "1" || e.Floor != "01" || e.RoomNumber != "120" {
		t.Errorf("location = %q/%q/%q", e.Building, e.Floor, e.RoomNumber)
	}
}

func TestParse_SkipsNoiseAndFooters(t *testing.T) {
	entries := parseLines(t, []string{
		"1. Semester",
		"Monday",
		"SEITE 1 VON 3",
		"08:30 10:00 1001 Engineering Mathematics L Prof. Dr. Kamps Hörsaal 2",
		"weekly",
		"Start: 13.10.",
	})

	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].ModuleName != "Engineering Mathematics" {
		t.Errorf("noise lines corrupted the entry: %+v", entries[0])
	}
}

func TestParse_DropsEntryWithoutTypeCode(t *testing.T) {
	entries := parseLines(t, []string{
		"1. Semester",
		"Monday",
		"08:30 10:00 9999 Broken Row Prof. Dr. Foo",
		"Dienstag",
		"10:15 11:45 1003 Applied Physics E Dr. Meier",
	})

	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1 (broken row dropped)", len(entries))
	}
	if entries[0].ModuleCode != "1003" {
		t.Errorf("surviving entry = %+v", entries[0])
	}
}

func TestParse_CombinedTypeCodeBeforeSingle(t *testing.T) {
	entries := parseLines(t, []string{
		"4. Semester",
		"Mittwoch",
		"10:15 13:30 4001 Control Engineering L&E Prof. Dr. Ruppel Hörsaal 4",
	})

	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Type != "L&E" {
		t.Errorf("Type = %q, want L&E", entries[0].Type)
	}
	if entries[0].ModuleName != "Control Engineering" {
		t.Errorf("ModuleName = %q", entries[0].ModuleName)
	}
}
