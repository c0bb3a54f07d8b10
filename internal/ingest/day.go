package ingest

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Weekdays are the five teaching days, in schedule order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// germanDays maps the localized day names found in the schedule document to
// their English equivalents.
var germanDays = map[string]string{
	"Montag":     "Monday",
	"Dienstag":   "Tuesday",
	"Mittwoch":   "Wednesday",
	"Donnerstag": "Thursday",
	"Freitag":    "Friday",
}

var titleCaser = cases.Title(language.English)

// NormalizeDay maps a day name of any case, English or German, to the
// canonical English form ("montag" -> "Monday"). Unknown input is returned
// title-cased so downstream comparisons stay consistent.
func NormalizeDay(day string) string {
	day = titleCaser.String(strings.TrimSpace(day))
	if english, ok := germanDays[day]; ok {
		return english
	}
	return day
}
