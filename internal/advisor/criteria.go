package advisor

import (
	"regexp"
	"strconv"
	"strings"
)

// Filters are the semester criteria extracted from a question. Zero values
// mean "not specified"; extraction never fails.
type Filters struct {
	SemesterNum int    // 1-7, 0 when unset
	Season      Season // "" when unset
}

// ordinalWords maps ordinal wording to semester numbers. "final" and "last"
// refer to the 7th semester of the 3.5-year program.
var ordinalWords = []struct {
	word string
	num  int
}{
	{"first", 1}, {"1st", 1},
	{"second", 2}, {"2nd", 2},
	{"third", 3}, {"3rd", 3},
	{"fourth", 4}, {"4th", 4},
	{"fifth", 5}, {"5th", 5},
	{"sixth", 6}, {"6th", 6},
	{"seventh", 7}, {"7th", 7},
	{"final", 7}, {"last", 7},
}

var semesterNumPattern = regexp.MustCompile(`semester\s+(\d+)`)

// ExtractCriteria parses semester number and season filters out of a
// question. Ordinal words win over the "semester N" form; winter/summer are
// detected independently.
func ExtractCriteria(question string) Filters {
	q := strings.ToLower(question)
	var f Filters

	for _, ord := range ordinalWords {
		if strings.Contains(q, ord.word) {
			f.SemesterNum = ord.num
			break
		}
	}
	if f.SemesterNum == 0 {
		if m := semesterNumPattern.FindStringSubmatch(q); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				f.SemesterNum = n
			}
		}
	}

	if strings.Contains(q, "winter") {
		f.Season = SeasonWinter
	}
	if strings.Contains(q, "summer") {
		f.Season = SeasonSummer
	}

	return f
}
