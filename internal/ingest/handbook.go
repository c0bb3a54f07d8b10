package ingest

import (
	"regexp"
	"strings"
	"unicode"
)

// modulePattern matches a candidate handbook header: a module code followed
// by a title, e.g. "CI_3.02 Signals and systems".
var modulePattern = regexp.MustCompile(`^(CI_[WK\d]\.\d{2})\s+(.+)$`)

var (
	tocLeaderPattern = regexp.MustCompile(`\.+\s*\d+$`)
	tableRowPattern  = regexp.MustCompile(`^\d\s+[A-Z]\s+\d`)
	trailingNumber   = regexp.MustCompile(`\d+$`)
)

// adminKeywords flag workload/credit metadata rows that happen to start with
// a module code.
var adminKeywords = []string{"150 h", "300 h", "CP", "semester", "Workload", "Duration", "Code"}

// jargonTokens flag assessment/credit table text masquerading as a title.
var jargonTokens = []string{"ECTS", "SWS", "Exam", "graded", "written"}

// headerRule rejects a candidate header. line is the full source line,
// title the text after the module code. Rules are evaluated in order and
// any rejection wins; each rule stays independently testable.
type headerRule struct {
	name   string
	reject func(line, title string) bool
}

var headerRules = []headerRule{
	{"toc-leader", func(line, _ string) bool {
		return tocLeaderPattern.MatchString(strings.TrimSpace(line))
	}},
	{"admin-keyword", func(_, title string) bool {
		for _, kw := range adminKeywords {
			if strings.Contains(title, kw) {
				return true
			}
		}
		return false
	}},
	{"table-row", func(_, title string) bool {
		return tableRowPattern.MatchString(title)
	}},
	{"description-start", func(_, title string) bool {
		r := []rune(title)[0]
		return unicode.IsLower(r) || r == '"' || r == '“' || r == '’'
	}},
	{"too-short", func(_, title string) bool {
		return len(title) < 5
	}},
	{"trailing-number", func(_, title string) bool {
		return trailingNumber.MatchString(title)
	}},
	{"jargon", func(_, title string) bool {
		for _, tok := range jargonTokens {
			if strings.Contains(title, tok) {
				return true
			}
		}
		return false
	}},
}

// isValidHeader reports whether a code-pattern line is a real module header
// rather than a table-of-contents entry, table row or description fragment.
func isValidHeader(line, title string) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		return false
	}
	for _, rule := range headerRules {
		if rule.reject(line, title) {
			return false
		}
	}
	return true
}

// SegmentHandbook splits the handbook's text lines into a module map and one
// content segment per module. A line matching the module-code pattern opens a
// new module only if it passes the header-validity rules; otherwise it is
// content of the module currently open. The first accepted occurrence of a
// code owns the map entry.
func SegmentHandbook(lines []string) (ModuleMap, []ModuleSegment) {
	moduleMap := make(ModuleMap)
	var segments []ModuleSegment

	var (
		currentCode  string
		currentTitle string
		buffer       []string
	)

	seal := func() {
		if currentCode == "" {
			return
		}
		segments = append(segments, ModuleSegment{
			Code:    currentCode,
			Title:   currentTitle,
			Content: strings.Join(buffer, "\n"),
		})
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := modulePattern.FindStringSubmatch(line)
		if m != nil && isValidHeader(line, m[2]) {
			seal()
			currentCode = m[1]
			currentTitle = strings.TrimSpace(m[2])
			buffer = []string{line}
			if _, exists := moduleMap[currentCode]; !exists {
				moduleMap[currentCode] = currentTitle
			}
			continue
		}

		// Matched the code pattern but failed validation, or plain text:
		// either way it is data belonging to the open module, not noise.
		if currentCode != "" {
			buffer = append(buffer, line)
		}
	}
	seal()

	return moduleMap, segments
}
