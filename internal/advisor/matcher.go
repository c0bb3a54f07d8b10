package advisor

import (
	"sort"
	"strings"

	"github.com/hsrw-ise/advisor-go/internal/ingest"
)

// Match-tier scores. Exact and substring matches must outrank word-level
// tiers so "data science" never resolves to "Data Engineering".
const (
	scoreExact     = 200
	scoreSubstring = 100
	scoreAllWords  = 50
	perWordBonus   = 10
)

// stopWords are filler words stripped before matching a question against
// module titles.
var stopWords = map[string]struct{}{
	"module": {}, "course": {}, "subject": {}, "class": {}, "what": {},
	"is": {}, "who": {}, "teaches": {}, "when": {}, "where": {}, "time": {},
	"timing": {}, "schedule": {}, "day": {}, "my": {}, "the": {}, "a": {}, "an": {},
}

// significantWords returns the question's lowercased words minus stop words
// and words of length <= 2.
func significantWords(question string) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(question)) {
		if _, stop := stopWords[w]; stop || len(w) <= 2 {
			continue
		}
		words = append(words, w)
	}
	return words
}

// MatchModule fuzzy-matches a question against the module map and returns
// the best-scoring module code. ok is false when the question carries no
// significant words or nothing scores above zero.
//
// Codes are visited in sorted order so tie-breaking is deterministic: the
// first code to reach the maximum score keeps it.
func MatchModule(question string, moduleMap ingest.ModuleMap) (code string, ok bool) {
	words := significantWords(question)
	if len(words) == 0 {
		return "", false
	}
	phrase := strings.Join(words, " ")

	codes := make([]string, 0, len(moduleMap))
	for c := range moduleMap {
		codes = append(codes, c)
	}
	sort.Strings(codes)

	bestScore := 0
	for _, c := range codes {
		score := scoreTitle(phrase, words, moduleMap[c])
		if score > bestScore {
			bestScore = score
			code = c
		}
	}
	return code, bestScore > 0
}

func scoreTitle(phrase string, words []string, title string) int {
	name := strings.ToLower(title)

	if phrase == name {
		return scoreExact
	}
	if strings.Contains(name, phrase) {
		return scoreSubstring
	}

	matching := 0
	for _, w := range words {
		if strings.Contains(name, w) {
			matching++
		}
	}
	if matching == len(words) {
		return scoreAllWords + len(words)*perWordBonus
	}
	// Partial matches need more than one significant word and at least half
	// of them present, otherwise single shared words cause false positives.
	if len(words) > 1 && matching*2 >= len(words) {
		return matching * perWordBonus
	}
	return 0
}
