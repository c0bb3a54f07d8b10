// Package stringutil provides common string manipulation utilities.
package stringutil

import "strings"

// umlautFolds maps German umlauts and eszett to their ASCII transliterations.
var umlautFolds = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue",
	"Ä", "Ae", "Ö", "Oe", "Ü", "Ue",
	"ß", "ss",
)

// FoldUmlauts transliterates German umlauts and eszett to ASCII so that
// "Hörsaal" and "Hoersaal" compare equal after folding.
func FoldUmlauts(s string) string {
	return umlautFolds.Replace(s)
}

// CollapseWhitespace trims s and squeezes every run of whitespace into a
// single space. PDF text extraction tends to scatter spacing; this
// normalizes lines before pattern matching.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
