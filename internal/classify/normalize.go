package classify

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var multiSpace = regexp.MustCompile(`\s+`)

// Normalize prepares a raw rate description for rule matching: trims,
// upper-cases, folds accents (PRÉ -> PRE) and collapses whitespace.
// The original text is left untouched by callers.
func Normalize(text string) string {
	// The chained transformer keeps internal state, so build one per call
	// rather than sharing across goroutines.
	deaccent := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(deaccent, text)
	if err != nil {
		folded = text
	}

	folded = strings.ToUpper(strings.TrimSpace(folded))
	return multiSpace.ReplaceAllString(folded, " ")
}
