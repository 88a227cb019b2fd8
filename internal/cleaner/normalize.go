package cleaner

import (
	"regexp"
	"strings"
)

// Scraped article text carries encyclopedia markup artifacts: footnote
// reference links like [3] or [a], missing spaces after sentence periods
// where inline elements were collapsed, unicode dashes and invisible
// characters, and hard newlines inside logical runs of text. Normalize
// removes them so field patterns match on predictable input.

var (
	// footnoteRefPattern matches short bracketed reference links ([1], [a],
	// [12], [iv]) left behind by citation markup.
	footnoteRefPattern = regexp.MustCompile(`\[[^\[\]]{0,3}\]`)
	// missingSpacePattern matches a sentence period glued to the next word.
	missingSpacePattern = regexp.MustCompile(`\.([A-Za-z])`)
	// whitespaceRunPattern collapses runs of spaces and tabs.
	whitespaceRunPattern = regexp.MustCompile(`[ \t]+`)
)

// unicodeReplacer maps common non-ASCII artifacts to ASCII equivalents
// before the remaining non-ASCII bytes are dropped.
var unicodeReplacer = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"’", "'", // right single quote
	"‘", "'", // left single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	" ", " ", // non-breaking space
	"​", "", // zero-width space
	"­", "", // soft hyphen
)

// Normalize cleans scraped page text into a canonical ASCII form. It is
// deterministic, so cleaning the same input always yields the same output.
func Normalize(text string) string {
	text = footnoteRefPattern.ReplaceAllString(text, "")
	text = missingSpacePattern.ReplaceAllString(text, ". $1")
	text = unicodeReplacer.Replace(text)
	text = dropNonASCII(text)
	text = strings.ReplaceAll(text, "\n", ", ")
	text = whitespaceRunPattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// dropNonASCII removes any remaining bytes outside the printable ASCII range.
func dropNonASCII(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
