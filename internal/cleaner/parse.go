package cleaner

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// monthNames is the alternation used by the built-in date patterns.
const monthNames = "January|February|March|April|May|June|July|August|September|October|November|December"

var (
	// datePattern matches English dates in "Month D, YYYY" or "D Month YYYY"
	// order.
	datePattern = regexp.MustCompile(
		`(?:` + monthNames + `)\s+\d{1,2},?\s+\d{4}|\d{1,2}\s+(?:` + monthNames + `)\s+\d{4}`,
	)
	// yearPattern matches a standalone four-digit year.
	yearPattern = regexp.MustCompile(`\b\d{4}\b`)
	// numberPattern matches a signed decimal number with optional comma
	// grouping and an optional scale word.
	numberPattern = regexp.MustCompile(
		`[-+]?\d{1,3}(?:,\d{3})+(?:\.\d+)?|[-+]?\d+(?:\.\d+)?`,
	)
	// scaleWordPattern matches a scale word following a number.
	scaleWordPattern = regexp.MustCompile(`(?i)^\s*(million|billion|trillion)\b`)
)

// dateLayouts are tried in order when parsing a matched date string.
var dateLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"2 January 2006",
}

// scaleWords maps scale suffixes to multipliers.
var scaleWords = map[string]float64{
	"million":  1e6,
	"billion":  1e9,
	"trillion": 1e12,
}

// parseDate parses an English date string into ISO form (2006-01-02).
func parseDate(text string) (string, bool) {
	text = strings.Join(strings.Fields(text), " ")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// parseNumber extracts the first number from text, applying comma grouping
// and a trailing scale word ("1.5 million") when present.
func parseNumber(text string) (float64, bool) {
	loc := numberPattern.FindStringIndex(text)
	if loc == nil {
		return 0, false
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(text[loc[0]:loc[1]], ",", ""), 64)
	if err != nil {
		return 0, false
	}

	if m := scaleWordPattern.FindStringSubmatch(text[loc[1]:]); m != nil {
		value *= scaleWords[strings.ToLower(m[1])]
	}
	return value, true
}
