// Package cleaner reduces a fetched raw page to a normalized record by
// applying declarative field specs. Cleaning is a pure function of its
// inputs: no I/O, deterministic, and idempotent, so a record can be compared
// structurally against a cache-recovered copy.
package cleaner

import (
	"regexp"
	"strings"
	"sync"

	"github.com/jonesrussell/wikiquery/internal/domain"
)

// patternCache memoizes compiled spec patterns so a catalog applied across
// many pages does not recompile per field per page.
var patternCache sync.Map // pattern string -> *regexp.Regexp

func compilePattern(expr string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(expr); ok {
		return cached.(*regexp.Regexp), nil
	}
	compiled, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	patternCache.Store(expr, compiled)
	return compiled, nil
}

// Clean extracts the fields described by specs from raw and returns the
// persisted record. Extraction fails softly per field: a field that cannot
// be found or parsed is present in the record with Found=false, so partial
// data remains usable. The full infobox and summary are always captured
// alongside the requested fields (see DESIGN.md on field-set mismatches).
func Clean(raw *domain.RawPage, specs []domain.FieldSpec) domain.CleanRecord {
	record := domain.CleanRecord{
		Term:          raw.Term,
		Title:         raw.Title,
		URL:           raw.URL,
		ResolvedExact: raw.ResolvedExact,
		FetchedAt:     raw.FetchedAt,
		Fields:        make(map[string]domain.FieldValue, len(specs)),
		Summary:       Normalize(raw.Summary),
	}

	if len(raw.Infobox) > 0 {
		record.Infobox = make(map[string]string, len(raw.Infobox))
		for label, value := range raw.Infobox {
			record.Infobox[Normalize(label)] = Normalize(value)
		}
	}

	for _, spec := range specs {
		record.Fields[spec.Name] = extractField(raw, spec)
	}

	return record
}

// extractField applies one spec to the page.
func extractField(raw *domain.RawPage, spec domain.FieldSpec) domain.FieldValue {
	source, ok := sourceText(raw, spec)
	if !ok {
		return domain.FieldValue{}
	}

	normalized := Normalize(source)
	match, ok := matchText(normalized, spec)
	if !ok {
		return domain.FieldValue{}
	}

	return parseValue(match, spec.Kind)
}

// sourceText selects the part of the page the spec extracts from.
func sourceText(raw *domain.RawPage, spec domain.FieldSpec) (string, bool) {
	switch spec.Source {
	case domain.SourceInfobox:
		return raw.InfoboxValue(spec.Key)
	case domain.SourceSummary:
		return raw.Summary, raw.Summary != ""
	case domain.SourceSection:
		return raw.Section(spec.Key)
	case domain.SourceContent:
		parts := make([]string, 0, len(raw.Sections)+1)
		if raw.Summary != "" {
			parts = append(parts, raw.Summary)
		}
		for i := range raw.Sections {
			parts = append(parts, raw.Sections[i].Text)
		}
		combined := strings.Join(parts, "\n")
		return combined, combined != ""
	default:
		return "", false
	}
}

// matchText locates the spec's target substring inside the normalized source
// text. An explicit pattern wins; otherwise date and year kinds fall back to
// the built-in patterns, and text/number kinds take the whole source text.
func matchText(text string, spec domain.FieldSpec) (string, bool) {
	var pattern *regexp.Regexp
	switch {
	case spec.Pattern != "":
		// Patterns reaching this point without going through
		// FieldSpec.Validate may still be invalid; fail the field softly.
		compiled, err := compilePattern(spec.Pattern)
		if err != nil {
			return "", false
		}
		pattern = compiled
	case spec.Kind == domain.KindDate:
		pattern = datePattern
	case spec.Kind == domain.KindYear:
		pattern = yearPattern
	default:
		return text, true
	}

	matches := pattern.FindAllStringSubmatch(text, -1)
	if spec.Index >= len(matches) {
		return "", false
	}

	match := matches[spec.Index]
	// Prefer the first capture group when the pattern defines one.
	if len(match) > 1 && match[1] != "" {
		return match[1], true
	}
	return match[0], true
}

// parseValue turns matched text into a typed field value.
func parseValue(match string, kind domain.FieldKind) domain.FieldValue {
	value := domain.FieldValue{
		Found: true,
		Raw:   match,
		Text:  strings.TrimSpace(match),
	}

	switch kind {
	case domain.KindNumber, domain.KindYear:
		number, ok := parseNumber(value.Text)
		if !ok {
			return domain.FieldValue{}
		}
		value.Number = &number
	case domain.KindDate:
		date, ok := parseDate(value.Text)
		if !ok {
			return domain.FieldValue{}
		}
		value.Date = date
	}

	return value
}
