package domain

import (
	"fmt"
	"regexp"
)

// FieldSource identifies which part of a RawPage a field is extracted from.
type FieldSource string

const (
	// SourceInfobox extracts from an infobox row selected by Key.
	SourceInfobox FieldSource = "infobox"
	// SourceSummary extracts from the lead paragraph text.
	SourceSummary FieldSource = "summary"
	// SourceSection extracts from the section whose heading matches Key.
	SourceSection FieldSource = "section"
	// SourceContent extracts from the summary and all sections combined.
	SourceContent FieldSource = "content"
)

// FieldKind describes how a matched value is parsed.
type FieldKind string

const (
	// KindText keeps the normalized text as-is.
	KindText FieldKind = "text"
	// KindNumber parses the match as a number, handling comma grouping and
	// million/billion/trillion scale words.
	KindNumber FieldKind = "number"
	// KindDate parses the match as an English date (e.g. "February 12, 1809"
	// or "12 February 1809").
	KindDate FieldKind = "date"
	// KindYear extracts a standalone four-digit year.
	KindYear FieldKind = "year"
)

// FieldSpec declaratively describes one value to extract from a RawPage.
// Research modules supply specs instead of subclassing the cleaner.
type FieldSpec struct {
	// Name is the field name in the resulting record.
	Name string `yaml:"name" json:"name" mapstructure:"name"`
	// Source selects the part of the page to extract from.
	Source FieldSource `yaml:"source" json:"source" mapstructure:"source"`
	// Key is the infobox row label or section heading to search, depending
	// on Source. Unused for summary and content sources.
	Key string `yaml:"key,omitempty" json:"key,omitempty" mapstructure:"key"`
	// Pattern is an optional regular expression applied to the source text.
	// The first capture group is used when present, otherwise the whole
	// match. When empty, date and year kinds fall back to built-in patterns
	// and text/number kinds take the whole source text.
	Pattern string `yaml:"pattern,omitempty" json:"pattern,omitempty" mapstructure:"pattern"`
	// Index selects the nth match (zero-based) when the pattern matches more
	// than once, e.g. the second date inside an office-term infobox row.
	Index int `yaml:"index,omitempty" json:"index,omitempty" mapstructure:"index"`
	// Kind controls how the matched text is parsed. Defaults to text.
	Kind FieldKind `yaml:"kind,omitempty" json:"kind,omitempty" mapstructure:"kind"`
}

// Validate checks that the spec is well formed.
func (s *FieldSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("field spec: name is required")
	}
	switch s.Source {
	case SourceInfobox, SourceSection:
		if s.Key == "" {
			return fmt.Errorf("field spec %q: key is required for %s source", s.Name, s.Source)
		}
	case SourceSummary, SourceContent:
	default:
		return fmt.Errorf("field spec %q: unknown source %q", s.Name, s.Source)
	}
	switch s.Kind {
	case "", KindText, KindNumber, KindDate, KindYear:
	default:
		return fmt.Errorf("field spec %q: unknown kind %q", s.Name, s.Kind)
	}
	if s.Index < 0 {
		return fmt.Errorf("field spec %q: index must not be negative", s.Name)
	}
	if s.Pattern != "" {
		if _, err := regexp.Compile(s.Pattern); err != nil {
			return fmt.Errorf("field spec %q: invalid pattern: %w", s.Name, err)
		}
	}
	return nil
}
