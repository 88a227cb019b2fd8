package domain

import "time"

// FieldValue is one extracted value inside a CleanRecord. A field that could
// not be extracted is present with Found=false rather than omitted, so
// callers can distinguish "requested but absent" from "never requested".
type FieldValue struct {
	// Found reports whether the field was extracted from the page.
	Found bool `json:"found"`
	// Raw is the matched text before normalization.
	Raw string `json:"raw,omitempty"`
	// Text is the normalized text value.
	Text string `json:"text,omitempty"`
	// Number is the parsed numeric value, when the field kind is numeric.
	Number *float64 `json:"number,omitempty"`
	// Date is the parsed date in ISO form (2006-01-02), when the field kind
	// is a date.
	Date string `json:"date,omitempty"`
}

// CleanRecord is the normalized, persisted extraction result for a term.
// It carries provenance alongside the extracted fields, plus the full
// captured infobox and summary so a later caller requesting a different
// infobox-backed field can be served without another fetch.
type CleanRecord struct {
	// Term is the normalized search term the record was populated from.
	Term SearchTerm `json:"term"`
	// Title is the resolved page title.
	Title string `json:"title"`
	// URL is the page the content came from.
	URL string `json:"url"`
	// ResolvedExact reports whether resolution was an exact title match.
	ResolvedExact bool `json:"resolved_exact"`
	// FetchedAt is when the underlying page content was retrieved.
	FetchedAt time.Time `json:"fetched_at"`
	// Fields maps field names to their extracted values.
	Fields map[string]FieldValue `json:"fields"`
	// Infobox is the full infobox captured at population time.
	Infobox map[string]string `json:"infobox,omitempty"`
	// Summary is the cleaned lead paragraph text.
	Summary string `json:"summary,omitempty"`
}

// Field returns the named field value. Missing entries come back as a
// zero FieldValue with Found=false.
func (r *CleanRecord) Field(name string) FieldValue {
	if r.Fields == nil {
		return FieldValue{}
	}
	return r.Fields[name]
}
