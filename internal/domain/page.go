package domain

import (
	"strings"
	"time"
)

// Section is one titled block of page content.
type Section struct {
	// Heading is the section heading text, without edit-link artifacts.
	Heading string `json:"heading"`
	// Text is the concatenated paragraph text of the section.
	Text string `json:"text"`
}

// RawPage is the unprocessed result of resolving and fetching a page.
// It is owned transiently by the fetcher and is never persisted; the cleaner
// reduces it to a CleanRecord.
type RawPage struct {
	// Term is the normalized search term the page was resolved from.
	Term SearchTerm `json:"term"`
	// Title is the resolved page title.
	Title string `json:"title"`
	// URL is the canonical page URL the content was fetched from.
	URL string `json:"url"`
	// ResolvedExact reports whether the title was an exact match for the
	// term. When false, the fetcher picked the most relevant candidate and
	// the choice is surfaced here rather than silently guessed.
	ResolvedExact bool `json:"resolved_exact"`
	// Summary is the lead paragraph text, before the first section heading.
	Summary string `json:"summary"`
	// Sections are the titled content blocks, in document order.
	Sections []Section `json:"sections"`
	// Infobox maps infobox row labels to their cell text.
	Infobox map[string]string `json:"infobox"`
	// FetchedAt is when the page content was retrieved.
	FetchedAt time.Time `json:"fetched_at"`
}

// Section returns the text of the section whose heading contains name
// (case-insensitive). The second return reports whether a match exists.
func (p *RawPage) Section(name string) (string, bool) {
	want := strings.ToLower(name)
	for i := range p.Sections {
		if strings.Contains(strings.ToLower(p.Sections[i].Heading), want) {
			return p.Sections[i].Text, true
		}
	}
	return "", false
}

// InfoboxValue returns the infobox cell text for the row whose label matches
// key. Exact case-insensitive label matches are preferred over substring
// matches so "Born" never resolves to "Reborn" when both rows exist.
func (p *RawPage) InfoboxValue(key string) (string, bool) {
	want := strings.ToLower(key)
	for label, value := range p.Infobox {
		if strings.ToLower(label) == want {
			return value, true
		}
	}
	for label, value := range p.Infobox {
		if strings.Contains(strings.ToLower(label), want) {
			return value, true
		}
	}
	return "", false
}
