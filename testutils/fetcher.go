// Package testutils provides shared testing utilities across the application.
package testutils

import (
	"context"
	"sync"
	"time"

	"github.com/jonesrussell/wikiquery/internal/domain"
)

// StubFetcher is a call-counting fetcher for loader tests. Each Fetch
// records the term and returns the scripted page or error.
type StubFetcher struct {
	mu    sync.Mutex
	calls []domain.SearchTerm

	// Page is returned on success. Its Term field is overwritten with the
	// requested term so records carry correct provenance.
	Page *domain.RawPage
	// Err, when set, is returned instead of Page.
	Err error
}

// Fetch implements wiki.Fetcher.
func (f *StubFetcher) Fetch(_ context.Context, term domain.SearchTerm) (*domain.RawPage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, term)
	f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}

	page := *f.Page
	page.Term = term
	return &page, nil
}

// Calls returns the number of Fetch invocations.
func (f *StubFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// CalledWith returns the terms Fetch was invoked with, in order.
func (f *StubFetcher) CalledWith() []domain.SearchTerm {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.SearchTerm, len(f.calls))
	copy(out, f.calls)
	return out
}

// LincolnPage returns a fixture page mirroring the presidential biography
// layout: infobox rows for birth, death, and office term.
func LincolnPage() *domain.RawPage {
	return &domain.RawPage{
		Title:         "Abraham Lincoln",
		URL:           "https://en.wikipedia.org/wiki/Abraham_Lincoln",
		ResolvedExact: true,
		Summary: "Abraham Lincoln was an American lawyer and statesman " +
			"who served as the 16th president of the United States.[1]",
		Sections: []domain.Section{
			{Heading: "Early life", Text: "Lincoln was born in a log cabin in Kentucky."},
			{Heading: "Presidency", Text: "Lincoln led the Union through the American Civil War."},
		},
		Infobox: map[string]string{
			"Born":      "February 12, 1809\nHodgenville, Kentucky, U.S.",
			"Died":      "April 15, 1865\nWashington, D.C., U.S.",
			"In office": "March 4, 1861 – April 15, 1865",
		},
		FetchedAt: time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}
