package wiki

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates no page matched the search term.
var ErrNotFound = errors.New("no matching page found")

// AmbiguousError indicates the term resolved to a disambiguation page and no
// resolution rule settled the choice. Candidates carries the titles that were
// considered so the caller can retry with a more specific term.
type AmbiguousError struct {
	Term       string
	Title      string
	Candidates []string
}

// Error implements the error interface.
func (e *AmbiguousError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("term %q resolved to disambiguation page %q", e.Term, e.Title)
	}
	return fmt.Sprintf("term %q resolved to disambiguation page %q (candidates: %s)",
		e.Term, e.Title, strings.Join(e.Candidates, ", "))
}

// FetchError indicates a transport-level failure while querying or fetching.
// Fetch errors are transient and safe to retry; they are never cached.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
}

// Unwrap returns the underlying transport error, if any.
func (e *FetchError) Unwrap() error {
	return e.Err
}
