// Package wiki implements the page fetcher against the MediaWiki API.
// Term resolution goes through the search API; page content is retrieved
// with a colly collector and parsed with goquery. This is the only package
// that performs network I/O.
package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	colly "github.com/gocolly/colly/v2"

	"github.com/jonesrussell/wikiquery/internal/domain"
	"github.com/jonesrussell/wikiquery/internal/logger"
)

// Default client settings.
const (
	DefaultAPIBaseURL  = "https://en.wikipedia.org/w/api.php"
	DefaultPageBaseURL = "https://en.wikipedia.org/wiki/"
	DefaultUserAgent   = "wikiquery/1.0 (+https://github.com/jonesrussell/wikiquery)"
	DefaultTimeout     = 30 * time.Second
	DefaultSearchLimit = 20
)

// maxResponseBodyBytes limits the size of fetched API responses.
const maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB

// Fetcher resolves a search term to a raw page. Implementations other than
// Client can plug in verified external datasets behind the same contract
// without touching the loader.
type Fetcher interface {
	Fetch(ctx context.Context, term domain.SearchTerm) (*domain.RawPage, error)
}

// Config holds fetcher client configuration.
type Config struct {
	APIBaseURL  string        `yaml:"api_base_url" mapstructure:"api_base_url"`
	PageBaseURL string        `yaml:"page_base_url" mapstructure:"page_base_url"`
	UserAgent   string        `yaml:"user_agent" mapstructure:"user_agent"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
	SearchLimit int           `yaml:"search_limit" mapstructure:"search_limit"`
}

// WithDefaults returns a copy of the config with defaults applied for
// zero-value fields.
func (c Config) WithDefaults() Config {
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.PageBaseURL == "" {
		c.PageBaseURL = DefaultPageBaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.SearchLimit <= 0 {
		c.SearchLimit = DefaultSearchLimit
	}
	return c
}

// Client fetches pages from a MediaWiki instance.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        logger.Interface
}

// Ensure Client implements Fetcher.
var _ Fetcher = (*Client)(nil)

// NewClient creates a fetcher client with the given configuration.
func NewClient(cfg Config, log logger.Interface) *Client {
	cfg = cfg.WithDefaults()
	if log == nil {
		log = logger.NewNoOp()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log.WithComponent("wiki"),
	}
}

// searchResponse mirrors the MediaWiki list=search JSON shape.
type searchResponse struct {
	Query struct {
		Search []struct {
			Title  string `json:"title"`
			PageID int    `json:"pageid"`
		} `json:"search"`
	} `json:"query"`
}

// Fetch resolves term to a page and retrieves its structured content.
// Resolution prefers an exact case-insensitive title match among the search
// candidates; otherwise the most relevant candidate is taken and the choice
// is surfaced through RawPage.ResolvedExact and a log line.
func (c *Client) Fetch(ctx context.Context, term domain.SearchTerm) (*domain.RawPage, error) {
	candidates, err := c.search(ctx, term)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, term)
	}

	title, exact := resolveTitle(term, candidates)
	if !exact {
		c.log.Info("No exact title match, using most relevant candidate",
			"term", term.String(),
			"resolved_title", title,
		)
	}

	pageURL := c.pageURL(title)
	body, err := c.fetchHTML(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	page, err := parseArticle(body)
	if err != nil {
		var ambiguous *AmbiguousError
		if errors.As(err, &ambiguous) {
			ambiguous.Term = term.String()
			ambiguous.Title = title
			if len(ambiguous.Candidates) == 0 {
				ambiguous.Candidates = candidates
			}
			return nil, ambiguous
		}
		return nil, err
	}

	return &domain.RawPage{
		Term:          term,
		Title:         title,
		URL:           pageURL,
		ResolvedExact: exact,
		Summary:       page.summary,
		Sections:      page.sections,
		Infobox:       page.infobox,
		FetchedAt:     time.Now().UTC(),
	}, nil
}

// search queries the MediaWiki search API and returns candidate titles in
// relevance order.
func (c *Client) search(ctx context.Context, term domain.SearchTerm) ([]string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", term.String())
	params.Set("srlimit", fmt.Sprintf("%d", c.cfg.SearchLimit))
	params.Set("format", "json")

	searchURL := c.cfg.APIBaseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: searchURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: searchURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return nil, &FetchError{URL: searchURL, Err: err}
	}

	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &FetchError{URL: searchURL, Err: fmt.Errorf("decoding search response: %w", err)}
	}

	titles := make([]string, 0, len(decoded.Query.Search))
	for _, hit := range decoded.Query.Search {
		titles = append(titles, hit.Title)
	}

	c.log.Debug("Search completed",
		"term", term.String(),
		"candidates", len(titles),
	)
	return titles, nil
}

// contextTransport injects the caller's context into every request a
// collector makes, so cancellation covers the page fetch and not just the
// search call.
type contextTransport struct {
	ctx context.Context
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return http.DefaultTransport.RoundTrip(req.WithContext(t.ctx))
}

// fetchHTML retrieves the page body with a fresh collector per call.
func (c *Client) fetchHTML(ctx context.Context, pageURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}

	collector := colly.NewCollector(
		colly.UserAgent(c.cfg.UserAgent),
	)
	collector.SetRequestTimeout(c.cfg.Timeout)
	collector.WithTransport(contextTransport{ctx: ctx})

	var (
		body     []byte
		fetchErr error
	)
	collector.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = &FetchError{URL: pageURL, StatusCode: r.StatusCode, Err: err}
	})

	err := collector.Visit(pageURL)
	collector.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	if len(body) == 0 {
		return nil, &FetchError{URL: pageURL, Err: fmt.Errorf("empty response body")}
	}
	return body, nil
}

// pageURL builds the canonical article URL for a title.
func (c *Client) pageURL(title string) string {
	return c.cfg.PageBaseURL + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}

// resolveTitle applies the resolution policy: exact case-insensitive match
// wins; otherwise the first (most relevant) candidate is used.
func resolveTitle(term domain.SearchTerm, candidates []string) (string, bool) {
	for _, title := range candidates {
		if strings.EqualFold(title, term.String()) {
			return title, true
		}
	}
	return candidates[0], false
}
