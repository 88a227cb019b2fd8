package wiki

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/wikiquery/internal/domain"
)

// Selectors for the MediaWiki article layout.
const (
	contentSelector       = "div.mw-content-ltr, #mw-content-text"
	infoboxRowSelector    = "table.infobox tr"
	disambigSelector      = "#disambigbox, table.dmbox, .dmbox-disambig"
	disambigCandidatesSel = "#mw-content-text ul li a"
	maxDisambigCandidates = 10
	editSectionArtifact   = "[edit]"
	skipParagraphSentinel = "Sources:"
)

// parsedPage holds the structured pieces extracted from article HTML.
type parsedPage struct {
	summary  string
	sections []domain.Section
	infobox  map[string]string
}

// isDisambiguation reports whether the document is a disambiguation page and
// returns up to maxDisambigCandidates candidate titles from its link list.
func isDisambiguation(doc *goquery.Document) (bool, []string) {
	if doc.Find(disambigSelector).Length() == 0 {
		return false, nil
	}

	var candidates []string
	doc.Find(disambigCandidatesSel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title := strings.TrimSpace(s.Text())
		if title != "" {
			candidates = append(candidates, title)
		}
		return len(candidates) < maxDisambigCandidates
	})
	return true, candidates
}

// parseArticle extracts the summary, sections, and infobox from article HTML.
// Paragraphs before the first section heading form the summary; each h2/h3
// heading opens a new section collecting the paragraphs that follow it.
func parseArticle(body []byte) (*parsedPage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	if ambiguous, candidates := isDisambiguation(doc); ambiguous {
		return nil, &AmbiguousError{Candidates: candidates}
	}

	page := &parsedPage{infobox: parseInfobox(doc)}

	content := doc.Find(contentSelector).First()
	if content.Length() == 0 {
		return page, nil
	}

	var (
		summaryParts []string
		heading      string
		sectionParts []string
	)
	closeSection := func() {
		if heading == "" {
			return
		}
		page.sections = append(page.sections, domain.Section{
			Heading: heading,
			Text:    strings.Join(sectionParts, "\n"),
		})
		sectionParts = nil
	}

	content.Find("p, h2, h3").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if goquery.NodeName(s) == "p" {
			if text == "" || text == skipParagraphSentinel {
				return
			}
			if heading == "" {
				summaryParts = append(summaryParts, text)
			} else {
				sectionParts = append(sectionParts, text)
			}
			return
		}

		closeSection()
		heading = strings.TrimSpace(strings.ReplaceAll(text, editSectionArtifact, ""))
	})
	closeSection()

	page.summary = strings.Join(summaryParts, "\n")
	return page, nil
}

// parseInfobox extracts label/value pairs from the first infobox table.
// Rows without both a header and a data cell are skipped.
func parseInfobox(doc *goquery.Document) map[string]string {
	infobox := make(map[string]string)
	doc.Find(infoboxRowSelector).Each(func(_ int, row *goquery.Selection) {
		label := strings.TrimSpace(row.Find("th").First().Text())
		value := strings.TrimSpace(row.Find("td").First().Text())
		if label == "" || value == "" {
			return
		}
		if _, exists := infobox[label]; !exists {
			infobox[label] = value
		}
	})
	return infobox
}
