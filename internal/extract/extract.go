// Package extract turns inconsistently-structured HTML documents into
// best-effort plain text. Extraction is a chain of strategies tried in
// order; the first one that yields enough cleaned text wins. An empty result
// means "no usable content", never an error.
package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"go.uber.org/zap"
)

const (
	// DefaultMinLength is the minimum cleaned-text length for a strategy to
	// count as a success.
	DefaultMinLength = 150
	// DefaultNoiseMin filters out tiny fragments (menu labels, buttons) when
	// concatenating text-bearing elements.
	DefaultNoiseMin = 10
)

// textBearing is the set of sub-elements whose text is concatenated when
// extracting from a container.
const textBearing = "p, h1, h2, h3, h4, h5, h6, li, span"

// semanticContainers locate the main content when no configured selector
// matches.
const semanticContainers = "article, main, [role=\"main\"], #main-content"

// Strategy is one way of locating body text in a parsed document.
type Strategy interface {
	Name() string
	Extract(doc *goquery.Document) string
}

// Extractor runs a strategy chain over a document.
type Extractor struct {
	MinLength int
	NoiseMin  int
}

// New creates an Extractor with default thresholds.
func New() *Extractor {
	return &Extractor{MinLength: DefaultMinLength, NoiseMin: DefaultNoiseMin}
}

// Extract parses html and tries, in order: each configured selector, the
// semantic-container fallback, the strip-everything fallback, and finally
// readability. Returns cleaned text, or "" when nothing meets MinLength.
func (e *Extractor) Extract(html, pageURL string, selectors []string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		zap.L().Debug("extract: parse document", zap.String("url", pageURL), zap.Error(err))
		return ""
	}

	chain := make([]Strategy, 0, len(selectors)+3)
	for _, sel := range selectors {
		chain = append(chain, &selectorStrategy{selector: sel, noiseMin: e.NoiseMin, minLength: e.MinLength})
	}
	chain = append(chain,
		&semanticStrategy{noiseMin: e.NoiseMin},
		&stripStrategy{noiseMin: e.NoiseMin},
		&readabilityStrategy{html: html, pageURL: pageURL},
	)

	for _, st := range chain {
		text := CleanText(st.Extract(doc))
		if len(text) >= e.MinLength {
			zap.L().Debug("extract: strategy succeeded",
				zap.String("strategy", st.Name()),
				zap.String("url", pageURL),
				zap.Int("chars", len(text)),
			)
			return text
		}
	}

	zap.L().Debug("extract: no strategy met minimum length", zap.String("url", pageURL))
	return ""
}

// collectText concatenates trimmed text from text-bearing sub-elements of
// sel, dropping fragments at or below noiseMin characters.
func collectText(sel *goquery.Selection, noiseMin int) string {
	var parts []string
	sel.Find(textBearing).Each(func(_ int, s *goquery.Selection) {
		t := strings.TrimSpace(s.Text())
		if len(t) > noiseMin {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}

// selectorStrategy extracts from the first match of a configured selector,
// falling back to the container's whole text when the sub-element pass comes
// up short.
type selectorStrategy struct {
	selector  string
	noiseMin  int
	minLength int
}

func (s *selectorStrategy) Name() string { return "selector:" + s.selector }

func (s *selectorStrategy) Extract(doc *goquery.Document) string {
	sel := doc.Find(s.selector)
	if sel.Length() == 0 {
		return ""
	}
	text := collectText(sel.First(), s.noiseMin)
	if len(CleanText(text)) >= s.minLength {
		return text
	}
	return sel.First().Text()
}

// semanticStrategy extracts from a semantic main-content container.
type semanticStrategy struct {
	noiseMin int
}

func (s *semanticStrategy) Name() string { return "semantic" }

func (s *semanticStrategy) Extract(doc *goquery.Document) string {
	sel := doc.Find(semanticContainers)
	if sel.Length() == 0 {
		return ""
	}
	return collectText(sel.First(), s.noiseMin)
}

// stripStrategy clones the body, removes non-content subtrees, and extracts
// from whatever is left. Last resort before readability.
type stripStrategy struct {
	noiseMin int
}

func (s *stripStrategy) Name() string { return "strip" }

func (s *stripStrategy) Extract(doc *goquery.Document) string {
	body := doc.Find("body")
	if body.Length() == 0 {
		return ""
	}
	clone := body.Clone()
	clone.Find("script, style, nav, header, footer, aside, iframe, noscript").Remove()
	return collectText(clone, s.noiseMin)
}

// readabilityStrategy hands the raw document to go-readability's article
// extraction.
type readabilityStrategy struct {
	html    string
	pageURL string
}

func (s *readabilityStrategy) Name() string { return "readability" }

func (s *readabilityStrategy) Extract(_ *goquery.Document) string {
	u, err := url.Parse(s.pageURL)
	if err != nil {
		u = &url.URL{}
	}
	article, err := readability.FromReader(strings.NewReader(s.html), u)
	if err != nil {
		return ""
	}
	return article.TextContent
}
