// Package edgar looks up SEC registrants and scans their recent filings for
// counterparty mentions. All endpoints are public; requests go through the
// rate-limited HTTP client to stay inside the SEC fair-access policy.
package edgar

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/sells-group/collab-radar/internal/cache"
	"github.com/sells-group/collab-radar/internal/fetch"
)

const (
	tickersURL = "https://www.sec.gov/files/company_tickers.json"
	browseURL  = "https://www.sec.gov/cgi-bin/browse-edgar?company=%s&owner=exclude&action=getcompany"
)

// ErrNotFound means the company could not be matched to a CIK. Most private
// companies land here; it is an expected outcome, not a failure.
var ErrNotFound = eris.New("edgar: no CIK match")

var fold = cases.Fold()

// tickerEntry is one row of company_tickers.json. The file is an object keyed
// by arbitrary indices, so the values are decoded into a map first.
type tickerEntry struct {
	CIK    int64  `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// Resolver maps company names to 10-digit CIK identifiers. The ticker file is
// loaded once per process; name lookups, hits and misses alike, are cached
// for the life of the run.
type Resolver struct {
	client     *fetch.Client
	cache      *cache.Cache
	tickersURL string
	browseURL  string

	once    sync.Once
	tickers []tickerEntry
	loadErr error
}

// NewResolver creates a Resolver backed by the given HTTP client and cache.
func NewResolver(client *fetch.Client, c *cache.Cache) *Resolver {
	return &Resolver{
		client:     client,
		cache:      c,
		tickersURL: tickersURL,
		browseURL:  browseURL,
	}
}

// ResolveCIK returns the zero-padded 10-digit CIK for a company name. The
// ticker file is tried first (exact ticker, exact title, title prefix, title
// substring, in that order); the browse-edgar company search is the fallback.
// Returns ErrNotFound when neither matches.
func (r *Resolver) ResolveCIK(ctx context.Context, name string) (string, error) {
	key := "cik:" + fold.String(strings.TrimSpace(name))
	cik, err := r.cache.Do(ctx, key, func(ctx context.Context) (string, error) {
		return r.resolve(ctx, name)
	})
	if err != nil {
		if eris.Is(err, cache.ErrNegative) {
			return "", ErrNotFound
		}
		return "", err
	}
	return cik, nil
}

// resolve performs the uncached lookup. Returning "" with a nil error records
// a negative cache entry.
func (r *Resolver) resolve(ctx context.Context, name string) (string, error) {
	if err := r.loadTickers(ctx); err != nil {
		return "", err
	}

	if cik := r.matchTickers(name); cik != "" {
		return cik, nil
	}

	cik, err := r.browseFallback(ctx, name)
	if err != nil {
		return "", err
	}
	if cik == "" {
		zap.L().Debug("edgar: company not found", zap.String("company", name))
	}
	return cik, nil
}

func (r *Resolver) loadTickers(ctx context.Context) error {
	r.once.Do(func() {
		var raw map[string]tickerEntry
		if err := r.client.GetJSON(ctx, r.tickersURL, &raw); err != nil {
			r.loadErr = eris.Wrap(err, "edgar: load ticker file")
			return
		}
		r.tickers = make([]tickerEntry, 0, len(raw))
		for _, e := range raw {
			r.tickers = append(r.tickers, e)
		}
		zap.L().Debug("edgar: ticker file loaded", zap.Int("entries", len(r.tickers)))
	})
	return r.loadErr
}

// matchTickers scans the loaded ticker file in decreasing strictness. A later
// tier never overrides an earlier one.
func (r *Resolver) matchTickers(name string) string {
	query := fold.String(strings.TrimSpace(name))
	if query == "" {
		return ""
	}

	var prefixHit, partialHit string
	for _, e := range r.tickers {
		title := fold.String(e.Title)
		if fold.String(e.Ticker) == query || title == query {
			return PadCIK(e.CIK)
		}
		if prefixHit == "" && strings.HasPrefix(title, query) {
			prefixHit = PadCIK(e.CIK)
		}
		if partialHit == "" && strings.Contains(title, query) {
			partialHit = PadCIK(e.CIK)
		}
	}
	if prefixHit != "" {
		return prefixHit
	}
	return partialHit
}

// browseFallback queries the browse-edgar full-text company search. Two page
// shapes exist: a company landing page (single match) and a results table.
func (r *Resolver) browseFallback(ctx context.Context, name string) (string, error) {
	pageURL := fmt.Sprintf(r.browseURL, url.QueryEscape(name))
	html, err := r.client.GetString(ctx, pageURL)
	if err != nil {
		return "", eris.Wrap(err, "edgar: browse-edgar search")
	}
	if strings.Contains(html, "No matching companies found") {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", eris.Wrap(err, "edgar: parse browse-edgar page")
	}

	// Single-match landing page links the CIK in the company header.
	if href, ok := doc.Find(`.companyInfo a[href*="CIK="]`).First().Attr("href"); ok {
		if cik := cikFromHref(href); cik != "" {
			return cik, nil
		}
	}

	// Results table: first column is the CIK link, second the company name.
	query := fold.String(name)
	var cik string
	doc.Find("table.tableFile2 tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return true
		}
		company := fold.String(strings.TrimSpace(cells.Eq(1).Text()))
		if !strings.Contains(company, query) {
			return true
		}
		cik = padCIKString(strings.TrimSpace(cells.Eq(0).Find("a").First().Text()))
		return cik == ""
	})
	return cik, nil
}

func cikFromHref(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return padCIKString(u.Query().Get("CIK"))
}

// PadCIK formats a numeric CIK as the 10-digit form used by the submissions
// API.
func PadCIK(cik int64) string {
	return fmt.Sprintf("%010d", cik)
}

func padCIKString(raw string) string {
	raw = strings.TrimLeft(strings.TrimSpace(raw), "0")
	if raw == "" {
		return ""
	}
	padded := fmt.Sprintf("%010s", raw)
	if len(padded) > 10 {
		return ""
	}
	return padded
}
