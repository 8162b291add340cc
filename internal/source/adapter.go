package source

import (
	"context"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/collab-radar/internal/extract"
	"github.com/sells-group/collab-radar/internal/fetch"
	"github.com/sells-group/collab-radar/internal/model"
)

// Adapter is the search contract every evidence source implements.
type Adapter interface {
	Key() string
	Name() string
	Kind() model.SourceKind
	Search(ctx context.Context, subject, counterparty string) ([]model.RawResult, error)
}

// SelectorAdapter implements Adapter for any selector-driven source. It runs
// the planned queries sequentially (concurrent requests to one source
// multiply the chance of being blocked), tolerates per-query failures, and
// returns the deduplicated, relevance-filtered union.
type SelectorAdapter struct {
	cfg      Config
	renderer fetch.PageRenderer
}

// NewSelectorAdapter creates an adapter for the given source config.
func NewSelectorAdapter(cfg Config, renderer fetch.PageRenderer) *SelectorAdapter {
	return &SelectorAdapter{cfg: cfg, renderer: renderer}
}

func (a *SelectorAdapter) Key() string            { return a.cfg.Key }
func (a *SelectorAdapter) Name() string           { return a.cfg.Name }
func (a *SelectorAdapter) Kind() model.SourceKind { return a.cfg.Kind }

// Search runs all planned queries against the source. A failed query is
// logged and skipped, never fatal; only context cancellation aborts early.
func (a *SelectorAdapter) Search(ctx context.Context, subject, counterparty string) ([]model.RawResult, error) {
	log := zap.L().With(zap.String("source", a.cfg.Name))

	var results []model.RawResult
	for _, query := range PlanQueries(subject, counterparty) {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "source: search cancelled")
		}

		pageURL := a.cfg.SearchURL(query)
		res, err := a.renderer.FetchRendered(ctx, pageURL, a.cfg.ResultSelector)
		if err != nil {
			var selErr *fetch.SelectorTimeoutError
			if errors.As(err, &selErr) {
				// Layout drift, not a network hiccup: the adapter likely
				// needs selector maintenance.
				log.Warn("result selector not found",
					zap.String("selector", selErr.Selector),
					zap.String("query", query),
				)
			} else {
				log.Debug("query fetch failed, moving on",
					zap.String("query", query),
					zap.Error(err),
				)
			}
			continue
		}

		items := a.parseResults(res.HTML, res.URL)
		log.Debug("query parsed",
			zap.String("query", query),
			zap.Int("results", len(items)),
		)
		results = append(results, items...)
	}

	results = Dedupe(results)
	results = FilterRelevant(results, subject, counterparty)

	log.Info("source search complete",
		zap.String("subject", subject),
		zap.String("counterparty", counterparty),
		zap.Int("relevant", len(results)),
	)
	return results, nil
}

// parseResults extracts one RawResult per matched container. Containers
// without both a resolvable title and a resolvable link are skipped.
func (a *SelectorAdapter) parseResults(html, pageURL string) []model.RawResult {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		zap.L().Debug("source: parse result page", zap.String("url", pageURL), zap.Error(err))
		return nil
	}

	var out []model.RawResult
	doc.Find(a.cfg.ResultSelector).Each(func(_ int, s *goquery.Selection) {
		title := extract.CleanText(s.Find(a.cfg.TitleSelector).First().Text())

		linkSel := s
		if a.cfg.LinkSelector != "" {
			linkSel = s.Find(a.cfg.LinkSelector).First()
		}
		rawLink, _ := linkSel.Attr(a.cfg.LinkAttr)

		if title == "" || rawLink == "" {
			return
		}

		link, err := ResolveLink(rawLink, pageURL, a.cfg.LinkPrefix)
		if err != nil {
			zap.L().Debug("source: unresolvable link",
				zap.String("source", a.cfg.Name),
				zap.String("link", rawLink),
				zap.Error(err),
			)
			return
		}

		var snippet, date string
		if a.cfg.SnippetSelector != "" {
			snippet = extract.CleanText(s.Find(a.cfg.SnippetSelector).First().Text())
		}
		if a.cfg.DateSelector != "" {
			date = extract.CleanText(s.Find(a.cfg.DateSelector).First().Text())
		}

		out = append(out, model.RawResult{
			Title:   title,
			Snippet: snippet,
			Date:    date,
			URL:     link,
			Source:  a.cfg.Name,
		})
	})
	return out
}
