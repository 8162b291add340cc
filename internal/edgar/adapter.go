package edgar

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/collab-radar/internal/cache"
	"github.com/sells-group/collab-radar/internal/extract"
	"github.com/sells-group/collab-radar/internal/fetch"
	"github.com/sells-group/collab-radar/internal/model"
)

// Adapter searches the subject company's recent SEC filings for mentions of
// the counterparty. It satisfies the same contract as the page-scraping
// sources but works off structured APIs, so no rendering is involved.
type Adapter struct {
	resolver    *Resolver
	submissions *Submissions
	client      *fetch.Client
	cache       *cache.Cache
	extractor   *extract.Extractor
	throttle    fetch.Throttle
}

// AdapterOptions wires the EDGAR adapter's collaborators.
type AdapterOptions struct {
	Resolver    *Resolver
	Submissions *Submissions
	Client      *fetch.Client
	Cache       *cache.Cache
	Extractor   *extract.Extractor
	Throttle    fetch.Throttle
}

// NewAdapter creates the EDGAR source adapter.
func NewAdapter(opts AdapterOptions) *Adapter {
	if opts.Extractor == nil {
		opts.Extractor = extract.New()
	}
	if opts.Cache == nil {
		opts.Cache = cache.New()
	}
	return &Adapter{
		resolver:    opts.Resolver,
		submissions: opts.Submissions,
		client:      opts.Client,
		cache:       opts.Cache,
		extractor:   opts.Extractor,
		throttle:    opts.Throttle,
	}
}

func (a *Adapter) Key() string            { return "sec_edgar" }
func (a *Adapter) Name() string           { return "SEC EDGAR" }
func (a *Adapter) Kind() model.SourceKind { return model.KindRegulatory }

// Search resolves the subject's CIK, pulls its relevant recent filings, and
// returns one result per filing whose text mentions the counterparty near a
// collaboration indicator. An unresolvable subject yields no results rather
// than an error; most private companies are not EDGAR registrants.
func (a *Adapter) Search(ctx context.Context, subject, counterparty string) ([]model.RawResult, error) {
	log := zap.L().With(zap.String("source", a.Name()), zap.String("subject", subject))

	cik, err := a.resolver.ResolveCIK(ctx, subject)
	if err != nil {
		if eris.Is(err, ErrNotFound) {
			log.Info("subject is not an EDGAR registrant")
			return nil, nil
		}
		return nil, err
	}

	filings, err := a.submissions.RecentFilings(ctx, cik)
	if err != nil {
		return nil, err
	}
	log.Debug("scanning filings", zap.String("cik", cik), zap.Int("filings", len(filings)))

	var results []model.RawResult
	for _, filing := range filings {
		if err := a.throttle.Wait(ctx); err != nil {
			return results, eris.Wrap(err, "edgar: filing scan cancelled")
		}

		text, err := a.filingText(ctx, filing)
		if err != nil {
			log.Debug("skip filing",
				zap.String("accession", filing.AccessionNumber),
				zap.Error(err),
			)
			continue
		}

		contexts := FindContexts(text, counterparty, DefaultContextWindow)
		if len(contexts) == 0 {
			continue
		}
		// Only windows with collaboration language make it into the note; a
		// bare name mention elsewhere in the filing is not evidence.
		var indicating []string
		for _, c := range contexts {
			if ContainsIndicator(c) {
				indicating = append(indicating, c)
			}
		}
		if len(indicating) == 0 {
			log.Debug("mention without collaboration language",
				zap.String("accession", filing.AccessionNumber),
				zap.String("counterparty", counterparty),
			)
			continue
		}
		joined := strings.Join(indicating, " ... ")

		results = append(results, model.RawResult{
			Title:   filing.Form + " Filing",
			Snippet: joined,
			Date:    filing.FilingDate,
			URL:     filing.IndexURL(),
			Source:  a.Name(),
			DocType: filing.Form,
		})
	}
	return results, nil
}

// filingText returns the extracted plain text of a filing's primary document,
// cached by URL so overlapping counterparty scans fetch each document once.
func (a *Adapter) filingText(ctx context.Context, filing Filing) (string, error) {
	docURL := filing.DocumentURL()
	return a.cache.Do(ctx, "doc:"+docURL, func(ctx context.Context) (string, error) {
		html, err := a.client.GetString(ctx, docURL)
		if err != nil {
			return "", err
		}
		return a.extractor.Extract(html, docURL, nil), nil
	})
}
