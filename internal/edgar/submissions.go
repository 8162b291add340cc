package edgar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/collab-radar/internal/fetch"
)

const (
	submissionsURL = "https://data.sec.gov/submissions/CIK%s.json"
	archivesURL    = "https://www.sec.gov/Archives/edgar/data"
)

// relevantForms are the filing types worth scanning for relationship
// evidence: annual and quarterly reports plus material-event disclosures.
var relevantForms = map[string]bool{
	"10-K": true,
	"10-Q": true,
	"8-K":  true,
}

// Filing is one filing selected from a registrant's recent submissions.
// archiveBase overrides the production archive host in tests.
type Filing struct {
	CIK             string
	AccessionNumber string
	Form            string
	FilingDate      string
	PrimaryDoc      string

	archiveBase string
}

func (f Filing) base() string {
	if f.archiveBase == "" {
		return archivesURL
	}
	return f.archiveBase
}

// DocumentURL is the archive URL of the filing's primary document.
func (f Filing) DocumentURL() string {
	return fmt.Sprintf("%s/%s/%s/%s",
		f.base(), strings.TrimLeft(f.CIK, "0"), accessionPath(f.AccessionNumber), f.PrimaryDoc)
}

// IndexURL is the human-readable filing index page, used as the evidence
// link.
func (f Filing) IndexURL() string {
	return fmt.Sprintf("%s/%s/%s/%s-index.htm",
		f.base(), strings.TrimLeft(f.CIK, "0"), accessionPath(f.AccessionNumber), f.AccessionNumber)
}

func accessionPath(accession string) string {
	return strings.ReplaceAll(accession, "-", "")
}

// submissionsResponse mirrors the submissions API shape. Filings arrive as
// parallel arrays, one per field, aligned by index.
type submissionsResponse struct {
	Filings struct {
		Recent filingList `json:"recent"`
	} `json:"filings"`
}

type filingList struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	Form            []string `json:"form"`
	PrimaryDoc      []string `json:"primaryDocument"`
}

// SubmissionsOptions bound how much filing history is scanned.
type SubmissionsOptions struct {
	MaxFilings  int // cap after filtering
	WindowYears int // how far back filings are considered
}

// Submissions fetches and filters a registrant's recent filing list.
type Submissions struct {
	client      *fetch.Client
	opts        SubmissionsOptions
	baseURL     string
	archivesURL string
	now         func() time.Time
}

// NewSubmissions creates a Submissions reader with defaults filled in.
func NewSubmissions(client *fetch.Client, opts SubmissionsOptions) *Submissions {
	if opts.MaxFilings <= 0 {
		opts.MaxFilings = 25
	}
	if opts.WindowYears <= 0 {
		opts.WindowYears = 2
	}
	return &Submissions{client: client, opts: opts, baseURL: submissionsURL, archivesURL: archivesURL, now: time.Now}
}

// RecentFilings returns the registrant's relevant recent filings, newest
// first as the API orders them: relevant form types only, HTML primary
// documents only, filed inside the lookback window, capped at MaxFilings.
func (s *Submissions) RecentFilings(ctx context.Context, cik string) ([]Filing, error) {
	var resp submissionsResponse
	if err := s.client.GetJSON(ctx, fmt.Sprintf(s.baseURL, cik), &resp); err != nil {
		return nil, eris.Wrapf(err, "edgar: fetch submissions for CIK %s", cik)
	}

	cutoff := s.now().AddDate(-s.opts.WindowYears, 0, 0)

	recent := resp.Filings.Recent
	var filings []Filing
	for i := range recent.AccessionNumber {
		accession := recent.AccessionNumber[i]
		if accession == "" {
			continue
		}
		form := safeIndex(recent.Form, i)
		if !relevantForms[form] {
			continue
		}
		doc := safeIndex(recent.PrimaryDoc, i)
		if !strings.HasSuffix(doc, ".htm") && !strings.HasSuffix(doc, ".html") {
			continue
		}
		dateStr := safeIndex(recent.FilingDate, i)
		filed, err := time.Parse("2006-01-02", dateStr)
		if err != nil || filed.Before(cutoff) {
			continue
		}

		filings = append(filings, Filing{
			CIK:             cik,
			AccessionNumber: accession,
			Form:            form,
			FilingDate:      dateStr,
			PrimaryDoc:      doc,
			archiveBase:     s.archivesURL,
		})
		if len(filings) >= s.opts.MaxFilings {
			break
		}
	}
	return filings, nil
}

// safeIndex returns the string at index i, or empty string if out of bounds.
// The parallel arrays are usually aligned but the API does not guarantee it.
func safeIndex(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}
