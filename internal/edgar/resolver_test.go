package edgar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/collab-radar/internal/cache"
	"github.com/sells-group/collab-radar/internal/fetch"
)

const tickersJSON = `{
	"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."},
	"1": {"cik_str": 789019, "ticker": "MSFT", "title": "Microsoft Corp"},
	"2": {"cik_str": 1318605, "ticker": "TSLA", "title": "Tesla, Inc."},
	"3": {"cik_str": 200406, "ticker": "JNJ", "title": "Johnson & Johnson"}
}`

func newTestResolver(t *testing.T, browseHTML string) (*Resolver, *atomic.Int32) {
	t.Helper()
	var tickerHits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/files/company_tickers.json", func(w http.ResponseWriter, r *http.Request) {
		tickerHits.Add(1)
		w.Write([]byte(tickersJSON))
	})
	mux.HandleFunc("/cgi-bin/browse-edgar", func(w http.ResponseWriter, r *http.Request) {
		if browseHTML == "" {
			w.Write([]byte("<html><body>No matching companies found.</body></html>"))
			return
		}
		w.Write([]byte(browseHTML))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	r := NewResolver(fetch.NewClient(fetch.ClientOptions{}), cache.New())
	r.tickersURL = srv.URL + "/files/company_tickers.json"
	r.browseURL = srv.URL + "/cgi-bin/browse-edgar?company=%s&owner=exclude&action=getcompany"
	return r, &tickerHits
}

func TestResolveCIKExactTicker(t *testing.T) {
	r, _ := newTestResolver(t, "")
	cik, err := r.ResolveCIK(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "0000320193", cik)
}

func TestResolveCIKExactTitle(t *testing.T) {
	r, _ := newTestResolver(t, "")
	cik, err := r.ResolveCIK(context.Background(), "Microsoft Corp")
	require.NoError(t, err)
	assert.Equal(t, "0000789019", cik)
}

func TestResolveCIKTitlePrefix(t *testing.T) {
	r, _ := newTestResolver(t, "")
	cik, err := r.ResolveCIK(context.Background(), "Tesla")
	require.NoError(t, err)
	assert.Equal(t, "0001318605", cik)
}

func TestResolveCIKTitleSubstring(t *testing.T) {
	r, _ := newTestResolver(t, "")
	cik, err := r.ResolveCIK(context.Background(), "& Johnson")
	require.NoError(t, err)
	assert.Equal(t, "0000200406", cik)
}

func TestResolveCIKCaseFolded(t *testing.T) {
	r, _ := newTestResolver(t, "")
	cik, err := r.ResolveCIK(context.Background(), "apple inc.")
	require.NoError(t, err)
	assert.Equal(t, "0000320193", cik)
}

func TestResolveCIKNotFoundCachesNegative(t *testing.T) {
	r, _ := newTestResolver(t, "")

	_, err := r.ResolveCIK(context.Background(), "Vandelay Industries")
	assert.ErrorIs(t, err, ErrNotFound)

	// The miss is cached; a second lookup returns without re-querying.
	_, err = r.ResolveCIK(context.Background(), "Vandelay Industries")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveCIKTickerFileLoadedOnce(t *testing.T) {
	r, hits := newTestResolver(t, "")
	for _, name := range []string{"AAPL", "MSFT", "Tesla"} {
		_, err := r.ResolveCIK(context.Background(), name)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestResolveCIKBrowseFallbackLandingPage(t *testing.T) {
	html := `<html><body><div class="companyInfo">
		<a href="/cgi-bin/browse-edgar?action=getcompany&CIK=1018724&type=10-K">Vandelay Industries CIK#: 1018724</a>
	</div></body></html>`
	r, _ := newTestResolver(t, html)

	cik, err := r.ResolveCIK(context.Background(), "Vandelay Industries")
	require.NoError(t, err)
	assert.Equal(t, "0001018724", cik)
}

func TestResolveCIKBrowseFallbackResultsTable(t *testing.T) {
	html := `<html><body><table class="tableFile2" summary="Results">
		<tr><th>CIK</th><th>Company</th></tr>
		<tr><td><a href="#">0000051143</a></td><td>INTERNATIONAL BUSINESS MACHINES CORP</td></tr>
		<tr><td><a href="#">0001045810</a></td><td>VANDELAY INDUSTRIES INC</td></tr>
	</table></body></html>`
	r, _ := newTestResolver(t, html)

	cik, err := r.ResolveCIK(context.Background(), "Vandelay Industries")
	require.NoError(t, err)
	assert.Equal(t, "0001045810", cik)
}

func TestPadCIK(t *testing.T) {
	assert.Equal(t, "0000320193", PadCIK(320193))
	assert.Equal(t, "0000000001", PadCIK(1))
}
