package research

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/collab-radar/internal/fetch"
	"github.com/sells-group/collab-radar/internal/model"
	"github.com/sells-group/collab-radar/internal/source"
)

// stubAdapter returns fixed results, or an error, per Search call.
type stubAdapter struct {
	key     string
	kind    model.SourceKind
	results []model.RawResult
	err     error
	calls   int
}

func (s *stubAdapter) Key() string            { return s.key }
func (s *stubAdapter) Name() string           { return s.key }
func (s *stubAdapter) Kind() model.SourceKind { return s.kind }
func (s *stubAdapter) Search(context.Context, string, string) ([]model.RawResult, error) {
	s.calls++
	return s.results, s.err
}

func newsResult(url string) model.RawResult {
	return model.RawResult{Title: "Acme and Globex", Snippet: "partnership", URL: url, Source: "stub"}
}

func TestAggregatorRun(t *testing.T) {
	news := &stubAdapter{key: "news", kind: model.KindNews, results: []model.RawResult{newsResult("https://n.test/1")}}
	press := &stubAdapter{key: "press", kind: model.KindPressRelease, results: []model.RawResult{newsResult("https://p.test/1")}}

	reg := source.NewRegistry()
	reg.Register(news)
	reg.Register(press)

	agg := NewAggregator(reg, fetch.Throttle{})
	records, err := agg.Run(context.Background(), model.ResearchRequest{
		SubjectCompany: "Acme",
		Counterparties: []string{"Globex", "Initech"},
	})
	require.NoError(t, err)

	// Two adapters, two counterparties, one record each.
	assert.Len(t, records, 4)
	assert.Equal(t, 2, news.calls)
	assert.Equal(t, 2, press.calls)

	// Counterparty-major, registration-order-minor.
	assert.Equal(t, "Globex", records[0].Counterparty)
	assert.Equal(t, "News Article", records[0].SourceType)
	assert.Equal(t, "Press Release", records[1].SourceType)
	assert.Equal(t, "Initech", records[2].Counterparty)
}

func TestAggregatorPartialFailure(t *testing.T) {
	broken := &stubAdapter{key: "broken", kind: model.KindNews, err: eris.New("rendering exploded")}
	working := &stubAdapter{key: "working", kind: model.KindPressRelease, results: []model.RawResult{newsResult("https://p.test/1")}}

	reg := source.NewRegistry()
	reg.Register(broken)
	reg.Register(working)

	agg := NewAggregator(reg, fetch.Throttle{})
	records, err := agg.Run(context.Background(), model.ResearchRequest{
		SubjectCompany: "Acme",
		Counterparties: []string{"Globex"},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Press Release", records[0].SourceType)
}

func TestAggregatorEnabledSources(t *testing.T) {
	news := &stubAdapter{key: "news", kind: model.KindNews, results: []model.RawResult{newsResult("https://n.test/1")}}
	press := &stubAdapter{key: "press", kind: model.KindPressRelease, results: []model.RawResult{newsResult("https://p.test/1")}}

	reg := source.NewRegistry()
	reg.Register(news)
	reg.Register(press)

	agg := NewAggregator(reg, fetch.Throttle{})
	records, err := agg.Run(context.Background(), model.ResearchRequest{
		SubjectCompany: "Acme",
		Counterparties: []string{"Globex"},
		EnabledSources: map[string]bool{"press": true},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 0, news.calls)
	assert.Equal(t, 1, press.calls)
}

func TestAggregatorUnknownSourceKey(t *testing.T) {
	agg := NewAggregator(source.NewRegistry(), fetch.Throttle{})
	_, err := agg.Run(context.Background(), model.ResearchRequest{
		SubjectCompany: "Acme",
		Counterparties: []string{"Globex"},
		EnabledSources: map[string]bool{"typo": true},
	})
	assert.Error(t, err)
}

func TestAggregatorValidation(t *testing.T) {
	agg := NewAggregator(source.NewRegistry(), fetch.Throttle{})

	_, err := agg.Run(context.Background(), model.ResearchRequest{Counterparties: []string{"Globex"}})
	assert.Error(t, err)

	_, err = agg.Run(context.Background(), model.ResearchRequest{SubjectCompany: "Acme"})
	assert.Error(t, err)

	_, err = agg.Run(context.Background(), model.ResearchRequest{
		SubjectCompany: "Acme",
		Counterparties: []string{"Globex", ""},
	})
	assert.Error(t, err)
}
