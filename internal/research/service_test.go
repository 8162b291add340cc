package research

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/collab-radar/internal/fetch"
	"github.com/sells-group/collab-radar/internal/model"
	"github.com/sells-group/collab-radar/internal/source"
	"github.com/sells-group/collab-radar/internal/store"
)

func newTestService(adapters ...source.Adapter) (*Service, *store.MemoryStore) {
	reg := source.NewRegistry()
	for _, a := range adapters {
		reg.Register(a)
	}
	st := store.NewMemory()
	return NewService(NewAggregator(reg, fetch.Throttle{}), st), st
}

func TestServiceResearchRecordsRun(t *testing.T) {
	svc, st := newTestService(&stubAdapter{
		key: "news", kind: model.KindNews,
		results: []model.RawResult{newsResult("https://n.test/1")},
	})

	resp, err := svc.Research(context.Background(), model.ResearchRequest{
		SubjectCompany: "Acme",
		Counterparties: []string{"Globex"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.RunID)
	assert.Len(t, resp.Results, 1)

	run, err := st.LastRun(context.Background())
	require.NoError(t, err)
	assert.Equal(t, resp.RunID, run.ID)
	assert.Equal(t, "Acme", run.SubjectCompany)
	assert.Equal(t, resp.Results, run.Results)
	assert.False(t, run.CreatedAt.IsZero())
}

func TestServiceLastAndGetRun(t *testing.T) {
	svc, _ := newTestService(&stubAdapter{
		key: "news", kind: model.KindNews,
		results: []model.RawResult{newsResult("https://n.test/1")},
	})

	_, err := svc.LastRun(context.Background())
	assert.ErrorIs(t, err, store.ErrNoRuns)

	first, err := svc.Research(context.Background(), model.ResearchRequest{
		SubjectCompany: "Acme", Counterparties: []string{"Globex"},
	})
	require.NoError(t, err)
	second, err := svc.Research(context.Background(), model.ResearchRequest{
		SubjectCompany: "Initech", Counterparties: []string{"Globex"},
	})
	require.NoError(t, err)

	last, err := svc.LastRun(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second.RunID, last.ID)

	got, err := svc.GetRun(context.Background(), first.RunID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.SubjectCompany)

	_, err = svc.GetRun(context.Background(), "nope")
	assert.Error(t, err)
}

func TestServiceValidationError(t *testing.T) {
	svc, st := newTestService()
	_, err := svc.Research(context.Background(), model.ResearchRequest{})
	assert.Error(t, err)

	_, err = st.LastRun(context.Background())
	assert.ErrorIs(t, err, store.ErrNoRuns)
}
