package research

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/collab-radar/internal/model"
	"github.com/sells-group/collab-radar/internal/store"
)

// Service runs research requests and records completed runs for later
// export.
type Service struct {
	agg   *Aggregator
	store store.Store
}

// NewService creates a Service backed by the given aggregator and run store.
func NewService(agg *Aggregator, st store.Store) *Service {
	return &Service{agg: agg, store: st}
}

// Research executes one run and persists it. The run ID in the response can
// be used to retrieve the run later.
func (s *Service) Research(ctx context.Context, req model.ResearchRequest) (*model.ResearchResponse, error) {
	records, err := s.agg.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	run := model.ResearchRun{
		ID:             uuid.New().String(),
		SubjectCompany: req.SubjectCompany,
		Results:        records,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.SaveRun(ctx, run); err != nil {
		return nil, eris.Wrap(err, "research: save run")
	}
	zap.L().Info("research run recorded",
		zap.String("run_id", run.ID),
		zap.Int("evidence", len(records)),
	)

	return &model.ResearchResponse{RunID: run.ID, Results: records}, nil
}

// LastRun returns the most recently recorded run.
func (s *Service) LastRun(ctx context.Context) (*model.ResearchRun, error) {
	return s.store.LastRun(ctx)
}

// GetRun returns a recorded run by ID.
func (s *Service) GetRun(ctx context.Context, id string) (*model.ResearchRun, error) {
	return s.store.GetRun(ctx, id)
}
