// Package research runs the end-to-end pipeline: fan a (subject,
// counterparty) pair out across the enabled sources, classify what comes
// back, and record the completed run.
package research

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/collab-radar/internal/fetch"
	"github.com/sells-group/collab-radar/internal/model"
	"github.com/sells-group/collab-radar/internal/source"
)

// Aggregator fans research requests out across source adapters. Sources run
// concurrently per counterparty; a failing source contributes nothing and is
// logged, it never fails the run.
type Aggregator struct {
	registry *source.Registry
	pause    fetch.Throttle // between counterparties, spreads outbound load
}

// NewAggregator creates an Aggregator over the given source registry.
func NewAggregator(registry *source.Registry, pause fetch.Throttle) *Aggregator {
	return &Aggregator{registry: registry, pause: pause}
}

// Run executes the pipeline for one request and returns all evidence found,
// ordered by counterparty then source registration order. Only request
// validation, unknown source keys, and context cancellation are fatal.
func (a *Aggregator) Run(ctx context.Context, req model.ResearchRequest) ([]model.EvidenceRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	adapters, err := a.registry.Enabled(req.EnabledSources)
	if err != nil {
		return nil, err
	}

	log := zap.L().With(zap.String("subject", req.SubjectCompany))
	log.Info("research run starting",
		zap.Int("counterparties", len(req.Counterparties)),
		zap.Int("sources", len(adapters)),
	)

	var all []model.EvidenceRecord
	for i, counterparty := range req.Counterparties {
		if i > 0 {
			if err := a.pause.Wait(ctx); err != nil {
				return all, err
			}
		}
		records := a.researchPair(ctx, adapters, req.SubjectCompany, counterparty)
		log.Info("counterparty complete",
			zap.String("counterparty", counterparty),
			zap.Int("evidence", len(records)),
		)
		all = append(all, records...)
	}
	return all, nil
}

// researchPair queries every adapter for one pair concurrently. Results are
// collected per adapter slot so output order does not depend on scheduling.
func (a *Aggregator) researchPair(ctx context.Context, adapters []source.Adapter, subject, counterparty string) []model.EvidenceRecord {
	perAdapter := make([][]model.EvidenceRecord, len(adapters))

	g, gctx := errgroup.WithContext(ctx)
	for i, ad := range adapters {
		g.Go(func() error {
			raw, err := ad.Search(gctx, subject, counterparty)
			if err != nil {
				zap.L().Warn("source failed, continuing without it",
					zap.String("source", ad.Name()),
					zap.String("counterparty", counterparty),
					zap.Error(err),
				)
				return nil
			}
			perAdapter[i] = Classify(subject, counterparty, ad.Kind(), raw)
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors

	var records []model.EvidenceRecord
	for _, recs := range perAdapter {
		records = append(records, recs...)
	}
	return records
}
