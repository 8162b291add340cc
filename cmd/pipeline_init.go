package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/collab-radar/internal/cache"
	"github.com/sells-group/collab-radar/internal/edgar"
	"github.com/sells-group/collab-radar/internal/extract"
	"github.com/sells-group/collab-radar/internal/fetch"
	"github.com/sells-group/collab-radar/internal/model"
	"github.com/sells-group/collab-radar/internal/research"
	"github.com/sells-group/collab-radar/internal/source"
	"github.com/sells-group/collab-radar/internal/store"
)

// pipelineEnv holds the initialized store, source registry, and research
// service needed by the research/serve/export commands.
type pipelineEnv struct {
	Store    store.Store
	Registry *source.Registry
	Service  *research.Service
}

// Close releases resources held by the pipeline environment.
func (pe *pipelineEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

// initPipeline sets up persistence, the shared fetch/extract layers, and all
// source adapters. Callers should defer env.Close().
func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	memo := cache.New()
	extractor := extract.New()

	navTimeout := secs(cfg.Fetch.NavTimeoutSecs)
	selectorWait := secs(cfg.Fetch.SelectorWaitSecs)

	newsRenderer := fetch.NewRenderer(fetch.RendererOptions{
		NavTimeout:   navTimeout,
		SelectorWait: selectorWait,
		Throttle:     fetch.Throttle{Base: ms(cfg.Fetch.NewsThrottleMs), Jitter: ms(cfg.Fetch.NewsJitterMs)},
	})
	pressRenderer := fetch.NewRenderer(fetch.RendererOptions{
		NavTimeout:   navTimeout,
		SelectorWait: selectorWait,
		Throttle:     fetch.Throttle{Base: ms(cfg.Fetch.PressThrottleMs), Jitter: ms(cfg.Fetch.PressJitterMs)},
	})

	registry := source.NewRegistry()
	for _, sc := range source.BuiltinConfigs() {
		renderer := newsRenderer
		if sc.Kind == model.KindPressRelease {
			renderer = pressRenderer
		}
		registry.Register(source.NewSelectorAdapter(sc, renderer))
	}

	// EDGAR runs over plain HTTP; SEC fair access requires a descriptive UA.
	client := fetch.NewClient(fetch.ClientOptions{
		UserAgent: cfg.EDGAR.UserAgent,
		Timeout:   secs(cfg.EDGAR.TimeoutSecs),
	})
	registry.Register(edgar.NewAdapter(edgar.AdapterOptions{
		Resolver: edgar.NewResolver(client, memo),
		Submissions: edgar.NewSubmissions(client, edgar.SubmissionsOptions{
			MaxFilings:  cfg.EDGAR.MaxFilings,
			WindowYears: cfg.EDGAR.WindowYears,
		}),
		Client:    client,
		Cache:     memo,
		Extractor: extractor,
		Throttle:  fetch.Throttle{Base: ms(cfg.EDGAR.ThrottleMs), Jitter: ms(cfg.EDGAR.JitterMs)},
	}))

	zap.L().Info("pipeline initialized", zap.Strings("sources", registry.AllKeys()))

	agg := research.NewAggregator(registry, fetch.Throttle{
		Base:   ms(cfg.Fetch.NewsThrottleMs),
		Jitter: ms(cfg.Fetch.NewsJitterMs),
	})

	return &pipelineEnv{
		Store:    st,
		Registry: registry,
		Service:  research.NewService(agg, st),
	}, nil
}

func initStore(ctx context.Context) (store.Store, error) {
	if cfg.Store.Path == "" {
		zap.L().Debug("no store path configured, runs held in memory")
		return store.NewMemory(), nil
	}
	st, err := store.NewSQLite(ctx, cfg.Store.Path)
	if err != nil {
		return nil, eris.Wrap(err, "open run store")
	}
	return st, nil
}

func secs(n int) time.Duration { return time.Duration(n) * time.Second }
func ms(n int) time.Duration   { return time.Duration(n) * time.Millisecond }
