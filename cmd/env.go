package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/stockagent/internal/agent"
	"github.com/sells-group/stockagent/internal/capability"
	"github.com/sells-group/stockagent/internal/mapping"
	"github.com/sells-group/stockagent/internal/memory"
	"github.com/sells-group/stockagent/internal/reconcile"
	"github.com/sells-group/stockagent/internal/store"
	"github.com/sells-group/stockagent/pkg/alphavantage"
	"github.com/sells-group/stockagent/pkg/llm"
)

// agentEnv bundles the wired components shared by the commands.
type agentEnv struct {
	Store    store.Store
	Alpha    alphavantage.Client
	LLM      llm.Client
	Registry *capability.Registry
	Engine   *reconcile.Engine
	Index    *mapping.Index
	Router   *agent.Router
	Sessions *memory.Manager
}

// initStore opens the configured store backend.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.New("unknown store driver: " + cfg.Store.Driver)
	}
}

// initAgent wires the full agent stack from config.
func initAgent(ctx context.Context) (*agentEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "init store")
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	av := alphavantage.NewClient(cfg.AlphaVantage.Key,
		alphavantage.WithBaseURL(cfg.AlphaVantage.BaseURL),
		alphavantage.WithTimeout(time.Duration(cfg.AlphaVantage.TimeoutSecs)*time.Second),
	)

	lm := llm.NewClient(cfg.LLM.Key, llm.Options{
		Model:     cfg.LLM.Model,
		MaxTokens: cfg.LLM.MaxTokens,
		Timeout:   time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
	})

	engine := reconcile.New(st, av, cfg.Reconcile.ScriptPath, cfg.Reconcile.FallbackScriptURL)
	ix := mapping.NewIndex(cfg.Corpus.Dir)

	registry, err := capability.DefaultRegistry(av, st, engine, ix, lm)
	if err != nil {
		st.Close()
		return nil, eris.Wrap(err, "build capability registry")
	}

	orch := agent.NewOrchestrator(lm, registry, cfg.Agent.MaxIterations)

	return &agentEnv{
		Store:    st,
		Alpha:    av,
		LLM:      lm,
		Registry: registry,
		Engine:   engine,
		Index:    ix,
		Router:   agent.NewRouter(lm, orch),
		Sessions: memory.NewManager(),
	}, nil
}

// Close releases held resources.
func (e *agentEnv) Close() {
	if e.Store != nil {
		e.Store.Close()
	}
}
