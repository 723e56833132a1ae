package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cellar/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/cellar/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/cellar/internal/adapters/metrics"   //nolint:depguard // Wired in app layer
	"go.trai.ch/cellar/internal/adapters/remote"    //nolint:depguard // Wired in app layer
	"go.trai.ch/cellar/internal/adapters/storage"   //nolint:depguard // Wired in app layer
	"go.trai.ch/cellar/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/cellar/internal/core/ports"
	"go.trai.ch/cellar/internal/engine/cache"
	"go.trai.ch/cellar/internal/engine/facade"
	"go.trai.ch/cellar/internal/engine/network"
	"go.trai.ch/cellar/internal/engine/queue"
	"go.trai.ch/cellar/internal/engine/reconcile"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

// levelSetter is implemented by loggers whose output can be reconfigured.
type levelSetter interface {
	SetJSON(enabled bool)
	SetLevel(name string)
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ConfigNodeID,
			logger.NodeID,
			remote.NodeID,
			storage.NodeID,
			metrics.NodeID,
			telemetry.NodeID,
			cache.NodeID,
			queue.NodeID,
			network.NodeID,
			reconcile.NodeID,
			facade.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}

//nolint:cyclop // one lookup per dependency
func runAppNode(ctx context.Context) (*App, error) {
	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	if l, ok := log.(levelSetter); ok {
		l.SetJSON(cfg.Logging.JSON)
		l.SetLevel(cfg.Logging.Level)
	}

	catalog, err := graft.Dep[ports.Catalog](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.Storage](ctx)
	if err != nil {
		return nil, err
	}

	m, err := graft.Dep[*metrics.Prometheus](ctx)
	if err != nil {
		return nil, err
	}

	provider, err := graft.Dep[*telemetry.Provider](ctx)
	if err != nil {
		return nil, err
	}

	c, err := graft.Dep[*cache.Store](ctx)
	if err != nil {
		return nil, err
	}

	q, err := graft.Dep[*queue.Queue](ctx)
	if err != nil {
		return nil, err
	}

	monitor, err := graft.Dep[*network.Monitor](ctx)
	if err != nil {
		return nil, err
	}

	engine, err := graft.Dep[*reconcile.Engine](ctx)
	if err != nil {
		return nil, err
	}

	f, err := graft.Dep[*facade.Facade](ctx)
	if err != nil {
		return nil, err
	}

	return New(Deps{
		Config:    cfg,
		Logger:    log,
		Catalog:   catalog,
		Storage:   store,
		Cache:     c,
		Queue:     q,
		Monitor:   monitor,
		Engine:    engine,
		Facade:    f,
		Metrics:   m,
		Telemetry: provider,
	}), nil
}
