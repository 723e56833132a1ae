package facade

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cellar/internal/adapters/config" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cellar/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/cellar/internal/core/ports"
	"go.trai.ch/cellar/internal/engine/cache"
	"go.trai.ch/cellar/internal/engine/network"
	"go.trai.ch/cellar/internal/engine/queue"
	"go.trai.ch/cellar/internal/engine/reconcile"
)

// NodeID is the unique identifier for the data facade Graft node.
const NodeID graft.ID = "engine.facade"

func init() {
	graft.Register(graft.Node[*Facade]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cache.NodeID,
			queue.NodeID,
			network.NodeID,
			reconcile.NodeID,
			logger.NodeID,
			config.ConfigNodeID,
		},
		Run: func(ctx context.Context) (*Facade, error) {
			store, err := graft.Dep[*cache.Store](ctx)
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

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			return New(store, q, monitor, engine, log, cfg.Cache.DefaultTTL), nil
		},
	})
}
