package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cellar/internal/adapters/config"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cellar/internal/adapters/logger"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cellar/internal/adapters/metrics" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cellar/internal/adapters/storage" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/cellar/internal/core/ports"
)

// NodeID is the unique identifier for the cache store Graft node.
const NodeID graft.ID = "engine.cache"

func init() {
	graft.Register(graft.Node[*Store]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			storage.NodeID,
			logger.NodeID,
			metrics.NodeID,
			config.ConfigNodeID,
		},
		Run: func(ctx context.Context) (*Store, error) {
			store, err := graft.Dep[ports.Storage](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			m, err := graft.Dep[*metrics.Prometheus](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			return New(store, log, m, cfg.Cache), nil
		},
	})
}
