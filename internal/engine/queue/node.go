package queue

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

// NodeID is the unique identifier for the pending operation queue Graft node.
const NodeID graft.ID = "engine.queue"

func init() {
	graft.Register(graft.Node[*Queue]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			storage.NodeID,
			logger.NodeID,
			metrics.NodeID,
			config.ConfigNodeID,
		},
		Run: func(ctx context.Context) (*Queue, error) {
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

			return New(store, log, m, cfg.Queue), nil
		},
	})
}
