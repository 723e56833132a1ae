package reconcile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cellar/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cellar/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cellar/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cellar/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/cellar/internal/core/ports"
	"go.trai.ch/cellar/internal/engine/network"
	"go.trai.ch/cellar/internal/engine/queue"
)

// NodeID is the unique identifier for the reconciliation engine Graft node.
const NodeID graft.ID = "engine.reconcile"

func init() {
	graft.Register(graft.Node[*Engine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			queue.NodeID,
			network.NodeID,
			logger.NodeID,
			metrics.NodeID,
			telemetry.NodeID,
			config.ConfigNodeID,
		},
		Run: func(ctx context.Context) (*Engine, error) {
			q, err := graft.Dep[*queue.Queue](ctx)
			if err != nil {
				return nil, err
			}

			monitor, err := graft.Dep[*network.Monitor](ctx)
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

			provider, err := graft.Dep[*telemetry.Provider](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			return New(q, monitor, log, m, provider.Tracer(), cfg.Retry), nil
		},
	})
}
