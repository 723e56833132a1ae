package network

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cellar/internal/adapters/logger"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cellar/internal/adapters/metrics" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cellar/internal/adapters/probe"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cellar/internal/core/ports"
)

// NodeID is the unique identifier for the network monitor Graft node.
const NodeID graft.ID = "engine.network"

func init() {
	graft.Register(graft.Node[*Monitor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			probe.NodeID,
			logger.NodeID,
			metrics.NodeID,
		},
		Run: func(ctx context.Context) (*Monitor, error) {
			p, err := graft.Dep[ports.ConnectivityProbe](ctx)
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

			return New(p, log, m), nil
		},
	})
}
