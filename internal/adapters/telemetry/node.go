package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/cellar/internal/adapters/config"
	"go.trai.ch/cellar/internal/core/domain"
)

// NodeID is the unique identifier for the telemetry provider Graft node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[*Provider]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID},
		Run: func(ctx context.Context) (*Provider, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewProvider(cfg.Telemetry, os.Stderr)
		},
	})
}
