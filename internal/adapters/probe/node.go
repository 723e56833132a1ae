package probe

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cellar/internal/adapters/config"
	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/cellar/internal/core/ports"
)

// NodeID is the unique identifier for the connectivity probe Graft node.
const NodeID graft.ID = "adapter.probe"

func init() {
	graft.Register(graft.Node[ports.ConnectivityProbe]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID},
		Run: func(ctx context.Context) (ports.ConnectivityProbe, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.Network, cfg.Remote.BaseURL)
		},
	})
}
