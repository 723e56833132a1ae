package storage

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cellar/internal/adapters/config"
	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/cellar/internal/core/ports"
)

// NodeID is the unique identifier for the durable store Graft node.
const NodeID graft.ID = "adapter.storage"

func init() {
	graft.Register(graft.Node[ports.Storage]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID},
		Run: func(ctx context.Context) (ports.Storage, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return Open(cfg.Storage)
		},
	})
}
