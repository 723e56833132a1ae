package ports

import (
	"context"

	"go.trai.ch/cellar/internal/core/domain"
)

// ConnectivityProbe reports whether the remote is reachable.
//
//go:generate mockgen -source=connectivity.go -destination=mocks/mock_connectivity.go -package=mocks
type ConnectivityProbe interface {
	// Check returns connection metadata when reachable, or an error when not.
	Check(ctx context.Context) (domain.ConnectionInfo, error)
}
