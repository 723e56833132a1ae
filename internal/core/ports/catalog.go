package ports

import (
	"context"

	"go.trai.ch/cellar/internal/core/domain"
)

// Catalog is the remote inventory and ordering service.
//
//go:generate mockgen -source=catalog.go -destination=mocks/mock_catalog.go -package=mocks
type Catalog interface {
	// ListWines fetches the full wine catalog.
	ListWines(ctx context.Context) ([]domain.Wine, error)

	// SetInventory sets the absolute stock count of a wine.
	// idempotencyKey lets the remote deduplicate replays and may be empty.
	SetInventory(ctx context.Context, wineID string, inventory int, idempotencyKey string) error

	// ListOrders fetches supplier orders.
	ListOrders(ctx context.Context) ([]domain.Order, error)

	// SetOrderStatus sets the absolute status of an order.
	SetOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, idempotencyKey string) error
}
