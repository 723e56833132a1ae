package domain

const (
	// OpUpdateInventory sets a wine's stock count to an absolute value.
	OpUpdateInventory = "UPDATE_INVENTORY"
	// OpSetOrderStatus sets a supplier order's status to an absolute value.
	OpSetOrderStatus = "SET_ORDER_STATUS"
)

const (
	// WinesKey is the cache key holding the wine catalog.
	WinesKey = "catalog:wines"
	// OrdersKey is the cache key holding supplier orders.
	OrdersKey = "catalog:orders"
)

// Wine is a catalog record as the cellar sees it.
type Wine struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Producer  string `json:"producer,omitempty"`
	Vintage   int    `json:"vintage,omitempty"`
	Inventory int    `json:"inventory"`
}

// OrderStatus is the lifecycle state of a supplier order.
type OrderStatus string

// Known order statuses.
const (
	OrderDraft     OrderStatus = "draft"
	OrderSubmitted OrderStatus = "submitted"
	OrderReceived  OrderStatus = "received"
	OrderCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderDraft, OrderSubmitted, OrderReceived, OrderCancelled:
		return true
	default:
		return false
	}
}

// Order is a supplier order.
type Order struct {
	ID       string      `json:"id"`
	Supplier string      `json:"supplier"`
	Status   OrderStatus `json:"status"`
}

// UpdateInventoryPayload is the payload of an UPDATE_INVENTORY operation.
type UpdateInventoryPayload struct {
	WineID       string `json:"wineId" validate:"required"`
	NewInventory int    `json:"newInventory" validate:"gte=0"`
}

// SetOrderStatusPayload is the payload of a SET_ORDER_STATUS operation.
type SetOrderStatusPayload struct {
	OrderID string      `json:"orderId" validate:"required"`
	Status  OrderStatus `json:"status" validate:"required"`
}
