package entity

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID        int64       `db:"id"`
	Reference string      `db:"reference"`
	UserID    uuid.UUID   `db:"user_id"`
	Subtotal  float64     `db:"subtotal"`
	Discount  float64     `db:"discount"`
	Total     float64     `db:"total"`
	PromoCode *string     `db:"promo_code"`
	Status    OrderStatus `db:"status"`
	CreatedAt time.Time   `db:"created_at"`
}

// OrderItemOption is stored as jsonb on the order item row
type OrderItemOption struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// OrderItem snapshots the service at checkout time
type OrderItem struct {
	ID        int64             `db:"id"`
	OrderID   int64             `db:"order_id"`
	ServiceID int64             `db:"service_id"`
	Title     string            `db:"title"`
	Price     float64           `db:"price"`
	Quantity  int               `db:"quantity"`
	Options   []OrderItemOption `db:"options"`
}
