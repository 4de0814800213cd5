package entity

import (
	"time"

	"github.com/google/uuid"
)

// CartItem holds one service in a user's cart. OptionIDs reference the
// service's add-on list; quantity never goes below one.
type CartItem struct {
	ID        int64     `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	ServiceID int64     `db:"service_id"`
	Quantity  int       `db:"quantity"`
	OptionIDs []int64   `db:"option_ids"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
