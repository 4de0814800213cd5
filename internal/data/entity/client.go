package entity

import (
	"time"
)

// Client is the back-office view of a customer, keyed by phone number and
// upserted whenever a booking comes in.
type Client struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Phone     string    `db:"phone"`
	Email     *string   `db:"email"`
	Address   *string   `db:"address"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
