package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// NextStatuses returns the admin-selectable transitions from s.
// Cancelled and completed are terminal.
func (s BookingStatus) NextStatuses() []BookingStatus {
	switch s {
	case BookingStatusPending:
		return []BookingStatus{BookingStatusConfirmed, BookingStatusCancelled}
	case BookingStatusConfirmed:
		return []BookingStatus{BookingStatusCompleted, BookingStatusCancelled}
	default:
		return nil
	}
}

type Booking struct {
	ID           int64         `db:"id"`
	Reference    string        `db:"reference"`
	ServiceID    int64         `db:"service_id"`
	ServiceTitle string        `db:"service_title"`
	ScheduledAt  time.Time     `db:"scheduled_at"`
	Address      string        `db:"address"`
	ClientName   string        `db:"client_name"`
	ClientPhone  string        `db:"client_phone"`
	ClientEmail  *string       `db:"client_email"`
	Comments     *string       `db:"comments"`
	TotalAmount  float64       `db:"total_amount"`
	Status       BookingStatus `db:"status"`
	CancelReason *string       `db:"cancel_reason"`
	ClientID     int64         `db:"client_id"`
	UserID       *uuid.UUID    `db:"user_id"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

// BookingOption snapshots a selected add-on at booking time so later edits
// to the service's option list do not rewrite history.
type BookingOption struct {
	BookingID int64   `db:"booking_id"`
	OptionID  int64   `db:"option_id"`
	Title     string  `db:"title"`
	Price     float64 `db:"price"`
}
