package entity

import (
	"time"
)

type Review struct {
	ID        int64     `db:"id"`
	ServiceID int64     `db:"service_id"`
	Author    string    `db:"author"`
	Rating    int       `db:"rating"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
}
