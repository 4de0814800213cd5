package entity

import (
	"time"
)

type ServiceCategory string

const (
	CategoryResidential ServiceCategory = "residential"
	CategoryCommercial  ServiceCategory = "commercial"
	CategorySpecialized ServiceCategory = "specialized"
)

// FAQItem is stored as jsonb on the service row
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Service struct {
	ID              int64           `db:"id"`
	Title           string          `db:"title"`
	Description     string          `db:"description"`
	LongDescription *string         `db:"long_description"`
	Price           float64         `db:"price"`
	PriceUnit       string          `db:"price_unit"`
	ImageURL        *string         `db:"image_url"`
	Category        ServiceCategory `db:"category"`
	Duration        string          `db:"duration"`
	Features        []string        `db:"features"`
	FAQ             []FAQItem       `db:"faq"`
	Active          bool            `db:"active"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
	DeletedAt       *time.Time      `db:"deleted_at"`
}

// ServiceOption is a priced add-on belonging to exactly one service.
// IDs are unique within the owning service's option list.
type ServiceOption struct {
	ID        int64     `db:"id"`
	ServiceID int64     `db:"service_id"`
	Title     string    `db:"title"`
	Price     float64   `db:"price"`
	Position  int       `db:"position"`
	CreatedAt time.Time `db:"created_at"`
}
