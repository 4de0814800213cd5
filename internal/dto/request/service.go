package request

import "cleaning-booking/internal/data/entity"

type ServiceOptionRequest struct {
	Title string  `json:"title" validate:"required,max=200"`
	Price float64 `json:"price" validate:"min=0"`
}

type CreateServiceRequest struct {
	Title           string                 `json:"title" validate:"required,max=200"`
	Description     string                 `json:"description" validate:"required"`
	LongDescription *string                `json:"long_description,omitempty"`
	Price           float64                `json:"price" validate:"required,min=0"`
	PriceUnit       string                 `json:"price_unit" validate:"required,max=50"`
	ImageURL        *string                `json:"image_url,omitempty" validate:"omitempty,url"`
	Category        string                 `json:"category" validate:"required,oneof=residential commercial specialized"`
	Duration        string                 `json:"duration" validate:"required,max=100"`
	Features        []string               `json:"features,omitempty"`
	FAQ             []entity.FAQItem       `json:"faq,omitempty"`
	Options         []ServiceOptionRequest `json:"options,omitempty" validate:"dive"`
	Active          *bool                  `json:"active,omitempty"`
}

type UpdateServiceRequest struct {
	Title           *string                 `json:"title,omitempty" validate:"omitempty,max=200"`
	Description     *string                 `json:"description,omitempty"`
	LongDescription *string                 `json:"long_description,omitempty"`
	Price           *float64                `json:"price,omitempty" validate:"omitempty,min=0"`
	PriceUnit       *string                 `json:"price_unit,omitempty" validate:"omitempty,max=50"`
	ImageURL        *string                 `json:"image_url,omitempty" validate:"omitempty,url"`
	Category        *string                 `json:"category,omitempty" validate:"omitempty,oneof=residential commercial specialized"`
	Duration        *string                 `json:"duration,omitempty" validate:"omitempty,max=100"`
	Features        []string                `json:"features,omitempty"`
	FAQ             []entity.FAQItem        `json:"faq,omitempty"`
	Options         *[]ServiceOptionRequest `json:"options,omitempty" validate:"omitempty,dive"`
	Active          *bool                   `json:"active,omitempty"`
}

// ServiceListRequest carries catalog filters parsed from the query string.
type ServiceListRequest struct {
	PaginatedRequest
	Category *string `json:"category,omitempty" validate:"omitempty,oneof=residential commercial specialized"`
	Query    *string `json:"query,omitempty" validate:"omitempty,max=200"`
}
