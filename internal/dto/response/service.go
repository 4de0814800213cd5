package response

import (
	"time"

	"cleaning-booking/internal/data/entity"
)

type ServiceOptionResponse struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

type ServiceResponse struct {
	ID              int64                   `json:"id"`
	Title           string                  `json:"title"`
	Description     string                  `json:"description"`
	LongDescription *string                 `json:"long_description,omitempty"`
	Price           float64                 `json:"price"`
	PriceUnit       string                  `json:"price_unit"`
	ImageURL        *string                 `json:"image_url,omitempty"`
	Category        entity.ServiceCategory  `json:"category"`
	Duration        string                  `json:"duration"`
	Features        []string                `json:"features,omitempty"`
	FAQ             []entity.FAQItem        `json:"faq,omitempty"`
	Options         []ServiceOptionResponse `json:"options,omitempty"`
	Active          bool                    `json:"active"`
	CreatedAt       time.Time               `json:"created_at"`
}

func OptionToResponse(opt entity.ServiceOption) ServiceOptionResponse {
	return ServiceOptionResponse{
		ID:    opt.ID,
		Title: opt.Title,
		Price: opt.Price,
	}
}

func ServiceToResponse(svc *entity.Service, options []entity.ServiceOption) ServiceResponse {
	resp := ServiceResponse{
		ID:              svc.ID,
		Title:           svc.Title,
		Description:     svc.Description,
		LongDescription: svc.LongDescription,
		Price:           svc.Price,
		PriceUnit:       svc.PriceUnit,
		ImageURL:        svc.ImageURL,
		Category:        svc.Category,
		Duration:        svc.Duration,
		Features:        svc.Features,
		FAQ:             svc.FAQ,
		Active:          svc.Active,
		CreatedAt:       svc.CreatedAt,
	}

	for _, opt := range options {
		resp.Options = append(resp.Options, OptionToResponse(opt))
	}

	return resp
}

type ReviewResponse struct {
	ID        int64     `json:"id"`
	ServiceID int64     `json:"service_id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID,
		ServiceID: review.ServiceID,
		Author:    review.Author,
		Rating:    review.Rating,
		Text:      review.Text,
		CreatedAt: review.CreatedAt,
	}
}
