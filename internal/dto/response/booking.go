package response

import (
	"time"

	"cleaning-booking/internal/data/entity"
)

type BookingOptionResponse struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

type BookingResponse struct {
	ID           int64                   `json:"id"`
	Reference    string                  `json:"reference"`
	ServiceID    int64                   `json:"service_id"`
	ServiceTitle string                  `json:"service_title"`
	ScheduledAt  time.Time               `json:"scheduled_at"`
	Address      string                  `json:"address"`
	ClientName   string                  `json:"client_name"`
	ClientPhone  string                  `json:"client_phone"`
	ClientEmail  *string                 `json:"client_email,omitempty"`
	Comments     *string                 `json:"comments,omitempty"`
	Options      []BookingOptionResponse `json:"options,omitempty"`
	TotalAmount  float64                 `json:"total_amount"`
	Status       entity.BookingStatus    `json:"status"`
	CancelReason *string                 `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
}

func BookingToResponse(b *entity.Booking, options []entity.BookingOption) BookingResponse {
	resp := BookingResponse{
		ID:           b.ID,
		Reference:    b.Reference,
		ServiceID:    b.ServiceID,
		ServiceTitle: b.ServiceTitle,
		ScheduledAt:  b.ScheduledAt,
		Address:      b.Address,
		ClientName:   b.ClientName,
		ClientPhone:  b.ClientPhone,
		ClientEmail:  b.ClientEmail,
		Comments:     b.Comments,
		TotalAmount:  b.TotalAmount,
		Status:       b.Status,
		CancelReason: b.CancelReason,
		CreatedAt:    b.CreatedAt,
	}

	for _, opt := range options {
		resp.Options = append(resp.Options, BookingOptionResponse{
			ID:    opt.OptionID,
			Title: opt.Title,
			Price: opt.Price,
		})
	}

	return resp
}
