package request

type CreateBookingRequest struct {
	ServiceID   int64   `json:"service_id" validate:"required,min=1"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string  `json:"time" validate:"required,datetime=15:04"`
	ClientName  string  `json:"client_name" validate:"required,max=100"`
	ClientPhone string  `json:"client_phone" validate:"required,phone"`
	ClientEmail *string `json:"client_email,omitempty" validate:"omitempty,email"`
	Address     string  `json:"address" validate:"required,max=300"`
	Comments    *string `json:"comments,omitempty" validate:"omitempty,max=1000"`
	OptionIDs   []int64 `json:"option_ids,omitempty"`
}

type UpdateBookingStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// BookingListRequest carries admin booking filters from the query string.
type BookingListRequest struct {
	PaginatedRequest
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	DateFrom *string `json:"date_from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DateTo   *string `json:"date_to,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Query    *string `json:"query,omitempty" validate:"omitempty,max=200"`
}
