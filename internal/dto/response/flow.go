package response

import "cleaning-booking/internal/bookingflow"

// FlowResponse is the draft view returned after every flow request.
type FlowResponse struct {
	DraftID   string                      `json:"draft_id"`
	ServiceID int64                       `json:"service_id"`
	Step      int                         `json:"step"`
	Draft     bookingflow.Draft           `json:"draft"`
	Slots     []bookingflow.TimeSlot      `json:"slots"`
	Options   []bookingflow.ResolvedOption `json:"options"`
	Total     float64                     `json:"total"`
	Error     string                      `json:"error,omitempty"`
	Reference string                      `json:"reference,omitempty"`
	BookingID int64                       `json:"booking_id,omitempty"`
}

func FlowToResponse(draftID string, serviceID int64, view bookingflow.View) FlowResponse {
	return FlowResponse{
		DraftID:   draftID,
		ServiceID: serviceID,
		Step:      view.Step,
		Draft:     view.Draft,
		Slots:     view.Slots,
		Options:   view.Options,
		Total:     view.Total,
		Error:     view.Error,
		Reference: view.Reference,
		BookingID: view.BookingID,
	}
}
