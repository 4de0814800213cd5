package request

type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=300"`
}

// StatsPeriodRequest bounds the revenue report, parsed from the query string.
type StatsPeriodRequest struct {
	DateFrom string `json:"date_from" validate:"required,datetime=2006-01-02"`
	DateTo   string `json:"date_to" validate:"required,datetime=2006-01-02"`
}
