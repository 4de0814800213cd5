package request

type StartFlowRequest struct {
	ServiceID int64 `json:"service_id" validate:"required,min=1"`
}

// FlowActionRequest is one dispatched interaction with a booking draft.
// Which payload fields matter depends on the action.
type FlowActionRequest struct {
	Action   string `json:"action" validate:"required,oneof=set_date set_time toggle_option set_field next back confirm"`
	Date     string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time     string `json:"time,omitempty" validate:"omitempty,datetime=15:04"`
	OptionID int64  `json:"option_id,omitempty"`
	Field    string `json:"field,omitempty" validate:"omitempty,oneof=name phone email address comments"`
	Value    string `json:"value,omitempty" validate:"omitempty,max=1000"`
}
