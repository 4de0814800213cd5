package bookingflow

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"cleaning-booking/internal/data/entity"
	"cleaning-booking/pkg/utils"
)

// Flow steps. The draft moves strictly forward through the numbered steps
// and terminates at StepSubmitted.
const (
	StepSchedule  = 1
	StepDetails   = 2
	StepConfirm   = 3
	StepSubmitted = 4
)

var emailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Draft holds everything the visitor has entered so far. It is persisted
// between requests, so every field must serialize cleanly.
type Draft struct {
	Date      *time.Time `json:"date,omitempty"`
	Time      string     `json:"time,omitempty"`
	OptionIDs []int64    `json:"option_ids,omitempty"`
	Name      string     `json:"name,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Email     string     `json:"email,omitempty"`
	Address   string     `json:"address,omitempty"`
	Comments  string     `json:"comments,omitempty"`
}

// State is the full serializable flow state for one draft.
type State struct {
	Step       int    `json:"step"`
	Draft      Draft  `json:"draft"`
	Submitting bool   `json:"submitting"`
	Error      string `json:"error,omitempty"`
	Reference  string `json:"reference,omitempty"`
	BookingID  int64  `json:"booking_id,omitempty"`
}

// NewState returns the initial state: step one, empty draft.
func NewState() State {
	return State{Step: StepSchedule}
}

// Action kinds accepted by Dispatch.
const (
	ActionSetDate      = "set_date"
	ActionSetTime      = "set_time"
	ActionToggleOption = "toggle_option"
	ActionSetField     = "set_field"
	ActionNext         = "next"
	ActionBack         = "back"
	ActionConfirm      = "confirm"
)

// Action is one user interaction with the flow.
type Action struct {
	Type     string
	Date     *time.Time
	Time     string
	OptionID int64
	Field    string
	Value    string
}

// Submission is the payload handed to the sink when the visitor confirms.
type Submission struct {
	ServiceID   int64
	Datetime    time.Time
	Options     []ResolvedOption
	Total       float64
	Name        string
	Phone       string
	Email       string
	Address     string
	Comments    string
	UserID      string
}

// SinkResult identifies the booking created from a submission.
type SinkResult struct {
	BookingID int64
	Reference string
}

// Sink receives confirmed submissions. The flow treats it as fallible:
// on error the draft stays intact so the visitor can retry.
type Sink interface {
	Submit(ctx context.Context, sub Submission) (SinkResult, error)
}

// Flow drives one booking draft for a single service. The service and its
// options are fixed at construction; state moves through Dispatch.
type Flow struct {
	Service *entity.Service
	Options []entity.ServiceOption
	Hours   Hours
	Now     func() time.Time
	Sink    Sink
	UserID  string
}

// View is the read model handed back to the caller after every dispatch.
type View struct {
	Step      int              `json:"step"`
	Draft     Draft            `json:"draft"`
	Slots     []TimeSlot       `json:"slots"`
	Options   []ResolvedOption `json:"options"`
	Total     float64          `json:"total"`
	Error     string           `json:"error,omitempty"`
	Reference string           `json:"reference,omitempty"`
	BookingID int64            `json:"booking_id,omitempty"`
}

// Render projects the current state into what the caller sees: the slot
// list for the chosen date, the resolved extras and the running total.
func (f *Flow) Render(st State) View {
	return View{
		Step:      st.Step,
		Draft:     st.Draft,
		Slots:     GenerateTimeSlots(st.Draft.Date, f.Now(), f.Hours),
		Options:   ResolveOptions(st.Draft.OptionIDs, f.Options),
		Total:     ComputeTotal(f.Service.Price, 1, st.Draft.OptionIDs, f.Options),
		Error:     st.Error,
		Reference: st.Reference,
		BookingID: st.BookingID,
	}
}

// Dispatch applies one action to the state and returns the next state.
// After submission the state is terminal and every action is rejected.
func (f *Flow) Dispatch(ctx context.Context, st State, a Action) (State, error) {
	if st.Step == StepSubmitted {
		return st, fmt.Errorf("booking already submitted")
	}
	if st.Submitting {
		return st, fmt.Errorf("submission in progress")
	}

	st.Error = ""

	switch a.Type {
	case ActionSetDate:
		st.Draft.Date = a.Date
		st.Draft.Time = ""
	case ActionSetTime:
		st.Draft.Time = a.Time
	case ActionToggleOption:
		st.Draft.OptionIDs = toggle(st.Draft.OptionIDs, a.OptionID)
	case ActionSetField:
		if err := setField(&st.Draft, a.Field, a.Value); err != nil {
			return st, err
		}
	case ActionNext:
		return f.next(st), nil
	case ActionBack:
		if st.Step > StepSchedule {
			st.Step--
		}
	case ActionConfirm:
		return f.confirm(ctx, st)
	default:
		return st, fmt.Errorf("unknown action %q", a.Type)
	}

	return st, nil
}

func (f *Flow) next(st State) State {
	switch st.Step {
	case StepSchedule:
		if msg := validateSchedule(st.Draft); msg != "" {
			st.Error = msg
			return st
		}
		st.Step = StepDetails
	case StepDetails:
		if msg := validateDetails(st.Draft); msg != "" {
			st.Error = msg
			return st
		}
		st.Step = StepConfirm
	}
	return st
}

func (f *Flow) confirm(ctx context.Context, st State) (State, error) {
	if st.Step != StepConfirm {
		return st, fmt.Errorf("confirmation is only available on the final step")
	}
	if msg := validateSchedule(st.Draft); msg != "" {
		st.Error = msg
		return st, nil
	}
	if msg := validateDetails(st.Draft); msg != "" {
		st.Error = msg
		return st, nil
	}

	hh, mm, err := splitSlot(st.Draft.Time)
	if err != nil {
		st.Error = msgSchedule
		return st, nil
	}
	d := *st.Draft.Date
	scheduledAt := time.Date(d.Year(), d.Month(), d.Day(), hh, mm, 0, 0, d.Location())

	sub := Submission{
		ServiceID: f.Service.ID,
		Datetime:  scheduledAt,
		Options:   ResolveOptions(st.Draft.OptionIDs, f.Options),
		Total:     ComputeTotal(f.Service.Price, 1, st.Draft.OptionIDs, f.Options),
		Name:      strings.TrimSpace(st.Draft.Name),
		Phone:     strings.TrimSpace(st.Draft.Phone),
		Email:     strings.TrimSpace(st.Draft.Email),
		Address:   strings.TrimSpace(st.Draft.Address),
		Comments:  strings.TrimSpace(st.Draft.Comments),
		UserID:    f.UserID,
	}

	res, err := f.Sink.Submit(ctx, sub)
	if err != nil {
		st.Error = msgSubmitFailed
		return st, nil
	}

	st.Step = StepSubmitted
	st.Reference = res.Reference
	st.BookingID = res.BookingID
	return st, nil
}

// User-visible flow errors, in the site's language.
const (
	msgSchedule     = "Пожалуйста, выберите дату и время"
	msgRequired     = "Пожалуйста, заполните все обязательные поля"
	msgBadPhone     = "Пожалуйста, укажите корректный номер телефона"
	msgBadEmail     = "Пожалуйста, укажите корректный email"
	msgSubmitFailed = "Не удалось создать бронирование. Пожалуйста, попробуйте позже."
)

// validateSchedule gates the move from the schedule step.
func validateSchedule(d Draft) string {
	if d.Date == nil || d.Time == "" {
		return msgSchedule
	}
	return ""
}

// validateDetails checks contact fields in a fixed order and reports only
// the first failure: presence first, then phone format, then email format.
func validateDetails(d Draft) string {
	if strings.TrimSpace(d.Name) == "" ||
		strings.TrimSpace(d.Phone) == "" ||
		strings.TrimSpace(d.Address) == "" {
		return msgRequired
	}
	if !utils.ValidPhone(strings.TrimSpace(d.Phone)) {
		return msgBadPhone
	}
	if e := strings.TrimSpace(d.Email); e != "" && !emailRegex.MatchString(e) {
		return msgBadEmail
	}
	return ""
}

func setField(d *Draft, field, value string) error {
	switch field {
	case "name":
		d.Name = value
	case "phone":
		d.Phone = value
	case "email":
		d.Email = value
	case "address":
		d.Address = value
	case "comments":
		d.Comments = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// toggle adds the id when absent and removes it when present, preserving
// the order of the remaining ids.
func toggle(ids []int64, id int64) []int64 {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return append(ids, id)
}

func splitSlot(s string) (int, int, error) {
	var hh, mm int
	if _, err := fmt.Sscanf(s, "%d:%d", &hh, &mm); err != nil {
		return 0, 0, err
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, 0, fmt.Errorf("invalid time %q", s)
	}
	return hh, mm, nil
}
