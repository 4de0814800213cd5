package bookingflow

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleaning-booking/internal/data/entity"
)

type fakeSink struct {
	subs []Submission
	err  error
}

func (s *fakeSink) Submit(_ context.Context, sub Submission) (SinkResult, error) {
	if s.err != nil {
		return SinkResult{}, s.err
	}
	s.subs = append(s.subs, sub)
	return SinkResult{BookingID: 42, Reference: "CL-20240610-100000-TEST"}, nil
}

func testFlow(sink Sink) *Flow {
	return &Flow{
		Service: &entity.Service{ID: 1, Title: "Генеральная уборка", Price: 2000},
		Options: []entity.ServiceOption{
			{ID: 1, ServiceID: 1, Title: "Windows", Price: 500},
		},
		Hours: DefaultHours,
		Now:   func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) },
		Sink:  sink,
	}
}

func dispatch(t *testing.T, f *Flow, st State, actions ...Action) State {
	t.Helper()
	var err error
	for _, a := range actions {
		st, err = f.Dispatch(context.Background(), st, a)
		require.NoError(t, err)
	}
	return st
}

func TestFlowStartsAtScheduleStep(t *testing.T) {
	st := NewState()
	assert.Equal(t, StepSchedule, st.Step)
	assert.Nil(t, st.Draft.Date)
}

func TestFlowNextBlockedWithoutDate(t *testing.T) {
	f := testFlow(&fakeSink{})
	st := dispatch(t, f, NewState(), Action{Type: ActionNext})

	assert.Equal(t, StepSchedule, st.Step)
	assert.Equal(t, msgSchedule, st.Error)
}

func TestFlowNextBlockedWithoutTime(t *testing.T) {
	f := testFlow(&fakeSink{})
	st := dispatch(t, f, NewState(),
		Action{Type: ActionSetDate, Date: date(2024, 6, 10)},
		Action{Type: ActionNext},
	)

	assert.Equal(t, StepSchedule, st.Step)
	assert.Equal(t, msgSchedule, st.Error)
}

func TestFlowSetDateClearsTime(t *testing.T) {
	f := testFlow(&fakeSink{})
	st := dispatch(t, f, NewState(),
		Action{Type: ActionSetDate, Date: date(2024, 6, 10)},
		Action{Type: ActionSetTime, Time: "10:00"},
		Action{Type: ActionSetDate, Date: date(2024, 6, 11)},
	)

	assert.Empty(t, st.Draft.Time)
}

func TestFlowToggleOption(t *testing.T) {
	f := testFlow(&fakeSink{})

	st := dispatch(t, f, NewState(), Action{Type: ActionToggleOption, OptionID: 1})
	assert.Equal(t, []int64{1}, st.Draft.OptionIDs)

	st = dispatch(t, f, st, Action{Type: ActionToggleOption, OptionID: 1})
	assert.Empty(t, st.Draft.OptionIDs)
}

func TestFlowDetailsValidationOrder(t *testing.T) {
	f := testFlow(&fakeSink{})
	base := dispatch(t, f, NewState(),
		Action{Type: ActionSetDate, Date: date(2024, 6, 10)},
		Action{Type: ActionSetTime, Time: "10:00"},
		Action{Type: ActionNext},
	)
	require.Equal(t, StepDetails, base.Step)

	cases := []struct {
		name    string
		fields  map[string]string
		wantErr string
	}{
		{"all empty", map[string]string{}, msgRequired},
		{"missing address", map[string]string{"name": "A", "phone": "+71234567890"}, msgRequired},
		{"bad phone", map[string]string{"name": "A", "phone": "abc", "address": "X"}, msgBadPhone},
		{"phone checked before email", map[string]string{"name": "A", "phone": "abc", "address": "X", "email": "not-an-email"}, msgBadPhone},
		{"bad email", map[string]string{"name": "A", "phone": "+71234567890", "address": "X", "email": "not-an-email"}, msgBadEmail},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			st := base
			for field, value := range tt.fields {
				st = dispatch(t, f, st, Action{Type: ActionSetField, Field: field, Value: value})
			}
			st = dispatch(t, f, st, Action{Type: ActionNext})

			assert.Equal(t, StepDetails, st.Step)
			assert.Equal(t, tt.wantErr, st.Error)
		})
	}
}

func TestFlowPhoneFormats(t *testing.T) {
	f := testFlow(&fakeSink{})

	for phone, ok := range map[string]bool{
		"abc":                false,
		"+7 900 123-45-67":   true,
		"+71234567890":       true,
		"123":                false,
		"8(495)1234567":      true,
		"8 (495) 123-45-678": false,
	} {
		st := dispatch(t, f, NewState(),
			Action{Type: ActionSetDate, Date: date(2024, 6, 10)},
			Action{Type: ActionSetTime, Time: "10:00"},
			Action{Type: ActionNext},
			Action{Type: ActionSetField, Field: "name", Value: "A"},
			Action{Type: ActionSetField, Field: "phone", Value: phone},
			Action{Type: ActionSetField, Field: "address", Value: "X"},
			Action{Type: ActionNext},
		)

		if ok {
			assert.Equal(t, StepConfirm, st.Step, "phone %q", phone)
		} else {
			assert.Equal(t, StepDetails, st.Step, "phone %q", phone)
			assert.Equal(t, msgBadPhone, st.Error, "phone %q", phone)
		}
	}
}

func TestFlowBack(t *testing.T) {
	f := testFlow(&fakeSink{})
	st := dispatch(t, f, NewState(),
		Action{Type: ActionSetDate, Date: date(2024, 6, 10)},
		Action{Type: ActionSetTime, Time: "10:00"},
		Action{Type: ActionNext},
		Action{Type: ActionBack},
	)

	assert.Equal(t, StepSchedule, st.Step)
	// the draft survives going back
	assert.Equal(t, "10:00", st.Draft.Time)

	st = dispatch(t, f, st, Action{Type: ActionBack})
	assert.Equal(t, StepSchedule, st.Step)
}

func TestFlowEndToEnd(t *testing.T) {
	sink := &fakeSink{}
	f := testFlow(sink)

	st := dispatch(t, f, NewState(),
		Action{Type: ActionSetDate, Date: date(2024, 6, 10)},
		Action{Type: ActionSetTime, Time: "10:00"},
		Action{Type: ActionNext},
		Action{Type: ActionSetField, Field: "name", Value: "A"},
		Action{Type: ActionSetField, Field: "phone", Value: "+71234567890"},
		Action{Type: ActionSetField, Field: "address", Value: "X"},
		Action{Type: ActionNext},
		Action{Type: ActionToggleOption, OptionID: 1},
		Action{Type: ActionConfirm},
	)

	require.Equal(t, StepSubmitted, st.Step)
	assert.Equal(t, "CL-20240610-100000-TEST", st.Reference)
	assert.Equal(t, int64(42), st.BookingID)

	require.Len(t, sink.subs, 1)
	sub := sink.subs[0]
	assert.Equal(t, int64(1), sub.ServiceID)
	assert.Equal(t, 2500.0, sub.Total)
	assert.Equal(t, time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC), sub.Datetime)
	assert.Equal(t, []ResolvedOption{{ID: 1, Title: "Windows", Price: 500}}, sub.Options)
	assert.Equal(t, "A", sub.Name)
	assert.Equal(t, "+71234567890", sub.Phone)
	assert.Equal(t, "X", sub.Address)
}

func TestFlowConfirmOnlyOnFinalStep(t *testing.T) {
	f := testFlow(&fakeSink{})

	_, err := f.Dispatch(context.Background(), NewState(), Action{Type: ActionConfirm})
	assert.Error(t, err)
}

func TestFlowSinkFailureKeepsDraft(t *testing.T) {
	sink := &fakeSink{err: fmt.Errorf("database unreachable")}
	f := testFlow(sink)

	st := dispatch(t, f, NewState(),
		Action{Type: ActionSetDate, Date: date(2024, 6, 10)},
		Action{Type: ActionSetTime, Time: "10:00"},
		Action{Type: ActionNext},
		Action{Type: ActionSetField, Field: "name", Value: "A"},
		Action{Type: ActionSetField, Field: "phone", Value: "+71234567890"},
		Action{Type: ActionSetField, Field: "address", Value: "X"},
		Action{Type: ActionNext},
		Action{Type: ActionConfirm},
	)

	assert.Equal(t, StepConfirm, st.Step)
	assert.Equal(t, msgSubmitFailed, st.Error)
	assert.Equal(t, "A", st.Draft.Name)

	// the draft is retryable: fix the sink and confirm again
	sink.err = nil
	st = dispatch(t, f, st, Action{Type: ActionConfirm})
	assert.Equal(t, StepSubmitted, st.Step)
}

func TestFlowTerminalAfterSubmit(t *testing.T) {
	f := testFlow(&fakeSink{})
	st := State{Step: StepSubmitted, Reference: "CL-X"}

	for _, a := range []Action{
		{Type: ActionSetDate, Date: date(2024, 6, 11)},
		{Type: ActionNext},
		{Type: ActionBack},
		{Type: ActionConfirm},
	} {
		_, err := f.Dispatch(context.Background(), st, a)
		assert.Error(t, err, "action %s", a.Type)
	}
}

func TestFlowRejectsWhileSubmitting(t *testing.T) {
	f := testFlow(&fakeSink{})
	st := State{Step: StepConfirm, Submitting: true}

	_, err := f.Dispatch(context.Background(), st, Action{Type: ActionConfirm})
	assert.Error(t, err)
}

func TestFlowRenderTotalAndSlots(t *testing.T) {
	f := testFlow(&fakeSink{})
	st := dispatch(t, f, NewState(),
		Action{Type: ActionSetDate, Date: date(2024, 6, 10)},
		Action{Type: ActionToggleOption, OptionID: 1},
	)

	view := f.Render(st)
	assert.Equal(t, 2500.0, view.Total)
	assert.Len(t, view.Slots, 19)
	assert.Equal(t, []ResolvedOption{{ID: 1, Title: "Windows", Price: 500}}, view.Options)
}
