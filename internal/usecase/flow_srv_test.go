package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cleaning-booking/internal/bookingflow"
	"cleaning-booking/internal/data/entity"
	"cleaning-booking/internal/data/repository"
	"cleaning-booking/internal/dto/request"
	"cleaning-booking/internal/dto/response"
	"cleaning-booking/pkg/utils"
)

// memoryDraftStore keeps drafts in a map for tests.
type memoryDraftStore struct {
	records map[string]bookingflow.Record
}

func newMemoryDraftStore() *memoryDraftStore {
	return &memoryDraftStore{records: make(map[string]bookingflow.Record)}
}

func (s *memoryDraftStore) Save(_ context.Context, rec bookingflow.Record) error {
	s.records[rec.DraftID] = rec
	return nil
}

func (s *memoryDraftStore) Get(_ context.Context, draftID string) (bookingflow.Record, error) {
	rec, ok := s.records[draftID]
	if !ok {
		return bookingflow.Record{}, bookingflow.ErrDraftNotFound
	}
	return rec, nil
}

func (s *memoryDraftStore) Delete(_ context.Context, draftID string) error {
	delete(s.records, draftID)
	return nil
}

type fakeServiceRepo struct {
	repository.ServiceRepository
	services map[int64]*entity.Service
}

func (r *fakeServiceRepo) FindByID(_ context.Context, id int64) (*entity.Service, error) {
	return r.services[id], nil
}

type fakeOptionRepo struct {
	repository.ServiceOptionRepository
	options map[int64][]entity.ServiceOption
}

func (r *fakeOptionRepo) FindByServiceID(_ context.Context, serviceID int64) ([]entity.ServiceOption, error) {
	return r.options[serviceID], nil
}

type recordingSink struct {
	subs []bookingflow.Submission
	err  error
}

func (s *recordingSink) Submit(_ context.Context, sub bookingflow.Submission) (bookingflow.SinkResult, error) {
	if s.err != nil {
		return bookingflow.SinkResult{}, s.err
	}
	s.subs = append(s.subs, sub)
	return bookingflow.SinkResult{BookingID: 7, Reference: "CL-20240610-100000-0001"}, nil
}

func testConfig() *utils.Config {
	return &utils.Config{
		Booking: utils.BookingConfig{
			OpenHour:             9,
			CloseHour:            18,
			SlotMinutes:          30,
			Timezone:             "UTC",
			SubmitTimeoutSeconds: 5,
		},
		Cart: utils.CartConfig{
			PromoCode:    "CLEAN10",
			PromoPercent: 10,
		},
	}
}

func newTestFlowService(sink bookingflow.Sink) (FlowService, *memoryDraftStore) {
	repo := &repository.Repository{
		Service: &fakeServiceRepo{services: map[int64]*entity.Service{
			1: {ID: 1, Title: "Генеральная уборка", Price: 2000, Active: true},
		}},
		Option: &fakeOptionRepo{options: map[int64][]entity.ServiceOption{
			1: {{ID: 1, ServiceID: 1, Title: "Мытьё окон", Price: 500}},
		}},
	}

	drafts := newMemoryDraftStore()
	svc := NewFlowService(repo, drafts, sink, testConfig(), zap.NewNop())
	return svc, drafts
}

func TestFlowServiceStart(t *testing.T) {
	svc, drafts := newTestFlowService(&recordingSink{})

	resp, err := svc.Start(context.Background(), &request.StartFlowRequest{ServiceID: 1}, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.DraftID)
	assert.Equal(t, int64(1), resp.ServiceID)
	assert.Equal(t, bookingflow.StepSchedule, resp.Step)
	assert.Len(t, resp.Slots, 19)
	assert.Equal(t, 2000.0, resp.Total)
	assert.Contains(t, drafts.records, resp.DraftID)
}

func TestFlowServiceStartUnknownService(t *testing.T) {
	svc, _ := newTestFlowService(&recordingSink{})

	_, err := svc.Start(context.Background(), &request.StartFlowRequest{ServiceID: 99}, nil)
	assert.EqualError(t, err, "service not found")
}

func TestFlowServiceGetUnknownDraft(t *testing.T) {
	svc, _ := newTestFlowService(&recordingSink{})

	_, err := svc.Get(context.Background(), "b7f7b9a0-0000-0000-0000-000000000000")
	assert.EqualError(t, err, "draft not found")
}

func TestFlowServiceFullBooking(t *testing.T) {
	sink := &recordingSink{}
	svc, drafts := newTestFlowService(sink)

	started, err := svc.Start(context.Background(), &request.StartFlowRequest{ServiceID: 1}, nil)
	require.NoError(t, err)

	actions := []request.FlowActionRequest{
		{Action: "set_date", Date: "2030-06-10"},
		{Action: "set_time", Time: "10:00"},
		{Action: "next"},
		{Action: "set_field", Field: "name", Value: "Анна"},
		{Action: "set_field", Field: "phone", Value: "+7 900 123-45-67"},
		{Action: "set_field", Field: "address", Value: "ул. Ленина, 1"},
		{Action: "next"},
		{Action: "toggle_option", OptionID: 1},
		{Action: "confirm"},
	}

	var last *response.FlowResponse
	for _, a := range actions {
		resp, err := svc.Dispatch(context.Background(), started.DraftID, &a)
		require.NoError(t, err, "action %s", a.Action)
		last = resp
	}

	assert.Equal(t, bookingflow.StepSubmitted, last.Step)
	assert.Equal(t, 2500.0, last.Total)
	assert.Equal(t, "CL-20240610-100000-0001", last.Reference)

	require.Len(t, sink.subs, 1)
	assert.Equal(t, 2500.0, sink.subs[0].Total)

	// submitted drafts are discarded
	assert.NotContains(t, drafts.records, started.DraftID)
}

func TestFlowServiceSinkFailureKeepsDraft(t *testing.T) {
	sink := &recordingSink{err: fmt.Errorf("database unreachable")}
	svc, drafts := newTestFlowService(sink)

	started, err := svc.Start(context.Background(), &request.StartFlowRequest{ServiceID: 1}, nil)
	require.NoError(t, err)

	actions := []request.FlowActionRequest{
		{Action: "set_date", Date: "2030-06-10"},
		{Action: "set_time", Time: "10:00"},
		{Action: "next"},
		{Action: "set_field", Field: "name", Value: "Анна"},
		{Action: "set_field", Field: "phone", Value: "+79001234567"},
		{Action: "set_field", Field: "address", Value: "ул. Ленина, 1"},
		{Action: "next"},
	}
	for _, a := range actions {
		_, err := svc.Dispatch(context.Background(), started.DraftID, &a)
		require.NoError(t, err)
	}

	resp, err := svc.Dispatch(context.Background(), started.DraftID, &request.FlowActionRequest{Action: "confirm"})
	require.NoError(t, err)

	// the error is surfaced in the view, the draft survives for a retry
	assert.Equal(t, bookingflow.StepConfirm, resp.Step)
	assert.NotEmpty(t, resp.Error)
	assert.Contains(t, drafts.records, started.DraftID)
	assert.False(t, drafts.records[started.DraftID].State.Submitting)

	// second attempt succeeds once the sink recovers
	sink.err = nil
	resp, err = svc.Dispatch(context.Background(), started.DraftID, &request.FlowActionRequest{Action: "confirm"})
	require.NoError(t, err)
	assert.Equal(t, bookingflow.StepSubmitted, resp.Step)
}

func TestFlowServiceRejectsActionsAfterSubmit(t *testing.T) {
	sink := &recordingSink{}
	svc, drafts := newTestFlowService(sink)

	started, err := svc.Start(context.Background(), &request.StartFlowRequest{ServiceID: 1}, nil)
	require.NoError(t, err)

	// force a submitted state back into the store
	rec := drafts.records[started.DraftID]
	rec.State.Step = bookingflow.StepSubmitted
	drafts.records[started.DraftID] = rec

	_, err = svc.Dispatch(context.Background(), started.DraftID, &request.FlowActionRequest{Action: "next"})
	assert.Error(t, err)
}

func TestFlowServiceSetDateRequiresDate(t *testing.T) {
	svc, _ := newTestFlowService(&recordingSink{})

	started, err := svc.Start(context.Background(), &request.StartFlowRequest{ServiceID: 1}, nil)
	require.NoError(t, err)

	_, err = svc.Dispatch(context.Background(), started.DraftID, &request.FlowActionRequest{Action: "set_date"})
	assert.Error(t, err)
}
