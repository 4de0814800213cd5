package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cleaning-booking/internal/data/entity"
	"cleaning-booking/internal/data/repository"
	"cleaning-booking/internal/dto/request"
)

type fakeClientRepo struct {
	repository.ClientRepository
	clients map[string]*entity.Client
}

func (r *fakeClientRepo) UpsertByPhone(_ context.Context, client *entity.Client) (*entity.Client, error) {
	if existing, ok := r.clients[client.Phone]; ok {
		existing.Name = client.Name
		return existing, nil
	}
	client.ID = int64(len(r.clients) + 1)
	r.clients[client.Phone] = client
	return client, nil
}

type fakeBookingRepo struct {
	repository.BookingRepository
	bookings map[int64]*entity.Booking
	options  map[int64][]entity.BookingOption
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[int64]*entity.Booking),
		options:  make(map[int64][]entity.BookingOption),
	}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking, options []entity.BookingOption) error {
	booking.ID = int64(len(r.bookings) + 1)
	r.bookings[booking.ID] = booking
	r.options[booking.ID] = options
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id int64) (*entity.Booking, error) {
	return r.bookings[id], nil
}

func (r *fakeBookingRepo) FindOptions(_ context.Context, bookingID int64) ([]entity.BookingOption, error) {
	return r.options[bookingID], nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status entity.BookingStatus, reason *string) error {
	r.bookings[id].Status = status
	r.bookings[id].CancelReason = reason
	return nil
}

func newTestBookingService() (BookingService, *fakeBookingRepo, *fakeClientRepo) {
	bookings := newFakeBookingRepo()
	clients := &fakeClientRepo{clients: make(map[string]*entity.Client)}
	repo := &repository.Repository{
		Service: &fakeServiceRepo{services: map[int64]*entity.Service{
			1: {ID: 1, Title: "Генеральная уборка", Price: 2000, Active: true},
		}},
		Option: &fakeOptionRepo{options: map[int64][]entity.ServiceOption{
			1: {{ID: 10, ServiceID: 1, Title: "Химчистка дивана", Price: 1500}},
		}},
		Booking: bookings,
		Client:  clients,
	}
	return NewBookingService(repo, testConfig(), zap.NewNop()), bookings, clients
}

func TestCreateBookingRecomputesTotal(t *testing.T) {
	svc, bookings, clients := newTestBookingService()

	resp, err := svc.CreateBooking(context.Background(), &request.CreateBookingRequest{
		ServiceID:   1,
		Date:        "2030-06-10",
		Time:        "10:00",
		ClientName:  "Анна",
		ClientPhone: "+79001234567",
		Address:     "ул. Ленина, 1",
		OptionIDs:   []int64{10, 999},
	}, nil)
	require.NoError(t, err)

	// the unknown option id 999 is ignored, the price comes from the catalog
	assert.Equal(t, 3500.0, resp.TotalAmount)
	assert.Equal(t, entity.BookingStatusPending, resp.Status)
	assert.NotEmpty(t, resp.Reference)
	require.Len(t, resp.Options, 1)
	assert.Equal(t, "Химчистка дивана", resp.Options[0].Title)

	require.Len(t, bookings.bookings, 1)
	assert.Contains(t, clients.clients, "+79001234567")
}

func TestDirectAndFlowBookingsStoreSameInstant(t *testing.T) {
	cfg := testConfig()
	cfg.Booking.Timezone = "Europe/Moscow"

	bookings := newFakeBookingRepo()
	repo := &repository.Repository{
		Service: &fakeServiceRepo{services: map[int64]*entity.Service{
			1: {ID: 1, Title: "Генеральная уборка", Price: 2000, Active: true},
		}},
		Option:  &fakeOptionRepo{options: map[int64][]entity.ServiceOption{}},
		Booking: bookings,
		Client:  &fakeClientRepo{clients: make(map[string]*entity.Client)},
	}
	booking := NewBookingService(repo, cfg, zap.NewNop())
	flow := NewFlowService(repo, newMemoryDraftStore(), booking, cfg, zap.NewNop())

	// same wall clock through the direct endpoint
	direct, err := booking.CreateBooking(context.Background(), &request.CreateBookingRequest{
		ServiceID:   1,
		Date:        "2030-06-10",
		Time:        "10:00",
		ClientName:  "Анна",
		ClientPhone: "+79001234567",
		Address:     "ул. Ленина, 1",
	}, nil)
	require.NoError(t, err)

	// and through the flow
	started, err := flow.Start(context.Background(), &request.StartFlowRequest{ServiceID: 1}, nil)
	require.NoError(t, err)
	for _, a := range []request.FlowActionRequest{
		{Action: "set_date", Date: "2030-06-10"},
		{Action: "set_time", Time: "10:00"},
		{Action: "next"},
		{Action: "set_field", Field: "name", Value: "Анна"},
		{Action: "set_field", Field: "phone", Value: "+79001234567"},
		{Action: "set_field", Field: "address", Value: "ул. Ленина, 1"},
		{Action: "next"},
		{Action: "confirm"},
	} {
		_, err := flow.Dispatch(context.Background(), started.DraftID, &a)
		require.NoError(t, err, "action %s", a.Action)
	}

	require.Len(t, bookings.bookings, 2)
	viaFlow := bookings.bookings[2].ScheduledAt
	assert.True(t, direct.ScheduledAt.Equal(viaFlow),
		"direct %s vs flow %s", direct.ScheduledAt, viaFlow)

	// Moscow is UTC+3 year-round
	want := time.Date(2030, 6, 10, 7, 0, 0, 0, time.UTC)
	assert.True(t, direct.ScheduledAt.Equal(want), "got %s", direct.ScheduledAt)
}

func TestCreateBookingUnknownService(t *testing.T) {
	svc, _, _ := newTestBookingService()

	_, err := svc.CreateBooking(context.Background(), &request.CreateBookingRequest{
		ServiceID:   99,
		Date:        "2030-06-10",
		Time:        "10:00",
		ClientName:  "Анна",
		ClientPhone: "+79001234567",
		Address:     "ул. Ленина, 1",
	}, nil)
	assert.EqualError(t, err, "service not found")
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    entity.BookingStatus
		to      string
		reason  *string
		wantErr string
	}{
		{name: "pending to confirmed", from: entity.BookingStatusPending, to: "confirmed"},
		{name: "confirmed to completed", from: entity.BookingStatusConfirmed, to: "completed"},
		{name: "pending to completed is skipped ahead", from: entity.BookingStatusPending, to: "completed", wantErr: "invalid status transition"},
		{name: "completed is terminal", from: entity.BookingStatusCompleted, to: "cancelled", wantErr: "invalid status transition"},
		{name: "cancelled is terminal", from: entity.BookingStatusCancelled, to: "confirmed", wantErr: "invalid status transition"},
		{name: "cancel without reason", from: entity.BookingStatusPending, to: "cancelled", wantErr: "cancel reason is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, bookings, _ := newTestBookingService()
			bookings.bookings[1] = &entity.Booking{ID: 1, ServiceID: 1, Status: tc.from}

			_, err := svc.UpdateStatus(context.Background(), 1, &request.UpdateBookingStatusRequest{
				Status: tc.to,
				Reason: tc.reason,
			})

			if tc.wantErr != "" {
				assert.EqualError(t, err, tc.wantErr)
				assert.Equal(t, tc.from, bookings.bookings[1].Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, entity.BookingStatus(tc.to), bookings.bookings[1].Status)
		})
	}
}

func TestUpdateStatusCancelKeepsReason(t *testing.T) {
	svc, bookings, _ := newTestBookingService()
	bookings.bookings[1] = &entity.Booking{ID: 1, ServiceID: 1, Status: entity.BookingStatusConfirmed}

	reason := "клиент перенёс уборку"
	resp, err := svc.UpdateStatus(context.Background(), 1, &request.UpdateBookingStatusRequest{
		Status: "cancelled",
		Reason: &reason,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
	require.NotNil(t, bookings.bookings[1].CancelReason)
	assert.Equal(t, reason, *bookings.bookings[1].CancelReason)
}

func TestCancelOwn(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	svc, bookings, _ := newTestBookingService()
	bookings.bookings[1] = &entity.Booking{ID: 1, ServiceID: 1, Status: entity.BookingStatusPending, UserID: &owner}
	bookings.bookings[2] = &entity.Booking{ID: 2, ServiceID: 1, Status: entity.BookingStatusPending}

	req := &request.CancelBookingRequest{Reason: "передумал"}

	// someone else's booking looks like it does not exist
	err := svc.CancelOwn(context.Background(), stranger, 1, req)
	assert.EqualError(t, err, "booking not found")

	// anonymous bookings are not cancellable through the account
	err = svc.CancelOwn(context.Background(), owner, 2, req)
	assert.EqualError(t, err, "booking not found")

	err = svc.CancelOwn(context.Background(), owner, 1, req)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, bookings.bookings[1].Status)
}
