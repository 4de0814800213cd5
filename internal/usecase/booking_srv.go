package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cleaning-booking/internal/bookingflow"
	"cleaning-booking/internal/data/entity"
	"cleaning-booking/internal/data/repository"
	"cleaning-booking/internal/dto/request"
	"cleaning-booking/internal/dto/response"
	"cleaning-booking/pkg/utils"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest, userID *uuid.UUID) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, id int64) (*response.BookingResponse, error)
	ListBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdateStatus(ctx context.Context, id int64, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	CancelOwn(ctx context.Context, userID uuid.UUID, id int64, req *request.CancelBookingRequest) error

	// Submit lets the booking flow hand over a confirmed draft.
	Submit(ctx context.Context, sub bookingflow.Submission) (bookingflow.SinkResult, error)
}

type bookingService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest, userID *uuid.UUID) (*response.BookingResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Parse schedule in the configured booking timezone so direct and
	// flow-created bookings store the same instant for the same wall clock
	scheduledAt, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.Time, s.config.BookingLocation())
	if err != nil {
		return nil, fmt.Errorf("invalid date or time")
	}

	sub := bookingflow.Submission{
		ServiceID: req.ServiceID,
		Datetime:  scheduledAt,
		Name:      req.ClientName,
		Phone:     req.ClientPhone,
		Address:   req.Address,
	}
	if req.ClientEmail != nil {
		sub.Email = *req.ClientEmail
	}
	if req.Comments != nil {
		sub.Comments = *req.Comments
	}
	if userID != nil {
		sub.UserID = userID.String()
	}

	// 3. Resolve selected options against the service's current list. The
	// submitted ids are advisory; the price is always recomputed here.
	svc, options, err := s.loadService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	sub.Options = bookingflow.ResolveOptions(req.OptionIDs, options)
	sub.Total = bookingflow.ComputeTotal(svc.Price, 1, req.OptionIDs, options)

	res, err := s.submit(ctx, svc, sub)
	if err != nil {
		return nil, err
	}

	return s.GetBooking(ctx, res.BookingID)
}

// Submit stores a confirmed flow draft. The total and option snapshots were
// already resolved by the flow against the same catalog data.
func (s *bookingService) Submit(ctx context.Context, sub bookingflow.Submission) (bookingflow.SinkResult, error) {
	svc, _, err := s.loadService(ctx, sub.ServiceID)
	if err != nil {
		return bookingflow.SinkResult{}, err
	}
	return s.submit(ctx, svc, sub)
}

func (s *bookingService) submit(ctx context.Context, svc *entity.Service, sub bookingflow.Submission) (bookingflow.SinkResult, error) {
	// 1. Upsert the back-office client record, keyed by phone
	var email *string
	if sub.Email != "" {
		email = &sub.Email
	}
	var address *string
	if sub.Address != "" {
		address = &sub.Address
	}

	client, err := s.repo.Client.UpsertByPhone(ctx, &entity.Client{
		Name:    sub.Name,
		Phone:   sub.Phone,
		Email:   email,
		Address: address,
	})
	if err != nil {
		s.log.Error("Failed to upsert client", zap.Error(err))
		return bookingflow.SinkResult{}, fmt.Errorf("failed to create booking")
	}

	// 2. Build the booking row with option snapshots
	var userID *uuid.UUID
	if sub.UserID != "" {
		if id, err := uuid.Parse(sub.UserID); err == nil {
			userID = &id
		}
	}

	var comments *string
	if sub.Comments != "" {
		comments = &sub.Comments
	}

	now := time.Now()
	booking := &entity.Booking{
		Reference:    utils.GenerateBookingReference(),
		ServiceID:    svc.ID,
		ServiceTitle: svc.Title,
		ScheduledAt:  sub.Datetime,
		Address:      sub.Address,
		ClientName:   sub.Name,
		ClientPhone:  sub.Phone,
		ClientEmail:  email,
		Comments:     comments,
		TotalAmount:  sub.Total,
		Status:       entity.BookingStatusPending,
		ClientID:     client.ID,
		UserID:       userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	snapshots := make([]entity.BookingOption, 0, len(sub.Options))
	for _, opt := range sub.Options {
		snapshots = append(snapshots, entity.BookingOption{
			OptionID: opt.ID,
			Title:    opt.Title,
			Price:    opt.Price,
		})
	}

	if err := s.repo.Booking.Create(ctx, booking, snapshots); err != nil {
		s.log.Error("Failed to create booking", zap.Error(err), zap.Int64("service_id", svc.ID))
		return bookingflow.SinkResult{}, fmt.Errorf("failed to create booking")
	}

	s.log.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.String("reference", booking.Reference),
		zap.Int64("service_id", svc.ID),
		zap.Float64("total", booking.TotalAmount))

	return bookingflow.SinkResult{BookingID: booking.ID, Reference: booking.Reference}, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id int64) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.Int64("booking_id", id))
		return nil, fmt.Errorf("failed to find booking")
	}
	if booking == nil {
		return nil, fmt.Errorf("booking not found")
	}

	options, err := s.repo.Booking.FindOptions(ctx, id)
	if err != nil {
		s.log.Error("Failed to load booking options", zap.Error(err), zap.Int64("booking_id", id))
		return nil, fmt.Errorf("failed to find booking")
	}

	resp := response.BookingToResponse(booking, options)
	return &resp, nil
}

func (s *bookingService) ListBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	// 1. Validate filters
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("List bookings validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	filter, err := bookingFilterFromRequest(req)
	if err != nil {
		return nil, err
	}

	// 2. Load page and total
	bookings, err := s.repo.Booking.FindAll(ctx, req.Offset(), req.Limit(), filter)
	if err != nil {
		s.log.Error("Failed to find bookings", zap.Error(err))
		return nil, fmt.Errorf("failed to find bookings")
	}

	total, err := s.repo.Booking.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, fmt.Errorf("failed to find bookings")
	}

	result := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		options, err := s.repo.Booking.FindOptions(ctx, b.ID)
		if err != nil {
			s.log.Error("Failed to load booking options",
				zap.Error(err), zap.Int64("booking_id", b.ID))
			return nil, fmt.Errorf("failed to find bookings")
		}
		result = append(result, response.BookingToResponse(b, options))
	}

	return response.NewPaginatedResponse(result, req.Page, req.Limit(), total), nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, id int64, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update status validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.Int64("booking_id", id))
		return nil, fmt.Errorf("failed to find booking")
	}
	if booking == nil {
		return nil, fmt.Errorf("booking not found")
	}

	// 2. Only forward transitions are allowed; completed and cancelled
	// are terminal
	target := entity.BookingStatus(req.Status)
	if !transitionAllowed(booking.Status, target) {
		return nil, fmt.Errorf("invalid status transition")
	}

	// 3. Cancellation keeps the reason
	var reason *string
	if target == entity.BookingStatusCancelled {
		if req.Reason == nil || *req.Reason == "" {
			return nil, fmt.Errorf("cancel reason is required")
		}
		reason = req.Reason
	}

	if err := s.repo.Booking.UpdateStatus(ctx, id, target, reason); err != nil {
		s.log.Error("Failed to update booking status",
			zap.Error(err), zap.Int64("booking_id", id), zap.String("status", req.Status))
		return nil, fmt.Errorf("failed to update booking")
	}

	s.log.Info("Booking status updated",
		zap.Int64("booking_id", id),
		zap.String("from", string(booking.Status)),
		zap.String("to", req.Status))

	return s.GetBooking(ctx, id)
}

func (s *bookingService) CancelOwn(ctx context.Context, userID uuid.UUID, id int64, req *request.CancelBookingRequest) error {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Cancel booking validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.Int64("booking_id", id))
		return fmt.Errorf("failed to find booking")
	}
	if booking == nil {
		return fmt.Errorf("booking not found")
	}

	// 2. Users may only cancel their own bookings
	if booking.UserID == nil || *booking.UserID != userID {
		return fmt.Errorf("booking not found")
	}

	if !transitionAllowed(booking.Status, entity.BookingStatusCancelled) {
		return fmt.Errorf("invalid status transition")
	}

	reason := req.Reason
	if err := s.repo.Booking.UpdateStatus(ctx, id, entity.BookingStatusCancelled, &reason); err != nil {
		s.log.Error("Failed to cancel booking", zap.Error(err), zap.Int64("booking_id", id))
		return fmt.Errorf("failed to update booking")
	}

	s.log.Info("Booking cancelled by user",
		zap.Int64("booking_id", id),
		zap.String("user_id", userID.String()))
	return nil
}

func (s *bookingService) loadService(ctx context.Context, serviceID int64) (*entity.Service, []entity.ServiceOption, error) {
	svc, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		s.log.Error("Failed to find service", zap.Error(err), zap.Int64("service_id", serviceID))
		return nil, nil, fmt.Errorf("failed to find service")
	}
	if svc == nil || !svc.Active {
		return nil, nil, fmt.Errorf("service not found")
	}

	options, err := s.repo.Option.FindByServiceID(ctx, serviceID)
	if err != nil {
		s.log.Error("Failed to load service options", zap.Error(err), zap.Int64("service_id", serviceID))
		return nil, nil, fmt.Errorf("failed to find service")
	}

	return svc, options, nil
}

func transitionAllowed(from, to entity.BookingStatus) bool {
	for _, next := range from.NextStatuses() {
		if next == to {
			return true
		}
	}
	return false
}

func bookingFilterFromRequest(req *request.BookingListRequest) (repository.BookingFilter, error) {
	filter := repository.BookingFilter{Status: req.Status, Query: req.Query}

	if req.DateFrom != nil {
		from, err := time.Parse("2006-01-02", *req.DateFrom)
		if err != nil {
			return filter, fmt.Errorf("invalid date_from")
		}
		filter.DateFrom = &from
	}
	if req.DateTo != nil {
		to, err := time.Parse("2006-01-02", *req.DateTo)
		if err != nil {
			return filter, fmt.Errorf("invalid date_to")
		}
		// inclusive upper bound
		to = to.Add(24 * time.Hour)
		filter.DateTo = &to
	}

	return filter, nil
}
