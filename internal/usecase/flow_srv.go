package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cleaning-booking/internal/bookingflow"
	"cleaning-booking/internal/data/repository"
	"cleaning-booking/internal/dto/request"
	"cleaning-booking/internal/dto/response"
	"cleaning-booking/pkg/utils"
)

type FlowService interface {
	Start(ctx context.Context, req *request.StartFlowRequest, userID *uuid.UUID) (*response.FlowResponse, error)
	Get(ctx context.Context, draftID string) (*response.FlowResponse, error)
	Dispatch(ctx context.Context, draftID string, req *request.FlowActionRequest) (*response.FlowResponse, error)
}

type flowService struct {
	repo   *repository.Repository
	drafts bookingflow.DraftStore
	sink   bookingflow.Sink
	config *utils.Config
	log    *zap.Logger
}

func NewFlowService(
	repo *repository.Repository,
	drafts bookingflow.DraftStore,
	sink bookingflow.Sink,
	config *utils.Config,
	log *zap.Logger,
) FlowService {
	return &flowService{
		repo:   repo,
		drafts: drafts,
		sink:   sink,
		config: config,
		log:    log.With(zap.String("service", "flow")),
	}
}

func (s *flowService) Start(ctx context.Context, req *request.StartFlowRequest, userID *uuid.UUID) (*response.FlowResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Start flow validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. The flow is bound to one service for its whole lifetime
	flow, err := s.buildFlow(ctx, req.ServiceID, "")
	if err != nil {
		return nil, err
	}

	rec := bookingflow.Record{
		DraftID:   utils.GenerateUUID().String(),
		ServiceID: req.ServiceID,
		State:     bookingflow.NewState(),
	}
	if userID != nil {
		rec.UserID = userID.String()
	}

	if err := s.drafts.Save(ctx, rec); err != nil {
		s.log.Error("Failed to save draft", zap.Error(err))
		return nil, fmt.Errorf("failed to start booking")
	}

	s.log.Info("Booking draft started",
		zap.String("draft_id", rec.DraftID),
		zap.Int64("service_id", req.ServiceID))

	resp := response.FlowToResponse(rec.DraftID, rec.ServiceID, flow.Render(rec.State))
	return &resp, nil
}

func (s *flowService) Get(ctx context.Context, draftID string) (*response.FlowResponse, error) {
	rec, err := s.loadDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	flow, err := s.buildFlow(ctx, rec.ServiceID, rec.UserID)
	if err != nil {
		return nil, err
	}

	resp := response.FlowToResponse(rec.DraftID, rec.ServiceID, flow.Render(rec.State))
	return &resp, nil
}

func (s *flowService) Dispatch(ctx context.Context, draftID string, req *request.FlowActionRequest) (*response.FlowResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Flow action validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	rec, err := s.loadDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	flow, err := s.buildFlow(ctx, rec.ServiceID, rec.UserID)
	if err != nil {
		return nil, err
	}

	action, err := s.actionFromRequest(req)
	if err != nil {
		return nil, err
	}

	// 2. A confirm marks the draft busy before touching the sink so a
	// concurrent dispatch against the same draft is rejected
	if action.Type == bookingflow.ActionConfirm {
		busy := rec
		busy.State.Submitting = true
		if err := s.drafts.Save(ctx, busy); err != nil {
			s.log.Error("Failed to mark draft busy", zap.Error(err), zap.String("draft_id", draftID))
			return nil, fmt.Errorf("failed to update booking")
		}

		dispatchCtx, cancel := context.WithTimeout(ctx, s.config.SubmitTimeout())
		defer cancel()
		ctx = dispatchCtx
	}

	next, err := flow.Dispatch(ctx, rec.State, action)
	if err != nil {
		// roll the busy flag back so the draft stays usable
		if action.Type == bookingflow.ActionConfirm {
			_ = s.drafts.Save(context.WithoutCancel(ctx), rec)
		}
		return nil, err
	}
	next.Submitting = false

	// 3. A submitted draft is done; drop it after rendering the final view
	rec.State = next
	if next.Step == bookingflow.StepSubmitted {
		if err := s.drafts.Delete(context.WithoutCancel(ctx), draftID); err != nil {
			s.log.Warn("Failed to delete submitted draft",
				zap.Error(err), zap.String("draft_id", draftID))
		}
		s.log.Info("Booking draft submitted",
			zap.String("draft_id", draftID),
			zap.String("reference", next.Reference))
	} else {
		if err := s.drafts.Save(context.WithoutCancel(ctx), rec); err != nil {
			s.log.Error("Failed to save draft", zap.Error(err), zap.String("draft_id", draftID))
			return nil, fmt.Errorf("failed to update booking")
		}
	}

	resp := response.FlowToResponse(draftID, rec.ServiceID, flow.Render(next))
	return &resp, nil
}

func (s *flowService) loadDraft(ctx context.Context, draftID string) (bookingflow.Record, error) {
	rec, err := s.drafts.Get(ctx, draftID)
	if err == bookingflow.ErrDraftNotFound {
		return rec, fmt.Errorf("draft not found")
	}
	if err != nil {
		s.log.Error("Failed to load draft", zap.Error(err), zap.String("draft_id", draftID))
		return rec, fmt.Errorf("failed to load booking")
	}
	return rec, nil
}

func (s *flowService) buildFlow(ctx context.Context, serviceID int64, userID string) (*bookingflow.Flow, error) {
	svc, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		s.log.Error("Failed to find service", zap.Error(err), zap.Int64("service_id", serviceID))
		return nil, fmt.Errorf("failed to find service")
	}
	if svc == nil || !svc.Active {
		return nil, fmt.Errorf("service not found")
	}

	options, err := s.repo.Option.FindByServiceID(ctx, serviceID)
	if err != nil {
		s.log.Error("Failed to load service options", zap.Error(err), zap.Int64("service_id", serviceID))
		return nil, fmt.Errorf("failed to find service")
	}

	loc := s.config.BookingLocation()
	return &bookingflow.Flow{
		Service: svc,
		Options: options,
		Hours: bookingflow.Hours{
			OpenHour:    s.config.Booking.OpenHour,
			CloseHour:   s.config.Booking.CloseHour,
			SlotMinutes: s.config.Booking.SlotMinutes,
		},
		Now:    func() time.Time { return time.Now().In(loc) },
		Sink:   s.sink,
		UserID: userID,
	}, nil
}

func (s *flowService) actionFromRequest(req *request.FlowActionRequest) (bookingflow.Action, error) {
	action := bookingflow.Action{
		Type:     req.Action,
		Time:     req.Time,
		OptionID: req.OptionID,
		Field:    req.Field,
		Value:    req.Value,
	}

	if req.Action == bookingflow.ActionSetDate {
		if req.Date == "" {
			return action, fmt.Errorf("date is required")
		}
		date, err := time.ParseInLocation("2006-01-02", req.Date, s.config.BookingLocation())
		if err != nil {
			return action, fmt.Errorf("invalid date")
		}
		action.Date = &date
	}

	return action, nil
}
