package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cleaning-booking/internal/data/repository"
	"cleaning-booking/internal/dto/request"
	"cleaning-booking/internal/dto/response"
	"cleaning-booking/pkg/utils"
)

type ClientService interface {
	ListClients(ctx context.Context, page request.PaginatedRequest, query *string) (*response.PaginatedResponse[response.ClientResponse], error)
	GetClient(ctx context.Context, id int64) (*response.ClientResponse, []response.BookingResponse, error)
	UpdateClient(ctx context.Context, id int64, req *request.UpdateClientRequest) (*response.ClientResponse, error)
}

type clientService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewClientService(repo *repository.Repository, log *zap.Logger) ClientService {
	return &clientService{
		repo: repo,
		log:  log.With(zap.String("service", "client")),
	}
}

func (s *clientService) ListClients(ctx context.Context, page request.PaginatedRequest, query *string) (*response.PaginatedResponse[response.ClientResponse], error) {
	clients, err := s.repo.Client.FindAll(ctx, page.Offset(), page.Limit(), query)
	if err != nil {
		s.log.Error("Failed to find clients", zap.Error(err))
		return nil, fmt.Errorf("failed to find clients")
	}

	total, err := s.repo.Client.CountAll(ctx, query)
	if err != nil {
		s.log.Error("Failed to count clients", zap.Error(err))
		return nil, fmt.Errorf("failed to find clients")
	}

	result := make([]response.ClientResponse, 0, len(clients))
	for _, c := range clients {
		result = append(result, response.ClientToResponse(c))
	}

	return response.NewPaginatedResponse(result, page.Page, page.Limit(), total), nil
}

// GetClient returns the client card together with their booking history.
func (s *clientService) GetClient(ctx context.Context, id int64) (*response.ClientResponse, []response.BookingResponse, error) {
	client, err := s.repo.Client.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find client", zap.Error(err), zap.Int64("client_id", id))
		return nil, nil, fmt.Errorf("failed to find client")
	}
	if client == nil {
		return nil, nil, fmt.Errorf("client not found")
	}

	bookings, err := s.repo.Booking.FindByClientID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load client bookings", zap.Error(err), zap.Int64("client_id", id))
		return nil, nil, fmt.Errorf("failed to find client")
	}

	history := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		options, err := s.repo.Booking.FindOptions(ctx, b.ID)
		if err != nil {
			s.log.Error("Failed to load booking options",
				zap.Error(err), zap.Int64("booking_id", b.ID))
			return nil, nil, fmt.Errorf("failed to find client")
		}
		history = append(history, response.BookingToResponse(b, options))
	}

	resp := response.ClientToResponse(client)
	return &resp, history, nil
}

func (s *clientService) UpdateClient(ctx context.Context, id int64, req *request.UpdateClientRequest) (*response.ClientResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update client validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	client, err := s.repo.Client.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find client", zap.Error(err), zap.Int64("client_id", id))
		return nil, fmt.Errorf("failed to find client")
	}
	if client == nil {
		return nil, fmt.Errorf("client not found")
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = req.Email
	}
	if req.Address != nil {
		client.Address = req.Address
	}

	if err := s.repo.Client.Update(ctx, client); err != nil {
		s.log.Error("Failed to update client", zap.Error(err), zap.Int64("client_id", id))
		return nil, fmt.Errorf("failed to update client")
	}

	s.log.Info("Client updated", zap.Int64("client_id", id))

	resp := response.ClientToResponse(client)
	return &resp, nil
}
