package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cleaning-booking/internal/data/repository"
	"cleaning-booking/internal/dto/request"
	"cleaning-booking/internal/dto/response"
	"cleaning-booking/pkg/utils"
)

const (
	recentBookingsLimit    = 5
	topServicesDefaultSize = 10
)

type StatsService interface {
	Dashboard(ctx context.Context) (*response.DashboardResponse, error)
	RevenueByPeriod(ctx context.Context, req *request.StatsPeriodRequest) ([]response.RevenuePointResponse, error)
	TopServices(ctx context.Context, limit int) ([]response.ServicePerformanceResponse, error)
}

type statsService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewStatsService(repo *repository.Repository, log *zap.Logger) StatsService {
	return &statsService{
		repo: repo,
		log:  log.With(zap.String("service", "stats")),
	}
}

func (s *statsService) Dashboard(ctx context.Context) (*response.DashboardResponse, error) {
	stats, err := s.repo.Stats.Dashboard(ctx)
	if err != nil {
		s.log.Error("Failed to load dashboard", zap.Error(err))
		return nil, fmt.Errorf("failed to load dashboard")
	}

	recent, err := s.repo.Stats.RecentBookings(ctx, recentBookingsLimit)
	if err != nil {
		s.log.Error("Failed to load recent bookings", zap.Error(err))
		return nil, fmt.Errorf("failed to load dashboard")
	}

	resp := &response.DashboardResponse{
		TotalBookings:   stats.TotalBookings,
		PendingBookings: stats.PendingBookings,
		TotalClients:    stats.TotalClients,
		TotalRevenue:    stats.TotalRevenue,
	}
	for _, b := range recent {
		resp.RecentBookings = append(resp.RecentBookings, response.BookingToResponse(b, nil))
	}

	return resp, nil
}

func (s *statsService) RevenueByPeriod(ctx context.Context, req *request.StatsPeriodRequest) ([]response.RevenuePointResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Revenue period validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	from, err := time.Parse("2006-01-02", req.DateFrom)
	if err != nil {
		return nil, fmt.Errorf("invalid date_from")
	}
	to, err := time.Parse("2006-01-02", req.DateTo)
	if err != nil {
		return nil, fmt.Errorf("invalid date_to")
	}
	if !from.Before(to.Add(24 * time.Hour)) {
		return nil, fmt.Errorf("date_from must not be after date_to")
	}

	points, err := s.repo.Stats.RevenueByPeriod(ctx, from, to.Add(24*time.Hour))
	if err != nil {
		s.log.Error("Failed to load revenue", zap.Error(err))
		return nil, fmt.Errorf("failed to load revenue")
	}

	result := make([]response.RevenuePointResponse, 0, len(points))
	for _, p := range points {
		result = append(result, response.RevenuePointToResponse(p))
	}

	return result, nil
}

func (s *statsService) TopServices(ctx context.Context, limit int) ([]response.ServicePerformanceResponse, error) {
	if limit < 1 || limit > 100 {
		limit = topServicesDefaultSize
	}

	perf, err := s.repo.Stats.ServicePerformance(ctx, limit)
	if err != nil {
		s.log.Error("Failed to load service performance", zap.Error(err))
		return nil, fmt.Errorf("failed to load service performance")
	}

	result := make([]response.ServicePerformanceResponse, 0, len(perf))
	for _, p := range perf {
		result = append(result, response.ServicePerformanceToResponse(p))
	}

	return result, nil
}
