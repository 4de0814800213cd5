package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"cleaning-booking/internal/bookingflow"
	"cleaning-booking/internal/data/entity"
	"cleaning-booking/internal/data/repository"
	"cleaning-booking/internal/dto/request"
	"cleaning-booking/internal/dto/response"
	"cleaning-booking/pkg/utils"
)

// Public catalog reads are cached briefly; admin mutations flush the keys.
const (
	catalogCacheTTL    = time.Minute
	catalogCachePrefix = "catalog:"
)

type CatalogService interface {
	ListServices(ctx context.Context, req *request.ServiceListRequest) (*response.PaginatedResponse[response.ServiceResponse], error)
	GetService(ctx context.Context, id int64) (*response.ServiceResponse, error)
	GetSlots(ctx context.Context, serviceID int64, date *time.Time) ([]bookingflow.TimeSlot, error)
	CreateService(ctx context.Context, req *request.CreateServiceRequest) (*response.ServiceResponse, error)
	UpdateService(ctx context.Context, id int64, req *request.UpdateServiceRequest) (*response.ServiceResponse, error)
	DeleteService(ctx context.Context, id int64) error
	ListReviews(ctx context.Context, serviceID int64, page request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	CreateReview(ctx context.Context, serviceID int64, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
}

type catalogService struct {
	repo   *repository.Repository
	rdb    *redis.Client
	config *utils.Config
	log    *zap.Logger
}

func NewCatalogService(repo *repository.Repository, rdb *redis.Client, config *utils.Config, log *zap.Logger) CatalogService {
	return &catalogService{
		repo:   repo,
		rdb:    rdb,
		config: config,
		log:    log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListServices(ctx context.Context, req *request.ServiceListRequest) (*response.PaginatedResponse[response.ServiceResponse], error) {
	// 1. Validate filters
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("List services validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Serve from cache when the exact page was listed recently
	key := listCacheKey(req)
	var cached response.PaginatedResponse[response.ServiceResponse]
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	filter := repository.ServiceFilter{
		Category: req.Category,
		Query:    req.Query,
	}

	// 3. Load page and total
	services, err := s.repo.Service.FindAll(ctx, req.Offset(), req.Limit(), filter)
	if err != nil {
		s.log.Error("Failed to find services", zap.Error(err))
		return nil, fmt.Errorf("failed to find services")
	}

	total, err := s.repo.Service.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count services", zap.Error(err))
		return nil, fmt.Errorf("failed to find services")
	}

	// 4. Attach options
	result := make([]response.ServiceResponse, 0, len(services))
	for _, svc := range services {
		options, err := s.repo.Option.FindByServiceID(ctx, svc.ID)
		if err != nil {
			s.log.Error("Failed to load service options",
				zap.Error(err), zap.Int64("service_id", svc.ID))
			return nil, fmt.Errorf("failed to find services")
		}
		result = append(result, response.ServiceToResponse(svc, options))
	}

	page := response.NewPaginatedResponse(result, req.Page, req.Limit(), total)
	s.cacheSet(ctx, key, page)
	return page, nil
}

func (s *catalogService) GetService(ctx context.Context, id int64) (*response.ServiceResponse, error) {
	key := fmt.Sprintf("%sservice:%d", catalogCachePrefix, id)
	var cached response.ServiceResponse
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	svc, err := s.findService(ctx, id)
	if err != nil {
		return nil, err
	}

	options, err := s.repo.Option.FindByServiceID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load service options", zap.Error(err), zap.Int64("service_id", id))
		return nil, fmt.Errorf("failed to find service")
	}

	resp := response.ServiceToResponse(svc, options)
	s.cacheSet(ctx, key, resp)
	return &resp, nil
}

// GetSlots returns the bookable times for the given date. Past slots are
// disabled when the date is today in the configured timezone.
func (s *catalogService) GetSlots(ctx context.Context, serviceID int64, date *time.Time) ([]bookingflow.TimeSlot, error) {
	if _, err := s.findService(ctx, serviceID); err != nil {
		return nil, err
	}

	hours := bookingflow.Hours{
		OpenHour:    s.config.Booking.OpenHour,
		CloseHour:   s.config.Booking.CloseHour,
		SlotMinutes: s.config.Booking.SlotMinutes,
	}

	now := time.Now().In(s.config.BookingLocation())
	return bookingflow.GenerateTimeSlots(date, now, hours), nil
}

func (s *catalogService) CreateService(ctx context.Context, req *request.CreateServiceRequest) (*response.ServiceResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create service validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Build entity
	now := time.Now()
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	svc := &entity.Service{
		Title:           req.Title,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Price:           req.Price,
		PriceUnit:       req.PriceUnit,
		ImageURL:        req.ImageURL,
		Category:        entity.ServiceCategory(req.Category),
		Duration:        req.Duration,
		Features:        req.Features,
		FAQ:             req.FAQ,
		Active:          active,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Service.Create(ctx, svc); err != nil {
		s.log.Error("Failed to create service", zap.Error(err), zap.String("title", req.Title))
		return nil, fmt.Errorf("failed to create service")
	}

	// 3. Store options
	options := optionsFromRequest(svc.ID, req.Options)
	if err := s.repo.Option.ReplaceForService(ctx, svc.ID, options); err != nil {
		s.log.Error("Failed to store service options", zap.Error(err), zap.Int64("service_id", svc.ID))
		return nil, fmt.Errorf("failed to create service")
	}

	s.invalidateCatalogCache(ctx)
	s.log.Info("Service created", zap.Int64("service_id", svc.ID), zap.String("title", svc.Title))

	return s.GetService(ctx, svc.ID)
}

func (s *catalogService) UpdateService(ctx context.Context, id int64, req *request.UpdateServiceRequest) (*response.ServiceResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update service validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Load and patch
	svc, err := s.findService(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		svc.Title = *req.Title
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.LongDescription != nil {
		svc.LongDescription = req.LongDescription
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.PriceUnit != nil {
		svc.PriceUnit = *req.PriceUnit
	}
	if req.ImageURL != nil {
		svc.ImageURL = req.ImageURL
	}
	if req.Category != nil {
		svc.Category = entity.ServiceCategory(*req.Category)
	}
	if req.Duration != nil {
		svc.Duration = *req.Duration
	}
	if req.Features != nil {
		svc.Features = req.Features
	}
	if req.FAQ != nil {
		svc.FAQ = req.FAQ
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}
	svc.UpdatedAt = time.Now()

	if err := s.repo.Service.Update(ctx, svc); err != nil {
		s.log.Error("Failed to update service", zap.Error(err), zap.Int64("service_id", id))
		return nil, fmt.Errorf("failed to update service")
	}

	// 3. Replace options when provided
	if req.Options != nil {
		options := optionsFromRequest(id, *req.Options)
		if err := s.repo.Option.ReplaceForService(ctx, id, options); err != nil {
			s.log.Error("Failed to replace service options", zap.Error(err), zap.Int64("service_id", id))
			return nil, fmt.Errorf("failed to update service")
		}
	}

	s.invalidateCatalogCache(ctx)
	s.log.Info("Service updated", zap.Int64("service_id", id))

	return s.GetService(ctx, id)
}

func (s *catalogService) DeleteService(ctx context.Context, id int64) error {
	if _, err := s.findService(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Service.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete service", zap.Error(err), zap.Int64("service_id", id))
		return fmt.Errorf("failed to delete service")
	}

	s.invalidateCatalogCache(ctx)
	s.log.Info("Service deleted", zap.Int64("service_id", id))
	return nil
}

func (s *catalogService) ListReviews(ctx context.Context, serviceID int64, page request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	if _, err := s.findService(ctx, serviceID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByServiceID(ctx, serviceID, page.Offset(), page.Limit())
	if err != nil {
		s.log.Error("Failed to find reviews", zap.Error(err), zap.Int64("service_id", serviceID))
		return nil, fmt.Errorf("failed to find reviews")
	}

	total, err := s.repo.Review.CountByServiceID(ctx, serviceID)
	if err != nil {
		s.log.Error("Failed to count reviews", zap.Error(err), zap.Int64("service_id", serviceID))
		return nil, fmt.Errorf("failed to find reviews")
	}

	result := make([]response.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		result = append(result, response.ReviewToResponse(review))
	}

	return response.NewPaginatedResponse(result, page.Page, page.Limit(), total), nil
}

func (s *catalogService) CreateReview(ctx context.Context, serviceID int64, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Service must exist
	if _, err := s.findService(ctx, serviceID); err != nil {
		return nil, err
	}

	review := &entity.Review{
		ServiceID: serviceID,
		Author:    req.Author,
		Rating:    req.Rating,
		Text:      req.Text,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review", zap.Error(err), zap.Int64("service_id", serviceID))
		return nil, fmt.Errorf("failed to create review")
	}

	s.log.Info("Review created",
		zap.Int64("service_id", serviceID),
		zap.Int("rating", req.Rating))

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *catalogService) findService(ctx context.Context, id int64) (*entity.Service, error) {
	svc, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find service", zap.Error(err), zap.Int64("service_id", id))
		return nil, fmt.Errorf("failed to find service")
	}
	if svc == nil {
		return nil, fmt.Errorf("service not found")
	}
	return svc, nil
}

// cacheGet reports whether the key was found and unmarshalled into dest.
// Cache trouble is never surfaced to the caller.
func (s *catalogService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.rdb == nil {
		return false
	}

	data, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		s.log.Warn("Catalog cache read failed", zap.Error(err), zap.String("key", key))
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		s.log.Warn("Catalog cache payload corrupt", zap.Error(err), zap.String("key", key))
		return false
	}
	return true
}

func (s *catalogService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.rdb == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, data, catalogCacheTTL).Err(); err != nil {
		s.log.Warn("Catalog cache write failed", zap.Error(err), zap.String("key", key))
	}
}

// invalidateCatalogCache drops every cached catalog key after a mutation.
func (s *catalogService) invalidateCatalogCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}

	var cursor uint64
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, catalogCachePrefix+"*", 100).Result()
		if err != nil {
			s.log.Warn("Catalog cache invalidation failed", zap.Error(err))
			return
		}
		if len(keys) > 0 {
			if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
				s.log.Warn("Catalog cache invalidation failed", zap.Error(err))
				return
			}
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}

func listCacheKey(req *request.ServiceListRequest) string {
	category := ""
	if req.Category != nil {
		category = *req.Category
	}
	query := ""
	if req.Query != nil {
		query = *req.Query
	}
	return fmt.Sprintf("%sservices:%s:%s:%d:%d", catalogCachePrefix, category, query, req.Page, req.Limit())
}

func optionsFromRequest(serviceID int64, reqs []request.ServiceOptionRequest) []entity.ServiceOption {
	options := make([]entity.ServiceOption, 0, len(reqs))
	for i, opt := range reqs {
		options = append(options, entity.ServiceOption{
			ServiceID: serviceID,
			Title:     opt.Title,
			Price:     opt.Price,
			Position:  i,
			CreatedAt: time.Now(),
		})
	}
	return options
}
