package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cleaning-booking/internal/data/repository"
	"cleaning-booking/internal/dto/request"
	"cleaning-booking/internal/dto/response"
	"cleaning-booking/pkg/utils"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error
	MyBookings(ctx context.Context, userID uuid.UUID, page request.PaginatedRequest) ([]response.BookingResponse, error)
	MyOrders(ctx context.Context, userID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update profile validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Load current profile
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	// 3. Apply changes
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to update profile")
	}

	s.log.Info("Profile updated", zap.String("user_id", userID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Change password validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Verify current password
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to find user")
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		s.log.Warn("Wrong current password", zap.String("user_id", userID.String()))
		return fmt.Errorf("invalid credentials")
	}

	// 3. Store the new hash and revoke other sessions
	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("failed to process password")
	}

	if err := s.repo.User.UpdatePassword(ctx, userID, hash); err != nil {
		s.log.Error("Failed to update password", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to change password")
	}

	if err := s.repo.Session.RevokeAllUserSessions(ctx, userID); err != nil {
		s.log.Warn("Failed to revoke sessions after password change",
			zap.Error(err), zap.String("user_id", userID.String()))
	}

	s.log.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

func (s *userService) MyBookings(ctx context.Context, userID uuid.UUID, page request.PaginatedRequest) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, page.Offset(), page.Limit())
	if err != nil {
		s.log.Error("Failed to find bookings", zap.Error(err), zap.String("user_id", userID.String()))
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

	return result, nil
}

func (s *userService) MyOrders(ctx context.Context, userID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	orders, err := s.repo.Order.FindByUserID(ctx, userID, page.Offset(), page.Limit())
	if err != nil {
		s.log.Error("Failed to find orders", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to find orders")
	}

	total, err := s.repo.Order.CountByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count orders", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to find orders")
	}

	result := make([]response.OrderResponse, 0, len(orders))
	for _, order := range orders {
		items, err := s.repo.Order.FindItems(ctx, order.ID)
		if err != nil {
			s.log.Error("Failed to load order items",
				zap.Error(err), zap.Int64("order_id", order.ID))
			return nil, fmt.Errorf("failed to find orders")
		}
		result = append(result, response.OrderToResponse(order, items))
	}

	return response.NewPaginatedResponse(result, page.Page, page.Limit(), total), nil
}
