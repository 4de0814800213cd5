package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
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

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *request.AddCartItemRequest) (*response.CartResponse, error)
	UpdateItem(ctx context.Context, userID uuid.UUID, itemID int64, req *request.UpdateCartItemRequest) (*response.CartResponse, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, itemID int64) (*response.CartResponse, error)
	Clear(ctx context.Context, userID uuid.UUID) error
	ApplyPromo(ctx context.Context, userID uuid.UUID, req *request.ApplyPromoRequest) (*response.CartResponse, error)
	Checkout(ctx context.Context, userID uuid.UUID, req *request.CheckoutRequest) (*response.OrderResponse, error)
}

type cartService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewCartService(repo *repository.Repository, config *utils.Config, log *zap.Logger) CartService {
	return &cartService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "cart")),
	}
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error) {
	return s.buildCart(ctx, userID, nil)
}

func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *request.AddCartItemRequest) (*response.CartResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add cart item validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Service must exist and be bookable
	svc, err := s.repo.Service.FindByID(ctx, req.ServiceID)
	if err != nil {
		s.log.Error("Failed to find service", zap.Error(err), zap.Int64("service_id", req.ServiceID))
		return nil, fmt.Errorf("failed to find service")
	}
	if svc == nil || !svc.Active {
		return nil, fmt.Errorf("service not found")
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	now := time.Now()
	item := &entity.CartItem{
		UserID:    userID,
		ServiceID: req.ServiceID,
		Quantity:  quantity,
		OptionIDs: req.OptionIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Cart.Upsert(ctx, item); err != nil {
		s.log.Error("Failed to add cart item",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int64("service_id", req.ServiceID))
		return nil, fmt.Errorf("failed to update cart")
	}

	s.log.Info("Cart item added",
		zap.String("user_id", userID.String()),
		zap.Int64("service_id", req.ServiceID),
		zap.Int("quantity", quantity))

	return s.buildCart(ctx, userID, nil)
}

func (s *cartService) UpdateItem(ctx context.Context, userID uuid.UUID, itemID int64, req *request.UpdateCartItemRequest) (*response.CartResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update cart item validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Item must belong to this user
	item, err := s.repo.Cart.FindItem(ctx, userID, itemID)
	if err != nil {
		s.log.Error("Failed to find cart item", zap.Error(err), zap.Int64("item_id", itemID))
		return nil, fmt.Errorf("failed to update cart")
	}
	if item == nil {
		return nil, fmt.Errorf("cart item not found")
	}

	if err := s.repo.Cart.UpdateQuantity(ctx, userID, itemID, req.Quantity); err != nil {
		s.log.Error("Failed to update cart item", zap.Error(err), zap.Int64("item_id", itemID))
		return nil, fmt.Errorf("failed to update cart")
	}

	return s.buildCart(ctx, userID, nil)
}

func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, itemID int64) (*response.CartResponse, error) {
	item, err := s.repo.Cart.FindItem(ctx, userID, itemID)
	if err != nil {
		s.log.Error("Failed to find cart item", zap.Error(err), zap.Int64("item_id", itemID))
		return nil, fmt.Errorf("failed to update cart")
	}
	if item == nil {
		return nil, fmt.Errorf("cart item not found")
	}

	if err := s.repo.Cart.Remove(ctx, userID, itemID); err != nil {
		s.log.Error("Failed to remove cart item", zap.Error(err), zap.Int64("item_id", itemID))
		return nil, fmt.Errorf("failed to update cart")
	}

	return s.buildCart(ctx, userID, nil)
}

func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Cart.Clear(ctx, userID); err != nil {
		s.log.Error("Failed to clear cart", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to update cart")
	}
	return nil
}

func (s *cartService) ApplyPromo(ctx context.Context, userID uuid.UUID, req *request.ApplyPromoRequest) (*response.CartResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Apply promo validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code != s.config.Cart.PromoCode {
		return nil, fmt.Errorf("invalid promo code")
	}

	return s.buildCart(ctx, userID, &code)
}

func (s *cartService) Checkout(ctx context.Context, userID uuid.UUID, req *request.CheckoutRequest) (*response.OrderResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var promo *string
	if req.PromoCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.PromoCode))
		if code != s.config.Cart.PromoCode {
			return nil, fmt.Errorf("invalid promo code")
		}
		promo = &code
	}

	// 2. Price the cart server-side
	cart, err := s.buildCart(ctx, userID, promo)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	// 3. Snapshot items into an order
	items, err := s.repo.Cart.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load cart", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to checkout")
	}

	orderItems := make([]entity.OrderItem, 0, len(items))
	for _, item := range items {
		svc, options, err := s.loadPricing(ctx, item.ServiceID)
		if err != nil {
			return nil, err
		}

		resolved := bookingflow.ResolveOptions(item.OptionIDs, options)
		snapshot := make([]entity.OrderItemOption, 0, len(resolved))
		for _, opt := range resolved {
			snapshot = append(snapshot, entity.OrderItemOption{
				ID:    opt.ID,
				Title: opt.Title,
				Price: opt.Price,
			})
		}

		orderItems = append(orderItems, entity.OrderItem{
			ServiceID: item.ServiceID,
			Title:     svc.Title,
			Price:     svc.Price,
			Quantity:  item.Quantity,
			Options:   snapshot,
		})
	}

	order := &entity.Order{
		Reference: utils.GenerateOrderReference(),
		UserID:    userID,
		Subtotal:  cart.Subtotal,
		Discount:  cart.Discount,
		Total:     cart.Total,
		PromoCode: promo,
		Status:    entity.OrderStatusPlaced,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Order.Create(ctx, order, orderItems); err != nil {
		s.log.Error("Failed to create order", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to checkout")
	}

	// 4. Empty the cart
	if err := s.repo.Cart.Clear(ctx, userID); err != nil {
		s.log.Warn("Failed to clear cart after checkout",
			zap.Error(err), zap.String("user_id", userID.String()))
	}

	s.log.Info("Order placed",
		zap.Int64("order_id", order.ID),
		zap.String("reference", order.Reference),
		zap.Float64("total", order.Total))

	resp := response.OrderToResponse(order, orderItems)
	return &resp, nil
}

// buildCart prices every line against the current catalog and applies the
// promo percentage to the subtotal when a code is given.
func (s *cartService) buildCart(ctx context.Context, userID uuid.UUID, promo *string) (*response.CartResponse, error) {
	items, err := s.repo.Cart.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load cart", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load cart")
	}

	cart := &response.CartResponse{Items: []response.CartItemResponse{}, PromoCode: promo}

	for _, item := range items {
		svc, options, err := s.loadPricing(ctx, item.ServiceID)
		if err != nil {
			return nil, err
		}

		lineTotal := bookingflow.ComputeTotal(svc.Price, item.Quantity, item.OptionIDs, options)

		line := response.CartItemResponse{
			ID:           item.ID,
			ServiceID:    item.ServiceID,
			ServiceTitle: svc.Title,
			Price:        svc.Price,
			Quantity:     item.Quantity,
			LineTotal:    lineTotal,
		}
		for _, opt := range bookingflow.ResolveOptions(item.OptionIDs, options) {
			line.Options = append(line.Options, response.ServiceOptionResponse{
				ID:    opt.ID,
				Title: opt.Title,
				Price: opt.Price,
			})
		}

		cart.Items = append(cart.Items, line)
		cart.Subtotal += lineTotal
	}

	if promo != nil {
		cart.Discount = roundMoney(cart.Subtotal * float64(s.config.Cart.PromoPercent) / 100)
	}
	cart.Total = cart.Subtotal - cart.Discount

	return cart, nil
}

func (s *cartService) loadPricing(ctx context.Context, serviceID int64) (*entity.Service, []entity.ServiceOption, error) {
	svc, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		s.log.Error("Failed to find service", zap.Error(err), zap.Int64("service_id", serviceID))
		return nil, nil, fmt.Errorf("failed to load cart")
	}
	if svc == nil {
		return nil, nil, fmt.Errorf("service not found")
	}

	options, err := s.repo.Option.FindByServiceID(ctx, serviceID)
	if err != nil {
		s.log.Error("Failed to load service options", zap.Error(err), zap.Int64("service_id", serviceID))
		return nil, nil, fmt.Errorf("failed to load cart")
	}

	return svc, options, nil
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
