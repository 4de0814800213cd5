package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cleaning-booking/internal/data/entity"
	"cleaning-booking/internal/data/repository"
	"cleaning-booking/internal/dto/request"
)

type fakeCartRepo struct {
	repository.CartRepository
	items   []*entity.CartItem
	cleared bool
}

func (r *fakeCartRepo) FindByUserID(_ context.Context, _ uuid.UUID) ([]*entity.CartItem, error) {
	return r.items, nil
}

func (r *fakeCartRepo) FindItem(_ context.Context, _ uuid.UUID, itemID int64) (*entity.CartItem, error) {
	for _, item := range r.items {
		if item.ID == itemID {
			return item, nil
		}
	}
	return nil, nil
}

func (r *fakeCartRepo) Upsert(_ context.Context, item *entity.CartItem) error {
	item.ID = int64(len(r.items) + 1)
	r.items = append(r.items, item)
	return nil
}

func (r *fakeCartRepo) UpdateQuantity(_ context.Context, _ uuid.UUID, itemID int64, quantity int) error {
	for _, item := range r.items {
		if item.ID == itemID {
			item.Quantity = quantity
		}
	}
	return nil
}

func (r *fakeCartRepo) Clear(_ context.Context, _ uuid.UUID) error {
	r.items = nil
	r.cleared = true
	return nil
}

type fakeOrderRepo struct {
	repository.OrderRepository
	orders []*entity.Order
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order, _ []entity.OrderItem) error {
	order.ID = int64(len(r.orders) + 1)
	r.orders = append(r.orders, order)
	return nil
}

func newTestCartService() (CartService, *fakeCartRepo, *fakeOrderRepo) {
	cart := &fakeCartRepo{}
	orders := &fakeOrderRepo{}
	repo := &repository.Repository{
		Service: &fakeServiceRepo{services: map[int64]*entity.Service{
			1: {ID: 1, Title: "Генеральная уборка", Price: 2000, Active: true},
			2: {ID: 2, Title: "Мытьё окон", Price: 800, Active: true},
		}},
		Option: &fakeOptionRepo{options: map[int64][]entity.ServiceOption{
			1: {{ID: 10, ServiceID: 1, Title: "Химчистка дивана", Price: 1500}},
		}},
		Cart:  cart,
		Order: orders,
	}
	return NewCartService(repo, testConfig(), zap.NewNop()), cart, orders
}

func TestCartAddItemAndTotals(t *testing.T) {
	svc, _, _ := newTestCartService()
	userID := uuid.New()

	resp, err := svc.AddItem(context.Background(), userID, &request.AddCartItemRequest{
		ServiceID: 1,
		Quantity:  2,
		OptionIDs: []int64{10},
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	// (2000 + 1500) * 2
	assert.Equal(t, 7000.0, resp.Items[0].LineTotal)
	assert.Equal(t, 7000.0, resp.Subtotal)
	assert.Equal(t, 0.0, resp.Discount)
	assert.Equal(t, 7000.0, resp.Total)
}

func TestCartAddItemUnknownService(t *testing.T) {
	svc, _, _ := newTestCartService()

	_, err := svc.AddItem(context.Background(), uuid.New(), &request.AddCartItemRequest{ServiceID: 99})
	assert.EqualError(t, err, "service not found")
}

func TestCartPromoDiscount(t *testing.T) {
	svc, cart, _ := newTestCartService()
	userID := uuid.New()
	cart.items = []*entity.CartItem{
		{ID: 1, UserID: userID, ServiceID: 1, Quantity: 1},
		{ID: 2, UserID: userID, ServiceID: 2, Quantity: 1},
	}

	resp, err := svc.ApplyPromo(context.Background(), userID, &request.ApplyPromoRequest{Code: " clean10 "})
	require.NoError(t, err)

	assert.Equal(t, 2800.0, resp.Subtotal)
	assert.Equal(t, 280.0, resp.Discount)
	assert.Equal(t, 2520.0, resp.Total)
	require.NotNil(t, resp.PromoCode)
	assert.Equal(t, "CLEAN10", *resp.PromoCode)
}

func TestCartPromoInvalidCode(t *testing.T) {
	svc, _, _ := newTestCartService()

	_, err := svc.ApplyPromo(context.Background(), uuid.New(), &request.ApplyPromoRequest{Code: "SAVE50"})
	assert.EqualError(t, err, "invalid promo code")
}

func TestCartUpdateItemNotFound(t *testing.T) {
	svc, _, _ := newTestCartService()

	_, err := svc.UpdateItem(context.Background(), uuid.New(), 42, &request.UpdateCartItemRequest{Quantity: 3})
	assert.EqualError(t, err, "cart item not found")
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _, _ := newTestCartService()

	_, err := svc.Checkout(context.Background(), uuid.New(), &request.CheckoutRequest{})
	assert.EqualError(t, err, "cart is empty")
}

func TestCheckoutSnapshotsAndClearsCart(t *testing.T) {
	svc, cart, orders := newTestCartService()
	userID := uuid.New()
	cart.items = []*entity.CartItem{
		{ID: 1, UserID: userID, ServiceID: 1, Quantity: 1, OptionIDs: []int64{10}},
	}

	promo := "CLEAN10"
	resp, err := svc.Checkout(context.Background(), userID, &request.CheckoutRequest{PromoCode: &promo})
	require.NoError(t, err)

	assert.Equal(t, 3500.0, resp.Subtotal)
	assert.Equal(t, 350.0, resp.Discount)
	assert.Equal(t, 3150.0, resp.Total)
	assert.NotEmpty(t, resp.Reference)
	assert.Equal(t, entity.OrderStatusPlaced, resp.Status)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Генеральная уборка", resp.Items[0].Title)
	require.Len(t, resp.Items[0].Options, 1)
	assert.Equal(t, "Химчистка дивана", resp.Items[0].Options[0].Title)

	require.Len(t, orders.orders, 1)
	assert.True(t, cart.cleared)
	assert.Empty(t, cart.items)
}
