package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"cleaning-booking/internal/data/entity"
	"cleaning-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderRepository interface {
	// Create inserts the order and its items in one transaction.
	Create(ctx context.Context, order *entity.Order, items []entity.OrderItem) error
	FindByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*entity.Order, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindItems(ctx context.Context, orderID int64) ([]entity.OrderItem, error)
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order, items []entity.OrderItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO orders (reference, user_id, subtotal, discount, total,
		                    promo_code, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err = tx.QueryRow(ctx, query,
		order.Reference,
		order.UserID,
		order.Subtotal,
		order.Discount,
		order.Total,
		order.PromoCode,
		order.Status,
		order.CreatedAt,
	).Scan(&order.ID)

	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("reference", order.Reference),
		)
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, service_id, title, price, quantity, options)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, item := range items {
		options, err := json.Marshal(item.Options)
		if err != nil {
			return fmt.Errorf("failed to marshal order item options: %w", err)
		}

		if _, err := tx.Exec(ctx, itemQuery,
			order.ID, item.ServiceID, item.Title, item.Price, item.Quantity, options,
		); err != nil {
			r.log.Error("Failed to insert order item",
				zap.Error(err),
				zap.Int64("order_id", order.ID),
				zap.Int64("service_id", item.ServiceID),
			)
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*entity.Order, error) {
	query := `
		SELECT id, reference, user_id, subtotal, discount, total,
		       promo_code, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find user orders",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		var order entity.Order
		err := rows.Scan(
			&order.ID,
			&order.Reference,
			&order.UserID,
			&order.Subtotal,
			&order.Discount,
			&order.Total,
			&order.PromoCode,
			&order.Status,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count orders", zap.Error(err))
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return total, nil
}

func (r *orderRepository) FindItems(ctx context.Context, orderID int64) ([]entity.OrderItem, error) {
	query := `
		SELECT id, order_id, service_id, title, price, quantity, options
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		r.log.Error("Failed to find order items",
			zap.Error(err),
			zap.Int64("order_id", orderID),
		)
		return nil, fmt.Errorf("failed to find order items: %w", err)
	}
	defer rows.Close()

	var items []entity.OrderItem
	for rows.Next() {
		var item entity.OrderItem
		var options []byte

		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ServiceID,
			&item.Title,
			&item.Price,
			&item.Quantity,
			&options,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		if len(options) > 0 {
			if err := json.Unmarshal(options, &item.Options); err != nil {
				return nil, fmt.Errorf("failed to unmarshal order item options: %w", err)
			}
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return items, nil
}
