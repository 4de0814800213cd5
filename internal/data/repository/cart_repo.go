package repository

import (
	"context"
	"fmt"

	"cleaning-booking/internal/data/entity"
	"cleaning-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CartRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error)
	FindItem(ctx context.Context, userID uuid.UUID, itemID int64) (*entity.CartItem, error)
	// Upsert adds the service to the cart or merges quantity/options into the
	// existing row for the same service.
	Upsert(ctx context.Context, item *entity.CartItem) error
	UpdateQuantity(ctx context.Context, userID uuid.UUID, itemID int64, quantity int) error
	Remove(ctx context.Context, userID uuid.UUID, itemID int64) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCartRepository(db database.PgxIface, log *zap.Logger) CartRepository {
	return &cartRepository{
		db:  db,
		log: log.With(zap.String("repository", "cart")),
	}
}

const cartColumns = `id, user_id, service_id, quantity, option_ids, created_at, updated_at`

func (r *cartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	query := `
		SELECT ` + cartColumns + `
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find cart items",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("failed to find cart items: %w", err)
	}
	defer rows.Close()

	var items []*entity.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return items, nil
}

func (r *cartRepository) FindItem(ctx context.Context, userID uuid.UUID, itemID int64) (*entity.CartItem, error) {
	query := `SELECT ` + cartColumns + ` FROM cart_items WHERE id = $1 AND user_id = $2`

	item, err := scanCartItem(r.db.QueryRow(ctx, query, itemID, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cart item",
			zap.Error(err),
			zap.Int64("item_id", itemID),
		)
		return nil, fmt.Errorf("failed to find cart item: %w", err)
	}

	return item, nil
}

func (r *cartRepository) Upsert(ctx context.Context, item *entity.CartItem) error {
	query := `
		INSERT INTO cart_items (user_id, service_id, quantity, option_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (user_id, service_id) DO UPDATE
		SET quantity = cart_items.quantity + EXCLUDED.quantity,
		    option_ids = EXCLUDED.option_ids,
		    updated_at = NOW()
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		item.UserID,
		item.ServiceID,
		item.Quantity,
		item.OptionIDs,
	).Scan(&item.ID)

	if err != nil {
		r.log.Error("Failed to upsert cart item",
			zap.Error(err),
			zap.String("user_id", item.UserID.String()),
			zap.Int64("service_id", item.ServiceID),
		)
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, userID uuid.UUID, itemID int64, quantity int) error {
	query := `
		UPDATE cart_items
		SET quantity = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.Exec(ctx, query, itemID, userID, quantity)
	if err != nil {
		r.log.Error("Failed to update cart quantity",
			zap.Error(err),
			zap.Int64("item_id", itemID),
		)
		return fmt.Errorf("failed to update cart quantity: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cart item not found")
	}

	return nil
}

func (r *cartRepository) Remove(ctx context.Context, userID uuid.UUID, itemID int64) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		r.log.Error("Failed to remove cart item",
			zap.Error(err),
			zap.Int64("item_id", itemID),
		)
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cart item not found")
	}

	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		r.log.Error("Failed to clear cart",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func scanCartItem(row pgx.Row) (*entity.CartItem, error) {
	var item entity.CartItem
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.ServiceID,
		&item.Quantity,
		&item.OptionIDs,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
