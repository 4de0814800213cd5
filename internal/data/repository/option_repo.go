package repository

import (
	"context"
	"fmt"

	"cleaning-booking/internal/data/entity"
	"cleaning-booking/pkg/database"

	"go.uber.org/zap"
)

type ServiceOptionRepository interface {
	FindByServiceID(ctx context.Context, serviceID int64) ([]entity.ServiceOption, error)
	ReplaceForService(ctx context.Context, serviceID int64, options []entity.ServiceOption) error
}

type serviceOptionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceOptionRepository(db database.PgxIface, log *zap.Logger) ServiceOptionRepository {
	return &serviceOptionRepository{
		db:  db,
		log: log.With(zap.String("repository", "service_option")),
	}
}

func (r *serviceOptionRepository) FindByServiceID(ctx context.Context, serviceID int64) ([]entity.ServiceOption, error) {
	query := `
		SELECT id, service_id, title, price, position, created_at
		FROM service_options
		WHERE service_id = $1
		ORDER BY position, id
	`

	rows, err := r.db.Query(ctx, query, serviceID)
	if err != nil {
		r.log.Error("Failed to find service options",
			zap.Error(err),
			zap.Int64("service_id", serviceID),
		)
		return nil, fmt.Errorf("failed to find options: %w", err)
	}
	defer rows.Close()

	var options []entity.ServiceOption
	for rows.Next() {
		var option entity.ServiceOption
		err := rows.Scan(
			&option.ID,
			&option.ServiceID,
			&option.Title,
			&option.Price,
			&option.Position,
			&option.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan option row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, option)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return options, nil
}

// ReplaceForService swaps the full option list inside one transaction; the
// admin form always submits the complete list.
func (r *serviceOptionRepository) ReplaceForService(ctx context.Context, serviceID int64, options []entity.ServiceOption) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM service_options WHERE service_id = $1`, serviceID); err != nil {
		r.log.Error("Failed to clear service options",
			zap.Error(err),
			zap.Int64("service_id", serviceID),
		)
		return fmt.Errorf("failed to clear options: %w", err)
	}

	query := `
		INSERT INTO service_options (service_id, title, price, position, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	for _, option := range options {
		if _, err := tx.Exec(ctx, query, serviceID, option.Title, option.Price, option.Position); err != nil {
			r.log.Error("Failed to insert service option",
				zap.Error(err),
				zap.Int64("service_id", serviceID),
				zap.String("title", option.Title),
			)
			return fmt.Errorf("failed to insert option: %w", err)
		}
	}

	return tx.Commit(ctx)
}
