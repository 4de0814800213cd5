package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cleaning-booking/internal/data/entity"
	"cleaning-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ServiceFilter struct {
	Category *string
	Query    *string
}

type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	FindByID(ctx context.Context, id int64) (*entity.Service, error)
	FindAll(ctx context.Context, offset, limit int, filter ServiceFilter) ([]*entity.Service, error)
	CountAll(ctx context.Context, filter ServiceFilter) (int64, error)
	Update(ctx context.Context, service *entity.Service) error
	Delete(ctx context.Context, id int64) error
}

type serviceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

const serviceColumns = `id, title, description, long_description, price, price_unit,
	       image_url, category, duration, features, faq, active,
	       created_at, updated_at`

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	faq, err := json.Marshal(service.FAQ)
	if err != nil {
		return fmt.Errorf("failed to marshal faq: %w", err)
	}

	query := `
		INSERT INTO services (title, description, long_description, price, price_unit,
		                      image_url, category, duration, features, faq, active,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	err = r.db.QueryRow(ctx, query,
		service.Title,
		service.Description,
		service.LongDescription,
		service.Price,
		service.PriceUnit,
		service.ImageURL,
		service.Category,
		service.Duration,
		service.Features,
		faq,
		service.Active,
		service.CreatedAt,
		service.UpdatedAt,
	).Scan(&service.ID)

	if err != nil {
		r.log.Error("Failed to create service",
			zap.Error(err),
			zap.String("title", service.Title),
		)
		return fmt.Errorf("failed to create service: %w", err)
	}

	return nil
}

func (r *serviceRepository) FindByID(ctx context.Context, id int64) (*entity.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE id = $1 AND deleted_at IS NULL
	`

	service, err := r.scanService(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by ID",
			zap.Error(err),
			zap.Int64("service_id", id),
		)
		return nil, fmt.Errorf("failed to find service: %w", err)
	}

	return service, nil
}

func (r *serviceRepository) FindAll(ctx context.Context, offset, limit int, filter ServiceFilter) ([]*entity.Service, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ` + serviceColumns + `
		FROM services
		WHERE deleted_at IS NULL
	`)

	args := []interface{}{}
	argCount := 1

	if filter.Category != nil && *filter.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND category = $%d", argCount))
		args = append(args, *filter.Category)
		argCount++
	}

	if filter.Query != nil && *filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+*filter.Query+"%")
		argCount++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all services",
			zap.Error(err),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("failed to find services: %w", err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		service, err := r.scanService(rows)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return services, nil
}

func (r *serviceRepository) CountAll(ctx context.Context, filter ServiceFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM services WHERE deleted_at IS NULL`
	args := []interface{}{}
	argCount := 1

	if filter.Category != nil && *filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argCount)
		args = append(args, *filter.Category)
		argCount++
	}

	if filter.Query != nil && *filter.Query != "" {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argCount, argCount)
		args = append(args, "%"+*filter.Query+"%")
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count services", zap.Error(err))
		return 0, fmt.Errorf("failed to count services: %w", err)
	}

	return total, nil
}

func (r *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	faq, err := json.Marshal(service.FAQ)
	if err != nil {
		return fmt.Errorf("failed to marshal faq: %w", err)
	}

	query := `
		UPDATE services
		SET title = $2, description = $3, long_description = $4, price = $5,
		    price_unit = $6, image_url = $7, category = $8, duration = $9,
		    features = $10, faq = $11, active = $12, updated_at = $13
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		service.ID,
		service.Title,
		service.Description,
		service.LongDescription,
		service.Price,
		service.PriceUnit,
		service.ImageURL,
		service.Category,
		service.Duration,
		service.Features,
		faq,
		service.Active,
		service.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update service",
			zap.Error(err),
			zap.Int64("service_id", service.ID),
		)
		return fmt.Errorf("failed to update service: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service not found or already deleted")
	}

	return nil
}

func (r *serviceRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE services SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete service",
			zap.Error(err),
			zap.Int64("service_id", id),
		)
		return fmt.Errorf("failed to delete service: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service not found or already deleted")
	}

	r.log.Info("Service soft deleted", zap.Int64("service_id", id))
	return nil
}

func (r *serviceRepository) scanService(row pgx.Row) (*entity.Service, error) {
	var service entity.Service
	var faq []byte

	err := row.Scan(
		&service.ID,
		&service.Title,
		&service.Description,
		&service.LongDescription,
		&service.Price,
		&service.PriceUnit,
		&service.ImageURL,
		&service.Category,
		&service.Duration,
		&service.Features,
		&faq,
		&service.Active,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(faq) > 0 {
		if err := json.Unmarshal(faq, &service.FAQ); err != nil {
			return nil, fmt.Errorf("failed to unmarshal faq: %w", err)
		}
	}

	return &service, nil
}
