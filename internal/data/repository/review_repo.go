package repository

import (
	"context"
	"fmt"

	"cleaning-booking/internal/data/entity"
	"cleaning-booking/pkg/database"

	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByServiceID(ctx context.Context, serviceID int64, offset, limit int) ([]*entity.Review, error)
	CountByServiceID(ctx context.Context, serviceID int64) (int64, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (service_id, author, rating, text, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		review.ServiceID,
		review.Author,
		review.Rating,
		review.Text,
		review.CreatedAt,
	).Scan(&review.ID)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.Int64("service_id", review.ServiceID),
		)
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (r *reviewRepository) FindByServiceID(ctx context.Context, serviceID int64, offset, limit int) ([]*entity.Review, error) {
	query := `
		SELECT id, service_id, author, rating, text, created_at
		FROM reviews
		WHERE service_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, serviceID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews",
			zap.Error(err),
			zap.Int64("service_id", serviceID),
		)
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.ServiceID,
			&review.Author,
			&review.Rating,
			&review.Text,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) CountByServiceID(ctx context.Context, serviceID int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM reviews WHERE service_id = $1`, serviceID).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count reviews", zap.Error(err))
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return total, nil
}
