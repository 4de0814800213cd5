package repository

import (
	"context"
	"fmt"
	"time"

	"cleaning-booking/internal/data/entity"
	"cleaning-booking/pkg/database"

	"go.uber.org/zap"
)

// DashboardStats backs the admin dashboard cards
type DashboardStats struct {
	TotalBookings   int64
	PendingBookings int64
	TotalClients    int64
	TotalRevenue    float64
}

type RevenuePoint struct {
	Date   time.Time
	Amount float64
}

type ServicePerformance struct {
	ServiceID int64
	Title     string
	Bookings  int64
	Revenue   float64
}

type StatsRepository interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	RecentBookings(ctx context.Context, limit int) ([]*entity.Booking, error)
	RevenueByPeriod(ctx context.Context, from, to time.Time) ([]RevenuePoint, error)
	ServicePerformance(ctx context.Context, limit int) ([]ServicePerformance, error)
}

type statsRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStatsRepository(db database.PgxIface, log *zap.Logger) StatsRepository {
	return &statsRepository{
		db:  db,
		log: log.With(zap.String("repository", "stats")),
	}
}

// Revenue counts confirmed and completed bookings only; pending money is not
// revenue yet and cancelled never will be.
func (r *statsRepository) Dashboard(ctx context.Context) (*DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM bookings),
			(SELECT COUNT(*) FROM bookings WHERE status = 'pending'),
			(SELECT COUNT(*) FROM clients),
			(SELECT COALESCE(SUM(total_amount), 0) FROM bookings
			  WHERE status IN ('confirmed', 'completed'))
	`

	var stats DashboardStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalBookings,
		&stats.PendingBookings,
		&stats.TotalClients,
		&stats.TotalRevenue,
	)
	if err != nil {
		r.log.Error("Failed to load dashboard stats", zap.Error(err))
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}

	return &stats, nil
}

func (r *statsRepository) RecentBookings(ctx context.Context, limit int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to load recent bookings", zap.Error(err))
		return nil, fmt.Errorf("failed to load recent bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *statsRepository) RevenueByPeriod(ctx context.Context, from, to time.Time) ([]RevenuePoint, error) {
	query := `
		SELECT date_trunc('day', scheduled_at) AS day,
		       COALESCE(SUM(total_amount), 0)
		FROM bookings
		WHERE status IN ('confirmed', 'completed')
		  AND scheduled_at >= $1 AND scheduled_at < $2
		GROUP BY day
		ORDER BY day
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		r.log.Error("Failed to load revenue by period",
			zap.Error(err),
			zap.Time("from", from),
			zap.Time("to", to),
		)
		return nil, fmt.Errorf("failed to load revenue by period: %w", err)
	}
	defer rows.Close()

	var points []RevenuePoint
	for rows.Next() {
		var point RevenuePoint
		if err := rows.Scan(&point.Date, &point.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan revenue point: %w", err)
		}
		points = append(points, point)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return points, nil
}

func (r *statsRepository) ServicePerformance(ctx context.Context, limit int) ([]ServicePerformance, error) {
	query := `
		SELECT b.service_id, b.service_title,
		       COUNT(*) AS bookings,
		       COALESCE(SUM(b.total_amount) FILTER (WHERE b.status IN ('confirmed', 'completed')), 0) AS revenue
		FROM bookings b
		GROUP BY b.service_id, b.service_title
		ORDER BY revenue DESC, bookings DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to load service performance", zap.Error(err))
		return nil, fmt.Errorf("failed to load service performance: %w", err)
	}
	defer rows.Close()

	var result []ServicePerformance
	for rows.Next() {
		var perf ServicePerformance
		if err := rows.Scan(&perf.ServiceID, &perf.Title, &perf.Bookings, &perf.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan service performance: %w", err)
		}
		result = append(result, perf)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return result, nil
}
