package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cleaning-booking/internal/data/entity"
	"cleaning-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingFilter struct {
	Status   *string
	DateFrom *time.Time
	DateTo   *time.Time
	Query    *string
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking, options []entity.BookingOption) error
	FindByID(ctx context.Context, id int64) (*entity.Booking, error)
	FindAll(ctx context.Context, offset, limit int, filter BookingFilter) ([]*entity.Booking, error)
	CountAll(ctx context.Context, filter BookingFilter) (int64, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*entity.Booking, error)
	FindByClientID(ctx context.Context, clientID int64) ([]*entity.Booking, error)
	FindOptions(ctx context.Context, bookingID int64) ([]entity.BookingOption, error)
	UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus, reason *string) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, reference, service_id, service_title, scheduled_at, address,
	       client_name, client_phone, client_email, comments, total_amount,
	       status, cancel_reason, client_id, user_id, created_at, updated_at`

// Create inserts the booking and its option snapshots in one transaction.
func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking, options []entity.BookingOption) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO bookings (reference, service_id, service_title, scheduled_at, address,
		                      client_name, client_phone, client_email, comments,
		                      total_amount, status, client_id, user_id,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`

	err = tx.QueryRow(ctx, query,
		booking.Reference,
		booking.ServiceID,
		booking.ServiceTitle,
		booking.ScheduledAt,
		booking.Address,
		booking.ClientName,
		booking.ClientPhone,
		booking.ClientEmail,
		booking.Comments,
		booking.TotalAmount,
		booking.Status,
		booking.ClientID,
		booking.UserID,
		booking.CreatedAt,
		booking.UpdatedAt,
	).Scan(&booking.ID)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference", booking.Reference),
		)
		return fmt.Errorf("failed to create booking: %w", err)
	}

	optionQuery := `
		INSERT INTO booking_options (booking_id, option_id, title, price)
		VALUES ($1, $2, $3, $4)
	`

	for _, option := range options {
		if _, err := tx.Exec(ctx, optionQuery, booking.ID, option.OptionID, option.Title, option.Price); err != nil {
			r.log.Error("Failed to insert booking option",
				zap.Error(err),
				zap.Int64("booking_id", booking.ID),
				zap.Int64("option_id", option.OptionID),
			)
			return fmt.Errorf("failed to insert booking option: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *bookingRepository) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.Int64("booking_id", id),
		)
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, offset, limit int, filter BookingFilter) ([]*entity.Booking, error) {
	query, args := buildBookingQuery(`SELECT `+bookingColumns+` FROM bookings WHERE 1=1`, filter)

	argCount := len(args) + 1
	query += fmt.Sprintf(" ORDER BY scheduled_at DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find bookings", zap.Error(err))
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) CountAll(ctx context.Context, filter BookingFilter) (int64, error) {
	query, args := buildBookingQuery(`SELECT COUNT(*) FROM bookings WHERE 1=1`, filter)

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return total, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY scheduled_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find user bookings",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("failed to find user bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) FindByClientID(ctx context.Context, clientID int64) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE client_id = $1
		ORDER BY scheduled_at DESC
	`

	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		r.log.Error("Failed to find client bookings",
			zap.Error(err),
			zap.Int64("client_id", clientID),
		)
		return nil, fmt.Errorf("failed to find client bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) FindOptions(ctx context.Context, bookingID int64) ([]entity.BookingOption, error) {
	query := `
		SELECT booking_id, option_id, title, price
		FROM booking_options
		WHERE booking_id = $1
		ORDER BY option_id
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking options",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
		)
		return nil, fmt.Errorf("failed to find booking options: %w", err)
	}
	defer rows.Close()

	var options []entity.BookingOption
	for rows.Next() {
		var option entity.BookingOption
		if err := rows.Scan(&option.BookingID, &option.OptionID, &option.Title, &option.Price); err != nil {
			return nil, fmt.Errorf("failed to scan booking option: %w", err)
		}
		options = append(options, option)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return options, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus, reason *string) error {
	query := `
		UPDATE bookings
		SET status = $2, cancel_reason = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, status, reason)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.Int64("booking_id", id),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking not found")
	}

	r.log.Info("Booking status updated",
		zap.Int64("booking_id", id),
		zap.String("status", string(status)),
	)
	return nil
}

func buildBookingQuery(base string, filter BookingFilter) (string, []interface{}) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(base)

	args := []interface{}{}
	argCount := 1

	if filter.Status != nil && *filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND status = $%d", argCount))
		args = append(args, *filter.Status)
		argCount++
	}

	if filter.DateFrom != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND scheduled_at >= $%d", argCount))
		args = append(args, *filter.DateFrom)
		argCount++
	}

	if filter.DateTo != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND scheduled_at < $%d", argCount))
		args = append(args, *filter.DateTo)
		argCount++
	}

	if filter.Query != nil && *filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND (client_name ILIKE $%d OR client_phone ILIKE $%d OR reference ILIKE $%d)",
			argCount, argCount, argCount,
		))
		args = append(args, "%"+*filter.Query+"%")
	}

	return queryBuilder.String(), args
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.ServiceID,
		&booking.ServiceTitle,
		&booking.ScheduledAt,
		&booking.Address,
		&booking.ClientName,
		&booking.ClientPhone,
		&booking.ClientEmail,
		&booking.Comments,
		&booking.TotalAmount,
		&booking.Status,
		&booking.CancelReason,
		&booking.ClientID,
		&booking.UserID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return bookings, nil
}
