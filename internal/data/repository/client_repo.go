package repository

import (
	"context"
	"fmt"
	"strings"

	"cleaning-booking/internal/data/entity"
	"cleaning-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ClientRepository interface {
	// UpsertByPhone inserts the client or refreshes name/email/address for an
	// existing phone number, returning the row either way.
	UpsertByPhone(ctx context.Context, client *entity.Client) (*entity.Client, error)
	FindByID(ctx context.Context, id int64) (*entity.Client, error)
	FindAll(ctx context.Context, offset, limit int, query *string) ([]*entity.Client, error)
	CountAll(ctx context.Context, query *string) (int64, error)
	Update(ctx context.Context, client *entity.Client) error
}

type clientRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewClientRepository(db database.PgxIface, log *zap.Logger) ClientRepository {
	return &clientRepository{
		db:  db,
		log: log.With(zap.String("repository", "client")),
	}
}

const clientColumns = `id, name, phone, email, address, created_at, updated_at`

func (r *clientRepository) UpsertByPhone(ctx context.Context, client *entity.Client) (*entity.Client, error) {
	query := `
		INSERT INTO clients (name, phone, email, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (phone) DO UPDATE
		SET name = EXCLUDED.name,
		    email = COALESCE(EXCLUDED.email, clients.email),
		    address = COALESCE(EXCLUDED.address, clients.address),
		    updated_at = NOW()
		RETURNING ` + clientColumns + `
	`

	row := r.db.QueryRow(ctx, query, client.Name, client.Phone, client.Email, client.Address)
	stored, err := scanClient(row)
	if err != nil {
		r.log.Error("Failed to upsert client",
			zap.Error(err),
			zap.String("phone", client.Phone),
		)
		return nil, fmt.Errorf("failed to upsert client: %w", err)
	}

	return stored, nil
}

func (r *clientRepository) FindByID(ctx context.Context, id int64) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	client, err := scanClient(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find client by ID",
			zap.Error(err),
			zap.Int64("client_id", id),
		)
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	return client, nil
}

func (r *clientRepository) FindAll(ctx context.Context, offset, limit int, search *string) ([]*entity.Client, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + clientColumns + ` FROM clients WHERE 1=1`)

	args := []interface{}{}
	argCount := 1

	if search != nil && *search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (name ILIKE $%d OR phone ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+*search+"%")
		argCount++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find clients", zap.Error(err))
		return nil, fmt.Errorf("failed to find clients: %w", err)
	}
	defer rows.Close()

	var clients []*entity.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return clients, nil
}

func (r *clientRepository) CountAll(ctx context.Context, search *string) (int64, error) {
	query := `SELECT COUNT(*) FROM clients WHERE 1=1`
	args := []interface{}{}

	if search != nil && *search != "" {
		query += " AND (name ILIKE $1 OR phone ILIKE $1)"
		args = append(args, "%"+*search+"%")
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count clients", zap.Error(err))
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}

	return total, nil
}

func (r *clientRepository) Update(ctx context.Context, client *entity.Client) error {
	query := `
		UPDATE clients
		SET name = $2, phone = $3, email = $4, address = $5, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		client.ID,
		client.Name,
		client.Phone,
		client.Email,
		client.Address,
	)
	if err != nil {
		r.log.Error("Failed to update client",
			zap.Error(err),
			zap.Int64("client_id", client.ID),
		)
		return fmt.Errorf("failed to update client: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("client not found")
	}

	return nil
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var client entity.Client
	err := row.Scan(
		&client.ID,
		&client.Name,
		&client.Phone,
		&client.Email,
		&client.Address,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &client, nil
}
