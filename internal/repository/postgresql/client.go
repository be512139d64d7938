package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestipresence/presence-backend-go/internal/domain/client"
	"github.com/gestipresence/presence-backend-go/internal/pkg/database"
	"github.com/gestipresence/presence-backend-go/internal/pkg/pagination"
	"github.com/jackc/pgx/v5"
)

type clientRepositoryImpl struct {
	db *database.DB
}

func NewClientRepository(db *database.DB) client.ClientRepository {
	return &clientRepositoryImpl{db: db}
}

const clientColumns = `code, name, service, details, email, phone, arrival_date, departure_date, status, created_at, updated_at`

func scanClient(row pgx.Row) (client.Client, error) {
	var c client.Client
	err := row.Scan(
		&c.Code, &c.Name, &c.Service, &c.Details, &c.Email, &c.Phone,
		&c.ArrivalDate, &c.DepartureDate, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// Create implements client.ClientRepository.
func (r *clientRepositoryImpl) Create(ctx context.Context, newClient client.Client) (client.Client, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO clients (code, name, service, details, email, phone, arrival_date, departure_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + clientColumns

	created, err := scanClient(q.QueryRow(ctx, query,
		newClient.Code, newClient.Name, newClient.Service, newClient.Details, newClient.Email,
		newClient.Phone, newClient.ArrivalDate, newClient.DepartureDate, newClient.Status,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return client.Client{}, client.ErrClientCodeExists
		}
		return client.Client{}, fmt.Errorf("failed to create client: %w", err)
	}
	return created, nil
}

// GetByCode implements client.ClientRepository.
func (r *clientRepositoryImpl) GetByCode(ctx context.Context, code string) (client.Client, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanClient(q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return client.Client{}, client.ErrClientNotFound
		}
		return client.Client{}, fmt.Errorf("failed to get client by code: %w", err)
	}
	return c, nil
}

// ExistsByCode implements client.ClientRepository.
func (r *clientRepositoryImpl) ExistsByCode(ctx context.Context, code string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE code = $1)`, code).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check client code: %w", err)
	}
	return exists, nil
}

// List implements client.ClientRepository.
func (r *clientRepositoryImpl) List(ctx context.Context, filter client.ClientFilter) ([]client.Client, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.Service != nil && *filter.Service != "" {
		baseWhere += fmt.Sprintf(" AND service = $%d", argIdx)
		args = append(args, *filter.Service)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (name ILIKE $%d OR code ILIKE $%d OR details ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM clients WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	selectQuery := fmt.Sprintf("SELECT %s FROM clients WHERE %s ORDER BY code ASC", clientColumns, baseWhere)
	if filter.Limit > 0 {
		selectQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, filter.Limit, pagination.Offset(filter.Page, filter.Limit))
	}

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []client.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

// Update implements client.ClientRepository.
func (r *clientRepositoryImpl) Update(ctx context.Context, updated client.Client) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE clients
		SET name = $2, service = $3, details = $4, email = $5, phone = $6,
			arrival_date = $7, departure_date = $8, status = $9, updated_at = NOW()
		WHERE code = $1
	`

	tag, err := q.Exec(ctx, query,
		updated.Code, updated.Name, updated.Service, updated.Details, updated.Email,
		updated.Phone, updated.ArrivalDate, updated.DepartureDate, updated.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return client.ErrClientNotFound
	}
	return nil
}

// Delete implements client.ClientRepository.
func (r *clientRepositoryImpl) Delete(ctx context.Context, code string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM clients WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return client.ErrClientNotFound
	}
	return nil
}
