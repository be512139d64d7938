package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/absence"
	"github.com/gestipresence/presence-backend-go/internal/pkg/database"
	"github.com/gestipresence/presence-backend-go/internal/pkg/pagination"
	"github.com/jackc/pgx/v5"
)

type absenceRepositoryImpl struct {
	db *database.DB
}

func NewAbsenceRepository(db *database.DB) absence.AbsenceRepository {
	return &absenceRepositoryImpl{db: db}
}

const absenceColumns = `id, employee_code, employee_name, type, start_date, end_date, motif, justification, status, created_at, updated_at`

func scanAbsence(row pgx.Row) (absence.Absence, error) {
	var a absence.Absence
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.EmployeeName, &a.Type, &a.StartDate, &a.EndDate,
		&a.Motif, &a.Justification, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// Create implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) Create(ctx context.Context, newAbsence absence.Absence) (absence.Absence, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO absences (employee_code, employee_name, type, start_date, end_date, motif, justification, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + absenceColumns

	created, err := scanAbsence(q.QueryRow(ctx, query,
		newAbsence.EmployeeID, newAbsence.EmployeeName, newAbsence.Type, newAbsence.StartDate,
		newAbsence.EndDate, newAbsence.Motif, newAbsence.Justification, newAbsence.Status,
	))
	if err != nil {
		return absence.Absence{}, fmt.Errorf("failed to create absence: %w", err)
	}
	return created, nil
}

// GetByID implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) GetByID(ctx context.Context, id string) (absence.Absence, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAbsence(q.QueryRow(ctx, `SELECT `+absenceColumns+` FROM absences WHERE id::text = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return absence.Absence{}, absence.ErrAbsenceNotFound
		}
		return absence.Absence{}, fmt.Errorf("failed to get absence by ID: %w", err)
	}
	return a, nil
}

// Update implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) Update(ctx context.Context, updated absence.Absence) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE absences
		SET type = $2, start_date = $3, end_date = $4, motif = $5,
			justification = $6, status = $7, updated_at = NOW()
		WHERE id::text = $1
	`

	tag, err := q.Exec(ctx, query,
		updated.ID, updated.Type, updated.StartDate, updated.EndDate,
		updated.Motif, updated.Justification, updated.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update absence: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return absence.ErrAbsenceNotFound
	}
	return nil
}

// Delete implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM absences WHERE id::text = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete absence: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return absence.ErrAbsenceNotFound
	}
	return nil
}

// List implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) List(ctx context.Context, filter absence.AbsenceFilter) ([]absence.Absence, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND employee_code = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Type != nil && *filter.Type != "" {
		baseWhere += fmt.Sprintf(" AND type = $%d", argIdx)
		args = append(args, *filter.Type)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM absences WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count absences: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s FROM absences
		WHERE %s
		ORDER BY start_date DESC, created_at DESC
	`, absenceColumns, baseWhere)

	if filter.Limit > 0 {
		selectQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, filter.Limit, pagination.Offset(filter.Page, filter.Limit))
	}

	absences, err := r.query(ctx, q, selectQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return absences, total, nil
}

// DeleteByEmployeeID implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM absences WHERE employee_code = $1`, employeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete absences of employee: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListActive implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) ListActive(ctx context.Context, day time.Time) ([]absence.Absence, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + absenceColumns + ` FROM absences
		WHERE status = $1 AND start_date <= $2 AND end_date >= $2
		ORDER BY start_date DESC, created_at DESC
	`

	// Compare on the calendar day the caller sees, not on its UTC instant.
	calendarDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return r.query(ctx, q, query, absence.StatusApproved, calendarDay)
}

func (r *absenceRepositoryImpl) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]absence.Absence, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query absences: %w", err)
	}
	defer rows.Close()

	var absences []absence.Absence
	for rows.Next() {
		a, err := scanAbsence(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan absence: %w", err)
		}
		absences = append(absences, a)
	}
	return absences, rows.Err()
}
