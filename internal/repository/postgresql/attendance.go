package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/attendance"
	"github.com/gestipresence/presence-backend-go/internal/pkg/database"
	"github.com/gestipresence/presence-backend-go/internal/pkg/pagination"
	"github.com/gestipresence/presence-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const recordColumns = `id, person_type, code, name, classifier, record_date, time_in, time_out, status, created_at, updated_at`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	var day time.Time
	err := row.Scan(
		&rec.ID, &rec.PersonType, &rec.Code, &rec.Name, &rec.Classifier, &day,
		&rec.TimeIn, &rec.TimeOut, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	rec.Date = validator.FormatDate(day)
	return rec, err
}

func parseRecordDate(date string) (time.Time, error) {
	day, ok := validator.IsValidDate(date)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid record date %q", date)
	}
	return day, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	day, err := parseRecordDate(record.Date)
	if err != nil {
		return attendance.Record{}, err
	}

	query := `
		INSERT INTO attendance_records (person_type, code, name, classifier, record_date, time_in, time_out, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + recordColumns

	created, err := scanRecord(q.QueryRow(ctx, query,
		record.PersonType, record.Code, record.Name, record.Classifier,
		day, record.TimeIn, record.TimeOut, record.Status,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Record{}, attendance.ErrDuplicateRecord
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanRecord(q.QueryRow(ctx, `SELECT `+recordColumns+` FROM attendance_records WHERE id::text = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}
	return rec, nil
}

// GetByCodeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByCodeAndDate(ctx context.Context, code string, date string) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	day, err := parseRecordDate(date)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + recordColumns + ` FROM attendance_records WHERE code = $1 AND record_date = $2`

	rec, err := scanRecord(q.QueryRow(ctx, query, code, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by code and date: %w", err)
	}
	return &rec, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	day, err := parseRecordDate(record.Date)
	if err != nil {
		return err
	}

	query := `
		UPDATE attendance_records
		SET person_type = $2, code = $3, name = $4, classifier = $5, record_date = $6,
			time_in = $7, time_out = $8, status = $9, updated_at = NOW()
		WHERE id::text = $1
	`

	tag, err := q.Exec(ctx, query,
		record.ID, record.PersonType, record.Code, record.Name, record.Classifier,
		day, record.TimeIn, record.TimeOut, record.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.ErrDuplicateRecord
		}
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.Date != nil && *filter.Date != "" {
		day, err := parseRecordDate(*filter.Date)
		if err != nil {
			return nil, 0, err
		}
		baseWhere += fmt.Sprintf(" AND record_date = $%d", argIdx)
		args = append(args, day)
		argIdx++
	}
	if filter.PersonType != nil && *filter.PersonType != "" {
		baseWhere += fmt.Sprintf(" AND person_type = $%d", argIdx)
		args = append(args, *filter.PersonType)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Code != nil && *filter.Code != "" {
		baseWhere += fmt.Sprintf(" AND code = $%d", argIdx)
		args = append(args, *filter.Code)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (name ILIKE $%d OR code ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM attendance_records WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s FROM attendance_records
		WHERE %s
		ORDER BY record_date DESC, created_at DESC
	`, recordColumns, baseWhere)

	if filter.Limit > 0 {
		selectQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, filter.Limit, pagination.Offset(filter.Page, filter.Limit))
	}

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id::text = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
