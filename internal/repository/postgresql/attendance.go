package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shramik-labs/labour-backend-go/internal/domain/attendance"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// The (labour_id, date) uniqueness of active records is enforced by a
// partial unique index WHERE status <> 'voided', so a voided record and a
// live replacement can share the same day.

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (id, labour_id, date, status, wage_calculated)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	record.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		record.ID,
		record.LabourID,
		record.Date,
		record.Status,
		record.WageCalculated,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT
			r.id, r.labour_id, r.date, r.status, r.wage_calculated,
			r.previous_status, r.voided_at, r.voided_by,
			r.created_at, r.updated_at,
			l.name AS labour_name
		FROM attendance_records r
		LEFT JOIN labours l ON l.id = r.labour_id
		WHERE r.id = $1
	`

	var rec attendance.AttendanceRecord
	err := q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.LabourID, &rec.Date, &rec.Status, &rec.WageCalculated,
		&rec.PreviousStatus, &rec.VoidedAt, &rec.VoidedBy,
		&rec.CreatedAt, &rec.UpdatedAt,
		&rec.LabourName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceRecord{}, pgx.ErrNoRows
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// BulkInsert implements attendance.AttendanceRepository.
//
// All rows go out in one pgx batch inside a transaction. A row whose
// (labour_id, date) key already holds an active record hits DO NOTHING and
// returns no row; that labour id is reported as skipped.
func (a *attendanceRepository) BulkInsert(ctx context.Context, records []attendance.AttendanceRecord) ([]attendance.AttendanceRecord, []string, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (id, labour_id, date, status, wage_calculated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (labour_id, date) WHERE status <> 'voided' DO NOTHING
		RETURNING created_at, updated_at
	`

	batch := &pgx.Batch{}
	for i := range records {
		records[i].ID = uuid.NewString()
		rec := records[i]
		batch.Queue(query, rec.ID, rec.LabourID, rec.Date, rec.Status, rec.WageCalculated)
	}

	br := q.SendBatch(ctx, batch)
	defer br.Close()

	var (
		inserted []attendance.AttendanceRecord
		skipped  []string
	)
	for _, rec := range records {
		err := br.QueryRow().Scan(&rec.CreatedAt, &rec.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				skipped = append(skipped, rec.LabourID)
				continue
			}
			return nil, nil, fmt.Errorf("failed to bulk insert attendance: %w", err)
		}
		inserted = append(inserted, rec)
	}

	return inserted, skipped, nil
}

// MarkVoided implements attendance.AttendanceRepository.
func (a *attendanceRepository) MarkVoided(ctx context.Context, id string, previous attendance.Status, voidedAt time.Time, voidedBy string) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET status = 'voided',
			wage_calculated = 0,
			previous_status = $2,
			voided_at = $3,
			voided_by = $4,
			updated_at = NOW()
		WHERE id = $1
		  AND status <> 'voided'
	`

	tag, err := q.Exec(ctx, query, id, previous, voidedAt, voidedBy)
	if err != nil {
		return false, fmt.Errorf("failed to void attendance record: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time, includeVoided bool) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT
			r.id, r.labour_id, r.date, r.status, r.wage_calculated,
			r.previous_status, r.voided_at, r.voided_by,
			r.created_at, r.updated_at,
			l.name AS labour_name
		FROM attendance_records r
		LEFT JOIN labours l ON l.id = r.labour_id
		WHERE r.date = $1
	`
	if !includeVoided {
		query += ` AND r.status <> 'voided'`
	}
	query += ` ORDER BY (r.status = 'voided'), l.name, r.created_at`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	defer rows.Close()

	return scanAttendanceRows(rows)
}

// ListRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListRange(ctx context.Context, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT
			r.id, r.labour_id, r.date, r.status, r.wage_calculated,
			r.previous_status, r.voided_at, r.voided_by,
			r.created_at, r.updated_at,
			l.name AS labour_name
		FROM attendance_records r
		LEFT JOIN labours l ON l.id = r.labour_id
		WHERE r.date BETWEEN $1 AND $2
		  AND r.status <> 'voided'
		ORDER BY r.date DESC, l.name
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance in range: %w", err)
	}
	defer rows.Close()

	return scanAttendanceRows(rows)
}

// ListByLabour implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByLabour(ctx context.Context, labourID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT
			r.id, r.labour_id, r.date, r.status, r.wage_calculated,
			r.previous_status, r.voided_at, r.voided_by,
			r.created_at, r.updated_at,
			l.name AS labour_name
		FROM attendance_records r
		LEFT JOIN labours l ON l.id = r.labour_id
		WHERE r.labour_id = $1
		  AND r.date BETWEEN $2 AND $3
		  AND r.status <> 'voided'
		ORDER BY r.date
	`

	rows, err := q.Query(ctx, query, labourID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by labour: %w", err)
	}
	defer rows.Close()

	return scanAttendanceRows(rows)
}

// VoidAllForLabour implements attendance.AttendanceRepository.
func (a *attendanceRepository) VoidAllForLabour(ctx context.Context, labourID string, voidedAt time.Time, voidedBy string) (int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET previous_status = status,
			status = 'voided',
			wage_calculated = 0,
			voided_at = $2,
			voided_by = $3,
			updated_at = NOW()
		WHERE labour_id = $1
		  AND status <> 'voided'
	`

	tag, err := q.Exec(ctx, query, labourID, voidedAt, voidedBy)
	if err != nil {
		return 0, fmt.Errorf("failed to void attendance for labour: %w", err)
	}

	return tag.RowsAffected(), nil
}

// CountMarkedOnDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountMarkedOnDate(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT COUNT(*)
		FROM attendance_records
		WHERE date = $1
		  AND status <> 'voided'
	`

	var count int64
	if err := q.QueryRow(ctx, query, date).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count attendance for date: %w", err)
	}

	return count, nil
}

func scanAttendanceRows(rows pgx.Rows) ([]attendance.AttendanceRecord, error) {
	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		err := rows.Scan(
			&rec.ID, &rec.LabourID, &rec.Date, &rec.Status, &rec.WageCalculated,
			&rec.PreviousStatus, &rec.VoidedAt, &rec.VoidedBy,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.LabourName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance rows: %w", err)
	}
	return records, nil
}
