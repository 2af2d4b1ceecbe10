package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shramik-labs/labour-backend-go/internal/domain/labour"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/database"
)

type labourRepository struct {
	db *database.DB
}

func NewLabourRepository(db *database.DB) labour.LabourRepository {
	return &labourRepository{db: db}
}

// Create implements labour.LabourRepository.
func (r *labourRepository) Create(ctx context.Context, l labour.Labour) (labour.Labour, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO labours (
			id, name, aadhaar, daily_wage, status, joining_date,
			category_id, designation, phone, photo_url
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING created_at, updated_at
	`

	l.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		l.ID,
		l.Name,
		l.Aadhaar,
		l.DailyWage,
		l.Status,
		l.JoiningDate,
		l.CategoryID,
		l.Designation,
		l.Phone,
		l.PhotoURL,
	).Scan(&l.CreatedAt, &l.UpdatedAt)

	if err != nil {
		return labour.Labour{}, fmt.Errorf("failed to create labour: %w", err)
	}

	return l, nil
}

// GetByID implements labour.LabourRepository.
func (r *labourRepository) GetByID(ctx context.Context, id string) (labour.Labour, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			l.id, l.name, l.aadhaar, l.daily_wage, l.status, l.joining_date,
			l.category_id, l.designation, l.phone, l.photo_url,
			l.created_at, l.updated_at,
			c.name AS category_name
		FROM labours l
		LEFT JOIN categories c ON c.id = l.category_id
		WHERE l.id = $1
	`

	var l labour.Labour
	err := q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.Name, &l.Aadhaar, &l.DailyWage, &l.Status, &l.JoiningDate,
		&l.CategoryID, &l.Designation, &l.Phone, &l.PhotoURL,
		&l.CreatedAt, &l.UpdatedAt,
		&l.CategoryName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return labour.Labour{}, pgx.ErrNoRows
		}
		return labour.Labour{}, fmt.Errorf("failed to get labour: %w", err)
	}

	return l, nil
}

// Update implements labour.LabourRepository.
func (r *labourRepository) Update(ctx context.Context, l labour.Labour) (labour.Labour, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE labours
		SET name = $2,
			aadhaar = $3,
			daily_wage = $4,
			status = $5,
			joining_date = $6,
			category_id = $7,
			designation = $8,
			phone = $9,
			photo_url = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		l.ID,
		l.Name,
		l.Aadhaar,
		l.DailyWage,
		l.Status,
		l.JoiningDate,
		l.CategoryID,
		l.Designation,
		l.Phone,
		l.PhotoURL,
	).Scan(&l.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return labour.Labour{}, pgx.ErrNoRows
		}
		return labour.Labour{}, fmt.Errorf("failed to update labour: %w", err)
	}

	return l, nil
}

// Delete implements labour.LabourRepository.
func (r *labourRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM labours WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete labour: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// List implements labour.LabourRepository.
func (r *labourRepository) List(ctx context.Context, filter labour.LabourFilter) ([]labour.Labour, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			l.id, l.name, l.aadhaar, l.daily_wage, l.status, l.joining_date,
			l.category_id, l.designation, l.phone, l.photo_url,
			l.created_at, l.updated_at,
			c.name AS category_name
		FROM labours l
		LEFT JOIN categories c ON c.id = l.category_id
	`

	var (
		conditions []string
		args       []interface{}
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("l.status = $%d", len(args)))
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("l.category_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(l.name ILIKE $%d OR l.aadhaar ILIKE $%d)", len(args), len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY l.created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list labours: %w", err)
	}
	defer rows.Close()

	var labours []labour.Labour
	for rows.Next() {
		var l labour.Labour
		err := rows.Scan(
			&l.ID, &l.Name, &l.Aadhaar, &l.DailyWage, &l.Status, &l.JoiningDate,
			&l.CategoryID, &l.Designation, &l.Phone, &l.PhotoURL,
			&l.CreatedAt, &l.UpdatedAt,
			&l.CategoryName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan labour: %w", err)
		}
		labours = append(labours, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read labour rows: %w", err)
	}

	return labours, nil
}

// CountByStatus implements labour.LabourRepository.
func (r *labourRepository) CountByStatus(ctx context.Context) (labour.Counts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*),
			   COUNT(*) FILTER (WHERE status = 'active')
		FROM labours
	`

	var counts labour.Counts
	if err := q.QueryRow(ctx, query).Scan(&counts.Total, &counts.Active); err != nil {
		return labour.Counts{}, fmt.Errorf("failed to count labours: %w", err)
	}

	return counts, nil
}
