package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shramik-labs/labour-backend-go/internal/domain/master/category"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/database"
)

type categoryRepository struct {
	db *database.DB
}

func NewCategoryRepository(db *database.DB) category.CategoryRepository {
	return &categoryRepository{db: db}
}

// Create implements category.CategoryRepository.
func (r *categoryRepository) Create(ctx context.Context, c category.Category) (category.Category, error) {
	q := GetQuerier(ctx, r.db)

	c.ID = uuid.NewString()
	if _, err := q.Exec(ctx, `INSERT INTO categories (id, name) VALUES ($1, $2)`, c.ID, c.Name); err != nil {
		return category.Category{}, fmt.Errorf("failed to create category: %w", err)
	}

	return c, nil
}

// GetByID implements category.CategoryRepository.
func (r *categoryRepository) GetByID(ctx context.Context, id string) (category.Category, error) {
	q := GetQuerier(ctx, r.db)

	var c category.Category
	err := q.QueryRow(ctx, `SELECT id, name FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category.Category{}, pgx.ErrNoRows
		}
		return category.Category{}, fmt.Errorf("failed to get category: %w", err)
	}

	return c, nil
}

// List implements category.CategoryRepository.
func (r *categoryRepository) List(ctx context.Context) ([]category.Category, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []category.Category
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read category rows: %w", err)
	}

	return categories, nil
}

// Update implements category.CategoryRepository.
func (r *categoryRepository) Update(ctx context.Context, req category.UpdateCategoryRequest) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE categories SET name = $2 WHERE id = $1`, req.ID, req.Name)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// Delete implements category.CategoryRepository.
func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
