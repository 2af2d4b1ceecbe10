package master

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shramik-labs/labour-backend-go/internal/domain/master/category"
)

// MasterService manages roster master data (labour categories).
type MasterService interface {
	CreateCategory(ctx context.Context, req category.CreateCategoryRequest) (category.CategoryResponse, error)
	GetCategory(ctx context.Context, id string) (category.CategoryResponse, error)
	ListCategories(ctx context.Context) ([]category.CategoryResponse, error)
	UpdateCategory(ctx context.Context, req category.UpdateCategoryRequest) error
	DeleteCategory(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	categoryRepo category.CategoryRepository
}

func NewMasterService(categoryRepo category.CategoryRepository) MasterService {
	return &masterServiceImpl{
		categoryRepo: categoryRepo,
	}
}

func (s *masterServiceImpl) CreateCategory(ctx context.Context, req category.CreateCategoryRequest) (category.CategoryResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return category.CategoryResponse{}, err
	}

	// Save to database
	created, err := s.categoryRepo.Create(ctx, category.Category{Name: req.Name})
	if err != nil {
		// Check for duplicate name (unique constraint violation)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return category.CategoryResponse{}, category.ErrCategoryNameExists
			}
		}
		return category.CategoryResponse{}, fmt.Errorf("failed to create category: %w", err)
	}

	return category.CategoryResponse{
		ID:   created.ID,
		Name: created.Name,
	}, nil
}

func (s *masterServiceImpl) GetCategory(ctx context.Context, id string) (category.CategoryResponse, error) {
	entity, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category.CategoryResponse{}, category.ErrCategoryNotFound
		}
		return category.CategoryResponse{}, err
	}

	return category.CategoryResponse{
		ID:   entity.ID,
		Name: entity.Name,
	}, nil
}

func (s *masterServiceImpl) ListCategories(ctx context.Context) ([]category.CategoryResponse, error) {
	entities, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	responses := make([]category.CategoryResponse, 0, len(entities))
	for _, entity := range entities {
		responses = append(responses, category.CategoryResponse{
			ID:   entity.ID,
			Name: entity.Name,
		})
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateCategory(ctx context.Context, req category.UpdateCategoryRequest) error {
	// Validate request
	if err := req.Validate(); err != nil {
		return err
	}

	err := s.categoryRepo.Update(ctx, req)
	if err != nil {
		// Check for duplicate name (unique constraint violation)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return category.ErrCategoryNameExists
			}
		}
		// Check if category not found (no rows affected)
		if errors.Is(err, pgx.ErrNoRows) {
			return category.ErrCategoryNotFound
		}
		return err
	}

	return nil
}

func (s *masterServiceImpl) DeleteCategory(ctx context.Context, id string) error {
	err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category.ErrCategoryNotFound
		}
		return err
	}
	return nil
}
