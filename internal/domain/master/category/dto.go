package category

import (
	"github.com/shramik-labs/labour-backend-go/internal/pkg/validator"
)

// Category is a free-form grouping label for labours.
type Category struct {
	ID   string
	Name string
}

// CategoryResponse represents the response structure for a category.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateCategoryRequest represents the request structure for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

func (r *CreateCategoryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateCategoryRequest represents the request structure for renaming a category.
type UpdateCategoryRequest struct {
	ID   string `json:"-"`
	Name string `json:"name"`
}

func (r *UpdateCategoryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
