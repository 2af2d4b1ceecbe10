package labour

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/validator"
)

// ========================================
// LABOUR DTOs
// ========================================

type CreateLabourRequest struct {
	Name        string  `json:"name"`
	Aadhaar     string  `json:"aadhaar"`
	DailyWage   string  `json:"daily_wage"` // decimal string, e.g. "500.00"
	Status      string  `json:"status"`
	JoiningDate string  `json:"joining_date"` // "YYYY-MM-DD"
	CategoryID  *string `json:"category_id,omitempty"`
	Designation *string `json:"designation,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
}

func (r *CreateLabourRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsValidAadhaar(r.Aadhaar) {
		errs = append(errs, validator.ValidationError{
			Field:   "aadhaar",
			Message: "aadhaar must be a 12-digit number",
		})
	}

	wage, err := decimal.NewFromString(r.DailyWage)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "daily_wage",
			Message: "daily_wage must be a decimal number",
		})
	} else if !wage.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "daily_wage",
			Message: "daily_wage must be greater than zero",
		})
	}

	if !validator.IsInSlice(r.Status, []string{StatusActive, StatusInactive}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be active or inactive",
		})
	}

	if _, ok := validator.IsValidDate(r.JoiningDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "joining_date",
			Message: "joining_date must be in YYYY-MM-DD format",
		})
	}

	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone number is invalid",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLabourRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name,omitempty"`
	Aadhaar     *string `json:"aadhaar,omitempty"`
	DailyWage   *string `json:"daily_wage,omitempty"`
	Status      *string `json:"status,omitempty"`
	JoiningDate *string `json:"joining_date,omitempty"`
	CategoryID  *string `json:"category_id,omitempty"`
	Designation *string `json:"designation,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
}

func (r *UpdateLabourRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name cannot be empty",
		})
	}

	if r.Aadhaar != nil && !validator.IsValidAadhaar(*r.Aadhaar) {
		errs = append(errs, validator.ValidationError{
			Field:   "aadhaar",
			Message: "aadhaar must be a 12-digit number",
		})
	}

	if r.DailyWage != nil {
		wage, err := decimal.NewFromString(*r.DailyWage)
		if err != nil || !wage.IsPositive() {
			errs = append(errs, validator.ValidationError{
				Field:   "daily_wage",
				Message: "daily_wage must be a positive decimal number",
			})
		}
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{StatusActive, StatusInactive}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be active or inactive",
		})
	}

	if r.JoiningDate != nil {
		if _, ok := validator.IsValidDate(*r.JoiningDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "joining_date",
				Message: "joining_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone number is invalid",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LabourResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Aadhaar      string  `json:"aadhaar"`
	DailyWage    string  `json:"daily_wage"`
	Status       string  `json:"status"`
	JoiningDate  string  `json:"joining_date"`
	CategoryID   *string `json:"category_id,omitempty"`
	CategoryName *string `json:"category_name,omitempty"`
	Designation  *string `json:"designation,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	PhotoURL     *string `json:"photo_url,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// ToResponse maps an entity to its transport shape.
func ToResponse(l Labour) LabourResponse {
	return LabourResponse{
		ID:           l.ID,
		Name:         l.Name,
		Aadhaar:      l.Aadhaar,
		DailyWage:    l.DailyWage.String(),
		Status:       l.Status,
		JoiningDate:  l.JoiningDate.Format("2006-01-02"),
		CategoryID:   l.CategoryID,
		CategoryName: l.CategoryName,
		Designation:  l.Designation,
		Phone:        l.Phone,
		PhotoURL:     l.PhotoURL,
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
	}
}
