package labour

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Labour struct {
	ID          string
	Name        string
	Aadhaar     string
	DailyWage   decimal.Decimal
	Status      string
	JoiningDate time.Time
	CategoryID  *string
	Designation *string
	Phone       *string
	PhotoURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	CategoryName *string
}
