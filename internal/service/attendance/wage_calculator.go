package attendance

import (
	"github.com/shopspring/decimal"
	"github.com/shramik-labs/labour-backend-go/internal/domain/attendance"
)

var two = decimal.NewFromInt(2)

// ComputeWage maps a daily wage and an attendance status to the payable
// amount. Decimal arithmetic keeps half-day amounts exact when the wage
// carries paise; binary floats would drift across payroll totals.
//
//	present  -> dailyWage
//	half-day -> dailyWage / 2
//	absent   -> 0
//	voided   -> 0
func ComputeWage(dailyWage decimal.Decimal, status attendance.Status) (decimal.Decimal, error) {
	switch status {
	case attendance.StatusPresent:
		return dailyWage, nil
	case attendance.StatusHalfDay:
		return dailyWage.Div(two), nil
	case attendance.StatusAbsent, attendance.StatusVoided:
		return decimal.Zero, nil
	default:
		return decimal.Decimal{}, attendance.ErrInvalidStatus
	}
}
