package dashboard

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/shramik-labs/labour-backend-go/internal/domain/attendance"
	"github.com/shramik-labs/labour-backend-go/internal/domain/dashboard"
	"github.com/shramik-labs/labour-backend-go/internal/domain/labour"
)

// Pure derivations over a single ledger snapshot. Everything here is
// side-effect free so the aggregation math is testable without a store.

// day truncates t to its calendar day, preserving the location.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// deriveDailySummary computes marking progress for one day. Pending is
// clamped at zero: a labour removed mid-period can leave marked > total.
func deriveDailySummary(date time.Time, marked int64, counts labour.Counts) dashboard.DailySummaryResponse {
	pending := counts.Active - marked
	if pending < 0 {
		pending = 0
	}
	return dashboard.DailySummaryResponse{
		Date:    date.Format("2006-01-02"),
		Marked:  marked,
		Total:   counts.Active,
		Pending: pending,
	}
}

// sumWages totals wage_calculated over non-voided records.
func sumWages(records []attendance.AttendanceRecord) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		if rec.Status == attendance.StatusVoided {
			continue
		}
		total = total.Add(rec.WageCalculated)
	}
	return total
}

// deriveTrend builds the last `days` days of attendance, oldest first.
// A labour counts as present when marked present or half-day; days with
// no records yield zero. Percentage divides by the active headcount at
// query time and is 0 when the roster has no active labours.
func deriveTrend(records []attendance.AttendanceRecord, days int, today time.Time, totalActive int64) []dashboard.TrendPoint {
	presentByDay := make(map[string]map[string]struct{})
	for _, rec := range records {
		if rec.Status != attendance.StatusPresent && rec.Status != attendance.StatusHalfDay {
			continue
		}
		key := rec.Date.Format("2006-01-02")
		if presentByDay[key] == nil {
			presentByDay[key] = make(map[string]struct{})
		}
		presentByDay[key][rec.LabourID] = struct{}{}
	}

	points := make([]dashboard.TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := day(today).AddDate(0, 0, -i)
		key := d.Format("2006-01-02")
		count := int64(len(presentByDay[key]))

		percentage := 0
		if totalActive > 0 {
			percentage = int(math.Round(float64(count) / float64(totalActive) * 100))
		}

		points = append(points, dashboard.TrendPoint{
			Date:         key,
			PresentCount: count,
			TotalActive:  totalActive,
			Percentage:   percentage,
		})
	}
	return points
}

// deriveCostTrend builds per-day wage cost, oldest first, zero-filled.
func deriveCostTrend(records []attendance.AttendanceRecord, days int, today time.Time) []dashboard.CostPoint {
	costByDay := make(map[string]decimal.Decimal)
	for _, rec := range records {
		if rec.Status == attendance.StatusVoided {
			continue
		}
		key := rec.Date.Format("2006-01-02")
		costByDay[key] = costByDay[key].Add(rec.WageCalculated)
	}

	points := make([]dashboard.CostPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		key := day(today).AddDate(0, 0, -i).Format("2006-01-02")
		cost, ok := costByDay[key]
		if !ok {
			cost = decimal.Zero
		}
		points = append(points, dashboard.CostPoint{
			Date: key,
			Cost: cost.String(),
		})
	}
	return points
}
