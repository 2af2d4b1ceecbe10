package dashboard

import (
	"context"
	"time"
)

// DashboardService derives statistics from the ledger and roster without
// mutating either. Each call fetches its candidate record set once and
// derives every figure from that single snapshot.
type DashboardService interface {
	// DailySummary reports marked/total/pending for a day ("YYYY-MM-DD")
	DailySummary(ctx context.Context, date string) (DailySummaryResponse, error)

	// MonthlyPayrollTotal sums non-voided wages for a month ("YYYY-MM")
	MonthlyPayrollTotal(ctx context.Context, month string) (MonthlyPayrollResponse, error)

	// AttendanceTrend returns the last `days` calendar days, oldest first
	AttendanceTrend(ctx context.Context, days int, today time.Time) ([]TrendPoint, error)

	// CostTrend returns per-day wage cost for the last `days` days, oldest first
	CostTrend(ctx context.Context, days int, today time.Time) ([]CostPoint, error)

	// Overview returns the combined dashboard for the current day and month
	Overview(ctx context.Context, today time.Time) (OverviewResponse, error)
}
