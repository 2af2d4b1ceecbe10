package dashboard

// ========== DAILY SUMMARY ==========

// DailySummaryResponse reports marking progress for one calendar day.
// Pending is clamped at zero: a labour removed mid-period can leave more
// marked records than active headcount.
type DailySummaryResponse struct {
	Date    string `json:"date"`
	Marked  int64  `json:"marked"`
	Total   int64  `json:"total"`
	Pending int64  `json:"pending"`
}

// ========== MONTHLY PAYROLL ==========

// MonthlyPayrollResponse is the wage cost of all non-voided records in a month.
type MonthlyPayrollResponse struct {
	Month     string `json:"month"` // Format: "YYYY-MM"
	TotalCost string `json:"total_cost"`
}

// ========== ATTENDANCE TREND (line chart) ==========

// TrendPoint is one day of the attendance trend, oldest first.
type TrendPoint struct {
	Date         string `json:"date"`
	PresentCount int64  `json:"present_count"` // unique labours present or half-day
	TotalActive  int64  `json:"total_active"`
	Percentage   int    `json:"percentage"` // rounded, 0 when no active labours
}

// ========== COST TREND (bar chart) ==========

// CostPoint is one day of wage cost, zero-filled for unmarked days.
type CostPoint struct {
	Date string `json:"date"`
	Cost string `json:"cost"`
}

// ========== COMBINED OVERVIEW ==========

// OverviewResponse is the combined response for the main dashboard endpoint
type OverviewResponse struct {
	TotalLabours  int64                `json:"total_labours"`
	ActiveLabours int64                `json:"active_labours"`
	TodaySummary  DailySummaryResponse `json:"today_summary"`
	MonthlyCost   string               `json:"monthly_cost"`
	Month         string               `json:"month"`
}
