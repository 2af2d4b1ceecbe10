package report

// LabourSummaryResponse aggregates one labour's attendance over a range.
// PresentDays counts full-present records only; half-days are reported
// separately and never folded in as 0.5.
type LabourSummaryResponse struct {
	LabourID    string `json:"labour_id"`
	LabourName  string `json:"labour_name"`
	From        string `json:"from"`
	To          string `json:"to"`
	PresentDays int64  `json:"present_days"`
	HalfDays    int64  `json:"half_days"`
	AbsentDays  int64  `json:"absent_days"`
	TotalWage   string `json:"total_wage"`
}

// WageReportRow is one flat row of the company wage report. Columns stay
// plain strings/numbers so the external export formatter (PDF/Excel) can
// consume them without knowing ledger internals.
type WageReportRow struct {
	LabourID    string  `json:"labour_id"`
	Name        string  `json:"name"`
	Designation *string `json:"designation,omitempty"`
	PresentDays int64   `json:"present_days"`
	HalfDays    int64   `json:"half_days"`
	AbsentDays  int64   `json:"absent_days"`
	TotalWage   string  `json:"total_wage"`
}

type WageReportResponse struct {
	From         string          `json:"from"`
	To           string          `json:"to"`
	Rows         []WageReportRow `json:"rows"`
	CompanyTotal string          `json:"company_total"`
}
