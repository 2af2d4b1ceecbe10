package report

import "context"

// ReportService produces flat tabular aggregates for the export layer.
type ReportService interface {
	// LabourSummary aggregates one labour's records over an inclusive range
	LabourSummary(ctx context.Context, labourID, from, to string) (LabourSummaryResponse, error)

	// WageReport aggregates the whole roster over an inclusive range
	WageReport(ctx context.Context, from, to string) (WageReportResponse, error)
}
