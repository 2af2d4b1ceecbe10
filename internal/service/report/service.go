package report

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/shramik-labs/labour-backend-go/internal/domain/attendance"
	"github.com/shramik-labs/labour-backend-go/internal/domain/labour"
	"github.com/shramik-labs/labour-backend-go/internal/domain/report"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/validator"
)

type ReportServiceImpl struct {
	attendance.AttendanceRepository
	labour.LabourRepository
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	labourRepo labour.LabourRepository,
) report.ReportService {
	return &ReportServiceImpl{
		AttendanceRepository: attendanceRepo,
		LabourRepository:     labourRepo,
	}
}

// tally folds a labour's records into day counts and a wage total.
// Voided records contribute nothing.
type tally struct {
	present int64
	half    int64
	absent  int64
	wage    decimal.Decimal
}

func (t *tally) add(rec attendance.AttendanceRecord) {
	switch rec.Status {
	case attendance.StatusPresent:
		t.present++
	case attendance.StatusHalfDay:
		t.half++
	case attendance.StatusAbsent:
		t.absent++
	default:
		return
	}
	t.wage = t.wage.Add(rec.WageCalculated)
}

// LabourSummary implements report.ReportService.
func (s *ReportServiceImpl) LabourSummary(ctx context.Context, labourID, from, to string) (report.LabourSummaryResponse, error) {
	var errs validator.ValidationErrors
	fromDate, ok := validator.IsValidDate(from)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be in YYYY-MM-DD format"})
	}
	toDate, ok := validator.IsValidDate(to)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be in YYYY-MM-DD format"})
	}
	if len(errs) == 0 && toDate.Before(fromDate) {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must not be before from"})
	}
	if len(errs) > 0 {
		return report.LabourSummaryResponse{}, errs
	}

	lab, err := s.LabourRepository.GetByID(ctx, labourID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.LabourSummaryResponse{}, labour.ErrLabourNotFound
		}
		return report.LabourSummaryResponse{}, fmt.Errorf("failed to get labour: %w", err)
	}

	records, err := s.AttendanceRepository.ListByLabour(ctx, labourID, fromDate, toDate)
	if err != nil {
		return report.LabourSummaryResponse{}, fmt.Errorf("failed to list attendance for labour: %w", err)
	}

	var t tally
	for _, rec := range records {
		t.add(rec)
	}

	return report.LabourSummaryResponse{
		LabourID:    lab.ID,
		LabourName:  lab.Name,
		From:        from,
		To:          to,
		PresentDays: t.present,
		HalfDays:    t.half,
		AbsentDays:  t.absent,
		TotalWage:   t.wage.String(),
	}, nil
}

// WageReport implements report.ReportService.
//
// Every labour on the roster gets a row, including those with no records
// in the range; the export consumer expects a complete muster roll.
func (s *ReportServiceImpl) WageReport(ctx context.Context, from, to string) (report.WageReportResponse, error) {
	var errs validator.ValidationErrors
	fromDate, ok := validator.IsValidDate(from)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be in YYYY-MM-DD format"})
	}
	toDate, ok := validator.IsValidDate(to)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be in YYYY-MM-DD format"})
	}
	if len(errs) == 0 && toDate.Before(fromDate) {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must not be before from"})
	}
	if len(errs) > 0 {
		return report.WageReportResponse{}, errs
	}

	var (
		labours []labour.Labour
		records []attendance.AttendanceRecord
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		labours, err = s.LabourRepository.List(gCtx, labour.LabourFilter{})
		if err != nil {
			return fmt.Errorf("failed to list labours: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		records, err = s.AttendanceRepository.ListRange(gCtx, fromDate, toDate)
		if err != nil {
			return fmt.Errorf("failed to list attendance in range: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return report.WageReportResponse{}, err
	}

	tallies := make(map[string]*tally, len(labours))
	for _, rec := range records {
		t, ok := tallies[rec.LabourID]
		if !ok {
			t = &tally{}
			tallies[rec.LabourID] = t
		}
		t.add(rec)
	}

	companyTotal := decimal.Zero
	rows := make([]report.WageReportRow, 0, len(labours))
	for _, l := range labours {
		t, ok := tallies[l.ID]
		if !ok {
			t = &tally{}
		}
		companyTotal = companyTotal.Add(t.wage)
		rows = append(rows, report.WageReportRow{
			LabourID:    l.ID,
			Name:        l.Name,
			Designation: l.Designation,
			PresentDays: t.present,
			HalfDays:    t.half,
			AbsentDays:  t.absent,
			TotalWage:   t.wage.String(),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })

	return report.WageReportResponse{
		From:         from,
		To:           to,
		Rows:         rows,
		CompanyTotal: companyTotal.String(),
	}, nil
}
