package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shramik-labs/labour-backend-go/internal/domain/attendance"
	"github.com/shramik-labs/labour-backend-go/internal/domain/dashboard"
	"github.com/shramik-labs/labour-backend-go/internal/domain/labour"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/validator"
)

type DashboardServiceImpl struct {
	attendance.AttendanceRepository
	labour.LabourRepository
}

func NewDashboardService(
	attendanceRepo attendance.AttendanceRepository,
	labourRepo labour.LabourRepository,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		AttendanceRepository: attendanceRepo,
		LabourRepository:     labourRepo,
	}
}

// DailySummary implements dashboard.DashboardService.
func (s *DashboardServiceImpl) DailySummary(ctx context.Context, date string) (dashboard.DailySummaryResponse, error) {
	d, ok := validator.IsValidDate(date)
	if !ok {
		return dashboard.DailySummaryResponse{}, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}

	var (
		marked int64
		counts labour.Counts
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		marked, err = s.AttendanceRepository.CountMarkedOnDate(gCtx, d)
		if err != nil {
			return fmt.Errorf("failed to count marked records: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		counts, err = s.LabourRepository.CountByStatus(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count labours: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return dashboard.DailySummaryResponse{}, err
	}

	return deriveDailySummary(d, marked, counts), nil
}

// MonthlyPayrollTotal implements dashboard.DashboardService.
func (s *DashboardServiceImpl) MonthlyPayrollTotal(ctx context.Context, month string) (dashboard.MonthlyPayrollResponse, error) {
	first, ok := validator.IsValidMonth(month)
	if !ok {
		return dashboard.MonthlyPayrollResponse{}, validator.ValidationErrors{{Field: "month", Message: "month must be in YYYY-MM format"}}
	}
	last := first.AddDate(0, 1, -1)

	records, err := s.AttendanceRepository.ListRange(ctx, first, last)
	if err != nil {
		return dashboard.MonthlyPayrollResponse{}, fmt.Errorf("failed to list attendance for month: %w", err)
	}

	return dashboard.MonthlyPayrollResponse{
		Month:     month,
		TotalCost: sumWages(records).String(),
	}, nil
}

// AttendanceTrend implements dashboard.DashboardService.
func (s *DashboardServiceImpl) AttendanceTrend(ctx context.Context, days int, today time.Time) ([]dashboard.TrendPoint, error) {
	if days < 1 || days > 90 {
		return nil, validator.ValidationErrors{{Field: "days", Message: "days must be between 1 and 90"}}
	}
	from := day(today).AddDate(0, 0, -(days - 1))

	var (
		records []attendance.AttendanceRecord
		counts  labour.Counts
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.AttendanceRepository.ListRange(gCtx, from, day(today))
		if err != nil {
			return fmt.Errorf("failed to list attendance for trend: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		counts, err = s.LabourRepository.CountByStatus(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count labours: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return deriveTrend(records, days, today, counts.Active), nil
}

// CostTrend implements dashboard.DashboardService.
func (s *DashboardServiceImpl) CostTrend(ctx context.Context, days int, today time.Time) ([]dashboard.CostPoint, error) {
	if days < 1 || days > 90 {
		return nil, validator.ValidationErrors{{Field: "days", Message: "days must be between 1 and 90"}}
	}
	from := day(today).AddDate(0, 0, -(days - 1))

	records, err := s.AttendanceRepository.ListRange(ctx, from, day(today))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for cost trend: %w", err)
	}

	return deriveCostTrend(records, days, today), nil
}

// Overview implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Overview(ctx context.Context, today time.Time) (dashboard.OverviewResponse, error) {
	d := day(today)
	monthFirst := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	monthLast := monthFirst.AddDate(0, 1, -1)

	var (
		counts       labour.Counts
		marked       int64
		monthRecords []attendance.AttendanceRecord
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.LabourRepository.CountByStatus(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count labours: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		marked, err = s.AttendanceRepository.CountMarkedOnDate(gCtx, d)
		if err != nil {
			return fmt.Errorf("failed to count marked records: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		monthRecords, err = s.AttendanceRepository.ListRange(gCtx, monthFirst, monthLast)
		if err != nil {
			return fmt.Errorf("failed to list attendance for month: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return dashboard.OverviewResponse{}, err
	}

	return dashboard.OverviewResponse{
		TotalLabours:  counts.Total,
		ActiveLabours: counts.Active,
		TodaySummary:  deriveDailySummary(d, marked, counts),
		MonthlyCost:   sumWages(monthRecords).String(),
		Month:         d.Format("2006-01"),
	}, nil
}
