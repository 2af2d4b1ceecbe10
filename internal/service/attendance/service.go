package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shramik-labs/labour-backend-go/internal/domain/attendance"
	"github.com/shramik-labs/labour-backend-go/internal/domain/labour"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/events"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	labour.LabourRepository
	hub *events.Hub
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	labourRepo labour.LabourRepository,
	hub *events.Hub,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		LabourRepository:     labourRepo,
		hub:                  hub,
	}
}

// day maps t to midnight UTC of its calendar day. Parsed request dates are
// UTC midnight, so normalizing the clock the same way compares calendar days
// no matter which timezone the caller's clock carries.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Mark implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkRequest, today time.Time) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	if date.After(day(today)) {
		return attendance.RecordResponse{}, attendance.ErrFutureDate
	}

	lab, err := s.LabourRepository.GetByID(ctx, req.LabourID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.RecordResponse{}, labour.ErrLabourNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get labour: %w", err)
	}

	status := attendance.Status(req.Status)
	wage, err := ComputeWage(lab.DailyWage, status)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	created, err := s.AttendanceRepository.Create(ctx, attendance.AttendanceRecord{
		LabourID:       lab.ID,
		Date:           date,
		Status:         status,
		WageCalculated: wage,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation on the active (labour_id, date) key
				return attendance.RecordResponse{}, attendance.ErrDuplicateActiveRecord
			}
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	created.LabourName = &lab.Name

	s.hub.Publish(events.Event{
		Topic: events.TopicAttendance,
		Kind:  "attendance.marked",
		Data:  attendance.ToResponse(created),
	})

	return attendance.ToResponse(created), nil
}

// BulkMark implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) BulkMark(ctx context.Context, req attendance.BulkMarkRequest, today time.Time) (attendance.BulkMarkResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.BulkMarkResult{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	if date.After(day(today)) {
		return attendance.BulkMarkResult{}, attendance.ErrFutureDate
	}

	// Single roster snapshot for wage lookup
	labours, err := s.LabourRepository.List(ctx, labour.LabourFilter{})
	if err != nil {
		return attendance.BulkMarkResult{}, fmt.Errorf("failed to list labours: %w", err)
	}
	byID := make(map[string]labour.Labour, len(labours))
	for _, l := range labours {
		byID[l.ID] = l
	}

	result := attendance.BulkMarkResult{Date: req.Date}
	records := make([]attendance.AttendanceRecord, 0, len(req.Entries))
	for _, entry := range req.Entries {
		lab, ok := byID[entry.LabourID]
		if !ok {
			result.Skipped = append(result.Skipped, attendance.SkippedEntry{
				LabourID: entry.LabourID,
				Reason:   "labour not found",
			})
			continue
		}

		status := attendance.Status(entry.Status)
		wage, err := ComputeWage(lab.DailyWage, status)
		if err != nil {
			return attendance.BulkMarkResult{}, err
		}
		records = append(records, attendance.AttendanceRecord{
			LabourID:       lab.ID,
			Date:           date,
			Status:         status,
			WageCalculated: wage,
		})
	}

	if len(records) > 0 {
		inserted, skipped, err := s.AttendanceRepository.BulkInsert(ctx, records)
		if err != nil {
			return attendance.BulkMarkResult{}, fmt.Errorf("failed to bulk insert attendance: %w", err)
		}
		for _, rec := range inserted {
			if lab, ok := byID[rec.LabourID]; ok {
				name := lab.Name
				rec.LabourName = &name
			}
			result.Saved = append(result.Saved, attendance.ToResponse(rec))
		}
		// A conflicting key means an active record already covers the day;
		// re-running a bulk save therefore never duplicates, it skips.
		for _, labourID := range skipped {
			result.Skipped = append(result.Skipped, attendance.SkippedEntry{
				LabourID: labourID,
				Reason:   "an active record already exists for this date",
			})
		}
	}

	if len(result.Saved) > 0 {
		s.hub.Publish(events.Event{
			Topic: events.TopicAttendance,
			Kind:  "attendance.bulk_marked",
			Data:  result,
		})
	}

	return result, nil
}

// Void implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Void(ctx context.Context, recordID string, actorID string) error {
	if validator.IsEmpty(actorID) {
		return fmt.Errorf("actor id is required to void a record")
	}

	rec, err := s.AttendanceRepository.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to get attendance record: %w", err)
	}

	if rec.Voided() {
		return attendance.ErrAlreadyVoided
	}

	voided, err := s.AttendanceRepository.MarkVoided(ctx, rec.ID, rec.Status, time.Now().UTC(), actorID)
	if err != nil {
		return fmt.Errorf("failed to void attendance record: %w", err)
	}
	if !voided {
		// Lost the race against a concurrent void
		return attendance.ErrAlreadyVoided
	}

	s.hub.Publish(events.Event{
		Topic: events.TopicAttendance,
		Kind:  "attendance.voided",
		Data: map[string]string{
			"record_id": rec.ID,
			"labour_id": rec.LabourID,
			"date":      rec.Date.Format("2006-01-02"),
		},
	})

	return nil
}

// RecordsForDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordsForDate(ctx context.Context, date string, includeVoided bool) ([]attendance.RecordResponse, error) {
	d, ok := validator.IsValidDate(date)
	if !ok {
		return nil, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}

	records, err := s.AttendanceRepository.ListByDate(ctx, d, includeVoided)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.ToResponse(rec))
	}
	return responses, nil
}

// RecordsInRange implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordsInRange(ctx context.Context, from, to string) ([]attendance.RecordResponse, error) {
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
		return nil, errs
	}

	records, err := s.AttendanceRepository.ListRange(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance in range: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.ToResponse(rec))
	}
	return responses, nil
}
