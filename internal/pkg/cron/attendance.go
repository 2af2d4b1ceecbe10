package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shramik-labs/labour-backend-go/internal/domain/attendance"
	"github.com/shramik-labs/labour-backend-go/internal/domain/labour"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/events"
)

// AttendanceJobs publishes periodic marking reminders so a supervisor who
// forgot the evening muster sees the gap on the dashboard feed.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	labourRepo     labour.LabourRepository
	hub            *events.Hub
	loc            *time.Location
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	labourRepo labour.LabourRepository,
	hub *events.Hub,
	loc *time.Location,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		labourRepo:     labourRepo,
		hub:            hub,
		loc:            loc,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("pending_marking_reminder", 1*time.Hour, j.PendingMarkingReminder)
}

// PendingMarkingReminder emits a feed event when today's marking is
// incomplete. Runs hourly but only fires in the evening (18:00-21:59 local)
// so mid-day partial marking does not spam the feed.
func (j *AttendanceJobs) PendingMarkingReminder(ctx context.Context) error {
	hour := time.Now().In(j.loc).Hour()
	if hour < 18 || hour > 21 {
		return nil
	}

	now := time.Now().In(j.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, j.loc)

	marked, err := j.attendanceRepo.CountMarkedOnDate(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to count marked records: %w", err)
	}

	counts, err := j.labourRepo.CountByStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to count labours: %w", err)
	}

	pending := counts.Active - marked
	if pending <= 0 {
		return nil
	}

	slog.Info("Cron: pending attendance marking", "date", today.Format("2006-01-02"), "pending", pending)

	j.hub.Publish(events.Event{
		Topic: events.TopicAttendance,
		Kind:  "attendance.pending_reminder",
		Data: map[string]interface{}{
			"date":    today.Format("2006-01-02"),
			"marked":  marked,
			"total":   counts.Active,
			"pending": pending,
		},
	})

	return nil
}
