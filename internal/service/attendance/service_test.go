package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shramik-labs/labour-backend-go/internal/domain/attendance"
	"github.com/shramik-labs/labour-backend-go/internal/domain/labour"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/events"
)

// In-memory fakes standing in for the postgresql repositories. The
// attendance fake enforces the active (labour_id, date) uniqueness the
// partial index provides, surfacing it as SQLSTATE 23505 like pgx would.

type fakeLabourRepo struct {
	labours map[string]labour.Labour
}

func (f *fakeLabourRepo) Create(ctx context.Context, l labour.Labour) (labour.Labour, error) {
	f.labours[l.ID] = l
	return l, nil
}

func (f *fakeLabourRepo) GetByID(ctx context.Context, id string) (labour.Labour, error) {
	l, ok := f.labours[id]
	if !ok {
		return labour.Labour{}, pgx.ErrNoRows
	}
	return l, nil
}

func (f *fakeLabourRepo) Update(ctx context.Context, l labour.Labour) (labour.Labour, error) {
	f.labours[l.ID] = l
	return l, nil
}

func (f *fakeLabourRepo) Delete(ctx context.Context, id string) error {
	delete(f.labours, id)
	return nil
}

func (f *fakeLabourRepo) List(ctx context.Context, filter labour.LabourFilter) ([]labour.Labour, error) {
	var out []labour.Labour
	for _, l := range f.labours {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLabourRepo) CountByStatus(ctx context.Context) (labour.Counts, error) {
	counts := labour.Counts{}
	for _, l := range f.labours {
		counts.Total++
		if l.Status == labour.StatusActive {
			counts.Active++
		}
	}
	return counts, nil
}

type fakeAttendanceRepo struct {
	records map[string]attendance.AttendanceRecord
	seq     int
}

func (f *fakeAttendanceRepo) hasActive(labourID string, date time.Time) bool {
	for _, rec := range f.records {
		if rec.LabourID == labourID && rec.Date.Equal(date) && !rec.Voided() {
			return true
		}
	}
	return false
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	if f.hasActive(record.LabourID, record.Date) {
		return attendance.AttendanceRecord{}, &pgconn.PgError{Code: "23505"}
	}
	f.seq++
	record.ID = fmt.Sprintf("rec-%d", f.seq)
	record.CreatedAt = time.Now().UTC()
	record.UpdatedAt = record.CreatedAt
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.AttendanceRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return attendance.AttendanceRecord{}, pgx.ErrNoRows
	}
	return rec, nil
}

func (f *fakeAttendanceRepo) BulkInsert(ctx context.Context, records []attendance.AttendanceRecord) ([]attendance.AttendanceRecord, []string, error) {
	var inserted []attendance.AttendanceRecord
	var skipped []string
	for _, rec := range records {
		if f.hasActive(rec.LabourID, rec.Date) {
			skipped = append(skipped, rec.LabourID)
			continue
		}
		f.seq++
		rec.ID = fmt.Sprintf("rec-%d", f.seq)
		rec.CreatedAt = time.Now().UTC()
		rec.UpdatedAt = rec.CreatedAt
		f.records[rec.ID] = rec
		inserted = append(inserted, rec)
	}
	return inserted, skipped, nil
}

func (f *fakeAttendanceRepo) MarkVoided(ctx context.Context, id string, previous attendance.Status, voidedAt time.Time, voidedBy string) (bool, error) {
	rec, ok := f.records[id]
	if !ok || rec.Voided() {
		return false, nil
	}
	rec.PreviousStatus = &previous
	rec.Status = attendance.StatusVoided
	rec.WageCalculated = decimal.Zero
	rec.VoidedAt = &voidedAt
	rec.VoidedBy = &voidedBy
	f.records[id] = rec
	return true, nil
}

func (f *fakeAttendanceRepo) ListByDate(ctx context.Context, date time.Time, includeVoided bool) ([]attendance.AttendanceRecord, error) {
	var out []attendance.AttendanceRecord
	for _, rec := range f.records {
		if !rec.Date.Equal(date) {
			continue
		}
		if rec.Voided() && !includeVoided {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListRange(ctx context.Context, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	var out []attendance.AttendanceRecord
	for _, rec := range f.records {
		if rec.Voided() || rec.Date.Before(from) || rec.Date.After(to) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByLabour(ctx context.Context, labourID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	var out []attendance.AttendanceRecord
	for _, rec := range f.records {
		if rec.LabourID != labourID || rec.Voided() || rec.Date.Before(from) || rec.Date.After(to) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) VoidAllForLabour(ctx context.Context, labourID string, voidedAt time.Time, voidedBy string) (int64, error) {
	var voided int64
	for id, rec := range f.records {
		if rec.LabourID != labourID || rec.Voided() {
			continue
		}
		prev := rec.Status
		rec.PreviousStatus = &prev
		rec.Status = attendance.StatusVoided
		rec.WageCalculated = decimal.Zero
		rec.VoidedAt = &voidedAt
		rec.VoidedBy = &voidedBy
		f.records[id] = rec
		voided++
	}
	return voided, nil
}

func (f *fakeAttendanceRepo) CountMarkedOnDate(ctx context.Context, date time.Time) (int64, error) {
	var count int64
	for _, rec := range f.records {
		if rec.Date.Equal(date) && !rec.Voided() {
			count++
		}
	}
	return count, nil
}

var testToday = time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)

func newTestService() (attendance.AttendanceService, *fakeAttendanceRepo, *fakeLabourRepo) {
	attendanceRepo := &fakeAttendanceRepo{records: make(map[string]attendance.AttendanceRecord)}
	labourRepo := &fakeLabourRepo{labours: map[string]labour.Labour{
		"lab-1": {ID: "lab-1", Name: "Ramesh", DailyWage: decimal.NewFromInt(500), Status: labour.StatusActive},
		"lab-2": {ID: "lab-2", Name: "Suresh", DailyWage: decimal.NewFromInt(400), Status: labour.StatusActive},
	}}
	svc := NewAttendanceService(attendanceRepo, labourRepo, events.NewHub())
	return svc, attendanceRepo, labourRepo
}

func TestMark_Success(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Mark(ctx, attendance.MarkRequest{
		LabourID: "lab-1",
		Date:     "2026-08-29",
		Status:   "present",
	}, testToday)

	require.NoError(t, err)
	assert.Equal(t, "500", resp.WageCalculated)
	assert.Equal(t, "present", resp.Status)
	assert.Equal(t, "2026-08-29", resp.Date)
	require.NotNil(t, resp.LabourName)
	assert.Equal(t, "Ramesh", *resp.LabourName)
}

func TestMark_TodayPassesTomorrowFails(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Mark(ctx, attendance.MarkRequest{
		LabourID: "lab-1", Date: "2026-08-30", Status: "present",
	}, testToday)
	assert.ErrorIs(t, err, attendance.ErrFutureDate)

	_, err = svc.Mark(ctx, attendance.MarkRequest{
		LabourID: "lab-1", Date: "2026-08-29", Status: "present",
	}, testToday)
	assert.NoError(t, err)
}

func TestMark_TenantLocalClock(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// Morning in Kolkata is still the previous evening in UTC. The current
	// calendar day there must be markable, and the next one must not.
	ist := time.FixedZone("IST", 5*60*60+30*60)
	istMorning := time.Date(2026, 8, 29, 10, 0, 0, 0, ist)

	_, err := svc.Mark(ctx, attendance.MarkRequest{
		LabourID: "lab-1", Date: "2026-08-29", Status: "present",
	}, istMorning)
	assert.NoError(t, err)

	_, err = svc.Mark(ctx, attendance.MarkRequest{
		LabourID: "lab-2", Date: "2026-08-30", Status: "present",
	}, istMorning)
	assert.ErrorIs(t, err, attendance.ErrFutureDate)

	// Late evening west of UTC: the clock's UTC instant is already on the
	// next calendar day, but local "today" still passes.
	pst := time.FixedZone("PST", -8*60*60)
	pstEvening := time.Date(2026, 8, 28, 21, 0, 0, 0, pst)

	_, err = svc.Mark(ctx, attendance.MarkRequest{
		LabourID: "lab-2", Date: "2026-08-28", Status: "present",
	}, pstEvening)
	assert.NoError(t, err)
}

func TestBulkMark_TenantLocalClock(t *testing.T) {
	svc, _, _ := newTestService()

	ist := time.FixedZone("IST", 5*60*60+30*60)
	istMorning := time.Date(2026, 8, 29, 10, 0, 0, 0, ist)

	result, err := svc.BulkMark(context.Background(), attendance.BulkMarkRequest{
		Date:    "2026-08-29",
		Entries: []attendance.BulkEntry{{LabourID: "lab-1", Status: "present"}},
	}, istMorning)
	require.NoError(t, err)
	assert.Len(t, result.Saved, 1)
}

func TestMark_LabourNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Mark(context.Background(), attendance.MarkRequest{
		LabourID: "ghost", Date: "2026-08-29", Status: "present",
	}, testToday)
	assert.ErrorIs(t, err, labour.ErrLabourNotFound)
}

func TestMark_DuplicateActiveRecord(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	req := attendance.MarkRequest{LabourID: "lab-1", Date: "2026-08-28", Status: "present"}
	_, err := svc.Mark(ctx, req, testToday)
	require.NoError(t, err)

	req.Status = "absent"
	_, err = svc.Mark(ctx, req, testToday)
	assert.ErrorIs(t, err, attendance.ErrDuplicateActiveRecord)
}

func TestVoid_ThenRemark(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	marked, err := svc.Mark(ctx, attendance.MarkRequest{
		LabourID: "lab-1", Date: "2026-08-29", Status: "present",
	}, testToday)
	require.NoError(t, err)
	assert.Equal(t, "500", marked.WageCalculated)

	require.NoError(t, svc.Void(ctx, marked.ID, "admin-1"))

	// The voided record freed the (labour, date) key; half-day remark sticks
	remarked, err := svc.Mark(ctx, attendance.MarkRequest{
		LabourID: "lab-1", Date: "2026-08-29", Status: "half-day",
	}, testToday)
	require.NoError(t, err)
	assert.Equal(t, "250", remarked.WageCalculated)

	// Audit view keeps both rows, voided one with its history stamped
	voided, err := repo.GetByID(ctx, marked.ID)
	require.NoError(t, err)
	assert.True(t, voided.Voided())
	assert.True(t, voided.WageCalculated.IsZero())
	require.NotNil(t, voided.PreviousStatus)
	assert.Equal(t, attendance.StatusPresent, *voided.PreviousStatus)
	require.NotNil(t, voided.VoidedBy)
	assert.Equal(t, "admin-1", *voided.VoidedBy)

	all, err := svc.RecordsForDate(ctx, "2026-08-29", true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.RecordsForDate(ctx, "2026-08-29", false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "half-day", active[0].Status)
}

func TestVoid_TwiceFails(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	marked, err := svc.Mark(ctx, attendance.MarkRequest{
		LabourID: "lab-1", Date: "2026-08-29", Status: "present",
	}, testToday)
	require.NoError(t, err)

	require.NoError(t, svc.Void(ctx, marked.ID, "admin-1"))
	err = svc.Void(ctx, marked.ID, "admin-1")
	assert.ErrorIs(t, err, attendance.ErrAlreadyVoided)
}

func TestVoid_NotFound(t *testing.T) {
	svc, _, _ := newTestService()
	err := svc.Void(context.Background(), "missing", "admin-1")
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestBulkMark_ReportsSavedAndSkipped(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// lab-1 already has an active record for the day
	_, err := svc.Mark(ctx, attendance.MarkRequest{
		LabourID: "lab-1", Date: "2026-08-29", Status: "present",
	}, testToday)
	require.NoError(t, err)

	result, err := svc.BulkMark(ctx, attendance.BulkMarkRequest{
		Date: "2026-08-29",
		Entries: []attendance.BulkEntry{
			{LabourID: "lab-1", Status: "present"},
			{LabourID: "lab-2", Status: "half-day"},
			{LabourID: "ghost", Status: "present"},
		},
	}, testToday)
	require.NoError(t, err)

	require.Len(t, result.Saved, 1)
	assert.Equal(t, "lab-2", result.Saved[0].LabourID)
	assert.Equal(t, "200", result.Saved[0].WageCalculated)

	require.Len(t, result.Skipped, 2)
	skippedIDs := map[string]bool{}
	for _, s := range result.Skipped {
		skippedIDs[s.LabourID] = true
		assert.NotEmpty(t, s.Reason)
	}
	assert.True(t, skippedIDs["lab-1"])
	assert.True(t, skippedIDs["ghost"])
}

func TestBulkMark_RerunIsIdempotent(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	req := attendance.BulkMarkRequest{
		Date: "2026-08-29",
		Entries: []attendance.BulkEntry{
			{LabourID: "lab-1", Status: "present"},
			{LabourID: "lab-2", Status: "present"},
		},
	}

	first, err := svc.BulkMark(ctx, req, testToday)
	require.NoError(t, err)
	assert.Len(t, first.Saved, 2)

	second, err := svc.BulkMark(ctx, req, testToday)
	require.NoError(t, err)
	assert.Empty(t, second.Saved)
	assert.Len(t, second.Skipped, 2)

	count, err := repo.CountMarkedOnDate(ctx, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestBulkMark_FutureDate(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.BulkMark(context.Background(), attendance.BulkMarkRequest{
		Date:    "2026-08-30",
		Entries: []attendance.BulkEntry{{LabourID: "lab-1", Status: "present"}},
	}, testToday)
	assert.ErrorIs(t, err, attendance.ErrFutureDate)
}

func TestRecordsInRange_ValidatesDates(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.RecordsInRange(ctx, "2026-08-29", "2026-08-01")
	assert.Error(t, err)

	_, err = svc.RecordsInRange(ctx, "not-a-date", "2026-08-29")
	assert.Error(t, err)
}
