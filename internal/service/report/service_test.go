package report

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shramik-labs/labour-backend-go/internal/domain/attendance"
	"github.com/shramik-labs/labour-backend-go/internal/domain/labour"
)

type stubLabourRepo struct {
	labours []labour.Labour
}

func (s *stubLabourRepo) Create(ctx context.Context, l labour.Labour) (labour.Labour, error) {
	return l, nil
}

func (s *stubLabourRepo) GetByID(ctx context.Context, id string) (labour.Labour, error) {
	for _, l := range s.labours {
		if l.ID == id {
			return l, nil
		}
	}
	return labour.Labour{}, pgx.ErrNoRows
}

func (s *stubLabourRepo) Update(ctx context.Context, l labour.Labour) (labour.Labour, error) {
	return l, nil
}

func (s *stubLabourRepo) Delete(ctx context.Context, id string) error { return nil }

func (s *stubLabourRepo) List(ctx context.Context, filter labour.LabourFilter) ([]labour.Labour, error) {
	return s.labours, nil
}

func (s *stubLabourRepo) CountByStatus(ctx context.Context) (labour.Counts, error) {
	return labour.Counts{}, nil
}

type stubAttendanceRepo struct {
	records []attendance.AttendanceRecord
}

func (s *stubAttendanceRepo) Create(ctx context.Context, r attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	return r, nil
}

func (s *stubAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.AttendanceRecord, error) {
	return attendance.AttendanceRecord{}, pgx.ErrNoRows
}

func (s *stubAttendanceRepo) BulkInsert(ctx context.Context, records []attendance.AttendanceRecord) ([]attendance.AttendanceRecord, []string, error) {
	return nil, nil, nil
}

func (s *stubAttendanceRepo) MarkVoided(ctx context.Context, id string, previous attendance.Status, voidedAt time.Time, voidedBy string) (bool, error) {
	return false, nil
}

func (s *stubAttendanceRepo) ListByDate(ctx context.Context, date time.Time, includeVoided bool) ([]attendance.AttendanceRecord, error) {
	return nil, nil
}

func (s *stubAttendanceRepo) ListRange(ctx context.Context, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	return s.records, nil
}

func (s *stubAttendanceRepo) ListByLabour(ctx context.Context, labourID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	var out []attendance.AttendanceRecord
	for _, r := range s.records {
		if r.LabourID == labourID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubAttendanceRepo) VoidAllForLabour(ctx context.Context, labourID string, voidedAt time.Time, voidedBy string) (int64, error) {
	return 0, nil
}

func (s *stubAttendanceRepo) CountMarkedOnDate(ctx context.Context, date time.Time) (int64, error) {
	return 0, nil
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func testRecord(labourID, date string, status attendance.Status, wage string) attendance.AttendanceRecord {
	return attendance.AttendanceRecord{
		LabourID:       labourID,
		Date:           day(date),
		Status:         status,
		WageCalculated: decimal.RequireFromString(wage),
	}
}

func TestLabourSummary(t *testing.T) {
	labourRepo := &stubLabourRepo{labours: []labour.Labour{
		{ID: "lab-1", Name: "Ramesh", DailyWage: decimal.NewFromInt(500)},
	}}
	attendanceRepo := &stubAttendanceRepo{records: []attendance.AttendanceRecord{
		testRecord("lab-1", "2026-08-25", attendance.StatusPresent, "500"),
		testRecord("lab-1", "2026-08-26", attendance.StatusPresent, "500"),
		testRecord("lab-1", "2026-08-27", attendance.StatusHalfDay, "250"),
		testRecord("lab-1", "2026-08-28", attendance.StatusAbsent, "0"),
	}}
	svc := NewReportService(attendanceRepo, labourRepo)

	got, err := svc.LabourSummary(context.Background(), "lab-1", "2026-08-01", "2026-08-31")
	require.NoError(t, err)

	assert.Equal(t, "Ramesh", got.LabourName)
	assert.Equal(t, int64(2), got.PresentDays)
	assert.Equal(t, int64(1), got.HalfDays)
	assert.Equal(t, int64(1), got.AbsentDays)
	assert.Equal(t, "1250", got.TotalWage)
}

func TestLabourSummary_NotFound(t *testing.T) {
	svc := NewReportService(&stubAttendanceRepo{}, &stubLabourRepo{})

	_, err := svc.LabourSummary(context.Background(), "ghost", "2026-08-01", "2026-08-31")
	assert.ErrorIs(t, err, labour.ErrLabourNotFound)
}

func TestLabourSummary_ValidatesRange(t *testing.T) {
	svc := NewReportService(&stubAttendanceRepo{}, &stubLabourRepo{})

	_, err := svc.LabourSummary(context.Background(), "lab-1", "2026-08-31", "2026-08-01")
	assert.Error(t, err)
}

func TestWageReport_CoversWholeRoster(t *testing.T) {
	designation := "mason"
	labourRepo := &stubLabourRepo{labours: []labour.Labour{
		{ID: "lab-2", Name: "Suresh", Designation: &designation},
		{ID: "lab-1", Name: "Ramesh"},
		{ID: "lab-3", Name: "Dinesh"}, // no records in range
	}}
	attendanceRepo := &stubAttendanceRepo{records: []attendance.AttendanceRecord{
		testRecord("lab-1", "2026-08-25", attendance.StatusPresent, "500"),
		testRecord("lab-1", "2026-08-26", attendance.StatusHalfDay, "250"),
		testRecord("lab-2", "2026-08-25", attendance.StatusPresent, "400"),
	}}
	svc := NewReportService(attendanceRepo, labourRepo)

	got, err := svc.WageReport(context.Background(), "2026-08-01", "2026-08-31")
	require.NoError(t, err)

	require.Len(t, got.Rows, 3)
	// Rows come back sorted by name
	assert.Equal(t, "Dinesh", got.Rows[0].Name)
	assert.Equal(t, "Ramesh", got.Rows[1].Name)
	assert.Equal(t, "Suresh", got.Rows[2].Name)

	assert.Equal(t, "0", got.Rows[0].TotalWage)
	assert.Equal(t, "750", got.Rows[1].TotalWage)
	assert.Equal(t, int64(1), got.Rows[1].PresentDays)
	assert.Equal(t, int64(1), got.Rows[1].HalfDays)
	assert.Equal(t, "400", got.Rows[2].TotalWage)

	assert.Equal(t, "1150", got.CompanyTotal)
}
