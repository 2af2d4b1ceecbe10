package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shramik-labs/labour-backend-go/internal/domain/attendance"
	"github.com/shramik-labs/labour-backend-go/internal/domain/labour"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/database"
	"github.com/shramik-labs/labour-backend-go/internal/repository/postgresql"
)

var testDB *database.DB

// testInit connects lazily so the suite skips instead of failing when no
// test database is configured. Schema comes from migrations/0001_init.sql.
func testInit(t *testing.T) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping postgres repository tests")
	}
	if testDB != nil {
		return
	}
	var err error
	testDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "failed to connect to test database")
}

func truncateTables(t *testing.T) {
	ctx := context.Background()
	for _, table := range []string{"attendance_records", "labours", "categories"} {
		_, err := testDB.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}
}

func createTestLabour(t *testing.T, name string) labour.Labour {
	repo := postgresql.NewLabourRepository(testDB)
	l, err := repo.Create(context.Background(), labour.Labour{
		Name:        name,
		Aadhaar:     aadhaarFor(name),
		DailyWage:   decimal.NewFromInt(500),
		Status:      labour.StatusActive,
		JoiningDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return l
}

// aadhaarFor derives a distinct 12-digit aadhaar per name
func aadhaarFor(name string) string {
	sum := 0
	for _, r := range name {
		sum += int(r)
	}
	digits := "000000000000"
	id := []byte(digits)
	for i := 0; sum > 0 && i < len(id); i++ {
		id[len(id)-1-i] = byte('0' + sum%10)
		sum /= 10
	}
	return string(id)
}

func TestAttendanceRepository_CreateAndGet(t *testing.T) {
	testInit(t)
	truncateTables(t)
	ctx := context.Background()

	lab := createTestLabour(t, "Ramesh")
	repo := postgresql.NewAttendanceRepository(testDB)

	created, err := repo.Create(ctx, attendance.AttendanceRecord{
		LabourID:       lab.ID,
		Date:           time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		Status:         attendance.StatusPresent,
		WageCalculated: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, lab.ID, got.LabourID)
	assert.Equal(t, attendance.StatusPresent, got.Status)
	assert.True(t, got.WageCalculated.Equal(decimal.NewFromInt(500)))
	require.NotNil(t, got.LabourName)
	assert.Equal(t, "Ramesh", *got.LabourName)
}

func TestAttendanceRepository_ActiveUniqueness(t *testing.T) {
	testInit(t)
	truncateTables(t)
	ctx := context.Background()

	lab := createTestLabour(t, "Suresh")
	repo := postgresql.NewAttendanceRepository(testDB)
	date := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	first, err := repo.Create(ctx, attendance.AttendanceRecord{
		LabourID: lab.ID, Date: date,
		Status: attendance.StatusPresent, WageCalculated: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	// Second active record for the same day must violate the partial index
	_, err = repo.Create(ctx, attendance.AttendanceRecord{
		LabourID: lab.ID, Date: date,
		Status: attendance.StatusAbsent, WageCalculated: decimal.Zero,
	})
	assert.Error(t, err)

	// Voiding frees the key for a replacement
	voided, err := repo.MarkVoided(ctx, first.ID, first.Status, time.Now().UTC(), "admin-1")
	require.NoError(t, err)
	assert.True(t, voided)

	_, err = repo.Create(ctx, attendance.AttendanceRecord{
		LabourID: lab.ID, Date: date,
		Status: attendance.StatusHalfDay, WageCalculated: decimal.NewFromInt(250),
	})
	assert.NoError(t, err)

	// Double void reports no rows touched
	voided, err = repo.MarkVoided(ctx, first.ID, first.Status, time.Now().UTC(), "admin-1")
	require.NoError(t, err)
	assert.False(t, voided)
}

func TestAttendanceRepository_BulkInsertSkipsConflicts(t *testing.T) {
	testInit(t)
	truncateTables(t)
	ctx := context.Background()

	lab1 := createTestLabour(t, "Dinesh")
	lab2 := createTestLabour(t, "Mahesh")
	repo := postgresql.NewAttendanceRepository(testDB)
	date := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, attendance.AttendanceRecord{
		LabourID: lab1.ID, Date: date,
		Status: attendance.StatusPresent, WageCalculated: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	inserted, skipped, err := repo.BulkInsert(ctx, []attendance.AttendanceRecord{
		{LabourID: lab1.ID, Date: date, Status: attendance.StatusPresent, WageCalculated: decimal.NewFromInt(500)},
		{LabourID: lab2.ID, Date: date, Status: attendance.StatusHalfDay, WageCalculated: decimal.NewFromInt(250)},
	})
	require.NoError(t, err)

	require.Len(t, inserted, 1)
	assert.Equal(t, lab2.ID, inserted[0].LabourID)
	require.Len(t, skipped, 1)
	assert.Equal(t, lab1.ID, skipped[0])

	count, err := repo.CountMarkedOnDate(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestAttendanceRepository_ListByDateVoidedFilter(t *testing.T) {
	testInit(t)
	truncateTables(t)
	ctx := context.Background()

	lab := createTestLabour(t, "Ganesh")
	repo := postgresql.NewAttendanceRepository(testDB)
	date := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	first, err := repo.Create(ctx, attendance.AttendanceRecord{
		LabourID: lab.ID, Date: date,
		Status: attendance.StatusPresent, WageCalculated: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	_, err = repo.MarkVoided(ctx, first.ID, first.Status, time.Now().UTC(), "admin-1")
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.AttendanceRecord{
		LabourID: lab.ID, Date: date,
		Status: attendance.StatusHalfDay, WageCalculated: decimal.NewFromInt(250),
	})
	require.NoError(t, err)

	active, err := repo.ListByDate(ctx, date, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, attendance.StatusHalfDay, active[0].Status)

	all, err := repo.ListByDate(ctx, date, true)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Voided rows order last
	assert.Equal(t, attendance.StatusVoided, all[1].Status)
	require.NotNil(t, all[1].PreviousStatus)
	assert.Equal(t, attendance.StatusPresent, *all[1].PreviousStatus)
}

func TestLabourRepository_CascadeVoidOnDelete(t *testing.T) {
	testInit(t)
	truncateTables(t)
	ctx := context.Background()

	lab := createTestLabour(t, "Rajesh")
	labourRepo := postgresql.NewLabourRepository(testDB)
	attendanceRepo := postgresql.NewAttendanceRepository(testDB)
	date := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	rec, err := attendanceRepo.Create(ctx, attendance.AttendanceRecord{
		LabourID: lab.ID, Date: date,
		Status: attendance.StatusPresent, WageCalculated: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	voided, err := attendanceRepo.VoidAllForLabour(ctx, lab.ID, time.Now().UTC(), "admin-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), voided)

	require.NoError(t, labourRepo.Delete(ctx, lab.ID))

	// The voided record survives the roster delete for audit
	got, err := attendanceRepo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, got.Voided())
	assert.True(t, got.WageCalculated.IsZero())
}
