package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(id string, createdAt time.Time) sqlite.PayRun {
	monday := payroll.NewDate(2025, time.March, 10)
	return sqlite.PayRun{
		ID:          id,
		BasicSalary: decimal.NewFromInt(30000),
		Allowance:   decimal.NewFromInt(5000),
		Rates: payroll.WageRates{
			DailyWage:  decimal.RequireFromString("1150.6849315068493151"),
			HourlyWage: decimal.RequireFromString("143.8356164383561644"),
		},
		Holidays:  []string{"2025-03-11"},
		CreatedAt: createdAt,
		Diagnostics: payroll.Diagnostics{
			HoursFallbackRows: []int{2},
		},
		Daily: []payroll.DailyPayEntry{
			{
				EmployeeID:   "E1",
				EmployeeName: "Asha",
				Date:         monday,
				InTime:       "09:00",
				OutTime:      "17:00",
				TotalHours:   decimal.NewFromInt(8),
				ExtraHours:   decimal.Zero,
				DailyPay:     decimal.RequireFromString("1150.68"),
			},
			{
				EmployeeID:   "E1",
				EmployeeName: "Asha",
				Date:         payroll.InvalidDate(),
				TotalHours:   decimal.NewFromFloat(8.5),
				ExtraHours:   decimal.NewFromInt(1),
				DailyPay:     decimal.RequireFromString("1366.44"),
			},
		},
		Monthly: []payroll.MonthlyTotal{
			{
				EmployeeID:      "E1",
				EmployeeName:    "Asha",
				TotalHoursSum:   decimal.NewFromFloat(16.5),
				ExtraHoursSum:   decimal.NewFromInt(1),
				DailyPaySum:     decimal.RequireFromString("2517.12"),
				FixedMonthlyPay: decimal.NewFromInt(35000),
				FinalMonthlyPay: decimal.RequireFromString("37517.12"),
			},
		},
	}
}

func TestStore_SaveAndGetRun(t *testing.T) {
	// GIVEN: An archived run with an invalid-date row and diagnostics
	// WHEN: Loading it back
	// THEN: Both tables, the rates, and the diagnostics survive unchanged

	store := newTestStore(t)
	ctx := context.Background()
	createdAt := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

	run := sampleRun("run-1", createdAt)
	require.NoError(t, store.SaveRun(ctx, run))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)

	assert.Equal(t, "run-1", got.ID)
	assert.True(t, got.BasicSalary.Equal(run.BasicSalary))
	assert.True(t, got.Allowance.Equal(run.Allowance))
	assert.True(t, got.Rates.DailyWage.Equal(run.Rates.DailyWage))
	assert.True(t, got.Rates.HourlyWage.Equal(run.Rates.HourlyWage))
	assert.Equal(t, run.Holidays, got.Holidays)
	assert.Equal(t, run.Diagnostics, got.Diagnostics)
	assert.True(t, got.CreatedAt.Equal(createdAt))

	require.Len(t, got.Daily, 2)
	assert.Equal(t, payroll.EmployeeID("E1"), got.Daily[0].EmployeeID)
	assert.True(t, got.Daily[0].Date.Equal(run.Daily[0].Date))
	assert.True(t, got.Daily[0].DailyPay.Equal(run.Daily[0].DailyPay))

	// An invalid date round-trips to an invalid date, not to some zero day.
	assert.False(t, got.Daily[1].Date.Valid())
	assert.True(t, got.Daily[1].TotalHours.Equal(run.Daily[1].TotalHours))

	require.Len(t, got.Monthly, 1)
	assert.True(t, got.Monthly[0].FinalMonthlyPay.Equal(run.Monthly[0].FinalMonthlyPay))
}

func TestStore_GetRun_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetRun(context.Background(), "nope")
	assert.ErrorIs(t, err, sqlite.ErrRunNotFound)
}

func TestStore_SaveRun_DuplicateIDRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createdAt := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveRun(ctx, sampleRun("run-1", createdAt)))
	assert.Error(t, store.SaveRun(ctx, sampleRun("run-1", createdAt)))
}

func TestStore_ListRuns_NewestFirstWithCounts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	require.NoError(t, store.SaveRun(ctx, sampleRun("run-old", older)))
	require.NoError(t, store.SaveRun(ctx, sampleRun("run-new", newer)))

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "run-new", runs[0].ID)
	assert.Equal(t, "run-old", runs[1].ID)
	assert.Equal(t, 1, runs[0].Employees)
	assert.Equal(t, 2, runs[0].DailyRows)
}

func TestStore_ListRuns_Empty(t *testing.T) {
	store := newTestStore(t)

	runs, err := store.ListRuns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)
}
