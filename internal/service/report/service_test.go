package report

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-go/internal/fixtures"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-shift-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*3600)

func date(day int) time.Time {
	return time.Date(2026, time.February, day, 0, 0, 0, 0, wib)
}

type testEnv struct {
	clock       *clock.Fixed
	staff       fixtures.SeededStaff
	schedules   schedule.ScheduleRepository
	attendances attendance.AttendanceRepository
	leaves      leave.LeaveRequestRepository
	svc         report.ReportService
}

// setup pins today to Friday 20 February 2026.
func setup(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	employees := memory.NewEmployeeRepository(store)
	staff, err := fixtures.SeedStaff(context.Background(), employees)
	require.NoError(t, err)

	clk := clock.NewFixed(time.Date(2026, time.February, 20, 10, 0, 0, 0, wib))
	catalog := shift.NewCatalog(shift.DefaultPolicy(), wib)
	return &testEnv{
		clock:       clk,
		staff:       staff,
		schedules:   memory.NewScheduleRepository(store),
		attendances: memory.NewAttendanceRepository(store),
		leaves:      memory.NewLeaveRequestRepository(store),
		svc:         NewReportService(clk, catalog, memory.NewReportRepository(store), employees),
	}
}

func (e *testEnv) schedule(t *testing.T, name string, shiftType shift.Type, day int) string {
	t.Helper()
	ctx := context.Background()
	ok, err := e.schedules.CreateIfAbsent(ctx, schedule.Entry{
		EmployeeID: e.staff.ID(name),
		Date:       date(day),
		ShiftType:  shiftType,
	})
	require.NoError(t, err)
	require.True(t, ok)

	entries, err := e.schedules.ListByEmployeeAndDate(ctx, e.staff.ID(name), date(day))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	return entries[0].ID
}

type attended struct {
	status     attendance.Status
	lateMin    int
	earlyMin   int
	scheduleID *string
}

func (e *testEnv) attend(t *testing.T, name string, day int, a attended) {
	t.Helper()
	clockIn := date(day).Add(6 * time.Hour)
	clockOut := date(day).Add(15 * time.Hour)
	_, err := e.attendances.Create(context.Background(), attendance.Attendance{
		EmployeeID:            e.staff.ID(name),
		ScheduleEntryID:       a.scheduleID,
		ShiftDate:             date(day),
		ShiftType:             shift.TypeMorning,
		ClockIn:               clockIn,
		ClockOut:              &clockOut,
		Status:                a.status,
		LateMinutes:           a.lateMin,
		EarlyDepartureMinutes: a.earlyMin,
	})
	require.NoError(t, err)
}

func TestAbsenceCount_IsAntiJoinOfPastEntries(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	mon := env.schedule(t, "Budi", shift.TypeMorning, 9)
	env.schedule(t, "Budi", shift.TypeMorning, 11)
	env.schedule(t, "Budi", shift.TypeMorning, 20) // today
	env.schedule(t, "Budi", shift.TypeMorning, 23) // future
	env.attend(t, "Budi", 9, attended{status: attendance.StatusOnTime, scheduleID: &mon})

	req := report.AbsenceCountRequest{EmployeeID: env.staff.ID("Budi"), From: "2026-02-01", To: "2026-02-28"}
	resp, err := env.svc.AbsenceCount(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Absences)
	assert.Equal(t, "2026-02-01", resp.From)
}

func TestAbsenceCount_AnyReferencingRecordCounts(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	wed := env.schedule(t, "Budi", shift.TypeMorning, 11)
	req := report.AbsenceCountRequest{EmployeeID: env.staff.ID("Budi"), From: "2026-02-09", To: "2026-02-15"}

	resp, err := env.svc.AbsenceCount(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Absences)

	// A record closed as missed still references the entry.
	env.attend(t, "Budi", 11, attended{status: attendance.StatusMissed, scheduleID: &wed})

	resp, err = env.svc.AbsenceCount(ctx, req)
	require.NoError(t, err)
	assert.Zero(t, resp.Absences)
}

func TestAbsenceCount_RangeIsInclusive(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	env.schedule(t, "Budi", shift.TypeMorning, 9)
	env.schedule(t, "Budi", shift.TypeMorning, 13)
	env.schedule(t, "Budi", shift.TypeMorning, 16)

	resp, err := env.svc.AbsenceCount(ctx, report.AbsenceCountRequest{
		EmployeeID: env.staff.ID("Budi"), From: "2026-02-09", To: "2026-02-13",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Absences)
}

func TestAbsenceCount_Validation(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	_, err := env.svc.AbsenceCount(ctx, report.AbsenceCountRequest{
		EmployeeID: env.staff.ID("Budi"), From: "2026-02-13", To: "2026-02-09",
	})
	assert.Error(t, err)

	_, err = env.svc.AbsenceCount(ctx, report.AbsenceCountRequest{
		EmployeeID: "missing", From: "2026-02-01", To: "2026-02-28",
	})
	assert.Error(t, err)
}

func TestAttendanceSummary(t *testing.T) {
	env := setup(t)

	mon := env.schedule(t, "Budi", shift.TypeMorning, 9)
	tue := env.schedule(t, "Budi", shift.TypeMorning, 10)
	env.schedule(t, "Budi", shift.TypeMorning, 11)
	env.attend(t, "Budi", 9, attended{status: attendance.StatusOnTime, scheduleID: &mon})
	env.attend(t, "Budi", 10, attended{status: attendance.StatusLate, lateMin: 20, earlyMin: 30, scheduleID: &tue})

	summary, err := env.svc.AttendanceSummary(context.Background(), report.AttendanceSummaryRequest{
		EmployeeID:    env.staff.ID("Budi"),
		PeriodRequest: report.PeriodRequest{Month: 2, Year: 2026},
	})
	require.NoError(t, err)
	assert.Equal(t, "Budi", summary.EmployeeName)
	assert.Equal(t, "2026-02-01", summary.PeriodStart)
	assert.Equal(t, "2026-02-28", summary.PeriodEnd)
	assert.Equal(t, 1, summary.Present)
	assert.Equal(t, 1, summary.Late)
	assert.Equal(t, 1, summary.Absent)
	assert.Equal(t, 20, summary.LateMinutes)
	assert.Equal(t, 1, summary.EarlyDepartureCount)
	assert.Equal(t, 30, summary.EarlyDepartureMinutes)
	assert.True(t, decimal.RequireFromString("33.33").Equal(summary.AttendanceRate), summary.AttendanceRate.String())
}

func TestAttendanceSummary_EmptyPeriodRateIsZero(t *testing.T) {
	env := setup(t)

	summary, err := env.svc.AttendanceSummary(context.Background(), report.AttendanceSummaryRequest{
		EmployeeID:    env.staff.ID("Dewi"),
		PeriodRequest: report.PeriodRequest{Month: 2, Year: 2026},
	})
	require.NoError(t, err)
	assert.True(t, summary.AttendanceRate.IsZero())
}

func TestAttendanceSummary_InvalidPeriod(t *testing.T) {
	env := setup(t)

	_, err := env.svc.AttendanceSummary(context.Background(), report.AttendanceSummaryRequest{
		EmployeeID:    env.staff.ID("Budi"),
		PeriodRequest: report.PeriodRequest{Month: 13, Year: 2026},
	})
	assert.Error(t, err)
}

func TestMonthlyReport_SortedByRate(t *testing.T) {
	env := setup(t)

	for _, day := range []int{9, 10} {
		id := env.schedule(t, "Adi Admin", shift.TypeOffice, day)
		env.attend(t, "Adi Admin", day, attended{status: attendance.StatusOnTime, scheduleID: &id})
	}

	for _, day := range []int{9, 10} {
		id := env.schedule(t, "Eko", shift.TypeMorning, day)
		env.attend(t, "Eko", day, attended{status: attendance.StatusOnTime, scheduleID: &id})
	}
	env.schedule(t, "Eko", shift.TypeMorning, 11)

	mon := env.schedule(t, "Budi", shift.TypeMorning, 9)
	tue := env.schedule(t, "Budi", shift.TypeMorning, 10)
	env.attend(t, "Budi", 9, attended{status: attendance.StatusOnTime, scheduleID: &mon})
	env.attend(t, "Budi", 10, attended{status: attendance.StatusLate, lateMin: 5, scheduleID: &tue})

	env.schedule(t, "Citra", shift.TypeEvening, 9)

	monthly, err := env.svc.MonthlyReport(context.Background(), report.MonthlyReportRequest{
		PeriodRequest: report.PeriodRequest{Month: 2, Year: 2026},
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", monthly.PeriodStart)
	assert.NotEmpty(t, monthly.GeneratedAt)

	names := make([]string, len(monthly.Employees))
	for i, s := range monthly.Employees {
		names[i] = s.EmployeeName
	}
	// A late arrival ranks Budi below Eko's absence; the owner works no
	// shifts and is left out; ties sort by name.
	assert.Equal(t, []string{"Adi Admin", "Eko", "Budi", "Ayu Admin", "Citra", "Dewi", "Fajar"}, names)

	assert.True(t, decimal.NewFromInt(100).Equal(monthly.Employees[0].AttendanceRate))
	assert.True(t, decimal.RequireFromString("66.67").Equal(monthly.Employees[1].AttendanceRate))
	assert.True(t, decimal.NewFromInt(50).Equal(monthly.Employees[2].AttendanceRate))
	assert.Equal(t, 1, monthly.Employees[4].Absent)
}

func TestMySummary_MonthAndYearToDate(t *testing.T) {
	env := setup(t)

	jan := time.Date(2026, time.January, 15, 0, 0, 0, 0, wib)
	ok, err := env.schedules.CreateIfAbsent(context.Background(), schedule.Entry{
		EmployeeID: env.staff.ID("Budi"),
		Date:       jan,
		ShiftType:  shift.TypeMorning,
	})
	require.NoError(t, err)
	require.True(t, ok)

	mon := env.schedule(t, "Budi", shift.TypeMorning, 9)
	env.attend(t, "Budi", 9, attended{status: attendance.StatusOnTime, scheduleID: &mon})

	summary, err := env.svc.MySummary(context.Background(), env.staff.ID("Budi"))
	require.NoError(t, err)

	assert.Equal(t, "2026-02-01", summary.Month.PeriodStart)
	assert.Equal(t, "2026-02-28", summary.Month.PeriodEnd)
	assert.Equal(t, 1, summary.Month.Present)
	assert.Zero(t, summary.Month.Absent)

	assert.Equal(t, "2026-01-01", summary.Year.PeriodStart)
	assert.Equal(t, "2026-12-31", summary.Year.PeriodEnd)
	assert.Equal(t, 1, summary.Year.Present)
	assert.Equal(t, 1, summary.Year.Absent, "the unattended January shift")
}

func TestMySummary_UnknownEmployee(t *testing.T) {
	env := setup(t)

	_, err := env.svc.MySummary(context.Background(), "missing")
	assert.Error(t, err)
}

func TestTodayOverview(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	env.clock.Set(time.Date(2026, time.February, 20, 17, 0, 0, 0, wib))

	budi := env.schedule(t, "Budi", shift.TypeMorning, 20)
	env.attend(t, "Budi", 20, attended{status: attendance.StatusLate, lateMin: 10, scheduleID: &budi})

	dewi := env.schedule(t, "Dewi", shift.TypeMorning, 20)
	env.attend(t, "Dewi", 20, attended{status: attendance.StatusOnTime, scheduleID: &dewi})

	// Morning window closed at 16:00; evening is still open.
	env.schedule(t, "Eko", shift.TypeMorning, 20)
	env.schedule(t, "Citra", shift.TypeEvening, 20)

	// A missed record is neither present nor absent.
	fajar := env.schedule(t, "Fajar", shift.TypeMorning, 20)
	env.attend(t, "Fajar", 20, attended{status: attendance.StatusMissed, scheduleID: &fajar})

	// Yesterday's unattended shift does not count today.
	env.schedule(t, "Ayu Admin", shift.TypeOffice, 19)

	for _, status := range []leave.Status{leave.StatusPending, leave.StatusPending, leave.StatusApproved} {
		_, err := env.leaves.Create(ctx, leave.LeaveRequest{
			EmployeeID: env.staff.ID("Citra"),
			Type:       leave.TypeSick,
			StartDate:  date(25),
			EndDate:    date(25),
			Status:     status,
		})
		require.NoError(t, err)
	}

	overview, err := env.svc.TodayOverview(ctx)
	require.NoError(t, err)
	assert.Equal(t, report.TodayOverview{
		Date:                 "2026-02-20",
		StaffCount:           7,
		Scheduled:            5,
		Present:              2,
		Late:                 1,
		Absent:               1,
		AwaitingClockIn:      1,
		PendingLeaveRequests: 2,
	}, overview)
}
