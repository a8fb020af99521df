package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-go/internal/fixtures"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-shift-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2026, time.February, d, 0, 0, 0, 0, time.UTC)
}

func seed(t *testing.T, db *database.DB) fixtures.SeededStaff {
	t.Helper()
	staff, err := fixtures.SeedStaff(context.Background(), postgresql.NewEmployeeRepository(db))
	require.NoError(t, err)
	return staff
}

func TestEmployeeRepository(t *testing.T) {
	db := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)
	staff := seed(t, db)

	got, err := repo.GetByID(ctx, staff.ID("Budi"))
	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", got.Email)
	assert.Equal(t, employee.DefaultBalances(), got.Balances)

	admins, err := repo.ListByRoles(ctx, employee.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, admins, 2)

	_, err = repo.Create(ctx, employee.Employee{Name: "Copy", Email: "budi@example.com", Role: employee.RoleEmployee})
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestLeaveBalanceRepository_DeductNeverGoesNegative(t *testing.T) {
	db := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveBalanceRepository(db)
	staff := seed(t, db)
	budi := staff.ID("Budi")

	require.NoError(t, repo.Set(ctx, budi, leave.TypeEmergency, 2))
	assert.ErrorIs(t, repo.Deduct(ctx, budi, leave.TypeEmergency, 3), leave.ErrInsufficientBalance)
	require.NoError(t, repo.Deduct(ctx, budi, leave.TypeEmergency, 2))

	got, err := postgresql.NewEmployeeRepository(db).GetByID(ctx, budi)
	require.NoError(t, err)
	assert.Zero(t, got.Balances.Emergency)
}

func TestScheduleRepository_UpsertSlotDisplacesOccupant(t *testing.T) {
	db := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewScheduleRepository(db)
	staff := seed(t, db)

	_, err := repo.UpsertSlot(ctx, schedule.Entry{EmployeeID: staff.ID("Budi"), Date: day(10), ShiftType: shift.TypeMorning})
	require.NoError(t, err)
	_, err = repo.UpsertSlot(ctx, schedule.Entry{EmployeeID: staff.ID("Citra"), Date: day(10), ShiftType: shift.TypeMorning})
	require.NoError(t, err)

	entries, err := repo.ListInRange(ctx, day(10), day(10))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, staff.ID("Citra"), entries[0].EmployeeID)
	assert.Equal(t, "Citra", entries[0].EmployeeName)
	assert.Equal(t, "2026-02-10", clock.DateKey(entries[0].Date))
}

func TestScheduleRepository_OfficeSlotsAreShared(t *testing.T) {
	db := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewScheduleRepository(db)
	staff := seed(t, db)

	for _, name := range []string{"Adi Admin", "Ayu Admin"} {
		inserted, err := repo.CreateIfAbsent(ctx, schedule.Entry{EmployeeID: staff.ID(name), Date: day(9), ShiftType: shift.TypeOffice})
		require.NoError(t, err)
		assert.True(t, inserted)
	}

	inserted, err := repo.CreateIfAbsent(ctx, schedule.Entry{EmployeeID: staff.ID("Adi Admin"), Date: day(9), ShiftType: shift.TypeOffice})
	require.NoError(t, err)
	assert.False(t, inserted)

	exists, err := repo.ExistsByTypeInRange(ctx, shift.TypeOffice, day(9), day(15))
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := repo.CountInRange(ctx, staff.ID("Adi Admin"), day(9), day(15), day(1))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	deleted, err := repo.DeleteInRange(ctx, day(9), day(15))
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
}

func TestAttendanceRepository_OneOpenRecordPerEmployee(t *testing.T) {
	db := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	staff := seed(t, db)
	budi := staff.ID("Budi")

	clockIn := day(10).Add(6 * time.Hour)
	open := attendance.Attendance{
		EmployeeID: budi,
		ShiftDate:  day(10),
		ShiftType:  shift.TypeMorning,
		ClockIn:    clockIn,
		Status:     attendance.StatusOnTime,
	}
	created, err := repo.Create(ctx, open)
	require.NoError(t, err)

	_, err = repo.Create(ctx, open)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	latest, err := repo.GetLatestOpen(ctx, budi)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, created.ID, latest.ID)

	require.NoError(t, repo.Close(ctx, created.ID, clockIn.Add(8*time.Hour), 60))
	assert.ErrorIs(t, repo.Close(ctx, created.ID, clockIn.Add(9*time.Hour), 0), attendance.ErrNoOpenRecord)

	latest, err = repo.GetLatestOpen(ctx, budi)
	require.NoError(t, err)
	assert.Nil(t, latest)

	records, err := repo.ListByEmployeeAndShiftDate(ctx, budi, day(10))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 60, records[0].EarlyDepartureMinutes)
}

func TestAttendanceRepository_MarkMissed(t *testing.T) {
	db := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	staff := seed(t, db)

	created, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: staff.ID("Citra"),
		ShiftDate:  day(10),
		ShiftType:  shift.TypeEvening,
		ClockIn:    day(10).Add(15 * time.Hour),
		Status:     attendance.StatusOnTime,
	})
	require.NoError(t, err)

	open, err := repo.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)

	require.NoError(t, repo.MarkMissed(ctx, created.ID, day(11).Add(time.Hour)))

	open, err = repo.ListOpen(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)

	records, err := repo.ListByEmployeeAndShiftDate(ctx, staff.ID("Citra"), day(10))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, attendance.StatusMissed, records[0].Status)
}

func TestLeaveRequestRepository_OverlapAndDecision(t *testing.T) {
	db := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveRequestRepository(db)
	staff := seed(t, db)
	budi := staff.ID("Budi")

	created, err := repo.Create(ctx, leave.LeaveRequest{
		EmployeeID: budi,
		Type:       leave.TypeAnnual,
		StartDate:  day(10),
		EndDate:    day(12),
		Status:     leave.StatusPending,
	})
	require.NoError(t, err)

	overlap, err := repo.HasOverlap(ctx, budi, day(12), day(14))
	require.NoError(t, err)
	assert.True(t, overlap)

	overlap, err = repo.HasOverlap(ctx, budi, day(13), day(14))
	require.NoError(t, err)
	assert.False(t, overlap)

	onLeave, err := repo.HasApprovedOn(ctx, budi, day(11))
	require.NoError(t, err)
	assert.False(t, onLeave, "pending leave does not count")

	approver := staff.ID("Adi Admin")
	require.NoError(t, repo.UpdateStatus(ctx, created.ID, leave.StatusApproved, approver, day(5)))
	assert.ErrorIs(t, repo.UpdateStatus(ctx, created.ID, leave.StatusRejected, approver, day(5)), leave.ErrNotPending)

	onLeave, err = repo.HasApprovedOn(ctx, budi, day(11))
	require.NoError(t, err)
	assert.True(t, onLeave)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, employee.RoleEmployee, got.EmployeeRole)
	require.NotNil(t, got.DecidedBy)
	assert.Equal(t, approver, *got.DecidedBy)
}

func TestReportRepository_CountAbsences(t *testing.T) {
	db := NewTestDatabase(t)
	ctx := context.Background()
	schedules := postgresql.NewScheduleRepository(db)
	attendances := postgresql.NewAttendanceRepository(db)
	staff := seed(t, db)
	budi := staff.ID("Budi")

	for _, d := range []int{9, 10, 11, 20} {
		_, err := schedules.UpsertSlot(ctx, schedule.Entry{EmployeeID: budi, Date: day(d), ShiftType: shift.TypeMorning})
		require.NoError(t, err)
	}
	attended, err := schedules.ListByEmployeeAndDate(ctx, budi, day(9))
	require.NoError(t, err)
	require.Len(t, attended, 1)

	clockOut := day(9).Add(15 * time.Hour)
	_, err = attendances.Create(ctx, attendance.Attendance{
		EmployeeID:      budi,
		ScheduleEntryID: &attended[0].ID,
		ShiftDate:       day(9),
		ShiftType:       shift.TypeMorning,
		ClockIn:         day(9).Add(6 * time.Hour),
		ClockOut:        &clockOut,
		Status:          attendance.StatusLate,
		LateMinutes:     20,
	})
	require.NoError(t, err)

	reports := postgresql.NewReportRepository(db)
	absences, err := reports.CountAbsences(ctx, budi, day(1), day(28), day(20))
	require.NoError(t, err)
	assert.Equal(t, 2, absences)

	totals, err := reports.AttendanceTotals(ctx, budi, day(1), day(28))
	require.NoError(t, err)
	assert.Equal(t, 1, totals.Late)
	assert.Equal(t, 20, totals.LateMinutes)
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	db := NewTestDatabase(t)
	ctx := context.Background()
	tx := postgresql.NewTxManager(db)
	employees := postgresql.NewEmployeeRepository(db)
	staff := seed(t, db)
	balances := postgresql.NewLeaveBalanceRepository(db)

	boom := errors.New("boom")
	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := balances.Deduct(ctx, staff.ID("Budi"), leave.TypeSick, 5); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := employees.GetByID(ctx, staff.ID("Budi"))
	require.NoError(t, err)
	assert.Equal(t, employee.MaxSickBalance, got.Balances.Sick)
}

func TestScheduleRepository_LockWeekSerializesTransactions(t *testing.T) {
	db := NewTestDatabase(t)
	ctx := context.Background()
	tx := postgresql.NewTxManager(db)
	repo := postgresql.NewScheduleRepository(db)

	locked := make(chan struct{})
	var released time.Time
	firstDone := make(chan error, 1)
	go func() {
		firstDone <- tx.WithinTx(ctx, func(ctx context.Context) error {
			if err := repo.LockWeek(ctx, day(9)); err != nil {
				return err
			}
			close(locked)
			time.Sleep(300 * time.Millisecond)
			released = time.Now()
			return nil
		})
	}()

	<-locked
	var acquired time.Time
	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := repo.LockWeek(ctx, day(9)); err != nil {
			return err
		}
		acquired = time.Now()
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, <-firstDone)
	assert.False(t, acquired.Before(released), "second transaction must wait for the first to commit")
}

func TestReportRepository_DailyFigures(t *testing.T) {
	db := NewTestDatabase(t)
	ctx := context.Background()
	schedules := postgresql.NewScheduleRepository(db)
	attendances := postgresql.NewAttendanceRepository(db)
	leaves := postgresql.NewLeaveRequestRepository(db)
	staff := seed(t, db)

	budi, err := schedules.UpsertSlot(ctx, schedule.Entry{EmployeeID: staff.ID("Budi"), Date: day(10), ShiftType: shift.TypeMorning})
	require.NoError(t, err)
	_, err = schedules.UpsertSlot(ctx, schedule.Entry{EmployeeID: staff.ID("Citra"), Date: day(10), ShiftType: shift.TypeEvening})
	require.NoError(t, err)

	clockOut := day(10).Add(15 * time.Hour)
	_, err = attendances.Create(ctx, attendance.Attendance{
		EmployeeID:      staff.ID("Budi"),
		ScheduleEntryID: &budi.ID,
		ShiftDate:       day(10),
		ShiftType:       shift.TypeMorning,
		ClockIn:         day(10).Add(6*time.Hour + 20*time.Minute),
		ClockOut:        &clockOut,
		Status:          attendance.StatusLate,
		LateMinutes:     20,
	})
	require.NoError(t, err)

	_, err = leaves.Create(ctx, leave.LeaveRequest{
		EmployeeID: staff.ID("Dewi"),
		Type:       leave.TypeSick,
		StartDate:  day(12),
		EndDate:    day(12),
		Status:     leave.StatusPending,
	})
	require.NoError(t, err)

	reports := postgresql.NewReportRepository(db)
	totals, err := reports.DailyTotals(ctx, day(10))
	require.NoError(t, err)
	assert.Equal(t, 2, totals.Scheduled)
	assert.Equal(t, 1, totals.Present)
	assert.Equal(t, 1, totals.Late)

	unattended, err := reports.UnattendedEntries(ctx, day(10))
	require.NoError(t, err)
	require.Len(t, unattended, 1)
	assert.Equal(t, "Citra", unattended[0].EmployeeName)
	assert.Equal(t, shift.TypeEvening, unattended[0].ShiftType)

	pending, err := reports.CountPendingLeaveRequests(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)
}
