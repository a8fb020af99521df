package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	tx      database.TxManager
	catalog *shift.Catalog
	clock   clock.Clock
	attendance.AttendanceRepository
	employee.EmployeeRepository
	schedule.ScheduleRepository
	leave.LeaveRequestRepository
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

func (a *AttendanceServiceImpl) toResponse(rec attendance.Attendance) attendance.AttendanceResponse {
	loc := a.catalog.Location()
	var clockOut *string
	if rec.ClockOut != nil {
		local := rec.ClockOut.In(loc)
		clockOut = timePtrToString(&local)
	}
	return attendance.AttendanceResponse{
		ID:                    rec.ID,
		EmployeeID:            rec.EmployeeID,
		ScheduleEntryID:       rec.ScheduleEntryID,
		ShiftDate:             clock.DateKey(rec.ShiftDate),
		ShiftType:             rec.ShiftType,
		ClockIn:               rec.ClockIn.In(loc).Format(time.RFC3339),
		ClockOut:              clockOut,
		Status:                rec.Status,
		LateMinutes:           rec.LateMinutes,
		EarlyDepartureMinutes: rec.EarlyDepartureMinutes,
	}
}

// now returns the current instant and its calendar day in the shift location.
func (a *AttendanceServiceImpl) now() (time.Time, time.Time) {
	now := a.clock.Now().In(a.catalog.Location())
	return now, clock.DateOf(now)
}

// todaysShift resolves the shift the employee works today. Admins without an
// explicit entry get the office shift on weekdays. The returned entry ID is nil
// for such synthesized shifts.
func (a *AttendanceServiceImpl) todaysShift(ctx context.Context, emp employee.Employee, today, now time.Time) (shift.Window, *string, error) {
	entries, err := a.ScheduleRepository.ListByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		return shift.Window{}, nil, fmt.Errorf("failed to list today's schedule: %w", err)
	}

	if len(entries) == 0 {
		if emp.Role == employee.RoleAdmin && clock.IsWeekday(today) {
			w, err := a.catalog.Window(shift.TypeOffice, today)
			return w, nil, err
		}
		return shift.Window{}, nil, attendance.ErrNoSchedule
	}

	// Prefer the first shift still accepting clock-ins.
	var (
		window  shift.Window
		entryID string
	)
	for _, e := range entries {
		w, err := a.catalog.Window(e.ShiftType, today)
		if err != nil {
			return shift.Window{}, nil, err
		}
		window, entryID = w, e.ID
		if !w.IsClosed(now) {
			break
		}
	}
	return window, &entryID, nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	now, today := a.now()

	var created attendance.Attendance
	err := a.tx.WithinTx(ctx, func(ctx context.Context) error {
		emp, err := a.EmployeeRepository.GetByIDForUpdate(ctx, req.EmployeeID)
		if err != nil {
			return err
		}

		onLeave, err := a.LeaveRequestRepository.HasApprovedOn(ctx, emp.ID, today)
		if err != nil {
			return fmt.Errorf("failed to check approved leave: %w", err)
		}
		if onLeave {
			return attendance.ErrOnLeave
		}

		window, entryID, err := a.todaysShift(ctx, emp, today, now)
		if err != nil {
			return err
		}
		if window.IsTooEarly(now) {
			return attendance.ErrTooEarly
		}
		if window.IsClosed(now) {
			return attendance.ErrWindowClosed
		}

		open, err := a.AttendanceRepository.GetLatestOpen(ctx, emp.ID)
		if err != nil {
			return fmt.Errorf("failed to get open attendance: %w", err)
		}
		if open != nil {
			openWindow, err := a.catalog.Window(open.ShiftType, open.ShiftDate)
			if err != nil {
				return err
			}
			if !openWindow.IsClosed(now) {
				return attendance.ErrAlreadyClockedIn
			}
			// Nobody clocked out before the deadline; close it as missed.
			if err := a.AttendanceRepository.MarkMissed(ctx, open.ID, openWindow.ClosesAt()); err != nil {
				return fmt.Errorf("failed to close expired attendance: %w", err)
			}
		}

		status := attendance.StatusOnTime
		late, lateMinutes := window.Lateness(now)
		if late {
			status = attendance.StatusLate
		}

		created, err = a.AttendanceRepository.Create(ctx, attendance.Attendance{
			EmployeeID:      emp.ID,
			ScheduleEntryID: entryID,
			ShiftDate:       today,
			ShiftType:       window.Type,
			ClockIn:         now,
			Status:          status,
			LateMinutes:     lateMinutes,
		})
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return a.toResponse(created), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.ClockOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockOutResponse{}, err
	}
	now, _ := a.now()

	var (
		closed    attendance.Attendance
		earlyExit bool
	)
	err := a.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := a.EmployeeRepository.GetByIDForUpdate(ctx, req.EmployeeID); err != nil {
			return err
		}

		// The open record may belong to yesterday's evening shift.
		open, err := a.AttendanceRepository.GetLatestOpen(ctx, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to get open attendance: %w", err)
		}
		if open == nil {
			return attendance.ErrNoOpenRecord
		}

		window, err := a.catalog.Window(open.ShiftType, open.ShiftDate)
		if err != nil {
			return err
		}
		if window.IsClosed(now) {
			return attendance.ErrWindowClosed
		}

		var earlyMinutes int
		earlyExit, earlyMinutes = window.EarlyDeparture(now)
		if err := a.AttendanceRepository.Close(ctx, open.ID, now, earlyMinutes); err != nil {
			return err
		}

		closed = *open
		closed.ClockOut = &now
		closed.EarlyDepartureMinutes = earlyMinutes
		return nil
	})
	if err != nil {
		return attendance.ClockOutResponse{}, err
	}

	return attendance.ClockOutResponse{
		AttendanceResponse: a.toResponse(closed),
		EarlyExit:          earlyExit,
	}, nil
}

// Status implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Status(ctx context.Context, employeeID string) (attendance.StatusResponse, error) {
	now, today := a.now()

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	resp := attendance.StatusResponse{
		EmployeeID: emp.ID,
		Date:       clock.DateKey(today),
		State:      attendance.NotClockedIn,
	}

	open, err := a.AttendanceRepository.GetLatestOpen(ctx, emp.ID)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to get open attendance: %w", err)
	}

	switch {
	case open != nil:
		resp.State = attendance.ClockedIn
		rec := a.toResponse(*open)
		resp.Attendance = &rec
		if w, err := a.catalog.Window(open.ShiftType, open.ShiftDate); err == nil {
			resp.Shift = a.windowResponse(w)
		}
	default:
		records, err := a.AttendanceRepository.ListByEmployeeAndShiftDate(ctx, emp.ID, today)
		if err != nil {
			return attendance.StatusResponse{}, fmt.Errorf("failed to list today's attendance: %w", err)
		}
		if len(records) > 0 {
			resp.State = attendance.ClockedOut
			rec := a.toResponse(records[len(records)-1])
			resp.Attendance = &rec
		}
		if w, _, err := a.todaysShift(ctx, emp, today, now); err == nil {
			resp.Shift = a.windowResponse(w)
		}
	}

	resp.StateName = resp.State.String()
	return resp, nil
}

// CloseExpired implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CloseExpired(ctx context.Context) (int, error) {
	now, _ := a.now()

	var closed int
	err := a.tx.WithinTx(ctx, func(ctx context.Context) error {
		closed = 0

		open, err := a.AttendanceRepository.ListOpen(ctx)
		if err != nil {
			return fmt.Errorf("failed to list open attendance: %w", err)
		}

		for _, rec := range open {
			w, err := a.catalog.Window(rec.ShiftType, rec.ShiftDate)
			if err != nil {
				return err
			}
			if !w.IsClosed(now) {
				continue
			}
			if err := a.AttendanceRepository.MarkMissed(ctx, rec.ID, w.ClosesAt()); err != nil {
				return fmt.Errorf("failed to close expired attendance %s: %w", rec.ID, err)
			}
			closed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return closed, nil
}

func (a *AttendanceServiceImpl) windowResponse(w shift.Window) *attendance.ShiftWindowResponse {
	return &attendance.ShiftWindowResponse{
		ShiftType: w.Type,
		StartsAt:  w.Start.Format(time.RFC3339),
		EndsAt:    w.End.Format(time.RFC3339),
	}
}

func NewAttendanceService(
	tx database.TxManager,
	catalog *shift.Catalog,
	clk clock.Clock,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	scheduleRepo schedule.ScheduleRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:                     tx,
		catalog:                catalog,
		clock:                  clk,
		AttendanceRepository:   attendanceRepo,
		EmployeeRepository:     employeeRepo,
		ScheduleRepository:     scheduleRepo,
		LeaveRequestRepository: leaveRequestRepo,
	}
}
