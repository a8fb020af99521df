package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/database"
)

type scheduleServiceImpl struct {
	tx               database.TxManager
	catalog          *shift.Catalog
	clock            clock.Clock
	weeklyLimit      int
	scheduleRepo     schedule.ScheduleRepository
	employeeRepo     employee.EmployeeRepository
	leaveRequestRepo leave.LeaveRequestRepository
}

// Assign implements schedule.ScheduleService.
func (s *scheduleServiceImpl) Assign(ctx context.Context, req schedule.AssignShiftRequest) (schedule.WeekSnapshot, error) {
	if err := req.Validate(); err != nil {
		return schedule.WeekSnapshot{}, err
	}

	shiftType, err := shift.ParseType(req.ShiftType)
	if err != nil {
		return schedule.WeekSnapshot{}, err
	}
	date, err := clock.ParseDate(req.Date, s.catalog.Location())
	if err != nil {
		return schedule.WeekSnapshot{}, fmt.Errorf("failed to parse date: %w", err)
	}
	monday, sunday := clock.WeekBounds(date)

	var snapshot schedule.WeekSnapshot
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByIDForUpdate(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if emp.Role != employee.RoleEmployee {
			return schedule.ErrWrongRole
		}

		sameDay, err := s.scheduleRepo.ListByEmployeeAndDate(ctx, emp.ID, date)
		if err != nil {
			return fmt.Errorf("failed to list schedules on date: %w", err)
		}
		for _, e := range sameDay {
			if e.ShiftType != shiftType {
				return schedule.ErrSameDayConflict
			}
		}

		count, err := s.scheduleRepo.CountInRange(ctx, emp.ID, monday, sunday, date)
		if err != nil {
			return fmt.Errorf("failed to count weekly schedules: %w", err)
		}
		if count >= s.weeklyLimit {
			return schedule.ErrWeekLimit
		}

		onLeave, err := s.leaveRequestRepo.HasApprovedOn(ctx, emp.ID, date)
		if err != nil {
			return fmt.Errorf("failed to check approved leave: %w", err)
		}
		if onLeave {
			return schedule.ErrOnLeave
		}

		if _, err := s.scheduleRepo.UpsertSlot(ctx, schedule.Entry{
			EmployeeID: emp.ID,
			Date:       date,
			ShiftType:  shiftType,
		}); err != nil {
			return fmt.Errorf("failed to assign slot: %w", err)
		}

		if err := s.ensureOfficeShifts(ctx, monday); err != nil {
			return err
		}

		snapshot, err = s.snapshot(ctx, monday, sunday)
		return err
	})
	if err != nil {
		return schedule.WeekSnapshot{}, err
	}

	return snapshot, nil
}

// ensureOfficeShifts generates Monday to Friday office entries for every
// admin the first time anything is assigned in the week.
func (s *scheduleServiceImpl) ensureOfficeShifts(ctx context.Context, monday time.Time) error {
	if err := s.scheduleRepo.LockWeek(ctx, monday); err != nil {
		return err
	}

	friday := monday.AddDate(0, 0, 4)
	exists, err := s.scheduleRepo.ExistsByTypeInRange(ctx, shift.TypeOffice, monday, friday)
	if err != nil {
		return fmt.Errorf("failed to check office shifts: %w", err)
	}
	if exists {
		return nil
	}

	admins, err := s.employeeRepo.ListByRoles(ctx, employee.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to list admins: %w", err)
	}

	created := 0
	for _, admin := range admins {
		for day := monday; !day.After(friday); day = day.AddDate(0, 0, 1) {
			onLeave, err := s.leaveRequestRepo.HasApprovedOn(ctx, admin.ID, day)
			if err != nil {
				return fmt.Errorf("failed to check approved leave: %w", err)
			}
			if onLeave {
				continue
			}

			ok, err := s.scheduleRepo.CreateIfAbsent(ctx, schedule.Entry{
				EmployeeID: admin.ID,
				Date:       day,
				ShiftType:  shift.TypeOffice,
			})
			if err != nil {
				return fmt.Errorf("failed to create office shift: %w", err)
			}
			if ok {
				created++
			}
		}
	}

	slog.Info("Generated office shifts", "week_start", clock.DateKey(monday), "admins", len(admins), "created", created)
	return nil
}

func (s *scheduleServiceImpl) snapshot(ctx context.Context, monday, sunday time.Time) (schedule.WeekSnapshot, error) {
	entries, err := s.scheduleRepo.ListInRange(ctx, monday, sunday)
	if err != nil {
		return schedule.WeekSnapshot{}, fmt.Errorf("failed to list week schedules: %w", err)
	}

	days := make([]schedule.DaySlots, 0, 7)
	index := make(map[string]int, 7)
	for day := monday; !day.After(sunday); day = day.AddDate(0, 0, 1) {
		index[clock.DateKey(day)] = len(days)
		days = append(days, schedule.DaySlots{
			Date:    clock.DateKey(day),
			Weekday: day.Weekday().String(),
			Office:  []schedule.Occupant{},
		})
	}

	for _, e := range entries {
		i, ok := index[clock.DateKey(e.Date)]
		if !ok {
			continue
		}
		occupant := schedule.Occupant{EmployeeID: e.EmployeeID, Name: e.EmployeeName}
		switch e.ShiftType {
		case shift.TypeMorning:
			days[i].Morning = &occupant
		case shift.TypeEvening:
			days[i].Evening = &occupant
		case shift.TypeOffice:
			days[i].Office = append(days[i].Office, occupant)
		}
	}

	return schedule.WeekSnapshot{
		WeekStart: clock.DateKey(monday),
		WeekEnd:   clock.DateKey(sunday),
		Days:      days,
	}, nil
}

// weekOf resolves the requested week, defaulting to the current one.
func (s *scheduleServiceImpl) weekOf(req schedule.WeekRequest) (time.Time, time.Time, error) {
	if err := req.Validate(); err != nil {
		return time.Time{}, time.Time{}, err
	}

	date := clock.DateOf(s.clock.Now().In(s.catalog.Location()))
	if req.Date != "" {
		parsed, err := clock.ParseDate(req.Date, s.catalog.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
		date = parsed
	}
	monday, sunday := clock.WeekBounds(date)
	return monday, sunday, nil
}

// Week implements schedule.ScheduleService.
func (s *scheduleServiceImpl) Week(ctx context.Context, req schedule.WeekRequest) (schedule.WeekSnapshot, error) {
	monday, sunday, err := s.weekOf(req)
	if err != nil {
		return schedule.WeekSnapshot{}, err
	}
	return s.snapshot(ctx, monday, sunday)
}

// MyWeek implements schedule.ScheduleService.
func (s *scheduleServiceImpl) MyWeek(ctx context.Context, employeeID string, req schedule.WeekRequest) (schedule.MyWeekResponse, error) {
	monday, sunday, err := s.weekOf(req)
	if err != nil {
		return schedule.MyWeekResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return schedule.MyWeekResponse{}, err
	}

	entries, err := s.scheduleRepo.ListByEmployeeInRange(ctx, emp.ID, monday, sunday)
	if err != nil {
		return schedule.MyWeekResponse{}, fmt.Errorf("failed to list schedules: %w", err)
	}

	shifts := make([]schedule.MyShift, 0, len(entries))
	for _, e := range entries {
		w, err := s.catalog.Window(e.ShiftType, e.Date)
		if err != nil {
			return schedule.MyWeekResponse{}, err
		}
		shifts = append(shifts, schedule.MyShift{
			Date:      clock.DateKey(w.Date),
			Weekday:   w.Date.Weekday().String(),
			ShiftType: e.ShiftType,
			StartsAt:  w.Start.Format(time.RFC3339),
			EndsAt:    w.End.Format(time.RFC3339),
		})
	}

	return schedule.MyWeekResponse{
		EmployeeID: emp.ID,
		WeekStart:  clock.DateKey(monday),
		WeekEnd:    clock.DateKey(sunday),
		Shifts:     shifts,
	}, nil
}

// ResetWeek implements schedule.ScheduleService.
func (s *scheduleServiceImpl) ResetWeek(ctx context.Context, req schedule.WeekRequest) (schedule.ResetWeekResponse, error) {
	monday, sunday, err := s.weekOf(req)
	if err != nil {
		return schedule.ResetWeekResponse{}, err
	}

	var deleted int
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.scheduleRepo.LockWeek(ctx, monday); err != nil {
			return err
		}
		n, err := s.scheduleRepo.DeleteInRange(ctx, monday, sunday)
		deleted = n
		return err
	})
	if err != nil {
		return schedule.ResetWeekResponse{}, fmt.Errorf("failed to reset week: %w", err)
	}

	slog.Info("Reset week schedules", "week_start", clock.DateKey(monday), "deleted", deleted)
	return schedule.ResetWeekResponse{
		WeekStart: clock.DateKey(monday),
		WeekEnd:   clock.DateKey(sunday),
		Deleted:   deleted,
	}, nil
}

func NewScheduleService(
	tx database.TxManager,
	catalog *shift.Catalog,
	clk clock.Clock,
	weeklyLimit int,
	scheduleRepo schedule.ScheduleRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
) schedule.ScheduleService {
	if weeklyLimit <= 0 {
		weeklyLimit = schedule.WeeklyShiftLimit
	}
	return &scheduleServiceImpl{
		tx:               tx,
		catalog:          catalog,
		clock:            clk,
		weeklyLimit:      weeklyLimit,
		scheduleRepo:     scheduleRepo,
		employeeRepo:     employeeRepo,
		leaveRequestRepo: leaveRequestRepo,
	}
}
