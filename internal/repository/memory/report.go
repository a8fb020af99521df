package memory

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/clock"
)

type reportRepository struct {
	s *Store
}

func NewReportRepository(s *Store) report.ReportRepository {
	return &reportRepository{s: s}
}

func (r *reportRepository) CountAbsences(ctx context.Context, employeeID string, from, to, today time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	attended := make(map[string]bool)
	for _, a := range r.s.attendances {
		if a.ScheduleEntryID != nil {
			attended[*a.ScheduleEntryID] = true
		}
	}

	todayKey := clock.DateKey(today)
	count := 0
	for _, e := range r.s.schedules {
		if e.EmployeeID != employeeID || !inRange(e.Date, from, to) {
			continue
		}
		if clock.DateKey(e.Date) < todayKey && !attended[e.ID] {
			count++
		}
	}
	return count, nil
}

func (r *reportRepository) AttendanceTotals(ctx context.Context, employeeID string, from, to time.Time) (report.Totals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var t report.Totals
	for _, a := range r.s.attendances {
		if a.EmployeeID != employeeID || !inRange(a.ShiftDate, from, to) {
			continue
		}
		switch a.Status {
		case attendance.StatusOnTime:
			t.OnTime++
		case attendance.StatusLate:
			t.Late++
			t.LateMinutes += a.LateMinutes
		}
		if a.EarlyDepartureMinutes > 0 {
			t.EarlyDepartureCount++
			t.EarlyDepartureMinutes += a.EarlyDepartureMinutes
		}
	}
	return t, nil
}

func (r *reportRepository) DailyTotals(ctx context.Context, date time.Time) (report.DailyTotals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	key := clock.DateKey(date)
	scheduled := make(map[string]bool)
	for _, e := range r.s.schedules {
		if clock.DateKey(e.Date) == key {
			scheduled[e.EmployeeID] = true
		}
	}

	present := make(map[string]bool)
	late := make(map[string]bool)
	for _, a := range r.s.attendances {
		if clock.DateKey(a.ShiftDate) != key || a.Status == attendance.StatusMissed {
			continue
		}
		present[a.EmployeeID] = true
		if a.Status == attendance.StatusLate {
			late[a.EmployeeID] = true
		}
	}

	return report.DailyTotals{
		Scheduled: len(scheduled),
		Present:   len(present),
		Late:      len(late),
	}, nil
}

func (r *reportRepository) UnattendedEntries(ctx context.Context, date time.Time) ([]schedule.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	attended := make(map[string]bool)
	for _, a := range r.s.attendances {
		if a.ScheduleEntryID != nil {
			attended[*a.ScheduleEntryID] = true
		}
	}

	key := clock.DateKey(date)
	entries := make([]schedule.Entry, 0)
	for _, e := range r.s.schedules {
		if clock.DateKey(e.Date) != key || attended[e.ID] {
			continue
		}
		if emp, ok := r.s.employees[e.EmployeeID]; ok {
			e.EmployeeName = emp.Name
		}
		entries = append(entries, e)
	}
	sortEntries(entries)
	return entries, nil
}

func (r *reportRepository) CountPendingLeaveRequests(ctx context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, req := range r.s.leaveRequests {
		if req.Status == leave.StatusPending {
			count++
		}
	}
	return count, nil
}
