package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/clock"
	"github.com/google/uuid"
)

type scheduleRepository struct {
	s *Store
}

func NewScheduleRepository(s *Store) schedule.ScheduleRepository {
	return &scheduleRepository{s: s}
}

func inRange(date, from, to time.Time) bool {
	key := clock.DateKey(date)
	return clock.DateKey(from) <= key && key <= clock.DateKey(to)
}

func sortEntries(entries []schedule.Entry) {
	slices.SortFunc(entries, func(a, b schedule.Entry) int {
		if c := strings.Compare(clock.DateKey(a.Date), clock.DateKey(b.Date)); c != 0 {
			return c
		}
		if c := strings.Compare(string(a.ShiftType), string(b.ShiftType)); c != 0 {
			return c
		}
		return strings.Compare(a.EmployeeName, b.EmployeeName)
	})
}

// withName must run under s.mu.
func (r *scheduleRepository) withName(e schedule.Entry) schedule.Entry {
	if emp, ok := r.s.employees[e.EmployeeID]; ok {
		e.EmployeeName = emp.Name
	}
	return e
}

func (r *scheduleRepository) filter(keep func(schedule.Entry) bool) []schedule.Entry {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]schedule.Entry, 0)
	for _, e := range r.s.schedules {
		if keep(e) {
			result = append(result, r.withName(e))
		}
	}
	sortEntries(result)
	return result
}

func (r *scheduleRepository) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]schedule.Entry, error) {
	return r.filter(func(e schedule.Entry) bool {
		return e.EmployeeID == employeeID && clock.SameDay(e.Date, date)
	}), nil
}

func (r *scheduleRepository) ListByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) ([]schedule.Entry, error) {
	return r.filter(func(e schedule.Entry) bool {
		return e.EmployeeID == employeeID && inRange(e.Date, from, to)
	}), nil
}

func (r *scheduleRepository) ListInRange(ctx context.Context, from, to time.Time) ([]schedule.Entry, error) {
	return r.filter(func(e schedule.Entry) bool {
		return inRange(e.Date, from, to)
	}), nil
}

func (r *scheduleRepository) CountInRange(ctx context.Context, employeeID string, from, to, exclude time.Time) (int, error) {
	entries := r.filter(func(e schedule.Entry) bool {
		return e.EmployeeID == employeeID && inRange(e.Date, from, to) && !clock.SameDay(e.Date, exclude)
	})
	return len(entries), nil
}

func (r *scheduleRepository) UpsertSlot(ctx context.Context, entry schedule.Entry) (schedule.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, e := range r.s.schedules {
		if e.ShiftType != entry.ShiftType || !clock.SameDay(e.Date, entry.Date) {
			continue
		}
		if e.EmployeeID == entry.EmployeeID {
			return r.withName(e), nil
		}
		// Displaced occupant; attendance keeps its shift date and loses the link.
		delete(r.s.schedules, id)
		r.unlinkAttendances(id)
	}

	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()
	r.s.schedules[entry.ID] = entry
	return r.withName(entry), nil
}

func (r *scheduleRepository) CreateIfAbsent(ctx context.Context, entry schedule.Entry) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.schedules {
		if e.EmployeeID == entry.EmployeeID && e.ShiftType == entry.ShiftType && clock.SameDay(e.Date, entry.Date) {
			return false, nil
		}
	}
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()
	r.s.schedules[entry.ID] = entry
	return true, nil
}

func (r *scheduleRepository) ExistsByTypeInRange(ctx context.Context, shiftType shift.Type, from, to time.Time) (bool, error) {
	entries := r.filter(func(e schedule.Entry) bool {
		return e.ShiftType == shiftType && inRange(e.Date, from, to)
	})
	return len(entries) > 0, nil
}

func (r *scheduleRepository) deleteWhere(match func(schedule.Entry) bool) int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	deleted := 0
	for id, e := range r.s.schedules {
		if match(e) {
			delete(r.s.schedules, id)
			r.unlinkAttendances(id)
			deleted++
		}
	}
	return deleted
}

func (r *scheduleRepository) DeleteByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	return r.deleteWhere(func(e schedule.Entry) bool {
		return e.EmployeeID == employeeID && inRange(e.Date, from, to)
	}), nil
}

func (r *scheduleRepository) DeleteInRange(ctx context.Context, from, to time.Time) (int, error) {
	return r.deleteWhere(func(e schedule.Entry) bool {
		return inRange(e.Date, from, to)
	}), nil
}

// LockWeek is a no-op; transactions already run one at a time.
func (r *scheduleRepository) LockWeek(ctx context.Context, monday time.Time) error {
	return nil
}

// unlinkAttendances mirrors ON DELETE SET NULL. Must run under s.mu.
func (r *scheduleRepository) unlinkAttendances(entryID string) {
	for id, a := range r.s.attendances {
		if a.ScheduleEntryID != nil && *a.ScheduleEntryID == entryID {
			a.ScheduleEntryID = nil
			r.s.attendances[id] = a
		}
	}
}
