package memory

import (
	"context"
	"slices"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/clock"
	"github.com/google/uuid"
)

type attendanceRepository struct {
	s *Store
}

func NewAttendanceRepository(s *Store) attendance.AttendanceRepository {
	return &attendanceRepository{s: s}
}

func (r *attendanceRepository) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.attendances {
		if a.EmployeeID == record.EmployeeID && a.IsOpen() {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
	}

	record.ID = uuid.NewString()
	now := time.Now()
	record.CreatedAt, record.UpdatedAt = now, now
	r.s.attendances[record.ID] = record
	return record, nil
}

func (r *attendanceRepository) GetLatestOpen(ctx context.Context, employeeID string) (*attendance.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var latest *attendance.Attendance
	for _, a := range r.s.attendances {
		if a.EmployeeID != employeeID || !a.IsOpen() {
			continue
		}
		if latest == nil || a.ClockIn.After(latest.ClockIn) {
			found := a
			latest = &found
		}
	}
	return latest, nil
}

func (r *attendanceRepository) Close(ctx context.Context, id string, clockOut time.Time, earlyDepartureMinutes int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.attendances[id]
	if !ok || !a.IsOpen() {
		return attendance.ErrNoOpenRecord
	}
	a.ClockOut = &clockOut
	a.EarlyDepartureMinutes = earlyDepartureMinutes
	a.UpdatedAt = time.Now()
	r.s.attendances[id] = a
	return nil
}

func (r *attendanceRepository) MarkMissed(ctx context.Context, id string, closedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.attendances[id]
	if !ok || !a.IsOpen() {
		return attendance.ErrNoOpenRecord
	}
	a.ClockOut = &closedAt
	a.Status = attendance.StatusMissed
	a.UpdatedAt = time.Now()
	r.s.attendances[id] = a
	return nil
}

func (r *attendanceRepository) ListByEmployeeAndShiftDate(ctx context.Context, employeeID string, date time.Time) ([]attendance.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]attendance.Attendance, 0)
	for _, a := range r.s.attendances {
		if a.EmployeeID == employeeID && clock.SameDay(a.ShiftDate, date) {
			result = append(result, a)
		}
	}
	slices.SortFunc(result, func(a, b attendance.Attendance) int {
		return a.ClockIn.Compare(b.ClockIn)
	})
	return result, nil
}

func (r *attendanceRepository) ListOpen(ctx context.Context) ([]attendance.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]attendance.Attendance, 0)
	for _, a := range r.s.attendances {
		if a.IsOpen() {
			result = append(result, a)
		}
	}
	slices.SortFunc(result, func(a, b attendance.Attendance) int {
		return a.ClockIn.Compare(b.ClockIn)
	})
	return result, nil
}
