package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/database"
)

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

const scheduleSelect = `
	SELECT s.id, s.employee_id, s.shift_date, s.shift_type, s.created_at, e.name
	FROM shift_schedules s
	INNER JOIN employees e ON e.id = s.employee_id
`

func (r *scheduleRepositoryImpl) list(ctx context.Context, where string, args ...interface{}) ([]schedule.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := scheduleSelect + where + ` ORDER BY s.shift_date, s.shift_type, e.name`
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	entries := make([]schedule.Entry, 0)
	for rows.Next() {
		var e schedule.Entry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Date, &e.ShiftType, &e.CreatedAt, &e.EmployeeName); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListByEmployeeAndDate implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]schedule.Entry, error) {
	return r.list(ctx, `WHERE s.employee_id = $1 AND s.shift_date = $2`, employeeID, date)
}

// ListByEmployeeInRange implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ListByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) ([]schedule.Entry, error) {
	return r.list(ctx, `WHERE s.employee_id = $1 AND s.shift_date BETWEEN $2 AND $3`, employeeID, from, to)
}

// ListInRange implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ListInRange(ctx context.Context, from, to time.Time) ([]schedule.Entry, error) {
	return r.list(ctx, `WHERE s.shift_date BETWEEN $1 AND $2`, from, to)
}

// CountInRange implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) CountInRange(ctx context.Context, employeeID string, from, to, exclude time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM shift_schedules
		WHERE employee_id = $1 AND shift_date BETWEEN $2 AND $3 AND shift_date <> $4
	`
	var count int
	if err := q.QueryRow(ctx, query, employeeID, from, to, exclude).Scan(&count); err != nil {
		return 0, fmt.Errorf("count schedules: %w", err)
	}
	return count, nil
}

// UpsertSlot implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) UpsertSlot(ctx context.Context, entry schedule.Entry) (schedule.Entry, error) {
	q := GetQuerier(ctx, r.db)

	// The displaced occupant's attendance loses its link through ON DELETE SET NULL.
	_, err := q.Exec(ctx, `
		DELETE FROM shift_schedules
		WHERE shift_date = $1 AND shift_type = $2 AND employee_id <> $3
	`, entry.Date, entry.ShiftType, entry.EmployeeID)
	if err != nil {
		return schedule.Entry{}, fmt.Errorf("clear slot: %w", err)
	}

	query := `
		INSERT INTO shift_schedules (employee_id, shift_date, shift_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_id, shift_date, shift_type) DO UPDATE SET shift_type = EXCLUDED.shift_type
		RETURNING id, created_at, (SELECT name FROM employees WHERE id = $1)
	`
	err = q.QueryRow(ctx, query, entry.EmployeeID, entry.Date, entry.ShiftType).
		Scan(&entry.ID, &entry.CreatedAt, &entry.EmployeeName)
	if err != nil {
		return schedule.Entry{}, fmt.Errorf("upsert slot: %w", err)
	}
	return entry, nil
}

// CreateIfAbsent implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) CreateIfAbsent(ctx context.Context, entry schedule.Entry) (bool, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		INSERT INTO shift_schedules (employee_id, shift_date, shift_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_id, shift_date, shift_type) DO NOTHING
	`, entry.EmployeeID, entry.Date, entry.ShiftType)
	if err != nil {
		return false, fmt.Errorf("insert schedule: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ExistsByTypeInRange implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ExistsByTypeInRange(ctx context.Context, shiftType shift.Type, from, to time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM shift_schedules
			WHERE shift_type = $1 AND shift_date BETWEEN $2 AND $3
		)
	`, shiftType, from, to).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check %s schedules: %w", shiftType, err)
	}
	return exists, nil
}

// DeleteByEmployeeInRange implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) DeleteByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		DELETE FROM shift_schedules
		WHERE employee_id = $1 AND shift_date BETWEEN $2 AND $3
	`, employeeID, from, to)
	if err != nil {
		return 0, fmt.Errorf("delete schedules of %s: %w", employeeID, err)
	}
	return int(tag.RowsAffected()), nil
}

// DeleteInRange implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) DeleteInRange(ctx context.Context, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shift_schedules WHERE shift_date BETWEEN $1 AND $2`, from, to)
	if err != nil {
		return 0, fmt.Errorf("delete schedules: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// LockWeek implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) LockWeek(ctx context.Context, monday time.Time) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "schedule-week:"+clock.DateKey(monday))
	if err != nil {
		return fmt.Errorf("lock week: %w", err)
	}
	return nil
}
