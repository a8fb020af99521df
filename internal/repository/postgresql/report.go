package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// CountAbsences implements report.ReportRepository.
func (r *reportRepositoryImpl) CountAbsences(ctx context.Context, employeeID string, from, to, today time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM shift_schedules s
		WHERE s.employee_id = $1
			AND s.shift_date BETWEEN $2 AND $3
			AND s.shift_date < $4
			AND NOT EXISTS (SELECT 1 FROM attendances a WHERE a.schedule_id = s.id)
	`
	var count int
	if err := q.QueryRow(ctx, query, employeeID, from, to, today).Scan(&count); err != nil {
		return 0, fmt.Errorf("count absences: %w", err)
	}
	return count, nil
}

// AttendanceTotals implements report.ReportRepository.
func (r *reportRepositoryImpl) AttendanceTotals(ctx context.Context, employeeID string, from, to time.Time) (report.Totals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'on_time'),
			COUNT(*) FILTER (WHERE status = 'late'),
			COALESCE(SUM(late_minutes) FILTER (WHERE status = 'late'), 0),
			COUNT(*) FILTER (WHERE early_departure_minutes > 0),
			COALESCE(SUM(early_departure_minutes), 0)
		FROM attendances
		WHERE employee_id = $1 AND shift_date BETWEEN $2 AND $3
	`
	var t report.Totals
	err := q.QueryRow(ctx, query, employeeID, from, to).Scan(
		&t.OnTime,
		&t.Late,
		&t.LateMinutes,
		&t.EarlyDepartureCount,
		&t.EarlyDepartureMinutes,
	)
	if err != nil {
		return report.Totals{}, fmt.Errorf("attendance totals: %w", err)
	}
	return t, nil
}

// DailyTotals implements report.ReportRepository.
func (r *reportRepositoryImpl) DailyTotals(ctx context.Context, date time.Time) (report.DailyTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(DISTINCT employee_id) FROM shift_schedules WHERE shift_date = $1),
			COUNT(DISTINCT employee_id) FILTER (WHERE status <> 'missed'),
			COUNT(DISTINCT employee_id) FILTER (WHERE status = 'late')
		FROM attendances
		WHERE shift_date = $1
	`
	var t report.DailyTotals
	if err := q.QueryRow(ctx, query, date).Scan(&t.Scheduled, &t.Present, &t.Late); err != nil {
		return report.DailyTotals{}, fmt.Errorf("daily totals: %w", err)
	}
	return t, nil
}

// UnattendedEntries implements report.ReportRepository.
func (r *reportRepositoryImpl) UnattendedEntries(ctx context.Context, date time.Time) ([]schedule.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.employee_id, s.shift_date, s.shift_type, s.created_at, e.name
		FROM shift_schedules s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.shift_date = $1
			AND NOT EXISTS (SELECT 1 FROM attendances a WHERE a.schedule_id = s.id)
		ORDER BY s.shift_type, e.name
	`
	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("list unattended entries: %w", err)
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

// CountPendingLeaveRequests implements report.ReportRepository.
func (r *reportRepositoryImpl) CountPendingLeaveRequests(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests WHERE status = 0`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pending leave requests: %w", err)
	}
	return count, nil
}
