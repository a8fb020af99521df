package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `id, employee_id, schedule_id, shift_date, shift_type, clock_in, clock_out, status,
	late_minutes, early_departure_minutes, created_at, updated_at`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.ScheduleEntryID,
		&a.ShiftDate,
		&a.ShiftType,
		&a.ClockIn,
		&a.ClockOut,
		&a.Status,
		&a.LateMinutes,
		&a.EarlyDepartureMinutes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, schedule_id, shift_date, shift_type, clock_in, status, late_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		record.EmployeeID,
		record.ScheduleEntryID,
		record.ShiftDate,
		record.ShiftType,
		record.ClockIn,
		record.Status,
		record.LateMinutes,
	))
	if err != nil {
		if database.HasCode(err, database.CodeUniqueViolation) {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Attendance{}, fmt.Errorf("insert attendance: %w", err)
	}
	return created, nil
}

// GetLatestOpen implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetLatestOpen(ctx context.Context, employeeID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND clock_out IS NULL
		ORDER BY clock_in DESC
		LIMIT 1
		FOR UPDATE
	`
	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open attendance: %w", err)
	}
	return &a, nil
}

// Close implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Close(ctx context.Context, id string, clockOut time.Time, earlyDepartureMinutes int) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE attendances
		SET clock_out = $2, early_departure_minutes = $3, updated_at = NOW()
		WHERE id = $1 AND clock_out IS NULL
	`, id, clockOut, earlyDepartureMinutes)
	if err != nil {
		return fmt.Errorf("close attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrNoOpenRecord
	}
	return nil
}

// MarkMissed implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) MarkMissed(ctx context.Context, id string, closedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE attendances
		SET clock_out = $2, status = $3, updated_at = NOW()
		WHERE id = $1 AND clock_out IS NULL
	`, id, closedAt, attendance.StatusMissed)
	if err != nil {
		return fmt.Errorf("mark attendance missed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrNoOpenRecord
	}
	return nil
}

// ListByEmployeeAndShiftDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployeeAndShiftDate(ctx context.Context, employeeID string, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendances
		WHERE employee_id = $1 AND shift_date = $2
		ORDER BY clock_in
	`, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// ListOpen implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListOpen(ctx context.Context) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendances
		WHERE clock_out IS NULL
		ORDER BY clock_in
		FOR UPDATE
	`)
	if err != nil {
		return nil, fmt.Errorf("list open attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
