package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/attendance"
)

const closeExpiredInterval = 15 * time.Minute

// AttendanceJobs sweeps attendance records nobody clocked out of.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService) *AttendanceJobs {
	return &AttendanceJobs{attendanceService: attendanceService}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("close_expired_attendances", closeExpiredInterval, time.Minute, j.CloseExpiredAttendances)
}

// CloseExpiredAttendances marks open records past their clock-out window as missed.
func (j *AttendanceJobs) CloseExpiredAttendances(ctx context.Context) error {
	closed, err := j.attendanceService.CloseExpired(ctx)
	if err != nil {
		return err
	}
	if closed > 0 {
		slog.Info("Cron: closed expired attendances", "count", closed)
	}
	return nil
}
