package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-shift-go/internal/config"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-shift-go/internal/repository/memory"
	"github.com/cmlabs-hris/hris-shift-go/internal/repository/postgresql"
)

// repositories is every store the services need, backed by one driver.
type repositories struct {
	tx           database.TxManager
	employee     employee.EmployeeRepository
	leaveBalance leave.LeaveBalanceRepository
	leaveRequest leave.LeaveRequestRepository
	schedule     schedule.ScheduleRepository
	attendance   attendance.AttendanceRepository
	report       report.ReportRepository
	notification notification.Repository

	close func()
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.Database.Driver {
	case "memory":
		store := memory.NewStore()
		slog.Warn("Using in-memory storage, data is lost on restart")
		return &repositories{
			tx:           store,
			employee:     memory.NewEmployeeRepository(store),
			leaveBalance: memory.NewLeaveBalanceRepository(store),
			leaveRequest: memory.NewLeaveRequestRepository(store),
			schedule:     memory.NewScheduleRepository(store),
			attendance:   memory.NewAttendanceRepository(store),
			report:       memory.NewReportRepository(store),
			notification: memory.NewNotificationRepository(store),
			close:        func() {},
		}, nil

	case "postgres":
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := postgresql.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return &repositories{
			tx:           postgresql.NewTxManager(db),
			employee:     postgresql.NewEmployeeRepository(db),
			leaveBalance: postgresql.NewLeaveBalanceRepository(db),
			leaveRequest: postgresql.NewLeaveRequestRepository(db),
			schedule:     postgresql.NewScheduleRepository(db),
			attendance:   postgresql.NewAttendanceRepository(db),
			report:       postgresql.NewReportRepository(db),
			notification: postgresql.NewNotificationRepository(db),
			close:        db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}
