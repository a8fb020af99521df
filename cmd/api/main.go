package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/config"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/hris-shift-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/email"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/sse"
	attendanceService "github.com/cmlabs-hris/hris-shift-go/internal/service/attendance"
	leaveService "github.com/cmlabs-hris/hris-shift-go/internal/service/leave"
	notificationService "github.com/cmlabs-hris/hris-shift-go/internal/service/notification"
	reportService "github.com/cmlabs-hris/hris-shift-go/internal/service/report"
	scheduleService "github.com/cmlabs-hris/hris-shift-go/internal/service/schedule"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}
	setupLogger(cfg.App)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "serve":
		err = serve(ctx, cfg)
	case "seed":
		err = seed(ctx, cfg)
	case "token":
		if len(os.Args) < 3 {
			err = errors.New("usage: api token <employee_id>")
			break
		}
		err = token(ctx, cfg, os.Args[2])
	default:
		err = fmt.Errorf("unknown command %q (serve, seed, token)", cmd)
	}
	if err != nil {
		slog.Error("Command failed", "command", cmd, "error", err)
		stop()
		os.Exit(1)
	}
}

func setupLogger(app config.AppConfig) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(app.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if app.Env == "development" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func serve(ctx context.Context, cfg *config.Config) error {
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.close()

	loc := cfg.Location()
	clk := clock.New(loc)
	catalog := shift.NewCatalog(shift.Policy{
		LateMargin:         cfg.Policy.LateMargin,
		EarlyArrivalMargin: cfg.Policy.EarlyArrivalMargin,
		ClockOutGrace:      cfg.Policy.ClockOutGrace,
	}, loc, shift.DefaultDefinitions(cfg.Policy.EarlyExitGrace)...)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return fmt.Errorf("failed to initialize email service: %w", err)
	}

	hub := sse.NewHub()
	notifSvc := notificationService.NewNotificationService(repos.notification, hub, notificationService.Config{})
	leaveNotifier := notificationService.NewLeaveNotifier(notifSvc, emailService, repos.employee)

	attendanceSvc := attendanceService.NewAttendanceService(
		repos.tx,
		catalog,
		clk,
		repos.attendance,
		repos.employee,
		repos.schedule,
		repos.leaveRequest,
	)
	leaveSvc := leaveService.NewLeaveService(
		repos.tx,
		clk,
		leave.Policy{
			AnnualNoticeDays: cfg.Policy.AnnualNoticeDays,
			AnnualMaxDays:    cfg.Policy.AnnualMaxDays,
		},
		leaveNotifier,
		repos.leaveRequest,
		repos.leaveBalance,
		repos.employee,
		repos.schedule,
	)
	scheduleSvc := scheduleService.NewScheduleService(
		repos.tx,
		catalog,
		clk,
		cfg.Policy.WeeklyShiftLimit,
		repos.schedule,
		repos.employee,
		repos.leaveRequest,
	)
	reportSvc := reportService.NewReportService(clk, catalog, repos.report, repos.employee)

	if cfg.Database.Driver == "memory" {
		if err := seedDemoStaff(ctx, repos, JWTService); err != nil {
			return err
		}
	}

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler)

	router := appHTTP.NewRouter(
		cfg.App,
		JWTService,
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewScheduleHandler(scheduleSvc),
		appHTTP.NewReportHandler(reportSvc),
		appHTTP.NewNotificationHandler(notifSvc, JWTService),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		scheduler.Start(gctx)
		<-gctx.Done()

		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := server.Shutdown(shutdownCtx)

		scheduler.Stop()
		leaveNotifier.Wait()
		notifSvc.Stop()
		return err
	})

	return g.Wait()
}

// seedDemoStaff fills an empty in-memory store and logs a token per member.
func seedDemoStaff(ctx context.Context, repos *repositories, JWTService jwt.Service) error {
	staff, err := fixtures.SeedStaff(ctx, repos.employee)
	if err != nil {
		return err
	}
	for _, member := range fixtures.DefaultStaff() {
		emp := staff[member.Name]
		accessToken, _, err := JWTService.GenerateAccessToken(emp.ID, emp.Role)
		if err != nil {
			return fmt.Errorf("failed to issue demo token: %w", err)
		}
		slog.Info("Demo staff", "name", emp.Name, "role", emp.Role, "employee_id", emp.ID, "token", accessToken)
	}
	return nil
}

// seed writes the demo roster into the configured database.
func seed(ctx context.Context, cfg *config.Config) error {
	if cfg.Database.Driver == "memory" {
		return errors.New("seed needs a persistent database; the memory driver seeds itself on serve")
	}
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.close()

	var staff fixtures.SeededStaff
	err = repos.tx.WithinTx(ctx, func(ctx context.Context) error {
		seeded, err := fixtures.SeedStaff(ctx, repos.employee)
		staff = seeded
		return err
	})
	if err != nil {
		return err
	}

	for _, member := range fixtures.DefaultStaff() {
		emp := staff[member.Name]
		fmt.Printf("%-14s %-9s %s\n", emp.Name, emp.Role, emp.ID)
	}
	return nil
}

// token prints an access token for an existing employee.
func token(ctx context.Context, cfg *config.Config, employeeID string) error {
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.close()

	emp, err := repos.employee.GetByID(ctx, strings.TrimSpace(employeeID))
	if err != nil {
		return err
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	accessToken, expiresAt, err := JWTService.GenerateAccessToken(emp.ID, emp.Role)
	if err != nil {
		return err
	}
	fmt.Println(accessToken)
	slog.Info("Token issued", "employee_id", emp.ID, "role", emp.Role, "expires_at", time.Unix(expiresAt, 0).In(cfg.Location()).Format(time.RFC3339))
	return nil
}
