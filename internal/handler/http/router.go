package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hris-shift-go/internal/config"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	appConfig config.AppConfig,
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	scheduleHandler ScheduleHandler,
	reportHandler ReportHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(appConfig.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-shift"),
		slog.String("version", "v1.0.0"),
		slog.String("env", appConfig.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appConfig.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// EventSource cannot send headers, the stream authenticates with ?token=
		r.Get("/notifications/stream", notificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(employee.PermissionAttendanceClock)).Post("/clock-in", attendanceHandler.ClockIn)
				r.With(middleware.RequirePermission(employee.PermissionAttendanceClock)).Post("/clock-out", attendanceHandler.ClockOut)
				r.With(middleware.RequirePermission(employee.PermissionAttendanceViewOwn)).Get("/status", attendanceHandler.Status)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Route("/requests", func(r chi.Router) {
					r.With(middleware.RequirePermission(employee.PermissionLeaveCreate)).Post("/", leaveHandler.Submit)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(employee.PermissionLeaveViewOwn))
						r.Get("/", leaveHandler.List)
						r.Get("/{id}", leaveHandler.Get)
					})

					// Approver only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(employee.PermissionLeaveApprove))
						r.Post("/{id}/approve", leaveHandler.Approve)
						r.Post("/{id}/reject", leaveHandler.Reject)
					})
				})

				r.Route("/balances", func(r chi.Router) {
					r.With(middleware.RequirePermission(employee.PermissionLeaveViewOwn)).Get("/", leaveHandler.Balances)
					r.With(middleware.RequirePermission(employee.PermissionLeaveAdjustBalance)).Post("/adjust", leaveHandler.AdjustBalance)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.With(middleware.RequirePermission(employee.PermissionScheduleViewOwn)).Get("/my-week", scheduleHandler.MyWeek)

				r.With(middleware.RequirePermission(employee.PermissionScheduleViewAll)).Get("/week", scheduleHandler.Week)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(employee.PermissionScheduleManage))
					r.Post("/assign", scheduleHandler.Assign)
					r.Delete("/week", scheduleHandler.ResetWeek)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.With(middleware.RequirePermission(employee.PermissionAttendanceViewOwn)).Get("/my-summary", reportHandler.MySummary)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(employee.PermissionReportsView))
					r.Get("/absences", reportHandler.Absences)
					r.Get("/summary", reportHandler.Summary)
					r.Get("/monthly", reportHandler.Monthly)
					r.Get("/today", reportHandler.Today)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Post("/read", notificationHandler.MarkAsRead)
				r.Get("/sse-token", notificationHandler.GetSSEToken)
			})
		})
	})
	return r
}
