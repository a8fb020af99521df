package report

import "context"

// ReportService derives absence and attendance figures. Absence is always
// the anti-join of past schedule entries against attendance records.
type ReportService interface {
	AbsenceCount(ctx context.Context, req AbsenceCountRequest) (AbsenceCountResponse, error)
	AttendanceSummary(ctx context.Context, req AttendanceSummaryRequest) (AttendanceSummary, error)

	// MonthlyReport summarizes every employee and admin, best attendance rate first
	MonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)

	// MySummary is the caller's own month and year-to-date figures.
	MySummary(ctx context.Context, employeeID string) (PersonalSummary, error)

	// TodayOverview counts today's attendance across all staff and the
	// leave requests still waiting for a decision.
	TodayOverview(ctx context.Context) (TodayOverview, error)
}
