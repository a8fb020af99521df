package report

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/clock"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentSummaries bounds the per-employee queries in flight.
const maxConcurrentSummaries = 8

var hundred = decimal.NewFromInt(100)

type ReportServiceImpl struct {
	clock        clock.Clock
	catalog      *shift.Catalog
	reportRepo   report.ReportRepository
	employeeRepo employee.EmployeeRepository
}

func NewReportService(clk clock.Clock, catalog *shift.Catalog, reportRepo report.ReportRepository, employeeRepo employee.EmployeeRepository) report.ReportService {
	return &ReportServiceImpl{
		clock:        clk,
		catalog:      catalog,
		reportRepo:   reportRepo,
		employeeRepo: employeeRepo,
	}
}

func (s *ReportServiceImpl) today() time.Time {
	return clock.DateOf(s.clock.Now())
}

// AbsenceCount implements report.ReportService.
func (s *ReportServiceImpl) AbsenceCount(ctx context.Context, req report.AbsenceCountRequest) (report.AbsenceCountResponse, error) {
	if err := req.Validate(); err != nil {
		return report.AbsenceCountResponse{}, err
	}

	loc := s.clock.Location()
	from, err := clock.ParseDate(req.From, loc)
	if err != nil {
		return report.AbsenceCountResponse{}, fmt.Errorf("failed to parse from: %w", err)
	}
	to, err := clock.ParseDate(req.To, loc)
	if err != nil {
		return report.AbsenceCountResponse{}, fmt.Errorf("failed to parse to: %w", err)
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return report.AbsenceCountResponse{}, err
	}

	count, err := s.reportRepo.CountAbsences(ctx, req.EmployeeID, from, to, s.today())
	if err != nil {
		return report.AbsenceCountResponse{}, fmt.Errorf("failed to count absences: %w", err)
	}

	return report.AbsenceCountResponse{
		EmployeeID: req.EmployeeID,
		From:       clock.DateKey(from),
		To:         clock.DateKey(to),
		Absences:   count,
	}, nil
}

// AttendanceSummary implements report.ReportService.
func (s *ReportServiceImpl) AttendanceSummary(ctx context.Context, req report.AttendanceSummaryRequest) (report.AttendanceSummary, error) {
	if err := req.Validate(); err != nil {
		return report.AttendanceSummary{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return report.AttendanceSummary{}, err
	}

	from, to := s.period(req.PeriodRequest)
	return s.summarize(ctx, emp, from, to, s.today())
}

// MonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) MonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}

	employees, err := s.employeeRepo.ListByRoles(ctx, employee.RoleEmployee, employee.RoleAdmin)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to list employees: %w", err)
	}

	from, to := s.period(req.PeriodRequest)
	today := s.today()

	summaries := make([]report.AttendanceSummary, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSummaries)
	for i, emp := range employees {
		g.Go(func() error {
			summary, err := s.summarize(gctx, emp, from, to, today)
			if err != nil {
				return err
			}
			summaries[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report.MonthlyReport{}, err
	}

	slices.SortStableFunc(summaries, func(a, b report.AttendanceSummary) int {
		if c := b.AttendanceRate.Cmp(a.AttendanceRate); c != 0 {
			return c
		}
		return strings.Compare(a.EmployeeName, b.EmployeeName)
	})

	return report.MonthlyReport{
		PeriodStart: clock.DateKey(from),
		PeriodEnd:   clock.DateKey(to),
		GeneratedAt: s.clock.Now().Format(time.RFC3339),
		Employees:   summaries,
	}, nil
}

// MySummary implements report.ReportService.
func (s *ReportServiceImpl) MySummary(ctx context.Context, employeeID string) (report.PersonalSummary, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return report.PersonalSummary{}, err
	}

	today := s.today()
	monthFrom, monthTo := clock.MonthBounds(today)
	yearFrom, yearTo := clock.YearBounds(today)

	var summary report.PersonalSummary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		month, err := s.summarize(gctx, emp, monthFrom, monthTo, today)
		summary.Month = month
		return err
	})
	g.Go(func() error {
		year, err := s.summarize(gctx, emp, yearFrom, yearTo, today)
		summary.Year = year
		return err
	})
	if err := g.Wait(); err != nil {
		return report.PersonalSummary{}, err
	}
	return summary, nil
}

// TodayOverview implements report.ReportService.
func (s *ReportServiceImpl) TodayOverview(ctx context.Context) (report.TodayOverview, error) {
	now := s.clock.Now().In(s.catalog.Location())
	today := clock.DateOf(now)

	var (
		staff      []employee.Employee
		totals     report.DailyTotals
		unattended []schedule.Entry
		pending    int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		staff, err = s.employeeRepo.ListByRoles(gctx, employee.RoleEmployee, employee.RoleAdmin)
		return err
	})
	g.Go(func() (err error) {
		totals, err = s.reportRepo.DailyTotals(gctx, today)
		return err
	})
	g.Go(func() (err error) {
		unattended, err = s.reportRepo.UnattendedEntries(gctx, today)
		return err
	})
	g.Go(func() (err error) {
		pending, err = s.reportRepo.CountPendingLeaveRequests(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return report.TodayOverview{}, fmt.Errorf("failed to load today's overview: %w", err)
	}

	absent := make(map[string]bool)
	awaiting := make(map[string]bool)
	for _, e := range unattended {
		w, err := s.catalog.Window(e.ShiftType, today)
		if err != nil {
			return report.TodayOverview{}, err
		}
		if w.IsClosed(now) {
			absent[e.EmployeeID] = true
		} else {
			awaiting[e.EmployeeID] = true
		}
	}
	for id := range absent {
		delete(awaiting, id)
	}

	return report.TodayOverview{
		Date:                 clock.DateKey(today),
		StaffCount:           len(staff),
		Scheduled:            totals.Scheduled,
		Present:              totals.Present,
		Late:                 totals.Late,
		Absent:               len(absent),
		AwaitingClockIn:      len(awaiting),
		PendingLeaveRequests: pending,
	}, nil
}

func (s *ReportServiceImpl) period(p report.PeriodRequest) (time.Time, time.Time) {
	first := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, s.clock.Location())
	return clock.MonthBounds(first)
}

func (s *ReportServiceImpl) summarize(ctx context.Context, emp employee.Employee, from, to, today time.Time) (report.AttendanceSummary, error) {
	totals, err := s.reportRepo.AttendanceTotals(ctx, emp.ID, from, to)
	if err != nil {
		return report.AttendanceSummary{}, fmt.Errorf("failed to aggregate attendance for %s: %w", emp.ID, err)
	}

	absent, err := s.reportRepo.CountAbsences(ctx, emp.ID, from, to, today)
	if err != nil {
		return report.AttendanceSummary{}, fmt.Errorf("failed to count absences for %s: %w", emp.ID, err)
	}

	return report.AttendanceSummary{
		EmployeeID:            emp.ID,
		EmployeeName:          emp.Name,
		PeriodStart:           clock.DateKey(from),
		PeriodEnd:             clock.DateKey(to),
		Present:               totals.OnTime,
		Late:                  totals.Late,
		Absent:                absent,
		LateMinutes:           totals.LateMinutes,
		EarlyDepartureCount:   totals.EarlyDepartureCount,
		EarlyDepartureMinutes: totals.EarlyDepartureMinutes,
		AttendanceRate:        attendanceRate(totals.OnTime, totals.Late, absent),
	}, nil
}

// attendanceRate is the share of scheduled shifts worked on time, as a
// percentage with two decimals. Late arrivals count against the rate.
func attendanceRate(present, late, absent int) decimal.Decimal {
	total := int64(present + late + absent)
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(present)).Mul(hundred).Div(decimal.NewFromInt(total)).Round(2)
}
