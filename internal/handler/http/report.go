package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-shift-go/internal/handler/http/response"
)

type ReportHandler interface {
	Absences(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
	MySummary(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func periodRequest(r *http.Request) report.PeriodRequest {
	return report.PeriodRequest{
		Month: getIntQueryParam(r, "month", 0),
		Year:  getIntQueryParam(r, "year", 0),
	}
}

// Absences implements ReportHandler.
func (h *reportHandlerImpl) Absences(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.reportService.AbsenceCount(r.Context(), report.AbsenceCountRequest{
		EmployeeID: q.Get("employee_id"),
		From:       q.Get("from"),
		To:         q.Get("to"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary implements ReportHandler.
func (h *reportHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.AttendanceSummary(r.Context(), report.AttendanceSummaryRequest{
		EmployeeID:    r.URL.Query().Get("employee_id"),
		PeriodRequest: periodRequest(r),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Monthly implements ReportHandler.
func (h *reportHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.MonthlyReport(r.Context(), report.MonthlyReportRequest{
		PeriodRequest: periodRequest(r),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MySummary implements ReportHandler.
func (h *reportHandlerImpl) MySummary(w http.ResponseWriter, r *http.Request) {
	employeeID, _ := callerFromContext(r)

	result, err := h.reportService.MySummary(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Today implements ReportHandler.
func (h *reportHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.TodayOverview(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
