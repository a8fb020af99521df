package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-shift-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	Assign(w http.ResponseWriter, r *http.Request)
	Week(w http.ResponseWriter, r *http.Request)
	MyWeek(w http.ResponseWriter, r *http.Request)
	ResetWeek(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{scheduleService: scheduleService}
}

func weekRequest(r *http.Request) schedule.WeekRequest {
	return schedule.WeekRequest{Date: r.URL.Query().Get("date")}
}

// Assign implements ScheduleHandler.
func (h *scheduleHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req schedule.AssignShiftRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.scheduleService.Assign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift assigned", result)
}

// Week implements ScheduleHandler.
func (h *scheduleHandlerImpl) Week(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.Week(r.Context(), weekRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MyWeek implements ScheduleHandler.
func (h *scheduleHandlerImpl) MyWeek(w http.ResponseWriter, r *http.Request) {
	employeeID, _ := callerFromContext(r)

	result, err := h.scheduleService.MyWeek(r.Context(), employeeID, weekRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ResetWeek implements ScheduleHandler.
func (h *scheduleHandlerImpl) ResetWeek(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.ResetWeek(r.Context(), weekRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Week schedules reset", result)
}
