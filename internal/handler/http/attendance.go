package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-shift-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	employeeID, _ := callerFromContext(r)

	result, err := h.attendanceService.ClockIn(r.Context(), attendance.ClockInRequest{EmployeeID: employeeID})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	employeeID, _ := callerFromContext(r)

	result, err := h.attendanceService.ClockOut(r.Context(), attendance.ClockOutRequest{EmployeeID: employeeID})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Clock out successful"
	if result.EarlyExit {
		message = "Clock out recorded as early departure"
	}
	response.SuccessWithMessage(w, message, result)
}

// Status implements AttendanceHandler.
func (h *attendanceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	employeeID, _ := callerFromContext(r)

	result, err := h.attendanceService.Status(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
