package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-shift-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Balances(w http.ResponseWriter, r *http.Request)
	AdjustBalance(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

// Submit implements LeaveHandler.
func (l *LeaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req leave.SubmitLeaveRequest
	if err := decodeJSON(r, &req); err != nil {
		slog.Error("Failed to decode leave request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID, _ = callerFromContext(r)

	result, err := l.leaveService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// List implements LeaveHandler.
func (l *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := callerFromContext(r)
	req := leave.ListLeaveRequest{ViewerID: viewerID}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "status must be 0, 1 or 2", nil)
			return
		}
		req.Status = &status
	}

	result, err := l.leaveService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements LeaveHandler.
func (l *LeaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := callerFromContext(r)

	result, err := l.leaveService.Get(r.Context(), viewerID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (l *LeaveHandlerImpl) decide(w http.ResponseWriter, r *http.Request, decision leave.Decision) {
	approverID, _ := callerFromContext(r)

	result, err := l.leaveService.Decide(r.Context(), leave.DecideLeaveRequest{
		RequestID:  chi.URLParam(r, "id"),
		ApproverID: approverID,
		Decision:   decision,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request "+result.Request.Status, result)
}

// Approve implements LeaveHandler.
func (l *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	l.decide(w, r, leave.DecisionApprove)
}

// Reject implements LeaveHandler.
func (l *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	l.decide(w, r, leave.DecisionReject)
}

// Balances implements LeaveHandler.
func (l *LeaveHandlerImpl) Balances(w http.ResponseWriter, r *http.Request) {
	employeeID, _ := callerFromContext(r)

	result, err := l.leaveService.Balances(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AdjustBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	var req leave.AdjustBalanceRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ActorID, _ = callerFromContext(r)

	result, err := l.leaveService.AdjustBalance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave balance adjusted", result)
}
