package leave

import "github.com/cmlabs-hris/hris-shift-go/internal/pkg/apperror"

var (
	ErrLeaveRequestNotFound = apperror.NotFound("leave_request_not_found", "Leave request not found")
	ErrUnknownLeaveType     = apperror.Validation("unknown_leave_type", "Leave type must be Annual Leave, Sick Leave or Emergency Leave")

	ErrInsufficientBalance = apperror.Policy("insufficient_balance", "Insufficient leave balance")
	ErrOverlap             = apperror.Policy("overlap", "Leave dates overlap an existing request")
	ErrPastDate            = apperror.Policy("past_date", "Leave cannot start in the past")
	ErrAdvanceNotice       = apperror.Policy("advance_notice", "Annual leave is not requested far enough in advance")
	ErrMaxDuration         = apperror.Policy("max_duration", "Annual leave exceeds the maximum consecutive days")
	ErrMissingDocument     = apperror.Policy("missing_document", "A supporting document is required")
	ErrNotPending          = apperror.Policy("not_pending", "Leave request has already been decided")

	ErrUnauthorized = apperror.Authorization("unauthorized", "Not allowed to act on this leave request")
)
