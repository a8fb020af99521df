package leave

import "context"

type LeaveService interface {
	// Submit files a new Pending request after running every policy gate.
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveRequestResponse, error)

	// Decide approves or rejects a Pending request. Approval debits the
	// balance and, for sick and emergency leave, cancels assigned shifts.
	Decide(ctx context.Context, req DecideLeaveRequest) (DecideLeaveResponse, error)

	Get(ctx context.Context, viewerID, id string) (LeaveRequestResponse, error)
	List(ctx context.Context, req ListLeaveRequest) ([]LeaveRequestResponse, error)

	Balances(ctx context.Context, employeeID string) (BalanceResponse, error)

	// AdjustBalance restores days to an employee's balance, capped at the policy maximum.
	AdjustBalance(ctx context.Context, req AdjustBalanceRequest) (BalanceResponse, error)
}
