package leave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-go/internal/fixtures"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-shift-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*3600)

func date(day int) time.Time {
	return time.Date(2026, time.February, day, 0, 0, 0, 0, wib)
}

// recordingNotifier captures events and optionally fails every delivery.
type recordingNotifier struct {
	mu            sync.Mutex
	fail          bool
	decisions     []leave.DecisionMade
	reassignments []leave.ReassignmentNeeded
}

func (n *recordingNotifier) LeaveDecided(ctx context.Context, event leave.DecisionMade) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.decisions = append(n.decisions, event)
	if n.fail {
		return errors.New("smtp down")
	}
	return nil
}

func (n *recordingNotifier) ReassignmentNeeded(ctx context.Context, event leave.ReassignmentNeeded) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reassignments = append(n.reassignments, event)
	if n.fail {
		return errors.New("smtp down")
	}
	return nil
}

type testEnv struct {
	staff     fixtures.SeededStaff
	employees employee.EmployeeRepository
	balances  leave.LeaveBalanceRepository
	requests  leave.LeaveRequestRepository
	schedules schedule.ScheduleRepository
	notifier  *recordingNotifier
	svc       leave.LeaveService
}

// setup pins today to Monday 2 February 2026.
func setup(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	env := &testEnv{
		employees: memory.NewEmployeeRepository(store),
		balances:  memory.NewLeaveBalanceRepository(store),
		requests:  memory.NewLeaveRequestRepository(store),
		schedules: memory.NewScheduleRepository(store),
		notifier:  &recordingNotifier{},
	}
	staff, err := fixtures.SeedStaff(ctx, env.employees)
	require.NoError(t, err)
	env.staff = staff

	clk := clock.NewFixed(time.Date(2026, time.February, 2, 9, 0, 0, 0, wib))
	env.svc = NewLeaveService(store, clk, leave.DefaultPolicy(), env.notifier,
		env.requests, env.balances, env.employees, env.schedules)
	return env
}

func doc() *string {
	d := "https://files.example.com/note.pdf"
	return &d
}

func (e *testEnv) submit(name string, t leave.Type, start, end string, document *string) (leave.LeaveRequestResponse, error) {
	return e.svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		EmployeeID:         e.staff.ID(name),
		Type:               string(t),
		StartDate:          start,
		EndDate:            end,
		SupportingDocument: document,
	})
}

func (e *testEnv) decide(approver, requestID string, d leave.Decision) (leave.DecideLeaveResponse, error) {
	return e.svc.Decide(context.Background(), leave.DecideLeaveRequest{
		RequestID:  requestID,
		ApproverID: e.staff.ID(approver),
		Decision:   d,
	})
}

func (e *testEnv) balance(t *testing.T, name string) employee.Balances {
	t.Helper()
	emp, err := e.employees.GetByID(context.Background(), e.staff.ID(name))
	require.NoError(t, err)
	return emp.Balances
}

func TestSubmit_CreatesPendingRequest(t *testing.T) {
	env := setup(t)

	resp, err := env.submit("Budi", leave.TypeSick, "2026-02-10", "2026-02-12", doc())
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, leave.StatusPending, resp.StatusCode)
	assert.Equal(t, 3, resp.Days)
	assert.Equal(t, "Budi", resp.EmployeeName)

	// Balance is only debited on approval.
	assert.Equal(t, employee.MaxSickBalance, env.balance(t, "Budi").Sick)
}

func TestSubmit_SingleDayWhenEndDateOmitted(t *testing.T) {
	env := setup(t)

	resp, err := env.submit("Budi", leave.TypeEmergency, "2026-02-03", "", doc())
	require.NoError(t, err)
	assert.Equal(t, "2026-02-03", resp.EndDate)
	assert.Equal(t, 1, resp.Days)
}

func TestSubmit_Overlap(t *testing.T) {
	env := setup(t)

	_, err := env.submit("Budi", leave.TypeSick, "2026-02-10", "2026-02-12", doc())
	require.NoError(t, err)

	_, err = env.submit("Budi", leave.TypeSick, "2026-02-11", "2026-02-13", doc())
	assert.ErrorIs(t, err, leave.ErrOverlap)

	_, err = env.submit("Budi", leave.TypeSick, "2026-02-09", "2026-02-20", doc())
	assert.ErrorIs(t, err, leave.ErrOverlap)

	_, err = env.submit("Budi", leave.TypeSick, "2026-02-13", "2026-02-15", doc())
	assert.NoError(t, err)

	// Another employee's dates never collide.
	_, err = env.submit("Citra", leave.TypeSick, "2026-02-11", "2026-02-13", doc())
	assert.NoError(t, err)
}

func TestSubmit_RejectedRequestFreesDates(t *testing.T) {
	env := setup(t)

	first, err := env.submit("Budi", leave.TypeSick, "2026-02-10", "2026-02-12", doc())
	require.NoError(t, err)
	_, err = env.decide("Adi Admin", first.ID, leave.DecisionReject)
	require.NoError(t, err)

	_, err = env.submit("Budi", leave.TypeSick, "2026-02-11", "2026-02-13", doc())
	assert.NoError(t, err)
}

func TestSubmit_Gates(t *testing.T) {
	tests := []struct {
		name     string
		kind     leave.Type
		start    string
		end      string
		document *string
		wantErr  error
	}{
		{"past start", leave.TypeSick, "2026-02-01", "2026-02-03", doc(), leave.ErrPastDate},
		{"annual without notice", leave.TypeAnnual, "2026-02-05", "2026-02-05", nil, leave.ErrAdvanceNotice},
		{"annual too long", leave.TypeAnnual, "2026-02-09", "2026-02-14", nil, leave.ErrMaxDuration},
		{"sick without document", leave.TypeSick, "2026-02-03", "2026-02-03", nil, leave.ErrMissingDocument},
		{"emergency with blank document", leave.TypeEmergency, "2026-02-03", "2026-02-03", func() *string { s := "  "; return &s }(), leave.ErrMissingDocument},
		{"emergency beyond balance", leave.TypeEmergency, "2026-02-03", "2026-02-10", doc(), leave.ErrInsufficientBalance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setup(t)
			_, err := env.submit("Budi", tt.kind, tt.start, tt.end, tt.document)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSubmit_AnnualNoticeBoundary(t *testing.T) {
	env := setup(t)

	// Exactly seven days ahead, five days long.
	resp, err := env.submit("Budi", leave.TypeAnnual, "2026-02-09", "2026-02-13", nil)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Days)
}

func TestSubmit_InvalidInput(t *testing.T) {
	env := setup(t)

	_, err := env.submit("Budi", leave.Type("Vacation"), "2026-02-10", "", nil)
	assert.Error(t, err)

	_, err = env.submit("Budi", leave.TypeSick, "2026-02-12", "2026-02-10", doc())
	assert.Error(t, err)
}

func TestDecide_ApproveDeductsBalance(t *testing.T) {
	env := setup(t)

	req, err := env.submit("Budi", leave.TypeAnnual, "2026-02-10", "2026-02-11", nil)
	require.NoError(t, err)

	resp, err := env.decide("Adi Admin", req.ID, leave.DecisionApprove)
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Request.Status)
	require.NotNil(t, resp.Request.DecidedBy)
	assert.Equal(t, env.staff.ID("Adi Admin"), *resp.Request.DecidedBy)
	assert.NotNil(t, resp.Request.DecidedAt)
	assert.Nil(t, resp.ReassignmentNeeded)

	assert.Equal(t, employee.MaxAnnualBalance-2, env.balance(t, "Budi").Annual)
	require.Len(t, env.notifier.decisions, 1)
	assert.Equal(t, "budi@example.com", env.notifier.decisions[0].EmployeeEmail)
}

func TestDecide_RejectLeavesBalance(t *testing.T) {
	env := setup(t)

	req, err := env.submit("Budi", leave.TypeAnnual, "2026-02-10", "2026-02-11", nil)
	require.NoError(t, err)

	resp, err := env.decide("Adi Admin", req.ID, leave.DecisionReject)
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Request.Status)
	assert.Equal(t, employee.MaxAnnualBalance, env.balance(t, "Budi").Annual)
}

func TestDecide_AlreadyDecided(t *testing.T) {
	env := setup(t)

	req, err := env.submit("Budi", leave.TypeAnnual, "2026-02-10", "2026-02-10", nil)
	require.NoError(t, err)
	_, err = env.decide("Adi Admin", req.ID, leave.DecisionApprove)
	require.NoError(t, err)

	_, err = env.decide("Ayu Admin", req.ID, leave.DecisionReject)
	assert.ErrorIs(t, err, leave.ErrNotPending)
	assert.Equal(t, employee.MaxAnnualBalance-1, env.balance(t, "Budi").Annual)
}

func TestDecide_Authorization(t *testing.T) {
	env := setup(t)

	staffReq, err := env.submit("Budi", leave.TypeAnnual, "2026-02-10", "2026-02-10", nil)
	require.NoError(t, err)
	adminReq, err := env.submit("Adi Admin", leave.TypeAnnual, "2026-02-10", "2026-02-10", nil)
	require.NoError(t, err)

	cases := []struct {
		approver  string
		requestID string
	}{
		{"Citra", staffReq.ID},        // peers cannot decide
		{"Olivia Owner", staffReq.ID}, // owners only decide for admins
		{"Adi Admin", adminReq.ID},    // no self-approval
		{"Ayu Admin", adminReq.ID},    // admins cannot decide for admins
		{"Budi", staffReq.ID},         // no self-approval
	}
	for _, c := range cases {
		_, err := env.decide(c.approver, c.requestID, leave.DecisionApprove)
		assert.ErrorIs(t, err, leave.ErrUnauthorized, c.approver)
	}

	_, err = env.decide("Olivia Owner", adminReq.ID, leave.DecisionApprove)
	assert.NoError(t, err)
}

func TestDecide_BalanceNeverGoesNegative(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	require.NoError(t, env.balances.Set(ctx, env.staff.ID("Budi"), leave.TypeEmergency, 2))

	first, err := env.submit("Budi", leave.TypeEmergency, "2026-02-03", "2026-02-04", doc())
	require.NoError(t, err)
	second, err := env.submit("Budi", leave.TypeEmergency, "2026-02-05", "2026-02-06", doc())
	require.NoError(t, err)

	_, err = env.decide("Adi Admin", first.ID, leave.DecisionApprove)
	require.NoError(t, err)

	_, err = env.decide("Adi Admin", second.ID, leave.DecisionApprove)
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	assert.Equal(t, 0, env.balance(t, "Budi").Emergency)
	stillPending, err := env.requests.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, stillPending.Status)
}

func TestDecide_SickLeaveCancelsShifts(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	budi := env.staff.ID("Budi")

	for _, day := range []int{10, 11, 13} {
		_, err := env.schedules.UpsertSlot(ctx, schedule.Entry{EmployeeID: budi, Date: date(day), ShiftType: shift.TypeMorning})
		require.NoError(t, err)
	}

	req, err := env.submit("Budi", leave.TypeSick, "2026-02-10", "2026-02-12", doc())
	require.NoError(t, err)

	resp, err := env.decide("Adi Admin", req.ID, leave.DecisionApprove)
	require.NoError(t, err)
	require.NotNil(t, resp.ReassignmentNeeded)
	assert.Equal(t, 2, resp.ReassignmentNeeded.Count)
	assert.Equal(t, "2026-02-10", resp.ReassignmentNeeded.From)
	assert.Equal(t, "2026-02-12", resp.ReassignmentNeeded.To)

	left, err := env.schedules.ListByEmployeeInRange(ctx, budi, date(9), date(15))
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "2026-02-13", clock.DateKey(left[0].Date))

	assert.Equal(t, employee.MaxSickBalance-3, env.balance(t, "Budi").Sick)
	require.Len(t, env.notifier.reassignments, 1)
	assert.Equal(t, env.staff.ID("Adi Admin"), env.notifier.reassignments[0].ApproverID)
}

func TestDecide_AnnualLeaveKeepsShifts(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	budi := env.staff.ID("Budi")

	_, err := env.schedules.UpsertSlot(ctx, schedule.Entry{EmployeeID: budi, Date: date(10), ShiftType: shift.TypeMorning})
	require.NoError(t, err)

	req, err := env.submit("Budi", leave.TypeAnnual, "2026-02-10", "2026-02-11", nil)
	require.NoError(t, err)

	resp, err := env.decide("Adi Admin", req.ID, leave.DecisionApprove)
	require.NoError(t, err)
	assert.Nil(t, resp.ReassignmentNeeded)

	left, err := env.schedules.ListByEmployeeInRange(ctx, budi, date(9), date(15))
	require.NoError(t, err)
	assert.Len(t, left, 1)
	assert.Empty(t, env.notifier.reassignments)
}

func TestDecide_NoShiftsNoReassignment(t *testing.T) {
	env := setup(t)

	req, err := env.submit("Budi", leave.TypeSick, "2026-02-10", "2026-02-12", doc())
	require.NoError(t, err)

	resp, err := env.decide("Adi Admin", req.ID, leave.DecisionApprove)
	require.NoError(t, err)
	assert.Nil(t, resp.ReassignmentNeeded)
}

func TestDecide_NotifierFailureKeepsDecision(t *testing.T) {
	env := setup(t)
	env.notifier.fail = true
	ctx := context.Background()
	budi := env.staff.ID("Budi")

	_, err := env.schedules.UpsertSlot(ctx, schedule.Entry{EmployeeID: budi, Date: date(10), ShiftType: shift.TypeEvening})
	require.NoError(t, err)

	req, err := env.submit("Budi", leave.TypeSick, "2026-02-10", "2026-02-10", doc())
	require.NoError(t, err)

	resp, err := env.decide("Adi Admin", req.ID, leave.DecisionApprove)
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Request.Status)

	stored, err := env.requests.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, stored.Status)
	assert.Equal(t, employee.MaxSickBalance-1, env.balance(t, "Budi").Sick)
	assert.Len(t, env.notifier.decisions, 1)
	assert.Len(t, env.notifier.reassignments, 1)
}

func TestDecide_UnknownRequest(t *testing.T) {
	env := setup(t)

	_, err := env.decide("Adi Admin", "missing", leave.DecisionApprove)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestList_ScopesByRole(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	budiReq, err := env.submit("Budi", leave.TypeAnnual, "2026-02-10", "2026-02-10", nil)
	require.NoError(t, err)
	_, err = env.submit("Citra", leave.TypeAnnual, "2026-02-10", "2026-02-10", nil)
	require.NoError(t, err)
	_, err = env.submit("Adi Admin", leave.TypeAnnual, "2026-02-10", "2026-02-10", nil)
	require.NoError(t, err)

	list := func(name string, status *int) []leave.LeaveRequestResponse {
		resp, err := env.svc.List(ctx, leave.ListLeaveRequest{ViewerID: env.staff.ID(name), Status: status})
		require.NoError(t, err)
		return resp
	}

	own := list("Budi", nil)
	require.Len(t, own, 1)
	assert.Equal(t, budiReq.ID, own[0].ID)

	// Staff requests plus the admin's own.
	assert.Len(t, list("Adi Admin", nil), 3)
	// Ayu sees staff requests but not Adi's.
	assert.Len(t, list("Ayu Admin", nil), 2)

	owner := list("Olivia Owner", nil)
	require.Len(t, owner, 1)
	assert.Equal(t, env.staff.ID("Adi Admin"), owner[0].EmployeeID)

	_, err = env.decide("Adi Admin", budiReq.ID, leave.DecisionApprove)
	require.NoError(t, err)
	approved := int(leave.StatusApproved)
	filtered := list("Adi Admin", &approved)
	require.Len(t, filtered, 1)
	assert.Equal(t, budiReq.ID, filtered[0].ID)
}

func TestGet_Visibility(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	req, err := env.submit("Budi", leave.TypeAnnual, "2026-02-10", "2026-02-10", nil)
	require.NoError(t, err)

	_, err = env.svc.Get(ctx, env.staff.ID("Budi"), req.ID)
	assert.NoError(t, err)
	_, err = env.svc.Get(ctx, env.staff.ID("Adi Admin"), req.ID)
	assert.NoError(t, err)
	_, err = env.svc.Get(ctx, env.staff.ID("Citra"), req.ID)
	assert.ErrorIs(t, err, leave.ErrUnauthorized)
}

func TestAdjustBalance(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	req, err := env.submit("Budi", leave.TypeAnnual, "2026-02-10", "2026-02-11", nil)
	require.NoError(t, err)
	_, err = env.decide("Adi Admin", req.ID, leave.DecisionApprove)
	require.NoError(t, err)

	resp, err := env.svc.AdjustBalance(ctx, leave.AdjustBalanceRequest{
		ActorID:    env.staff.ID("Adi Admin"),
		EmployeeID: env.staff.ID("Budi"),
		Type:       string(leave.TypeAnnual),
		Days:       1,
	})
	require.NoError(t, err)
	assert.Equal(t, employee.MaxAnnualBalance-1, resp.Annual.Remaining)

	// Capped at the policy maximum.
	resp, err = env.svc.AdjustBalance(ctx, leave.AdjustBalanceRequest{
		ActorID:    env.staff.ID("Adi Admin"),
		EmployeeID: env.staff.ID("Budi"),
		Type:       string(leave.TypeAnnual),
		Days:       10,
	})
	require.NoError(t, err)
	assert.Equal(t, employee.MaxAnnualBalance, resp.Annual.Remaining)
	assert.Equal(t, employee.MaxAnnualBalance, resp.Annual.Max)

	_, err = env.svc.AdjustBalance(ctx, leave.AdjustBalanceRequest{
		ActorID:    env.staff.ID("Citra"),
		EmployeeID: env.staff.ID("Budi"),
		Type:       string(leave.TypeAnnual),
		Days:       1,
	})
	assert.ErrorIs(t, err, leave.ErrUnauthorized)
}

func TestBalances(t *testing.T) {
	env := setup(t)

	resp, err := env.svc.Balances(context.Background(), env.staff.ID("Budi"))
	require.NoError(t, err)
	assert.Equal(t, leave.BalanceItem{Remaining: 14, Max: 14}, resp.Annual)
	assert.Equal(t, leave.BalanceItem{Remaining: 14, Max: 14}, resp.Sick)
	assert.Equal(t, leave.BalanceItem{Remaining: 7, Max: 7}, resp.Emergency)
}
