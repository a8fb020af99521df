package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/email"
)

// LeaveNotifier turns leave events into in-app notifications and emails.
type LeaveNotifier struct {
	notifications notification.Service
	email         email.EmailService
	employeeRepo  employee.EmployeeRepository

	wg sync.WaitGroup
}

func NewLeaveNotifier(notifications notification.Service, emailService email.EmailService, employeeRepo employee.EmployeeRepository) *LeaveNotifier {
	return &LeaveNotifier{
		notifications: notifications,
		email:         emailService,
		employeeRepo:  employeeRepo,
	}
}

var _ leave.Notifier = (*LeaveNotifier)(nil)

// LeaveDecided implements leave.Notifier.
func (n *LeaveNotifier) LeaveDecided(ctx context.Context, event leave.DecisionMade) error {
	approved := event.Status == leave.StatusApproved

	notifType := notification.TypeLeaveRejected
	verdict := "rejected"
	if approved {
		notifType = notification.TypeLeaveApproved
		verdict = "approved"
	}

	err := n.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: event.EmployeeID,
		SenderID:    &event.DecidedBy,
		Type:        notifType,
		Title:       fmt.Sprintf("%s %s", event.Type, verdict),
		Message:     fmt.Sprintf("Your %s from %s to %s was %s.", event.Type, event.StartDate, event.EndDate, verdict),
		Data: map[string]interface{}{
			"request_id": event.RequestID,
			"leave_type": string(event.Type),
			"start_date": event.StartDate,
			"end_date":   event.EndDate,
			"status":     event.Status.String(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to queue decision notification: %w", err)
	}

	if n.email != nil && event.EmployeeEmail != "" {
		n.wg.Add(1)
		go func() {
			defer n.wg.Done()
			err := n.email.SendLeaveDecision(event.EmployeeEmail, email.LeaveDecisionData{
				EmployeeName: event.EmployeeName,
				LeaveType:    string(event.Type),
				StartDate:    event.StartDate,
				EndDate:      event.EndDate,
				Approved:     approved,
			})
			if err != nil {
				slog.Error("Failed to email leave decision", "request_id", event.RequestID, "error", err)
			}
		}()
	}
	return nil
}

// ReassignmentNeeded implements leave.Notifier. Every admin and the approver
// hear about the emptied shifts.
func (n *LeaveNotifier) ReassignmentNeeded(ctx context.Context, event leave.ReassignmentNeeded) error {
	admins, err := n.employeeRepo.ListByRoles(ctx, employee.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to list admins: %w", err)
	}

	recipients := make([]string, 0, len(admins)+1)
	seen := make(map[string]bool, len(admins)+1)
	for _, id := range append([]string{event.ApproverID}, adminIDs(admins)...) {
		if id == "" || id == event.EmployeeID || seen[id] {
			continue
		}
		seen[id] = true
		recipients = append(recipients, id)
	}

	for _, id := range recipients {
		err := n.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
			RecipientID: id,
			SenderID:    &event.ApproverID,
			Type:        notification.TypeReassignmentNeeded,
			Title:       "Shifts need reassignment",
			Message: fmt.Sprintf("%d shift(s) of %s between %s and %s were cancelled by approved leave.",
				event.Count, event.EmployeeName, event.From, event.To),
			Data: map[string]interface{}{
				"employee_id": event.EmployeeID,
				"from":        event.From,
				"to":          event.To,
				"count":       event.Count,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to queue reassignment notification: %w", err)
		}
	}
	return nil
}

// Wait blocks until in-flight emails finish.
func (n *LeaveNotifier) Wait() {
	n.wg.Wait()
}

func adminIDs(admins []employee.Employee) []string {
	ids := make([]string, len(admins))
	for i, a := range admins {
		ids[i] = a.ID
	}
	return ids
}
