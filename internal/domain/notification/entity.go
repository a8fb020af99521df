package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeLeaveApproved      NotificationType = "leave_approved"
	TypeLeaveRejected      NotificationType = "leave_rejected"
	TypeReassignmentNeeded NotificationType = "reassignment_needed"
)

// Notification represents a notification entity
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
