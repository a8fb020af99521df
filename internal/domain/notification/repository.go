package notification

import (
	"context"
)

// Repository defines the notification repository interface
type Repository interface {
	CreateBatch(ctx context.Context, notifications []*Notification) error
	GetByRecipientID(ctx context.Context, recipientID string, limit int, unreadOnly bool) ([]*Notification, error)
	MarkAsRead(ctx context.Context, ids []string, recipientID string) error
}
