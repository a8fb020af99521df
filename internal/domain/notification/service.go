package notification

import (
	"context"

	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/sse"
)

// Service defines the notification service interface
type Service interface {
	// Queue notification (async processing via background workers)
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error

	GetNotifications(ctx context.Context, recipientID string, limit int, unreadOnly bool) ([]NotificationResponse, error)
	MarkAsRead(ctx context.Context, recipientID string, req MarkAsReadRequest) error

	// SSE subscription
	Subscribe(ctx context.Context, recipientID string) (<-chan sse.Event, func())

	// Lifecycle
	Stop()
}
