package memory

import (
	"context"
	"slices"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/notification"
	"github.com/google/uuid"
)

type notificationRepository struct {
	s *Store
}

func NewNotificationRepository(s *Store) notification.Repository {
	return &notificationRepository{s: s}
}

func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, n := range notifications {
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = time.Now()
		}
		r.s.notifications[n.ID] = *n
	}
	return nil
}

func (r *notificationRepository) GetByRecipientID(ctx context.Context, recipientID string, limit int, unreadOnly bool) ([]*notification.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*notification.Notification, 0)
	for _, n := range r.s.notifications {
		if n.RecipientID != recipientID || (unreadOnly && n.IsRead) {
			continue
		}
		found := n
		result = append(result, &found)
	}
	slices.SortFunc(result, func(a, b *notification.Notification) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, ids []string, recipientID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	for _, id := range ids {
		n, ok := r.s.notifications[id]
		if !ok || n.RecipientID != recipientID || n.IsRead {
			continue
		}
		n.IsRead = true
		n.ReadAt = &now
		r.s.notifications[id] = n
	}
	return nil
}
