package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/sse"
	"github.com/google/uuid"
)

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type service struct {
	repo   notification.Repository
	hub    *sse.Hub
	config Config

	queue    chan notification.CreateNotificationRequest
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewNotificationService creates a new notification service with background workers
func NewNotificationService(repo notification.Repository, hub *sse.Hub, cfg Config) notification.Service {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:   repo,
		hub:    hub,
		config: cfg,
		queue:  make(chan notification.CreateNotificationRequest, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("Notification service started",
		"workers", cfg.WorkerCount, "batch_size", cfg.BatchSize, "flush_interval", cfg.FlushInterval)

	return s
}

func newNotification(req notification.CreateNotificationRequest) *notification.Notification {
	return &notification.Notification{
		ID:          uuid.New().String(),
		RecipientID: req.RecipientID,
		SenderID:    req.SenderID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		Data:        req.Data,
		IsRead:      false,
		CreatedAt:   time.Now(),
	}
}

// worker drains the queue in batches
func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.CreateNotificationRequest, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		notifications := make([]*notification.Notification, len(batch))
		for i, req := range batch {
			notifications[i] = newNotification(req)
		}

		if err := s.repo.CreateBatch(ctx, notifications); err != nil {
			slog.Error("Failed to batch insert notifications", "worker", id, "count", len(notifications), "error", err)
		} else {
			slog.Debug("Inserted notifications", "worker", id, "count", len(notifications))
			s.publish(notifications...)
		}

		batch = batch[:0]
	}

	for {
		select {
		case req := <-s.queue:
			batch = append(batch, req)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			// Drain whatever is still queued before exiting
			for {
				select {
				case req := <-s.queue:
					batch = append(batch, req)
				default:
					flush()
					return
				}
			}
		}
	}
}

func (s *service) publish(notifications ...*notification.Notification) {
	for _, n := range notifications {
		s.hub.Publish(n.RecipientID, sse.Event{
			Event: string(n.Type),
			Data:  toResponse(n),
		})
	}
}

// QueueNotification queues a notification for async processing
func (s *service) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	select {
	case s.queue <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		// Queue full, insert directly
		return s.directInsert(ctx, req)
	}
}

func (s *service) directInsert(ctx context.Context, req notification.CreateNotificationRequest) error {
	n := newNotification(req)
	if err := s.repo.CreateBatch(ctx, []*notification.Notification{n}); err != nil {
		return err
	}
	s.publish(n)
	return nil
}

func toResponse(n *notification.Notification) notification.NotificationResponse {
	return notification.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

// GetNotifications returns the newest notifications of a recipient
func (s *service) GetNotifications(ctx context.Context, recipientID string, limit int, unreadOnly bool) ([]notification.NotificationResponse, error) {
	if limit < 1 || limit > maxListLimit {
		limit = defaultListLimit
	}

	notifications, err := s.repo.GetByRecipientID(ctx, recipientID, limit, unreadOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = toResponse(n)
	}
	return responses, nil
}

// MarkAsRead marks specified notifications as read
func (s *service) MarkAsRead(ctx context.Context, recipientID string, req notification.MarkAsReadRequest) error {
	return s.repo.MarkAsRead(ctx, req.NotificationIDs, recipientID)
}

// Subscribe creates an SSE subscription for an employee
func (s *service) Subscribe(ctx context.Context, recipientID string) (<-chan sse.Event, func()) {
	return s.hub.Subscribe(recipientID)
}

// Stop flushes queued notifications and stops the workers
func (s *service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
		slog.Info("Notification service stopped")
	})
}
