package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/database"
	"github.com/google/uuid"
)

type notificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// CreateBatch creates multiple notifications in a single statement
func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	valueStrings := make([]string, 0, len(notifications))
	valueArgs := make([]interface{}, 0, len(notifications)*9)

	for i, n := range notifications {
		if n.ID == "" {
			n.ID = uuid.New().String()
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = time.Now()
		}

		dataJSON, err := json.Marshal(n.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal notification data: %w", err)
		}

		base := i * 9
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9,
		))
		valueArgs = append(valueArgs,
			n.ID,
			n.RecipientID,
			n.SenderID,
			string(n.Type),
			n.Title,
			n.Message,
			dataJSON,
			n.IsRead,
			n.CreatedAt,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO notifications (id, recipient_id, sender_id, type, title, message, data, is_read, created_at)
		VALUES %s
	`, strings.Join(valueStrings, ", "))

	if _, err := q.Exec(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("failed to batch create notifications: %w", err)
	}
	return nil
}

// GetByRecipientID returns the newest notifications of a recipient
func (r *notificationRepository) GetByRecipientID(ctx context.Context, recipientID string, limit int, unreadOnly bool) ([]*notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "recipient_id = $1"
	if unreadOnly {
		whereClause += " AND is_read = false"
	}

	query := fmt.Sprintf(`
		SELECT id, recipient_id, sender_id, type, title, message, data, is_read, read_at, created_at
		FROM notifications
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $2
	`, whereClause)

	rows, err := q.Query(ctx, query, recipientID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]*notification.Notification, 0)
	for rows.Next() {
		var n notification.Notification
		var dataJSON []byte
		var notifType string

		if err := rows.Scan(
			&n.ID,
			&n.RecipientID,
			&n.SenderID,
			&notifType,
			&n.Title,
			&n.Message,
			&dataJSON,
			&n.IsRead,
			&n.ReadAt,
			&n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		n.Type = notification.NotificationType(notifType)
		if dataJSON != nil {
			if err := json.Unmarshal(dataJSON, &n.Data); err != nil {
				return nil, fmt.Errorf("failed to unmarshal notification data: %w", err)
			}
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

// MarkAsRead marks specific notifications as read
func (r *notificationRepository) MarkAsRead(ctx context.Context, ids []string, recipientID string) error {
	if len(ids) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = true, read_at = $1
		WHERE recipient_id = $2 AND id = ANY($3::uuid[]) AND is_read = false
	`
	if _, err := q.Exec(ctx, query, time.Now(), recipientID, ids); err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return nil
}
