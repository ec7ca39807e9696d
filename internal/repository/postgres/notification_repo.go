package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/uppi/backend/internal/domain/notification"
)

// NotificationRepo persists user notifications
type NotificationRepo struct {
	db *sql.DB
}

// NewNotificationRepo creates a new NotificationRepo
func NewNotificationRepo(db *sql.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// Create inserts a notification
func (r *NotificationRepo) Create(ctx context.Context, n *notification.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, title, message, type, ride_id, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, n.ID, n.UserID, n.Title, n.Message, n.Type, n.RideID, n.Read, n.CreatedAt)
	return err
}

// ListByUser lists a user's notifications, newest first
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*notification.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, title, message, type, ride_id, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*notification.Notification
	for rows.Next() {
		var n notification.Notification
		var rideID uuid.NullUUID
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &rideID, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		if rideID.Valid {
			id := rideID.UUID
			n.RideID = &id
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}

// MarkRead flags a single notification as read, scoped to its owner
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2
	`, id, userID)
	return err
}

// MarkAllRead flags all of a user's notifications as read
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE
	`, userID)
	return err
}
