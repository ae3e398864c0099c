package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/n200534/socioconnect/internal/model"
)

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (user_id, actor_id, type, title, message, post_id, comment_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_read, is_archived, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		n.UserID, n.ActorID, n.Type, n.Title, n.Message, n.PostID, n.CommentID).
		Scan(&n.ID, &n.IsRead, &n.IsArchived, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) List(ctx context.Context, userID int64, filter model.NotificationFilter, limit, offset int) ([]model.Notification, error) {
	conditions := []string{"n.user_id = $1"}
	args := []interface{}{userID}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		conditions = append(conditions, fmt.Sprintf("n.type = $%d", len(args)))
	}
	if filter.IsRead != nil {
		args = append(args, *filter.IsRead)
		conditions = append(conditions, fmt.Sprintf("n.is_read = $%d", len(args)))
	}
	if filter.IsArchived != nil {
		args = append(args, *filter.IsArchived)
		conditions = append(conditions, fmt.Sprintf("n.is_archived = $%d", len(args)))
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT n.id, n.user_id, n.actor_id, n.type, n.title, n.message,
		       n.is_read, n.is_archived, n.post_id, n.comment_id, n.created_at, n.updated_at,
		       u.id AS "actor.id", u.username AS "actor.username",
		       u.full_name AS "actor.full_name", u.avatar_url AS "actor.avatar_url",
		       u.is_verified AS "actor.is_verified"
		FROM notifications n
		LEFT JOIN users u ON u.id = n.actor_id
		WHERE %s
		ORDER BY n.created_at DESC, n.id DESC
		LIMIT $%d OFFSET $%d
	`, strings.Join(conditions, " AND "), len(args)-1, len(args))

	// actor columns are nullable because system notifications carry no actor
	type notificationRow struct {
		ID         int64      `db:"id"`
		UserID     int64      `db:"user_id"`
		ActorID    *int64     `db:"actor_id"`
		Type       string     `db:"type"`
		Title      string     `db:"title"`
		Message    string     `db:"message"`
		IsRead     bool       `db:"is_read"`
		IsArchived bool       `db:"is_archived"`
		PostID     *int64     `db:"post_id"`
		CommentID  *int64     `db:"comment_id"`
		CreatedAt  time.Time  `db:"created_at"`
		UpdatedAt  *time.Time `db:"updated_at"`

		ActorUserID     *int64  `db:"actor.id"`
		ActorUsername   *string `db:"actor.username"`
		ActorFullName   *string `db:"actor.full_name"`
		ActorAvatarURL  *string `db:"actor.avatar_url"`
		ActorIsVerified *bool   `db:"actor.is_verified"`
	}

	var rows []notificationRow
	err := r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select notifications: %w", err)
	}

	notifications := make([]model.Notification, len(rows))
	for i, row := range rows {
		n := model.Notification{
			ID:         row.ID,
			UserID:     row.UserID,
			ActorID:    row.ActorID,
			Type:       row.Type,
			Title:      row.Title,
			Message:    row.Message,
			IsRead:     row.IsRead,
			IsArchived: row.IsArchived,
			PostID:     row.PostID,
			CommentID:  row.CommentID,
			CreatedAt:  row.CreatedAt,
			UpdatedAt:  row.UpdatedAt,
		}
		if row.ActorUserID != nil {
			n.Actor = &model.UserSummary{
				ID:         *row.ActorUserID,
				Username:   *row.ActorUsername,
				FullName:   *row.ActorFullName,
				AvatarURL:  row.ActorAvatarURL,
				IsVerified: *row.ActorIsVerified,
			}
		}
		notifications[i] = n
	}
	return notifications, nil
}

func (r *notificationRepository) Stats(ctx context.Context, userID int64) (*model.NotificationStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE is_read = false) AS unread,
			COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '24 hours') AS recent
		FROM notifications
		WHERE user_id = $1
	`
	var stats model.NotificationStats
	err := r.db.GetContext(ctx, &stats, query, userID)
	if err != nil {
		return nil, fmt.Errorf("notification stats: %w", err)
	}
	return &stats, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID int64, ids []int64) (int, error) {
	query := `
		UPDATE notifications
		SET is_read = true, updated_at = NOW()
		WHERE user_id = $1 AND id = ANY($2)
	`
	result, err := r.db.ExecContext(ctx, query, userID, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return int(rows), nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64) (int, error) {
	query := `
		UPDATE notifications
		SET is_read = true, updated_at = NOW()
		WHERE user_id = $1 AND is_read = false
	`
	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return int(rows), nil
}

func (r *notificationRepository) Archive(ctx context.Context, userID, notificationID int64) error {
	query := `
		UPDATE notifications
		SET is_archived = true, updated_at = NOW()
		WHERE user_id = $1 AND id = $2
	`
	result, err := r.db.ExecContext(ctx, query, userID, notificationID)
	if err != nil {
		return fmt.Errorf("archive notification: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("archive notification: %w", err)
	}
	if rows == 0 {
		return model.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, userID, notificationID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE user_id = $1 AND id = $2`, userID, notificationID)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if rows == 0 {
		return model.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) DeleteAll(ctx context.Context, userID int64) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete all notifications: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete all notifications: %w", err)
	}
	return int(rows), nil
}
