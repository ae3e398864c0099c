package model

import (
	"errors"
	"time"
)

// Notification types. The set is closed; repositories reject anything else
// via the DB enum.
const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
	NotificationTypeRepost  = "repost"
	NotificationTypeFollow  = "follow"
	NotificationTypeMention = "mention"
	NotificationTypeSystem  = "system"
)

// ValidNotificationType reports whether t is one of the closed type set.
func ValidNotificationType(t string) bool {
	switch t {
	case NotificationTypeLike, NotificationTypeComment, NotificationTypeRepost,
		NotificationTypeFollow, NotificationTypeMention, NotificationTypeSystem:
		return true
	}
	return false
}

// Notification is a persisted event targeted at UserID. ActorID is the user
// who triggered it; nil for system notifications or when the actor was
// deleted.
type Notification struct {
	ID         int64      `db:"id" json:"id"`
	UserID     int64      `db:"user_id" json:"user_id"`
	ActorID    *int64     `db:"actor_id" json:"actor_id,omitempty"`
	Type       string     `db:"type" json:"type"`
	Title      string     `db:"title" json:"title"`
	Message    string     `db:"message" json:"message"`
	IsRead     bool       `db:"is_read" json:"is_read"`
	IsArchived bool       `db:"is_archived" json:"is_archived"`
	PostID     *int64     `db:"post_id" json:"post_id,omitempty"`
	CommentID  *int64     `db:"comment_id" json:"comment_id,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at" json:"updated_at,omitempty"`

	// Joined field; nil when the actor is absent.
	Actor *UserSummary `json:"actor,omitempty"`
}

// NotificationFilter narrows a notification listing. Nil fields match
// everything.
type NotificationFilter struct {
	Type       *string
	IsRead     *bool
	IsArchived *bool
}

// NotificationStats summarizes a user's notifications for badge display.
type NotificationStats struct {
	Total  int `db:"total" json:"total"`
	Unread int `db:"unread" json:"unread"`
	Recent int `db:"recent" json:"recent"` // created within the last 24 hours
}

// MarkReadRequest is the request body for marking notifications as read.
type MarkReadRequest struct {
	NotificationIDs []int64 `json:"notification_ids"`
}

var (
	// ErrNotificationNotFound is returned when no notification matching the
	// id(s) belongs to the user.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrInvalidNotificationType is returned for a type outside the closed set.
	ErrInvalidNotificationType = errors.New("invalid notification type")
)
