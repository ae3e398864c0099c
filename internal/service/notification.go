package service

import (
	"context"
	"fmt"
	"log"

	"github.com/n200534/socioconnect/internal/model"
	"github.com/n200534/socioconnect/internal/repository"
)

// NotificationService creates and manages per-user notifications. Creation is
// best-effort: a failed insert is logged and never propagated to the action
// that triggered it.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository, userRepo repository.UserRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// Notify inserts a notification for the recipient. Users never receive
// notifications about their own actions.
func (s *NotificationService) Notify(ctx context.Context, n *model.Notification) error {
	if !model.ValidNotificationType(n.Type) {
		return model.ErrInvalidNotificationType
	}
	if n.ActorID != nil && *n.ActorID == n.UserID {
		return nil
	}
	return s.notificationRepo.Create(ctx, n)
}

func (s *NotificationService) NotifyLike(ctx context.Context, actorID, recipientID, postID int64) {
	if actorID == recipientID {
		return
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		log.Printf("[NotificationService] Failed to load actor %d for like notification: %v", actorID, err)
		return
	}
	s.create(ctx, &model.Notification{
		UserID:  recipientID,
		ActorID: &actorID,
		Type:    model.NotificationTypeLike,
		Title:   "New like",
		Message: fmt.Sprintf("%s liked your post", actor.DisplayName()),
		PostID:  &postID,
	})
}

func (s *NotificationService) NotifyComment(ctx context.Context, actorID, recipientID, postID, commentID int64) {
	if actorID == recipientID {
		return
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		log.Printf("[NotificationService] Failed to load actor %d for comment notification: %v", actorID, err)
		return
	}
	s.create(ctx, &model.Notification{
		UserID:    recipientID,
		ActorID:   &actorID,
		Type:      model.NotificationTypeComment,
		Title:     "New comment",
		Message:   fmt.Sprintf("%s commented on your post", actor.DisplayName()),
		PostID:    &postID,
		CommentID: &commentID,
	})
}

func (s *NotificationService) NotifyRepost(ctx context.Context, actorID, recipientID, postID int64) {
	if actorID == recipientID {
		return
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		log.Printf("[NotificationService] Failed to load actor %d for repost notification: %v", actorID, err)
		return
	}
	s.create(ctx, &model.Notification{
		UserID:  recipientID,
		ActorID: &actorID,
		Type:    model.NotificationTypeRepost,
		Title:   "New repost",
		Message: fmt.Sprintf("%s reposted your post", actor.DisplayName()),
		PostID:  &postID,
	})
}

func (s *NotificationService) NotifyFollow(ctx context.Context, actorID, recipientID int64) {
	if actorID == recipientID {
		return
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		log.Printf("[NotificationService] Failed to load actor %d for follow notification: %v", actorID, err)
		return
	}
	s.create(ctx, &model.Notification{
		UserID:  recipientID,
		ActorID: &actorID,
		Type:    model.NotificationTypeFollow,
		Title:   "New follower",
		Message: fmt.Sprintf("%s started following you", actor.DisplayName()),
	})
}

func (s *NotificationService) NotifyMention(ctx context.Context, actorID, recipientID, postID int64) {
	if actorID == recipientID {
		return
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		log.Printf("[NotificationService] Failed to load actor %d for mention notification: %v", actorID, err)
		return
	}
	s.create(ctx, &model.Notification{
		UserID:  recipientID,
		ActorID: &actorID,
		Type:    model.NotificationTypeMention,
		Title:   "You were mentioned",
		Message: fmt.Sprintf("%s mentioned you in a post", actor.DisplayName()),
		PostID:  &postID,
	})
}

// NotifySystem delivers an announcement with no actor.
func (s *NotificationService) NotifySystem(ctx context.Context, recipientID int64, title, message string) {
	s.create(ctx, &model.Notification{
		UserID:  recipientID,
		Type:    model.NotificationTypeSystem,
		Title:   title,
		Message: message,
	})
}

func (s *NotificationService) create(ctx context.Context, n *model.Notification) {
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("[NotificationService] Failed to create %s notification for user %d: %v", n.Type, n.UserID, err)
	}
}

// List returns the user's notifications, newest first, with optional filters
// on type, read state and archived state.
func (s *NotificationService) List(ctx context.Context, userID int64, filter model.NotificationFilter, limit, offset int) ([]model.Notification, error) {
	if filter.Type != nil && !model.ValidNotificationType(*filter.Type) {
		return nil, model.ErrInvalidNotificationType
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.notificationRepo.List(ctx, userID, filter, limit, offset)
}

// Stats returns notification counts for the badge endpoint. Errors degrade to
// zero counts so the badge render never fails the page.
func (s *NotificationService) Stats(ctx context.Context, userID int64) *model.NotificationStats {
	stats, err := s.notificationRepo.Stats(ctx, userID)
	if err != nil {
		log.Printf("[NotificationService] Failed to load stats for user %d: %v", userID, err)
		return &model.NotificationStats{}
	}
	return stats
}

// MarkRead marks the given notifications read if the user owns them and
// returns how many changed.
func (s *NotificationService) MarkRead(ctx context.Context, userID int64, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, model.ErrNotificationNotFound
	}
	count, err := s.notificationRepo.MarkRead(ctx, userID, ids)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, model.ErrNotificationNotFound
	}
	return count, nil
}

// MarkAllRead marks every unread notification read and returns the count.
// Calling it again is a no-op.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) (int, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) Archive(ctx context.Context, userID, notificationID int64) error {
	return s.notificationRepo.Archive(ctx, userID, notificationID)
}

func (s *NotificationService) Delete(ctx context.Context, userID, notificationID int64) error {
	return s.notificationRepo.Delete(ctx, userID, notificationID)
}

func (s *NotificationService) DeleteAll(ctx context.Context, userID int64) (int, error) {
	return s.notificationRepo.DeleteAll(ctx, userID)
}
