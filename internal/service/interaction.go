package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"

	"github.com/n200534/socioconnect/internal/model"
	"github.com/n200534/socioconnect/internal/repository"
)

// Notifier receives interaction events after they commit. Implementations
// must be best-effort: they log failures and never return them.
type Notifier interface {
	NotifyLike(ctx context.Context, actorID, recipientID, postID int64)
	NotifyComment(ctx context.Context, actorID, recipientID, postID, commentID int64)
	NotifyRepost(ctx context.Context, actorID, recipientID, postID int64)
	NotifyFollow(ctx context.Context, actorID, recipientID int64)
}

// InteractionService handles likes, reposts, follows and comments. Every
// toggle resolves races through the unique constraints rather than the
// read-before-write existence check.
type InteractionService struct {
	likeRepo    repository.LikeRepository
	repostRepo  repository.RepostRepository
	followRepo  repository.FollowRepository
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	notifier    Notifier
	db          *sqlx.DB
}

func NewInteractionService(
	likeRepo repository.LikeRepository,
	repostRepo repository.RepostRepository,
	followRepo repository.FollowRepository,
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
	db *sqlx.DB,
) *InteractionService {
	return &InteractionService{
		likeRepo:    likeRepo,
		repostRepo:  repostRepo,
		followRepo:  followRepo,
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		db:          db,
	}
}

// ToggleLike likes the post if the user has not liked it, and unlikes it
// otherwise. The returned result reports the state after the call.
func (s *InteractionService) ToggleLike(ctx context.Context, userID, postID int64) (*model.ToggleResult, error) {
	authorID, err := s.postRepo.GetAuthorID(ctx, postID)
	if err != nil {
		return nil, err
	}

	deleted, err := s.likeRepo.Delete(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if deleted {
		return &model.ToggleResult{Active: false}, nil
	}

	if err := s.likeRepo.Insert(ctx, userID, postID); err != nil {
		return nil, err
	}

	s.notifier.NotifyLike(ctx, userID, authorID, postID)
	return &model.ToggleResult{Active: true}, nil
}

// ToggleRepost creates or removes a repost. A repost is the edge row plus a
// synthetic post attributed to the reposter; both rows change inside one
// transaction in either direction.
func (s *InteractionService) ToggleRepost(ctx context.Context, userID, postID int64) (*model.ToggleResult, error) {
	authorID, err := s.postRepo.GetAuthorID(ctx, postID)
	if err != nil {
		return nil, err
	}

	exists, err := s.repostRepo.Exists(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if exists {
		deleted, err := s.repostRepo.Delete(ctx, tx, userID, postID)
		if err != nil {
			return nil, err
		}
		if deleted {
			// The synthetic post may already be gone; edge removal still stands.
			if _, err := s.postRepo.DeleteSynthetic(ctx, tx, userID, postID); err != nil {
				return nil, err
			}
		}
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("commit transaction: %w", err)
		}
		return &model.ToggleResult{Active: false}, nil
	}

	if err := s.repostRepo.Insert(ctx, tx, userID, postID); err != nil {
		return nil, err
	}
	if _, err := s.postRepo.InsertSynthetic(ctx, tx, userID, postID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	s.notifier.NotifyRepost(ctx, userID, authorID, postID)
	return &model.ToggleResult{Active: true}, nil
}

// ToggleFollow follows the target if not already followed, and unfollows
// otherwise. Following yourself is rejected.
func (s *InteractionService) ToggleFollow(ctx context.Context, followerID, targetID int64) (*model.ToggleResult, error) {
	if followerID == targetID {
		return nil, model.ErrCannotFollowSelf
	}

	exists, err := s.userRepo.Exists(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrUserNotFound
	}

	deleted, err := s.followRepo.Delete(ctx, followerID, targetID)
	if err != nil {
		return nil, err
	}
	if deleted {
		return &model.ToggleResult{Active: false}, nil
	}

	if err := s.followRepo.Insert(ctx, followerID, targetID); err != nil {
		return nil, err
	}

	s.notifier.NotifyFollow(ctx, followerID, targetID)
	return &model.ToggleResult{Active: true}, nil
}

// CreateComment adds a comment to a post. A reply's parent must exist and
// belong to the same post.
func (s *InteractionService) CreateComment(ctx context.Context, authorID, postID int64, req *model.CreateCommentRequest) (*model.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, model.ErrCommentContentRequired
	}
	if utf8.RuneCountInString(content) > model.MaxCommentLength {
		return nil, model.ErrCommentContentTooLong
	}

	postAuthorID, err := s.postRepo.GetAuthorID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, model.ErrParentCommentMismatch
		}
	}

	comment := &model.Comment{
		Content:  content,
		AuthorID: authorID,
		PostID:   postID,
		ParentID: req.ParentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if author, err := s.userRepo.GetByID(ctx, authorID); err == nil {
		comment.Author = &model.UserSummary{
			ID:         author.ID,
			Username:   author.Username,
			FullName:   author.FullName,
			AvatarURL:  author.AvatarURL,
			IsVerified: author.IsVerified,
		}
	}

	s.notifier.NotifyComment(ctx, authorID, postAuthorID, postID, comment.ID)
	return comment, nil
}

// ListComments returns a post's top-level comments, oldest first, each with
// its direct replies attached.
func (s *InteractionService) ListComments(ctx context.Context, postID int64) ([]model.Comment, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrPostNotFound
	}

	comments, err := s.commentRepo.ListTopLevel(ctx, postID)
	if err != nil {
		return nil, err
	}

	for i := range comments {
		replies, err := s.commentRepo.ListReplies(ctx, comments[i].ID)
		if err != nil {
			return nil, err
		}
		comments[i].Replies = replies
	}
	return comments, nil
}
