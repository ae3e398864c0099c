package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/n200534/socioconnect/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, user *model.User) error
	Search(ctx context.Context, query string, limit, offset int) ([]model.User, error)
	// CountPosts returns the number of posts authored by the user.
	CountPosts(ctx context.Context, userID int64) (int, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, postID int64) (*model.Post, error)
	Exists(ctx context.Context, postID int64) (bool, error)
	// GetAuthorID returns the author of a post without loading the row.
	GetAuthorID(ctx context.Context, postID int64) (int64, error)
	Delete(ctx context.Context, postID, authorID int64) error
	// ListByAuthors returns posts authored by any of authorIDs, newest first,
	// with author summary and derived engagement counts joined in.
	ListByAuthors(ctx context.Context, authorIDs []int64, limit, offset int) ([]model.Post, error)
	CountByAuthors(ctx context.Context, authorIDs []int64) (int, error)
	ListReplies(ctx context.Context, parentID int64) ([]model.Post, error)
	// InsertSynthetic inserts the synthetic post row that marks a repost.
	InsertSynthetic(ctx context.Context, tx *sqlx.Tx, authorID, originalPostID int64) (int64, error)
	// DeleteSynthetic removes the synthetic post matched by author +
	// is_repost + original_post_id. Returns false when no row matched.
	DeleteSynthetic(ctx context.Context, tx *sqlx.Tx, authorID, originalPostID int64) (bool, error)
}

type LikeRepository interface {
	// Insert creates the like edge. A duplicate pair surfaces the unique
	// constraint as model.ErrAlreadyLiked.
	Insert(ctx context.Context, userID, postID int64) error
	// Delete removes the edge. Returns false when no edge existed.
	Delete(ctx context.Context, userID, postID int64) (bool, error)
	Exists(ctx context.Context, userID, postID int64) (bool, error)
}

type RepostRepository interface {
	Insert(ctx context.Context, tx *sqlx.Tx, userID, postID int64) error
	Delete(ctx context.Context, tx *sqlx.Tx, userID, postID int64) (bool, error)
	Exists(ctx context.Context, userID, postID int64) (bool, error)
}

type FollowRepository interface {
	Insert(ctx context.Context, followerID, followingID int64) error
	Delete(ctx context.Context, followerID, followingID int64) (bool, error)
	Exists(ctx context.Context, followerID, followingID int64) (bool, error)
	// GetFollowingIDs returns the ids of users the given user follows.
	GetFollowingIDs(ctx context.Context, followerID int64) ([]int64, error)
	// ListFollowers returns summaries of the users following userID, most
	// recent follow first.
	ListFollowers(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error)
	// ListFollowing returns summaries of the users userID follows, most
	// recent follow first.
	ListFollowing(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error)
	CountFollowers(ctx context.Context, userID int64) (int, error)
	CountFollowing(ctx context.Context, userID int64) (int, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, commentID int64) (*model.Comment, error)
	// ListTopLevel returns comments with no parent for a post, oldest first,
	// with author summary joined in.
	ListTopLevel(ctx context.Context, postID int64) ([]model.Comment, error)
	// ListReplies returns the direct replies of a comment, oldest first.
	ListReplies(ctx context.Context, parentID int64) ([]model.Comment, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	List(ctx context.Context, userID int64, filter model.NotificationFilter, limit, offset int) ([]model.Notification, error)
	Stats(ctx context.Context, userID int64) (*model.NotificationStats, error)
	// MarkRead marks the user's notifications among ids as read and returns
	// the number of rows updated.
	MarkRead(ctx context.Context, userID int64, ids []int64) (int, error)
	MarkAllRead(ctx context.Context, userID int64) (int, error)
	Archive(ctx context.Context, userID, id int64) error
	Delete(ctx context.Context, userID, id int64) error
	DeleteAll(ctx context.Context, userID int64) (int, error)
}
