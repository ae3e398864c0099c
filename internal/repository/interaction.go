package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/n200534/socioconnect/internal/model"
)

// uniqueViolation is the PostgreSQL error code for unique constraint
// violations. Toggle inserts rely on it to detect concurrent duplicates.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == uniqueViolation
}

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Insert(ctx context.Context, userID, postID int64) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO likes (user_id, post_id) VALUES ($1, $2)`, userID, postID)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyLiked
		}
		return fmt.Errorf("insert like: %w", err)
	}
	return nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, postID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, postID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM likes WHERE user_id = $1 AND post_id = $2)`, userID, postID)
	if err != nil {
		return false, fmt.Errorf("check like existence: %w", err)
	}
	return exists, nil
}

type repostRepository struct {
	db *sqlx.DB
}

func NewRepostRepository(db *sqlx.DB) RepostRepository {
	return &repostRepository{db: db}
}

// Insert creates the repost edge inside the caller's transaction so the edge
// and its synthetic post commit together.
func (r *repostRepository) Insert(ctx context.Context, tx *sqlx.Tx, userID, postID int64) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO reposts (user_id, post_id) VALUES ($1, $2)`, userID, postID)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyReposted
		}
		return fmt.Errorf("insert repost: %w", err)
	}
	return nil
}

func (r *repostRepository) Delete(ctx context.Context, tx *sqlx.Tx, userID, postID int64) (bool, error) {
	result, err := tx.ExecContext(ctx, `DELETE FROM reposts WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return false, fmt.Errorf("delete repost: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *repostRepository) Exists(ctx context.Context, userID, postID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM reposts WHERE user_id = $1 AND post_id = $2)`, userID, postID)
	if err != nil {
		return false, fmt.Errorf("check repost existence: %w", err)
	}
	return exists, nil
}

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Insert(ctx context.Context, followerID, followingID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO follows (follower_id, following_id) VALUES ($1, $2)`, followerID, followingID)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyFollowing
		}
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`, followerID, followingID)
	if err != nil {
		return false, fmt.Errorf("delete follow: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)`,
		followerID, followingID)
	if err != nil {
		return false, fmt.Errorf("check follow existence: %w", err)
	}
	return exists, nil
}

func (r *followRepository) GetFollowingIDs(ctx context.Context, followerID int64) ([]int64, error) {
	ids := []int64{}
	err := r.db.SelectContext(ctx, &ids,
		`SELECT following_id FROM follows WHERE follower_id = $1`, followerID)
	if err != nil {
		return nil, fmt.Errorf("get following ids: %w", err)
	}
	return ids, nil
}

func (r *followRepository) ListFollowers(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error) {
	users := []model.UserSummary{}
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar_url, u.is_verified
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC, u.id DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &users, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return users, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error) {
	users := []model.UserSummary{}
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar_url, u.is_verified
		FROM follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC, u.id DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &users, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return users, nil
}

// CountFollowers derives the count from the edge rows so it can never drift.
func (r *followRepository) CountFollowers(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM follows WHERE following_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("count followers: %w", err)
	}
	return count, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("count following: %w", err)
	}
	return count, nil
}
