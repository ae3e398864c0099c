package model

import (
	"errors"
	"time"
)

// Like is a (user, post) engagement edge. One row per pair, enforced by a
// unique constraint.
type Like struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	PostID    int64     `db:"post_id" json:"post_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Repost is a (user, post) edge paired with a synthetic Post row. The edge
// and the synthetic post are created and deleted together.
type Repost struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	PostID    int64     `db:"post_id" json:"post_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Follow is a (follower, following) edge. Self-follow is rejected at the
// service boundary, duplicates by the unique constraint.
type Follow struct {
	ID          int64     `db:"id" json:"id"`
	FollowerID  int64     `db:"follower_id" json:"follower_id"`
	FollowingID int64     `db:"following_id" json:"following_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ToggleResult reports the resulting presence state of a toggled edge.
type ToggleResult struct {
	Active bool `json:"active"`
}

var (
	// ErrAlreadyLiked is returned when a concurrent duplicate like insert
	// hits the unique constraint.
	ErrAlreadyLiked = errors.New("post already liked")

	// ErrAlreadyReposted is the repost counterpart of ErrAlreadyLiked.
	ErrAlreadyReposted = errors.New("post already reposted")

	// ErrAlreadyFollowing is the follow counterpart of ErrAlreadyLiked.
	ErrAlreadyFollowing = errors.New("already following this user")

	// ErrCannotFollowSelf is returned for follower == target.
	ErrCannotFollowSelf = errors.New("cannot follow yourself")
)
