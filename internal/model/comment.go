package model

import (
	"errors"
	"time"
)

// Comment is content bound to (author, post). A reply references a top-level
// comment on the same post via ParentID; threading is one level deep.
type Comment struct {
	ID        int64      `db:"id" json:"id"`
	Content   string     `db:"content" json:"content"`
	AuthorID  int64      `db:"author_id" json:"author_id"`
	PostID    int64      `db:"post_id" json:"post_id"`
	ParentID  *int64     `db:"parent_id" json:"parent_id,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`

	// Joined fields
	Author  *UserSummary `json:"author,omitempty"`
	Replies []Comment    `json:"replies,omitempty"`
}

// CreateCommentRequest is the request body for commenting on a post.
type CreateCommentRequest struct {
	Content  string `json:"content"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// MaxCommentLength matches the content column size.
const MaxCommentLength = 500

var (
	// ErrCommentNotFound is returned when a comment cannot be found.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrCommentContentRequired is returned for empty comment content.
	ErrCommentContentRequired = errors.New("comment content is required")

	// ErrCommentContentTooLong is returned when content exceeds the limit.
	ErrCommentContentTooLong = errors.New("comment content too long")

	// ErrParentCommentMismatch is returned when a reply references a parent
	// comment on a different post.
	ErrParentCommentMismatch = errors.New("parent comment does not belong to this post")
)
