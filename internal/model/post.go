package model

import (
	"errors"
	"time"
)

// Post represents authored content. A reply carries ParentID; a repost is a
// synthetic row with IsRepost set and OriginalPostID pointing at the source.
type Post struct {
	ID             int64     `db:"id" json:"id"`
	Content        string    `db:"content" json:"content"`
	AuthorID       int64     `db:"author_id" json:"author_id"`
	ParentID       *int64    `db:"parent_id" json:"parent_id,omitempty"`
	MediaURL       *string   `db:"media_url" json:"media_url,omitempty"`
	MediaType      *string   `db:"media_type" json:"media_type,omitempty"`
	IsReply        bool      `db:"is_reply" json:"is_reply"`
	IsRepost       bool      `db:"is_repost" json:"is_repost"`
	OriginalPostID *int64    `db:"original_post_id" json:"original_post_id,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`

	// Derived engagement counts, computed by COUNT queries at read time.
	LikesCount    int `db:"likes_count" json:"likes_count"`
	CommentsCount int `db:"comments_count" json:"comments_count"`
	RepostsCount  int `db:"reposts_count" json:"reposts_count"`

	// Joined field
	Author *UserSummary `json:"author,omitempty"`
}

// TotalEngagement is the sum of the derived counts.
func (p *Post) TotalEngagement() int {
	return p.LikesCount + p.CommentsCount + p.RepostsCount
}

// CreatePostRequest is the request body for creating a post.
type CreatePostRequest struct {
	Content   string  `json:"content"`
	ParentID  *int64  `json:"parent_id,omitempty"`
	MediaURL  *string `json:"media_url,omitempty"`
	MediaType *string `json:"media_type,omitempty"`
}

// PostFeed is the paginated post list response for the feed and user pages.
type PostFeed struct {
	Posts   []Post `json:"posts"`
	Total   int    `json:"total"`
	Page    int    `json:"page"`
	Size    int    `json:"size"`
	HasNext bool   `json:"has_next"`
	HasPrev bool   `json:"has_prev"`
}

// Post constraints
const (
	MaxPostContentLength = 2000

	// RepostContent is the placeholder content written into the synthetic
	// post row that marks a repost.
	RepostContent = "Reposted"
)

var (
	// ErrPostNotFound is returned when a post cannot be found.
	ErrPostNotFound = errors.New("post not found")

	// ErrNotPostOwner is returned when a user mutates a post they don't own.
	ErrNotPostOwner = errors.New("not the owner of this post")

	// ErrPostContentRequired is returned for empty post content.
	ErrPostContentRequired = errors.New("post content is required")

	// ErrPostContentTooLong is returned when content exceeds the limit.
	ErrPostContentTooLong = errors.New("post content too long")
)
