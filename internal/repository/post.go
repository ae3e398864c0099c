package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/n200534/socioconnect/internal/model"
)

// postWithAuthor scans the joined post + author + derived-count query shape.
type postWithAuthor struct {
	ID             int64     `db:"id"`
	Content        string    `db:"content"`
	AuthorID       int64     `db:"author_id"`
	ParentID       *int64    `db:"parent_id"`
	MediaURL       *string   `db:"media_url"`
	MediaType      *string   `db:"media_type"`
	IsReply        bool      `db:"is_reply"`
	IsRepost       bool      `db:"is_repost"`
	OriginalPostID *int64    `db:"original_post_id"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
	LikesCount     int       `db:"likes_count"`
	CommentsCount  int       `db:"comments_count"`
	RepostsCount   int       `db:"reposts_count"`

	AuthorUserID     int64   `db:"author.id"`
	AuthorUsername   string  `db:"author.username"`
	AuthorFullName   string  `db:"author.full_name"`
	AuthorAvatarURL  *string `db:"author.avatar_url"`
	AuthorIsVerified bool    `db:"author.is_verified"`
}

func (row postWithAuthor) toPost() model.Post {
	return model.Post{
		ID:             row.ID,
		Content:        row.Content,
		AuthorID:       row.AuthorID,
		ParentID:       row.ParentID,
		MediaURL:       row.MediaURL,
		MediaType:      row.MediaType,
		IsReply:        row.IsReply,
		IsRepost:       row.IsRepost,
		OriginalPostID: row.OriginalPostID,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		LikesCount:     row.LikesCount,
		CommentsCount:  row.CommentsCount,
		RepostsCount:   row.RepostsCount,
		Author: &model.UserSummary{
			ID:         row.AuthorUserID,
			Username:   row.AuthorUsername,
			FullName:   row.AuthorFullName,
			AvatarURL:  row.AuthorAvatarURL,
			IsVerified: row.AuthorIsVerified,
		},
	}
}

// postSelect joins the author summary and computes engagement counts via
// COUNT subqueries so they always equal the underlying edge rows.
const postSelect = `
	SELECT p.id, p.content, p.author_id, p.parent_id, p.media_url, p.media_type,
	       p.is_reply, p.is_repost, p.original_post_id, p.created_at, p.updated_at,
	       (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS likes_count,
	       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comments_count,
	       (SELECT COUNT(*) FROM reposts r WHERE r.post_id = p.id) AS reposts_count,
	       u.id AS "author.id", u.username AS "author.username",
	       u.full_name AS "author.full_name", u.avatar_url AS "author.avatar_url",
	       u.is_verified AS "author.is_verified"
	FROM posts p
	JOIN users u ON u.id = p.author_id
`

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	query := `
		INSERT INTO posts (content, author_id, parent_id, media_url, media_type, is_reply, is_repost, original_post_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		p.Content, p.AuthorID, p.ParentID, p.MediaURL, p.MediaType,
		p.IsReply, p.IsRepost, p.OriginalPostID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	var row postWithAuthor
	err := r.db.GetContext(ctx, &row, postSelect+`WHERE p.id = $1`, postID)
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	post := row.toPost()
	return &post, nil
}

func (r *postRepository) Exists(ctx context.Context, postID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID)
	if err != nil {
		return false, fmt.Errorf("check post exists: %w", err)
	}
	return exists, nil
}

func (r *postRepository) GetAuthorID(ctx context.Context, postID int64) (int64, error) {
	var authorID int64
	err := r.db.GetContext(ctx, &authorID, `SELECT author_id FROM posts WHERE id = $1`, postID)
	if err == sql.ErrNoRows {
		return 0, model.ErrPostNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get author id: %w", err)
	}
	return authorID, nil
}

func (r *postRepository) Delete(ctx context.Context, postID, authorID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1 AND author_id = $2`, postID, authorID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		var exists bool
		r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID)
		if exists {
			return model.ErrNotPostOwner
		}
		return model.ErrPostNotFound
	}
	return nil
}

func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []int64, limit, offset int) ([]model.Post, error) {
	if len(authorIDs) == 0 {
		return []model.Post{}, nil
	}

	query := postSelect + `
		WHERE p.author_id = ANY($1)
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`
	var rows []postWithAuthor
	err := r.db.SelectContext(ctx, &rows, query, pq.Array(authorIDs), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts by authors: %w", err)
	}

	posts := make([]model.Post, len(rows))
	for i, row := range rows {
		posts[i] = row.toPost()
	}
	return posts, nil
}

func (r *postRepository) CountByAuthors(ctx context.Context, authorIDs []int64) (int, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts WHERE author_id = ANY($1)`, pq.Array(authorIDs))
	if err != nil {
		return 0, fmt.Errorf("count posts by authors: %w", err)
	}
	return count, nil
}

func (r *postRepository) ListReplies(ctx context.Context, parentID int64) ([]model.Post, error) {
	query := postSelect + `
		WHERE p.parent_id = $1
		ORDER BY p.created_at ASC, p.id ASC
	`
	var rows []postWithAuthor
	err := r.db.SelectContext(ctx, &rows, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}

	posts := make([]model.Post, len(rows))
	for i, row := range rows {
		posts[i] = row.toPost()
	}
	return posts, nil
}

func (r *postRepository) InsertSynthetic(ctx context.Context, tx *sqlx.Tx, authorID, originalPostID int64) (int64, error) {
	query := `
		INSERT INTO posts (content, author_id, is_repost, original_post_id)
		VALUES ($1, $2, true, $3)
		RETURNING id
	`
	var id int64
	err := tx.GetContext(ctx, &id, query, model.RepostContent, authorID, originalPostID)
	if err != nil {
		return 0, fmt.Errorf("insert synthetic post: %w", err)
	}
	return id, nil
}

func (r *postRepository) DeleteSynthetic(ctx context.Context, tx *sqlx.Tx, authorID, originalPostID int64) (bool, error) {
	query := `
		DELETE FROM posts
		WHERE author_id = $1 AND is_repost = true AND original_post_id = $2
	`
	result, err := tx.ExecContext(ctx, query, authorID, originalPostID)
	if err != nil {
		return false, fmt.Errorf("delete synthetic post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}
	return rows > 0, nil
}
