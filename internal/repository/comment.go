package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/n200534/socioconnect/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, c *model.Comment) error {
	query := `
		INSERT INTO comments (content, author_id, post_id, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, c.Content, c.AuthorID, c.PostID, c.ParentID).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	query := `
		SELECT id, content, author_id, post_id, parent_id, created_at, updated_at
		FROM comments
		WHERE id = $1
	`
	var comment model.Comment
	err := r.db.GetContext(ctx, &comment, query, commentID)
	if err == sql.ErrNoRows {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &comment, nil
}

func (r *commentRepository) ListTopLevel(ctx context.Context, postID int64) ([]model.Comment, error) {
	query := commentSelect + `
		WHERE c.post_id = $1 AND c.parent_id IS NULL
		ORDER BY c.created_at ASC, c.id ASC
	`
	return r.selectComments(ctx, query, postID)
}

func (r *commentRepository) ListReplies(ctx context.Context, parentID int64) ([]model.Comment, error) {
	query := commentSelect + `
		WHERE c.parent_id = $1
		ORDER BY c.created_at ASC, c.id ASC
	`
	return r.selectComments(ctx, query, parentID)
}

const commentSelect = `
	SELECT c.id, c.content, c.author_id, c.post_id, c.parent_id, c.created_at, c.updated_at,
	       u.id AS "author.id", u.username AS "author.username",
	       u.full_name AS "author.full_name", u.avatar_url AS "author.avatar_url",
	       u.is_verified AS "author.is_verified"
	FROM comments c
	JOIN users u ON u.id = c.author_id
`

func (r *commentRepository) selectComments(ctx context.Context, query string, arg int64) ([]model.Comment, error) {
	type commentRow struct {
		ID        int64      `db:"id"`
		Content   string     `db:"content"`
		AuthorID  int64      `db:"author_id"`
		PostID    int64      `db:"post_id"`
		ParentID  *int64     `db:"parent_id"`
		CreatedAt time.Time  `db:"created_at"`
		UpdatedAt *time.Time `db:"updated_at"`

		AuthorUserID     int64   `db:"author.id"`
		AuthorUsername   string  `db:"author.username"`
		AuthorFullName   string  `db:"author.full_name"`
		AuthorAvatarURL  *string `db:"author.avatar_url"`
		AuthorIsVerified bool    `db:"author.is_verified"`
	}

	var rows []commentRow
	err := r.db.SelectContext(ctx, &rows, query, arg)
	if err != nil {
		return nil, fmt.Errorf("select comments: %w", err)
	}

	comments := make([]model.Comment, len(rows))
	for i, row := range rows {
		comments[i] = model.Comment{
			ID:        row.ID,
			Content:   row.Content,
			AuthorID:  row.AuthorID,
			PostID:    row.PostID,
			ParentID:  row.ParentID,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
			Author: &model.UserSummary{
				ID:         row.AuthorUserID,
				Username:   row.AuthorUsername,
				FullName:   row.AuthorFullName,
				AvatarURL:  row.AuthorAvatarURL,
				IsVerified: row.AuthorIsVerified,
			},
		}
	}
	return comments, nil
}
