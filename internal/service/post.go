package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/n200534/socioconnect/internal/model"
	"github.com/n200534/socioconnect/internal/repository"
)

// PostService handles post creation, retrieval and deletion.
type PostService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// Create publishes a post. When a parent is given the post becomes a reply;
// the parent must exist.
func (s *PostService) Create(ctx context.Context, authorID int64, req *model.CreatePostRequest) (*model.Post, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, model.ErrPostContentRequired
	}
	if utf8.RuneCountInString(content) > model.MaxPostContentLength {
		return nil, model.ErrPostContentTooLong
	}

	post := &model.Post{
		Content:   content,
		AuthorID:  authorID,
		MediaURL:  req.MediaURL,
		MediaType: req.MediaType,
	}

	if req.ParentID != nil {
		exists, err := s.postRepo.Exists(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, model.ErrPostNotFound
		}
		post.ParentID = req.ParentID
		post.IsReply = true
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// GetByID returns a post with its author and computed engagement counts.
func (s *PostService) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// Delete removes the user's own post. Replies, likes, comments and repost
// edges go with it via the foreign key cascades.
func (s *PostService) Delete(ctx context.Context, postID, userID int64) error {
	return s.postRepo.Delete(ctx, postID, userID)
}

// ListReplies returns a post's direct replies, oldest first.
func (s *PostService) ListReplies(ctx context.Context, postID int64) ([]model.Post, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrPostNotFound
	}
	return s.postRepo.ListReplies(ctx, postID)
}
