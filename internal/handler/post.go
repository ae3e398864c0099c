package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/n200534/socioconnect/internal/httputil"
	"github.com/n200534/socioconnect/internal/model"
	"github.com/n200534/socioconnect/internal/service"
	"github.com/n200534/socioconnect/internal/transport/http/middleware"
)

type PostHandler struct {
	postService *service.PostService
	feedService *service.FeedService
}

func NewPostHandler(postService *service.PostService, feedService *service.FeedService) *PostHandler {
	return &PostHandler{
		postService: postService,
		feedService: feedService,
	}
}

// Create publishes a new post or reply
// POST /posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	post, err := h.postService.Create(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostContentRequired):
			httputil.WriteBadRequest(w, "Post content is required")
		case errors.Is(err, model.ErrPostContentTooLong):
			httputil.WriteBadRequest(w, "Post content exceeds the maximum length")
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Parent post not found")
		default:
			log.Printf("[ERROR] Create post handler: %v", err)
			httputil.WriteInternalError(w, "Failed to create post")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, post)
}

// Get returns a single post with author and counts
// GET /posts/{id}
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	post, err := h.postService.GetByID(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] Get post handler: %v", err)
		httputil.WriteInternalError(w, "Failed to load post")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}

// Delete removes the authenticated user's own post
// DELETE /posts/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	if err := h.postService.Delete(r.Context(), postID, userID); err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrNotPostOwner):
			httputil.WriteForbidden(w, "You can only delete your own posts")
		default:
			log.Printf("[ERROR] Delete post handler: %v", err)
			httputil.WriteInternalError(w, "Failed to delete post")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListReplies returns a post's direct replies
// GET /posts/{id}/replies
func (h *PostHandler) ListReplies(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	replies, err := h.postService.ListReplies(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] ListReplies handler: %v", err)
		httputil.WriteInternalError(w, "Failed to load replies")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"replies": replies,
	})
}

// Feed returns the authenticated user's home timeline
// GET /feed?page=...&size=...
func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	page := parseIntQuery(r, "page", 1)
	size := parseIntQuery(r, "size", service.DefaultFeedPageSize)

	feed, err := h.feedService.Feed(r.Context(), userID, page, size)
	if err != nil {
		log.Printf("[ERROR] Feed handler: %v", err)
		httputil.WriteInternalError(w, "Failed to load feed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, feed)
}
