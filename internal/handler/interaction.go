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

type InteractionHandler struct {
	interactionService *service.InteractionService
}

func NewInteractionHandler(interactionService *service.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService}
}

// ToggleLike likes or unlikes a post
// POST /posts/{id}/like
func (h *InteractionHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, postID, ok := h.authAndPostID(w, r)
	if !ok {
		return
	}

	result, err := h.interactionService.ToggleLike(r.Context(), userID, postID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrAlreadyLiked):
			httputil.WriteConflict(w, "Post already liked")
		default:
			log.Printf("[ERROR] ToggleLike handler: %v", err)
			httputil.WriteInternalError(w, "Failed to toggle like")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"liked": result.Active})
}

// ToggleRepost reposts or un-reposts a post
// POST /posts/{id}/repost
func (h *InteractionHandler) ToggleRepost(w http.ResponseWriter, r *http.Request) {
	userID, postID, ok := h.authAndPostID(w, r)
	if !ok {
		return
	}

	result, err := h.interactionService.ToggleRepost(r.Context(), userID, postID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrAlreadyReposted):
			httputil.WriteConflict(w, "Post already reposted")
		default:
			log.Printf("[ERROR] ToggleRepost handler: %v", err)
			httputil.WriteInternalError(w, "Failed to toggle repost")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"reposted": result.Active})
}

// ToggleFollow follows or unfollows a user
// POST /users/{id}/follow
func (h *InteractionHandler) ToggleFollow(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	targetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	result, err := h.interactionService.ToggleFollow(r.Context(), userID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCannotFollowSelf):
			httputil.WriteBadRequest(w, "You cannot follow yourself")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		case errors.Is(err, model.ErrAlreadyFollowing):
			httputil.WriteConflict(w, "Already following this user")
		default:
			log.Printf("[ERROR] ToggleFollow handler: %v", err)
			httputil.WriteInternalError(w, "Failed to toggle follow")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"following": result.Active})
}

// CreateComment adds a comment or reply to a post
// POST /posts/{id}/comments
func (h *InteractionHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, postID, ok := h.authAndPostID(w, r)
	if !ok {
		return
	}

	var req model.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	comment, err := h.interactionService.CreateComment(r.Context(), userID, postID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Parent comment not found")
		case errors.Is(err, model.ErrCommentContentRequired):
			httputil.WriteBadRequest(w, "Comment content is required")
		case errors.Is(err, model.ErrCommentContentTooLong):
			httputil.WriteBadRequest(w, "Comment content exceeds the maximum length")
		case errors.Is(err, model.ErrParentCommentMismatch):
			httputil.WriteBadRequest(w, "Parent comment does not belong to this post")
		default:
			log.Printf("[ERROR] CreateComment handler: %v", err)
			httputil.WriteInternalError(w, "Failed to create comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, comment)
}

// ListComments returns a post's top-level comments with replies
// GET /posts/{id}/comments
func (h *InteractionHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	comments, err := h.interactionService.ListComments(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] ListComments handler: %v", err)
		httputil.WriteInternalError(w, "Failed to load comments")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"comments": comments,
	})
}

func (h *InteractionHandler) authAndPostID(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return 0, 0, false
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return 0, 0, false
	}
	return userID, postID, true
}
