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

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns the user's notifications with optional filters
// GET /notifications?type=...&is_read=...&is_archived=...&limit=...&offset=...
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var filter model.NotificationFilter
	if t := r.URL.Query().Get("type"); t != "" {
		filter.Type = &t
	}
	if v, ok := parseBoolQuery(r, "is_read"); ok {
		filter.IsRead = &v
	}
	if v, ok := parseBoolQuery(r, "is_archived"); ok {
		filter.IsArchived = &v
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	notifications, err := h.notificationService.List(r.Context(), userID, filter, limit, offset)
	if err != nil {
		if errors.Is(err, model.ErrInvalidNotificationType) {
			httputil.WriteBadRequest(w, "Invalid notification type")
			return
		}
		log.Printf("[ERROR] List notifications handler: %v", err)
		httputil.WriteInternalError(w, "Failed to load notifications")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
	})
}

// Stats returns badge counts. Always 200; errors degrade to zeros.
// GET /notifications/stats
func (h *NotificationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, h.notificationService.Stats(r.Context(), userID))
}

// MarkRead marks specific notifications as read
// POST /notifications/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.MarkReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	count, err := h.notificationService.MarkRead(r.Context(), userID, req.NotificationIDs)
	if err != nil {
		if errors.Is(err, model.ErrNotificationNotFound) {
			httputil.WriteNotFound(w, "No matching notifications")
			return
		}
		log.Printf("[ERROR] MarkRead handler: %v", err)
		httputil.WriteInternalError(w, "Failed to mark notifications read")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]int{"updated": count})
}

// MarkAllRead marks every unread notification as read
// POST /notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	count, err := h.notificationService.MarkAllRead(r.Context(), userID)
	if err != nil {
		log.Printf("[ERROR] MarkAllRead handler: %v", err)
		httputil.WriteInternalError(w, "Failed to mark notifications read")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]int{"updated": count})
}

// Archive archives a single notification
// POST /notifications/{id}/archive
func (h *NotificationHandler) Archive(w http.ResponseWriter, r *http.Request) {
	userID, notificationID, ok := h.authAndNotificationID(w, r)
	if !ok {
		return
	}

	if err := h.notificationService.Archive(r.Context(), userID, notificationID); err != nil {
		if errors.Is(err, model.ErrNotificationNotFound) {
			httputil.WriteNotFound(w, "Notification not found")
			return
		}
		log.Printf("[ERROR] Archive notification handler: %v", err)
		httputil.WriteInternalError(w, "Failed to archive notification")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "archived"})
}

// Delete removes a single notification
// DELETE /notifications/{id}
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, notificationID, ok := h.authAndNotificationID(w, r)
	if !ok {
		return
	}

	if err := h.notificationService.Delete(r.Context(), userID, notificationID); err != nil {
		if errors.Is(err, model.ErrNotificationNotFound) {
			httputil.WriteNotFound(w, "Notification not found")
			return
		}
		log.Printf("[ERROR] Delete notification handler: %v", err)
		httputil.WriteInternalError(w, "Failed to delete notification")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// DeleteAll removes every notification for the user
// DELETE /notifications
func (h *NotificationHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	count, err := h.notificationService.DeleteAll(r.Context(), userID)
	if err != nil {
		log.Printf("[ERROR] DeleteAll notifications handler: %v", err)
		httputil.WriteInternalError(w, "Failed to delete notifications")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]int{"deleted": count})
}

func (h *NotificationHandler) authAndNotificationID(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return 0, 0, false
	}

	notificationID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid notification ID")
		return 0, 0, false
	}
	return userID, notificationID, true
}

func parseBoolQuery(r *http.Request, name string) (bool, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return false, false
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, false
	}
	return parsed, true
}
