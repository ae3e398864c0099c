package handler

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/n200534/socioconnect/internal/httputil"
	"github.com/n200534/socioconnect/internal/model"
	"github.com/n200534/socioconnect/internal/service"
	"github.com/n200534/socioconnect/internal/transport/http/middleware"
)

type UploadHandler struct {
	mediaService *service.MediaService
	userService  *service.UserService
}

func NewUploadHandler(mediaService *service.MediaService, userService *service.UserService) *UploadHandler {
	return &UploadHandler{
		mediaService: mediaService,
		userService:  userService,
	}
}

// UploadAvatar accepts a multipart image, stores the normalized avatar and
// saves the URL on the user's profile
// POST /uploads/avatar
func (h *UploadHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	file, header, ok := h.formFile(w, r, model.MaxAvatarSizeBytes)
	if !ok {
		return
	}
	defer file.Close()

	upload, err := h.mediaService.UploadAvatar(r.Context(), file, header)
	if err != nil {
		h.writeUploadError(w, err, "avatar")
		return
	}

	if _, err := h.userService.Update(r.Context(), userID, &model.UpdateUserRequest{AvatarURL: &upload.URL}); err != nil {
		log.Printf("[ERROR] UploadAvatar handler: failed to save avatar URL: %v", err)
		httputil.WriteInternalError(w, "Failed to save avatar")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, upload)
}

// UploadMedia accepts a multipart image and returns the stored URL for use
// in a subsequent post creation
// POST /uploads/media
func (h *UploadHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	file, header, ok := h.formFile(w, r, model.MaxMediaSizeBytes)
	if !ok {
		return
	}
	defer file.Close()

	upload, err := h.mediaService.UploadMedia(r.Context(), file, header)
	if err != nil {
		h.writeUploadError(w, err, "media")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, upload)
}

func (h *UploadHandler) formFile(w http.ResponseWriter, r *http.Request, maxSize int64) (multipart.File, *multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+1024*1024)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		httputil.WriteBadRequest(w, "Invalid multipart form data")
		return nil, nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteBadRequest(w, "Form field 'file' is required")
		return nil, nil, false
	}
	return file, header, true
}

func (h *UploadHandler) writeUploadError(w http.ResponseWriter, err error, kind string) {
	switch {
	case errors.Is(err, model.ErrFileTooLarge):
		httputil.WriteBadRequest(w, "File exceeds the size limit")
	case errors.Is(err, model.ErrInvalidImageType):
		httputil.WriteBadRequest(w, "Unsupported image type. Allowed: jpeg, png, gif, webp")
	default:
		log.Printf("[ERROR] Upload %s handler: %v", kind, err)
		httputil.WriteInternalError(w, "Failed to upload file")
	}
}
