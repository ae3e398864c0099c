package model

import "errors"

// Upload limits and avatar normalization settings.
const (
	MaxAvatarSizeBytes = 5 * 1024 * 1024
	MaxMediaSizeBytes  = 20 * 1024 * 1024

	AvatarWidth  = 400
	AvatarHeight = 400
	AvatarExt    = ".jpg"

	AvatarFolder = "avatars"
	MediaFolder  = "media"

	ContentTypeJPEG = "image/jpeg"

	AvatarCacheControl = "public, max-age=31536000"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func IsAllowedImageType(contentType string) bool {
	return allowedImageTypes[contentType]
}

// UploadResult is returned after a successful upload.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

var (
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidImageType = errors.New("invalid image type")
)
