package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	authsvc "github.com/mlebedz/pairline/backend/internal/services/auth"
	mediasvc "github.com/mlebedz/pairline/backend/internal/services/media"
	"github.com/mlebedz/pairline/backend/internal/transport/http/dto"
)

const maxAvatarFormBytes = 6 << 20

type MediaService interface {
	UploadAvatar(ctx context.Context, userID int64, contentType string, body io.Reader, size int64) (mediasvc.Avatar, error)
}

type MediaHandler struct {
	service MediaService
	logger  *zap.Logger
}

func NewMediaHandler(service MediaService, logger *zap.Logger) *MediaHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MediaHandler{service: service, logger: logger}
}

// UploadAvatar accepts a multipart form with a "file" part.
func (h *MediaHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarFormBytes)
	if err := r.ParseMultipartForm(maxAvatarFormBytes); err != nil {
		writeValidation(w, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeValidation(w, "file part is required")
		return
	}
	defer file.Close()

	avatar, err := h.service.UploadAvatar(r.Context(), identity.UserID, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		switch {
		case errors.Is(err, mediasvc.ErrValidation):
			writeValidation(w, "unsupported avatar file")
		case errors.Is(err, mediasvc.ErrNotFound):
			writeNotFound(w, "NOT_FOUND", "user not found")
		default:
			h.logger.Error("avatar upload failed", zap.Error(err))
			writeInternal(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.AvatarResponse{
		AvatarKey: avatar.Key,
		AvatarURL: avatar.URL,
	})
}
