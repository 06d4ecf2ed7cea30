package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	authsvc "github.com/mlebedz/pairline/backend/internal/services/auth"
	"github.com/mlebedz/pairline/backend/internal/services/profiles"
	"github.com/mlebedz/pairline/backend/internal/transport/http/dto"
)

type ProfileService interface {
	Get(ctx context.Context, userID int64) (profiles.Profile, error)
	Update(ctx context.Context, userID int64, in profiles.UpdateInput) (profiles.Profile, error)
	Onboard(ctx context.Context, userID int64, in profiles.OnboardInput) (profiles.Profile, error)
}

type ProfileHandler struct {
	service ProfileService
	logger  *zap.Logger
}

func NewProfileHandler(service ProfileService, logger *zap.Logger) *ProfileHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileHandler{service: service, logger: logger}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	profile, err := h.service.Get(r.Context(), identity.UserID)
	if err != nil {
		h.writeProfileError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse(profile))
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req dto.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	profile, err := h.service.Update(r.Context(), identity.UserID, profiles.UpdateInput{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Interests:   req.Interests,
	})
	if err != nil {
		h.writeProfileError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse(profile))
}

func (h *ProfileHandler) Onboard(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req dto.OnboardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	profile, err := h.service.Onboard(r.Context(), identity.UserID, profiles.OnboardInput{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Interests:   req.Interests,
	})
	if err != nil {
		h.writeProfileError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse(profile))
}

func (h *ProfileHandler) writeProfileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, profiles.ErrValidation):
		writeValidation(w, "invalid profile payload")
	case errors.Is(err, profiles.ErrNotFound):
		writeNotFound(w, "NOT_FOUND", "user not found")
	default:
		h.logger.Error("profile request failed", zap.Error(err))
		writeInternal(w)
	}
}

func profileResponse(profile profiles.Profile) dto.ProfileResponse {
	interests := profile.Interests
	if interests == nil {
		interests = []string{}
	}
	return dto.ProfileResponse{
		UserResponse: userResponse(profile.User),
		Interests:    interests,
	}
}
