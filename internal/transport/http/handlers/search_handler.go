package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	authsvc "github.com/mlebedz/pairline/backend/internal/services/auth"
	searchsvc "github.com/mlebedz/pairline/backend/internal/services/search"
	"github.com/mlebedz/pairline/backend/internal/transport/http/dto"
)

type SearchService interface {
	SearchUsers(ctx context.Context, viewerID int64, query string) ([]searchsvc.UserSummary, error)
	GetUser(ctx context.Context, viewerID, targetID int64) (searchsvc.UserView, error)
	Follow(ctx context.Context, followerID, targetID int64) error
	Unfollow(ctx context.Context, followerID, targetID int64) error
}

type SearchHandler struct {
	service SearchService
	logger  *zap.Logger
}

func NewSearchHandler(service SearchService, logger *zap.Logger) *SearchHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchHandler{service: service, logger: logger}
}

func (h *SearchHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	results, err := h.service.SearchUsers(r.Context(), identity.UserID, r.URL.Query().Get("q"))
	if err != nil {
		h.writeSearchError(w, err)
		return
	}

	users := make([]dto.UserSummaryResponse, 0, len(results))
	for _, result := range results {
		users = append(users, summaryResponse(result))
	}
	writeJSON(w, http.StatusOK, dto.SearchUsersResponse{Users: users})
}

func (h *SearchHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	targetID, err := urlParamInt64(r, "userID")
	if err != nil {
		writeValidation(w, "invalid user id")
		return
	}

	view, err := h.service.GetUser(r.Context(), identity.UserID, targetID)
	if err != nil {
		h.writeSearchError(w, err)
		return
	}

	interests := view.Interests
	if interests == nil {
		interests = []string{}
	}
	writeJSON(w, http.StatusOK, dto.UserViewResponse{
		UserSummaryResponse: summaryResponse(view.UserSummary),
		Interests:           interests,
	})
}

func (h *SearchHandler) Follow(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	targetID, err := urlParamInt64(r, "userID")
	if err != nil {
		writeValidation(w, "invalid user id")
		return
	}

	if err := h.service.Follow(r.Context(), identity.UserID, targetID); err != nil {
		h.writeSearchError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SearchHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	targetID, err := urlParamInt64(r, "userID")
	if err != nil {
		writeValidation(w, "invalid user id")
		return
	}

	if err := h.service.Unfollow(r.Context(), identity.UserID, targetID); err != nil {
		h.writeSearchError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SearchHandler) writeSearchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, searchsvc.ErrSelfFollow):
		writeValidation(w, "cannot follow yourself")
	case errors.Is(err, searchsvc.ErrValidation):
		writeValidation(w, "invalid request")
	case errors.Is(err, searchsvc.ErrNotFound):
		writeNotFound(w, "NOT_FOUND", "user not found")
	default:
		h.logger.Error("search request failed", zap.Error(err))
		writeInternal(w)
	}
}

func summaryResponse(summary searchsvc.UserSummary) dto.UserSummaryResponse {
	return dto.UserSummaryResponse{
		ID:          summary.ID,
		Email:       summary.Email,
		DisplayName: summary.DisplayName,
		Bio:         summary.Bio,
		AvatarKey:   summary.AvatarKey,
		CreatedAt:   summary.CreatedAt,
		IsFollowing: summary.IsFollowing,
		Followers:   summary.Followers,
		Following:   summary.Following,
	}
}
