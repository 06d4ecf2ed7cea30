package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mlebedz/pairline/backend/internal/domain/model"
	authsvc "github.com/mlebedz/pairline/backend/internal/services/auth"
	matchsvc "github.com/mlebedz/pairline/backend/internal/services/matches"
	"github.com/mlebedz/pairline/backend/internal/services/matching"
	"github.com/mlebedz/pairline/backend/internal/transport/http/dto"
)

type MatchingEngine interface {
	FindCandidate(ctx context.Context, requesterID int64) (matching.Candidate, error)
}

type MatchService interface {
	Accept(ctx context.Context, requesterID, candidateID int64, score int) (model.Match, bool, error)
	Decline(ctx context.Context, requesterID, candidateID int64) error
	Archive(ctx context.Context, actorID, matchID int64) (model.Match, error)
	ListActive(ctx context.Context, userID int64) ([]matchsvc.MatchItem, error)
	ListArchived(ctx context.Context, userID int64) ([]matchsvc.MatchItem, error)
}

type MatchesHandler struct {
	engine  MatchingEngine
	service MatchService
	logger  *zap.Logger
}

func NewMatchesHandler(engine MatchingEngine, service MatchService, logger *zap.Logger) *MatchesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchesHandler{engine: engine, service: service, logger: logger}
}

func (h *MatchesHandler) FindCandidate(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	candidate, err := h.engine.FindCandidate(r.Context(), identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, matching.ErrValidation):
			writeValidation(w, "invalid request")
		case errors.Is(err, matching.ErrNoCandidates):
			writeNotFound(w, "NO_CANDIDATES", "no candidates available")
		default:
			h.logger.Error("find candidate failed", zap.Error(err))
			writeInternal(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.CandidateResponse{
		UserID:      candidate.Profile.ID,
		DisplayName: candidate.Profile.DisplayName,
		Bio:         candidate.Profile.Bio,
		AvatarKey:   candidate.Profile.AvatarKey,
		Interests:   candidate.Interests,
		Score:       candidate.Score,
	})
}

func (h *MatchesHandler) Accept(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req dto.AcceptMatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	match, created, err := h.service.Accept(r.Context(), identity.UserID, req.UserID, req.Score)
	if err != nil {
		h.writeMatchError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, matchResponse(match))
}

func (h *MatchesHandler) Decline(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req dto.DeclineMatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	if err := h.service.Decline(r.Context(), identity.UserID, req.UserID); err != nil {
		h.writeMatchError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MatchesHandler) Archive(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	matchID, err := urlParamInt64(r, "matchID")
	if err != nil {
		writeValidation(w, "invalid match id")
		return
	}

	match, err := h.service.Archive(r.Context(), identity.UserID, matchID)
	if err != nil {
		h.writeMatchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, matchResponse(match))
}

func (h *MatchesHandler) ListCurrent(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *MatchesHandler) ListPast(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *MatchesHandler) list(w http.ResponseWriter, r *http.Request, active bool) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	var items []matchsvc.MatchItem
	var err error
	if active {
		items, err = h.service.ListActive(r.Context(), identity.UserID)
	} else {
		items, err = h.service.ListArchived(r.Context(), identity.UserID)
	}
	if err != nil {
		h.writeMatchError(w, err)
		return
	}

	matches := make([]dto.MatchItemResponse, 0, len(items))
	for _, item := range items {
		matches = append(matches, dto.MatchItemResponse{
			MatchID:     item.MatchID,
			PartnerID:   item.PartnerID,
			DisplayName: item.DisplayName,
			Bio:         item.Bio,
			AvatarKey:   item.AvatarKey,
			Score:       item.Score,
			CreatedAt:   item.CreatedAt,
			ArchivedAt:  item.ArchivedAt,
		})
	}
	writeJSON(w, http.StatusOK, dto.MatchListResponse{Matches: matches})
}

func (h *MatchesHandler) writeMatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, matchsvc.ErrValidation):
		writeValidation(w, "invalid match payload")
	case errors.Is(err, matchsvc.ErrNotFound):
		writeNotFound(w, "NOT_FOUND", "match not found")
	case errors.Is(err, matchsvc.ErrForbidden):
		writeForbidden(w, "not a participant of this match")
	default:
		h.logger.Error("match request failed", zap.Error(err))
		writeInternal(w)
	}
}

func matchResponse(match model.Match) dto.MatchResponse {
	return dto.MatchResponse{
		MatchID:    match.ID,
		UserAID:    match.UserAID,
		UserBID:    match.UserBID,
		Score:      match.Score,
		IsActive:   match.IsActive,
		CreatedAt:  match.CreatedAt,
		ArchivedAt: match.ArchivedAt,
	}
}
