package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mlebedz/pairline/backend/internal/domain/model"
	authsvc "github.com/mlebedz/pairline/backend/internal/services/auth"
	notesvc "github.com/mlebedz/pairline/backend/internal/services/notes"
	"github.com/mlebedz/pairline/backend/internal/transport/http/dto"
)

type NoteService interface {
	Get(ctx context.Context, authorID, matchID int64) (model.MatchNote, error)
	Save(ctx context.Context, authorID, matchID int64, body string) (model.MatchNote, error)
	Delete(ctx context.Context, authorID, matchID int64) error
}

type NotesHandler struct {
	service NoteService
	logger  *zap.Logger
}

func NewNotesHandler(service NoteService, logger *zap.Logger) *NotesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotesHandler{service: service, logger: logger}
}

func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	note, err := h.service.Get(r.Context(), identity.UserID, matchID)
	if err != nil {
		h.writeNoteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, noteResponse(note))
}

func (h *NotesHandler) Save(w http.ResponseWriter, r *http.Request) {
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

	var req dto.SaveNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	note, err := h.service.Save(r.Context(), identity.UserID, matchID, req.Body)
	if err != nil {
		h.writeNoteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, noteResponse(note))
}

func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.Delete(r.Context(), identity.UserID, matchID); err != nil {
		h.writeNoteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotesHandler) writeNoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, notesvc.ErrValidation):
		writeValidation(w, "invalid note payload")
	case errors.Is(err, notesvc.ErrNotFound):
		writeNotFound(w, "NOT_FOUND", "note not found")
	default:
		h.logger.Error("note request failed", zap.Error(err))
		writeInternal(w)
	}
}

func noteResponse(note model.MatchNote) dto.NoteResponse {
	resp := dto.NoteResponse{
		MatchID: note.MatchID,
		Body:    note.Body,
	}
	if !note.CreatedAt.IsZero() {
		createdAt := note.CreatedAt
		updatedAt := note.UpdatedAt
		resp.CreatedAt = &createdAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
