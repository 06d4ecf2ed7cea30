package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mlebedz/pairline/backend/internal/domain/model"
	pgrepo "github.com/mlebedz/pairline/backend/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("note not found")
)

const maxBodyLen = 10000

type MatchStore interface {
	GetByID(ctx context.Context, id int64) (model.Match, error)
}

type NoteStore interface {
	Upsert(ctx context.Context, matchID, authorID int64, body string) (model.MatchNote, error)
	Get(ctx context.Context, matchID, authorID int64) (model.MatchNote, error)
	Delete(ctx context.Context, matchID, authorID int64) (bool, error)
}

// Service keeps per-match notes private to their author. A note is
// addressed by (match, author), so each participant holds at most one.
type Service struct {
	matches MatchStore
	notes   NoteStore
}

type Dependencies struct {
	Matches MatchStore
	Notes   NoteStore
}

func NewService(deps Dependencies) *Service {
	return &Service{
		matches: deps.Matches,
		notes:   deps.Notes,
	}
}

// Get returns the author's note for the match, or an empty body when none
// has been written yet.
func (s *Service) Get(ctx context.Context, authorID, matchID int64) (model.MatchNote, error) {
	if err := s.ensureParticipant(ctx, authorID, matchID); err != nil {
		return model.MatchNote{}, err
	}

	note, err := s.notes.Get(ctx, matchID, authorID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrNoteNotFound) {
			return model.MatchNote{MatchID: matchID, AuthorID: authorID}, nil
		}
		return model.MatchNote{}, fmt.Errorf("load note: %w", err)
	}
	return note, nil
}

// Save creates the author's note or overwrites it if one exists.
func (s *Service) Save(ctx context.Context, authorID, matchID int64, body string) (model.MatchNote, error) {
	body = strings.TrimSpace(body)
	if body == "" || len(body) > maxBodyLen {
		return model.MatchNote{}, ErrValidation
	}
	if err := s.ensureParticipant(ctx, authorID, matchID); err != nil {
		return model.MatchNote{}, err
	}

	note, err := s.notes.Upsert(ctx, matchID, authorID, body)
	if err != nil {
		return model.MatchNote{}, fmt.Errorf("save note: %w", err)
	}
	return note, nil
}

func (s *Service) Delete(ctx context.Context, authorID, matchID int64) error {
	if err := s.ensureParticipant(ctx, authorID, matchID); err != nil {
		return err
	}

	deleted, err := s.notes.Delete(ctx, matchID, authorID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// ensureParticipant hides matches the author does not belong to behind the
// same not-found answer as a missing match.
func (s *Service) ensureParticipant(ctx context.Context, authorID, matchID int64) error {
	if authorID <= 0 || matchID <= 0 {
		return ErrValidation
	}
	if s.matches == nil || s.notes == nil {
		return fmt.Errorf("note dependencies are not configured")
	}

	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load match: %w", err)
	}
	if !match.HasParticipant(authorID) {
		return ErrNotFound
	}
	return nil
}
