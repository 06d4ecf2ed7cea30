package matches

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mlebedz/pairline/backend/internal/domain/model"
	pgrepo "github.com/mlebedz/pairline/backend/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("match not found")
	ErrForbidden  = errors.New("not a match participant")
)

type MatchStore interface {
	CreateIfAbsent(ctx context.Context, userA, userB int64, score int) (model.Match, bool, error)
	GetByID(ctx context.Context, id int64) (model.Match, error)
	Archive(ctx context.Context, id int64, at time.Time) (bool, error)
	ListForUser(ctx context.Context, userID int64, active bool) ([]pgrepo.MatchPartnerRecord, error)
}

type Service struct {
	store MatchStore
	now   func() time.Time
}

type Dependencies struct {
	Store MatchStore
}

// MatchItem is a match joined with the counterpart's public profile, as
// the current/past listings present it.
type MatchItem struct {
	MatchID     int64
	PartnerID   int64
	DisplayName string
	Bio         string
	AvatarKey   string
	Score       int
	CreatedAt   time.Time
	ArchivedAt  *time.Time
}

func NewService(deps Dependencies) *Service {
	return &Service{
		store: deps.Store,
		now:   time.Now,
	}
}

// Accept records the pair as matched. The pair is stored in canonical
// order and at most one row ever exists for it: accepting an already
// matched pair from either side returns the existing record unchanged.
func (s *Service) Accept(ctx context.Context, requesterID, candidateID int64, score int) (model.Match, bool, error) {
	if requesterID <= 0 || candidateID <= 0 || requesterID == candidateID {
		return model.Match{}, false, ErrValidation
	}
	if s.store == nil {
		return model.Match{}, false, fmt.Errorf("match store is nil")
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	match, created, err := s.store.CreateIfAbsent(ctx, requesterID, candidateID, score)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return model.Match{}, false, ErrNotFound
		}
		return model.Match{}, false, err
	}

	return match, created, nil
}

// Decline persists nothing: declined users stay eligible for future
// candidacy.
func (s *Service) Decline(ctx context.Context, requesterID, candidateID int64) error {
	if requesterID <= 0 || candidateID <= 0 || requesterID == candidateID {
		return ErrValidation
	}
	return nil
}

// Archive moves an active match to the archive. Only a participant may
// archive; archiving an already archived match is a no-op that keeps the
// original archive stamp.
func (s *Service) Archive(ctx context.Context, actorID, matchID int64) (model.Match, error) {
	if actorID <= 0 || matchID <= 0 {
		return model.Match{}, ErrValidation
	}
	if s.store == nil {
		return model.Match{}, fmt.Errorf("match store is nil")
	}

	match, err := s.store.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return model.Match{}, ErrNotFound
		}
		return model.Match{}, fmt.Errorf("load match: %w", err)
	}
	if !match.HasParticipant(actorID) {
		return model.Match{}, ErrForbidden
	}
	if !match.IsActive {
		return match, nil
	}

	if _, err := s.store.Archive(ctx, matchID, s.now()); err != nil {
		return model.Match{}, err
	}

	match, err = s.store.GetByID(ctx, matchID)
	if err != nil {
		return model.Match{}, fmt.Errorf("reload match: %w", err)
	}
	return match, nil
}

func (s *Service) ListActive(ctx context.Context, userID int64) ([]MatchItem, error) {
	return s.list(ctx, userID, true)
}

func (s *Service) ListArchived(ctx context.Context, userID int64) ([]MatchItem, error) {
	return s.list(ctx, userID, false)
}

func (s *Service) list(ctx context.Context, userID int64, active bool) ([]MatchItem, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	if s.store == nil {
		return nil, fmt.Errorf("match store is nil")
	}

	rows, err := s.store.ListForUser(ctx, userID, active)
	if err != nil {
		return nil, err
	}

	items := make([]MatchItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, MatchItem{
			MatchID:     row.MatchID,
			PartnerID:   row.PartnerID,
			DisplayName: row.DisplayName,
			Bio:         row.Bio,
			AvatarKey:   row.AvatarKey,
			Score:       row.Score,
			CreatedAt:   row.CreatedAt,
			ArchivedAt:  row.ArchivedAt,
		})
	}
	return items, nil
}
