package matching

import (
	"context"
	"errors"
	"fmt"

	"github.com/mlebedz/pairline/backend/internal/domain/model"
	"github.com/mlebedz/pairline/backend/internal/domain/rules"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrNoCandidates = errors.New("no candidates available")
)

type UserStore interface {
	ListOthers(ctx context.Context, excludeID int64) ([]model.User, error)
}

type MatchStore interface {
	PartnerIDs(ctx context.Context, userID int64) ([]int64, error)
}

type InterestStore interface {
	ListForUser(ctx context.Context, userID int64) ([]string, error)
	ListForUsers(ctx context.Context, userIDs []int64) (map[int64][]string, error)
}

type Engine struct {
	users     UserStore
	matches   MatchStore
	interests InterestStore
}

type Dependencies struct {
	Users     UserStore
	Matches   MatchStore
	Interests InterestStore
}

type Candidate struct {
	Profile   model.PublicProfile
	Interests []string
	Score     int
}

func NewEngine(deps Dependencies) *Engine {
	return &Engine{
		users:     deps.Users,
		matches:   deps.Matches,
		interests: deps.Interests,
	}
}

// FindCandidate picks the best next introduction for the requester.
//
// The pool is every other user never matched with the requester before —
// archived matches exclude a pair permanently. Candidates are enumerated
// in ascending user id order; the strictly highest score wins and ties
// keep the first one seen, so a non-empty pool always yields a suggestion
// even when every score is 0.
func (e *Engine) FindCandidate(ctx context.Context, requesterID int64) (Candidate, error) {
	if requesterID <= 0 {
		return Candidate{}, ErrValidation
	}
	if e.users == nil || e.matches == nil || e.interests == nil {
		return Candidate{}, fmt.Errorf("matching dependencies are not configured")
	}

	others, err := e.users.ListOthers(ctx, requesterID)
	if err != nil {
		return Candidate{}, fmt.Errorf("list users: %w", err)
	}

	partnerIDs, err := e.matches.PartnerIDs(ctx, requesterID)
	if err != nil {
		return Candidate{}, fmt.Errorf("list match partners: %w", err)
	}
	excluded := make(map[int64]struct{}, len(partnerIDs))
	for _, id := range partnerIDs {
		excluded[id] = struct{}{}
	}

	pool := make([]model.User, 0, len(others))
	for _, user := range others {
		if _, ok := excluded[user.ID]; ok {
			continue
		}
		pool = append(pool, user)
	}
	if len(pool) == 0 {
		return Candidate{}, ErrNoCandidates
	}

	requesterInterests, err := e.interests.ListForUser(ctx, requesterID)
	if err != nil {
		return Candidate{}, fmt.Errorf("load requester interests: %w", err)
	}

	poolIDs := make([]int64, 0, len(pool))
	for _, user := range pool {
		poolIDs = append(poolIDs, user.ID)
	}
	poolInterests, err := e.interests.ListForUsers(ctx, poolIDs)
	if err != nil {
		return Candidate{}, fmt.Errorf("load candidate interests: %w", err)
	}

	best := Candidate{Score: -1}
	for _, user := range pool {
		score := rules.CompatibilityScore(requesterInterests, poolInterests[user.ID])
		if score > best.Score {
			best = Candidate{
				Profile:   user.Public(),
				Interests: poolInterests[user.ID],
				Score:     score,
			}
		}
	}

	if best.Interests == nil {
		best.Interests = []string{}
	}
	return best, nil
}
