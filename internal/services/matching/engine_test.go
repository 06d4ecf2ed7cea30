package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/mlebedz/pairline/backend/internal/domain/model"
)

type stubUserStore struct {
	users []model.User
}

func (s *stubUserStore) ListOthers(_ context.Context, excludeID int64) ([]model.User, error) {
	others := make([]model.User, 0, len(s.users))
	for _, user := range s.users {
		if user.ID != excludeID {
			others = append(others, user)
		}
	}
	return others, nil
}

type stubMatchStore struct {
	partners []int64
}

func (s *stubMatchStore) PartnerIDs(_ context.Context, _ int64) ([]int64, error) {
	return s.partners, nil
}

type stubInterestStore struct {
	interests map[int64][]string
}

func (s *stubInterestStore) ListForUser(_ context.Context, userID int64) ([]string, error) {
	return s.interests[userID], nil
}

func (s *stubInterestStore) ListForUsers(_ context.Context, userIDs []int64) (map[int64][]string, error) {
	result := make(map[int64][]string, len(userIDs))
	for _, id := range userIDs {
		result[id] = s.interests[id]
	}
	return result, nil
}

func newEngineForTest(users []model.User, partners []int64, interests map[int64][]string) *Engine {
	return NewEngine(Dependencies{
		Users:     &stubUserStore{users: users},
		Matches:   &stubMatchStore{partners: partners},
		Interests: &stubInterestStore{interests: interests},
	})
}

func TestFindCandidatePicksHighestScore(t *testing.T) {
	engine := newEngineForTest(
		[]model.User{{ID: 1}, {ID: 2, DisplayName: "Two"}, {ID: 3, DisplayName: "Three"}},
		nil,
		map[int64][]string{
			1: {"hiking", "jazz", "sushi"},
			2: {"hiking"},
			3: {"hiking", "jazz"},
		},
	)

	candidate, err := engine.FindCandidate(context.Background(), 1)
	if err != nil {
		t.Fatalf("find candidate: %v", err)
	}
	if candidate.Profile.ID != 2 {
		t.Fatalf("expected user 2 (full overlap of smaller set), got %d", candidate.Profile.ID)
	}
	if candidate.Score != 100 {
		t.Fatalf("unexpected score: %d", candidate.Score)
	}
}

func TestFindCandidateTieKeepsLowestID(t *testing.T) {
	engine := newEngineForTest(
		[]model.User{{ID: 1}, {ID: 2}, {ID: 3}},
		nil,
		map[int64][]string{
			1: {"hiking", "jazz"},
			2: {"hiking", "jazz"},
			3: {"hiking", "jazz"},
		},
	)

	candidate, err := engine.FindCandidate(context.Background(), 1)
	if err != nil {
		t.Fatalf("find candidate: %v", err)
	}
	if candidate.Profile.ID != 2 {
		t.Fatalf("tie should keep first candidate in id order, got %d", candidate.Profile.ID)
	}
}

func TestFindCandidateExcludesExistingPartners(t *testing.T) {
	engine := newEngineForTest(
		[]model.User{{ID: 1}, {ID: 2}, {ID: 3}},
		[]int64{2},
		map[int64][]string{
			1: {"hiking"},
			2: {"hiking"},
			3: {"jazz"},
		},
	)

	candidate, err := engine.FindCandidate(context.Background(), 1)
	if err != nil {
		t.Fatalf("find candidate: %v", err)
	}
	if candidate.Profile.ID != 3 {
		t.Fatalf("matched partner should be excluded, got %d", candidate.Profile.ID)
	}
}

func TestFindCandidateZeroScoresStillSuggest(t *testing.T) {
	engine := newEngineForTest(
		[]model.User{{ID: 1}, {ID: 2}, {ID: 3}},
		nil,
		map[int64][]string{
			1: {"hiking"},
			2: {"jazz"},
			3: {"sushi"},
		},
	)

	candidate, err := engine.FindCandidate(context.Background(), 1)
	if err != nil {
		t.Fatalf("find candidate: %v", err)
	}
	if candidate.Profile.ID != 2 || candidate.Score != 0 {
		t.Fatalf("expected first candidate with zero score, got id=%d score=%d", candidate.Profile.ID, candidate.Score)
	}
}

func TestFindCandidateEmptyPool(t *testing.T) {
	engine := newEngineForTest(
		[]model.User{{ID: 1}, {ID: 2}},
		[]int64{2},
		map[int64][]string{},
	)

	if _, err := engine.FindCandidate(context.Background(), 1); !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected no candidates error, got err=%v", err)
	}
}
