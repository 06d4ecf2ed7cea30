package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mlebedz/pairline/backend/internal/domain/model"
	pgrepo "github.com/mlebedz/pairline/backend/internal/repo/postgres"
)

type stubUserStore struct {
	users map[int64]model.User
}

func (s *stubUserStore) GetByID(_ context.Context, id int64) (model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return model.User{}, pgrepo.ErrUserNotFound
	}
	return user, nil
}

func (s *stubUserStore) Search(_ context.Context, excludeID int64, query string, limit int) ([]model.User, error) {
	var results []model.User
	for id := int64(1); id <= int64(len(s.users))+10 && len(results) < limit; id++ {
		user, ok := s.users[id]
		if !ok || user.ID == excludeID {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(user.DisplayName), strings.ToLower(query)) &&
			!strings.Contains(strings.ToLower(user.Email), strings.ToLower(query)) {
			continue
		}
		results = append(results, user)
	}
	return results, nil
}

type stubInterestStore struct {
	interests map[int64][]string
}

func (s *stubInterestStore) ListForUser(_ context.Context, userID int64) ([]string, error) {
	return s.interests[userID], nil
}

type followEdge struct {
	follower int64
	followed int64
}

type stubFollowStore struct {
	edges map[followEdge]bool
}

func newStubFollowStore() *stubFollowStore {
	return &stubFollowStore{edges: make(map[followEdge]bool)}
}

func (s *stubFollowStore) Upsert(_ context.Context, followerID, followedID int64) error {
	s.edges[followEdge{follower: followerID, followed: followedID}] = true
	return nil
}

func (s *stubFollowStore) Delete(_ context.Context, followerID, followedID int64) (bool, error) {
	key := followEdge{follower: followerID, followed: followedID}
	if !s.edges[key] {
		return false, nil
	}
	delete(s.edges, key)
	return true, nil
}

func (s *stubFollowStore) StatsFor(_ context.Context, viewerID int64, userIDs []int64) (map[int64]pgrepo.FollowStat, error) {
	stats := make(map[int64]pgrepo.FollowStat, len(userIDs))
	for _, id := range userIDs {
		stat := pgrepo.FollowStat{}
		for edge := range s.edges {
			if edge.followed == id {
				stat.Followers++
			}
			if edge.follower == id {
				stat.Following++
			}
		}
		stat.IsFollowing = s.edges[followEdge{follower: viewerID, followed: id}]
		stats[id] = stat
	}
	return stats, nil
}

func newSearchServiceForTest() (*Service, *stubFollowStore) {
	follows := newStubFollowStore()
	svc := NewService(Dependencies{
		Users: &stubUserStore{users: map[int64]model.User{
			1: {ID: 1, Email: "anna@example.com", DisplayName: "Anna"},
			2: {ID: 2, Email: "bea@example.com", DisplayName: "Bea"},
			3: {ID: 3, Email: "carl@example.com", DisplayName: "Carl"},
		}},
		Interests: &stubInterestStore{interests: map[int64][]string{
			2: {"hiking", "jazz"},
		}},
		Follows:  follows,
		PageSize: 50,
	})
	return svc, follows
}

func TestSearchUsersAnnotatesFollowState(t *testing.T) {
	svc, follows := newSearchServiceForTest()
	ctx := context.Background()

	if err := follows.Upsert(ctx, 1, 2); err != nil {
		t.Fatalf("seed follow: %v", err)
	}

	results, err := svc.SearchUsers(ctx, 1, "")
	if err != nil {
		t.Fatalf("search users: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("viewer should be excluded, got %d results", len(results))
	}

	byID := make(map[int64]UserSummary, len(results))
	for _, result := range results {
		byID[result.ID] = result
	}
	if !byID[2].IsFollowing {
		t.Fatalf("viewer follows user 2, summary says otherwise: %+v", byID[2])
	}
	if byID[2].Followers != 1 {
		t.Fatalf("unexpected follower count for user 2: %d", byID[2].Followers)
	}
	if byID[3].IsFollowing {
		t.Fatalf("viewer does not follow user 3: %+v", byID[3])
	}
}

func TestSearchUsersFiltersByQuery(t *testing.T) {
	svc, _ := newSearchServiceForTest()

	results, err := svc.SearchUsers(context.Background(), 1, "bea")
	if err != nil {
		t.Fatalf("search users: %v", err)
	}
	if len(results) != 1 || results[0].ID != 2 {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestGetUserIncludesInterests(t *testing.T) {
	svc, _ := newSearchServiceForTest()

	view, err := svc.GetUser(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if view.DisplayName != "Bea" {
		t.Fatalf("unexpected profile: %+v", view.UserSummary)
	}
	if len(view.Interests) != 2 {
		t.Fatalf("unexpected interests: %v", view.Interests)
	}

	if _, err := svc.GetUser(context.Background(), 1, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing user should be not found, got err=%v", err)
	}
}

func TestFollowRules(t *testing.T) {
	svc, follows := newSearchServiceForTest()
	ctx := context.Background()

	if err := svc.Follow(ctx, 1, 1); !errors.Is(err, ErrSelfFollow) {
		t.Fatalf("self follow should be rejected, got err=%v", err)
	}
	if err := svc.Follow(ctx, 1, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("following a missing user should be not found, got err=%v", err)
	}

	if err := svc.Follow(ctx, 1, 2); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := svc.Follow(ctx, 1, 2); err != nil {
		t.Fatalf("repeat follow should be idempotent: %v", err)
	}
	if len(follows.edges) != 1 {
		t.Fatalf("repeat follow should keep one edge, got %d", len(follows.edges))
	}
}

func TestUnfollow(t *testing.T) {
	svc, _ := newSearchServiceForTest()
	ctx := context.Background()

	if err := svc.Unfollow(ctx, 1, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unfollow without edge should be not found, got err=%v", err)
	}

	if err := svc.Follow(ctx, 1, 2); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := svc.Unfollow(ctx, 1, 2); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
}
