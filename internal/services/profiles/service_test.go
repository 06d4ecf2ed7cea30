package profiles

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"

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

func (s *stubUserStore) UpdateProfile(_ context.Context, _ pgx.Tx, userID int64, displayName, bio string) error {
	user := s.users[userID]
	user.DisplayName = displayName
	user.Bio = bio
	s.users[userID] = user
	return nil
}

type stubInterestStore struct {
	interests map[int64][]string
}

func (s *stubInterestStore) ReplaceForUser(_ context.Context, _ pgx.Tx, userID int64, interests []string) error {
	s.interests[userID] = interests
	return nil
}

func (s *stubInterestStore) ListForUser(_ context.Context, userID int64) ([]string, error) {
	return s.interests[userID], nil
}

func TestGetProfile(t *testing.T) {
	svc := NewService(Dependencies{
		Users: &stubUserStore{users: map[int64]model.User{
			1: {ID: 1, Email: "anna@example.com", DisplayName: "Anna", Bio: "hi"},
		}},
		Interests: &stubInterestStore{interests: map[int64][]string{
			1: {"hiking", "jazz"},
		}},
	})

	profile, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.User.DisplayName != "Anna" {
		t.Fatalf("unexpected user: %+v", profile.User)
	}
	if len(profile.Interests) != 2 {
		t.Fatalf("unexpected interests: %v", profile.Interests)
	}

	if _, err := svc.Get(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing user should be not found, got err=%v", err)
	}
}

func TestNormalizeInterests(t *testing.T) {
	got, err := normalizeInterests([]string{" hiking ", "", "jazz", "hiking", "  "})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	want := []string{"hiking", "jazz"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected interests: got %v want %v", got, want)
	}
}

func TestNormalizeInterestsLimits(t *testing.T) {
	if _, err := normalizeInterests([]string{strings.Repeat("x", maxInterestLen+1)}); !errors.Is(err, ErrValidation) {
		t.Fatalf("oversized interest should fail validation, got err=%v", err)
	}

	many := make([]string, maxInterests+1)
	for i := range many {
		many[i] = strings.Repeat("a", i+1)
	}
	if _, err := normalizeInterests(many); !errors.Is(err, ErrValidation) {
		t.Fatalf("too many interests should fail validation, got err=%v", err)
	}
}
