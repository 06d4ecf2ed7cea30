package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mlebedz/pairline/backend/internal/domain/model"
	pgrepo "github.com/mlebedz/pairline/backend/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("user not found")
	ErrSelfFollow = errors.New("cannot follow yourself")
)

const defaultPageSize = 100

type UserStore interface {
	GetByID(ctx context.Context, id int64) (model.User, error)
	Search(ctx context.Context, excludeID int64, query string, limit int) ([]model.User, error)
}

type InterestStore interface {
	ListForUser(ctx context.Context, userID int64) ([]string, error)
}

type FollowStore interface {
	Upsert(ctx context.Context, followerID, followedID int64) error
	Delete(ctx context.Context, followerID, followedID int64) (bool, error)
	StatsFor(ctx context.Context, viewerID int64, userIDs []int64) (map[int64]pgrepo.FollowStat, error)
}

type Service struct {
	users     UserStore
	interests InterestStore
	follows   FollowStore
	pageSize  int
}

type Dependencies struct {
	Users     UserStore
	Interests InterestStore
	Follows   FollowStore
	PageSize  int
}

// UserSummary is a search hit annotated with the viewer's follow state.
type UserSummary struct {
	ID          int64
	Email       string
	DisplayName string
	Bio         string
	AvatarKey   string
	CreatedAt   time.Time
	IsFollowing bool
	Followers   int64
	Following   int64
}

// UserView is the full public view of a single user.
type UserView struct {
	UserSummary
	Interests []string
}

func NewService(deps Dependencies) *Service {
	pageSize := deps.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &Service{
		users:     deps.Users,
		interests: deps.Interests,
		follows:   deps.Follows,
		pageSize:  pageSize,
	}
}

// SearchUsers finds other users by display name or email substring. An
// empty query lists everyone except the viewer.
func (s *Service) SearchUsers(ctx context.Context, viewerID int64, query string) ([]UserSummary, error) {
	if viewerID <= 0 {
		return nil, ErrValidation
	}
	if s.users == nil || s.follows == nil {
		return nil, fmt.Errorf("search dependencies are not configured")
	}

	users, err := s.users.Search(ctx, viewerID, strings.TrimSpace(query), s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	if len(users) == 0 {
		return []UserSummary{}, nil
	}

	ids := make([]int64, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}
	stats, err := s.follows.StatsFor(ctx, viewerID, ids)
	if err != nil {
		return nil, fmt.Errorf("load follow stats: %w", err)
	}

	results := make([]UserSummary, 0, len(users))
	for _, user := range users {
		results = append(results, summarize(user, stats[user.ID]))
	}
	return results, nil
}

func (s *Service) GetUser(ctx context.Context, viewerID, targetID int64) (UserView, error) {
	if viewerID <= 0 || targetID <= 0 {
		return UserView{}, ErrValidation
	}
	if s.users == nil || s.interests == nil || s.follows == nil {
		return UserView{}, fmt.Errorf("search dependencies are not configured")
	}

	user, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return UserView{}, ErrNotFound
		}
		return UserView{}, fmt.Errorf("load user: %w", err)
	}

	interests, err := s.interests.ListForUser(ctx, targetID)
	if err != nil {
		return UserView{}, fmt.Errorf("load interests: %w", err)
	}

	stats, err := s.follows.StatsFor(ctx, viewerID, []int64{targetID})
	if err != nil {
		return UserView{}, fmt.Errorf("load follow stats: %w", err)
	}

	return UserView{
		UserSummary: summarize(user, stats[targetID]),
		Interests:   interests,
	}, nil
}

// Follow is idempotent: following an already followed user succeeds
// without a second edge.
func (s *Service) Follow(ctx context.Context, followerID, targetID int64) error {
	if followerID <= 0 || targetID <= 0 {
		return ErrValidation
	}
	if followerID == targetID {
		return ErrSelfFollow
	}
	if s.users == nil || s.follows == nil {
		return fmt.Errorf("search dependencies are not configured")
	}

	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load user: %w", err)
	}

	if err := s.follows.Upsert(ctx, followerID, targetID); err != nil {
		return fmt.Errorf("create follow: %w", err)
	}
	return nil
}

func (s *Service) Unfollow(ctx context.Context, followerID, targetID int64) error {
	if followerID <= 0 || targetID <= 0 {
		return ErrValidation
	}
	if followerID == targetID {
		return ErrSelfFollow
	}
	if s.follows == nil {
		return fmt.Errorf("follow store is nil")
	}

	deleted, err := s.follows.Delete(ctx, followerID, targetID)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func summarize(user model.User, stat pgrepo.FollowStat) UserSummary {
	return UserSummary{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Bio:         user.Bio,
		AvatarKey:   user.AvatarKey,
		CreatedAt:   user.CreatedAt,
		IsFollowing: stat.IsFollowing,
		Followers:   stat.Followers,
		Following:   stat.Following,
	}
}
