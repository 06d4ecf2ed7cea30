package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mlebedz/pairline/backend/internal/domain/model"
	pgrepo "github.com/mlebedz/pairline/backend/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("user not found")
)

const (
	maxDisplayNameLen = 100
	maxBioLen         = 2000
	maxInterests      = 50
	maxInterestLen    = 100
)

type UserStore interface {
	GetByID(ctx context.Context, id int64) (model.User, error)
	UpdateProfile(ctx context.Context, tx pgx.Tx, userID int64, displayName, bio string) error
}

type InterestStore interface {
	ReplaceForUser(ctx context.Context, tx pgx.Tx, userID int64, interests []string) error
	ListForUser(ctx context.Context, userID int64) ([]string, error)
}

type Service struct {
	pool      *pgxpool.Pool
	users     UserStore
	interests InterestStore
}

type Dependencies struct {
	Pool      *pgxpool.Pool
	Users     UserStore
	Interests InterestStore
}

type Profile struct {
	User      model.User
	Interests []string
}

// UpdateInput carries a partial profile update; nil fields keep their
// current values.
type UpdateInput struct {
	DisplayName *string
	Bio         *string
	Interests   *[]string
}

type OnboardInput struct {
	DisplayName string
	Bio         string
	Interests   []string
}

func NewService(deps Dependencies) *Service {
	return &Service{
		pool:      deps.Pool,
		users:     deps.Users,
		interests: deps.Interests,
	}
}

func (s *Service) Get(ctx context.Context, userID int64) (Profile, error) {
	if userID <= 0 {
		return Profile{}, ErrValidation
	}
	if s.users == nil || s.interests == nil {
		return Profile{}, fmt.Errorf("profile dependencies are not configured")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("load user: %w", err)
	}

	interests, err := s.interests.ListForUser(ctx, userID)
	if err != nil {
		return Profile{}, fmt.Errorf("load interests: %w", err)
	}

	return Profile{User: user, Interests: interests}, nil
}

func (s *Service) Update(ctx context.Context, userID int64, in UpdateInput) (Profile, error) {
	if userID <= 0 {
		return Profile{}, ErrValidation
	}
	if s.pool == nil || s.users == nil || s.interests == nil {
		return Profile{}, fmt.Errorf("profile dependencies are not configured")
	}

	current, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("load user: %w", err)
	}

	displayName := current.DisplayName
	if in.DisplayName != nil {
		displayName = strings.TrimSpace(*in.DisplayName)
	}
	bio := current.Bio
	if in.Bio != nil {
		bio = strings.TrimSpace(*in.Bio)
	}
	if displayName == "" || len(displayName) > maxDisplayNameLen || len(bio) > maxBioLen {
		return Profile{}, ErrValidation
	}

	var interests []string
	if in.Interests != nil {
		interests, err = normalizeInterests(*in.Interests)
		if err != nil {
			return Profile{}, err
		}
	}

	if err := pgrepo.WithTx(ctx, s.pool, func(txCtx context.Context, tx pgx.Tx) error {
		if err := s.users.UpdateProfile(txCtx, tx, userID, displayName, bio); err != nil {
			return err
		}
		if in.Interests != nil {
			return s.interests.ReplaceForUser(txCtx, tx, userID, interests)
		}
		return nil
	}); err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}

	return s.Get(ctx, userID)
}

// Onboard completes the post-signup setup in one shot. Unlike Update it
// always replaces the interest set, even with an empty one.
func (s *Service) Onboard(ctx context.Context, userID int64, in OnboardInput) (Profile, error) {
	interests := in.Interests
	if interests == nil {
		interests = []string{}
	}

	displayName := strings.TrimSpace(in.DisplayName)
	bio := strings.TrimSpace(in.Bio)

	update := UpdateInput{
		Bio:       &bio,
		Interests: &interests,
	}
	if displayName != "" {
		update.DisplayName = &displayName
	}

	return s.Update(ctx, userID, update)
}

func normalizeInterests(raw []string) ([]string, error) {
	interests := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, interest := range raw {
		interest = strings.TrimSpace(interest)
		if interest == "" {
			continue
		}
		if len(interest) > maxInterestLen {
			return nil, ErrValidation
		}
		if _, ok := seen[interest]; ok {
			continue
		}
		seen[interest] = struct{}{}
		interests = append(interests, interest)
	}
	if len(interests) > maxInterests {
		return nil, ErrValidation
	}
	return interests, nil
}
