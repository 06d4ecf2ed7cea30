package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mlebedz/pairline/backend/internal/domain/model"
	pgrepo "github.com/mlebedz/pairline/backend/internal/repo/postgres"
)

const (
	MinRefreshTTL = 30 * 24 * time.Hour
	MaxRefreshTTL = 90 * 24 * time.Hour

	minPasswordLen = 8
)

type UserStore interface {
	Create(ctx context.Context, email, passwordHash, displayName string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, session SessionRecord, refreshToken string) error
	GetSession(ctx context.Context, sid string) (SessionRecord, error)
	GetByRefreshToken(ctx context.Context, refreshToken string) (SessionRecord, error)
	RotateRefresh(ctx context.Context, sid, oldRefreshToken, newRefreshToken string, expiresAt time.Time) error
	DeleteSession(ctx context.Context, sid string) error
	DeleteAllForUser(ctx context.Context, userID int64) error
}

// LoginLimiter throttles login attempts per key; a nil limiter disables
// throttling.
type LoginLimiter interface {
	AllowLogin(ctx context.Context, key string) (int64, bool, error)
}

type Service struct {
	jwt        *JWTManager
	users      UserStore
	sessions   SessionStore
	limiter    LoginLimiter
	refreshTTL time.Duration
	now        func() time.Time
}

type Dependencies struct {
	JWT        *JWTManager
	Users      UserStore
	Sessions   SessionStore
	Limiter    LoginLimiter
	RefreshTTL time.Duration
}

func NewService(deps Dependencies) *Service {
	refreshTTL := deps.RefreshTTL
	if refreshTTL < MinRefreshTTL {
		refreshTTL = MinRefreshTTL
	}
	if refreshTTL > MaxRefreshTTL {
		refreshTTL = MaxRefreshTTL
	}

	return &Service{
		jwt:        deps.JWT,
		users:      deps.Users,
		sessions:   deps.Sessions,
		limiter:    deps.Limiter,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (s *Service) SignUp(ctx context.Context, email, password, displayName string) (AuthResult, error) {
	if s.users == nil {
		return AuthResult{}, fmt.Errorf("user store is nil")
	}

	email = normalizeEmail(email)
	displayName = strings.TrimSpace(displayName)
	if email == "" || !strings.Contains(email, "@") || displayName == "" {
		return AuthResult{}, ErrInvalidInput
	}
	if len(password) < minPasswordLen {
		return AuthResult{}, ErrInvalidInput
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, email, passwordHash, displayName)
	if err != nil {
		if errors.Is(err, pgrepo.ErrEmailTaken) {
			return AuthResult{}, ErrEmailTaken
		}
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}

	return s.issueForUser(ctx, user)
}

func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	if s.users == nil {
		return AuthResult{}, fmt.Errorf("user store is nil")
	}

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return AuthResult{}, ErrInvalidInput
	}

	if s.limiter != nil {
		retryAfterSec, ok, err := s.limiter.AllowLogin(ctx, email)
		if err != nil {
			return AuthResult{}, fmt.Errorf("check login rate: %w", err)
		}
		if !ok {
			return AuthResult{}, &TooManyAttemptsError{RetryAfterSec: retryAfterSec}
		}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return AuthResult{}, ErrUnauthorized
		}
		return AuthResult{}, fmt.Errorf("load user: %w", err)
	}

	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return AuthResult{}, ErrUnauthorized
	}

	return s.issueForUser(ctx, user)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return AuthResult{}, ErrInvalidInput
	}

	session, err := s.sessions.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrRefreshNotFound) {
			return AuthResult{}, ErrUnauthorized
		}
		return AuthResult{}, fmt.Errorf("get refresh token session: %w", err)
	}
	if s.now().After(session.ExpiresAt) {
		return AuthResult{}, ErrUnauthorized
	}

	newRefreshToken, err := NewRefreshToken()
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate refresh token: %w", err)
	}

	newExpiresAt := s.now().Add(s.refreshTTL)
	if err := s.sessions.RotateRefresh(ctx, session.SID, refreshToken, newRefreshToken, newExpiresAt); err != nil {
		if errors.Is(err, ErrRefreshNotFound) {
			return AuthResult{}, ErrUnauthorized
		}
		return AuthResult{}, fmt.Errorf("rotate refresh token: %w", err)
	}

	accessToken, accessExpires, err := s.jwt.GenerateAccessToken(session.UserID, session.SID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate access token: %w", err)
	}

	return AuthResult{
		AccessToken:   accessToken,
		RefreshToken:  newRefreshToken,
		AccessExpires: accessExpires,
		User:          model.User{ID: session.UserID},
	}, nil
}

func (s *Service) Logout(ctx context.Context, sid string) error {
	if strings.TrimSpace(sid) == "" {
		return ErrInvalidInput
	}
	if err := s.sessions.DeleteSession(ctx, sid); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Service) LogoutAll(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return ErrInvalidInput
	}
	if err := s.sessions.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete all sessions: %w", err)
	}
	return nil
}

func (s *Service) ValidateAccessToken(ctx context.Context, accessToken string) (AccessClaims, error) {
	claims, err := s.jwt.ParseAccessToken(accessToken)
	if err != nil {
		return AccessClaims{}, ErrUnauthorized
	}

	session, err := s.sessions.GetSession(ctx, claims.SID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return AccessClaims{}, ErrUnauthorized
		}
		return AccessClaims{}, fmt.Errorf("get session: %w", err)
	}

	if session.UserID != claims.UserID {
		return AccessClaims{}, ErrUnauthorized
	}
	if s.now().After(session.ExpiresAt) {
		return AccessClaims{}, ErrUnauthorized
	}

	return claims, nil
}

func (s *Service) issueForUser(ctx context.Context, user model.User) (AuthResult, error) {
	sessionID, err := NewSessionID()
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate session id: %w", err)
	}
	refreshToken, err := NewRefreshToken()
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate refresh token: %w", err)
	}

	session := SessionRecord{
		SID:       sessionID,
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.refreshTTL),
	}
	if err := s.sessions.Create(ctx, session, refreshToken); err != nil {
		return AuthResult{}, fmt.Errorf("create session: %w", err)
	}

	accessToken, accessExpires, err := s.jwt.GenerateAccessToken(user.ID, sessionID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate access token: %w", err)
	}

	return AuthResult{
		AccessToken:   accessToken,
		RefreshToken:  refreshToken,
		AccessExpires: accessExpires,
		User:          user,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
