package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/mlebedz/pairline/backend/internal/domain/model"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrEmailTaken      = errors.New("email already taken")
	ErrSessionNotFound = errors.New("session not found")
	ErrRefreshNotFound = errors.New("refresh token not found")
)

// TooManyAttemptsError reports a throttled login together with the seconds
// a client should wait before retrying.
type TooManyAttemptsError struct {
	RetryAfterSec int64
}

func (e *TooManyAttemptsError) Error() string {
	return fmt.Sprintf("too many login attempts, retry after %ds", e.RetryAfterSec)
}

func IsTooManyAttempts(err error) (*TooManyAttemptsError, bool) {
	var target *TooManyAttemptsError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

type SessionRecord struct {
	SID       string
	UserID    int64
	ExpiresAt time.Time
}

type AccessClaims struct {
	UserID    int64
	SID       string
	ExpiresAt time.Time
}

type AuthResult struct {
	AccessToken   string
	RefreshToken  string
	AccessExpires time.Time
	User          model.User
}
