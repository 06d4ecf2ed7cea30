package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/mlebedz/pairline/backend/internal/domain/model"
	authsvc "github.com/mlebedz/pairline/backend/internal/services/auth"
	"github.com/mlebedz/pairline/backend/internal/transport/http/dto"
	httperrors "github.com/mlebedz/pairline/backend/internal/transport/http/errors"
)

type AuthService interface {
	SignUp(ctx context.Context, email, password, displayName string) (authsvc.AuthResult, error)
	Login(ctx context.Context, email, password string) (authsvc.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (authsvc.AuthResult, error)
	Logout(ctx context.Context, sid string) error
	LogoutAll(ctx context.Context, userID int64) error
}

type AuthHandler struct {
	service AuthService
	logger  *zap.Logger
}

func NewAuthHandler(service AuthService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{service: service, logger: logger}
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req dto.SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	result, err := h.service.SignUp(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse(result))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse(result))
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	result, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TokenPairResponse{
		AccessToken:   result.AccessToken,
		RefreshToken:  result.RefreshToken,
		AccessExpires: result.AccessExpires,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	if err := h.service.Logout(r.Context(), identity.SID); err != nil {
		h.writeAuthError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	if err := h.service.LogoutAll(r.Context(), identity.UserID); err != nil {
		h.writeAuthError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) writeAuthError(w http.ResponseWriter, err error) {
	var tooMany *authsvc.TooManyAttemptsError
	switch {
	case errors.Is(err, authsvc.ErrInvalidInput):
		writeValidation(w, "invalid credentials payload")
	case errors.Is(err, authsvc.ErrEmailTaken):
		httperrors.Write(w, http.StatusConflict, httperrors.APIError{
			Code:    "EMAIL_TAKEN",
			Message: "email is already registered",
		})
	case errors.Is(err, authsvc.ErrUnauthorized):
		writeUnauthorized(w)
	case errors.As(err, &tooMany):
		w.Header().Set("Retry-After", strconv.FormatInt(tooMany.RetryAfterSec, 10))
		httperrors.Write(w, http.StatusTooManyRequests, httperrors.RateLimitError{
			Code:          "TOO_MANY_ATTEMPTS",
			Message:       "too many login attempts",
			RetryAfterSec: tooMany.RetryAfterSec,
		})
	default:
		h.logger.Error("auth request failed", zap.Error(err))
		writeInternal(w)
	}
}

func authResponse(result authsvc.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		AccessToken:   result.AccessToken,
		RefreshToken:  result.RefreshToken,
		AccessExpires: result.AccessExpires,
		User:          userResponse(result.User),
	}
}

func userResponse(user model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Bio:         user.Bio,
		AvatarKey:   user.AvatarKey,
		CreatedAt:   user.CreatedAt,
	}
}
