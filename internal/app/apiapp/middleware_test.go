package apiapp

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	authsvc "github.com/mlebedz/pairline/backend/internal/services/auth"
)

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		token, ok := extractBearerToken(tc.header)
		if ok != tc.ok || token != tc.token {
			t.Fatalf("header %q: got (%q, %v), want (%q, %v)", tc.header, token, ok, tc.token, tc.ok)
		}
	}
}

func TestAuthMiddlewareRejectsMissingAndBadTokens(t *testing.T) {
	service := authsvc.NewService(authsvc.Dependencies{
		JWT: authsvc.NewJWTManager("test-secret", 15*time.Minute),
	})
	mw := AuthMiddleware(service, zap.NewNop())
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: got status %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec = httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: got status %d", rec.Code)
	}
}

func TestAuthMiddlewareWithoutService(t *testing.T) {
	mw := AuthMiddleware(nil, zap.NewNop())
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("nil service: got status %d", rec.Code)
	}
}
