package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/paysecure/paysecure-backend/pkg/auth"
	"github.com/paysecure/paysecure-backend/pkg/auth/session"
	"github.com/paysecure/paysecure-backend/pkg/config"
)

type sessionCheckerFunc func(ctx context.Context, accessID string) (bool, error)

func (f sessionCheckerFunc) HasSession(ctx context.Context, accessID string) (bool, error) {
	return f(ctx, accessID)
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "secret",
		Issuer:                 "issuer",
		ExpirationMinutes:      60,
		RefreshTokenTTLMinutes: 120,
	}
}

func mintToken(t *testing.T, cfg config.JWTConfig, payload pkgAuth.AccessTokenPayload) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), payload)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler := Auth(testJWTConfig(), nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without credentials")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsMalformedToken(t *testing.T) {
	handler := Auth(testJWTConfig(), nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run with a bad token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthSeedsContextFromClaims(t *testing.T) {
	cfg := testJWTConfig()
	payload := pkgAuth.AccessTokenPayload{
		UserID:    uuid.New(),
		AccountID: uuid.New(),
		JTI:       session.NewAccessID(),
	}

	var gotUser, gotAccount, gotAccess string
	handler := Auth(cfg, sessionCheckerFunc(func(ctx context.Context, accessID string) (bool, error) {
		return true, nil
	}), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserIDFromContext(r.Context())
		gotAccount = AccountIDFromContext(r.Context())
		gotAccess = AccessIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, payload))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if gotUser != payload.UserID.String() {
		t.Fatalf("expected user %s got %s", payload.UserID, gotUser)
	}
	if gotAccount != payload.AccountID.String() {
		t.Fatalf("expected account %s got %s", payload.AccountID, gotAccount)
	}
	if gotAccess != payload.JTI {
		t.Fatalf("expected access id %s got %s", payload.JTI, gotAccess)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	cfg := testJWTConfig()
	payload := pkgAuth.AccessTokenPayload{
		UserID:    uuid.New(),
		AccountID: uuid.New(),
		JTI:       session.NewAccessID(),
	}

	handler := Auth(cfg, sessionCheckerFunc(func(ctx context.Context, accessID string) (bool, error) {
		return false, nil
	}), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run for a revoked session")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, payload))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
