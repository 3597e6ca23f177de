package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRouteTTLMatchesMoneyEndpoints(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		path    string
		wantTTL time.Duration
		wantOK  bool
	}{
		{name: "register", method: http.MethodPost, path: "/api/v1/auth/register", wantTTL: defaultIdempotencyTTL, wantOK: true},
		{name: "test funds", method: http.MethodPost, path: "/api/v1/wallet/test-funds", wantTTL: defaultIdempotencyTTL, wantOK: true},
		{name: "transfers", method: http.MethodPost, path: "/api/v1/transfers", wantTTL: criticalIdempotencyTTL, wantOK: true},
		{name: "exchange", method: http.MethodPost, path: "/api/v1/exchange", wantTTL: criticalIdempotencyTTL, wantOK: true},
		{name: "place order", method: http.MethodPost, path: "/api/v1/orders", wantTTL: criticalIdempotencyTTL, wantOK: true},
		{name: "order accept", method: http.MethodPost, path: "/api/v1/orders/8a3ef25e-0a3e-4dcb-9c2b-0f1f4f7f3b11/accept", wantTTL: criticalIdempotencyTTL, wantOK: true},
		{name: "order confirm", method: http.MethodPost, path: "/api/v1/orders/8a3ef25e-0a3e-4dcb-9c2b-0f1f4f7f3b11/confirm", wantTTL: criticalIdempotencyTTL, wantOK: true},
		{name: "get orders not matched", method: http.MethodGet, path: "/api/v1/orders", wantOK: false},
		{name: "wallet read not matched", method: http.MethodGet, path: "/api/v1/wallet", wantOK: false},
		{name: "login not matched", method: http.MethodPost, path: "/api/v1/auth/login", wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ttl, ok := routeTTL(tc.method, tc.path)
			if ok != tc.wantOK {
				t.Fatalf("expected match=%v got %v", tc.wantOK, ok)
			}
			if ok && ttl != tc.wantTTL {
				t.Fatalf("expected ttl %v got %v", tc.wantTTL, ttl)
			}
		})
	}
}

func TestBuildScopeBindsCallerAndRoute(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", nil)
	ctx := WithUserID(req.Context(), "user-1")
	ctx = WithAccountID(ctx, "acct-1")
	req = req.WithContext(ctx)

	got := buildScope(req)
	want := "user-1|acct-1|POST|/api/v1/transfers"
	if got != want {
		t.Fatalf("expected scope %q got %q", want, got)
	}
}

func TestBuildScopeDiffersPerAccount(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/exchange", nil)
	first := req.WithContext(WithAccountID(req.Context(), "acct-a"))
	second := req.WithContext(WithAccountID(req.Context(), "acct-b"))

	if buildScope(first) == buildScope(second) {
		t.Fatal("expected different scopes for different accounts")
	}
}

func TestHashBodyStableAndSensitive(t *testing.T) {
	a := hashBody([]byte(`{"amount":5}`))
	b := hashBody([]byte(`{"amount":5}`))
	c := hashBody([]byte(`{"amount":6}`))

	if a != b {
		t.Fatal("expected identical bodies to hash equal")
	}
	if a == c {
		t.Fatal("expected different bodies to hash differently")
	}
}

func TestIdempotencyNilStorePassesThrough(t *testing.T) {
	called := false
	handler := Idempotency(nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if !called {
		t.Fatal("expected handler to run when store is unavailable")
	}
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
}

func TestResponseCaptureRecordsStatusAndBody(t *testing.T) {
	rec := &responseCapture{ResponseWriter: httptest.NewRecorder()}
	rec.WriteHeader(http.StatusAccepted)
	_, _ = rec.Write([]byte("payload"))

	if rec.status != http.StatusAccepted {
		t.Fatalf("expected captured status 202 got %d", rec.status)
	}
	if rec.body.String() != "payload" {
		t.Fatalf("expected captured body got %q", rec.body.String())
	}
}
