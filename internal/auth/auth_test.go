package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sup-routine-backend/internal/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	token, err := auth.GenerateToken(secret, "dispatch")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	caller, err := auth.ParseToken(secret, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if caller != "dispatch" {
		t.Errorf("caller = %q, want dispatch", caller)
	}

	if _, err := auth.ParseToken([]byte("wrong-secret"), token); err == nil {
		t.Error("ParseToken with wrong secret should fail")
	}
}

func TestMiddleware(t *testing.T) {
	secret := []byte("test-secret")
	m := auth.New(secret)

	var gotCaller string
	handler := m.Wrap(func(w http.ResponseWriter, r *http.Request) {
		gotCaller, _ = auth.CallerFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	// No token.
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}

	// Valid token.
	token, err := auth.GenerateToken(secret, "cron")
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: status = %d, want 200", rec.Code)
	}
	if gotCaller != "cron" {
		t.Errorf("caller in context = %q, want cron", gotCaller)
	}
}

func TestMiddlewareDisabledWithoutSecret(t *testing.T) {
	m := auth.New(nil)
	handler := m.Wrap(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("disabled guard: status = %d, want 200", rec.Code)
	}
}
