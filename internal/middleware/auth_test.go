package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler := Auth(VerifierFunc(func(context.Context, string) (string, error) {
		t.Fatal("verifier called without a token")
		return "", nil
	}))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	handler := Auth(VerifierFunc(func(context.Context, string) (string, error) {
		return "", errors.New("expired")
	}))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthStoresUID(t *testing.T) {
	var gotToken, gotUID string
	handler := Auth(VerifierFunc(func(_ context.Context, token string) (string, error) {
		gotToken = token
		return "u1", nil
	}))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUID = UserUIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotToken != "good-token" || gotUID != "u1" {
		t.Fatalf("token = %q uid = %q", gotToken, gotUID)
	}
}
