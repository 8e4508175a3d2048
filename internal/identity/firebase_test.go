package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newRESTFirebase(t *testing.T, handler http.HandlerFunc) *Firebase {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Firebase{
		apiKey:  "test-key",
		baseURL: srv.URL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func TestFirebaseCreateAccount(t *testing.T) {
	f := newRESTFirebase(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts:signUp" {
			t.Errorf("path = %q, want /accounts:signUp", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("key = %q, want test-key", r.URL.Query().Get("key"))
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body["email"] != "a@b.com" {
			t.Errorf("email = %v", body["email"])
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"localId": "u1", "email": "a@b.com"})
	})

	ident, err := f.CreateAccount(context.Background(), "a@b.com", "secret123")
	if err != nil {
		t.Fatalf("CreateAccount() unexpected error: %v", err)
	}
	if ident.UID != "u1" || ident.Email != "a@b.com" {
		t.Fatalf("CreateAccount() = %+v", ident)
	}
}

func TestFirebaseRESTErrorTranslation(t *testing.T) {
	tests := []struct {
		restMessage string
		wantCode    string
	}{
		{"EMAIL_NOT_FOUND", "auth/user-not-found"},
		{"INVALID_LOGIN_CREDENTIALS", "auth/wrong-password"},
		{"EMAIL_EXISTS", "auth/email-already-in-use"},
		{"WEAK_PASSWORD : Password should be at least 6 characters", "auth/weak-password"},
		{"TOO_MANY_ATTEMPTS_TRY_LATER", "auth/too-many-requests"},
	}

	for _, tc := range tests {
		t.Run(tc.restMessage, func(t *testing.T) {
			f := newRESTFirebase(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"message": tc.restMessage},
				})
			})

			_, err := f.CreateAccount(context.Background(), "a@b.com", "secret123")
			var perr *ProviderError
			if !errors.As(err, &perr) {
				t.Fatalf("error = %T, want *ProviderError", err)
			}
			if perr.Code != tc.wantCode {
				t.Fatalf("Code = %q, want %q", perr.Code, tc.wantCode)
			}
		})
	}
}

func TestFirebaseTransportFailure(t *testing.T) {
	f := &Firebase{
		apiKey:  "test-key",
		baseURL: "http://127.0.0.1:1", // nothing listens here
		client:  &http.Client{Timeout: time.Second},
	}

	_, err := f.CreateAccount(context.Background(), "a@b.com", "secret123")
	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Code != "auth/network-request-failed" {
		t.Fatalf("error = %v, want network-request-failed", err)
	}
}

func TestFirebaseInteractiveCancellation(t *testing.T) {
	f := newRESTFirebase(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.AuthenticateInteractive(ctx, InteractiveCredential{IDToken: "tok"})
	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Code != "auth/popup-closed-by-user" {
		t.Fatalf("error = %v, want popup-closed-by-user", err)
	}
}

func TestFirebaseSendPasswordReset(t *testing.T) {
	f := newRESTFirebase(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts:sendOobCode" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["requestType"] != "PASSWORD_RESET" {
			t.Errorf("requestType = %v", body["requestType"])
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"email": "a@b.com"})
	})

	if err := f.SendPasswordReset(context.Background(), "a@b.com"); err != nil {
		t.Fatalf("SendPasswordReset() unexpected error: %v", err)
	}
}
