package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"firebase.google.com/go/v4/auth"

	"studio/internal/authcode"
)

const defaultIdentityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

// Firebase implements Provider against Firebase Authentication. Account
// administration (display names, token revocation, user lookup) goes through
// the Admin SDK; credential and OAuth sign-in go through the Identity Toolkit
// REST API, which the Admin SDK does not cover.
type Firebase struct {
	admin   *auth.Client
	apiKey  string
	baseURL string
	client  *http.Client

	sessions sessionHub

	mu         sync.Mutex
	currentUID string
}

// NewFirebase builds a Firebase identity provider from an Admin SDK auth
// client and the project's web API key.
func NewFirebase(admin *auth.Client, apiKey string) *Firebase {
	return &Firebase{
		admin:   admin,
		apiKey:  apiKey,
		baseURL: defaultIdentityToolkitURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Subscribe implements the session feed.
func (f *Firebase) Subscribe() (<-chan *Identity, func()) {
	return f.sessions.Subscribe()
}

// CreateAccount registers a new email/password account and emits a session
// event for it.
func (f *Firebase) CreateAccount(ctx context.Context, email, password string) (*Identity, error) {
	var resp struct {
		LocalID string `json:"localId"`
		Email   string `json:"email"`
	}
	err := f.post(ctx, "accounts:signUp", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &resp)
	if err != nil {
		return nil, err
	}

	ident := &Identity{UID: resp.LocalID, Email: resp.Email}
	f.establishSession(ident)
	return ident, nil
}

// Authenticate verifies an email/password credential and emits a session
// event. The identity is enriched from the admin user record so display name
// and photo survive round trips.
func (f *Firebase) Authenticate(ctx context.Context, email, password string) (*Identity, error) {
	var resp struct {
		LocalID     string `json:"localId"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
	}
	err := f.post(ctx, "accounts:signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &resp)
	if err != nil {
		return nil, err
	}

	ident := f.lookup(ctx, resp.LocalID, &Identity{
		UID:         resp.LocalID,
		Email:       resp.Email,
		DisplayName: resp.DisplayName,
	})
	f.establishSession(ident)
	return ident, nil
}

// AuthenticateInteractive exchanges an OAuth credential obtained from a
// provider-hosted consent flow. A context cancellation is reported as the
// user abandoning the flow.
func (f *Firebase) AuthenticateInteractive(ctx context.Context, cred InteractiveCredential) (*Identity, error) {
	providerID := cred.ProviderID
	if providerID == "" {
		providerID = "google.com"
	}
	postBody := url.Values{}
	postBody.Set("id_token", cred.IDToken)
	postBody.Set("providerId", providerID)

	var resp struct {
		LocalID     string `json:"localId"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
		PhotoURL    string `json:"photoUrl"`
	}
	err := f.post(ctx, "accounts:signInWithIdp", map[string]any{
		"postBody":            postBody.Encode(),
		"requestUri":          "http://localhost",
		"returnIdpCredential": true,
		"returnSecureToken":   true,
	}, &resp)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, &ProviderError{Code: "auth/popup-closed-by-user", Err: err}
		}
		return nil, err
	}

	ident := &Identity{
		UID:         resp.LocalID,
		Email:       resp.Email,
		DisplayName: resp.DisplayName,
		PhotoURL:    resp.PhotoURL,
	}
	f.establishSession(ident)
	return ident, nil
}

// SignOut revokes the current session's refresh tokens and emits a nil
// session event. Local teardown happens even when revocation fails.
func (f *Firebase) SignOut(ctx context.Context) error {
	f.mu.Lock()
	uid := f.currentUID
	f.currentUID = ""
	f.mu.Unlock()

	var err error
	if uid != "" {
		if revokeErr := f.admin.RevokeRefreshTokens(ctx, uid); revokeErr != nil {
			err = &ProviderError{Code: "auth/network-request-failed", Err: revokeErr}
		}
	}
	f.sessions.publish(nil)
	return err
}

// SendPasswordReset asks the provider to email a reset link.
func (f *Firebase) SendPasswordReset(ctx context.Context, email string) error {
	var resp struct {
		Email string `json:"email"`
	}
	return f.post(ctx, "accounts:sendOobCode", map[string]any{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}, &resp)
}

// UpdateDisplayName sets the account's display name via the Admin SDK.
func (f *Firebase) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	update := (&auth.UserToUpdate{}).DisplayName(displayName)
	if _, err := f.admin.UpdateUser(ctx, uid, update); err != nil {
		if auth.IsUserNotFound(err) {
			return &ProviderError{Code: "auth/user-not-found", Err: err}
		}
		return &ProviderError{Code: "auth/network-request-failed", Err: err}
	}
	return nil
}

func (f *Firebase) establishSession(ident *Identity) {
	f.mu.Lock()
	f.currentUID = ident.UID
	f.mu.Unlock()
	f.sessions.publish(ident)
}

// lookup fills in profile fields from the admin user record, falling back to
// the partial identity when the lookup fails.
func (f *Firebase) lookup(ctx context.Context, uid string, fallback *Identity) *Identity {
	record, err := f.admin.GetUser(ctx, uid)
	if err != nil {
		return fallback
	}
	return &Identity{
		UID:         record.UID,
		Email:       record.Email,
		DisplayName: record.DisplayName,
		PhotoURL:    record.PhotoURL,
	}
}

// post sends a keyed Identity Toolkit request and decodes the response,
// translating REST error identifiers into provider codes.
func (f *Firebase) post(ctx context.Context, endpoint string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &ProviderError{Code: "auth/internal-error", Err: err}
	}

	reqURL := fmt.Sprintf("%s/%s?key=%s", strings.TrimRight(f.baseURL, "/"), endpoint, url.QueryEscape(f.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return &ProviderError{Code: "auth/internal-error", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return &ProviderError{Code: "auth/network-request-failed", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &ProviderError{Code: "auth/network-request-failed", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if jsonErr := json.Unmarshal(raw, &apiErr); jsonErr != nil || apiErr.Error.Message == "" {
			return &ProviderError{Code: "auth/internal-error",
				Err: fmt.Errorf("identitytoolkit %s: status %d", endpoint, resp.StatusCode)}
		}
		return &ProviderError{Code: authcode.Normalize(apiErr.Error.Message)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &ProviderError{Code: "auth/internal-error", Err: err}
	}
	return nil
}
