// Package session keeps the state store's authenticated-user slice consistent
// with the external identity provider, and exposes the pass-through
// authentication operations the dashboard invokes.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"studio/internal/authcode"
	"studio/internal/docstore"
	"studio/internal/domain"
	"studio/internal/identity"
	"studio/internal/state"
)

// UsersCollection is the document-store collection keyed by identity uid.
const UsersCollection = "users"

// ErrSuperseded reports that an authentication flow completed after the
// session it belonged to was replaced (typically by a sign-out); its result
// was discarded instead of being applied to the store.
var ErrSuperseded = errors.New("session superseded before completion")

// PersistenceError wraps a document-store failure during profile
// resolution. The user-facing condition is always the generic "could not load
// profile"; a half-populated user is never returned.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "could not load profile: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Synchronizer is the sole automatic writer of the store's user slice. It
// consumes the provider's session feed for the life of the application and
// resolves each session to a profile document.
//
// Stale-completion hazard: a flow like sign-in holds no lock across its
// network calls, so a sign-out can land in between. Every flow captures the
// session epoch before calling out and discards its completion when the epoch
// has moved on, rather than overwriting newer state.
type Synchronizer struct {
	store    *state.Store
	provider identity.Provider
	docs     docstore.Store
	logger   zerolog.Logger

	epoch atomic.Uint64
}

// New wires a synchronizer to its collaborators.
func New(store *state.Store, provider identity.Provider, docs docstore.Store, logger zerolog.Logger) *Synchronizer {
	return &Synchronizer{
		store:    store,
		provider: provider,
		docs:     docs,
		logger:   logger,
	}
}

// Run subscribes to the provider's session feed and applies session changes
// until ctx is cancelled. Resolution failures are logged and resolve to an
// unauthenticated state; the listener itself never stops on error.
func (s *Synchronizer) Run(ctx context.Context) {
	events, unsubscribe := s.provider.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case ident := <-events:
			s.handleSessionChange(ctx, ident)
		}
	}
}

func (s *Synchronizer) handleSessionChange(ctx context.Context, ident *identity.Identity) {
	if ident == nil {
		s.epoch.Add(1)
		s.store.SetUser(nil)
		return
	}

	user, err := s.getOrCreate(ctx, ident, nil)
	if err != nil {
		s.logger.Error().Err(err).Str("uid", ident.UID).Msg("failed to resolve user profile")
		s.store.SetUser(nil)
		return
	}
	s.store.SetUser(user)
}

// SignUp creates an account, names it, and publishes the resolved user.
// Without accepted terms it fails locally; neither provider nor store is
// contacted.
func (s *Synchronizer) SignUp(ctx context.Context, email, password, displayName string, agreeToTerms bool) (*domain.User, error) {
	if !agreeToTerms {
		return nil, domain.ErrTermsNotAccepted
	}

	epoch := s.epoch.Load()
	s.store.SetUIError("")
	s.store.SetLoading(true)

	ident, err := s.provider.CreateAccount(ctx, email, password)
	if err != nil {
		s.store.SetLoading(false)
		return nil, s.translate(err)
	}
	if err := s.provider.UpdateDisplayName(ctx, ident.UID, displayName); err != nil {
		s.store.SetLoading(false)
		return nil, s.translate(err)
	}
	ident.DisplayName = displayName

	user, err := s.getOrCreate(ctx, ident, docstore.Record{"displayName": displayName})
	if err != nil {
		s.store.SetLoading(false)
		return nil, err
	}
	if s.superseded(epoch) {
		return nil, ErrSuperseded
	}
	s.store.SetUser(user)
	return user, nil
}

// SignIn authenticates an email/password credential and publishes the
// resolved user. Provider failures are translated and leave the current user
// untouched.
func (s *Synchronizer) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	epoch := s.epoch.Load()
	s.store.SetUIError("")
	s.store.SetLoading(true)

	ident, err := s.provider.Authenticate(ctx, email, password)
	if err != nil {
		s.store.SetLoading(false)
		return nil, s.translate(err)
	}

	// No extra fields: signing in never overwrites an existing profile.
	user, err := s.getOrCreate(ctx, ident, nil)
	if err != nil {
		s.store.SetLoading(false)
		return nil, err
	}
	if s.superseded(epoch) {
		return nil, ErrSuperseded
	}
	s.store.SetUser(user)
	return user, nil
}

// SignInWithGoogle exchanges a Google consent credential (email and profile
// scopes) and publishes the resolved user. Abandoning the consent flow maps
// to the cancelled category, distinct from real failures.
func (s *Synchronizer) SignInWithGoogle(ctx context.Context, idToken string) (*domain.User, error) {
	epoch := s.epoch.Load()
	s.store.SetUIError("")
	s.store.SetLoading(true)

	ident, err := s.provider.AuthenticateInteractive(ctx, identity.InteractiveCredential{
		ProviderID: "google.com",
		IDToken:    idToken,
		Scopes:     []string{"email", "profile"},
	})
	if err != nil {
		s.store.SetLoading(false)
		return nil, s.translate(err)
	}

	user, err := s.getOrCreate(ctx, ident, nil)
	if err != nil {
		s.store.SetLoading(false)
		return nil, err
	}
	if s.superseded(epoch) {
		return nil, ErrSuperseded
	}
	s.store.SetUser(user)
	return user, nil
}

// SignOut tears down the provider session and clears local state. Local
// state is cleared even when the provider reports a failure; the failure is
// still returned.
func (s *Synchronizer) SignOut(ctx context.Context) error {
	s.epoch.Add(1)
	err := s.provider.SignOut(ctx)
	s.store.Reset()
	if err != nil {
		return s.translate(err)
	}
	return nil
}

// ResetPassword delegates to the provider. Besides the UI error field, store
// state is untouched.
func (s *Synchronizer) ResetPassword(ctx context.Context, email string) error {
	s.store.SetUIError("")
	if err := s.provider.SendPasswordReset(ctx, email); err != nil {
		terr := s.translate(err)
		s.store.SetUIError(terr.Message)
		return terr
	}
	return nil
}

// UpdateProfile merges the provided top-level fields into the persisted
// document and the store's copy. It requires an authenticated user and makes
// no network call without one.
func (s *Synchronizer) UpdateProfile(ctx context.Context, patch docstore.Record) (*domain.User, error) {
	snap := s.store.Snapshot()
	if snap.User == nil {
		return nil, domain.ErrNotAuthenticated
	}
	epoch := s.epoch.Load()

	merged := make(docstore.Record, len(patch)+1)
	for k, v := range patch {
		merged[k] = v
	}
	merged["updatedAt"] = time.Now().UTC()

	if err := s.docs.Set(ctx, UsersCollection, snap.User.UID, merged, true); err != nil {
		return nil, &PersistenceError{Err: err}
	}

	updated := *snap.User
	if err := overlay(&updated, merged); err != nil {
		return nil, &PersistenceError{Err: err}
	}
	if s.superseded(epoch) {
		return nil, ErrSuperseded
	}
	s.store.SetUser(&updated)
	return &updated, nil
}

// Refresh re-reads the current identity's document and overwrites the store's
// copy. A no-op when signed out.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	snap := s.store.Snapshot()
	if snap.User == nil {
		return nil
	}
	epoch := s.epoch.Load()

	var user domain.User
	if err := s.docs.Get(ctx, UsersCollection, snap.User.UID, &user); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil
		}
		s.logger.Error().Err(err).Str("uid", snap.User.UID).Msg("failed to refresh user profile")
		return &PersistenceError{Err: err}
	}
	user.UID = snap.User.UID

	if s.superseded(epoch) {
		return ErrSuperseded
	}
	s.store.SetUser(&user)
	return nil
}

// getOrCreate resolves an identity to its profile document, creating one with
// default values on first sight. Existing profiles are returned as stored,
// merged with the identity's uid; a second call for the same uid performs no
// writes.
func (s *Synchronizer) getOrCreate(ctx context.Context, ident *identity.Identity, extra docstore.Record) (*domain.User, error) {
	var user domain.User
	err := s.docs.Get(ctx, UsersCollection, ident.UID, &user)
	switch {
	case err == nil:
		user.UID = ident.UID
		return &user, nil
	case errors.Is(err, docstore.ErrNotFound):
		// Fall through to creation.
	default:
		return nil, &PersistenceError{Err: err}
	}

	now := time.Now().UTC()
	user = domain.User{
		UID:         ident.UID,
		Email:       ident.Email,
		DisplayName: defaultDisplayName(ident),
		PhotoURL:    ident.PhotoURL,
		Subscription: domain.SubscriptionInfo{
			Plan:             domain.PlanFree,
			Status:           domain.SubscriptionActive,
			CurrentPeriodEnd: now,
		},
		Usage: domain.UsageInfo{
			LastReset: now,
		},
		BrandKit: domain.BrandKit{
			Colors:    []string{},
			Fonts:     []string{},
			Templates: []string{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if len(extra) > 0 {
		if err := overlay(&user, extra); err != nil {
			return nil, &PersistenceError{Err: err}
		}
	}

	if err := s.docs.Set(ctx, UsersCollection, ident.UID, &user, false); err != nil {
		return nil, &PersistenceError{Err: err}
	}
	return &user, nil
}

func (s *Synchronizer) superseded(epoch uint64) bool {
	return s.epoch.Load() != epoch
}

func (s *Synchronizer) translate(err error) *authcode.Error {
	var terr *authcode.Error
	if errors.As(err, &terr) {
		return terr
	}
	var perr *identity.ProviderError
	if errors.As(err, &perr) {
		return authcode.FromCode(perr.Code)
	}
	return authcode.FromCode(fmt.Sprintf("%v", err))
}

// overlay merges the record's top-level fields into the user by round-tripping
// through the JSON field names, the same merge depth the document store
// applies.
func overlay(user *domain.User, patch docstore.Record) error {
	base, err := json.Marshal(user)
	if err != nil {
		return err
	}
	var asMap map[string]json.RawMessage
	if err := json.Unmarshal(base, &asMap); err != nil {
		return err
	}
	for k, v := range patch {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		asMap[k] = raw
	}
	mergedRaw, err := json.Marshal(asMap)
	if err != nil {
		return err
	}
	return json.Unmarshal(mergedRaw, user)
}

func defaultDisplayName(ident *identity.Identity) string {
	if ident.DisplayName != "" {
		return ident.DisplayName
	}
	local, _, found := strings.Cut(ident.Email, "@")
	if found && local != "" {
		return local
	}
	return ident.Email
}
