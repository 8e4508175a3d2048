// Package identity defines the external identity-provider capability: account
// creation, credential and OAuth sign-in, and a channel-based feed of session
// changes consumed by the session synchronizer.
package identity

import (
	"context"
	"sync"
)

// Identity is the provider's opaque handle for an authenticated account.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

// InteractiveCredential carries the outcome of a provider-hosted consent flow.
// The dashboard completes the interactive part and hands the resulting token
// over for exchange.
type InteractiveCredential struct {
	ProviderID string
	IDToken    string
	Scopes     []string
}

// ProviderError is a failure reported by the identity provider, carrying the
// provider's error code for translation into a user-facing message.
type ProviderError struct {
	Code string
	Err  error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Provider is the injectable identity capability. Session events are pushed on
// the subscription channel in provider order: a non-nil Identity after each
// successful authentication, nil after sign-out.
type Provider interface {
	CreateAccount(ctx context.Context, email, password string) (*Identity, error)
	Authenticate(ctx context.Context, email, password string) (*Identity, error)
	AuthenticateInteractive(ctx context.Context, cred InteractiveCredential) (*Identity, error)
	SignOut(ctx context.Context) error
	SendPasswordReset(ctx context.Context, email string) error
	UpdateDisplayName(ctx context.Context, uid, displayName string) error

	// Subscribe returns a channel of session changes and an unsubscribe
	// function. Events are delivered FIFO; a slow consumer backpressures the
	// publisher rather than losing events.
	Subscribe() (<-chan *Identity, func())
}

// sessionHub fans session events out to subscribers, preserving order.
type sessionHub struct {
	mu   sync.Mutex
	subs map[int]chan *Identity
	next int
}

func (h *sessionHub) Subscribe() (<-chan *Identity, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs == nil {
		h.subs = make(map[int]chan *Identity)
	}
	id := h.next
	h.next++
	ch := make(chan *Identity, 16)
	h.subs[id] = ch

	// The channel is deliberately left open on unsubscribe: a publish may be
	// blocked on it concurrently, and closing would panic the publisher.
	// Consumers select on their own context instead.
	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

func (h *sessionHub) publish(ident *Identity) {
	h.mu.Lock()
	channels := make([]chan *Identity, 0, len(h.subs))
	for _, ch := range h.subs {
		channels = append(channels, ch)
	}
	h.mu.Unlock()

	for _, ch := range channels {
		ch <- ident
	}
}
