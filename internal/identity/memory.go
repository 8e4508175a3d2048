package identity

import (
	"context"
	"strconv"
	"strings"
	"sync"
)

type memoryAccount struct {
	uid         string
	password    string
	displayName string
	photoURL    string
}

// Memory is an in-process Provider for tests and local development. It keeps
// accounts in a map, reports failures with the same provider codes as the real
// backend, and owns the sending end of the session feed so tests can drive
// session changes directly.
type Memory struct {
	sessions sessionHub

	mu       sync.Mutex
	accounts map[string]*memoryAccount
	nextUID  int
	calls    int

	// FailNextCode, when set, makes the next provider call fail with that
	// code and is then cleared.
	FailNextCode string
}

// NewMemory returns an empty in-memory provider.
func NewMemory() *Memory {
	return &Memory{accounts: make(map[string]*memoryAccount)}
}

// Subscribe implements the session feed.
func (m *Memory) Subscribe() (<-chan *Identity, func()) {
	return m.sessions.Subscribe()
}

// EmitSession pushes a session change, standing in for the backend's push
// notification.
func (m *Memory) EmitSession(ident *Identity) {
	m.sessions.publish(ident)
}

// Calls reports how many provider operations have been invoked.
func (m *Memory) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// SeedAccount registers an account without emitting a session event.
func (m *Memory) SeedAccount(uid, email, password, displayName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[email] = &memoryAccount{uid: uid, password: password, displayName: displayName}
}

func (m *Memory) CreateAccount(ctx context.Context, email, password string) (*Identity, error) {
	m.mu.Lock()
	m.calls++
	if err := m.takeFailure(); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	if _, exists := m.accounts[email]; exists {
		m.mu.Unlock()
		return nil, &ProviderError{Code: "auth/email-already-in-use"}
	}
	if len(password) < 6 {
		m.mu.Unlock()
		return nil, &ProviderError{Code: "auth/weak-password"}
	}
	m.nextUID++
	acct := &memoryAccount{uid: newMemoryUID(m.nextUID), password: password}
	m.accounts[email] = acct
	ident := &Identity{UID: acct.uid, Email: email}
	m.mu.Unlock()

	m.sessions.publish(ident)
	return ident, nil
}

func (m *Memory) Authenticate(ctx context.Context, email, password string) (*Identity, error) {
	m.mu.Lock()
	m.calls++
	if err := m.takeFailure(); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	acct, ok := m.accounts[email]
	if !ok {
		m.mu.Unlock()
		return nil, &ProviderError{Code: "auth/user-not-found"}
	}
	if acct.password != password {
		m.mu.Unlock()
		return nil, &ProviderError{Code: "auth/wrong-password"}
	}
	ident := m.identityFor(email, acct)
	m.mu.Unlock()

	m.sessions.publish(ident)
	return ident, nil
}

func (m *Memory) AuthenticateInteractive(ctx context.Context, cred InteractiveCredential) (*Identity, error) {
	m.mu.Lock()
	m.calls++
	if err := m.takeFailure(); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	// The fake treats the IDToken as "email:displayName" for test setup.
	email, displayName, _ := strings.Cut(cred.IDToken, ":")
	acct, ok := m.accounts[email]
	if !ok {
		m.nextUID++
		acct = &memoryAccount{uid: newMemoryUID(m.nextUID), displayName: displayName}
		m.accounts[email] = acct
	}
	ident := m.identityFor(email, acct)
	m.mu.Unlock()

	m.sessions.publish(ident)
	return ident, nil
}

func (m *Memory) SignOut(ctx context.Context) error {
	m.mu.Lock()
	m.calls++
	err := m.takeFailure()
	m.mu.Unlock()

	m.sessions.publish(nil)
	return err
}

func (m *Memory) SendPasswordReset(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if err := m.takeFailure(); err != nil {
		return err
	}
	if _, ok := m.accounts[email]; !ok {
		return &ProviderError{Code: "auth/user-not-found"}
	}
	return nil
}

func (m *Memory) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if err := m.takeFailure(); err != nil {
		return err
	}
	for _, acct := range m.accounts {
		if acct.uid == uid {
			acct.displayName = displayName
			return nil
		}
	}
	return &ProviderError{Code: "auth/user-not-found"}
}

func (m *Memory) identityFor(email string, acct *memoryAccount) *Identity {
	return &Identity{
		UID:         acct.uid,
		Email:       email,
		DisplayName: acct.displayName,
		PhotoURL:    acct.photoURL,
	}
}

func (m *Memory) takeFailure() error {
	if m.FailNextCode != "" {
		code := m.FailNextCode
		m.FailNextCode = ""
		return &ProviderError{Code: code}
	}
	return nil
}

func newMemoryUID(n int) string {
	return "mem-" + strconv.Itoa(n)
}
