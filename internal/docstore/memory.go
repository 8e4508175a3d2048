package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-process Store for tests and local development. It
// normalizes every write through JSON so structs and Records behave the same
// as against the durable backends, and counts writes so tests can assert on
// side effects.
type Memory struct {
	mu     sync.Mutex
	docs   map[string]Record
	writes int

	// FailNext, when non-nil, is returned by the next Get or Set and cleared.
	FailNext error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]Record)}
}

// Get fetches collection/id into dest.
func (m *Memory) Get(ctx context.Context, collection, id string, dest any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	rec, ok := m.docs[collection+"/"+id]
	if !ok {
		return ErrNotFound
	}
	return roundTrip(rec, dest)
}

// Set writes data under collection/id, merging top-level fields when asked.
func (m *Memory) Set(ctx context.Context, collection, id string, data any, merge bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}

	var rec Record
	if err := roundTrip(data, &rec); err != nil {
		return err
	}

	key := collection + "/" + id
	if existing, ok := m.docs[key]; ok && merge {
		merged := make(Record, len(existing)+len(rec))
		for k, v := range existing {
			merged[k] = v
		}
		for k, v := range rec {
			merged[k] = v
		}
		rec = merged
	}
	m.docs[key] = rec
	m.writes++
	return nil
}

// Writes reports how many Set calls have been applied.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *Memory) takeFailure() error {
	if m.FailNext != nil {
		err := m.FailNext
		m.FailNext = nil
		return err
	}
	return nil
}

func roundTrip(src, dest any) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("memory docstore encode: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("memory docstore decode: %w", err)
	}
	return nil
}
