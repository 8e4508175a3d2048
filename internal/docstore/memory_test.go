package docstore

import (
	"context"
	"errors"
	"testing"
)

type profile struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Age   int    `json:"age,omitempty"`
}

func TestMemoryGetMissing(t *testing.T) {
	m := NewMemory()
	var dest profile
	if err := m.Get(context.Background(), "users", "ghost", &dest); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestMemorySetAndGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, "users", "u1", &profile{Name: "Alice", Email: "a@b.com"}, false); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}
	var got profile
	if err := m.Get(ctx, "users", "u1", &got); err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if got.Name != "Alice" || got.Email != "a@b.com" {
		t.Fatalf("Get() = %+v", got)
	}
	if m.Writes() != 1 {
		t.Fatalf("Writes() = %d, want 1", m.Writes())
	}
}

func TestMemoryMergeKeepsUnnamedFields(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, "users", "u1", &profile{Name: "Alice", Email: "a@b.com", Age: 30}, false); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}
	if err := m.Set(ctx, "users", "u1", Record{"name": "Renamed"}, true); err != nil {
		t.Fatalf("merge Set() unexpected error: %v", err)
	}

	var got profile
	if err := m.Get(ctx, "users", "u1", &got); err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if got.Name != "Renamed" || got.Email != "a@b.com" || got.Age != 30 {
		t.Fatalf("merge dropped fields: %+v", got)
	}
}

func TestMemoryOverwriteWithoutMerge(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, "users", "u1", &profile{Name: "Alice", Email: "a@b.com"}, false); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}
	if err := m.Set(ctx, "users", "u1", Record{"name": "Solo"}, false); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}

	var got profile
	if err := m.Get(ctx, "users", "u1", &got); err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if got.Name != "Solo" || got.Email != "" {
		t.Fatalf("overwrite kept stale fields: %+v", got)
	}
}

func TestMemoryFailNext(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	boom := errors.New("boom")

	m.FailNext = boom
	if err := m.Set(ctx, "users", "u1", Record{"name": "x"}, false); !errors.Is(err, boom) {
		t.Fatalf("Set() error = %v, want injected failure", err)
	}
	// The failure is one-shot.
	if err := m.Set(ctx, "users", "u1", Record{"name": "x"}, false); err != nil {
		t.Fatalf("Set() after injected failure = %v, want nil", err)
	}
}
