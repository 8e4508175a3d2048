package state

import (
	"reflect"
	"testing"
	"time"

	"studio/internal/domain"
)

func TestNewInitialSnapshot(t *testing.T) {
	s := New()
	snap := s.Snapshot()

	if !snap.IsLoading {
		t.Fatalf("IsLoading = false, want true before the first session resolution")
	}
	if snap.IsAuthenticated || snap.User != nil {
		t.Fatalf("new store should be unauthenticated, got user %+v", snap.User)
	}
	if snap.UI.ViewMode != domain.ViewModeGrid {
		t.Fatalf("ViewMode = %q, want %q", snap.UI.ViewMode, domain.ViewModeGrid)
	}
	if snap.UI.SelectedAssets == nil || len(snap.UI.SelectedAssets) != 0 {
		t.Fatalf("SelectedAssets = %v, want empty non-nil slice", snap.UI.SelectedAssets)
	}
}

func TestSetUserClearsLoading(t *testing.T) {
	s := New()
	s.SetUser(&domain.User{UID: "u1", Email: "a@b.com"})

	snap := s.Snapshot()
	if snap.IsLoading {
		t.Fatalf("IsLoading = true after SetUser, want false")
	}
	if !snap.IsAuthenticated || snap.User == nil || snap.User.UID != "u1" {
		t.Fatalf("unexpected auth state: %+v", snap)
	}

	s.SetUser(nil)
	snap = s.Snapshot()
	if snap.IsAuthenticated || snap.User != nil {
		t.Fatalf("SetUser(nil) should sign out, got %+v", snap)
	}
	if snap.IsLoading {
		t.Fatalf("IsLoading = true after SetUser(nil), want false")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	s := New()
	s.SetUser(&domain.User{UID: "u1", BrandKit: domain.BrandKit{Colors: []string{"#fff"}}})

	snap := s.Snapshot()
	snap.User.BrandKit.Colors[0] = "#000"
	snap.User.UID = "mutated"

	again := s.Snapshot()
	if again.User.UID != "u1" || again.User.BrandKit.Colors[0] != "#fff" {
		t.Fatalf("snapshot mutation leaked into the store: %+v", again.User)
	}
}

func TestSelectionOnlyReferencesKnownAssets(t *testing.T) {
	s := New()
	s.SetAssets([]domain.Asset{{ID: "a1"}, {ID: "a2"}})

	s.SetSelectedAssets([]string{"a1", "a1", "ghost", "a2"})
	if got := s.Snapshot().UI.SelectedAssets; !reflect.DeepEqual(got, []string{"a1", "a2"}) {
		t.Fatalf("SetSelectedAssets kept %v, want [a1 a2]", got)
	}

	s.AddSelectedAsset("ghost")
	s.AddSelectedAsset("a1")
	if got := s.Snapshot().UI.SelectedAssets; !reflect.DeepEqual(got, []string{"a1", "a2"}) {
		t.Fatalf("AddSelectedAsset changed selection to %v", got)
	}

	s.RemoveAsset("a1")
	if got := s.Snapshot().UI.SelectedAssets; !reflect.DeepEqual(got, []string{"a2"}) {
		t.Fatalf("RemoveAsset left selection %v, want [a2]", got)
	}

	s.SetAssets([]domain.Asset{{ID: "a3"}})
	if got := s.Snapshot().UI.SelectedAssets; len(got) != 0 {
		t.Fatalf("SetAssets left stale selection %v", got)
	}
}

func TestUpdateNeverInserts(t *testing.T) {
	s := New()
	called := false
	s.UpdateProject("missing", func(*domain.Project) { called = true })
	s.UpdateAsset("missing", func(*domain.Asset) { called = true })
	s.UpdateJob("missing", func(*domain.GenerationJob) { called = true })

	if called {
		t.Fatalf("update callback ran for an unknown id")
	}
	snap := s.Snapshot()
	if len(snap.Projects)+len(snap.Assets)+len(snap.Jobs) != 0 {
		t.Fatalf("update inserted entries: %+v", snap)
	}
}

func TestMergeFiltersPartial(t *testing.T) {
	s := New()
	img := domain.AssetTypeImage
	done := domain.AssetStatusCompleted
	s.MergeFilters(domain.AssetFilters{Type: &img, Status: &done})

	failed := domain.AssetStatusFailed
	s.MergeFilters(domain.AssetFilters{Status: &failed})

	f := s.Snapshot().UI.Filters
	if f.Type == nil || *f.Type != domain.AssetTypeImage {
		t.Fatalf("Type filter lost on partial merge: %+v", f)
	}
	if f.Status == nil || *f.Status != domain.AssetStatusFailed {
		t.Fatalf("Status = %v, want failed", f.Status)
	}
}

func TestResetLeavesLoadingFalse(t *testing.T) {
	s := New()
	s.SetUser(&domain.User{UID: "u1"})
	s.SetAssets([]domain.Asset{{ID: "a1", CreatedAt: time.Now()}})
	s.SetViewMode(domain.ViewModeList)

	s.Reset()

	snap := s.Snapshot()
	if snap.IsLoading {
		t.Fatalf("IsLoading = true after Reset, want false: the session outcome is known")
	}
	if snap.User != nil || snap.IsAuthenticated || len(snap.Assets) != 0 {
		t.Fatalf("Reset left state behind: %+v", snap)
	}
	if snap.UI.ViewMode != domain.ViewModeGrid {
		t.Fatalf("ViewMode = %q after Reset, want grid", snap.UI.ViewMode)
	}
}

func TestSubscribersNotifiedInOrder(t *testing.T) {
	s := New()
	var order []int
	s.Subscribe(func(Snapshot) { order = append(order, 1) })
	unsub := s.Subscribe(func(Snapshot) { order = append(order, 2) })
	s.Subscribe(func(Snapshot) { order = append(order, 3) })

	s.SetLoading(false)
	if !reflect.DeepEqual(order, []int{1, 2, 3}) {
		t.Fatalf("notification order = %v, want [1 2 3]", order)
	}

	order = nil
	unsub()
	unsub() // idempotent
	s.SetLoading(true)
	if !reflect.DeepEqual(order, []int{1, 3}) {
		t.Fatalf("after unsubscribe, order = %v, want [1 3]", order)
	}
}

func TestSubscriberSeesPostMutationSnapshot(t *testing.T) {
	s := New()
	var seen []bool
	s.Subscribe(func(snap Snapshot) { seen = append(seen, snap.IsAuthenticated) })

	s.SetUser(&domain.User{UID: "u1"})
	s.SetUser(nil)

	if !reflect.DeepEqual(seen, []bool{true, false}) {
		t.Fatalf("subscriber observed %v, want [true false]", seen)
	}
}
