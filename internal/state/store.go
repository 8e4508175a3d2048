// Package state holds the process-wide application state: the current user,
// ephemeral UI state, and the in-memory collections of projects, assets and
// generation jobs. The durable source of truth lives with the external
// providers; these copies are advisory caches refreshed by the session
// synchronizer or by explicit reads.
package state

import (
	"sync"

	"studio/internal/domain"
)

// Snapshot is an immutable view of the application state. Mutators build the
// next snapshot from the previous one and swap it in atomically; subscribers
// receive a copy and must treat it as read-only.
type Snapshot struct {
	User            *domain.User
	IsAuthenticated bool
	IsLoading       bool
	UI              domain.UIState
	Projects        []domain.Project
	Assets          []domain.Asset
	Jobs            []domain.GenerationJob
}

// SubscriberFunc receives the post-mutation snapshot. Subscribers are invoked
// synchronously after every mutation, in subscription order.
type SubscriberFunc func(Snapshot)

type subscriber struct {
	id int
	fn SubscriberFunc
}

// Store is the single state owner. It is constructed once at application start
// and handed to every consumer; there is no package-level instance. All
// mutation goes through its methods, and no method performs I/O while holding
// the lock.
type Store struct {
	mu     sync.Mutex
	snap   Snapshot
	subs   []subscriber
	nextID int
}

// New returns a Store holding the documented initial values: no user, not
// authenticated, loading (the initial session resolution is pending), default
// UI state, and empty collections.
func New() *Store {
	return &Store{snap: initialSnapshot()}
}

func initialSnapshot() Snapshot {
	return Snapshot{
		IsLoading: true,
		UI:        initialUIState(),
	}
}

func initialUIState() domain.UIState {
	return domain.UIState{
		ViewMode:       domain.ViewModeGrid,
		SelectedAssets: []string{},
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.clone()
}

// Subscribe registers fn for post-mutation notification and returns an
// unsubscribe function. Unsubscribing is idempotent.
func (s *Store) Subscribe(fn SubscriberFunc) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// apply runs mutate under the lock, then notifies subscribers outside it with
// the resulting snapshot. The mutation itself is atomic; notification order
// follows subscription order.
func (s *Store) apply(mutate func(*Snapshot)) {
	s.mu.Lock()
	mutate(&s.snap)
	snap := s.snap.clone()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(snap)
	}
}

// SetUser publishes the authenticated user. A nil user means signed out.
// Either way the top-level loading flag is cleared: session resolution has
// finished. This is intended to be called only by the session synchronizer.
func (s *Store) SetUser(u *domain.User) {
	s.apply(func(snap *Snapshot) {
		if u != nil {
			cp := cloneUser(u)
			snap.User = cp
			snap.IsAuthenticated = true
		} else {
			snap.User = nil
			snap.IsAuthenticated = false
		}
		snap.IsLoading = false
	})
}

// SetLoading toggles the top-level loading flag.
func (s *Store) SetLoading(loading bool) {
	s.apply(func(snap *Snapshot) { snap.IsLoading = loading })
}

// SetUIError sets the UI error message. An empty string clears it.
func (s *Store) SetUIError(msg string) {
	s.apply(func(snap *Snapshot) { snap.UI.Error = msg })
}

// SetUILoading toggles the UI-level loading flag.
func (s *Store) SetUILoading(loading bool) {
	s.apply(func(snap *Snapshot) { snap.UI.IsLoading = loading })
}

// SetViewMode switches between grid and list presentation.
func (s *Store) SetViewMode(mode domain.ViewMode) {
	s.apply(func(snap *Snapshot) { snap.UI.ViewMode = mode })
}

// SetSelectedAssets replaces the selection. Duplicates are collapsed and ids
// not present in the asset collection are dropped, preserving the invariant
// that the selection only references known assets.
func (s *Store) SetSelectedAssets(ids []string) {
	s.apply(func(snap *Snapshot) {
		known := make(map[string]struct{}, len(snap.Assets))
		for _, a := range snap.Assets {
			known[a.ID] = struct{}{}
		}
		selected := make([]string, 0, len(ids))
		seen := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}
			if _, ok := known[id]; !ok {
				continue
			}
			seen[id] = struct{}{}
			selected = append(selected, id)
		}
		snap.UI.SelectedAssets = selected
	})
}

// AddSelectedAsset adds id to the selection. Adding an already-selected or
// unknown asset id is a no-op.
func (s *Store) AddSelectedAsset(id string) {
	s.apply(func(snap *Snapshot) {
		for _, sel := range snap.UI.SelectedAssets {
			if sel == id {
				return
			}
		}
		for _, a := range snap.Assets {
			if a.ID == id {
				snap.UI.SelectedAssets = append(snap.UI.SelectedAssets, id)
				return
			}
		}
	})
}

// RemoveSelectedAsset removes id from the selection if present.
func (s *Store) RemoveSelectedAsset(id string) {
	s.apply(func(snap *Snapshot) {
		snap.UI.SelectedAssets = removeString(snap.UI.SelectedAssets, id)
	})
}

// ClearSelectedAssets empties the selection.
func (s *Store) ClearSelectedAssets() {
	s.apply(func(snap *Snapshot) { snap.UI.SelectedAssets = []string{} })
}

// MergeFilters overlays the provided filter fields onto the current criteria.
// Nil fields in the patch leave the existing constraint untouched.
func (s *Store) MergeFilters(patch domain.AssetFilters) {
	s.apply(func(snap *Snapshot) {
		if patch.Type != nil {
			snap.UI.Filters.Type = patch.Type
		}
		if patch.Status != nil {
			snap.UI.Filters.Status = patch.Status
		}
		if patch.DateRange != nil {
			snap.UI.Filters.DateRange = patch.DateRange
		}
		if patch.Tags != nil {
			snap.UI.Filters.Tags = patch.Tags
		}
	})
}

// SetProjects replaces the project collection.
func (s *Store) SetProjects(projects []domain.Project) {
	s.apply(func(snap *Snapshot) {
		snap.Projects = append([]domain.Project(nil), projects...)
	})
}

// AddProject appends a project.
func (s *Store) AddProject(p domain.Project) {
	s.apply(func(snap *Snapshot) { snap.Projects = append(snap.Projects, p) })
}

// UpdateProject applies fn to the project with the given id. If the id is
// unknown the state is left unchanged; an update never inserts.
func (s *Store) UpdateProject(id string, fn func(*domain.Project)) {
	s.apply(func(snap *Snapshot) {
		for i := range snap.Projects {
			if snap.Projects[i].ID == id {
				fn(&snap.Projects[i])
				return
			}
		}
	})
}

// RemoveProject deletes the project with the given id; absent ids are a no-op.
func (s *Store) RemoveProject(id string) {
	s.apply(func(snap *Snapshot) {
		for i := range snap.Projects {
			if snap.Projects[i].ID == id {
				snap.Projects = append(snap.Projects[:i], snap.Projects[i+1:]...)
				return
			}
		}
	})
}

// SetAssets replaces the asset collection and drops selection entries that no
// longer reference a known asset.
func (s *Store) SetAssets(assets []domain.Asset) {
	s.apply(func(snap *Snapshot) {
		snap.Assets = append([]domain.Asset(nil), assets...)
		known := make(map[string]struct{}, len(snap.Assets))
		for _, a := range snap.Assets {
			known[a.ID] = struct{}{}
		}
		kept := snap.UI.SelectedAssets[:0]
		for _, id := range snap.UI.SelectedAssets {
			if _, ok := known[id]; ok {
				kept = append(kept, id)
			}
		}
		snap.UI.SelectedAssets = kept
	})
}

// AddAsset appends an asset.
func (s *Store) AddAsset(a domain.Asset) {
	s.apply(func(snap *Snapshot) { snap.Assets = append(snap.Assets, a) })
}

// UpdateAsset applies fn to the asset with the given id; unknown ids leave the
// state unchanged.
func (s *Store) UpdateAsset(id string, fn func(*domain.Asset)) {
	s.apply(func(snap *Snapshot) {
		for i := range snap.Assets {
			if snap.Assets[i].ID == id {
				fn(&snap.Assets[i])
				return
			}
		}
	})
}

// RemoveAsset deletes the asset with the given id and removes it from the
// selection, keeping selection ⊆ known asset ids.
func (s *Store) RemoveAsset(id string) {
	s.apply(func(snap *Snapshot) {
		for i := range snap.Assets {
			if snap.Assets[i].ID == id {
				snap.Assets = append(snap.Assets[:i], snap.Assets[i+1:]...)
				break
			}
		}
		snap.UI.SelectedAssets = removeString(snap.UI.SelectedAssets, id)
	})
}

// SetJobs replaces the generation job collection.
func (s *Store) SetJobs(jobs []domain.GenerationJob) {
	s.apply(func(snap *Snapshot) {
		snap.Jobs = append([]domain.GenerationJob(nil), jobs...)
	})
}

// AddJob appends a generation job.
func (s *Store) AddJob(j domain.GenerationJob) {
	s.apply(func(snap *Snapshot) { snap.Jobs = append(snap.Jobs, j) })
}

// UpdateJob applies fn to the job with the given id; unknown ids leave the
// state unchanged.
func (s *Store) UpdateJob(id string, fn func(*domain.GenerationJob)) {
	s.apply(func(snap *Snapshot) {
		for i := range snap.Jobs {
			if snap.Jobs[i].ID == id {
				fn(&snap.Jobs[i])
				return
			}
		}
	})
}

// RemoveJob deletes the job with the given id; absent ids are a no-op.
func (s *Store) RemoveJob(id string) {
	s.apply(func(snap *Snapshot) {
		for i := range snap.Jobs {
			if snap.Jobs[i].ID == id {
				snap.Jobs = append(snap.Jobs[:i], snap.Jobs[i+1:]...)
				return
			}
		}
	})
}

// Reset restores every field to its initial empty value. Used on sign-out and
// application teardown. Unlike the freshly constructed store, loading is false:
// the session outcome is known.
func (s *Store) Reset() {
	s.apply(func(snap *Snapshot) {
		*snap = initialSnapshot()
		snap.IsLoading = false
	})
}

func (snap Snapshot) clone() Snapshot {
	out := snap
	out.User = cloneUser(snap.User)
	out.Projects = append([]domain.Project(nil), snap.Projects...)
	out.Assets = append([]domain.Asset(nil), snap.Assets...)
	out.Jobs = append([]domain.GenerationJob(nil), snap.Jobs...)
	out.UI.SelectedAssets = append([]string(nil), snap.UI.SelectedAssets...)
	return out
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.BrandKit.Colors = append([]string(nil), u.BrandKit.Colors...)
	cp.BrandKit.Fonts = append([]string(nil), u.BrandKit.Fonts...)
	cp.BrandKit.Templates = append([]string(nil), u.BrandKit.Templates...)
	return &cp
}

func removeString(list []string, target string) []string {
	out := list[:0]
	for _, v := range list {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}
