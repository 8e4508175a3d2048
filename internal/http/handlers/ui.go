package handlers

import (
	"net/http"

	"studio/internal/domain"
)

type viewModeRequest struct {
	Mode domain.ViewMode `json:"mode" validate:"required,oneof=grid list"`
}

func (a *App) UIState(w http.ResponseWriter, r *http.Request) {
	snap := a.Store.Snapshot()
	a.json(w, http.StatusOK, map[string]any{
		"isLoading":       snap.IsLoading,
		"isAuthenticated": snap.IsAuthenticated,
		"ui":              snap.UI,
	})
}

func (a *App) SetViewMode(w http.ResponseWriter, r *http.Request) {
	var req viewModeRequest
	if !a.decode(w, r, &req) {
		return
	}
	a.Store.SetViewMode(req.Mode)
	a.json(w, http.StatusOK, a.Store.Snapshot().UI)
}

func (a *App) MergeFilters(w http.ResponseWriter, r *http.Request) {
	var patch domain.AssetFilters
	if !a.decode(w, r, &patch) {
		return
	}
	a.Store.MergeFilters(patch)
	a.json(w, http.StatusOK, a.Store.Snapshot().UI.Filters)
}

func (a *App) ClearUIError(w http.ResponseWriter, r *http.Request) {
	a.Store.SetUIError("")
	w.WriteHeader(http.StatusNoContent)
}
