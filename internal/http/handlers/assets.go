package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"studio/internal/domain"
)

type createAssetRequest struct {
	ProjectID string               `json:"projectId" validate:"required"`
	Type      domain.AssetType     `json:"type" validate:"required,oneof=image video"`
	Prompt    string               `json:"prompt" validate:"required"`
	Settings  domain.AssetSettings `json:"settings"`
}

type updateAssetRequest struct {
	Status   *domain.AssetStatus   `json:"status" validate:"omitempty,oneof=pending processing completed failed"`
	URLs     *domain.AssetURLs     `json:"urls"`
	Metadata *domain.AssetMetadata `json:"metadata"`
}

type selectionRequest struct {
	IDs []string `json:"ids" validate:"required"`
}

func (a *App) ListAssets(w http.ResponseWriter, r *http.Request) {
	snap := a.Store.Snapshot()
	a.json(w, http.StatusOK, map[string]any{
		"items":    filterAssets(snap.Assets, snap.UI.Filters),
		"selected": snap.UI.SelectedAssets,
	})
}

func (a *App) CreateAsset(w http.ResponseWriter, r *http.Request) {
	snap := a.Store.Snapshot()
	if snap.User == nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "not signed in")
		return
	}
	var req createAssetRequest
	if !a.decode(w, r, &req) {
		return
	}

	now := time.Now().UTC()
	asset := domain.Asset{
		ID:        uuid.NewString(),
		ProjectID: req.ProjectID,
		UserID:    snap.User.UID,
		Type:      req.Type,
		Prompt:    req.Prompt,
		Settings:  req.Settings,
		Status:    domain.AssetStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	a.Store.AddAsset(asset)
	a.Store.UpdateProject(req.ProjectID, func(p *domain.Project) {
		p.AssetIDs = append(p.AssetIDs, asset.ID)
		p.UpdatedAt = now
	})
	a.json(w, http.StatusCreated, asset)
}

func (a *App) GetAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, asset := range a.Store.Snapshot().Assets {
		if asset.ID == id {
			a.json(w, http.StatusOK, asset)
			return
		}
	}
	a.error(w, http.StatusNotFound, "not_found", "asset not found")
}

func (a *App) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req updateAssetRequest
	if !a.decode(w, r, &req) {
		return
	}

	found := false
	a.Store.UpdateAsset(id, func(asset *domain.Asset) {
		found = true
		if req.Status != nil {
			asset.Status = *req.Status
		}
		if req.URLs != nil {
			asset.URLs = *req.URLs
		}
		if req.Metadata != nil {
			asset.Metadata = *req.Metadata
		}
		asset.UpdatedAt = time.Now().UTC()
	})
	if !found {
		a.error(w, http.StatusNotFound, "not_found", "asset not found")
		return
	}

	for _, asset := range a.Store.Snapshot().Assets {
		if asset.ID == id {
			a.json(w, http.StatusOK, asset)
			return
		}
	}
	a.error(w, http.StatusNotFound, "not_found", "asset not found")
}

func (a *App) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap := a.Store.Snapshot()
	a.Store.RemoveAsset(id)
	for _, p := range snap.Projects {
		for _, assetID := range p.AssetIDs {
			if assetID == id {
				a.Store.UpdateProject(p.ID, func(pr *domain.Project) {
					kept := pr.AssetIDs[:0]
					for _, aid := range pr.AssetIDs {
						if aid != id {
							kept = append(kept, aid)
						}
					}
					pr.AssetIDs = kept
					pr.UpdatedAt = time.Now().UTC()
				})
				break
			}
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) ReplaceSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if !a.decode(w, r, &req) {
		return
	}
	a.Store.SetSelectedAssets(req.IDs)
	a.json(w, http.StatusOK, map[string]any{"selected": a.Store.Snapshot().UI.SelectedAssets})
}

func (a *App) SelectAsset(w http.ResponseWriter, r *http.Request) {
	a.Store.AddSelectedAsset(chi.URLParam(r, "id"))
	a.json(w, http.StatusOK, map[string]any{"selected": a.Store.Snapshot().UI.SelectedAssets})
}

func (a *App) DeselectAsset(w http.ResponseWriter, r *http.Request) {
	a.Store.RemoveSelectedAsset(chi.URLParam(r, "id"))
	a.json(w, http.StatusOK, map[string]any{"selected": a.Store.Snapshot().UI.SelectedAssets})
}

func (a *App) ClearSelection(w http.ResponseWriter, r *http.Request) {
	a.Store.ClearSelectedAssets()
	w.WriteHeader(http.StatusNoContent)
}

// filterAssets applies the dashboard filter criteria to the asset listing.
func filterAssets(assets []domain.Asset, f domain.AssetFilters) []domain.Asset {
	out := make([]domain.Asset, 0, len(assets))
	for _, asset := range assets {
		if f.Type != nil && asset.Type != *f.Type {
			continue
		}
		if f.Status != nil && asset.Status != *f.Status {
			continue
		}
		if f.DateRange != nil {
			if asset.CreatedAt.Before(f.DateRange.Start) || asset.CreatedAt.After(f.DateRange.End) {
				continue
			}
		}
		out = append(out, asset)
	}
	return out
}
