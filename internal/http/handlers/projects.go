package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"studio/internal/domain"
)

type createProjectRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	Type        domain.AssetType `json:"type" validate:"required,oneof=image video"`
	IsPublic    bool             `json:"isPublic"`
	Tags        []string         `json:"tags"`
}

type updateProjectRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	IsPublic    *bool     `json:"isPublic"`
	Tags        *[]string `json:"tags"`
}

func (a *App) ListProjects(w http.ResponseWriter, r *http.Request) {
	snap := a.Store.Snapshot()
	a.json(w, http.StatusOK, map[string]any{"items": snap.Projects})
}

func (a *App) CreateProject(w http.ResponseWriter, r *http.Request) {
	snap := a.Store.Snapshot()
	if snap.User == nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "not signed in")
		return
	}
	var req createProjectRequest
	if !a.decode(w, r, &req) {
		return
	}

	now := time.Now().UTC()
	project := domain.Project{
		ID:            uuid.NewString(),
		UserID:        snap.User.UID,
		Name:          req.Name,
		Description:   req.Description,
		Type:          req.Type,
		AssetIDs:      []string{},
		Collaborators: []string{},
		IsPublic:      req.IsPublic,
		Tags:          req.Tags,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if project.Tags == nil {
		project.Tags = []string{}
	}
	a.Store.AddProject(project)
	a.json(w, http.StatusCreated, project)
}

func (a *App) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, p := range a.Store.Snapshot().Projects {
		if p.ID == id {
			a.json(w, http.StatusOK, p)
			return
		}
	}
	a.error(w, http.StatusNotFound, "not_found", "project not found")
}

func (a *App) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req updateProjectRequest
	if !a.decode(w, r, &req) {
		return
	}

	found := false
	a.Store.UpdateProject(id, func(p *domain.Project) {
		found = true
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.IsPublic != nil {
			p.IsPublic = *req.IsPublic
		}
		if req.Tags != nil {
			p.Tags = *req.Tags
		}
		p.UpdatedAt = time.Now().UTC()
	})
	if !found {
		a.error(w, http.StatusNotFound, "not_found", "project not found")
		return
	}

	for _, p := range a.Store.Snapshot().Projects {
		if p.ID == id {
			a.json(w, http.StatusOK, p)
			return
		}
	}
	a.error(w, http.StatusNotFound, "not_found", "project not found")
}

func (a *App) DeleteProject(w http.ResponseWriter, r *http.Request) {
	a.Store.RemoveProject(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
