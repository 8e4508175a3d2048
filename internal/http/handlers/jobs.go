package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"studio/internal/billing"
	"studio/internal/domain"
)

type createJobRequest struct {
	Type    domain.AssetType `json:"type" validate:"required,oneof=image video"`
	Payload json.RawMessage  `json:"payload" validate:"required"`
}

type updateJobRequest struct {
	Status    *domain.JobStatus `json:"status" validate:"omitempty,oneof=queued processing completed failed"`
	ResultURL *string           `json:"result"`
	Error     *string           `json:"error"`
}

func (a *App) ListJobs(w http.ResponseWriter, r *http.Request) {
	snap := a.Store.Snapshot()
	a.json(w, http.StatusOK, map[string]any{"items": snap.Jobs})
}

func (a *App) CreateJob(w http.ResponseWriter, r *http.Request) {
	snap := a.Store.Snapshot()
	if snap.User == nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "not signed in")
		return
	}
	var req createJobRequest
	if !a.decode(w, r, &req) {
		return
	}

	now := time.Now().UTC()
	job := domain.GenerationJob{
		ID:        uuid.NewString(),
		UserID:    snap.User.UID,
		Type:      req.Type,
		Priority:  billing.PriorityFor(snap.User.Subscription.Plan),
		Payload:   req.Payload,
		Status:    domain.JobStatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	a.Store.AddJob(job)
	a.json(w, http.StatusAccepted, job)
}

func (a *App) GetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, job := range a.Store.Snapshot().Jobs {
		if job.ID == id {
			a.json(w, http.StatusOK, job)
			return
		}
	}
	a.error(w, http.StatusNotFound, "not_found", "job not found")
}

func (a *App) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req updateJobRequest
	if !a.decode(w, r, &req) {
		return
	}

	found := false
	a.Store.UpdateJob(id, func(job *domain.GenerationJob) {
		found = true
		if req.Status != nil {
			job.Status = *req.Status
		}
		if req.ResultURL != nil {
			job.ResultURL = *req.ResultURL
		}
		if req.Error != nil {
			job.Error = *req.Error
		}
		job.UpdatedAt = time.Now().UTC()
	})
	if !found {
		a.error(w, http.StatusNotFound, "not_found", "job not found")
		return
	}

	for _, job := range a.Store.Snapshot().Jobs {
		if job.ID == id {
			a.json(w, http.StatusOK, job)
			return
		}
	}
	a.error(w, http.StatusNotFound, "not_found", "job not found")
}

func (a *App) DeleteJob(w http.ResponseWriter, r *http.Request) {
	a.Store.RemoveJob(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
