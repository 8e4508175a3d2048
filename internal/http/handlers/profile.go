package handlers

import (
	"encoding/json"
	"net/http"

	"studio/internal/docstore"
)

// Fields the client may never patch directly; uid is the document id and the
// rest are owned by the billing or identity layers.
var protectedProfileFields = map[string]struct{}{
	"uid":          {},
	"email":        {},
	"subscription": {},
	"usage":        {},
	"createdAt":    {},
	"updatedAt":    {},
}

func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	snap := a.Store.Snapshot()
	if snap.User == nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "not signed in")
		return
	}
	a.json(w, http.StatusOK, snap.User)
}

func (a *App) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var patch docstore.Record
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if len(patch) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "empty patch")
		return
	}
	for field := range patch {
		if _, protected := protectedProfileFields[field]; protected {
			a.error(w, http.StatusBadRequest, "bad_request", "field "+field+" cannot be updated")
			return
		}
	}

	user, err := a.Sync.UpdateProfile(r.Context(), patch)
	if err != nil {
		a.authError(w, err)
		return
	}
	a.json(w, http.StatusOK, user)
}

func (a *App) RefreshMe(w http.ResponseWriter, r *http.Request) {
	if err := a.Sync.Refresh(r.Context()); err != nil {
		a.authError(w, err)
		return
	}
	snap := a.Store.Snapshot()
	if snap.User == nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "not signed in")
		return
	}
	a.json(w, http.StatusOK, snap.User)
}
