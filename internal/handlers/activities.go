package handlers

import (
	"errors"
	"net/http"

	"github.com/campsite/signups/internal/models"
	"github.com/campsite/signups/internal/services"
)

// GET /activities
func (a *API) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := services.FindAll[models.Activity](r.Context(), a.gw)
	if err != nil {
		a.internal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ActivitySummaries(activities))
}

// DELETE /activities/{id}
//
// Success is a bare 204: net/http does not allow a body on 204, so the
// {"delete_successful": true, ...} confirmation is never sent.
func (a *API) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Activity not found")
		return
	}
	if _, err := a.gw.DeleteActivity(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Activity not found")
			return
		}
		a.internal(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
