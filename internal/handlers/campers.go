package handlers

import (
	"errors"
	"net/http"

	"github.com/campsite/signups/internal/models"
	"github.com/campsite/signups/internal/services"
)

// Pointer fields tell "absent" apart from the zero value.
type camperRequest struct {
	Name *string `json:"name"`
	Age  *int    `json:"age"`
}

// GET /campers
func (a *API) ListCampers(w http.ResponseWriter, r *http.Request) {
	campers, err := services.FindAll[models.Camper](r.Context(), a.gw)
	if err != nil {
		a.internal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.CamperSummaries(campers))
}

// POST /campers
func (a *API) CreateCamper(w http.ResponseWriter, r *http.Request) {
	var req camperRequest
	if err := decode(r, &req); err != nil {
		a.rejected(w, r, "camper", err)
		return
	}
	if req.Name == nil || req.Age == nil {
		a.rejected(w, r, "camper", errors.New("name and age are required"))
		return
	}

	c := models.Camper{Name: *req.Name, Age: *req.Age}
	if err := a.gw.InsertCamper(r.Context(), &c); err != nil {
		if isRejection(err) {
			a.rejected(w, r, "camper", err)
			return
		}
		a.internal(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c.Summary())
}

// GET /campers/{id}
func (a *API) ShowCamper(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Camper not found")
		return
	}
	c, err := a.gw.FindCamperWithSignups(r.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Camper not found")
		return
	}
	if err != nil {
		a.internal(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c.Detail())
}

// PATCH /campers/{id}
//
// name is mandatory and must be non-empty; age defaults to the stored value.
// The age range is checked here as well as by the gateway so an
// out-of-range age never reaches a transaction.
func (a *API) UpdateCamper(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Camper not found")
		return
	}
	current, err := services.FindByID[models.Camper](r.Context(), a.gw, id)
	if errors.Is(err, services.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Camper not found")
		return
	}
	if err != nil {
		a.internal(w, r, err)
		return
	}

	var req camperRequest
	if err := decode(r, &req); err != nil {
		a.rejected(w, r, "camper", err)
		return
	}
	if req.Name == nil || *req.Name == "" {
		a.rejected(w, r, "camper", &models.ValidationError{Entity: "camper", Field: "name", Reason: models.ErrNameRequired})
		return
	}
	age := current.Age
	if req.Age != nil {
		age = *req.Age
	}
	if !models.AgeInRange(age) {
		a.rejected(w, r, "camper", &models.ValidationError{Entity: "camper", Field: "age", Reason: models.ErrAgeOutOfRange})
		return
	}

	updated, err := a.gw.UpdateCamper(r.Context(), id, services.CamperUpdate{Name: req.Name, Age: &age})
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, "Camper not found")
	case isRejection(err):
		a.rejected(w, r, "camper", err)
	case err != nil:
		a.internal(w, r, err)
	default:
		writeJSON(w, http.StatusAccepted, updated.Summary())
	}
}
