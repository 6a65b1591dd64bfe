package handlers

import (
	"errors"
	"net/http"

	"github.com/campsite/signups/internal/models"
)

type signupRequest struct {
	CamperID   *uint `json:"camper_id"`
	ActivityID *uint `json:"activity_id"`
	Time       *int  `json:"time"`
}

// POST /signups
func (a *API) CreateSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decode(r, &req); err != nil {
		a.rejected(w, r, "signup", err)
		return
	}
	if req.CamperID == nil || req.ActivityID == nil || req.Time == nil {
		a.rejected(w, r, "signup", errors.New("camper_id, activity_id and time are required"))
		return
	}

	s := models.Signup{CamperID: *req.CamperID, ActivityID: *req.ActivityID, Time: *req.Time}
	if err := a.gw.InsertSignup(r.Context(), &s); err != nil {
		if isRejection(err) {
			a.rejected(w, r, "signup", err)
			return
		}
		a.internal(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.Created())
}
