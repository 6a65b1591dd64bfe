package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/campsite/signups/internal/metrics"
	"github.com/campsite/signups/internal/models"
	"github.com/campsite/signups/internal/services"
)

// API holds what every route needs: the gateway and a logger.
type API struct {
	gw  *services.Gateway
	log *logrus.Entry
}

func New(gw *services.Gateway, log *logrus.Entry) *API {
	return &API{gw: gw, log: log}
}

// validationErrors is the body for every rejected write, whichever field
// failed.
var validationErrors = map[string][]string{"errors": {"validation errors"}}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// idParam returns false for anything that is not a positive integer id.
func idParam(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// decode reads a JSON object body into dst.
func decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// rejected answers 400 with the generic body, logging and counting the
// precise reason.
func (a *API) rejected(w http.ResponseWriter, r *http.Request, entity string, err error) {
	field := "body"
	var verr *models.ValidationError
	var cerr *services.ConstraintError
	switch {
	case errors.As(err, &verr):
		field = verr.Field
	case errors.As(err, &cerr):
		field = cerr.Field
	}
	metrics.ValidationRejected(entity, field)
	a.log.WithFields(logrus.Fields{
		"request_id": middleware.GetReqID(r.Context()),
		"entity":     entity,
		"field":      field,
		"reason":     err.Error(),
	}).Info("write rejected")
	writeJSON(w, http.StatusBadRequest, validationErrors)
}

// isRejection reports whether err is a validation or reference failure.
func isRejection(err error) bool {
	var verr *models.ValidationError
	var cerr *services.ConstraintError
	return errors.As(err, &verr) || errors.As(err, &cerr)
}

func (a *API) internal(w http.ResponseWriter, r *http.Request, err error) {
	a.log.WithFields(logrus.Fields{
		"request_id": middleware.GetReqID(r.Context()),
		"path":       r.URL.Path,
	}).WithError(err).Error("store error")
	writeError(w, http.StatusInternalServerError, "internal server error")
}
