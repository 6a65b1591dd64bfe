package handlers

import (
	"errors"
	"fmt"
	"net/http"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/campsite/signups/internal/models"
	"github.com/campsite/signups/internal/services"
)

// BadgePayload is the text encoded in a signup's check-in QR code.
func BadgePayload(s models.Signup) string {
	return fmt.Sprintf("signup:%d:camper:%d:activity:%d:time:%02d", s.ID, s.CamperID, s.ActivityID, s.Time)
}

// GET /signups/{id}/qr.png
func (a *API) SignupQR(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Signup not found")
		return
	}
	s, err := services.FindByID[models.Signup](r.Context(), a.gw, id)
	if errors.Is(err, services.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Signup not found")
		return
	}
	if err != nil {
		a.internal(w, r, err)
		return
	}

	png, err := qrcode.Encode(BadgePayload(*s), qrcode.Medium, 256)
	if err != nil {
		a.internal(w, r, fmt.Errorf("encode qr: %w", err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
