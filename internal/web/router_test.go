package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campsite/signups/internal/db"
	"github.com/campsite/signups/internal/events"
	"github.com/campsite/signups/internal/handlers"
	"github.com/campsite/signups/internal/logging"
	"github.com/campsite/signups/internal/models"
	"github.com/campsite/signups/internal/services"
)

type testApp struct {
	t       *testing.T
	gw      *services.Gateway
	handler http.Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	store, err := db.Open(filepath.Join(t.TempDir(), "camp.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() }) //nolint:errcheck

	log := logging.Discard()
	gw := services.New(store, events.Hooks{})
	return &testApp{t: t, gw: gw, handler: Router(handlers.New(gw, log), log)}
}

func (a *testApp) do(method, path, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// activities inserts Archery (id 1) and Kayak (id 2).
func (a *testApp) activities() {
	a.t.Helper()
	ctx := context.Background()
	require.NoError(a.t, a.gw.InsertActivity(ctx, &models.Activity{Name: "Archery", Difficulty: 1}))
	require.NoError(a.t, a.gw.InsertActivity(ctx, &models.Activity{Name: "Kayak", Difficulty: 3}))
}

const validationBody = `{"errors":["validation errors"]}`

func TestRouterHealthz(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouterHome(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRouterMetrics(t *testing.T) {
	app := newTestApp(t)
	app.do(http.MethodGet, "/campers", "")
	rec := app.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "camp_http_requests_total")
}

func TestCreateCamper(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/campers", `{"name":"Aisha","age":12}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":1,"name":"Aisha","age":12}`, rec.Body.String())

	rec = app.do(http.MethodGet, "/campers", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Aisha","age":12}]`, rec.Body.String())
}

func TestCreateCamper_Rejected(t *testing.T) {
	cases := map[string]string{
		"too young":  `{"name":"Tot","age":5}`,
		"too old":    `{"name":"Gran","age":19}`,
		"empty name": `{"name":"","age":12}`,
		"no name":    `{"age":12}`,
		"no age":     `{"name":"Aisha"}`,
		"bad type":   `{"name":"Aisha","age":"twelve"}`,
		"malformed":  `{"name":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			app := newTestApp(t)
			rec := app.do(http.MethodPost, "/campers", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, validationBody, rec.Body.String())

			rec = app.do(http.MethodGet, "/campers", "")
			assert.JSONEq(t, `[]`, rec.Body.String())
		})
	}
}

func TestShowCamper_WithSignups(t *testing.T) {
	app := newTestApp(t)
	app.activities()
	app.do(http.MethodPost, "/campers", `{"name":"Aisha","age":12}`)
	rec := app.do(http.MethodPost, "/signups", `{"camper_id":1,"activity_id":2,"time":10}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = app.do(http.MethodGet, "/campers/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"id":1,"name":"Aisha","age":12,"signups":[{"activity":{"difficulty":3,"id":2,"name":"Kayak"}}]}`,
		rec.Body.String())
}

func TestShowCamper_NotFound(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{"/campers/9", "/campers/abc"} {
		rec := app.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.JSONEq(t, `{"error":"Camper not found"}`, rec.Body.String(), path)
	}
}

func TestUpdateCamper(t *testing.T) {
	app := newTestApp(t)
	app.do(http.MethodPost, "/campers", `{"name":"Aisha","age":12}`)

	rec := app.do(http.MethodPatch, "/campers/1", `{"name":"Aisha B","age":13}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Aisha B","age":13}`, rec.Body.String())

	// age defaults to the stored value
	rec = app.do(http.MethodPatch, "/campers/1", `{"name":"Aisha C"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Aisha C","age":13}`, rec.Body.String())
}

func TestUpdateCamper_RejectedLeavesRow(t *testing.T) {
	cases := map[string]string{
		"age out of range": `{"name":"Aisha","age":30}`,
		"empty name":       `{"name":"","age":12}`,
		"missing name":     `{"age":13}`,
		"malformed":        `not json`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			app := newTestApp(t)
			app.do(http.MethodPost, "/campers", `{"name":"Aisha","age":12}`)

			rec := app.do(http.MethodPatch, "/campers/1", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, validationBody, rec.Body.String())

			rec = app.do(http.MethodGet, "/campers/1", "")
			assert.JSONEq(t, `{"id":1,"name":"Aisha","age":12,"signups":[]}`, rec.Body.String())
		})
	}
}

func TestUpdateCamper_NotFound(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(http.MethodPatch, "/campers/3", `{"name":"Ghost","age":12}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Camper not found"}`, rec.Body.String())
}

func TestListActivities(t *testing.T) {
	app := newTestApp(t)
	app.activities()

	rec := app.do(http.MethodGet, "/activities", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`[{"id":1,"name":"Archery","difficulty":1},{"id":2,"name":"Kayak","difficulty":3}]`,
		rec.Body.String())
}

func TestDeleteActivity_CascadesToCamperSignups(t *testing.T) {
	app := newTestApp(t)
	app.activities()
	app.do(http.MethodPost, "/campers", `{"name":"Aisha","age":12}`)
	app.do(http.MethodPost, "/signups", `{"camper_id":1,"activity_id":2,"time":10}`)

	rec := app.do(http.MethodDelete, "/activities/2", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = app.do(http.MethodGet, "/campers/1", "")
	assert.JSONEq(t, `{"id":1,"name":"Aisha","age":12,"signups":[]}`, rec.Body.String())

	rec = app.do(http.MethodGet, "/activities", "")
	assert.JSONEq(t, `[{"id":1,"name":"Archery","difficulty":1}]`, rec.Body.String())
}

func TestDeleteActivity_NotFound(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(http.MethodDelete, "/activities/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Activity not found"}`, rec.Body.String())
}

func TestCreateSignup(t *testing.T) {
	app := newTestApp(t)
	app.activities()
	app.do(http.MethodPost, "/campers", `{"name":"Aisha","age":12}`)

	rec := app.do(http.MethodPost, "/signups", `{"camper_id":1,"activity_id":2,"time":9}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{
		"id":1,"camper_id":1,"activity_id":2,"time":9,
		"activity":{"difficulty":3,"id":2,"name":"Kayak"},
		"camper":{"age":12,"id":1,"name":"Aisha"}
	}`, rec.Body.String())
}

func TestCreateSignup_Rejected(t *testing.T) {
	cases := map[string]string{
		"missing activity": `{"camper_id":1,"activity_id":999,"time":10}`,
		"missing camper":   `{"camper_id":999,"activity_id":1,"time":10}`,
		"time too late":    `{"camper_id":1,"activity_id":1,"time":24}`,
		"time negative":    `{"camper_id":1,"activity_id":1,"time":-1}`,
		"no time":          `{"camper_id":1,"activity_id":1}`,
		"negative id":      `{"camper_id":-1,"activity_id":1,"time":3}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			app := newTestApp(t)
			app.activities()
			app.do(http.MethodPost, "/campers", `{"name":"Aisha","age":12}`)

			rec := app.do(http.MethodPost, "/signups", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, validationBody, rec.Body.String())

			signups, err := services.FindAll[models.Signup](context.Background(), app.gw)
			require.NoError(t, err)
			assert.Empty(t, signups)
		})
	}
}

func TestSignupQR(t *testing.T) {
	app := newTestApp(t)
	app.activities()
	app.do(http.MethodPost, "/campers", `{"name":"Aisha","age":12}`)
	app.do(http.MethodPost, "/signups", `{"camper_id":1,"activity_id":2,"time":9}`)

	rec := app.do(http.MethodGet, "/signups/1/qr.png", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG"))

	rec = app.do(http.MethodGet, "/signups/5/qr.png", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Signup not found"}`, rec.Body.String())
}
