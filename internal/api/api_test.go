package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmate/jobboard/internal/api"
	"jobmate/jobboard/internal/catalog"
	"jobmate/jobboard/internal/model"
	"jobmate/jobboard/internal/search"
	"jobmate/jobboard/internal/storage"
	"jobmate/jobboard/internal/tracker"
)

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func init() { gin.SetMode(gin.TestMode) }

func fixtureJobs() catalog.StaticSource {
	return catalog.StaticSource{
		{ID: "1", Title: "Go Engineer", Company: "Acme", Location: "Berlin", JobType: model.JobTypeFullTime,
			Salary: &model.Salary{Min: 4000, Max: 5000, Currency: "EUR"}, PostedDate: now.Add(-2 * time.Hour), Skills: []string{"go"}},
		{ID: "2", Title: "Remote Go Developer", Company: "Globex", Location: "Remote", JobType: model.JobTypeRemote,
			Salary: &model.Salary{Min: 6000, Max: 7000, Currency: "EUR"}, PostedDate: now.Add(-48 * time.Hour), Skills: []string{"go", "k8s"}},
		{ID: "3", Title: "Frontend Developer", Company: "Initech", Location: "Paris", JobType: model.JobTypeContract,
			PostedDate: now.Add(-10 * 24 * time.Hour), Skills: []string{"react"}},
		{ID: "4", Title: "Platform Engineer", Company: "Umbrella", Location: "Remote", JobType: model.JobTypeRemote,
			Salary: &model.Salary{Min: 7000, Max: 9000, Currency: "EUR"}, PostedDate: now.Add(-1 * time.Hour), Skills: []string{"go"}},
	}
}

func newServer(t *testing.T, versioned bool) http.Handler {
	t.Helper()
	cat := catalog.New([]catalog.Source{fixtureJobs()}, nil, zerolog.Nop())
	require.NoError(t, cat.Refresh(context.Background()))

	h := api.NewHandler(api.Deps{
		Catalog:        cat,
		Medium:         storage.NewMemory(),
		Versioned:      versioned,
		TrackerOptions: []tracker.Option{tracker.WithTransport(tracker.LocalTransport{})},
		Now:            func() time.Time { return now },
		Log:            zerolog.Nop(),
	})
	return h.Router()
}

func do(t *testing.T, srv http.Handler, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("x-user-id", user)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// ── Health & jobs ──────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	w := do(t, newServer(t, false), http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(4), body["jobs"])
}

func TestSearchJobs_RemoteSortedBySalary(t *testing.T) {
	w := do(t, newServer(t, false), http.MethodGet, "/jobs?remote=true&sort=salary-high", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	res := decode[search.Result](t, w)
	require.Len(t, res.Jobs, 2)
	assert.Equal(t, "4", res.Jobs[0].ID)
	assert.Equal(t, "2", res.Jobs[1].ID)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.TotalPages)
}

func TestSearchJobs_FiltersAndPagination(t *testing.T) {
	srv := newServer(t, false)

	res := decode[search.Result](t, do(t, srv, http.MethodGet, "/jobs?q=go&datePosted=24h&sort=newest", "", nil))
	require.Len(t, res.Jobs, 2)
	assert.Equal(t, []string{"4", "1"}, []string{res.Jobs[0].ID, res.Jobs[1].ID})

	res = decode[search.Result](t, do(t, srv, http.MethodGet, "/jobs?jobTypes=Remote,Contract&sort=company&pageSize=2&page=2", "", nil))
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.TotalPages)
	require.Len(t, res.Jobs, 1)
	assert.Equal(t, "Umbrella", res.Jobs[0].Company)

	res = decode[search.Result](t, do(t, srv, http.MethodGet, "/jobs?page=9", "", nil))
	assert.Empty(t, res.Jobs)
	assert.Equal(t, 4, res.Total)
}

func TestSearchJobs_BadParameters(t *testing.T) {
	srv := newServer(t, false)
	for _, path := range []string{
		"/jobs?jobTypes=Freelance",
		"/jobs?remote=sometimes",
		"/jobs?datePosted=1y",
		"/jobs?salaryRange=lots",
		"/jobs?page=0",
		"/jobs?pageSize=x",
	} {
		w := do(t, srv, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestSearchJobs_HugePageIsEmpty(t *testing.T) {
	srv := newServer(t, false)
	for _, path := range []string{
		"/jobs?page=9223372036854775807",
		"/jobs?page=9223372036854775807&pageSize=9223372036854775807",
	} {
		w := do(t, srv, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		res := decode[search.Result](t, w)
		assert.Empty(t, res.Jobs, path)
		assert.Positive(t, res.Total, path)
	}
}

func TestSearchJobs_RecordsHistoryForUser(t *testing.T) {
	srv := newServer(t, false)
	do(t, srv, http.MethodGet, "/jobs?q=go", "alice", nil)
	do(t, srv, http.MethodGet, "/jobs?q=react&location=paris", "alice", nil)
	do(t, srv, http.MethodGet, "/jobs?q=GO", "alice", nil)
	do(t, srv, http.MethodGet, "/jobs?q=rust", "", nil)

	hist := decode[[]model.SearchEntry](t, do(t, srv, http.MethodGet, "/search-history", "alice", nil))
	require.Len(t, hist, 2)
	assert.Equal(t, "GO", hist[0].Query)
	assert.Equal(t, "react", hist[1].Query)

	assert.Equal(t, http.StatusNoContent, do(t, srv, http.MethodDelete, "/search-history", "alice", nil).Code)
	hist = decode[[]model.SearchEntry](t, do(t, srv, http.MethodGet, "/search-history", "alice", nil))
	assert.Empty(t, hist)
}

func TestGetJob(t *testing.T) {
	srv := newServer(t, false)
	w := do(t, srv, http.MethodGet, "/jobs/3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Frontend Developer", decode[model.JobRecord](t, w).Title)

	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/jobs/99", "", nil).Code)
}

// ── Saved jobs ─────────────────────────────────────────────────────────────

func TestSavedJobs(t *testing.T) {
	srv := newServer(t, false)

	assert.Equal(t, http.StatusUnauthorized, do(t, srv, http.MethodGet, "/saved-jobs", "", nil).Code)

	assert.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/saved-jobs", "bob", map[string]string{"jobId": "2"}).Code)
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/saved-jobs", "bob", map[string]string{"jobId": "2"}).Code)
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodPost, "/saved-jobs", "bob", map[string]string{"jobId": "99"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/saved-jobs", "bob", map[string]string{}).Code)

	list := decode[[]model.SavedJob](t, do(t, srv, http.MethodGet, "/saved-jobs", "bob", nil))
	require.Len(t, list, 1)
	assert.Equal(t, "Remote Go Developer", list[0].Title)
	assert.Equal(t, now, list[0].SavedAt)

	// Another user sees their own namespace.
	other := decode[[]model.SavedJob](t, do(t, srv, http.MethodGet, "/saved-jobs", "carol", nil))
	assert.Empty(t, other)

	toggled := decode[map[string]any](t, do(t, srv, http.MethodPost, "/saved-jobs/1/toggle", "bob", nil))
	assert.Equal(t, true, toggled["saved"])
	toggled = decode[map[string]any](t, do(t, srv, http.MethodPost, "/saved-jobs/1/toggle", "bob", nil))
	assert.Equal(t, false, toggled["saved"])

	assert.Equal(t, http.StatusNoContent, do(t, srv, http.MethodDelete, "/saved-jobs/2", "bob", nil).Code)
	assert.Equal(t, http.StatusNoContent, do(t, srv, http.MethodDelete, "/saved-jobs/2", "bob", nil).Code)
	list = decode[[]model.SavedJob](t, do(t, srv, http.MethodGet, "/saved-jobs", "bob", nil))
	assert.Empty(t, list)
}

// ── Applications ───────────────────────────────────────────────────────────

func TestApplications_Lifecycle(t *testing.T) {
	for _, versioned := range []bool{false, true} {
		srv := newServer(t, versioned)

		w := do(t, srv, http.MethodPost, "/applications", "dana", model.ApplicationData{
			JobID: "2", FullName: "Dana Smith", Email: "dana@example.com",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		app := decode[model.Application](t, w)
		assert.Equal(t, model.StatusApplied, app.Status)
		assert.Equal(t, "Remote Go Developer", app.JobTitle, "title filled from the catalog")
		assert.Equal(t, "Globex", app.Company)

		byJob := decode[model.Application](t, do(t, srv, http.MethodGet, "/applications/by-job/2", "dana", nil))
		assert.Equal(t, app.ID, byJob.ID)
		assert.Equal(t, model.StatusApplied, byJob.Status)

		w = do(t, srv, http.MethodPost, "/applications/"+app.ID+"/status", "dana", map[string]string{"status": "offered"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, model.StatusOffered, decode[model.Application](t, w).Status)

		byJob = decode[model.Application](t, do(t, srv, http.MethodGet, "/applications/by-job/2", "dana", nil))
		assert.Equal(t, model.StatusOffered, byJob.Status)

		stats := decode[model.ApplicationStats](t, do(t, srv, http.MethodGet, "/applications/stats", "dana", nil))
		assert.Equal(t, model.ApplicationStats{Total: 1, Offered: 1}, stats)

		offered := decode[[]model.Application](t, do(t, srv, http.MethodGet, "/applications?status=offered", "dana", nil))
		assert.Len(t, offered, 1)

		assert.Equal(t, http.StatusNoContent, do(t, srv, http.MethodDelete, "/applications/"+app.ID, "dana", nil).Code)
		assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/applications/"+app.ID, "dana", nil).Code)
		assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/applications/by-job/2", "dana", nil).Code)
	}
}

func TestApplications_Errors(t *testing.T) {
	srv := newServer(t, false)

	w := do(t, srv, http.MethodPost, "/applications", "erin", model.ApplicationData{JobID: "1", FullName: "Erin", Email: "nope"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[map[string]any](t, w)
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok, w.Body.String())
	assert.Contains(t, fields, "email")

	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/applications?status=hired", "erin", nil).Code)
	assert.Equal(t, http.StatusNotFound,
		do(t, srv, http.MethodPost, "/applications/missing/status", "erin", map[string]string{"status": "rejected"}).Code)

	app := decode[model.Application](t, do(t, srv, http.MethodPost, "/applications", "erin",
		model.ApplicationData{JobID: "1", FullName: "Erin", Email: "erin@example.com"}))
	assert.Equal(t, http.StatusBadRequest,
		do(t, srv, http.MethodPost, "/applications/"+app.ID+"/status", "erin", map[string]string{"status": "hired"}).Code)
	assert.Equal(t, http.StatusBadRequest,
		do(t, srv, http.MethodPost, "/applications/"+app.ID+"/status", "erin", map[string]string{}).Code)
}
