package tracker_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmate/jobboard/internal/model"
	"jobmate/jobboard/internal/tracker"
)

func TestLocalTransport_Waits(t *testing.T) {
	start := time.Now()
	require.NoError(t, tracker.LocalTransport{Latency: 20 * time.Millisecond}.Deliver(context.Background(), model.Application{}))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestHTTPTransport(t *testing.T) {
	var got model.Application
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	app := model.Application{ID: "a1", JobID: "j1", Status: model.StatusApplied}
	require.NoError(t, tracker.NewHTTPTransport(srv.URL).Deliver(context.Background(), app))
	assert.Equal(t, "a1", got.ID)
	assert.Equal(t, "j1", got.JobID)
}

func TestHTTPTransport_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := tracker.NewHTTPTransport(srv.URL).Deliver(context.Background(), model.Application{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestValidateApplication(t *testing.T) {
	assert.NoError(t, tracker.ValidateApplication(application("1")))

	bad := application("")
	bad.Phone = "call me maybe"
	err := tracker.ValidateApplication(bad)
	var ve *tracker.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "jobId")
	assert.Contains(t, ve.Fields, "phone")
	assert.Contains(t, ve.Error(), "invalid application")
}
