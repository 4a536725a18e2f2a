package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evolveapp-desktop/internal/domain"
)

// fakeAPI records requests made against the remote API routes.
type fakeAPI struct {
	mu           sync.Mutex
	healthStatus int
	uploadStatus int
	uploads      []domain.DiagnosticReport
	headers      []http.Header
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{healthStatus: http.StatusOK, uploadStatus: http.StatusCreated}

	r := chi.NewRouter()
	r.Get("/api/health", func(w http.ResponseWriter, req *http.Request) {
		api.record(req.Header)
		w.WriteHeader(api.healthStatus)
	})
	r.Post("/api/v1/app-diagnostics", func(w http.ResponseWriter, req *http.Request) {
		api.record(req.Header)
		var report domain.DiagnosticReport
		if err := json.NewDecoder(req.Body).Decode(&report); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		api.mu.Lock()
		api.uploads = append(api.uploads, report)
		api.mu.Unlock()
		w.WriteHeader(api.uploadStatus)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return api, srv
}

func (a *fakeAPI) record(h http.Header) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.headers = append(a.headers, h.Clone())
}

func TestCheckHealthSuccess(t *testing.T) {
	_, srv := newFakeAPI(t)

	ok, err := NewClient(domain.APIConfig{BaseURL: srv.URL + "/"}).CheckHealth(context.Background())

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckHealthNonSuccessIsDisconnected(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.healthStatus = http.StatusServiceUnavailable

	ok, err := NewClient(domain.APIConfig{BaseURL: srv.URL}).CheckHealth(context.Background())

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckHealthUnreachableIsDisconnected(t *testing.T) {
	_, srv := newFakeAPI(t)
	url := srv.URL
	srv.Close()

	ok, err := NewClient(domain.APIConfig{BaseURL: url}).CheckHealth(context.Background())

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckHealthMalformedBaseURL(t *testing.T) {
	_, err := NewClient(domain.APIConfig{BaseURL: "not a url"}).CheckHealth(context.Background())
	assert.Error(t, err)
}

func TestUploadDiagnosticsPostsReport(t *testing.T) {
	api, srv := newFakeAPI(t)
	report := domain.DiagnosticReport{
		AppVersion:    "1.0.0",
		OS:            "linux",
		TotalMemoryMB: 2048,
		StartupErrors: []string{},
	}

	err := NewClient(domain.APIConfig{BaseURL: srv.URL, APIKey: "k-123"}).UploadDiagnostics(context.Background(), report)
	require.NoError(t, err)

	require.Len(t, api.uploads, 1)
	assert.Equal(t, report, api.uploads[0])

	h := api.headers[0]
	assert.Equal(t, "Bearer k-123", h.Get("Authorization"))
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.Contains(t, h.Get("User-Agent"), "EvolveApp/")
	_, err = uuid.Parse(h.Get("X-Request-ID"))
	assert.NoError(t, err)
}

func TestUploadDiagnosticsWithoutKeyOmitsAuthorization(t *testing.T) {
	api, srv := newFakeAPI(t)

	require.NoError(t, NewClient(domain.APIConfig{BaseURL: srv.URL}).UploadDiagnostics(context.Background(), domain.DiagnosticReport{}))
	assert.Empty(t, api.headers[0].Get("Authorization"))
}

func TestUploadDiagnosticsServerError(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.uploadStatus = http.StatusInternalServerError

	err := NewClient(domain.APIConfig{BaseURL: srv.URL}).UploadDiagnostics(context.Background(), domain.DiagnosticReport{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestUploadDiagnosticsUnreachable(t *testing.T) {
	_, srv := newFakeAPI(t)
	url := srv.URL
	srv.Close()

	err := NewClient(domain.APIConfig{BaseURL: url}).UploadDiagnostics(context.Background(), domain.DiagnosticReport{})
	assert.Error(t, err)
}

func TestWithHTTPClientIgnoresNil(t *testing.T) {
	c := NewClient(domain.APIConfig{BaseURL: "http://x"}, WithHTTPClient(nil), WithLogger(nil))
	assert.NotNil(t, c.http)
	assert.NotNil(t, c.logger)
	assert.Equal(t, "http://x", c.BaseURL())
}
