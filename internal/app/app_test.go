package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/renaspress/publisher/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.AppConfig{
		Port: 3100,
		Env:  "development",
		Upstream: config.UpstreamConfig{
			BaseURL:        "http://127.0.0.1:1", // never dialed in these tests
			TimeoutSeconds: 1,
		},
		Categories: []string{"sports"},
	}
	a, err := New(zap.NewNop(), cfg)
	require.NoError(t, err)
	return a
}

func TestNewRejectsNilConfig(t *testing.T) {
	_, err := New(zap.NewNop(), nil)
	require.Error(t, err)
}

func TestInfoEndpoint(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/info", nil)
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "renaspress-publisher")
}

func TestUnknownRouteAnswersEnvelope(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestWriteRoutesRequireAuth(t *testing.T) {
	a := newTestApp(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/posts"},
		{http.MethodPut, "/api/posts/1"},
		{http.MethodPatch, "/api/posts/1"},
		{http.MethodDelete, "/api/posts/1"},
		{http.MethodGet, "/api/posts/user"},
		{http.MethodGet, "/api/media"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		a.Router().ServeHTTP(w, req)
		assert.Equalf(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestMatchOriginPattern(t *testing.T) {
	assert.True(t, matchOriginPattern("renaspress.com", "renaspress.com"))
	assert.True(t, matchOriginPattern("*.renaspress.com", "app.renaspress.com"))
	assert.False(t, matchOriginPattern("*.renaspress.com", "renaspress.org"))
	assert.True(t, matchOriginPattern("localhost:*", "localhost:3000"))
}
