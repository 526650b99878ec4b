package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dkeye/roomsignal/internal/app"
	"github.com/dkeye/roomsignal/internal/app/orch"
	"github.com/dkeye/roomsignal/internal/config"
	transport "github.com/dkeye/roomsignal/internal/transport/http"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, secret string) http.Handler {
	t.Helper()
	tokens := app.NewTokenStore([]byte("k"), time.Hour)
	backend := orch.New(orch.Deps{Tokens: tokens})
	t.Cleanup(backend.Stop)
	cfg := &config.Config{Mode: "test", StaticPath: t.TempDir(), AdminSecret: secret, CookieSecret: "cookie"}
	return SetupRouter(context.Background(), cfg, nil, transport.NewAdminHandlers(tokens, backend))
}

func TestRouter_AdminRequiresBasicAuth(t *testing.T) {
	req := require.New(t)
	r := newTestRouter(t, "s3cret")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sessions", nil))
	req.Equal(http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	rq := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	rq.SetBasicAuth(AdminUser, "s3cret")
	r.ServeHTTP(w, rq)
	req.Equal(http.StatusOK, w.Code)
	req.NotEmpty(w.Result().Cookies(), "client id cookie is issued")
}

func TestRouter_AdminDisabledWithoutSecret(t *testing.T) {
	r := newTestRouter(t, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sessions", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Metrics(t *testing.T) {
	r := newTestRouter(t, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "roomsignal_")
}
