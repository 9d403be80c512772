package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProxyController(t *testing.T) {
	s := newStack(t)

	rec := performRequest(s.router, http.MethodGet, "/index.html")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "<html>shell</html>", rec.Body.String())
	require.Equal(t, "text/html", rec.Header().Get("Content-Type"))

	req := httptest.NewRequest(http.MethodPost, "/api/echo", strings.NewReader("ping"))
	req.Header.Set("Connection", "keep-alive")
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ping", rec.Body.String())
	require.Equal(t, http.MethodPost, rec.Header().Get("X-Method"))

	s.origin.Close()

	t.Run("cached page survives origin outage", func(t *testing.T) {
		rec := performRequest(s.router, http.MethodGet, "/index.html")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "<html>shell</html>", rec.Body.String())
	})

	t.Run("asset falls back to shell", func(t *testing.T) {
		rec := performRequest(s.router, http.MethodGet, "/manifest.json")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "<html>shell</html>", rec.Body.String())
	})

	t.Run("other paths get bad gateway", func(t *testing.T) {
		rec := performRequest(s.router, http.MethodGet, "/api/echo")
		require.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
