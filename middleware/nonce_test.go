package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentPolicy(t *testing.T) {
	tests := []struct {
		name        string
		nonce       string
		wantScripts string
	}{
		{"with nonce", "abc", "script-src 'self' https://unpkg.com 'nonce-abc'"},
		{"without nonce", "", "script-src 'self' https://unpkg.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := contentPolicy(tt.nonce)
			directives := strings.Split(policy, "; ")
			assert.Contains(t, directives, tt.wantScripts)
			assert.Contains(t, directives, "frame-ancestors 'none'")
			assert.Contains(t, directives, "style-src 'self' 'unsafe-inline'")
			assert.NotContains(t, policy, "unsafe-eval")
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	e := echo.New()
	serve := func() (*httptest.ResponseRecorder, string) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		var seen string
		h := SecurityHeaders()(func(c echo.Context) error {
			seen = GetNonce(c.Request().Context())
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, h(e.NewContext(req, rec)))
		return rec, seen
	}

	rec, nonce := serve()
	require.NotEmpty(t, nonce)
	assert.Equal(t, contentPolicy(nonce), rec.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "nosniff", rec.Header().Get(echo.HeaderXContentTypeOptions))

	t.Run("each page gets its own nonce", func(t *testing.T) {
		_, other := serve()
		assert.NotEqual(t, nonce, other)
	})
}

func TestGetNonce(t *testing.T) {
	assert.Equal(t, "n0nce", GetNonce(WithNonce(context.Background(), "n0nce")))
	assert.Empty(t, GetNonce(context.Background()))
}
