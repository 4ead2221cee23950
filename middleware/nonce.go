package middleware

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/labstack/echo/v4"
)

type nonceKey struct{}

// htmxOrigin serves the htmx script loaded by the form page.
const htmxOrigin = "https://unpkg.com"

// WithNonce returns ctx carrying the script nonce of the page being rendered.
func WithNonce(ctx context.Context, nonce string) context.Context {
	return context.WithValue(ctx, nonceKey{}, nonce)
}

// GetNonce returns the script nonce stored by SecurityHeaders, or "".
func GetNonce(ctx context.Context) string {
	nonce, _ := ctx.Value(nonceKey{}).(string)
	return nonce
}

func newNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// contentPolicy builds the Content-Security-Policy of the form and preview
// pages. Worksheet previews are inline-styled; scripts need the nonce. An
// empty nonce allows no inline script at all.
func contentPolicy(nonce string) string {
	scripts := []string{"script-src", "'self'", htmxOrigin}
	if nonce != "" {
		scripts = append(scripts, "'nonce-"+nonce+"'")
	}
	directives := [][]string{
		{"default-src", "'self'"},
		scripts,
		{"style-src", "'self'", "'unsafe-inline'"},
		{"img-src", "'self'", "data:"},
		{"connect-src", "'self'"},
		{"frame-ancestors", "'none'"},
	}
	parts := make([]string, len(directives))
	for i, d := range directives {
		parts[i] = strings.Join(d, " ")
	}
	return strings.Join(parts, "; ")
}

// SecurityHeaders issues a fresh script nonce per request, stores it for the
// templates and sends the matching Content-Security-Policy.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			nonce, err := newNonce()
			if err != nil {
				c.Logger().Errorf("[WARNING] Script nonce unavailable, inline scripts disabled: %v", err)
				nonce = ""
			}

			h := c.Response().Header()
			h.Set("Content-Security-Policy", contentPolicy(nonce))
			h.Set(echo.HeaderXContentTypeOptions, "nosniff")

			c.SetRequest(c.Request().WithContext(WithNonce(c.Request().Context(), nonce)))
			return next(c)
		}
	}
}
