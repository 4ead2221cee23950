package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"notebook_forms_go/config"
	"notebook_forms_go/services/i18n"
)

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestLocale(t *testing.T) {
	e := echo.New()
	cfg := &config.Config{Environment: "development"}
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	tests := []struct {
		name   string
		url    string
		cookie string
		accept string
		want   string
	}{
		{"QueryParam", "/?lang=en", "", "", "en"},
		{"UnsupportedQueryParam", "/?lang=fr", "", "", "ko"},
		{"Cookie", "/", "en", "", "en"},
		{"UnsupportedCookieFallsThrough", "/", "xx", "en-US,en;q=0.9", "en"},
		{"Header", "/", "", "en-GB,en;q=0.9", "en"},
		{"HeaderKorean", "/", "", "ko-KR,ko;q=0.9,en;q=0.8", "ko"},
		{"Default", "/", "", "", "ko"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "lang", Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			assert.NoError(t, Locale(cfg)(ok)(c))
			assert.Equal(t, tt.want, c.Get("locale"))
			assert.Equal(t, tt.want, i18n.GetLocale(c.Request().Context()))
		})
	}

	t.Run("QueryParamSetsCookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		assert.NoError(t, Locale(cfg)(ok)(c))
		cookie := findCookie(rec, "lang")
		if assert.NotNil(t, cookie) {
			assert.Equal(t, "en", cookie.Value)
			assert.False(t, cookie.Secure)
		}
	})
}

func TestSetLanguageCookie(t *testing.T) {
	e := echo.New()

	t.Run("Development", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		c.Set("config", &config.Config{Environment: "development"})

		SetLanguageCookie(c, "en")

		cookie := findCookie(rec, "lang")
		assert.NotNil(t, cookie)
		assert.Equal(t, "en", cookie.Value)
		assert.False(t, cookie.Secure)
	})

	t.Run("Production", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		c.Set("config", &config.Config{Environment: "production"})

		SetLanguageCookie(c, "ko")

		cookie := findCookie(rec, "lang")
		assert.NotNil(t, cookie)
		assert.True(t, cookie.Secure)
	})
}

func TestGetLocale(t *testing.T) {
	e := echo.New()

	t.Run("WithLocale", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		c.Set("locale", "en")
		assert.Equal(t, "en", GetLocale(c))
	})

	t.Run("WithoutLocale", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		assert.Equal(t, "ko", GetLocale(c))
	})
}
