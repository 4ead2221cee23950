package middleware

import (
	"github.com/labstack/echo/v4"

	"notebook_forms_go/services"
)

const ContextKeyHistoryContext = "history_context"

// HistoryContext is middleware that extracts request info for generation history
func HistoryContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextKeyHistoryContext, services.HistoryContext{
				IPAddress: c.RealIP(),
				Locale:    GetLocale(c),
			})
			return next(c)
		}
	}
}

// GetHistoryContext retrieves the history context from the request
func GetHistoryContext(c echo.Context) services.HistoryContext {
	if ctx, ok := c.Get(ContextKeyHistoryContext).(services.HistoryContext); ok {
		return ctx
	}
	return services.HistoryContext{IPAddress: c.RealIP(), Locale: GetLocale(c)}
}
