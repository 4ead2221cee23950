package handlers

import (
	"bytes"
	"errors"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"notebook_forms_go/config"
	"notebook_forms_go/services"
	"notebook_forms_go/services/i18n"
	"notebook_forms_go/services/layout"
	"notebook_forms_go/templates/components"
)

func render(c echo.Context, component templ.Component) error {
	return component.Render(c.Request().Context(), c.Response().Writer)
}

func getConfig(c echo.Context) *config.Config {
	if cfg, ok := c.Get("config").(*config.Config); ok {
		return cfg
	}
	return &config.Config{MaxPages: config.PageLimit, PDFEngine: services.PDFEngineNative}
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// generationError maps layout and writer failures to HTTP errors with a
// localized message. HTMX requests get an inline alert instead.
func generationError(c echo.Context, err error) error {
	ctx := c.Request().Context()
	status := http.StatusInternalServerError
	message := i18n.T(ctx, "errors.writer_failure")

	var layoutErr *layout.Error
	switch {
	case errors.As(err, &layoutErr) && layoutErr.Kind == layout.KindInvalidParameter:
		status = http.StatusBadRequest
		message = i18n.T(ctx, "errors.invalid_parameter", map[string]interface{}{
			"field":   fieldLabel(c, layoutErr.Field),
			"message": layoutErr.Message,
		})
	case errors.Is(err, layout.ErrOverflow):
		status = http.StatusUnprocessableEntity
		message = i18n.T(ctx, "errors.overflow")
	case errors.Is(err, services.ErrWriterFailure):
		// already logged by the generator
	default:
		log.Printf("[CRITICAL] Unexpected generation error: %v", err)
	}

	if isHTMX(c) {
		var buf bytes.Buffer
		if err := components.Alert(message).Render(ctx, &buf); err != nil {
			return err
		}
		return c.HTML(status, buf.String())
	}
	return echo.NewHTTPError(status, message)
}

// fieldLabel returns the localized form label of a field, or the raw name.
func fieldLabel(c echo.Context, field string) string {
	key := "form." + field
	if label := i18n.T(c.Request().Context(), key); label != key {
		return label
	}
	return field
}
