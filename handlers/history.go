package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"notebook_forms_go/db"
	"notebook_forms_go/services"
	"notebook_forms_go/services/i18n"
)

// DownloadGenerationHandler streams an archived file again.
func DownloadGenerationHandler(c echo.Context) error {
	ctx := c.Request().Context()
	notFound := echo.NewHTTPError(http.StatusNotFound, i18n.T(ctx, "errors.not_found"))

	if db.DB == nil || services.Storage == nil {
		return notFound
	}

	record, err := services.GetGeneration(db.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrGenerationNotFound) {
			return notFound
		}
		log.Printf("[WARNING] Failed to load generation %s: %v", c.Param("id"), err)
		return echo.NewHTTPError(http.StatusInternalServerError, i18n.T(ctx, "errors.writer_failure"))
	}
	if !record.Archived() {
		return notFound
	}

	reader, contentType, err := services.Storage.Get(ctx, *record.StorageKey)
	if err != nil {
		log.Printf("[WARNING] Archived file %s unavailable: %v", *record.StorageKey, err)
		return notFound
	}
	defer reader.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, contentDisposition(record.FileName))
	return c.Stream(http.StatusOK, contentType, reader)
}
