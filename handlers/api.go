package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"notebook_forms_go/db"
	"notebook_forms_go/services"
	"notebook_forms_go/services/i18n"
	"notebook_forms_go/services/layout"
)

// TemplateInfo describes one template for API clients.
type TemplateInfo struct {
	layout.Profile
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TemplatesAPIHandler lists every template profile with its bounds and
// defaults.
func TemplatesAPIHandler(c echo.Context) error {
	ctx := c.Request().Context()
	cfg := getConfig(c)

	templates := make([]TemplateInfo, 0, len(layout.Kinds))
	for _, p := range layout.Profiles() {
		templates = append(templates, TemplateInfo{
			Profile:     p,
			Name:        i18n.T(ctx, "template."+string(p.Kind)+".name"),
			Description: i18n.T(ctx, "template."+string(p.Kind)+".description"),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"templates":   templates,
		"paper_sizes": layout.PaperSizes,
		"formats":     services.Formats,
		"max_pages":   cfg.MaxPages,
	})
}

// LayoutAPIHandler returns the layout plan for the query parameters.
func LayoutAPIHandler(c echo.Context) error {
	cfg := getConfig(c)
	req, err := parseGenerationRequest(c, cfg, time.Now())
	if err != nil {
		return generationError(c, err)
	}
	plan, err := services.NewGenerator(cfg.PDFEngine, cfg.PDFFontPath).Plan(req)
	if err != nil {
		return generationError(c, err)
	}
	return c.JSON(http.StatusOK, plan)
}

// HealthHandler reports liveness and whether the database answers.
func HealthHandler(c echo.Context) error {
	status := map[string]string{"status": "ok", "database": "none", "storage": "none"}
	if services.Storage != nil {
		status["storage"] = services.Storage.Name()
	}
	if db.DB != nil {
		status["database"] = "ok"
		sqlDB, err := db.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request().Context())
		}
		if err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			return c.JSON(http.StatusServiceUnavailable, status)
		}
	}
	return c.JSON(http.StatusOK, status)
}
