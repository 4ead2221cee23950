package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"notebook_forms_go/services"
)

// PreviewHandler returns the first pages of the plan as an HTML fragment for
// the form's preview pane.
func PreviewHandler(c echo.Context) error {
	cfg := getConfig(c)
	req, err := parseGenerationRequest(c, cfg, time.Now())
	if err != nil {
		return generationError(c, err)
	}

	plan, err := services.NewGenerator(cfg.PDFEngine, cfg.PDFFontPath).Plan(req)
	if err != nil {
		return generationError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return render(c, services.PreviewComponent(plan, req, services.PreviewPages))
}
