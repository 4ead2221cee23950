package handlers

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"

	"notebook_forms_go/db"
	"notebook_forms_go/middleware"
	"notebook_forms_go/models"
	"notebook_forms_go/services"
	"notebook_forms_go/services/i18n"
	"notebook_forms_go/services/layout"
	"notebook_forms_go/templates/pages"
)

// recentLimit is how many history rows the form page lists.
const recentLimit = 10

// FormHandler renders the generator form
func FormHandler(c echo.Context) error {
	cfg := getConfig(c)
	ctx := c.Request().Context()

	var recent []models.Generation
	if cfg.HistoryEnabled && db.DB != nil {
		var err error
		if recent, err = services.RecentGenerations(db.DB, recentLimit); err != nil {
			log.Printf("[WARNING] Failed to load recent generations: %v", err)
		}
	}

	selected := layout.Kind(c.QueryParam("template"))
	if !layout.IsValidKind(string(selected)) {
		selected = layout.KindLined
	}

	vm := pages.FormViewModel{
		Title:            i18n.T(ctx, "app.name"),
		CSRFToken:        middleware.GetCSRFToken(c),
		Profiles:         layout.Profiles(),
		SelectedKind:     selected,
		PaperSizes:       layout.PaperSizes,
		DefaultPaperSize: cfg.DefaultPaperSize,
		Formats:          services.Formats,
		MaxPages:         cfg.MaxPages,
		Today:            time.Now(),
		HistoryEnabled:   cfg.HistoryEnabled,
		Recent:           recent,
	}
	return render(c, pages.FormPage(vm))
}
