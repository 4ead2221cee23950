package handlers

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"notebook_forms_go/config"
	"notebook_forms_go/middleware"
	"notebook_forms_go/services"
	"notebook_forms_go/services/layout"
)

func fieldError(field, format string, args ...interface{}) error {
	return &layout.Error{Kind: layout.KindInvalidParameter, Field: field, Message: fmt.Sprintf(format, args...)}
}

// formInt reads an integer form value. Missing values take def; malformed
// values are rejected, never clamped.
func formInt(c echo.Context, field string, def int) (int, error) {
	raw := strings.TrimSpace(c.FormValue(field))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fieldError(field, "must be a whole number, got %q", raw)
	}
	return n, nil
}

// parseTemplateSpec builds the typed parameters of the selected template
// starting from its profile defaults.
func parseTemplateSpec(c echo.Context, now time.Time) (layout.TemplateSpec, error) {
	kind := strings.TrimSpace(c.FormValue("template"))
	if kind == "" {
		kind = string(layout.KindLined)
	}
	if !layout.IsValidKind(kind) {
		return nil, fieldError("template", "unknown template %q", kind)
	}
	spec, err := layout.DefaultSpec(layout.Kind(kind), now)
	if err != nil {
		return nil, err
	}

	switch s := spec.(type) {
	case layout.LinedSpec:
		s.LinesPerPage, err = formInt(c, "lines_per_page", s.LinesPerPage)
		return s, err
	case layout.GridSpec:
		if s.Rows, err = formInt(c, "rows", s.Rows); err != nil {
			return nil, err
		}
		s.Cols, err = formInt(c, "cols", s.Cols)
		return s, err
	case layout.FourLineSpec:
		s.LinesPerPage, err = formInt(c, "lines_per_page", s.LinesPerPage)
		return s, err
	case layout.MusicStaffSpec:
		s.StavesPerPage, err = formInt(c, "staves_per_page", s.StavesPerPage)
		return s, err
	case layout.CharacterGridSpec:
		if s.Rows, err = formInt(c, "rows", s.Rows); err != nil {
			return nil, err
		}
		s.CharsPerRow, err = formInt(c, "chars_per_row", s.CharsPerRow)
		return s, err
	case layout.DiarySpec:
		if raw := strings.TrimSpace(c.FormValue("start_date")); raw != "" {
			start, perr := services.ParseDate(raw)
			if perr != nil {
				return nil, fieldError("start_date", "must be a date like 2024-03-01, got %q", raw)
			}
			s.Start = start
		}
		s.Days, err = formInt(c, "days", s.Days)
		return s, err
	case layout.CalendarSpec:
		if s.Year, err = formInt(c, "year", s.Year); err != nil {
			return nil, err
		}
		if s.Month, err = formInt(c, "month", s.Month); err != nil {
			return nil, err
		}
		s.Months, err = formInt(c, "months", s.Months)
		return s, err
	case layout.MathErrorLogSpec:
		s.ProblemsPerPage, err = formInt(c, "problems_per_page", s.ProblemsPerPage)
		return s, err
	}
	return spec, nil
}

// parseGenerationRequest turns the submitted form into an immutable request.
// Form values also come from the query string, so GET inspection endpoints
// share it.
func parseGenerationRequest(c echo.Context, cfg *config.Config, now time.Time) (services.GenerationRequest, error) {
	var req services.GenerationRequest

	spec, err := parseTemplateSpec(c, now)
	if err != nil {
		return req, err
	}
	profile, _ := layout.ProfileFor(spec.Kind())

	pages, err := formInt(c, "pages", minPages(layout.DefaultPages, cfg.MaxPages))
	if err != nil {
		return req, err
	}
	if profile.PerPage && (pages < layout.MinPages || pages > cfg.MaxPages) {
		return req, fieldError("pages", "must be between %d and %d, got %d", layout.MinPages, cfg.MaxPages, pages)
	}

	paperSize := c.FormValue("paper_size")
	if paperSize == "" {
		paperSize = cfg.DefaultPaperSize
	}
	if !layout.IsValidPaperSize(paperSize) {
		return req, fieldError("paper_size", "unknown paper size %q", paperSize)
	}
	orientation := c.FormValue("orientation")
	if orientation == "" {
		orientation = string(layout.OrientationPortrait)
	}
	if !layout.IsValidOrientation(orientation) {
		return req, fieldError("orientation", "must be portrait or landscape, got %q", orientation)
	}
	geometry, err := layout.NewGeometry(layout.PaperSize(paperSize), layout.Orientation(orientation), layout.DefaultMargin)
	if err != nil {
		return req, err
	}

	format := c.FormValue("format")
	if format == "" {
		format = string(services.FormatDOCX)
	}
	if !services.IsValidFormat(format) {
		return req, fieldError("format", "unsupported format %q", format)
	}

	email := strings.TrimSpace(c.FormValue("email"))
	if email != "" {
		addr, perr := mail.ParseAddress(email)
		if perr != nil {
			return req, fieldError("email", "invalid address %q", email)
		}
		email = addr.Address
	}

	return services.GenerationRequest{
		Spec:     spec,
		Pages:    pages,
		Geometry: geometry,
		Header: services.NewHeaderFields(
			c.FormValue("school"),
			c.FormValue("grade"),
			c.FormValue("class"),
			c.FormValue("name"),
		),
		Footer: cfg.FooterCaption,
		Format: services.Format(format),
		Locale: middleware.GetLocale(c),
		Email:  email,
	}, nil
}

func minPages(a, b int) int {
	if a < b {
		return a
	}
	return b
}
