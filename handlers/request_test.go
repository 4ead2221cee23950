package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notebook_forms_go/services"
	"notebook_forms_go/services/layout"
)

var testNow = time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)

func TestParseGenerationRequest(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		_, c, _ := setupEcho(http.MethodPost, "/generate", strings.NewReader(""))

		req, err := parseGenerationRequest(c, testConfig(), testNow)
		require.NoError(t, err)
		assert.Equal(t, layout.LinedSpec{LinesPerPage: 25}, req.Spec)
		assert.Equal(t, layout.DefaultPages, req.Pages)
		assert.Equal(t, services.FormatDOCX, req.Format)
		assert.Equal(t, layout.Length(12240), req.Geometry.Width)
		assert.Equal(t, layout.OrientationPortrait, req.Geometry.Orientation)
		assert.Equal(t, "ko", req.Locale)
	})

	t.Run("AllFields", func(t *testing.T) {
		form := url.Values{
			"template":    {"calendar"},
			"year":        {"2025"},
			"month":       {"11"},
			"months":      {"3"},
			"paper_size":  {"A4"},
			"orientation": {"landscape"},
			"format":      {"xlsx"},
			"school":      {"<b>Hanbit</b> Elementary"},
			"email":       {"Parent <parent@example.com>"},
		}
		_, c, _ := setupEcho(http.MethodPost, "/generate", strings.NewReader(form.Encode()))

		req, err := parseGenerationRequest(c, testConfig(), testNow)
		require.NoError(t, err)
		assert.Equal(t, layout.CalendarSpec{Year: 2025, Month: 11, Months: 3}, req.Spec)
		assert.Equal(t, layout.OrientationLandscape, req.Geometry.Orientation)
		assert.Equal(t, layout.Length(11906), req.Geometry.Width)
		assert.Equal(t, services.FormatXLSX, req.Format)
		assert.Equal(t, "Hanbit Elementary", req.Header.School)
		assert.Equal(t, "parent@example.com", req.Email)
	})

	t.Run("Diary", func(t *testing.T) {
		form := url.Values{"template": {"diary"}, "start_date": {"2024-03-01"}, "days": {"7"}}
		_, c, _ := setupEcho(http.MethodPost, "/generate", strings.NewReader(form.Encode()))

		req, err := parseGenerationRequest(c, testConfig(), testNow)
		require.NoError(t, err)
		assert.Equal(t, layout.DiarySpec{Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Days: 7}, req.Spec)
	})

	t.Run("DerivedPageTemplatesIgnoreMaxPages", func(t *testing.T) {
		cfg := testConfig()
		cfg.MaxPages = 3
		form := url.Values{"template": {"diary"}, "pages": {"9"}}
		_, c, _ := setupEchoWithConfig(http.MethodPost, "/generate", strings.NewReader(form.Encode()), cfg)

		_, err := parseGenerationRequest(c, cfg, testNow)
		assert.NoError(t, err)
	})
}

func TestParseGenerationRequestRejects(t *testing.T) {
	tests := []struct {
		name  string
		form  url.Values
		field string
	}{
		{"UnknownTemplate", url.Values{"template": {"origami"}}, "template"},
		{"NonNumeric", url.Values{"template": {"grid"}, "rows": {"ten"}}, "rows"},
		{"PagesAboveConfiguredMax", url.Values{"pages": {"21"}}, "pages"},
		{"PagesZero", url.Values{"pages": {"0"}}, "pages"},
		{"PaperSize", url.Values{"paper_size": {"B5"}}, "paper_size"},
		{"Orientation", url.Values{"orientation": {"diagonal"}}, "orientation"},
		{"Format", url.Values{"format": {"odt"}}, "format"},
		{"Email", url.Values{"email": {"not-an-address"}}, "email"},
		{"StartDate", url.Values{"template": {"diary"}, "start_date": {"03/01/2024"}}, "start_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.MaxPages = 20
			_, c, _ := setupEchoWithConfig(http.MethodPost, "/generate", strings.NewReader(tt.form.Encode()), cfg)

			_, err := parseGenerationRequest(c, cfg, testNow)
			require.Error(t, err)
			assert.True(t, errors.Is(err, layout.ErrInvalidParameter))

			var layoutErr *layout.Error
			require.True(t, errors.As(err, &layoutErr))
			assert.Equal(t, tt.field, layoutErr.Field)
		})
	}
}

func TestContentDisposition(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Lined_3p.docx", `attachment; filename="Lined_3p.docx"; filename*=UTF-8''Lined_3p.docx`},
		{"줄공책_1p.pdf", `attachment; filename="____1p.pdf"; filename*=UTF-8''%EC%A4%84%EA%B3%B5%EC%B1%85_1p.pdf`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contentDisposition(tt.name))
		})
	}
}
