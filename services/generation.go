package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"notebook_forms_go/services/layout"
)

// Format is an output file format.
type Format string

const (
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// Formats lists the formats offered by the form, primary first.
var Formats = []Format{FormatDOCX, FormatPDF, FormatXLSX}

// IsValidFormat reports whether f is a supported output format.
func IsValidFormat(f string) bool {
	for _, known := range Formats {
		if string(known) == f {
			return true
		}
	}
	return false
}

// MimeType returns the content type of the format.
func (f Format) MimeType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return DOCXMimeType
}

// PDF engines
const (
	PDFEngineNative = "native"
	PDFEngineChrome = "chrome"
)

// MaxHeaderRunes bounds each header field.
const MaxHeaderRunes = 60

// ErrWriterFailure wraps any error raised while encoding a document.
var ErrWriterFailure = errors.New("could not generate the document, try adjusting the parameters")

var headerPolicy = bluemonday.StrictPolicy()

// SanitizeHeaderText strips markup and trims a header value to MaxHeaderRunes.
// The result is plain text with entities decoded; renderers escape it.
func SanitizeHeaderText(s string) string {
	s = strings.TrimSpace(html.UnescapeString(headerPolicy.Sanitize(s)))
	if utf8.RuneCountInString(s) <= MaxHeaderRunes {
		return s
	}
	return string([]rune(s)[:MaxHeaderRunes])
}

// HeaderFields are the optional values printed in every page header.
type HeaderFields struct {
	School string `json:"school,omitempty"`
	Grade  string `json:"grade,omitempty"`
	Class  string `json:"class,omitempty"`
	Name   string `json:"name,omitempty"`
}

// NewHeaderFields sanitizes raw form values.
func NewHeaderFields(school, grade, class, name string) HeaderFields {
	return HeaderFields{
		School: SanitizeHeaderText(school),
		Grade:  SanitizeHeaderText(grade),
		Class:  SanitizeHeaderText(class),
		Name:   SanitizeHeaderText(name),
	}
}

// Line renders the fields as "label: value" pairs. Blank values print a
// write-in line.
func (h HeaderFields) Line(l docLabels) string {
	fields := []struct{ key, value string }{
		{"school", h.School},
		{"grade", h.Grade},
		{"class", h.Class},
		{"name", h.Name},
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		value := f.value
		if value == "" {
			value = "________"
		}
		parts = append(parts, l.t("document.header."+f.key)+": "+value)
	}
	return strings.Join(parts, "   ")
}

// GenerationRequest is everything needed to produce one document. It is
// built once from the form and never mutated.
type GenerationRequest struct {
	Spec     layout.TemplateSpec
	Pages    int
	Geometry layout.PageGeometry
	Header   HeaderFields
	Footer   string
	Format   Format
	Locale   string
	Email    string
}

// GeneratedFile is a rendered document ready for download.
type GeneratedFile struct {
	Data     []byte
	FileName string
	MimeType string
	Pages    int
}

// Generator builds plans and renders them in the requested format.
type Generator struct {
	pdfEngine string
	pdfFont   *PDFFont
	chromePDF func(ctx context.Context, html string, g layout.PageGeometry) ([]byte, error)
}

// NewGenerator creates a generator. pdfEngine selects the native gofpdf
// renderer or headless Chrome for PDF output; fontPath names the TrueType
// file the native renderer embeds, empty for the Go fonts.
func NewGenerator(pdfEngine, fontPath string) *Generator {
	if pdfEngine != PDFEngineChrome {
		pdfEngine = PDFEngineNative
	}
	font, err := LoadPDFFont(fontPath)
	if err != nil {
		log.Printf("[WARNING] %v, using the Go fonts", err)
		font = defaultPDFFont
	}
	return &Generator{pdfEngine: pdfEngine, pdfFont: font, chromePDF: GeneratePDF}
}

// usesChrome reports whether the PDF is printed by Chrome. Native rendering
// falls back to Chrome when the embedded font cannot draw the text, which is
// the case for Hangul with the Go fonts.
func (g *Generator) usesChrome(plan *layout.Plan, req GenerationRequest) bool {
	if g.pdfEngine == PDFEngineChrome {
		return true
	}
	if g.pdfFont.Covers(planText(plan, req)...) {
		return false
	}
	log.Printf("[INFO] PDF font lacks glyphs for %s text, printing %s with Chrome", req.Locale, plan.Kind)
	return true
}

// Plan runs the layout engine for req.
func (g *Generator) Plan(req GenerationRequest) (*layout.Plan, error) {
	plan, err := layout.Build(req.Geometry, req.Spec, req.Pages)
	if err != nil {
		return nil, err
	}
	if plan.Overflows() {
		log.Printf("[WARNING] %s layout overflows the page (%d pages)", plan.Kind, len(plan.Pages))
	}
	return plan, nil
}

// Generate lays out and renders a document. Layout errors are returned as
// they are; encoding errors wrap ErrWriterFailure.
func (g *Generator) Generate(ctx context.Context, req GenerationRequest) (*GeneratedFile, error) {
	plan, err := g.Plan(req)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch req.Format {
	case FormatPDF:
		if g.usesChrome(plan, req) {
			var page string
			page, err = RenderPreviewHTML(ctx, plan, req, len(plan.Pages))
			if err == nil {
				data, err = g.chromePDF(ctx, page, plan.Geometry)
			}
		} else {
			data, err = renderPDF(plan, req, g.pdfFont)
		}
	case FormatXLSX:
		data, err = RenderXLSX(plan, req)
	default:
		data, err = RenderDOCX(plan, req)
	}
	if err != nil {
		log.Printf("[CRITICAL] Failed to render %s %s: %v", plan.Kind, req.Format, err)
		return nil, fmt.Errorf("%w: %v", ErrWriterFailure, err)
	}

	format := req.Format
	if format == "" {
		format = FormatDOCX
	}
	return &GeneratedFile{
		Data:     data,
		FileName: FileName(plan, req.Spec, labelsFor(req.Locale), format),
		MimeType: format.MimeType(),
		Pages:    len(plan.Pages),
	}, nil
}

// FileName is "{template name}_{suffix}.{ext}". The suffix is the page count
// for per-page templates, the date span for diaries and the month span for
// calendars.
func FileName(plan *layout.Plan, spec layout.TemplateSpec, l docLabels, format Format) string {
	var suffix string
	switch s := spec.(type) {
	case layout.DiarySpec:
		end := s.Start.AddDate(0, 0, s.Days-1)
		suffix = s.Start.Format("20060102") + "~" + end.Format("20060102")
	case layout.CalendarSpec:
		first := plan.Pages[0].Date
		last := plan.Pages[len(plan.Pages)-1].Date
		suffix = first.Format("2006.01") + "-" + last.Format("2006.01")
	default:
		suffix = fmt.Sprintf("%dp", len(plan.Pages))
	}
	name := strings.NewReplacer("/", "-", "\\", "-", " ", "_").Replace(l.TemplateName(plan.Kind))
	return name + "_" + suffix + "." + string(format)
}
