package services

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"notebook_forms_go/services/layout"
)

const pdfFont = "Go"

// RenderPDF draws the plan with gofpdf in the Go font family.
func RenderPDF(plan *layout.Plan, req GenerationRequest) ([]byte, error) {
	return renderPDF(plan, req, defaultPDFFont)
}

// renderPDF draws the plan with gofpdf. Units are points; every rule is a
// line segment so the page matches the plan's geometry exactly.
func renderPDF(plan *layout.Plan, req GenerationRequest, font *PDFFont) ([]byte, error) {
	l := labelsFor(req.Locale)
	g := plan.Geometry

	orientation := "P"
	if g.Orientation == layout.OrientationLandscape {
		orientation = "L"
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: g.Width.Points(), Ht: g.Height.Points()},
	})
	pdf.SetMargins(g.MarginLeft.Points(), g.MarginTop.Points(), g.MarginRight.Points())
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(l.TemplateName(plan.Kind), true)
	pdf.SetCreator(l.t("app.name"), true)
	pdf.AddUTF8FontFromBytes(pdfFont, "", font.Regular)
	pdf.AddUTF8FontFromBytes(pdfFont, "B", font.Bold)

	for _, page := range plan.Pages {
		pdf.AddPage()
		y := g.MarginTop.Points()
		for _, row := range pageRows(plan, page, req, l, true) {
			x := g.MarginLeft.Points()
			h := row.Height.Points()
			for _, c := range row.Cells {
				drawPDFCell(pdf, x, y, h, c)
				x += c.Width.Points()
			}
			y += h
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func drawPDFCell(pdf *gofpdf.Fpdf, x, y, h float64, c cellSpec) {
	w := c.Width.Points()
	if c.Fill != "" {
		r, g, b := hexRGB(c.Fill)
		pdf.SetFillColor(r, g, b)
		pdf.Rect(x, y, w, h, "F")
	}

	strokePDF(pdf, c.Top, x, y, x+w, y)
	strokePDF(pdf, c.Bottom, x, y+h, x+w, y+h)
	strokePDF(pdf, c.Left, x, y, x, y+h)
	strokePDF(pdf, c.Right, x+w, y, x+w, y+h)

	if c.Text == "" || c.Size > h {
		return
	}
	style := ""
	if c.Bold {
		style = "B"
	}
	pdf.SetFont(pdfFont, style, c.Size)
	r, g, b := hexRGB(c.Color)
	pdf.SetTextColor(r, g, b)

	const pad = 2.0
	tw := pdf.GetStringWidth(c.Text)
	tx := x + pad
	switch c.Align {
	case "center":
		tx = x + (w-tw)/2
	case "right":
		tx = x + w - pad - tw
	}
	ty := y + c.Size + pad
	switch c.VAlign {
	case "bottom":
		ty = y + h - pad - c.Size*0.25
	case "center":
		ty = y + (h+c.Size*0.7)/2
	}
	pdf.Text(tx, ty, c.Text)
}

func strokePDF(pdf *gofpdf.Fpdf, rule layout.Rule, x1, y1, x2, y2 float64) {
	if !rule.Visible() {
		return
	}
	r, g, b := hexRGB(rule.Color)
	pdf.SetDrawColor(r, g, b)
	pdf.SetLineWidth(float64(rule.Weight) / 8)
	switch rule.Style {
	case layout.LineDotted:
		pdf.SetDashPattern([]float64{1, 1.5}, 0)
	case layout.LineDashed:
		pdf.SetDashPattern([]float64{4, 2}, 0)
	default:
		pdf.SetDashPattern([]float64{}, 0)
	}
	pdf.Line(x1, y1, x2, y2)
}

// hexRGB parses "RRGGBB"; anything else is black.
func hexRGB(hex string) (int, int, int) {
	if len(hex) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)
}
