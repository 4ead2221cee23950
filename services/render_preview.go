package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"notebook_forms_go/services/layout"
)

// PreviewPages is how many pages the form preview shows.
const PreviewPages = 2

// RenderPreviewHTML renders PreviewDocument to a string.
func RenderPreviewHTML(ctx context.Context, plan *layout.Plan, req GenerationRequest, maxPages int) (string, error) {
	var buf bytes.Buffer
	if err := PreviewDocument(plan, req, maxPages).Render(ctx, &buf); err != nil {
		return "", fmt.Errorf("failed to render preview: %w", err)
	}
	return buf.String(), nil
}

// previewPages returns the first maxPages pages, or all of them for 0.
func previewPages(plan *layout.Plan, maxPages int) []layout.Page {
	if maxPages > 0 && len(plan.Pages) > maxPages {
		return plan.Pages[:maxPages]
	}
	return plan.Pages
}

// placedCell is a row cell at its absolute offset from the page corner.
type placedCell struct {
	cellSpec
	X, Y, Height layout.Length
}

func placeCells(plan *layout.Plan, page layout.Page, req GenerationRequest) []placedCell {
	g := plan.Geometry
	var cells []placedCell
	y := g.MarginTop
	for _, row := range pageRows(plan, page, req, labelsFor(req.Locale), true) {
		x := g.MarginLeft
		for _, c := range row.Cells {
			cells = append(cells, placedCell{cellSpec: c, X: x, Y: y, Height: row.Height})
			x += c.Width
		}
		y += row.Height
	}
	return cells
}

func pageStyle(g layout.PageGeometry) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("position:relative;width:%.2fpt;height:%.2fpt;background:#fff;overflow:hidden;page-break-after:always;",
		g.PageWidth().Points(), g.PageHeight().Points()))
}

// printStyle sizes the printed page to the plan and drops browser margins.
func printStyle(g layout.PageGeometry) string {
	return fmt.Sprintf(`<style>@page{size:%.2fpt %.2fpt;margin:0}body{margin:0;font-family:"Malgun Gothic","Apple SD Gothic Neo",sans-serif}</style>`,
		g.PageWidth().Points(), g.PageHeight().Points())
}

func (c placedCell) boxStyle() templ.SafeCSS {
	var b strings.Builder
	fmt.Fprintf(&b, "position:absolute;box-sizing:border-box;left:%.2fpt;top:%.2fpt;width:%.2fpt;height:%.2fpt;",
		c.X.Points(), c.Y.Points(), c.Width.Points(), c.Height.Points())
	for _, edge := range []struct {
		side string
		rule layout.Rule
	}{
		{"top", c.Top}, {"right", c.Right}, {"bottom", c.Bottom}, {"left", c.Left},
	} {
		if edge.rule.Visible() {
			fmt.Fprintf(&b, "border-%s:%.2fpt %s #%s;", edge.side, float64(edge.rule.Weight)/8, cssLineStyle(edge.rule.Style), edge.rule.Color)
		}
	}
	if c.Fill != "" {
		fmt.Fprintf(&b, "background:#%s;", c.Fill)
	}
	return templ.SafeCSS(b.String())
}

func (c placedCell) textStyle() templ.SafeCSS {
	justify := map[string]string{"center": "center", "right": "flex-end"}[c.Align]
	if justify == "" {
		justify = "flex-start"
	}
	align := map[string]string{"center": "center", "bottom": "flex-end"}[c.VAlign]
	if align == "" {
		align = "flex-start"
	}
	style := fmt.Sprintf("display:flex;justify-content:%s;align-items:%s;padding:0 2pt;font-size:%.1fpt;color:#%s;", justify, align, c.Size, c.Color)
	if c.Bold {
		style += "font-weight:bold;"
	}
	return templ.SafeCSS(style + "white-space:nowrap;overflow:hidden;")
}

func cssLineStyle(s layout.LineStyle) string {
	switch s {
	case layout.LineDotted:
		return "dotted"
	case layout.LineDashed:
		return "dashed"
	}
	return "solid"
}
