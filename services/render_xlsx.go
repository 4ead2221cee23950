package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/xuri/excelize/v2"

	"notebook_forms_go/services/layout"
)

// maxRowHeight is Excel's row height limit in points.
const maxRowHeight = 409.0

// excelize paper size codes
var xlsxPaperSizes = map[[2]layout.Length]int{
	{12240, 15840}: 1,
	{12240, 20160}: 5,
	{11906, 16838}: 9,
}

// RenderXLSX lays the plan out on one worksheet: plan rows become sheet rows
// with heights in points, and every distinct cell boundary becomes a column.
func RenderXLSX(plan *layout.Plan, req GenerationRequest) ([]byte, error) {
	l := labelsFor(req.Locale)
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := sheetName(l.TemplateName(plan.Kind))
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	pages := make([][]rowSpec, len(plan.Pages))
	for i, page := range plan.Pages {
		pages[i] = pageRows(plan, page, req, l, true)
	}

	edges := columnEdges(pages)
	index := make(map[layout.Length]int, len(edges))
	for i, x := range edges {
		index[x] = i + 1
	}
	for i := 1; i < len(edges); i++ {
		col, err := excelize.ColumnNumberToName(i)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, col, col, columnWidth(edges[i]-edges[i-1])); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	x := &xlsxWriter{file: f, sheet: sheet, index: index, styles: make(map[xlsxStyleKey]int)}
	row := 1
	for p, rows := range pages {
		if p > 0 {
			if err := f.InsertPageBreak(sheet, fmt.Sprintf("A%d", row)); err != nil {
				return nil, fmt.Errorf("failed to insert page break: %w", err)
			}
		}
		for _, r := range rows {
			next, err := x.writeRow(row, r)
			if err != nil {
				return nil, err
			}
			row = next
		}
	}

	if err := setXLSXPageLayout(f, sheet, plan.Geometry); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write XLSX: %w", err)
	}
	return buf.Bytes(), nil
}

func sheetName(name string) string {
	r := []rune(name)
	if len(r) > 31 {
		r = r[:31]
	}
	if len(r) == 0 {
		return "Sheet1"
	}
	return string(r)
}

// columnEdges collects every cell boundary across all rows, sorted.
func columnEdges(pages [][]rowSpec) []layout.Length {
	seen := map[layout.Length]bool{0: true}
	for _, rows := range pages {
		for _, r := range rows {
			var x layout.Length
			for _, c := range r.Cells {
				x += c.Width
				seen[x] = true
			}
		}
	}
	edges := make([]layout.Length, 0, len(seen))
	for x := range seen {
		edges = append(edges, x)
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i] < edges[j] })
	return edges
}

// columnWidth converts a width to Excel character units (7px per character
// plus 5px padding at 96 dpi).
func columnWidth(w layout.Length) float64 {
	px := w.Points() * 96 / 72
	chars := (px - 5) / 7
	if chars < 0.1 {
		return 0.1
	}
	return math.Round(chars*100) / 100
}

type xlsxStyleKey struct {
	top, right, bottom, left layout.Rule
	fill, color, align       string
	valign                   string
	bold                     bool
	size                     float64
}

type xlsxWriter struct {
	file   *excelize.File
	sheet  string
	index  map[layout.Length]int
	styles map[xlsxStyleKey]int
}

// writeRow writes r starting at sheet row and returns the next free row.
// Rows taller than Excel allows are split across several sheet rows.
func (x *xlsxWriter) writeRow(row int, r rowSpec) (int, error) {
	total := r.Height.Points()
	parts := int(math.Ceil(total / maxRowHeight))
	if parts < 1 {
		parts = 1
	}
	for i := 0; i < parts; i++ {
		if err := x.file.SetRowHeight(x.sheet, row+i, total/float64(parts)); err != nil {
			return 0, fmt.Errorf("failed to set row height: %w", err)
		}
	}
	last := row + parts - 1

	var pos layout.Length
	for _, c := range r.Cells {
		first, end := x.index[pos], x.index[pos+c.Width]-1
		pos += c.Width
		if end < first {
			continue
		}
		for sub := row; sub <= last; sub++ {
			for col := first; col <= end; col++ {
				key := xlsxStyleKey{
					fill: c.Fill, color: c.Color, align: c.Align, valign: c.VAlign,
					bold: c.Bold, size: c.Size,
				}
				if sub == row {
					key.top = c.Top
				}
				if sub == last {
					key.bottom = c.Bottom
				}
				if col == first {
					key.left = c.Left
				}
				if col == end {
					key.right = c.Right
				}
				if err := x.applyStyle(col, sub, key); err != nil {
					return 0, err
				}
			}
		}

		if c.Text == "" {
			continue
		}
		topLeft, err := excelize.CoordinatesToCellName(first, row)
		if err != nil {
			return 0, err
		}
		if first != end || row != last {
			bottomRight, err := excelize.CoordinatesToCellName(end, last)
			if err != nil {
				return 0, err
			}
			if err := x.file.MergeCell(x.sheet, topLeft, bottomRight); err != nil {
				return 0, fmt.Errorf("failed to merge cells: %w", err)
			}
		}
		if err := x.file.SetCellValue(x.sheet, topLeft, c.Text); err != nil {
			return 0, fmt.Errorf("failed to set cell value: %w", err)
		}
	}
	return last + 1, nil
}

func (x *xlsxWriter) applyStyle(col, row int, key xlsxStyleKey) error {
	id, ok := x.styles[key]
	if !ok {
		var err error
		id, err = x.file.NewStyle(xlsxStyle(key))
		if err != nil {
			return fmt.Errorf("failed to create style: %w", err)
		}
		x.styles[key] = id
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return x.file.SetCellStyle(x.sheet, cell, cell, id)
}

func xlsxStyle(key xlsxStyleKey) *excelize.Style {
	style := &excelize.Style{}
	for _, edge := range []struct {
		side string
		rule layout.Rule
	}{
		{"top", key.top}, {"right", key.right}, {"bottom", key.bottom}, {"left", key.left},
	} {
		if edge.rule.Visible() {
			style.Border = append(style.Border, excelize.Border{
				Type:  edge.side,
				Color: edge.rule.Color,
				Style: xlsxBorderStyle(edge.rule),
			})
		}
	}
	if key.fill != "" {
		style.Fill = excelize.Fill{Type: "pattern", Color: []string{key.fill}, Pattern: 1}
	}
	if key.size > 0 {
		style.Font = &excelize.Font{Bold: key.bold, Size: key.size, Color: key.color, Family: "Calibri"}
	}
	if key.align != "" || key.valign != "" {
		style.Alignment = &excelize.Alignment{Horizontal: key.align, Vertical: key.valign}
	}
	return style
}

// xlsxBorderStyle maps a rule to Excel's border style index:
// 1 thin, 2 medium, 3 dashed, 4 dotted.
func xlsxBorderStyle(r layout.Rule) int {
	switch r.Style {
	case layout.LineDotted:
		return 4
	case layout.LineDashed:
		return 3
	}
	if r.Weight >= 6 {
		return 2
	}
	return 1
}

func setXLSXPageLayout(f *excelize.File, sheet string, g layout.PageGeometry) error {
	orientation := string(g.Orientation)
	opts := &excelize.PageLayoutOptions{Orientation: &orientation}
	if size, ok := xlsxPaperSizes[[2]layout.Length{g.Width, g.Height}]; ok {
		opts.Size = &size
	}
	if err := f.SetPageLayout(sheet, opts); err != nil {
		return fmt.Errorf("failed to set page layout: %w", err)
	}

	top, bottom := g.MarginTop.Inches(), g.MarginBottom.Inches()
	left, right := g.MarginLeft.Inches(), g.MarginRight.Inches()
	if err := f.SetPageMargins(sheet, &excelize.PageLayoutMarginsOptions{
		Top: &top, Bottom: &bottom, Left: &left, Right: &right,
	}); err != nil {
		return fmt.Errorf("failed to set page margins: %w", err)
	}
	return nil
}
