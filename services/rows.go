package services

import (
	"strconv"

	"notebook_forms_go/services/layout"
)

// Colors shared by every renderer
const (
	colorSunday   = "D32F2F"
	colorSaturday = "1976D2"
	colorLabel    = "757575"
	colorText     = "000000"
	fillHeader    = "F2F2F2"
)

var (
	headerRule = layout.Rule{Style: layout.LineSolid, Weight: 6, Color: "000000"}
	guideColor = "BBBBBB"
)

// cellSpec is one rectangle of a rendered page row. Sizes are twips, text
// size is points.
type cellSpec struct {
	Width  layout.Length
	Top    layout.Rule
	Right  layout.Rule
	Bottom layout.Rule
	Left   layout.Rule
	Fill   string
	Text   string
	Bold   bool
	Color  string
	Size   float64
	Align  string
	VAlign string
}

// rowSpec is one horizontal strip of a page with an exact height.
type rowSpec struct {
	Height layout.Length
	Cells  []cellSpec
}

func (r rowSpec) width() layout.Length {
	var w layout.Length
	for _, c := range r.Cells {
		w += c.Width
	}
	return w
}

// pageRows flattens a plan page into rows of bordered cells, the common form
// every renderer draws. The footer block is included only when withFooter is
// set; the DOCX writer puts the caption in the page footer part instead.
func pageRows(plan *layout.Plan, page layout.Page, req GenerationRequest, l docLabels, withFooter bool) []rowSpec {
	var rows []rowSpec
	for _, b := range page.Blocks {
		switch b.Style {
		case layout.StyleHeader:
			rows = append(rows, headerRow(b, l.PageTitle(plan, page), req.Header.Line(l)))
		case layout.StyleFooter:
			if withFooter {
				rows = append(rows, rowSpec{Height: b.Height, Cells: []cellSpec{{
					Width: b.Width, Text: l.Footer(req.Footer), Size: 8, Color: colorLabel,
					Align: "center", VAlign: "bottom",
				}}})
			}
		case layout.StyleRuledLine:
			rows = append(rows, rowSpec{Height: b.Height, Cells: []cellSpec{{Width: b.Width, Bottom: b.Rule}}})
		case layout.StyleSpacer:
			rows = append(rows, rowSpec{Height: b.Height, Cells: []cellSpec{{Width: b.Width}}})
		case layout.StyleSeparator:
			rows = append(rows, separatorRows(b)...)
		case layout.StyleFourLine, layout.StyleStaff:
			for _, band := range b.Bands {
				rows = append(rows, rowSpec{Height: band.Height, Cells: []cellSpec{{
					Width: b.Width, Top: band.Top, Bottom: band.Bottom,
				}}})
			}
		case layout.StyleMathProblem:
			rows = append(rows, mathRows(b, l)...)
		case layout.StyleGrid:
			rows = append(rows, gridRows(b.Grid)...)
		case layout.StyleCharacterGrid:
			rows = append(rows, characterRows(b.Grid)...)
		case layout.StyleCalendar:
			rows = append(rows, calendarRows(b.Grid, l)...)
		case layout.StyleCornellTitle:
			rows = append(rows, labelRow(b, l.t("document.cornell.title"), layout.Rule{}, b.Rule))
		case layout.StyleCornellDate:
			rows = append(rows, labelRow(b, l.t("document.cornell.date"), layout.Rule{}, b.Rule))
		case layout.StyleCornellMain:
			rows = append(rows, cornellMainRow(b, l))
		case layout.StyleCornellSummaryLabel:
			row := labelRow(b, l.t("document.cornell.summary"), layout.Rule{}, layout.Rule{})
			row.Cells[0].Bold = true
			row.Cells[0].Color = colorText
			row.Cells[0].VAlign = "bottom"
			rows = append(rows, row)
		case layout.StyleCornellSummary:
			rows = append(rows, rowSpec{Height: b.Height, Cells: []cellSpec{{
				Width: b.Width, Top: b.Rule, Right: b.Rule, Bottom: b.Rule, Left: b.Rule,
			}}})
		}
	}
	return rows
}

func headerRow(b layout.Block, title, fields string) rowSpec {
	left := b.Width / 2
	return rowSpec{Height: b.Height, Cells: []cellSpec{
		{Width: left, Bottom: headerRule, Text: title, Bold: true, Size: 12, Color: colorText, Align: "left", VAlign: "bottom"},
		{Width: b.Width - left, Bottom: headerRule, Text: fields, Size: 9, Color: colorText, Align: "right", VAlign: "bottom"},
	}}
}

func labelRow(b layout.Block, text string, top, bottom layout.Rule) rowSpec {
	return rowSpec{Height: b.Height, Cells: []cellSpec{{
		Width: b.Width, Top: top, Bottom: bottom, Text: text, Size: 9, Color: colorLabel, Align: "left", VAlign: "top",
	}}}
}

func separatorRows(b layout.Block) []rowSpec {
	upper := b.Height / 2
	if upper == 0 {
		return []rowSpec{{Height: b.Height, Cells: []cellSpec{{Width: b.Width}}}}
	}
	return []rowSpec{
		{Height: upper, Cells: []cellSpec{{Width: b.Width, Bottom: b.Rule}}},
		{Height: b.Height - upper, Cells: []cellSpec{{Width: b.Width}}},
	}
}

func mathRows(b layout.Block, l docLabels) []rowSpec {
	if len(b.Bands) == 0 {
		return nil
	}
	box := b.Bands[0].Top
	rows := make([]rowSpec, 0, len(b.Bands))
	for _, band := range b.Bands {
		cell := cellSpec{
			Width: b.Width, Top: band.Top, Bottom: band.Bottom, Left: box, Right: box,
			Text: l.Section(band.Label), Size: 8, Color: colorLabel, Align: "left", VAlign: "top",
		}
		if band.Shaded {
			cell.Fill = fillHeader
			cell.Bold = true
			cell.Color = colorText
		}
		rows = append(rows, rowSpec{Height: band.Height, Cells: []cellSpec{cell}})
	}
	return rows
}

func cornellMainRow(b layout.Block, l docLabels) rowSpec {
	cue, notes := b.Width/3, b.Width-b.Width/3
	if len(b.Columns) == 2 {
		cue, notes = b.Columns[0], b.Columns[1]
	}
	return rowSpec{Height: b.Height, Cells: []cellSpec{
		{Width: cue, Right: b.Rule, Bottom: b.Rule, Text: l.t("document.cornell.cue"), Size: 9, Color: colorLabel, Align: "left", VAlign: "top"},
		{Width: notes, Bottom: b.Rule, Text: l.t("document.cornell.notes"), Size: 9, Color: colorLabel, Align: "left", VAlign: "top"},
	}}
}

func gridRows(g *layout.Grid) []rowSpec {
	if g == nil {
		return nil
	}
	rows := make([]rowSpec, len(g.RowHeights))
	for r, h := range g.RowHeights {
		rows[r].Height = h
		for _, w := range g.ColWidths {
			rows[r].Cells = append(rows[r].Cells, cellSpec{Width: w, Top: g.Rule, Right: g.Rule, Bottom: g.Rule, Left: g.Rule})
		}
	}
	return rows
}

// characterRows draws each practice cell as 2x2 guide quadrants: solid outer
// edges from the grid rule, dotted internal guides.
func characterRows(g *layout.Grid) []rowSpec {
	if g == nil || g.Guide == nil {
		return gridRows(g)
	}
	q := g.Guide.Quadrants
	guide := func(style layout.LineStyle) layout.Rule {
		return layout.Rule{Style: style, Weight: 2, Color: guideColor}
	}

	var rows []rowSpec
	for range g.RowHeights {
		for half := 0; half < 2; half++ {
			row := rowSpec{Height: q[2*half].Rect.Height}
			for range g.ColWidths {
				for side := 0; side < 2; side++ {
					quad := q[2*half+side]
					cell := cellSpec{
						Width:  quad.Rect.Width,
						Top:    guide(quad.Edges.Top),
						Right:  guide(quad.Edges.Right),
						Bottom: guide(quad.Edges.Bottom),
						Left:   guide(quad.Edges.Left),
					}
					if half == 0 {
						cell.Top = g.Rule
					} else {
						cell.Bottom = g.Rule
					}
					if side == 0 {
						cell.Left = g.Rule
					} else {
						cell.Right = g.Rule
					}
					row.Cells = append(row.Cells, cell)
				}
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func weekdayColor(weekday int) string {
	switch weekday {
	case layout.Sunday:
		return colorSunday
	case layout.Saturday:
		return colorSaturday
	}
	return colorText
}

func calendarRows(g *layout.Grid, l docLabels) []rowSpec {
	rows := gridRows(g)
	for r := range rows {
		if r >= len(g.Cells) {
			break
		}
		for c := range rows[r].Cells {
			if c >= len(g.Cells[r]) {
				break
			}
			gc := g.Cells[r][c]
			cell := &rows[r].Cells[c]
			cell.Color = weekdayColor(gc.Weekday)
			switch gc.Kind {
			case layout.CellWeekdayHeader:
				cell.Text = l.Weekday(gc.Weekday)
				cell.Bold = true
				cell.Size = 9
				cell.Fill = fillHeader
				cell.Align = "center"
				cell.VAlign = "center"
			case layout.CellDay:
				if gc.Day > 0 {
					cell.Text = strconv.Itoa(gc.Day)
				}
				cell.Size = 10
				cell.Align = "left"
				cell.VAlign = "top"
			}
		}
	}
	return rows
}
