package layout

import "time"

// Style tags a block so writers know how to draw it.
type Style string

const (
	StyleHeader              Style = "header"
	StyleFooter              Style = "footer"
	StyleRuledLine           Style = "ruled_line"
	StyleSpacer              Style = "spacer"
	StyleSeparator           Style = "separator"
	StyleFourLine            Style = "four_line"
	StyleGrid                Style = "grid"
	StyleCornellTitle        Style = "cornell_title"
	StyleCornellDate         Style = "cornell_date"
	StyleCornellMain         Style = "cornell_main"
	StyleCornellSummaryLabel Style = "cornell_summary_label"
	StyleCornellSummary      Style = "cornell_summary"
	StyleStaff               Style = "staff"
	StyleCharacterGrid       Style = "character_grid"
	StyleCalendar            Style = "calendar"
	StyleMathProblem         Style = "math_problem"
)

// LineStyle is the stroke of a rule or cell edge.
type LineStyle string

const (
	LineNone   LineStyle = ""
	LineSolid  LineStyle = "single"
	LineDotted LineStyle = "dotted"
	LineDashed LineStyle = "dashed"
)

// Rule is one drawn line. Weight is in eighths of a point, Color is RGB hex.
type Rule struct {
	Style  LineStyle `json:"style,omitempty"`
	Weight int       `json:"weight,omitempty"`
	Color  string    `json:"color,omitempty"`
}

// Visible reports whether the rule draws anything.
func (r Rule) Visible() bool {
	return r.Style != LineNone
}

var (
	ruleLight    = Rule{Style: LineSolid, Weight: 4, Color: "CCCCCC"}
	ruleDark     = Rule{Style: LineSolid, Weight: 4, Color: "000000"}
	ruleBaseline = Rule{Style: LineSolid, Weight: 6, Color: "000000"}
	ruleDotted   = Rule{Style: LineDotted, Weight: 2, Color: "CCCCCC"}
	ruleDashed   = Rule{Style: LineDashed, Weight: 4, Color: "999999"}
	ruleStaff    = Rule{Style: LineSolid, Weight: 4, Color: "333333"}
	ruleBox      = Rule{Style: LineSolid, Weight: 6, Color: "666666"}
)

// Band is a horizontal slice of a composite block.
type Band struct {
	Height Length `json:"height"`
	Top    Rule   `json:"top,omitempty"`
	Bottom Rule   `json:"bottom,omitempty"`
	// Label is a stable key writers localize, e.g. a math-log section name.
	Label  string `json:"label,omitempty"`
	Shaded bool   `json:"shaded,omitempty"`
}

// CellKind tells writers what a grid cell holds.
type CellKind string

const (
	CellPlain         CellKind = "plain"
	CellWeekdayHeader CellKind = "weekday_header"
	CellDay           CellKind = "day"
)

// GridCell is one cell of a grid block. Weekday uses 0=Monday..6=Sunday.
type GridCell struct {
	Kind    CellKind `json:"kind"`
	Day     int      `json:"day,omitempty"`
	Weekday int      `json:"weekday"`
}

// Weekend reports whether the cell falls on Saturday or Sunday.
func (c GridCell) Weekend() bool {
	return c.Kind != CellPlain && IsWeekend(c.Weekday)
}

// Grid is a table-like block with explicit column widths and row heights.
type Grid struct {
	ColWidths  []Length     `json:"col_widths"`
	RowHeights []Length     `json:"row_heights"`
	Rule       Rule         `json:"rule"`
	Cells      [][]GridCell `json:"cells,omitempty"`
	// Guide is set for character-practice cells.
	Guide *CharacterCell `json:"guide,omitempty"`
}

// Width is the summed column width.
func (g *Grid) Width() Length { return sum(g.ColWidths) }

// Height is the summed row height.
func (g *Grid) Height() Length { return sum(g.RowHeights) }

// Block is one vertically stacked element of a page.
type Block struct {
	Style  Style  `json:"style"`
	Height Length `json:"height"`
	Width  Length `json:"width"`
	// Columns splits the block horizontally (Cornell cue and notes).
	Columns []Length `json:"columns,omitempty"`
	Bands   []Band   `json:"bands,omitempty"`
	Grid    *Grid    `json:"grid,omitempty"`
	Rule    Rule     `json:"rule,omitempty"`
}

// Page is one printed page of a plan.
type Page struct {
	Number int `json:"number"`
	// Date is the diary day or the first day of the calendar month.
	Date   time.Time `json:"date,omitempty"`
	Blocks []Block   `json:"blocks"`
	// Overflow marks fixed-height pages whose content is taller than the page.
	Overflow bool `json:"overflow,omitempty"`
}

// Height is the summed height of the page's blocks.
func (p Page) Height() Length {
	var total Length
	for _, b := range p.Blocks {
		total += b.Height
	}
	return total
}

// Plan is the layout engine's output.
type Plan struct {
	Kind     Kind         `json:"kind"`
	Policy   HeightPolicy `json:"policy"`
	Geometry PageGeometry `json:"geometry"`
	Pages    []Page       `json:"pages"`
}

// Overflows reports whether any page is taller than the usable height.
func (p *Plan) Overflows() bool {
	for _, page := range p.Pages {
		if page.Overflow {
			return true
		}
	}
	return false
}
