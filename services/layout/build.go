package layout

import (
	"time"
)

// frame is the drawable area of one page: usable width, and usable height
// less the footer caption band.
type frame struct {
	width  Length
	body   Length
	usable Length
}

// Build computes the layout plan for spec on geometry. pages is the page count
// for per-page templates and is ignored for diary and calendar, whose page
// count follows their date span. Build is pure: equal inputs give equal plans.
func Build(geometry PageGeometry, spec TemplateSpec, pages int) (*Plan, error) {
	if spec == nil {
		return nil, invalidParam("template", "template is required")
	}
	if err := geometry.Validate(); err != nil {
		return nil, err
	}
	profile, ok := profiles[spec.Kind()]
	if !ok {
		return nil, invalidParam("template", "unknown template %q", spec.Kind())
	}
	if err := spec.validate(profile); err != nil {
		return nil, err
	}
	if profile.PerPage && (pages < MinPages || pages > MaxPages) {
		return nil, invalidParam("pages", "must be between %d and %d, got %d", MinPages, MaxPages, pages)
	}

	f := frame{
		width:  geometry.UsableWidth(),
		usable: geometry.UsableHeight(),
		body:   geometry.UsableHeight() - FooterReserve,
	}
	if f.body <= profile.HeaderReserve {
		return nil, overflow("height", "usable height %d leaves no room below the %d header", f.usable, profile.HeaderReserve)
	}

	template, err := f.templatePage(spec, profile)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Kind:     spec.Kind(),
		Policy:   profile.Policy,
		Geometry: geometry,
	}

	switch s := spec.(type) {
	case DiarySpec:
		for i := 0; i < s.Days; i++ {
			page := clonePage(template)
			page.Date = s.Start.AddDate(0, 0, i)
			plan.Pages = append(plan.Pages, page)
		}
	case CalendarSpec:
		for i := 0; i < s.Months; i++ {
			page, err := f.calendarPage(profile, s.Year, s.Month+i)
			if err != nil {
				return nil, err
			}
			plan.Pages = append(plan.Pages, page)
		}
	default:
		for i := 0; i < pages; i++ {
			plan.Pages = append(plan.Pages, clonePage(template))
		}
	}

	for i := range plan.Pages {
		plan.Pages[i].Number = i + 1
		if err := f.checkPage(profile, &plan.Pages[i]); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// checkPage enforces the usable-height bound. Fixed-height pages are allowed to
// overflow and are marked instead.
func (f frame) checkPage(profile Profile, page *Page) error {
	if page.Height() <= f.usable {
		return nil
	}
	if profile.Policy == PolicyFixed {
		page.Overflow = true
		return nil
	}
	return overflow("page", "page %d is %d tall, usable height is %d", page.Number, page.Height(), f.usable)
}

// templatePage builds the page repeated for every page of the plan. Calendar
// pages differ per month and are built separately.
func (f frame) templatePage(spec TemplateSpec, profile Profile) (Page, error) {
	switch s := spec.(type) {
	case LinedSpec:
		return f.linedPage(profile, s)
	case GridSpec:
		return f.gridPage(profile, s)
	case FourLineSpec:
		return f.bandedPage(profile, s.LinesPerPage, StyleFourLine, fourLineRules, StyleSpacer)
	case CornellSpec:
		return f.cornellPage(profile)
	case MusicStaffSpec:
		return f.bandedPage(profile, s.StavesPerPage, StyleStaff, staffRules, StyleSpacer)
	case CharacterGridSpec:
		return f.characterPage(profile, s)
	case DiarySpec:
		return f.diaryPage(profile)
	case CalendarSpec:
		return Page{}, nil
	case MathErrorLogSpec:
		return f.bandedPage(profile, s.ProblemsPerPage, StyleMathProblem, mathRules, StyleSeparator)
	}
	return Page{}, invalidParam("template", "unsupported template %q", spec.Kind())
}

func (f frame) header(profile Profile) Block {
	return Block{Style: StyleHeader, Height: profile.HeaderReserve, Width: f.width}
}

func (f frame) footer() Block {
	return Block{Style: StyleFooter, Height: FooterReserve, Width: f.width}
}

func (f frame) linedPage(profile Profile, s LinedSpec) (Page, error) {
	lines, err := ComputeLinedLayout(f.body-profile.HeaderReserve, s.LinesPerPage)
	if err != nil {
		return Page{}, err
	}
	page := Page{Blocks: []Block{f.header(profile)}}
	for _, h := range lines.Bands {
		page.Blocks = append(page.Blocks, Block{Style: StyleRuledLine, Height: h, Width: f.width, Rule: ruleLight})
	}
	page.Blocks = append(page.Blocks, f.footer())
	return page, nil
}

func (f frame) gridPage(profile Profile, s GridSpec) (Page, error) {
	g, err := ComputeGridLayout(f.width, f.body-profile.HeaderReserve, s.Rows, s.Cols)
	if err != nil {
		return Page{}, err
	}
	grid := uniformGrid(g.Rows, g.Cols, g.CellWidth, g.CellHeight, ruleLight)
	return Page{Blocks: []Block{
		f.header(profile),
		{Style: StyleGrid, Height: grid.Height(), Width: grid.Width(), Grid: grid},
		f.footer(),
	}}, nil
}

// ruleSet assigns the rules drawn on a composite element's sub-bands.
type ruleSet func(bands []Length) []Band

func fourLineRules(heights []Length) []Band {
	bottoms := []Rule{ruleDotted, ruleLight, ruleBaseline, ruleDotted}
	bands := make([]Band, len(heights))
	for i, h := range heights {
		bands[i] = Band{Height: h, Bottom: bottoms[i%len(bottoms)]}
	}
	return bands
}

func staffRules(heights []Length) []Band {
	bands := make([]Band, len(heights))
	for i, h := range heights {
		bands[i] = Band{Height: h, Bottom: ruleStaff}
	}
	return bands
}

func mathRules(heights []Length) []Band {
	bands := make([]Band, len(heights))
	for i, h := range heights {
		bands[i] = Band{Height: h, Top: ruleBox, Label: MathSections[i%len(MathSections)]}
	}
	bands[0].Shaded = true
	bands[len(bands)-1].Bottom = ruleBox
	return bands
}

// bandedPage lays out count composite elements proportionally with a gap
// block between consecutive elements.
func (f frame) bandedPage(profile Profile, count int, style Style, rules ruleSet, gap Style) (Page, error) {
	l, err := ComputeProportionalLayout(f.body, profile.HeaderReserve, count, profile.scaledProportions())
	if err != nil {
		return Page{}, err
	}
	page := Page{Blocks: []Block{f.header(profile)}}
	for i, e := range l.Elements {
		page.Blocks = append(page.Blocks, Block{Style: style, Height: e.Height, Width: f.width, Bands: rules(e.Bands)})
		if i < len(l.Elements)-1 && l.Spacing > 0 {
			gapBlock := Block{Style: gap, Height: l.Spacing, Width: f.width}
			if gap == StyleSeparator {
				gapBlock.Rule = ruleDashed
			}
			page.Blocks = append(page.Blocks, gapBlock)
		}
	}
	page.Blocks = append(page.Blocks, f.footer())
	return page, nil
}

func (f frame) cornellPage(profile Profile) (Page, error) {
	fixed := profile.HeaderReserve + 2*cornellTitleBand + cornellSummaryLabel
	remaining := f.body - fixed
	if remaining <= 0 {
		return Page{}, overflow("height", "cornell bands need %d, page body is %d", fixed, f.body)
	}
	main := scale(remaining, cornellMainShare)
	summary := remaining - main
	cue := scale(f.width, cornellCueRatio)

	return Page{Blocks: []Block{
		f.header(profile),
		{Style: StyleCornellTitle, Height: cornellTitleBand, Width: f.width, Rule: ruleDark},
		{Style: StyleCornellDate, Height: cornellTitleBand, Width: f.width, Rule: ruleDark},
		{Style: StyleCornellMain, Height: main, Width: f.width, Columns: []Length{cue, f.width - cue}, Rule: ruleDark},
		{Style: StyleCornellSummaryLabel, Height: cornellSummaryLabel, Width: f.width},
		{Style: StyleCornellSummary, Height: summary, Width: f.width, Rule: ruleDark},
		f.footer(),
	}}, nil
}

func (f frame) characterPage(profile Profile, s CharacterGridSpec) (Page, error) {
	g, err := ComputeGridLayout(f.width, f.body-profile.HeaderReserve, s.Rows, s.CharsPerRow)
	if err != nil {
		return Page{}, err
	}
	size := g.CellWidth
	if g.CellHeight < size {
		size = g.CellHeight
	}
	guide, err := ComputeCharacterGridCell(size)
	if err != nil {
		return Page{}, err
	}
	grid := uniformGrid(s.Rows, s.CharsPerRow, size, size, ruleDark)
	grid.Guide = &guide
	return Page{Blocks: []Block{
		f.header(profile),
		{Style: StyleCharacterGrid, Height: grid.Height(), Width: grid.Width(), Grid: grid},
		f.footer(),
	}}, nil
}

func (f frame) diaryPage(profile Profile) (Page, error) {
	l, err := ComputeProportionalLayout(f.body, profile.HeaderReserve, diaryLines, profile.SubProportions)
	if err != nil {
		return Page{}, err
	}
	page := Page{Blocks: []Block{f.header(profile)}}
	for _, e := range l.Elements {
		page.Blocks = append(page.Blocks, Block{Style: StyleRuledLine, Height: e.Height, Width: f.width, Rule: ruleLight})
	}
	page.Blocks = append(page.Blocks, f.footer())
	return page, nil
}

func (f frame) calendarPage(profile Profile, year, month int) (Page, error) {
	weeks, err := ComputeProportionalLayout(f.body, profile.HeaderReserve+calendarHeaderRow, calendarWeekRows, []float64{1})
	if err != nil {
		return Page{}, err
	}
	colWidth := f.width / 7

	mg := ComputeCalendarGrid(year, month)
	rowHeights := []Length{calendarHeaderRow}
	cells := [][]GridCell{make([]GridCell, 7)}
	for d := 0; d < 7; d++ {
		cells[0][d] = GridCell{Kind: CellWeekdayHeader, Weekday: d}
	}
	for w := 0; w < calendarWeekRows; w++ {
		rowHeights = append(rowHeights, weeks.Elements[w].Height)
		row := make([]GridCell, 7)
		for d := 0; d < 7; d++ {
			row[d] = GridCell{Kind: CellDay, Weekday: d}
			if w < len(mg.Weeks) {
				row[d].Day = mg.Weeks[w][d]
			}
		}
		cells = append(cells, row)
	}

	colWidths := make([]Length, 7)
	for i := range colWidths {
		colWidths[i] = colWidth
	}
	grid := &Grid{ColWidths: colWidths, RowHeights: rowHeights, Rule: ruleLight, Cells: cells}

	return Page{
		Date: time.Date(mg.Year, mg.Month, 1, 0, 0, 0, 0, time.UTC),
		Blocks: []Block{
			f.header(profile),
			{Style: StyleCalendar, Height: grid.Height(), Width: grid.Width(), Grid: grid},
			f.footer(),
		},
	}, nil
}

func uniformGrid(rows, cols int, cellWidth, cellHeight Length, rule Rule) *Grid {
	g := &Grid{
		ColWidths:  make([]Length, cols),
		RowHeights: make([]Length, rows),
		Rule:       rule,
	}
	for i := range g.ColWidths {
		g.ColWidths[i] = cellWidth
	}
	for i := range g.RowHeights {
		g.RowHeights[i] = cellHeight
	}
	return g
}

// clonePage copies the block slice. Bands and grids stay shared; plans are
// read-only once built.
func clonePage(p Page) Page {
	out := p
	out.Blocks = append([]Block(nil), p.Blocks...)
	return out
}
