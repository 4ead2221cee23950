package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func letterPortrait(t *testing.T) PageGeometry {
	g, err := NewGeometry(PaperLetter, OrientationPortrait, DefaultMargin)
	require.NoError(t, err)
	return g
}

func allSpecs() []TemplateSpec {
	start := time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC)
	return []TemplateSpec{
		LinedSpec{LinesPerPage: 20},
		GridSpec{Rows: 30, Cols: 5},
		FourLineSpec{LinesPerPage: 20},
		CornellSpec{},
		MusicStaffSpec{StavesPerPage: 14},
		CharacterGridSpec{Rows: 20, CharsPerRow: 20},
		DiarySpec{Start: start, Days: 4},
		CalendarSpec{Year: 2025, Month: 11, Months: 3},
		MathErrorLogSpec{ProblemsPerPage: 4},
	}
}

func TestBuild_AllTemplatesFitThePage(t *testing.T) {
	geometries := map[string]PageGeometry{}
	for _, size := range PaperSizes {
		for _, o := range []Orientation{OrientationPortrait, OrientationLandscape} {
			g, err := NewGeometry(size, o, DefaultMargin)
			require.NoError(t, err)
			geometries[string(size)+"/"+string(o)] = g
		}
	}

	for name, g := range geometries {
		for _, spec := range allSpecs() {
			t.Run(name+"/"+string(spec.Kind()), func(t *testing.T) {
				plan, err := Build(g, spec, 3)
				require.NoError(t, err)
				for _, page := range plan.Pages {
					if page.Overflow {
						continue
					}
					assert.LessOrEqual(t, int64(page.Height()), int64(g.UsableHeight()))
					for _, b := range page.Blocks {
						assert.LessOrEqual(t, int64(b.Width), int64(g.UsableWidth()))
						if b.Grid != nil {
							assert.LessOrEqual(t, int64(b.Grid.Width()), int64(g.UsableWidth()))
							assert.Equal(t, b.Height, b.Grid.Height())
						}
						if len(b.Bands) > 0 {
							var total Length
							for _, band := range b.Bands {
								total += band.Height
							}
							assert.Equal(t, b.Height, total)
						}
					}
				}
			})
		}
	}
}

func TestBuild_PageCounts(t *testing.T) {
	g := letterPortrait(t)

	tests := []struct {
		spec  TemplateSpec
		pages int
		want  int
	}{
		{spec: LinedSpec{LinesPerPage: 10}, pages: 7, want: 7},
		{spec: CornellSpec{}, pages: 1, want: 1},
		{spec: MathErrorLogSpec{ProblemsPerPage: 2}, pages: 50, want: 50},
		{spec: DiarySpec{Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Days: 31}, pages: 1, want: 31},
		{spec: CalendarSpec{Year: 2025, Month: 1, Months: 12}, pages: 99, want: 12},
	}

	for _, tt := range tests {
		t.Run(string(tt.spec.Kind()), func(t *testing.T) {
			plan, err := Build(g, tt.spec, tt.pages)
			require.NoError(t, err)
			assert.Len(t, plan.Pages, tt.want)
			for i, p := range plan.Pages {
				assert.Equal(t, i+1, p.Number)
			}
		})
	}
}

func TestBuild_LinedOverflowIsMarkedNotShrunk(t *testing.T) {
	g := letterPortrait(t)

	plan, err := Build(g, LinedSpec{LinesPerPage: 40}, 2)
	require.NoError(t, err)
	assert.True(t, plan.Overflows())
	assert.Equal(t, PolicyFixed, plan.Policy)

	lines := 0
	for _, b := range plan.Pages[0].Blocks {
		if b.Style == StyleRuledLine {
			lines++
			assert.Equal(t, Points(28), b.Height)
		}
	}
	assert.Equal(t, 40, lines)

	plan, err = Build(g, LinedSpec{LinesPerPage: 20}, 2)
	require.NoError(t, err)
	assert.False(t, plan.Overflows())
}

func TestBuild_FourLineStructure(t *testing.T) {
	plan, err := Build(letterPortrait(t), FourLineSpec{LinesPerPage: 10}, 1)
	require.NoError(t, err)

	blocks := plan.Pages[0].Blocks
	assert.Equal(t, StyleHeader, blocks[0].Style)
	assert.Equal(t, Inches(1.5), blocks[0].Height)
	assert.Equal(t, StyleFooter, blocks[len(blocks)-1].Style)

	var lines, gaps int
	for _, b := range blocks {
		switch b.Style {
		case StyleFourLine:
			lines++
			require.Len(t, b.Bands, 4)
			assert.Equal(t, ruleBaseline, b.Bands[2].Bottom)
		case StyleSpacer:
			gaps++
		}
	}
	assert.Equal(t, 10, lines)
	assert.Equal(t, 9, gaps)
	// the block right before the footer is a writing line, not a gap
	assert.Equal(t, StyleFourLine, blocks[len(blocks)-2].Style)
}

func TestBuild_MathErrorLogSections(t *testing.T) {
	plan, err := Build(letterPortrait(t), MathErrorLogSpec{ProblemsPerPage: 3}, 1)
	require.NoError(t, err)

	var problems, separators int
	for _, b := range plan.Pages[0].Blocks {
		switch b.Style {
		case StyleMathProblem:
			problems++
			require.Len(t, b.Bands, 5)
			assert.Equal(t, "problem_info", b.Bands[0].Label)
			assert.True(t, b.Bands[0].Shaded)
			assert.InDelta(t, 0.45, float64(b.Bands[2].Height)/float64(b.Height), 0.01)
		case StyleSeparator:
			separators++
			assert.Equal(t, LineDashed, b.Rule.Style)
		}
	}
	assert.Equal(t, 3, problems)
	assert.Equal(t, 2, separators)
}

func TestBuild_CalendarPages(t *testing.T) {
	plan, err := Build(letterPortrait(t), CalendarSpec{Year: 2023, Month: 12, Months: 3}, 0)
	require.NoError(t, err)
	require.Len(t, plan.Pages, 3)

	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), plan.Pages[0].Date)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), plan.Pages[1].Date)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), plan.Pages[2].Date)

	grid := plan.Pages[2].Blocks[1].Grid
	require.NotNil(t, grid)
	assert.Len(t, grid.RowHeights, 7)
	assert.Len(t, grid.ColWidths, 7)
	assert.Equal(t, CellWeekdayHeader, grid.Cells[0][0].Kind)
	assert.True(t, grid.Cells[0][Sunday].Weekend())
	// February 2024: the 29th is a Thursday in the fifth week, sixth row is empty
	assert.Equal(t, 29, grid.Cells[5][3].Day)
	for _, c := range grid.Cells[6] {
		assert.Zero(t, c.Day)
	}
}

func TestBuild_CalendarEndsInYear9999(t *testing.T) {
	plan, err := Build(letterPortrait(t), CalendarSpec{Year: 9999, Month: 1, Months: 12}, 0)
	require.NoError(t, err)
	require.Len(t, plan.Pages, 12)
	assert.Equal(t, time.Date(9999, 12, 1, 0, 0, 0, 0, time.UTC), plan.Pages[11].Date)
}

func TestBuild_DiaryDates(t *testing.T) {
	start := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	plan, err := Build(letterPortrait(t), DiarySpec{Start: start, Days: 3}, 0)
	require.NoError(t, err)

	assert.Equal(t, start, plan.Pages[0].Date)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), plan.Pages[1].Date)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), plan.Pages[2].Date)
}

func TestBuild_CornellColumns(t *testing.T) {
	g := letterPortrait(t)
	plan, err := Build(g, CornellSpec{}, 1)
	require.NoError(t, err)

	var main *Block
	for i := range plan.Pages[0].Blocks {
		if plan.Pages[0].Blocks[i].Style == StyleCornellMain {
			main = &plan.Pages[0].Blocks[i]
		}
	}
	require.NotNil(t, main)
	require.Len(t, main.Columns, 2)
	assert.Equal(t, g.UsableWidth(), main.Columns[0]+main.Columns[1])
	assert.InDelta(t, 2.0/6.5, float64(main.Columns[0])/float64(g.UsableWidth()), 0.001)
}

func TestBuild_CharacterGridIsSquare(t *testing.T) {
	plan, err := Build(letterPortrait(t), CharacterGridSpec{Rows: 10, CharsPerRow: 8}, 1)
	require.NoError(t, err)

	grid := plan.Pages[0].Blocks[1].Grid
	require.NotNil(t, grid)
	require.NotNil(t, grid.Guide)
	assert.Equal(t, grid.ColWidths[0], grid.RowHeights[0])
	assert.Equal(t, grid.ColWidths[0], grid.Guide.Size)
}

func TestBuild_Idempotent(t *testing.T) {
	g := letterPortrait(t)
	for _, spec := range allSpecs() {
		first, err := Build(g, spec, 2)
		require.NoError(t, err)
		second, err := Build(g, spec, 2)
		require.NoError(t, err)
		assert.Equal(t, first, second, string(spec.Kind()))
	}
}

func TestBuild_InvalidParameters(t *testing.T) {
	g := letterPortrait(t)

	tests := []struct {
		name  string
		spec  TemplateSpec
		pages int
		field string
	}{
		{name: "nil spec", spec: nil, pages: 1, field: "template"},
		{name: "lined too few", spec: LinedSpec{LinesPerPage: 9}, pages: 1, field: "lines_per_page"},
		{name: "lined too many", spec: LinedSpec{LinesPerPage: 41}, pages: 1, field: "lines_per_page"},
		{name: "grid cols", spec: GridSpec{Rows: 10, Cols: 31}, pages: 1, field: "cols"},
		{name: "grid rows", spec: GridSpec{Rows: 0, Cols: 10}, pages: 1, field: "rows"},
		{name: "four line", spec: FourLineSpec{LinesPerPage: 21}, pages: 1, field: "lines_per_page"},
		{name: "staves", spec: MusicStaffSpec{StavesPerPage: 7}, pages: 1, field: "staves_per_page"},
		{name: "chars", spec: CharacterGridSpec{Rows: 10, CharsPerRow: 4}, pages: 1, field: "chars_per_row"},
		{name: "diary no start", spec: DiarySpec{Days: 3}, pages: 1, field: "start_date"},
		{name: "diary days", spec: DiarySpec{Start: time.Now(), Days: 366}, pages: 1, field: "days"},
		{name: "calendar months", spec: CalendarSpec{Year: 2025, Month: 1, Months: 13}, pages: 1, field: "months"},
		{name: "calendar month", spec: CalendarSpec{Year: 2025, Month: 0, Months: 1}, pages: 1, field: "month"},
		{name: "calendar runs past year 9999", spec: CalendarSpec{Year: 9999, Month: 12, Months: 12}, pages: 1, field: "months"},
		{name: "calendar one month past year 9999", spec: CalendarSpec{Year: 9999, Month: 2, Months: 12}, pages: 1, field: "months"},
		{name: "math problems", spec: MathErrorLogSpec{ProblemsPerPage: 5}, pages: 1, field: "problems_per_page"},
		{name: "zero pages", spec: CornellSpec{}, pages: 0, field: "pages"},
		{name: "too many pages", spec: CornellSpec{}, pages: 51, field: "pages"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(g, tt.spec, tt.pages)
			require.ErrorIs(t, err, ErrInvalidParameter)
			var layoutErr *Error
			require.ErrorAs(t, err, &layoutErr)
			assert.Equal(t, tt.field, layoutErr.Field)
		})
	}
}

func TestBuild_InvalidGeometry(t *testing.T) {
	g := letterPortrait(t)
	g.MarginTop = g.Height

	_, err := Build(g, CornellSpec{}, 1)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewGeometry("B5", OrientationPortrait, DefaultMargin)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestBuild_HeaderReserveTooTall(t *testing.T) {
	g := letterPortrait(t)
	g.MarginTop = g.Height - 2000

	_, err := Build(g, FourLineSpec{LinesPerPage: 5}, 1)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestNewGeometry_Landscape(t *testing.T) {
	g, err := NewGeometry(PaperA4, OrientationLandscape, DefaultMargin)
	require.NoError(t, err)
	assert.Equal(t, Length(16838), g.PageWidth())
	assert.Equal(t, Length(11906), g.PageHeight())
	assert.Equal(t, Length(16838-1440), g.UsableWidth())
	assert.Equal(t, Length(11906-1440), g.UsableHeight())
}
