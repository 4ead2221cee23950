package layout

// GridLayout is a uniform cell size for a rows x cols table.
type GridLayout struct {
	Rows       int
	Cols       int
	CellWidth  Length
	CellHeight Length
}

// Aspect is cell width divided by cell height.
func (g GridLayout) Aspect() float64 {
	if g.CellHeight == 0 {
		return 0
	}
	return float64(g.CellWidth) / float64(g.CellHeight)
}

// ComputeGridLayout divides the usable area into rows x cols cells. Cell sizes
// are rounded down so the grid never exceeds the area. Cells are not forced
// square; Aspect reports the actual ratio.
func ComputeGridLayout(usableWidth, usableHeight Length, rows, cols int) (GridLayout, error) {
	if usableWidth <= 0 {
		return GridLayout{}, invalidParam("usable_width", "must be positive, got %d", usableWidth)
	}
	if usableHeight <= 0 {
		return GridLayout{}, invalidParam("usable_height", "must be positive, got %d", usableHeight)
	}
	if rows <= 0 {
		return GridLayout{}, invalidParam("rows", "must be positive, got %d", rows)
	}
	if cols <= 0 {
		return GridLayout{}, invalidParam("cols", "must be positive, got %d", cols)
	}

	g := GridLayout{
		Rows:       rows,
		Cols:       cols,
		CellWidth:  usableWidth / Length(cols),
		CellHeight: usableHeight / Length(rows),
	}
	if g.CellWidth == 0 || g.CellHeight == 0 {
		return GridLayout{}, overflow("grid", "%dx%d cells do not fit in %dx%d", rows, cols, usableWidth, usableHeight)
	}
	return g, nil
}

// Rect is an axis-aligned rectangle relative to its parent's top-left corner.
type Rect struct {
	X      Length `json:"x"`
	Y      Length `json:"y"`
	Width  Length `json:"width"`
	Height Length `json:"height"`
}

// Edges holds the stroke of each side of a rectangle.
type Edges struct {
	Top    LineStyle `json:"top"`
	Right  LineStyle `json:"right"`
	Bottom LineStyle `json:"bottom"`
	Left   LineStyle `json:"left"`
}

// Quadrant is one guide sub-cell of a character-practice cell.
type Quadrant struct {
	Rect  Rect  `json:"rect"`
	Edges Edges `json:"edges"`
}

// CharacterCell is a square practice cell split into four guide quadrants,
// ordered top-left, top-right, bottom-left, bottom-right. Internal edges are
// dotted; the outer edges belong to the parent cell's border.
type CharacterCell struct {
	Size      Length      `json:"size"`
	SplitX    Length      `json:"split_x"`
	SplitY    Length      `json:"split_y"`
	Quadrants [4]Quadrant `json:"quadrants"`
}

// ComputeCharacterGridCell splits a square cell at 45/55 in both directions.
func ComputeCharacterGridCell(cellSize Length) (CharacterCell, error) {
	if cellSize <= 0 {
		return CharacterCell{}, invalidParam("cell_size", "must be positive, got %d", cellSize)
	}
	split := profiles[KindCharacterGrid].SubProportions
	parts := splitBands(cellSize, split, 1)
	first, second := parts[0], parts[1]

	return CharacterCell{
		Size:   cellSize,
		SplitX: first,
		SplitY: first,
		Quadrants: [4]Quadrant{
			{Rect: Rect{X: 0, Y: 0, Width: first, Height: first}, Edges: Edges{Right: LineDotted, Bottom: LineDotted}},
			{Rect: Rect{X: first, Y: 0, Width: second, Height: first}, Edges: Edges{Left: LineDotted, Bottom: LineDotted}},
			{Rect: Rect{X: 0, Y: first, Width: first, Height: second}, Edges: Edges{Top: LineDotted, Right: LineDotted}},
			{Rect: Rect{X: first, Y: first, Width: second, Height: second}, Edges: Edges{Top: LineDotted, Left: LineDotted}},
		},
	}, nil
}
