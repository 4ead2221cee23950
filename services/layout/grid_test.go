package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeGridLayout_Bounds(t *testing.T) {
	width, height := Inches(7.5), Inches(9.69)
	for rows := 1; rows <= 30; rows++ {
		for cols := 1; cols <= 30; cols++ {
			g, err := ComputeGridLayout(width, height, rows, cols)
			require.NoError(t, err)
			assert.LessOrEqual(t, int64(g.CellWidth)*int64(cols), int64(width))
			assert.LessOrEqual(t, int64(g.CellHeight)*int64(rows), int64(height))
		}
	}
}

func TestComputeGridLayout_ReportsAspect(t *testing.T) {
	g, err := ComputeGridLayout(1000, 2000, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, Length(100), g.CellWidth)
	assert.Equal(t, Length(200), g.CellHeight)
	assert.InDelta(t, 0.5, g.Aspect(), 1e-9)
}

func TestComputeGridLayout_Errors(t *testing.T) {
	_, err := ComputeGridLayout(1000, 1000, 0, 5)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = ComputeGridLayout(1000, 1000, 5, -1)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = ComputeGridLayout(0, 1000, 5, 5)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = ComputeGridLayout(10, 1000, 5, 20)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestComputeCharacterGridCell(t *testing.T) {
	for _, size := range []Length{1, 2, 7, 100, 333, 719, 1001, Inches(0.75)} {
		cell, err := ComputeCharacterGridCell(size)
		require.NoError(t, err)

		q := cell.Quadrants
		assert.Equal(t, size, q[0].Rect.Width+q[1].Rect.Width, "size %d", size)
		assert.Equal(t, size, q[2].Rect.Width+q[3].Rect.Width, "size %d", size)
		assert.Equal(t, size, q[0].Rect.Height+q[2].Rect.Height, "size %d", size)
		assert.Equal(t, size, q[1].Rect.Height+q[3].Rect.Height, "size %d", size)
		assert.InDelta(t, float64(size)*0.45, float64(cell.SplitX), 1)
	}
}

func TestComputeCharacterGridCell_Edges(t *testing.T) {
	cell, err := ComputeCharacterGridCell(1000)
	require.NoError(t, err)

	tl, tr, bl, br := cell.Quadrants[0], cell.Quadrants[1], cell.Quadrants[2], cell.Quadrants[3]
	assert.Equal(t, Edges{Right: LineDotted, Bottom: LineDotted}, tl.Edges)
	assert.Equal(t, Edges{Left: LineDotted, Bottom: LineDotted}, tr.Edges)
	assert.Equal(t, Edges{Top: LineDotted, Right: LineDotted}, bl.Edges)
	assert.Equal(t, Edges{Top: LineDotted, Left: LineDotted}, br.Edges)
	assert.Equal(t, Rect{X: 450, Y: 450, Width: 550, Height: 550}, br.Rect)

	_, err = ComputeCharacterGridCell(0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
