package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeProportionalLayout_NoOverflow(t *testing.T) {
	proportionSets := [][]float64{
		{1},
		{0.2, 0.2, 0.3, 0.3},
		{0.16, 0.16, 0.24, 0.24},
		{0.14, 0.14, 0.14, 0.14, 0.14},
		{0.076, 0.2375, 0.4275, 0.1615, 0.0475},
		{0.5},
	}
	heights := []Length{1000, 9999, 11794, Inches(9.69), Inches(13.5)}

	for _, props := range proportionSets {
		for _, h := range heights {
			for n := 1; n <= 40; n++ {
				l, err := ComputeProportionalLayout(h, 0, n, props)
				require.NoError(t, err)
				assert.LessOrEqual(t, int64(l.Total()), int64(h), "height=%d n=%d props=%v", h, n, props)
				assert.Len(t, l.Elements, n)
				// rounding loss stays below one twip per element and gap
				assert.Less(t, int64(h-l.Total()), int64(2*n), "height=%d n=%d props=%v", h, n, props)
				for _, e := range l.Elements {
					assert.Equal(t, e.Height, sum(e.Bands))
				}
			}
		}
	}
}

func TestComputeProportionalLayout_FourLineLetter(t *testing.T) {
	profile := profiles[KindFourLine]
	l, err := ComputeProportionalLayout(Inches(9.69), Inches(1.5), 10, profile.scaledProportions())
	require.NoError(t, err)

	assert.Len(t, l.Elements, 10)
	assert.Equal(t, Inches(8.19), l.Remaining)
	assert.InDelta(t, 8.19, l.Total().Inches(), 0.02)
	assert.LessOrEqual(t, int64(l.Total()), int64(l.Remaining))

	// sub-bands keep the 0.2/0.2/0.3/0.3 ratio within the element
	e := l.Elements[0]
	require.Len(t, e.Bands, 4)
	assert.InDelta(t, 0.2, float64(e.Bands[0])/float64(e.Height), 0.01)
	assert.InDelta(t, 0.3, float64(e.Bands[3])/float64(e.Height), 0.01)
	// gap is a quarter of the element (0.2 / 0.8)
	assert.InDelta(t, 0.25, float64(l.Spacing)/float64(e.Height), 0.01)
}

func TestComputeProportionalLayout_SingleElementHasNoGap(t *testing.T) {
	l, err := ComputeProportionalLayout(5000, 1000, 1, []float64{0.6, 0.2})
	require.NoError(t, err)
	assert.Equal(t, Length(4000), l.Elements[0].Height)
	assert.Equal(t, Length(4000), l.Total())
}

func TestComputeProportionalLayout_Errors(t *testing.T) {
	tests := []struct {
		name     string
		height   Length
		reserve  Length
		count    int
		props    []float64
		sentinel error
	}{
		{name: "zero height", height: 0, count: 3, props: []float64{1}, sentinel: ErrInvalidParameter},
		{name: "negative height", height: -5, count: 3, props: []float64{1}, sentinel: ErrInvalidParameter},
		{name: "zero count", height: 1000, count: 0, props: []float64{1}, sentinel: ErrInvalidParameter},
		{name: "no proportions", height: 1000, count: 2, props: nil, sentinel: ErrInvalidParameter},
		{name: "proportions over one", height: 1000, count: 2, props: []float64{0.7, 0.4}, sentinel: ErrInvalidParameter},
		{name: "negative proportion", height: 1000, count: 2, props: []float64{-0.1, 0.5}, sentinel: ErrInvalidParameter},
		{name: "reserve fills page", height: 1000, reserve: 1000, count: 2, props: []float64{1}, sentinel: ErrOverflow},
		{name: "too many elements", height: 10, count: 40, props: []float64{1}, sentinel: ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeProportionalLayout(tt.height, tt.reserve, tt.count, tt.props)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
		})
	}
}

func TestComputeLinedLayout(t *testing.T) {
	t.Run("fits", func(t *testing.T) {
		l, err := ComputeLinedLayout(Inches(10), 20)
		require.NoError(t, err)
		assert.Len(t, l.Bands, 20)
		assert.Equal(t, Points(28), l.Bands[0])
		assert.Equal(t, Points(28)*20, l.Total)
		assert.False(t, l.Overflow)
	})

	t.Run("overflows without shrinking", func(t *testing.T) {
		l, err := ComputeLinedLayout(Inches(5), 40)
		require.NoError(t, err)
		assert.Equal(t, Points(28), l.Bands[39])
		assert.True(t, l.Overflow)
	})

	t.Run("rejects zero lines", func(t *testing.T) {
		_, err := ComputeLinedLayout(Inches(5), 0)
		assert.ErrorIs(t, err, ErrInvalidParameter)
	})
}
