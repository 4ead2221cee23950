package layout

import "math"

const proportionEpsilon = 1e-6

// FixedLayout is the result of the fixed-height line policy.
type FixedLayout struct {
	Bands    []Length
	Total    Length
	Overflow bool
}

// ComputeLinedLayout returns lineCount bands of the fixed ruled-line height.
// The band height does not depend on usableHeight: when the lines do not fit,
// Overflow is set and the caller lets the content run past the page.
func ComputeLinedLayout(usableHeight Length, lineCount int) (FixedLayout, error) {
	if usableHeight <= 0 {
		return FixedLayout{}, invalidParam("usable_height", "must be positive, got %d", usableHeight)
	}
	if lineCount <= 0 {
		return FixedLayout{}, invalidParam("lines_per_page", "must be positive, got %d", lineCount)
	}
	band := profiles[KindLined].FixedBand
	bands := make([]Length, lineCount)
	for i := range bands {
		bands[i] = band
	}
	total := band * Length(lineCount)
	return FixedLayout{Bands: bands, Total: total, Overflow: total > usableHeight}, nil
}

// Element is one repeated unit of a proportional layout.
type Element struct {
	Height Length
	Bands  []Length
}

// ProportionalLayout is the result of ComputeProportionalLayout.
type ProportionalLayout struct {
	Remaining Length
	Elements  []Element
	// Spacing is the gap between consecutive elements. There is no gap after
	// the last element.
	Spacing Length
}

// Total is the height consumed by elements and the gaps between them.
func (l ProportionalLayout) Total() Length {
	var total Length
	for _, e := range l.Elements {
		total += e.Height
	}
	if n := len(l.Elements); n > 1 {
		total += l.Spacing * Length(n-1)
	}
	return total
}

// ComputeProportionalLayout splits usableHeight-headerReserve across
// elementCount elements. subProportions divide one element's allotment; when
// they sum to less than 1 the rest becomes the gap between elements. Every
// value is rounded down, so the total never exceeds the remaining height, and
// the last sub-band takes each element's rounding remainder.
func ComputeProportionalLayout(usableHeight, headerReserve Length, elementCount int, subProportions []float64) (ProportionalLayout, error) {
	if usableHeight <= 0 {
		return ProportionalLayout{}, invalidParam("usable_height", "must be positive, got %d", usableHeight)
	}
	if headerReserve < 0 {
		return ProportionalLayout{}, invalidParam("header_reserve", "must not be negative, got %d", headerReserve)
	}
	if elementCount <= 0 {
		return ProportionalLayout{}, invalidParam("element_count", "must be positive, got %d", elementCount)
	}
	if len(subProportions) == 0 {
		return ProportionalLayout{}, invalidParam("sub_proportions", "at least one proportion is required")
	}

	var body float64
	for _, p := range subProportions {
		if p <= 0 || math.IsNaN(p) {
			return ProportionalLayout{}, invalidParam("sub_proportions", "proportions must be positive")
		}
		body += p
	}
	if body > 1+proportionEpsilon {
		return ProportionalLayout{}, invalidParam("sub_proportions", "proportions sum to %.4f, more than 1", body)
	}
	if body > 1 {
		body = 1
	}
	spacingShare := 1 - body

	remaining := usableHeight - headerReserve
	if remaining <= 0 {
		return ProportionalLayout{}, overflow("header_reserve", "header reserve %d leaves no room in %d", headerReserve, usableHeight)
	}

	n := float64(elementCount)
	weight := n*body + (n-1)*spacingShare
	elementHeight := scale(remaining, body/weight)
	spacing := scale(remaining, spacingShare/weight)
	if elementHeight <= 0 {
		return ProportionalLayout{}, overflow("element_count", "%d elements do not fit in %d", elementCount, remaining)
	}

	bands := splitBands(elementHeight, subProportions, body)
	elements := make([]Element, elementCount)
	for i := range elements {
		elements[i] = Element{Height: elementHeight, Bands: append([]Length(nil), bands...)}
	}

	return ProportionalLayout{
		Remaining: remaining,
		Elements:  elements,
		Spacing:   spacing,
	}, nil
}

// splitBands divides height by proportions normalized to total. The last band
// absorbs the rounding remainder so the bands sum exactly to height.
func splitBands(height Length, proportions []float64, total float64) []Length {
	bands := make([]Length, len(proportions))
	var used Length
	for i := 0; i < len(proportions)-1; i++ {
		bands[i] = scale(height, proportions[i]/total)
		used += bands[i]
	}
	bands[len(bands)-1] = height - used
	return bands
}
