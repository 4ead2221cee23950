package layout

import "math"

// Length is a distance in twips (1/20 of a point, 1/1440 of an inch).
// Word-processor writers use twips natively, so plan values map 1:1.
type Length int64

const (
	Twip  Length = 1
	Point Length = 20
	Inch  Length = 1440
)

// Inches converts inches to the nearest twip.
func Inches(in float64) Length {
	return Length(math.Round(in * float64(Inch)))
}

// Points converts points to the nearest twip.
func Points(pt float64) Length {
	return Length(math.Round(pt * float64(Point)))
}

// Points returns the length in points.
func (l Length) Points() float64 {
	return float64(l) / float64(Point)
}

// Inches returns the length in inches.
func (l Length) Inches() float64 {
	return float64(l) / float64(Inch)
}

// Millimeters returns the length in millimeters.
func (l Length) Millimeters() float64 {
	return l.Inches() * 25.4
}

// scale multiplies l by f and rounds down, so scaled parts never exceed the whole.
func scale(l Length, f float64) Length {
	return Length(math.Floor(float64(l)*f + 1e-9))
}

func sum(lengths []Length) Length {
	var total Length
	for _, l := range lengths {
		total += l
	}
	return total
}
