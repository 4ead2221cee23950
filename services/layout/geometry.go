package layout

// Orientation of the printed page
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// PaperSize names a supported sheet size
type PaperSize string

const (
	PaperLetter PaperSize = "letter"
	PaperA4     PaperSize = "A4"
	PaperLegal  PaperSize = "legal"
)

// DefaultMargin is the half-inch margin the form applies on every edge.
const DefaultMargin = 720 * Twip

// paperDimensions holds portrait width and height per paper size.
var paperDimensions = map[PaperSize][2]Length{
	PaperLetter: {12240, 15840},
	PaperA4:     {11906, 16838},
	PaperLegal:  {12240, 20160},
}

// PaperSizes lists the sizes offered by the form.
var PaperSizes = []PaperSize{PaperA4, PaperLetter, PaperLegal}

// IsValidPaperSize reports whether size is known.
func IsValidPaperSize(size string) bool {
	_, ok := paperDimensions[PaperSize(size)]
	return ok
}

// IsValidOrientation reports whether orientation is portrait or landscape.
func IsValidOrientation(orientation string) bool {
	return orientation == string(OrientationPortrait) || orientation == string(OrientationLandscape)
}

// PageGeometry describes one document's page. Width and Height are the portrait
// dimensions of the sheet; PageWidth/PageHeight apply the orientation.
type PageGeometry struct {
	Width        Length      `json:"width"`
	Height       Length      `json:"height"`
	MarginTop    Length      `json:"margin_top"`
	MarginBottom Length      `json:"margin_bottom"`
	MarginLeft   Length      `json:"margin_left"`
	MarginRight  Length      `json:"margin_right"`
	Orientation  Orientation `json:"orientation"`
}

// NewGeometry builds a geometry for a named paper size with uniform margins.
func NewGeometry(size PaperSize, orientation Orientation, margin Length) (PageGeometry, error) {
	dims, ok := paperDimensions[size]
	if !ok {
		return PageGeometry{}, invalidParam("paper_size", "unknown paper size %q", size)
	}
	g := PageGeometry{
		Width:        dims[0],
		Height:       dims[1],
		MarginTop:    margin,
		MarginBottom: margin,
		MarginLeft:   margin,
		MarginRight:  margin,
		Orientation:  orientation,
	}
	if err := g.Validate(); err != nil {
		return PageGeometry{}, err
	}
	return g, nil
}

// PageWidth returns the sheet width after orientation is applied.
func (g PageGeometry) PageWidth() Length {
	if g.Orientation == OrientationLandscape {
		return g.Height
	}
	return g.Width
}

// PageHeight returns the sheet height after orientation is applied.
func (g PageGeometry) PageHeight() Length {
	if g.Orientation == OrientationLandscape {
		return g.Width
	}
	return g.Height
}

// UsableWidth is the page width minus left and right margins.
func (g PageGeometry) UsableWidth() Length {
	return g.PageWidth() - g.MarginLeft - g.MarginRight
}

// UsableHeight is the page height minus top and bottom margins.
func (g PageGeometry) UsableHeight() Length {
	return g.PageHeight() - g.MarginTop - g.MarginBottom
}

// Validate rejects geometries with no usable area.
func (g PageGeometry) Validate() error {
	if !IsValidOrientation(string(g.Orientation)) {
		return invalidParam("orientation", "must be portrait or landscape, got %q", g.Orientation)
	}
	if g.MarginTop < 0 || g.MarginBottom < 0 || g.MarginLeft < 0 || g.MarginRight < 0 {
		return invalidParam("margin", "margins must not be negative")
	}
	if g.UsableWidth() <= 0 {
		return invalidParam("width", "usable width must be positive, got %d", g.UsableWidth())
	}
	if g.UsableHeight() <= 0 {
		return invalidParam("height", "usable height must be positive, got %d", g.UsableHeight())
	}
	return nil
}
