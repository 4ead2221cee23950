package layout

// HeightPolicy decides how element heights relate to the page.
type HeightPolicy string

const (
	// PolicyFixed uses a constant band height whatever the page fit.
	PolicyFixed HeightPolicy = "fixed"
	// PolicyProportional splits the available height across the elements.
	PolicyProportional HeightPolicy = "proportional"
)

// Page count bounds for templates that take a page count.
const (
	MinPages     = 1
	MaxPages     = 50
	DefaultPages = 5
)

// FooterReserve is the band kept at the bottom of every page for the caption.
const FooterReserve = 446 * Twip

// Range bounds an integer form input.
type Range struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) check(field string, v int) error {
	if !r.Contains(v) {
		return invalidParam(field, "must be between %d and %d, got %d", r.Min, r.Max, v)
	}
	return nil
}

// Profile is the per-template configuration row. All template-specific
// constants live here so the layout routines stay shared.
type Profile struct {
	Kind   Kind         `json:"kind"`
	Policy HeightPolicy `json:"policy"`
	// PerPage templates take a page count; diary and calendar derive theirs.
	PerPage bool `json:"per_page"`
	// Primary bounds lines/rows/staves/problems/days/months.
	Primary Range `json:"primary"`
	// Secondary bounds columns or characters per row when the template has them.
	Secondary     Range  `json:"secondary,omitempty"`
	HeaderReserve Length `json:"header_reserve"`
	// SubProportions split one element; they sum to 1.
	SubProportions []float64 `json:"sub_proportions,omitempty"`
	// BodyShare and SpacingShare divide each element's allotment between the
	// element and the gap that follows it.
	BodyShare    float64 `json:"body_share,omitempty"`
	SpacingShare float64 `json:"spacing_share,omitempty"`
	// FixedBand is the band height for PolicyFixed.
	FixedBand Length `json:"fixed_band,omitempty"`
}

// scaledProportions returns the sub-proportions scaled by the body share, the
// form computeProportionalLayout expects when a spacing share is reserved.
func (p Profile) scaledProportions() []float64 {
	body := p.BodyShare
	if body == 0 {
		body = 1
	}
	out := make([]float64, len(p.SubProportions))
	for i, v := range p.SubProportions {
		out[i] = v * body
	}
	return out
}

const (
	diaryLines          = 18
	cornellTitleBand    = 480 * Twip
	cornellSummaryLabel = 400 * Twip
	cornellMainShare    = 0.78
	cornellCueRatio     = 2.0 / 6.5
	calendarHeaderRow   = 560 * Twip
	calendarWeekRows    = 6
	characterSplit      = 0.45
)

var profiles = map[Kind]Profile{
	KindLined: {
		Kind:          KindLined,
		Policy:        PolicyFixed,
		PerPage:       true,
		Primary:       Range{Min: 10, Max: 40, Default: 25},
		HeaderReserve: 720,
		FixedBand:     560,
	},
	KindGrid: {
		Kind:          KindGrid,
		Policy:        PolicyProportional,
		PerPage:       true,
		Primary:       Range{Min: 5, Max: 30, Default: 20},
		Secondary:     Range{Min: 5, Max: 30, Default: 20},
		HeaderReserve: 720,
	},
	KindFourLine: {
		Kind:           KindFourLine,
		Policy:         PolicyProportional,
		PerPage:        true,
		Primary:        Range{Min: 5, Max: 20, Default: 15},
		HeaderReserve:  2160,
		SubProportions: []float64{0.2, 0.2, 0.3, 0.3},
		BodyShare:      0.8,
		SpacingShare:   0.2,
	},
	KindCornell: {
		Kind:          KindCornell,
		Policy:        PolicyProportional,
		PerPage:       true,
		HeaderReserve: 720,
	},
	KindMusicStaff: {
		Kind:           KindMusicStaff,
		Policy:         PolicyProportional,
		PerPage:        true,
		Primary:        Range{Min: 8, Max: 14, Default: 10},
		HeaderReserve:  1440,
		SubProportions: []float64{0.2, 0.2, 0.2, 0.2, 0.2},
		BodyShare:      0.7,
		SpacingShare:   0.3,
	},
	KindCharacterGrid: {
		Kind:           KindCharacterGrid,
		Policy:         PolicyProportional,
		PerPage:        true,
		Primary:        Range{Min: 5, Max: 20, Default: 10},
		Secondary:      Range{Min: 5, Max: 20, Default: 10},
		HeaderReserve:  720,
		SubProportions: []float64{characterSplit, 1 - characterSplit},
	},
	KindDiary: {
		Kind:           KindDiary,
		Policy:         PolicyProportional,
		Primary:        Range{Min: 1, Max: 365, Default: 7},
		HeaderReserve:  1200,
		SubProportions: []float64{1},
	},
	KindCalendar: {
		Kind:          KindCalendar,
		Policy:        PolicyProportional,
		Primary:       Range{Min: 1, Max: 12, Default: 12},
		HeaderReserve: 1080,
	},
	KindMathErrorLog: {
		Kind:           KindMathErrorLog,
		Policy:         PolicyProportional,
		PerPage:        true,
		Primary:        Range{Min: 1, Max: 4, Default: 2},
		HeaderReserve:  720,
		SubProportions: []float64{0.08, 0.25, 0.45, 0.17, 0.05},
		BodyShare:      0.95,
		SpacingShare:   0.05,
	},
}

// ProfileFor returns the configuration row for kind.
func ProfileFor(kind Kind) (Profile, bool) {
	p, ok := profiles[kind]
	return p, ok
}

// Profiles returns every profile in form display order.
func Profiles() []Profile {
	out := make([]Profile, 0, len(Kinds))
	for _, k := range Kinds {
		out = append(out, profiles[k])
	}
	return out
}

// MathSections names the math error-log sub-regions in order.
var MathSections = []string{"problem_info", "problem", "solution", "reason", "review"}
