package layout

import "time"

// Kind identifies a notebook template
type Kind string

const (
	KindLined         Kind = "lined"
	KindGrid          Kind = "grid"
	KindFourLine      Kind = "four_line"
	KindCornell       Kind = "cornell"
	KindMusicStaff    Kind = "music_staff"
	KindCharacterGrid Kind = "character_grid"
	KindDiary         Kind = "diary"
	KindCalendar      Kind = "calendar"
	KindMathErrorLog  Kind = "math_error_log"
)

// Kinds lists every template in form display order.
var Kinds = []Kind{
	KindLined,
	KindGrid,
	KindFourLine,
	KindCornell,
	KindMusicStaff,
	KindCharacterGrid,
	KindDiary,
	KindCalendar,
	KindMathErrorLog,
}

// IsValidKind reports whether kind names a known template.
func IsValidKind(kind string) bool {
	_, ok := profiles[Kind(kind)]
	return ok
}

// TemplateSpec is the per-template parameter set. Only the types in this
// package implement it.
type TemplateSpec interface {
	Kind() Kind
	validate(p Profile) error
}

// LinedSpec is ruled notebook paper.
type LinedSpec struct {
	LinesPerPage int `json:"lines_per_page"`
}

// GridSpec is square-ruled paper.
type GridSpec struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// FourLineSpec is handwriting paper with four guide lines per writing line.
type FourLineSpec struct {
	LinesPerPage int `json:"lines_per_page"`
}

// CornellSpec is the cue/notes/summary layout. It has no count parameter.
type CornellSpec struct{}

// MusicStaffSpec is staff paper with five lines per stave.
type MusicStaffSpec struct {
	StavesPerPage int `json:"staves_per_page"`
}

// CharacterGridSpec is character-practice paper with guide quadrants in each cell.
type CharacterGridSpec struct {
	Rows        int `json:"rows"`
	CharsPerRow int `json:"chars_per_row"`
}

// DiarySpec prints one dated page per day starting at Start.
type DiarySpec struct {
	Start time.Time `json:"start"`
	Days  int       `json:"days"`
}

// CalendarSpec prints one month per page starting at Year/Month. Later
// months roll over into the following years.
type CalendarSpec struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Months int `json:"months"`
}

// MathErrorLogSpec is the mistake notebook with sectioned problem blocks.
type MathErrorLogSpec struct {
	ProblemsPerPage int `json:"problems_per_page"`
}

func (LinedSpec) Kind() Kind         { return KindLined }
func (GridSpec) Kind() Kind          { return KindGrid }
func (FourLineSpec) Kind() Kind      { return KindFourLine }
func (CornellSpec) Kind() Kind       { return KindCornell }
func (MusicStaffSpec) Kind() Kind    { return KindMusicStaff }
func (CharacterGridSpec) Kind() Kind { return KindCharacterGrid }
func (DiarySpec) Kind() Kind         { return KindDiary }
func (CalendarSpec) Kind() Kind      { return KindCalendar }
func (MathErrorLogSpec) Kind() Kind  { return KindMathErrorLog }

func (s LinedSpec) validate(p Profile) error {
	return p.Primary.check("lines_per_page", s.LinesPerPage)
}

func (s GridSpec) validate(p Profile) error {
	if err := p.Primary.check("rows", s.Rows); err != nil {
		return err
	}
	return p.Secondary.check("cols", s.Cols)
}

func (s FourLineSpec) validate(p Profile) error {
	return p.Primary.check("lines_per_page", s.LinesPerPage)
}

func (CornellSpec) validate(Profile) error { return nil }

func (s MusicStaffSpec) validate(p Profile) error {
	return p.Primary.check("staves_per_page", s.StavesPerPage)
}

func (s CharacterGridSpec) validate(p Profile) error {
	if err := p.Primary.check("rows", s.Rows); err != nil {
		return err
	}
	return p.Secondary.check("chars_per_row", s.CharsPerRow)
}

func (s DiarySpec) validate(p Profile) error {
	if s.Start.IsZero() {
		return invalidParam("start_date", "start date is required")
	}
	return p.Primary.check("days", s.Days)
}

func (s CalendarSpec) validate(p Profile) error {
	if s.Year < 1 || s.Year > 9999 {
		return invalidParam("year", "must be between 1 and 9999, got %d", s.Year)
	}
	if s.Month < 1 || s.Month > 12 {
		return invalidParam("month", "must be between 1 and 12, got %d", s.Month)
	}
	if err := p.Primary.check("months", s.Months); err != nil {
		return err
	}
	// the last month must still fall in year 9999
	if (s.Year*12+s.Month-1+s.Months-1)/12 > 9999 {
		return invalidParam("months", "%d months from %04d-%02d run past 9999-12", s.Months, s.Year, s.Month)
	}
	return nil
}

func (s MathErrorLogSpec) validate(p Profile) error {
	return p.Primary.check("problems_per_page", s.ProblemsPerPage)
}

// DefaultSpec returns the spec for kind filled with the profile defaults.
// Diary and calendar start from the given date.
func DefaultSpec(kind Kind, today time.Time) (TemplateSpec, error) {
	p, ok := profiles[kind]
	if !ok {
		return nil, invalidParam("template", "unknown template %q", kind)
	}
	switch kind {
	case KindLined:
		return LinedSpec{LinesPerPage: p.Primary.Default}, nil
	case KindGrid:
		return GridSpec{Rows: p.Primary.Default, Cols: p.Secondary.Default}, nil
	case KindFourLine:
		return FourLineSpec{LinesPerPage: p.Primary.Default}, nil
	case KindCornell:
		return CornellSpec{}, nil
	case KindMusicStaff:
		return MusicStaffSpec{StavesPerPage: p.Primary.Default}, nil
	case KindCharacterGrid:
		return CharacterGridSpec{Rows: p.Primary.Default, CharsPerRow: p.Secondary.Default}, nil
	case KindDiary:
		start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		return DiarySpec{Start: start, Days: p.Primary.Default}, nil
	case KindCalendar:
		return CalendarSpec{Year: today.Year(), Month: int(today.Month()), Months: p.Primary.Default}, nil
	default:
		return MathErrorLogSpec{ProblemsPerPage: p.Primary.Default}, nil
	}
}
