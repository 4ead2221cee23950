package pages

import (
	"strconv"
	"time"

	"notebook_forms_go/models"
	"notebook_forms_go/services"
	"notebook_forms_go/services/layout"
)

// FormViewModel holds the data for the generator form
type FormViewModel struct {
	Title            string
	CSRFToken        string
	Profiles         []layout.Profile
	SelectedKind     layout.Kind
	PaperSizes       []layout.PaperSize
	DefaultPaperSize string
	Formats          []services.Format
	MaxPages         int
	Today            time.Time
	HistoryEnabled   bool
	Recent           []models.Generation
}

// orientations are offered in this order; the first is checked.
var orientations = []layout.Orientation{layout.OrientationPortrait, layout.OrientationLandscape}

// headerFields are the write-in values printed in the page header.
var headerFields = []string{"school", "grade", "class", "name"}

func (vm FormViewModel) selectedKind() layout.Kind {
	if vm.SelectedKind == "" {
		return layout.KindLined
	}
	return vm.SelectedKind
}

func (vm FormViewModel) defaultPages() int {
	if layout.DefaultPages < vm.MaxPages {
		return layout.DefaultPages
	}
	return vm.MaxPages
}

// paramField is one per-template input of the form.
type paramField struct {
	Name  string
	Type  string // number or date
	Min   int
	Max   int
	Value string
}

func numberField(name string, r layout.Range) paramField {
	return paramField{Name: name, Type: "number", Min: r.Min, Max: r.Max, Value: strconv.Itoa(r.Default)}
}

// paramFields lists the inputs of a template. Names match the form values
// read by the generate handler.
func paramFields(p layout.Profile, today time.Time) []paramField {
	switch p.Kind {
	case layout.KindLined, layout.KindFourLine:
		return []paramField{numberField("lines_per_page", p.Primary)}
	case layout.KindGrid:
		return []paramField{numberField("rows", p.Primary), numberField("cols", p.Secondary)}
	case layout.KindMusicStaff:
		return []paramField{numberField("staves_per_page", p.Primary)}
	case layout.KindCharacterGrid:
		return []paramField{numberField("rows", p.Primary), numberField("chars_per_row", p.Secondary)}
	case layout.KindDiary:
		return []paramField{
			{Name: "start_date", Type: "date", Value: today.Format("2006-01-02")},
			numberField("days", p.Primary),
		}
	case layout.KindCalendar:
		return []paramField{
			{Name: "year", Type: "number", Min: 1, Max: 9999, Value: strconv.Itoa(today.Year())},
			{Name: "month", Type: "number", Min: 1, Max: 12, Value: strconv.Itoa(int(today.Month()))},
			numberField("months", p.Primary),
		}
	case layout.KindMathErrorLog:
		return []paramField{numberField("problems_per_page", p.Primary)}
	}
	return nil
}
