package layout

import "time"

// Weekday indexes with Monday first.
const (
	Monday   = 0
	Saturday = 5
	Sunday   = 6
)

// IsWeekend reports whether a Monday-first weekday index is Saturday or Sunday.
func IsWeekend(weekday int) bool {
	return weekday == Saturday || weekday == Sunday
}

// MondayIndex converts a time.Weekday to a Monday-first index.
func MondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// MonthGrid holds the populated weeks of a month. Cells outside the month are 0.
type MonthGrid struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Weeks [][7]int   `json:"weeks"`
}

// NormalizeMonth rolls a month number outside 1-12 into the matching year.
func NormalizeMonth(year, month int) (int, time.Month) {
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ComputeCalendarGrid lays out a month Monday through Sunday using the
// proleptic Gregorian calendar. Only weeks containing a day of the month are
// returned, so a month spans 4 to 6 weeks.
func ComputeCalendarGrid(year, month int) MonthGrid {
	y, m := NormalizeMonth(year, month)
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	offset := MondayIndex(first.Weekday())
	days := DaysIn(y, m)

	var weeks [][7]int
	var week [7]int
	col := offset
	for day := 1; day <= days; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}

	return MonthGrid{Year: y, Month: m, Weeks: weeks}
}
