package calendar

import "time"

// Options controls what a View shows. ShowTitles and OnlyEventWeeks are
// separate even though the widget drives both from one toggle.
type Options struct {
	ShowTitles     bool
	OnlyEventWeeks bool
	WeekStart      time.Weekday
}

// OptionsFor returns the options for the "show holidays" toggle with weeks
// starting on Sunday.
func OptionsFor(showHolidays bool) Options {
	return Options{
		ShowTitles:     showHolidays,
		OnlyEventWeeks: showHolidays,
		WeekStart:      time.Sunday,
	}
}

// Cell is a single day of the grid as seen by a renderer. Day is zero for
// cells outside the month.
type Cell struct {
	Day     int     `json:"day"`
	Date    DateKey `json:"date,omitempty"`
	InMonth bool    `json:"inMonth"`
	Today   bool    `json:"today"`
	Band    Band    `json:"band"`
	Events  []Event `json:"events,omitempty"`
}

// Week is a visible row of the grid.
type Week struct {
	Index  int     `json:"index"`
	Band   Band    `json:"band"`
	Events int     `json:"events"`
	Cells  [7]Cell `json:"cells"`
}

// View is everything a renderer needs to draw one month.
type View struct {
	Month              MonthContext `json:"month"`
	Label              string       `json:"label"`
	ShowHolidays       bool         `json:"showHolidays"`
	DaysInMonth        int          `json:"daysInMonth"`
	FirstWeekdayOffset int          `json:"firstWeekdayOffset"`
	TotalWeeks         int          `json:"totalWeeks"`
	Weekdays           []string     `json:"weekdays"`
	Weeks              []Week       `json:"weeks"`
}

// Project turns a layout into the cells of its visible weeks. today is
// compared by calendar date in its own location.
func Project(l Layout, opts Options, today time.Time) View {
	v := View{
		Month:              l.Month,
		Label:              l.Month.Label(),
		ShowHolidays:       opts.ShowTitles,
		DaysInMonth:        l.DaysInMonth,
		FirstWeekdayOffset: l.FirstWeekdayOffset,
		TotalWeeks:         l.TotalWeeks,
		Weeks:              []Week{},
	}
	for _, d := range Weekdays(l.WeekStart) {
		v.Weekdays = append(v.Weekdays, d.String())
	}

	isToday := func(day int) bool {
		return today.Year() == l.Month.Year && today.Month() == l.Month.Month && today.Day() == day
	}

	bands := l.Bands()
	for _, w := range l.VisibleWeeks(opts.OnlyEventWeeks) {
		week := Week{Index: w, Band: bands[w], Events: l.WeekEventCount(w)}
		for i := range week.Cells {
			day := l.DayNumber(w*7 + i)
			if !l.InMonth(day) {
				week.Cells[i] = Cell{Band: BandNeutral}
				continue
			}
			cell := Cell{
				Day:     day,
				Date:    KeyOf(time.Date(l.Month.Year, l.Month.Month, day, 0, 0, 0, 0, time.UTC)),
				InMonth: true,
				Today:   isToday(day),
				Band:    bands[w],
			}
			if opts.ShowTitles && len(l.Days[day]) > 0 {
				cell.Events = append([]Event(nil), l.Days[day]...)
			}
			week.Cells[i] = cell
		}
		v.Weeks = append(v.Weeks, week)
	}
	return v
}

// Build runs the whole pipeline from a raw event list.
func Build(events []Event, month MonthContext, opts Options, today time.Time) View {
	return Project(BuildLayout(IndexEvents(events), month, opts.WeekStart), opts, today)
}
