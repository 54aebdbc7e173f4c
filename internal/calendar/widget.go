package calendar

import "time"

// Widget holds the navigation state of a month calendar and rebuilds its View
// after every change. It is meant to be owned by a single goroutine.
type Widget struct {
	clock        func() time.Time
	month        MonthContext
	showHolidays bool
	weekStart    time.Weekday
	index        EventsByDate
	view         View
}

// WidgetOption configures a Widget.
type WidgetOption func(*Widget)

// WithWeekStart sets the first column of the grid.
func WithWeekStart(d time.Weekday) WidgetOption {
	return func(w *Widget) {
		w.weekStart = d
	}
}

// WithShowHolidays sets the initial state of the holiday toggle.
func WithShowHolidays(show bool) WidgetOption {
	return func(w *Widget) {
		w.showHolidays = show
	}
}

// WithMonth sets the initial month instead of the clock's current month.
func WithMonth(m MonthContext) WidgetOption {
	return func(w *Widget) {
		w.month = m
	}
}

// NewWidget returns a Widget showing the current month of clock with
// holidays shown and no events.
func NewWidget(clock func() time.Time, opts ...WidgetOption) *Widget {
	if clock == nil {
		clock = time.Now
	}
	w := &Widget{
		clock:        clock,
		month:        ThisMonth(clock()),
		showHolidays: true,
		weekStart:    time.Sunday,
		index:        EventsByDate{},
	}
	for _, opt := range opts {
		opt(w)
	}
	w.rebuild()
	return w
}

// SetEvents replaces the event list.
func (w *Widget) SetEvents(events []Event) {
	w.index = IndexEvents(events)
	w.rebuild()
}

// Advance moves to the next month.
func (w *Widget) Advance() {
	w.month = w.month.Advance()
	w.rebuild()
}

// Retreat moves to the previous month.
func (w *Widget) Retreat() {
	w.month = w.month.Retreat()
	w.rebuild()
}

// ToggleHolidays flips between showing holiday titles with only the weeks
// that contain holidays, and showing every week without titles.
func (w *Widget) ToggleHolidays() {
	w.showHolidays = !w.showHolidays
	w.rebuild()
}

// Month returns the displayed month.
func (w *Widget) Month() MonthContext {
	return w.month
}

// ShowHolidays returns the state of the holiday toggle.
func (w *Widget) ShowHolidays() bool {
	return w.showHolidays
}

// ToggleLabel returns the caption for the toggle button.
func (w *Widget) ToggleLabel() string {
	return ToggleLabel(w.showHolidays)
}

// ToggleLabel returns the caption of a toggle button in the given state.
func ToggleLabel(showHolidays bool) string {
	if showHolidays {
		return "Hide Holidays"
	}
	return "Show Holidays"
}

// View returns the current projection.
func (w *Widget) View() View {
	return w.view
}

func (w *Widget) options() Options {
	opts := OptionsFor(w.showHolidays)
	opts.WeekStart = w.weekStart
	return opts
}

func (w *Widget) rebuild() {
	l := BuildLayout(w.index, w.month, w.weekStart)
	w.view = Project(l, w.options(), w.clock())
}
