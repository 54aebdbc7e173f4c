package calendar

import (
	"time"
)

// DayEventGroups maps a day of the month to the events on that day.
type DayEventGroups map[int][]Event

// Layout describes how a month is laid out in week rows.
type Layout struct {
	Month              MonthContext
	WeekStart          time.Weekday
	DaysInMonth        int
	FirstWeekdayOffset int
	TotalWeeks         int
	Days               DayEventGroups
}

// BuildLayout computes the grid of month for a week starting on weekStart and
// groups the indexed events that fall inside it by day of month.
func BuildLayout(index EventsByDate, month MonthContext, weekStart time.Weekday) Layout {
	l := Layout{
		Month:              month,
		WeekStart:          weekStart,
		DaysInMonth:        DaysIn(month.Year, month.Month),
		FirstWeekdayOffset: WeekdayOffset(month, weekStart),
		Days:               DayEventGroups{},
	}
	totalCells := l.FirstWeekdayOffset + l.DaysInMonth
	l.TotalWeeks = (totalCells + 6) / 7

	for _, key := range index.Keys() {
		t, err := time.Parse(DateLayout, string(key))
		if err != nil || !month.Contains(t) {
			continue
		}
		l.Days[t.Day()] = append(l.Days[t.Day()], index[key])
	}
	return l
}

// DayNumber returns the day of month shown in the cell at index, counted from
// the first cell of the first week. The result may be <= 0 or greater than
// DaysInMonth for cells outside the month.
func (l Layout) DayNumber(index int) int {
	return index - l.FirstWeekdayOffset + 1
}

// InMonth reports whether day is a day of the month.
func (l Layout) InMonth(day int) bool {
	return day >= 1 && day <= l.DaysInMonth
}

// WeekEventCount returns the number of events on the seven days of week w.
func (l Layout) WeekEventCount(w int) int {
	start := l.DayNumber(w * 7)
	n := 0
	for d := start; d < start+7; d++ {
		n += len(l.Days[d])
	}
	return n
}

// Bands classifies every week of the layout.
func (l Layout) Bands() []Band {
	bands := make([]Band, l.TotalWeeks)
	for w := range bands {
		bands[w] = Classify(l.WeekEventCount(w))
	}
	return bands
}

// WeekHasEvents reports whether any in-month day of week w has an event.
func (l Layout) WeekHasEvents(w int) bool {
	for i := w * 7; i < w*7+7; i++ {
		day := l.DayNumber(i)
		if l.InMonth(day) && len(l.Days[day]) > 0 {
			return true
		}
	}
	return false
}

// VisibleWeeks returns the indices of the weeks to render. With
// onlyEventWeeks set, weeks without any event are left out.
func (l Layout) VisibleWeeks(onlyEventWeeks bool) []int {
	weeks := make([]int, 0, l.TotalWeeks)
	for w := 0; w < l.TotalWeeks; w++ {
		if onlyEventWeeks && !l.WeekHasEvents(w) {
			continue
		}
		weeks = append(weeks, w)
	}
	return weeks
}
