package calendar

import (
	"fmt"
	"time"
)

// MonthContext is the month currently displayed.
type MonthContext struct {
	Month time.Month `json:"month"`
	Year  int        `json:"year"`
}

// ThisMonth returns the MonthContext containing now.
func ThisMonth(now time.Time) MonthContext {
	return MonthContext{Month: now.Month(), Year: now.Year()}
}

// NewMonthContext validates month and returns the corresponding MonthContext.
func NewMonthContext(year int, month time.Month) (MonthContext, error) {
	if month < time.January || month > time.December {
		return MonthContext{}, fmt.Errorf("invalid month: %d", month)
	}
	return MonthContext{Month: month, Year: year}, nil
}

// Advance returns the following month, moving into the next year after December.
func (m MonthContext) Advance() MonthContext {
	if m.Month == time.December {
		return MonthContext{Month: time.January, Year: m.Year + 1}
	}
	return MonthContext{Month: m.Month + 1, Year: m.Year}
}

// Retreat returns the previous month, moving into the previous year before January.
func (m MonthContext) Retreat() MonthContext {
	if m.Month == time.January {
		return MonthContext{Month: time.December, Year: m.Year - 1}
	}
	return MonthContext{Month: m.Month - 1, Year: m.Year}
}

// First returns midnight UTC on the first day of the month.
func (m MonthContext) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether t's calendar date lies in the month.
func (m MonthContext) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// Label returns the header text, e.g. "3/2024".
func (m MonthContext) Label() string {
	return fmt.Sprintf("%d/%d", int(m.Month), m.Year)
}

func (m MonthContext) String() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekdayOffset returns the column, 0..6, of the first day of the month in a
// week that starts on weekStart.
func WeekdayOffset(m MonthContext, weekStart time.Weekday) int {
	return (int(m.First().Weekday()) - int(weekStart) + 7) % 7
}

// Weekdays returns the seven weekdays in column order.
func Weekdays(weekStart time.Weekday) []time.Weekday {
	days := make([]time.Weekday, 7)
	for i := range days {
		days[i] = (weekStart + time.Weekday(i)) % 7
	}
	return days
}
