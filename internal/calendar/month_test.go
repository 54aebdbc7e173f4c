package calendar

import (
	"testing"
	"time"
)

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2000, time.February, 29},
		{1900, time.February, 28},
		{2024, time.March, 31},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tt := range tests {
		if got := DaysIn(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysIn(%d, %s): expected %d, got %d", tt.year, tt.month, tt.want, got)
		}
	}
}

func TestNavigation(t *testing.T) {
	for year := 1999; year <= 2001; year++ {
		for month := time.January; month <= time.December; month++ {
			m := MonthContext{Month: month, Year: year}

			if got := m.Advance().Retreat(); got != m {
				t.Errorf("%v: advance then retreat gave %v", m, got)
			}
			if got := m.Retreat().Advance(); got != m {
				t.Errorf("%v: retreat then advance gave %v", m, got)
			}

			n := m
			for i := 0; i < 12; i++ {
				n = n.Advance()
			}
			if n.Month != m.Month || n.Year != m.Year+1 {
				t.Errorf("%v: 12 advances gave %v", m, n)
			}
		}
	}
}

func TestNavigationWrap(t *testing.T) {
	dec := MonthContext{Month: time.December, Year: 2024}
	if got := dec.Advance(); got != (MonthContext{Month: time.January, Year: 2025}) {
		t.Errorf("Expected January 2025, got %v", got)
	}
	jan := MonthContext{Month: time.January, Year: 2024}
	if got := jan.Retreat(); got != (MonthContext{Month: time.December, Year: 2023}) {
		t.Errorf("Expected December 2023, got %v", got)
	}
	// Years are unbounded in both directions.
	if got := (MonthContext{Month: time.January, Year: 0}).Retreat(); got.Year != -1 {
		t.Errorf("Expected year -1, got %d", got.Year)
	}
}

func TestNewMonthContext(t *testing.T) {
	if _, err := NewMonthContext(2024, 13); err == nil {
		t.Error("Expected error for month 13")
	}
	if _, err := NewMonthContext(2024, 0); err == nil {
		t.Error("Expected error for month 0")
	}
	m, err := NewMonthContext(2024, time.March)
	if err != nil {
		t.Fatalf("NewMonthContext() failed: %v", err)
	}
	if m.Label() != "3/2024" {
		t.Errorf("Expected label 3/2024, got %s", m.Label())
	}
}

func TestWeekdayOffset(t *testing.T) {
	march := MonthContext{Month: time.March, Year: 2024} // starts on a Friday
	if got := WeekdayOffset(march, time.Sunday); got != 5 {
		t.Errorf("Sunday start: expected 5, got %d", got)
	}
	if got := WeekdayOffset(march, time.Monday); got != 4 {
		t.Errorf("Monday start: expected 4, got %d", got)
	}

	feb := MonthContext{Month: time.February, Year: 2015} // starts on a Sunday
	if got := WeekdayOffset(feb, time.Sunday); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
	if got := WeekdayOffset(feb, time.Monday); got != 6 {
		t.Errorf("Expected 6, got %d", got)
	}
}

func TestWeekdays(t *testing.T) {
	days := Weekdays(time.Monday)
	if days[0] != time.Monday || days[6] != time.Sunday {
		t.Errorf("Expected Monday..Sunday, got %v", days)
	}
}
