package calendar

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"
)

func findCell(v View, day int) (Cell, int, bool) {
	for _, w := range v.Weeks {
		for _, c := range w.Cells {
			if c.InMonth && c.Day == day {
				return c, w.Index, true
			}
		}
	}
	return Cell{}, 0, false
}

func TestBuildMarch2024Scenario(t *testing.T) {
	events := []Event{{Date: "2024-03-08", Title: "Holiday A"}}
	today := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)

	v := Build(events, march2024, OptionsFor(true), today)

	if v.DaysInMonth != 31 {
		t.Errorf("Expected 31 days, got %d", v.DaysInMonth)
	}
	if len(v.Weeks) != 1 {
		t.Fatalf("Expected only the holiday week to be visible, got %d weeks", len(v.Weeks))
	}
	cell, week, ok := findCell(v, 8)
	if !ok {
		t.Fatal("Day 8 not rendered")
	}
	if week != 1 {
		t.Errorf("Expected day 8 in week 1, got %d", week)
	}
	if len(cell.Events) != 1 || cell.Events[0].Title != "Holiday A" {
		t.Errorf("Expected Holiday A on day 8, got %v", cell.Events)
	}
	if cell.Band != BandLow {
		t.Errorf("Expected low band, got %s", cell.Band)
	}
	if cell.Date != "2024-03-08" {
		t.Errorf("Expected date 2024-03-08, got %s", cell.Date)
	}

	// Without the toggle all weeks are shown, none with titles.
	v = Build(events, march2024, OptionsFor(false), today)
	if len(v.Weeks) != 6 {
		t.Fatalf("Expected 6 weeks, got %d", len(v.Weeks))
	}
	for _, w := range v.Weeks {
		wantBand := BandNone
		if w.Index == 1 {
			wantBand = BandLow
		}
		if w.Band != wantBand {
			t.Errorf("week %d: expected %s, got %s", w.Index, wantBand, w.Band)
		}
		for _, c := range w.Cells {
			if len(c.Events) != 0 {
				t.Errorf("Expected no titles with holidays hidden, got %v on day %d", c.Events, c.Day)
			}
		}
	}
}

func TestProjectOutOfMonthCells(t *testing.T) {
	events := []Event{{Date: "2024-03-01", Title: "A"}, {Date: "2024-03-02", Title: "B"}}
	v := Build(events, march2024, OptionsFor(true), time.Time{})

	first := v.Weeks[0]
	if first.Band != BandHigh {
		t.Fatalf("Expected first week to be high, got %s", first.Band)
	}
	for i := 0; i < 5; i++ {
		c := first.Cells[i]
		if c.InMonth || c.Day != 0 || c.Band != BandNeutral || len(c.Events) != 0 || c.Date != "" {
			t.Errorf("cell %d: expected blank neutral cell, got %+v", i, c)
		}
	}
	if c := first.Cells[5]; !c.InMonth || c.Day != 1 || c.Band != BandHigh {
		t.Errorf("Expected day 1 in high band, got %+v", c)
	}
}

func TestProjectToday(t *testing.T) {
	tests := []struct {
		name    string
		today   time.Time
		wantDay int
	}{
		{name: "Inside month", today: time.Date(2024, 3, 15, 23, 59, 0, 0, time.Local), wantDay: 15},
		{name: "First day", today: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), wantDay: 1},
		{name: "Next month shown as trailing cells", today: time.Date(2024, 4, 1, 9, 0, 0, 0, time.Local), wantDay: 0},
		{name: "Same day other year", today: time.Date(2023, 3, 15, 9, 0, 0, 0, time.Local), wantDay: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Build(nil, march2024, OptionsFor(false), tt.today)
			marked := 0
			for _, w := range v.Weeks {
				for _, c := range w.Cells {
					if !c.Today {
						continue
					}
					marked++
					if !c.InMonth {
						t.Errorf("Out-of-month cell marked as today")
					}
					if c.Day != tt.wantDay {
						t.Errorf("Expected day %d marked, got %d", tt.wantDay, c.Day)
					}
				}
			}
			wantMarked := 0
			if tt.wantDay != 0 {
				wantMarked = 1
			}
			if marked != wantMarked {
				t.Errorf("Expected %d cells marked today, got %d", wantMarked, marked)
			}
		})
	}
}

func TestProjectSplitOptions(t *testing.T) {
	events := []Event{{Date: "2024-03-08", Title: "Holiday A"}}
	l := BuildLayout(IndexEvents(events), march2024, time.Sunday)

	// Titles without compaction.
	v := Project(l, Options{ShowTitles: true}, time.Time{})
	if len(v.Weeks) != 6 {
		t.Errorf("Expected 6 weeks, got %d", len(v.Weeks))
	}
	if c, _, _ := findCell(v, 8); len(c.Events) != 1 {
		t.Errorf("Expected title on day 8, got %v", c.Events)
	}

	// Compaction without titles.
	v = Project(l, Options{OnlyEventWeeks: true}, time.Time{})
	if len(v.Weeks) != 1 {
		t.Errorf("Expected 1 week, got %d", len(v.Weeks))
	}
	if c, _, _ := findCell(v, 8); len(c.Events) != 0 {
		t.Errorf("Expected no title on day 8, got %v", c.Events)
	}
}

func TestProjectMondayStart(t *testing.T) {
	opts := OptionsFor(false)
	opts.WeekStart = time.Monday
	v := Build(nil, march2024, opts, time.Time{})

	if v.Weekdays[0] != "Monday" || v.Weekdays[6] != "Sunday" {
		t.Errorf("Unexpected weekday header %v", v.Weekdays)
	}
	if v.FirstWeekdayOffset != 4 {
		t.Errorf("Expected offset 4, got %d", v.FirstWeekdayOffset)
	}
	if c := v.Weeks[0].Cells[4]; c.Day != 1 {
		t.Errorf("Expected day 1 in the Friday column, got %d", c.Day)
	}
}

func TestBuildIdempotent(t *testing.T) {
	events := []Event{
		{Date: "2024-03-01", Title: "A"},
		{Date: "2024-03-08", Title: "B"},
		{Date: "2024-03-08", Title: "C"},
		{Date: "2024-03-20", Title: "D"},
	}
	today := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	for _, show := range []bool{true, false} {
		first := Build(events, march2024, OptionsFor(show), today)
		second := Build(events, march2024, OptionsFor(show), today)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("show=%v: repeated builds differ", show)
		}
	}
}

func TestViewJSON(t *testing.T) {
	v := Build([]Event{{Date: "2024-03-08", Title: "Holiday A"}}, march2024, OptionsFor(true), time.Time{})
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	body := string(data)
	for _, want := range []string{`"label":"3/2024"`, `"band":"low"`, `"band":"neutral"`, `"title":"Holiday A"`} {
		if !strings.Contains(body, want) {
			t.Errorf("JSON missing %s: %s", want, body)
		}
	}
}
