package calendar

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    DateKey
		wantErr bool
	}{
		{name: "Plain date", in: "2024-03-08", want: "2024-03-08"},
		{name: "RFC3339 UTC", in: "2024-03-08T10:30:00Z", want: "2024-03-08"},
		{name: "RFC3339 late evening with offset", in: "2024-03-08T23:30:00-05:00", want: "2024-03-08"},
		{name: "Local date time", in: "2024-03-08T00:00:01", want: "2024-03-08"},
		{name: "Garbage", in: "8th of March", wantErr: true},
		{name: "Empty", in: "", wantErr: true},
		{name: "Impossible day", in: "2023-02-29", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if KeyOf(got) != tt.want {
				t.Errorf("Expected key %s, got %s", tt.want, KeyOf(got))
			}
		})
	}
}

func TestIndexEventsLastWins(t *testing.T) {
	events := []Event{
		{Date: "2024-03-08", Title: "A"},
		{Date: "2024-03-08", Title: "B"},
	}

	index := IndexEvents(events)
	if len(index) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(index))
	}
	if got := index["2024-03-08"].Title; got != "B" {
		t.Errorf("Expected last event B to win, got %s", got)
	}

	l := BuildLayout(index, MonthContext{Month: time.March, Year: 2024}, time.Sunday)
	day := l.Days[8]
	if len(day) != 1 {
		t.Fatalf("Expected exactly one event on day 8, got %d", len(day))
	}
	if day[0].Title != "B" {
		t.Errorf("Expected event B on day 8, got %s", day[0].Title)
	}
}

func TestIndexEventsTimeOfDayIgnored(t *testing.T) {
	events := []Event{
		{Date: "2024-03-08T09:00:00Z", Title: "Morning"},
		{Date: "2024-03-08", Title: "All day"},
	}
	index := IndexEvents(events)
	if len(index) != 1 {
		t.Fatalf("Expected events on the same day to share a key, got %d keys", len(index))
	}
	if got := index["2024-03-08"].Title; got != "All day" {
		t.Errorf("Expected All day, got %s", got)
	}
}

func TestIndexEventsEmptyAndInvalid(t *testing.T) {
	if got := IndexEvents(nil); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil index, got %v", got)
	}

	index := IndexEvents([]Event{
		{Date: "not a date", Title: "Broken"},
		{Date: "2024-12-25", Title: "Christmas Day"},
	})
	if len(index) != 1 {
		t.Fatalf("Expected invalid event to be dropped, got %d entries", len(index))
	}
	if _, ok := index["2024-12-25"]; !ok {
		t.Error("Expected valid event to be kept")
	}
}

func TestEventsByDateKeysSorted(t *testing.T) {
	index := IndexEvents([]Event{
		{Date: "2024-12-25", Title: "Christmas Day"},
		{Date: "2024-01-01", Title: "New Year's Day"},
		{Date: "2024-07-04", Title: "Independence Day"},
	})
	keys := index.Keys()
	want := []DateKey{"2024-01-01", "2024-07-04", "2024-12-25"}
	if len(keys) != len(want) {
		t.Fatalf("Expected %d keys, got %d", len(want), len(keys))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d]: expected %s, got %s", i, want[i], keys[i])
		}
	}
}
