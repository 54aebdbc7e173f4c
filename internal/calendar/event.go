// Package calendar computes the month view of a holiday calendar: which
// events fall on which day, how the days are laid out in week rows, how busy
// each week is and which rows are visible. Everything in this package is pure;
// the current date is always passed in by the caller.
package calendar

import (
	"fmt"
	"sort"
	"time"
)

// DateLayout is the canonical layout of a DateKey.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Event is a single dated occurrence, usually a public holiday.
type Event struct {
	Date  string `json:"date"`
	Title string `json:"title"`
}

// DateKey identifies a calendar day as YYYY-MM-DD.
type DateKey string

// KeyOf returns the DateKey of the calendar date of t in t's own location.
func KeyOf(t time.Time) DateKey {
	return DateKey(t.Format(DateLayout))
}

// ParseDate parses a date, with or without a time-of-day part. The returned
// time keeps the calendar date as written.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// Key returns the DateKey of the event's date.
func (e Event) Key() (DateKey, error) {
	t, err := ParseDate(e.Date)
	if err != nil {
		return "", err
	}
	return KeyOf(t), nil
}

// EventsByDate holds at most one event per calendar day.
type EventsByDate map[DateKey]Event

// IndexEvents folds events into an EventsByDate. A later event overwrites an
// earlier one with the same date, so only the last event per day survives.
// Events with an unparseable date are skipped.
func IndexEvents(events []Event) EventsByDate {
	index := make(EventsByDate, len(events))
	for _, e := range events {
		key, err := e.Key()
		if err != nil {
			continue
		}
		index[key] = e
	}
	return index
}

// Keys returns the keys of the index in ascending date order.
func (idx EventsByDate) Keys() []DateKey {
	keys := make([]DateKey, 0, len(idx))
	for k := range idx {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}
