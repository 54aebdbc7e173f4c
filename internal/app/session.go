package app

import (
	"context"
	"time"

	"github.com/klabast/wb-services/holiday-calendar/internal/calendar"
)

// Session is an interactive calendar: a widget plus the country and year
// whose holidays it shows. Changing either refetches the holidays and
// replaces the widget's events.
type Session struct {
	source  HolidaySource
	timeout time.Duration
	country string
	year    int
	widget  *calendar.Widget
}

// NewSession fetches the holidays of country for year, or for the current
// year of clock if year is zero.
func NewSession(ctx context.Context, source HolidaySource, country string, year int, timeout time.Duration, clock func() time.Time, opts ...calendar.WidgetOption) *Session {
	if clock == nil {
		clock = time.Now
	}
	if year == 0 {
		year = clock().Year()
	}
	s := &Session{
		source:  source,
		timeout: timeout,
		country: country,
		year:    year,
		widget:  calendar.NewWidget(clock, opts...),
	}
	s.reload(ctx)
	return s
}

// Widget returns the underlying widget for navigation and rendering.
func (s *Session) Widget() *calendar.Widget {
	return s.widget
}

// Country returns the selected country code.
func (s *Session) Country() string {
	return s.country
}

// Year returns the year whose holidays are loaded.
func (s *Session) Year() int {
	return s.year
}

// SetCountry selects a country and reloads its holidays.
func (s *Session) SetCountry(ctx context.Context, country string) {
	s.country = country
	s.reload(ctx)
}

// NextCountry cycles through the country selector.
func (s *Session) NextCountry(ctx context.Context) {
	s.SetCountry(ctx, NextCountry(s.country))
}

// SetYear selects the holiday year and reloads.
func (s *Session) SetYear(ctx context.Context, year int) {
	s.year = year
	s.reload(ctx)
}

func (s *Session) reload(ctx context.Context) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	s.widget.SetEvents(FetchHolidays(ctx, s.source, s.country, s.year))
}
