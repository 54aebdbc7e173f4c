package app

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/klabast/wb-services/holiday-calendar/internal/calendar"
)

// Server serves the calendar over HTTP. Every request builds its view from
// scratch; the only shared state is the holiday cache.
type Server struct {
	Source         *CachedSource
	Auth           *Authenticator
	Clock          func() time.Time
	DefaultCountry string
	WeekStart      time.Weekday
	FetchTimeout   time.Duration
}

// Register installs the routes on mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/config", s.GetConfig)
	mux.HandleFunc("/api/calendar", s.HandleCalendar)
	mux.HandleFunc("/api/holidays", s.HandleHolidays)
	mux.HandleFunc("/api/holidays/refresh", s.Auth.Require(s.HandleRefresh))
	mux.HandleFunc("/api/download", s.HandleDownload)
	mux.HandleFunc("/api/subscribe/", s.HandleSubscribe)
}

func (s *Server) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

func (s *Server) fetch(ctx context.Context, country string, year int) []calendar.Event {
	if s.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.FetchTimeout)
		defer cancel()
	}
	return FetchHolidays(ctx, s.Source, country, year)
}

// country returns the requested country, falling back to the default
func (s *Server) country(r *http.Request) (string, bool) {
	code := r.URL.Query().Get("country")
	if code == "" {
		code = s.DefaultCountry
	}
	return NormalizeCountry(code)
}

// GetConfig returns the country selector and the server defaults
func (s *Server) GetConfig(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	writeJSON(w, ConfigResponse{
		Countries:      Countries(),
		DefaultCountry: s.DefaultCountry,
		CurrentYear:    now.Year(),
		CurrentMonth:   now.Month(),
		WeekStart:      s.WeekStart,
		Source:         s.Source.Name,
	})
}

// HandleCalendar returns the month view
// Query params: country, year, month (1-12), holidayYear, showHolidays, weekStart
func (s *Server) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	now := s.now()

	country, ok := s.country(r)
	if !ok {
		http.Error(w, ErrInvalidCountry, http.StatusBadRequest)
		return
	}
	year, err := queryYear(r, "year", now.Year())
	if err != nil {
		http.Error(w, ErrInvalidYear, http.StatusBadRequest)
		return
	}
	monthNum, err := queryInt(r, "month", int(now.Month()))
	if err != nil {
		http.Error(w, ErrInvalidMonth, http.StatusBadRequest)
		return
	}
	month, err := calendar.NewMonthContext(year, time.Month(monthNum))
	if err != nil {
		http.Error(w, ErrInvalidMonth, http.StatusBadRequest)
		return
	}
	holidayYear, err := queryYear(r, "holidayYear", year)
	if err != nil {
		http.Error(w, ErrInvalidYear, http.StatusBadRequest)
		return
	}
	show, err := queryBool(r, "showHolidays", true)
	if err != nil {
		http.Error(w, "Invalid showHolidays", http.StatusBadRequest)
		return
	}
	weekStart := s.WeekStart
	if ws := r.URL.Query().Get("weekStart"); ws != "" {
		if weekStart, err = ParseWeekStart(ws); err != nil {
			http.Error(w, ErrInvalidWeekStart, http.StatusBadRequest)
			return
		}
	}

	opts := calendar.OptionsFor(show)
	opts.WeekStart = weekStart
	events := s.fetch(r.Context(), country, holidayYear)

	writeJSON(w, CalendarResponse{
		Country:     country,
		CountryName: CountryName(country),
		HolidayYear: holidayYear,
		ToggleLabel: calendar.ToggleLabel(show),
		Prev:        month.Retreat(),
		Next:        month.Advance(),
		View:        calendar.Build(events, month, opts, now),
	})
}

// HandleHolidays returns the raw holiday list for a country and year
func (s *Server) HandleHolidays(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	country, ok := s.country(r)
	if !ok {
		http.Error(w, ErrInvalidCountry, http.StatusBadRequest)
		return
	}
	year, err := queryYear(r, "year", s.now().Year())
	if err != nil {
		http.Error(w, ErrInvalidYear, http.StatusBadRequest)
		return
	}
	writeJSON(w, s.fetch(r.Context(), country, year))
}

// HandleRefresh drops cached holidays. With country and year set only that
// entry is dropped and fetched again, otherwise the whole cache is purged.
func (s *Server) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if r.URL.Query().Get("country") == "" {
		if err := s.Source.Store.Purge(); err != nil {
			log.Printf("Error purging holiday cache: %v", err)
			http.Error(w, ErrFailedToRefresh, http.StatusInternalServerError)
			return
		}
		log.Printf("✅ Holiday cache purged")
		writeJSON(w, map[string]string{"status": "ok"})
		return
	}

	country, ok := s.country(r)
	if !ok {
		http.Error(w, ErrInvalidCountry, http.StatusBadRequest)
		return
	}
	year, err := queryYear(r, "year", s.now().Year())
	if err != nil {
		http.Error(w, ErrInvalidYear, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if s.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.FetchTimeout)
		defer cancel()
	}
	events, err := s.Source.Refresh(ctx, country, year)
	if err != nil {
		log.Printf("Error refreshing holidays for %s %d: %v", country, year, err)
		http.Error(w, ErrFailedToRefresh, http.StatusBadGateway)
		return
	}
	writeJSON(w, map[string]any{"status": "ok", "count": len(events)})
}

// HandleDownload handles export downloads in ICS, CSV or JSON format
func (s *Server) HandleDownload(w http.ResponseWriter, r *http.Request) {
	country, ok := s.country(r)
	if !ok {
		http.Error(w, ErrInvalidCountry, http.StatusBadRequest)
		return
	}
	year, err := queryYear(r, "year", s.now().Year())
	if err != nil {
		http.Error(w, ErrInvalidYear, http.StatusBadRequest)
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "ics", "csv", "json":
	default:
		http.Error(w, ErrInvalidFormat, http.StatusBadRequest)
		return
	}

	events := s.fetch(r.Context(), country, year)
	switch format {
	case "ics":
		GenerateICS(w, r, country, year, events)
	case "csv":
		GenerateCSV(w, country, year, events)
	case "json":
		GenerateJSON(w, country, year, events)
	}
}

// HandleSubscribe handles calendar subscription requests
// URL: /api/subscribe/{country}
// Returns an ICS feed with the holidays of the previous, current and next year
func (s *Server) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSuffix(r.URL.Path[len("/api/subscribe/"):], ".ics")
	country, ok := NormalizeCountry(code)
	if !ok {
		http.Error(w, ErrInvalidCountry, http.StatusBadRequest)
		return
	}

	currentYear := s.now().Year()
	var events []calendar.Event
	for year := currentYear - 1; year <= currentYear+1; year++ {
		events = append(events, s.fetch(r.Context(), country, year)...)
	}
	SortEventsByDate(events)

	GenerateSubscriptionICS(w, r, country, events)
}
