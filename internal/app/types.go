package app

import (
	"time"

	"github.com/klabast/wb-services/holiday-calendar/internal/calendar"
)

// NagerHoliday is a single entry of the Nager.Date PublicHolidays response
type NagerHoliday struct {
	Date        string   `json:"date"`
	LocalName   string   `json:"localName"`
	Name        string   `json:"name"`
	CountryCode string   `json:"countryCode"`
	Global      bool     `json:"global"`
	Types       []string `json:"types"`
}

// Country is an entry of the country selector
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CacheEntry is the on-disk representation of a cached holiday list
type CacheEntry struct {
	Country  string            `json:"country"`
	Year     int               `json:"year"`
	Events   []calendar.Event  `json:"events"`
	Metadata map[string]string `json:"metadata"`
}

// CalendarResponse is returned by the calendar endpoint
type CalendarResponse struct {
	Country     string                `json:"country"`
	CountryName string                `json:"countryName"`
	HolidayYear int                   `json:"holidayYear"`
	ToggleLabel string                `json:"toggleLabel"`
	Prev        calendar.MonthContext `json:"prev"`
	Next        calendar.MonthContext `json:"next"`
	View        calendar.View         `json:"view"`
}

// ConfigResponse is returned by the config endpoint
type ConfigResponse struct {
	Countries      []Country    `json:"countries"`
	DefaultCountry string       `json:"defaultCountry"`
	CurrentYear    int          `json:"currentYear"`
	CurrentMonth   time.Month   `json:"currentMonth"`
	WeekStart      time.Weekday `json:"weekStart"`
	Source         string       `json:"source"`
}
