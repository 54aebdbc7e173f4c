package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cloudeng.io/errors"
	"github.com/klabast/wb-services/holiday-calendar/internal/calendar"
	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/ca"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/us"
)

// HolidaySource supplies the public holidays of a country for a year.
type HolidaySource interface {
	Holidays(ctx context.Context, country string, year int) ([]calendar.Event, error)
}

// FetchHolidays returns the holidays from source, or an empty list if the
// fetch fails. The result is never nil.
func FetchHolidays(ctx context.Context, source HolidaySource, country string, year int) []calendar.Event {
	events, err := source.Holidays(ctx, country, year)
	if err != nil {
		log.Printf("Failed to fetch holidays for %s %d: %v", country, year, err)
		return []calendar.Event{}
	}
	if events == nil {
		return []calendar.Event{}
	}
	return events
}

// NagerClient fetches holidays from the Nager.Date public holiday API.
type NagerClient struct {
	BaseURL string
	Client  *http.Client
}

// NewNagerClient returns a client for the API at baseURL.
func NewNagerClient(baseURL string) *NagerClient {
	return &NagerClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Holidays implements HolidaySource.
func (c *NagerClient) Holidays(ctx context.Context, country string, year int) ([]calendar.Event, error) {
	u := fmt.Sprintf("%s/PublicHolidays/%d/%s", strings.TrimRight(c.BaseURL, "/"), year, url.PathEscape(country))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("Error closing response body: %v", err)
		}
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent:
		return []calendar.Event{}, nil
	default:
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	events, err := DecodeNagerHolidays(resp.Body)
	if events == nil {
		return nil, err
	}
	if err != nil {
		log.Printf("⚠️  Skipped holidays for %s %d: %v", country, year, err)
	}
	return events, nil
}

// DecodeNagerHolidays decodes a PublicHolidays response. Entries with an
// invalid date are left out and reported together in the returned error; the
// events slice is nil only if the payload itself could not be decoded.
func DecodeNagerHolidays(r io.Reader) ([]calendar.Event, error) {
	var payload []NagerHoliday
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	errs := &errors.M{}
	events := make([]calendar.Event, 0, len(payload))
	for i, h := range payload {
		if _, err := calendar.ParseDate(h.Date); err != nil {
			errs.Append(fmt.Errorf("entry %d (%s): %w", i, h.LocalName, err))
			continue
		}
		title := h.LocalName
		if title == "" {
			title = h.Name
		}
		events = append(events, calendar.Event{Date: h.Date, Title: title})
	}
	return events, errs.Err()
}

// BuiltinHolidays computes national holidays locally, without network access.
type BuiltinHolidays struct{}

var builtinHolidays = map[string][]*cal.Holiday{
	"US": us.Holidays,
	"GB": gb.Holidays,
	"DE": de.Holidays,
	"CA": ca.Holidays,
	"FR": fr.Holidays,
}

// Holidays implements HolidaySource. Countries without a builtin list
// produce an error.
func (BuiltinHolidays) Holidays(ctx context.Context, country string, year int) ([]calendar.Event, error) {
	list, ok := builtinHolidays[country]
	if !ok {
		return nil, fmt.Errorf("no builtin holidays for %q", country)
	}
	events := make([]calendar.Event, 0, len(list))
	for _, h := range list {
		actual, _ := h.Calc(year)
		if actual.IsZero() {
			continue
		}
		events = append(events, calendar.Event{
			Date:  actual.Format(calendar.DateLayout),
			Title: h.Name,
		})
	}
	SortEventsByDate(events)
	return events, nil
}
