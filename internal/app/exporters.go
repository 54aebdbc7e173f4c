package app

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/klabast/wb-services/holiday-calendar/internal/calendar"
)

var icsEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)

// escapeText escapes a TEXT value (RFC 5545, 3.3.11)
func escapeText(s string) string {
	return icsEscaper.Replace(s)
}

// holidayUID returns a UID that stays stable across exports. The title hash
// keeps holidays sharing a date apart.
func holidayUID(country string, e calendar.Event) string {
	h := fnv.New32a()
	h.Write([]byte(e.Title))
	return fmt.Sprintf("%s-%s-%08x@%s", e.Date, strings.ToLower(country), h.Sum32(), ICSDomain)
}

// writeVEvent writes an all-day VEVENT; it returns the event date or false
// if the event date is invalid
func writeVEvent(w io.Writer, country string, e calendar.Event, stamp string) (time.Time, bool) {
	eventDate, err := calendar.ParseDate(e.Date)
	if err != nil {
		return time.Time{}, false
	}
	eventDate = time.Date(eventDate.Year(), eventDate.Month(), eventDate.Day(), 0, 0, 0, 0, time.UTC)

	fmt.Fprintln(w, "BEGIN:VEVENT")
	fmt.Fprintf(w, "UID:%s\n", holidayUID(country, e))
	fmt.Fprintf(w, "DTSTAMP:%s\n", stamp)
	fmt.Fprintf(w, "DTSTART;VALUE=DATE:%s\n", eventDate.Format("20060102"))
	fmt.Fprintf(w, "DTEND;VALUE=DATE:%s\n", eventDate.AddDate(0, 0, 1).Format("20060102"))
	fmt.Fprintf(w, "SUMMARY:%s\n", escapeText(e.Title))
	fmt.Fprintf(w, "DESCRIPTION:%s\n", escapeText(fmt.Sprintf("Public holiday in %s", CountryName(country))))
	fmt.Fprintln(w, "TRANSP:TRANSPARENT")
	return eventDate, true
}

// GenerateICS generates an iCalendar (ICS) file with an optional reminder
// Query params: reminder (HH:MM), reminderDays (days before, default 1)
func GenerateICS(w http.ResponseWriter, r *http.Request, country string, year int, events []calendar.Event) {
	reminder := r.URL.Query().Get("reminder")
	reminderDays, err := strconv.Atoi(r.URL.Query().Get("reminderDays"))
	if err != nil || reminderDays < 0 {
		reminderDays = 1
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=holidays_%s_%d.ics", country, year))

	fmt.Fprintln(w, "BEGIN:VCALENDAR")
	fmt.Fprintln(w, "VERSION:2.0")
	fmt.Fprintf(w, "PRODID:%s\n", ICSProductID)
	fmt.Fprintf(w, "X-WR-CALNAME:%s\n", escapeText(fmt.Sprintf("Holidays %s %d", CountryName(country), year)))
	fmt.Fprintln(w, "CALSCALE:GREGORIAN")

	stamp := time.Now().UTC().Format("20060102T150405Z")
	for _, event := range events {
		eventDate, ok := writeVEvent(w, country, event, stamp)
		if !ok {
			continue
		}
		if reminder != "" {
			AddAlarm(w, eventDate, reminderDays, reminder, event.Title)
		}
		fmt.Fprintln(w, "END:VEVENT")
	}

	fmt.Fprintln(w, "END:VCALENDAR")
}

// AddAlarm adds an alarm/reminder to an ICS event
func AddAlarm(w io.Writer, eventDate time.Time, daysBefore int, alarmTime string, description string) {
	parts := strings.Split(alarmTime, ":")
	if len(parts) != 2 {
		return
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return
	}

	// The event starts at 00:00 on eventDate; the alarm fires at alarmTime
	// daysBefore days earlier.
	alarmDate := eventDate.AddDate(0, 0, -daysBefore)
	alarmDateTime := time.Date(alarmDate.Year(), alarmDate.Month(), alarmDate.Day(), hour, minute, 0, 0, time.UTC)
	eventStart := time.Date(eventDate.Year(), eventDate.Month(), eventDate.Day(), 0, 0, 0, 0, time.UTC)

	totalMinutes := int(alarmDateTime.Sub(eventStart).Minutes())
	sign := ""
	if totalMinutes < 0 {
		sign = "-"
		totalMinutes = -totalMinutes
	}
	days := totalMinutes / (24 * 60)
	hours := totalMinutes % (24 * 60) / 60
	minutes := totalMinutes % 60

	fmt.Fprintln(w, "BEGIN:VALARM")
	fmt.Fprintln(w, "ACTION:DISPLAY")
	fmt.Fprintf(w, "DESCRIPTION:Reminder: %s\n", escapeText(description))
	fmt.Fprintf(w, "TRIGGER:%sP%dDT%dH%dM\n", sign, days, hours, minutes)
	fmt.Fprintln(w, "END:VALARM")
}

// GenerateCSV generates a CSV file with the holidays
func GenerateCSV(w http.ResponseWriter, country string, year int, events []calendar.Event) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=holidays_%s_%d.csv", country, year))

	cw := csv.NewWriter(w)
	records := [][]string{{"date", "country", "title"}}
	for _, event := range events {
		records = append(records, []string{event.Date, country, event.Title})
	}
	if err := cw.WriteAll(records); err != nil {
		log.Printf("Error writing CSV export: %v", err)
	}
}

// GenerateJSON generates a JSON file with the holidays
func GenerateJSON(w http.ResponseWriter, country string, year int, events []calendar.Event) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=holidays_%s_%d.json", country, year))

	data := map[string]any{
		"country": country,
		"year":    year,
		"events":  events,
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON export: %v", err)
		http.Error(w, ErrFailedToGenerateJSON, http.StatusInternalServerError)
	}
}

// GenerateSubscriptionICS generates an iCalendar (ICS) subscription feed
// Unlike GenerateICS, this is designed for calendar subscriptions:
// - No Content-Disposition attachment header (inline content)
// - No VALARM blocks (most calendar apps ignore them in subscriptions)
// - Includes METHOD:PUBLISH and refresh interval headers
func GenerateSubscriptionICS(w http.ResponseWriter, r *http.Request, country string, events []calendar.Event) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")

	fmt.Fprintln(w, "BEGIN:VCALENDAR")
	fmt.Fprintln(w, "VERSION:2.0")
	fmt.Fprintf(w, "PRODID:%s\n", ICSProductID)
	fmt.Fprintln(w, "METHOD:PUBLISH")
	fmt.Fprintf(w, "X-WR-CALNAME:%s\n", escapeText("Holidays "+CountryName(country)))
	fmt.Fprintln(w, "CALSCALE:GREGORIAN")
	fmt.Fprintln(w, "X-PUBLISHED-TTL:P1D")

	stamp := time.Now().UTC().Format("20060102T150405Z")
	for _, event := range events {
		if _, ok := writeVEvent(w, country, event, stamp); !ok {
			continue
		}
		fmt.Fprintln(w, "END:VEVENT")
	}

	fmt.Fprintln(w, "END:VCALENDAR")
}
