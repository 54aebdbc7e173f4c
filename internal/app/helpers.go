package app

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strconv"

	"github.com/klabast/wb-services/holiday-calendar/internal/calendar"
)

// RequireMethod validates that the request uses the specified HTTP method
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// SortEventsByDate sorts events by date in ascending order
func SortEventsByDate(events []calendar.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})
}

// queryInt returns the integer query parameter name, or def if it is absent
func queryInt(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

// queryYear returns the year query parameter name, or def if it is absent.
// Years outside MinYear..MaxYear are rejected.
func queryYear(r *http.Request, name string, def int) (int, error) {
	year, err := queryInt(r, name, def)
	if err != nil {
		return 0, err
	}
	if err := ValidateYear(year); err != nil {
		return 0, err
	}
	return year, nil
}

// queryBool returns the boolean query parameter name, or def if it is absent
func queryBool(r *http.Request, name string, def bool) (bool, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	return strconv.ParseBool(s)
}

// writeJSON encodes v as the response body
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}
