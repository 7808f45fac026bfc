package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/acm-pccoer/events-site/internal/catalog"
)

// RequireMethod validates that the request uses the specified HTTP method
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method && !(method == http.MethodGet && r.Method == http.MethodHead) {
		w.Header().Set("Allow", method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// writeJSON encodes v with the given status and logs encoding failures
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding JSON response", "error", err)
	}
}

// writeJSONError writes {"error": msg}
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// catalogETag derives a strong ETag from the catalog content
func catalogETag(c *catalog.Catalog) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal catalog: %w", err)
	}
	sum := blake2b.Sum256(data)
	return `"` + hex.EncodeToString(sum[:16]) + `"`, nil
}

// notModified sets the ETag header and reports whether the client already
// holds this version
func notModified(w http.ResponseWriter, r *http.Request, etag string) bool {
	if etag == "" {
		return false
	}
	w.Header().Set("ETag", etag)
	for _, candidate := range strings.Split(r.Header.Get("If-None-Match"), ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == etag || candidate == "*" {
			w.WriteHeader(http.StatusNotModified)
			return true
		}
	}
	return false
}

// ParseEventTimes converts the catalog's display strings ("Oct 15, 2024",
// "9:00 AM - 5:00 PM") into a start and end. When the time range cannot be
// read the event is treated as all-day and allDay is true.
func ParseEventTimes(date, timeRange string, loc *time.Location) (start, end time.Time, allDay bool, err error) {
	day, err := time.ParseInLocation(LayoutDisplayDate, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("invalid event date %q: %w", date, err)
	}

	parts := strings.Split(timeRange, "-")
	if len(parts) != 2 {
		return day, day.AddDate(0, 0, 1), true, nil
	}
	from, err1 := time.Parse(LayoutDisplayTime, strings.TrimSpace(parts[0]))
	to, err2 := time.Parse(LayoutDisplayTime, strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return day, day.AddDate(0, 0, 1), true, nil
	}

	start = time.Date(day.Year(), day.Month(), day.Day(), from.Hour(), from.Minute(), 0, 0, loc)
	end = time.Date(day.Year(), day.Month(), day.Day(), to.Hour(), to.Minute(), 0, 0, loc)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, false, nil
}
