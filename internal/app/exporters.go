package app

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/acm-pccoer/events-site/internal/catalog"
	"github.com/acm-pccoer/events-site/internal/timeline"
)

// eventUID is stable across exports so calendar apps update instead of
// duplicating events.
func eventUID(col catalog.Collection, e catalog.EventRecord) string {
	name := fmt.Sprintf("https://%s/%s/%d/%s", ICSDomain, col, e.ID, e.Date)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String() + "@" + ICSDomain
}

// calendarProps lists the VCALENDAR properties in output order. A feed
// calendar carries METHOD:PUBLISH and a refresh interval so calendar apps
// poll it.
func calendarProps(name string, feed bool) [][2]string {
	props := [][2]string{
		{ical.PropVersion, "2.0"},
		{ical.PropProductID, ICSProductID},
		{ical.PropCalendarScale, "GREGORIAN"},
		{"X-WR-CALNAME", name},
	}
	if feed {
		props = append(props, [2]string{ical.PropMethod, "PUBLISH"}, [2]string{"X-PUBLISHED-TTL", "PT1H"})
	}
	return props
}

var icsTextEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)

// emptyCalendar renders a VCALENDAR without components. The ical encoder
// rejects those, but an empty selection is still a valid calendar.
func emptyCalendar(props [][2]string) []byte {
	var buf bytes.Buffer
	buf.WriteString("BEGIN:VCALENDAR\r\n")
	for _, p := range props {
		buf.WriteString(p[0] + ":" + icsTextEscaper.Replace(p[1]) + "\r\n")
	}
	buf.WriteString("END:VCALENDAR\r\n")
	return buf.Bytes()
}

// toVEvent converts a catalog record. It returns false for records whose
// date cannot be parsed; those are skipped.
func toVEvent(col catalog.Collection, e catalog.EventRecord, loc *time.Location, now time.Time) (*ical.Component, bool) {
	start, end, allDay, err := ParseEventTimes(e.Date, e.Time, loc)
	if err != nil {
		slog.Debug("Skipping event with unparseable date", "id", e.ID, "date", e.Date, "error", err)
		return nil, false
	}

	ev := ical.NewComponent(ical.CompEvent)
	ev.Props.SetText(ical.PropUID, eventUID(col, e))
	ev.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	if allDay {
		ev.Props.SetDate(ical.PropDateTimeStart, start)
		ev.Props.SetDate(ical.PropDateTimeEnd, end)
	} else {
		ev.Props.SetDateTime(ical.PropDateTimeStart, start.UTC())
		ev.Props.SetDateTime(ical.PropDateTimeEnd, end.UTC())
	}
	ev.Props.SetText(ical.PropSummary, e.Title)
	if e.Description != "" {
		ev.Props.SetText(ical.PropDescription, e.Description)
	}
	if e.Location != "" {
		ev.Props.SetText(ical.PropLocation, e.Location)
	}
	if e.Category != "" {
		ev.Props.SetText(ical.PropCategories, e.Category)
	}
	if link := e.RegistrationLink; link != "" {
		ev.Props.SetText(ical.PropURL, link)
	}
	return ev, true
}

// BuildICS renders events as an iCalendar document. Events whose date
// cannot be parsed are left out; a selection without events still yields a
// valid, empty calendar.
func BuildICS(col catalog.Collection, year string, events []catalog.EventRecord, loc *time.Location, feed bool) ([]byte, error) {
	name := fmt.Sprintf("ACMxPCCOER %s events (%s)", col, year)
	if feed {
		name = "ACMxPCCOER Events"
	}
	props := calendarProps(name, feed)

	cal := ical.NewCalendar()
	for _, p := range props {
		cal.Props.SetText(p[0], p[1])
	}

	now := time.Now()
	for _, e := range events {
		if ev, ok := toVEvent(col, e, loc, now); ok {
			cal.Children = append(cal.Children, ev)
		}
	}
	if len(cal.Children) == 0 {
		return emptyCalendar(props), nil
	}

	// Encode fully before anything is written so an encoder error can
	// still become a 500.
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateICS writes an iCalendar download of events
func GenerateICS(w http.ResponseWriter, col catalog.Collection, year string, events []catalog.EventRecord, loc *time.Location) {
	data, err := BuildICS(col, year, events, loc, false)
	if err != nil {
		slog.Error("Error encoding ICS export", "error", err)
		http.Error(w, ErrFailedToGenerateICS, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_%s_%s.ics", FilePrefix, col, year))
	if _, err := w.Write(data); err != nil {
		slog.Error("Error writing ICS export", "error", err)
	}
}

// WriteCSV writes events as CSV with a header row
func WriteCSV(w io.Writer, events []catalog.EventRecord) error {
	cw := csv.NewWriter(w)
	rows := [][]string{{"id", "title", "date", "year", "time", "location", "category", "attendees", "speakers", "link"}}
	for _, e := range events {
		link := e.RegistrationLink
		if link == "" {
			link = e.DetailsLink
		}
		rows = append(rows, []string{
			strconv.Itoa(e.ID), e.Title, e.Date, e.Year, e.Time, e.Location, e.Category,
			optionalInt(e.Attendees), optionalInt(e.Speakers), link,
		})
	}
	return cw.WriteAll(rows)
}

// GenerateCSV writes a CSV download of events
func GenerateCSV(w http.ResponseWriter, col catalog.Collection, year string, events []catalog.EventRecord) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_%s_%s.csv", FilePrefix, col, year))

	if err := WriteCSV(w, events); err != nil {
		slog.Error("Error writing CSV export", "error", err)
	}
}

func optionalInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

// WriteJSON writes events wrapped with the listing they came from
func WriteJSON(w io.Writer, col catalog.Collection, year string, events []catalog.EventRecord) error {
	data := map[string]interface{}{
		"tab":    col,
		"year":   year,
		"events": events,
	}
	return json.NewEncoder(w).Encode(data)
}

// GenerateJSON writes a JSON download of events
func GenerateJSON(w http.ResponseWriter, col catalog.Collection, year string, events []catalog.EventRecord) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_%s_%s.json", FilePrefix, col, year))

	if err := WriteJSON(w, col, year, events); err != nil {
		slog.Error("Error encoding JSON export", "error", err)
		http.Error(w, ErrFailedToGenerateJSON, http.StatusInternalServerError)
	}
}

// GenerateSubscriptionICS writes an iCalendar subscription feed.
// Unlike GenerateICS it is served inline so calendar apps can subscribe.
func GenerateSubscriptionICS(w http.ResponseWriter, events []catalog.EventRecord, loc *time.Location) {
	data, err := BuildICS(catalog.Upcoming, timeline.All, events, loc, true)
	if err != nil {
		slog.Error("Error encoding ICS feed", "error", err)
		http.Error(w, ErrFailedToGenerateICS, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	if _, err := w.Write(data); err != nil {
		slog.Error("Error writing ICS feed", "error", err)
	}
}
