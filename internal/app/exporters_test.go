package app

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/acm-pccoer/events-site/internal/catalog"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func intPtr(n int) *int { return &n }

func testEvents() []catalog.EventRecord {
	return []catalog.EventRecord{
		{ID: 1, Title: "Tech Innovation Summit", Date: "Oct 15, 2024", Year: "2024", Time: "9:00 AM - 5:00 PM", Location: "Main Auditorium", Category: "Conference"},
		{ID: 2, Title: "Open Day", Date: "Nov 5, 2024", Year: "2024", Location: "Campus", Category: "Meetup"},
	}
}

// icsLine returns the first content line for the named property
func icsLine(body, name string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, name+":") || strings.HasPrefix(line, name+";") {
			return line
		}
	}
	return ""
}

func TestParseEventTimes(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		timeRange string
		wantStart time.Time
		wantEnd   time.Time
		allDay    bool
		wantErr   bool
	}{
		{
			name:      "Timed event",
			date:      "Oct 15, 2024",
			timeRange: "9:00 AM - 5:00 PM",
			wantStart: time.Date(2024, 10, 15, 9, 0, 0, 0, ist),
			wantEnd:   time.Date(2024, 10, 15, 17, 0, 0, 0, ist),
		},
		{
			name:      "Half hour end",
			date:      "Aug 10, 2023",
			timeRange: "10:00 AM - 12:30 PM",
			wantStart: time.Date(2023, 8, 10, 10, 0, 0, 0, ist),
			wantEnd:   time.Date(2023, 8, 10, 12, 30, 0, 0, ist),
		},
		{
			name:      "Ends after midnight",
			date:      "Mar 10, 2025",
			timeRange: "9:00 PM - 1:00 AM",
			wantStart: time.Date(2025, 3, 10, 21, 0, 0, 0, ist),
			wantEnd:   time.Date(2025, 3, 11, 1, 0, 0, 0, ist),
		},
		{
			name:      "Missing time is all-day",
			date:      "Nov 5, 2024",
			wantStart: time.Date(2024, 11, 5, 0, 0, 0, 0, ist),
			wantEnd:   time.Date(2024, 11, 6, 0, 0, 0, 0, ist),
			allDay:    true,
		},
		{
			name:      "Unreadable time is all-day",
			date:      "Nov 5, 2024",
			timeRange: "morning - evening",
			wantStart: time.Date(2024, 11, 5, 0, 0, 0, 0, ist),
			wantEnd:   time.Date(2024, 11, 6, 0, 0, 0, 0, ist),
			allDay:    true,
		},
		{
			name:    "Invalid date",
			date:    "TBA",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, allDay, err := ParseEventTimes(tt.date, tt.timeRange, ist)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !start.Equal(tt.wantStart) || !end.Equal(tt.wantEnd) {
				t.Errorf("Got %v - %v, want %v - %v", start, end, tt.wantStart, tt.wantEnd)
			}
			if allDay != tt.allDay {
				t.Errorf("allDay = %v, want %v", allDay, tt.allDay)
			}
		})
	}
}

func TestGenerateICS(t *testing.T) {
	w := httptest.NewRecorder()
	GenerateICS(w, catalog.Upcoming, "2024", testEvents(), ist)

	resp := w.Result()
	body := w.Body.String()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/calendar") {
		t.Errorf("Expected Content-Type text/calendar, got %s", ct)
	}
	cd := resp.Header.Get("Content-Disposition")
	if !strings.Contains(cd, "attachment") || !strings.Contains(cd, "acm-events_upcoming_2024.ics") {
		t.Errorf("Unexpected Content-Disposition: %s", cd)
	}

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + ICSProductID,
		"BEGIN:VEVENT",
		"END:VEVENT",
		"END:VCALENDAR",
		"SUMMARY:Tech Innovation Summit",
		"SUMMARY:Open Day",
		"LOCATION:Main Auditorium",
	}
	for _, field := range requiredFields {
		if !strings.Contains(body, field) {
			t.Errorf("ICS output missing required field: %s", field)
		}
	}

	if n := strings.Count(body, "BEGIN:VEVENT"); n != 2 {
		t.Errorf("Expected 2 events, got %d", n)
	}

	// 9:00 AM IST is 03:30 UTC
	if line := icsLine(body, "DTSTART"); !strings.HasSuffix(line, ":20241015T033000Z") {
		t.Errorf("Timed event DTSTART = %q", line)
	}

	// The open day has no time and becomes an all-day event
	idx := strings.Index(body, "SUMMARY:Open Day")
	block := body[strings.LastIndex(body[:idx], "BEGIN:VEVENT"):]
	start := icsLine(block, "DTSTART")
	if !strings.Contains(start, "VALUE=DATE") || !strings.HasSuffix(start, ":20241105") {
		t.Errorf("All-day DTSTART = %q", start)
	}
	if end := icsLine(block, "DTEND"); !strings.HasSuffix(end, ":20241106") {
		t.Errorf("All-day event should end on next day, got %q", end)
	}
}

func TestEventUIDStable(t *testing.T) {
	e := testEvents()[0]
	a := eventUID(catalog.Upcoming, e)
	b := eventUID(catalog.Upcoming, e)
	if a != b {
		t.Errorf("UID not stable: %s vs %s", a, b)
	}
	if !strings.HasSuffix(a, "@"+ICSDomain) {
		t.Errorf("UID %s missing domain", a)
	}
	if eventUID(catalog.Past, e) == a {
		t.Error("UID should differ between listings")
	}
}

func TestGenerateICS_InvalidDateSkipped(t *testing.T) {
	events := append(testEvents(), catalog.EventRecord{ID: 9, Title: "Someday", Date: "TBA", Year: "2024"})

	w := httptest.NewRecorder()
	GenerateICS(w, catalog.Upcoming, "all", events, ist)

	body := w.Body.String()
	if strings.Contains(body, "SUMMARY:Someday") {
		t.Error("Event with invalid date should be skipped")
	}
	if n := strings.Count(body, "BEGIN:VEVENT"); n != 2 {
		t.Errorf("Expected 2 valid events, got %d", n)
	}
}

func TestBuildICS_NoEvents(t *testing.T) {
	tests := []struct {
		name     string
		events   []catalog.EventRecord
		feed     bool
		contains []string
	}{
		{
			name:     "Empty selection",
			contains: []string{"X-WR-CALNAME:ACMxPCCOER upcoming events (2024)"},
		},
		{
			name:     "Only unreadable dates",
			events:   []catalog.EventRecord{{ID: 9, Title: "Someday", Date: "TBA", Year: "2024"}},
			contains: []string{"CALSCALE:GREGORIAN"},
		},
		{
			name:     "Empty feed",
			feed:     true,
			contains: []string{"METHOD:PUBLISH", "X-PUBLISHED-TTL:PT1H"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := BuildICS(catalog.Upcoming, "2024", tt.events, ist, tt.feed)
			if err != nil {
				t.Fatalf("BuildICS: %v", err)
			}
			body := string(data)
			if !strings.HasPrefix(body, "BEGIN:VCALENDAR\r\n") || !strings.HasSuffix(body, "END:VCALENDAR\r\n") {
				t.Errorf("Not a calendar: %q", body)
			}
			for _, field := range append([]string{"VERSION:2.0", "PRODID:" + ICSProductID}, tt.contains...) {
				if !strings.Contains(body, field) {
					t.Errorf("Empty calendar missing %s", field)
				}
			}
			if strings.Contains(body, "BEGIN:VEVENT") {
				t.Error("Empty calendar should have no events")
			}
		})
	}
}

func TestGenerateCSV(t *testing.T) {
	events := testEvents()
	events[0].Attendees = intPtr(120)
	events[0].DetailsLink = "/events/summit"

	w := httptest.NewRecorder()
	GenerateCSV(w, catalog.Past, "2024", events)

	resp := w.Result()
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/csv") {
		t.Errorf("Expected Content-Type text/csv, got %s", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "acm-events_past_2024.csv") {
		t.Errorf("Unexpected Content-Disposition: %s", cd)
	}

	rows, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	if err != nil {
		t.Fatalf("Invalid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "id" || rows[0][1] != "title" {
		t.Errorf("Unexpected header: %v", rows[0])
	}
	if rows[1][1] != "Tech Innovation Summit" || rows[1][7] != "120" || rows[1][9] != "/events/summit" {
		t.Errorf("Unexpected first row: %v", rows[1])
	}
	if rows[2][7] != "" {
		t.Errorf("Missing attendees should be empty, got %q", rows[2][7])
	}
}

func TestGenerateJSON(t *testing.T) {
	w := httptest.NewRecorder()
	GenerateJSON(w, catalog.Upcoming, "all", testEvents())

	resp := w.Result()
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Errorf("Expected Content-Type application/json, got %s", ct)
	}

	var data struct {
		Tab    string                `json:"tab"`
		Year   string                `json:"year"`
		Events []catalog.EventRecord `json:"events"`
	}
	if err := json.NewDecoder(w.Body).Decode(&data); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if data.Tab != "upcoming" || data.Year != "all" {
		t.Errorf("Unexpected envelope: tab=%s year=%s", data.Tab, data.Year)
	}
	if len(data.Events) != 2 || data.Events[0].Title != "Tech Innovation Summit" {
		t.Errorf("Unexpected events: %+v", data.Events)
	}
}
