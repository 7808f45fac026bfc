package app

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/acm-pccoer/events-site/internal/catalog"
	"github.com/acm-pccoer/events-site/internal/counter"
	"github.com/acm-pccoer/events-site/internal/timeline"
)

// render executes a page into a buffer so template errors still produce a
// clean 500
func render(w http.ResponseWriter, t *template.Template, status int, data any) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		slog.Error("Error rendering page", "template", t.Name(), "error", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Error writing page", "template", t.Name(), "error", err)
	}
}

// listingURL links to the events page for col filtered to year
func listingURL(col catalog.Collection, year string) string {
	q := url.Values{}
	q.Set("tab", string(col))
	if year != "" && year != timeline.All {
		q.Set("year", year)
	}
	return "/?" + q.Encode()
}

// ServeEvents renders the events listing
// Query params: tab (upcoming|past), year (a listed year or "all")
func (s *Server) ServeEvents(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.serveNotFound(w)
		return
	}
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	state := timeline.FromQuery(s.catalog, q.Get("tab"), q.Get("year"))
	years := state.Years(s.catalog)

	page := EventsPage{
		Title:        s.catalog.Name + " Events",
		Heading:      "Upcoming Events",
		Tab:          state.Collection,
		SelectedYear: state.SelectedYear,
		Summary:      timeline.Summary(state.SelectedYear),
		Progress:     timeline.Progress(years, state.SelectedYear),
		Events:       state.Apply(s.catalog),
		IsPast:       state.Collection == catalog.Past,
		EmptyMessage: MsgNoEvents,
		Contact:      s.catalog.Contact,
		Organization: s.catalog.Name,
	}
	if page.IsPast {
		page.Heading = "Past Events"
	}

	// Tab links never carry a year: switching listings resets the filter.
	for _, col := range []catalog.Collection{catalog.Upcoming, catalog.Past} {
		label := "Upcoming Events"
		if col == catalog.Past {
			label = "Past Events"
		}
		page.Tabs = append(page.Tabs, TabView{
			Label:  label,
			Active: col == state.Collection,
			URL:    listingURL(col, timeline.All),
		})
	}

	for _, y := range years {
		page.Years = append(page.Years, YearView{
			Value:  y,
			Short:  timeline.ShortYear(y),
			Label:  timeline.Label(y),
			Active: y == state.SelectedYear,
			URL:    listingURL(state.Collection, y),
		})
	}

	for _, st := range s.catalog.Stats {
		page.Stats = append(page.Stats, CounterView{
			ID:     s.newID(),
			Label:  st.Label,
			Icon:   st.Icon,
			Target: st.Value,
			Plus:   st.Plus,
		})
	}

	render(w, s.events, http.StatusOK, page)
}

// ServeEventDetail renders /events/{slug}
func (s *Server) ServeEventDetail(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	slug := r.URL.Path[len(catalog.DetailsPrefix):]
	detail, ok := s.catalog.Lookup(slug)
	if !ok {
		s.serveNotFound(w)
		return
	}

	page := DetailPage{
		Title:        detail.Title + " | " + s.catalog.Name,
		Event:        detail,
		Organization: s.catalog.Name,
		Counters: []CounterView{
			s.splitCounter("Attendees", detail.Attendees),
			s.splitCounter("Speakers", detail.Speakers),
		},
	}
	render(w, s.detail, http.StatusOK, page)
}

func (s *Server) splitCounter(label string, target int) CounterView {
	return CounterView{
		ID:     s.newID(),
		Label:  label,
		Target: target,
		Split:  true,
		Digits: counter.Digits(0, counter.Width(target)),
	}
}

// serveNotFound renders the "Event Not Found" page with a 404
func (s *Server) serveNotFound(w http.ResponseWriter) {
	render(w, s.notFound, http.StatusNotFound, NotFoundPage{
		Title:        MsgNotFoundTitle + " | " + s.catalog.Name,
		Heading:      MsgNotFoundTitle,
		Message:      MsgNotFoundDetail,
		BackLabel:    MsgBackToEvents,
		BackURL:      "/",
		Organization: s.catalog.Name,
	})
}

// HandleEvents returns the filtered listing as JSON
// Query params: tab, year
func (s *Server) HandleEvents(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if notModified(w, r, s.etag) {
		return
	}

	q := r.URL.Query()
	state := timeline.FromQuery(s.catalog, q.Get("tab"), q.Get("year"))
	writeJSON(w, http.StatusOK, EventsResponse{
		Tab:          state.Collection,
		SelectedYear: state.SelectedYear,
		Years:        state.Years(s.catalog),
		Events:       state.Apply(s.catalog),
	})
}

// HandleEventDetail returns one detail record as JSON
// URL: /api/events/{slug}
func (s *Server) HandleEventDetail(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	slug := r.URL.Path[len("/api/events/"):]
	detail, ok := s.catalog.Lookup(slug)
	if !ok {
		writeJSONError(w, http.StatusNotFound, strings.ToLower(ErrEventNotFound))
		return
	}
	if notModified(w, r, s.etag) {
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// HandleDownload exports the filtered listing
// Query params: tab, year, format (ics|csv|json, default ics)
func (s *Server) HandleDownload(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = FormatICS
	}

	state := timeline.FromQuery(s.catalog, q.Get("tab"), q.Get("year"))
	events := state.Apply(s.catalog)

	switch format {
	case FormatICS:
		GenerateICS(w, state.Collection, state.SelectedYear, events, s.loc)
	case FormatCSV:
		GenerateCSV(w, state.Collection, state.SelectedYear, events)
	case FormatJSON:
		GenerateJSON(w, state.Collection, state.SelectedYear, events)
	default:
		http.Error(w, ErrInvalidFormat, http.StatusBadRequest)
	}
}

// HandleSubscribe serves the upcoming events as a calendar feed
func (s *Server) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	GenerateSubscriptionICS(w, s.catalog.Upcoming, s.loc)
}

// HandleHealth answers liveness probes
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("ok")); err != nil {
		slog.Error("Error writing health response", "error", err)
	}
}
