package app

import (
	"github.com/acm-pccoer/events-site/internal/catalog"
)

// CounterView is one animated number on a page. The page renders the
// starting digits; the browser fills in the rest from the counter stream.
type CounterView struct {
	ID     string
	Label  string
	Icon   string
	Target int
	Plus   bool
	// Split renders zero-padded per-digit boxes instead of a plain number.
	Split  bool
	Digits []string
}

// YearView is one bubble of the timeline filter.
type YearView struct {
	Value  string
	Short  string
	Label  string
	Active bool
	URL    string
}

// TabView is one of the upcoming/past switch buttons.
type TabView struct {
	Label  string
	Active bool
	URL    string
}

// EventsPage is the data behind the events listing.
type EventsPage struct {
	Title        string
	Heading      string
	Tab          catalog.Collection
	SelectedYear string
	Summary      string
	Progress     float64
	Stats        []CounterView
	Tabs         []TabView
	Years        []YearView
	Events       []catalog.EventRecord
	IsPast       bool
	EmptyMessage string
	Contact      catalog.Contact
	Organization string
}

// DetailPage is the data behind an event detail page.
type DetailPage struct {
	Title        string
	Event        catalog.EventDetail
	Counters     []CounterView
	Organization string
}

// NotFoundPage is rendered for unknown slugs.
type NotFoundPage struct {
	Title        string
	Heading      string
	Message      string
	BackLabel    string
	BackURL      string
	Organization string
}

// EventsResponse is the JSON form of a filtered listing.
type EventsResponse struct {
	Tab          catalog.Collection    `json:"tab"`
	SelectedYear string                `json:"selectedYear"`
	Years        []string              `json:"years"`
	Events       []catalog.EventRecord `json:"events"`
}

// CounterFrame is one server-sent counter update.
type CounterFrame struct {
	Value  int    `json:"value"`
	Digits string `json:"digits"`
	Done   bool   `json:"done"`
}
