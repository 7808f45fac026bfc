package timeline

import (
	"github.com/acm-pccoer/events-site/internal/catalog"
)

// State is the selection owned by one events page: which listing is active
// and which year it is filtered to.
type State struct {
	Collection   catalog.Collection
	SelectedYear string
}

// NewState starts on the upcoming listing with no year filter.
func NewState() State {
	return State{Collection: catalog.Upcoming, SelectedYear: All}
}

// SwitchCollection activates col and resets the year to All, even when col
// is already active.
func (s *State) SwitchCollection(col catalog.Collection) {
	s.Collection = col
	s.SelectedYear = All
}

// SelectYear sets the year filter if year is offered for the active listing
// of c. It returns false and leaves the state untouched otherwise.
func (s *State) SelectYear(c *catalog.Catalog, year string) bool {
	if !Contains(DeriveYears(c.Events(s.Collection)), year) {
		return false
	}
	s.SelectedYear = year
	return true
}

// Years returns the timeline entries for the active listing.
func (s State) Years(c *catalog.Catalog) []string {
	return DeriveYears(c.Events(s.Collection))
}

// Apply returns the active listing filtered to the selected year.
func (s State) Apply(c *catalog.Catalog) []catalog.EventRecord {
	return Filter(c.Events(s.Collection), s.SelectedYear)
}

// FromQuery rebuilds a State from request values. An unknown tab selects the
// upcoming listing and a year the listing does not offer falls back to All.
func FromQuery(c *catalog.Catalog, tab, year string) State {
	s := NewState()
	s.SwitchCollection(catalog.ParseCollection(tab))
	if year != "" {
		s.SelectYear(c, year)
	}
	return s
}
