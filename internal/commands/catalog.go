package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/acm-pccoer/events-site/internal/catalog"
	"github.com/acm-pccoer/events-site/internal/timeline"
)

// ErrUnknownEvent is returned by PrintDetail for a slug with no detail page.
var ErrUnknownEvent = errors.New("event not found")

// PrintYears prints the timeline entries of a listing, one per line
func PrintYears(out io.Writer, c *catalog.Catalog, col catalog.Collection) {
	for _, y := range timeline.DeriveYears(c.Events(col)) {
		fmt.Fprintln(out, y)
	}
}

// PrintEvents prints a listing filtered to year. An unknown year is treated
// like "all", the same as on the website.
func PrintEvents(out io.Writer, c *catalog.Catalog, col catalog.Collection, year string) {
	state := timeline.NewState()
	state.SwitchCollection(col)
	if year != "" {
		state.SelectYear(c, year)
	}

	events := state.Apply(c)
	fmt.Fprintf(out, "%s (%s)\n", strings.ToUpper(string(state.Collection[:1]))+string(state.Collection[1:]), timeline.Summary(state.SelectedYear))
	if len(events) == 0 {
		fmt.Fprintln(out, "  No events found for the selected year.")
		return
	}
	for _, e := range events {
		fmt.Fprintf(out, "  %-14s %s\n", e.Date, e.Title)
		if e.Location != "" {
			fmt.Fprintf(out, "  %-14s %s\n", "", e.Location)
		}
		if slug := e.Slug(); slug != "" {
			fmt.Fprintf(out, "  %-14s details: %s\n", "", slug)
		}
	}
}

// PrintDetail prints one event detail page as text
func PrintDetail(out io.Writer, c *catalog.Catalog, slug string) error {
	d, ok := c.Lookup(slug)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, slug)
	}

	fmt.Fprintln(out, d.Title)
	fmt.Fprintln(out, strings.Repeat("=", len(d.Title)))
	fmt.Fprintf(out, "Date:      %s, %s\n", d.Date, d.Time)
	fmt.Fprintf(out, "Location:  %s\n", d.Location)
	fmt.Fprintf(out, "Attendees: %d\n", d.Attendees)
	fmt.Fprintf(out, "Speakers:  %d\n", d.Speakers)
	if d.Website != "" {
		fmt.Fprintf(out, "Website:   %s\n", d.Website)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, d.FullDescription)
	return nil
}
