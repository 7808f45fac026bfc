// Package catalog holds the static event data served by the site.
//
// A Catalog is built once at startup and never mutated afterwards; every
// accessor returns data that callers must treat as read-only.
package catalog

import (
	"sort"
	"strings"
)

// Collection names one of the two event listings.
type Collection string

const (
	Upcoming Collection = "upcoming"
	Past     Collection = "past"
)

// ParseCollection maps a query value onto a Collection. Anything that is not
// "past" selects the upcoming listing.
func ParseCollection(s string) Collection {
	if Collection(strings.ToLower(s)) == Past {
		return Past
	}
	return Upcoming
}

// DetailsPrefix is the path prefix of event detail pages.
const DetailsPrefix = "/events/"

// Catalog is the complete content of the site.
type Catalog struct {
	Name     string                 `yaml:"name"`
	Upcoming []EventRecord          `yaml:"upcoming"`
	Past     []EventRecord          `yaml:"past"`
	Details  map[string]EventDetail `yaml:"details"`
	Stats    []Stat                 `yaml:"stats"`
	Contact  Contact                `yaml:"contact"`
}

// Events returns the listing for c.
func (c *Catalog) Events(col Collection) []EventRecord {
	if col == Past {
		return c.Past
	}
	return c.Upcoming
}

// Lookup returns the detail record for slug. The match is exact: no case
// folding and no trimming.
func (c *Catalog) Lookup(slug string) (EventDetail, bool) {
	d, ok := c.Details[slug]
	return d, ok
}

// Slugs returns every detail slug in the order the past listing references
// them, followed by any detail pages not linked from a listing.
func (c *Catalog) Slugs() []string {
	seen := make(map[string]bool, len(c.Details))
	var out []string
	for _, col := range []Collection{Past, Upcoming} {
		for _, e := range c.Events(col) {
			s := e.Slug()
			if s == "" || seen[s] {
				continue
			}
			if _, ok := c.Details[s]; ok {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	var rest []string
	for s := range c.Details {
		if !seen[s] {
			rest = append(rest, s)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// SlugFromLink extracts the slug from a "/events/<slug>" link.
func SlugFromLink(link string) string {
	if !strings.HasPrefix(link, DetailsPrefix) {
		return ""
	}
	return strings.TrimSuffix(link[len(DetailsPrefix):], "/")
}
