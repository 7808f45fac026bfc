// Package timeline implements the year filter shown above the event grid.
package timeline

import (
	"sort"

	"github.com/acm-pccoer/events-site/internal/catalog"
)

// All is the filter value that disables year filtering.
const All = "all"

// DeriveYears returns the distinct years of records, newest first, with All
// prepended.
func DeriveYears(records []catalog.EventRecord) []string {
	seen := make(map[string]bool, len(records))
	years := []string{All}
	for _, r := range records {
		if r.Year == "" || r.Year == All || seen[r.Year] {
			continue
		}
		seen[r.Year] = true
		years = append(years, r.Year)
	}

	sort.SliceStable(years, func(i, j int) bool {
		if years[i] == All {
			return years[j] != All
		}
		if years[j] == All {
			return false
		}
		return years[i] > years[j]
	})
	return years
}

// Filter returns the records whose Year equals year, in their original
// order. All returns records unchanged. The result is never nil.
func Filter(records []catalog.EventRecord, year string) []catalog.EventRecord {
	if year == All {
		if records == nil {
			return []catalog.EventRecord{}
		}
		return records
	}

	out := make([]catalog.EventRecord, 0, len(records))
	for _, r := range records {
		if r.Year == year {
			out = append(out, r)
		}
	}
	return out
}

// Contains reports whether year is one of years.
func Contains(years []string, year string) bool {
	for _, y := range years {
		if y == year {
			return true
		}
	}
	return false
}

// Progress is the fill fraction of the timeline bar for selected, from 0 for
// the first entry to 1 for the last.
func Progress(years []string, selected string) float64 {
	if len(years) < 2 {
		return 0
	}
	for i, y := range years {
		if y == selected {
			return float64(i) / float64(len(years)-1)
		}
	}
	return 0
}

// ShortYear is the two-digit label drawn inside a timeline bubble.
func ShortYear(year string) string {
	if year == All || len(year) <= 2 {
		return year
	}
	return year[len(year)-2:]
}

// Label is the long label under a timeline bubble.
func Label(year string) string {
	if year == All {
		return "All"
	}
	return year
}

// Summary describes the active selection, e.g. "events from 2023".
func Summary(year string) string {
	if year == All {
		return "all events"
	}
	return "events from " + year
}
