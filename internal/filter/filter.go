// Package filter narrows event lists by date, type, price, and
// location criteria.
//
// Example usage:
//
//	// Free exhibitions in June
//	f := filter.NewFilter()
//	f.Types = []event.Type{event.TypeExhibition}
//	f.FreeOnly = true
//	f.DateFrom, f.DateTo, _ = filter.ParseDateRange("June")
//
//	filtered := f.Apply(events)
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/hpetersen/cityevents/internal/event"
)

// Filter represents event filtering criteria
type Filter struct {
	// Date range filtering (inclusive, against the event start date)
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	// Event type filtering
	Types []event.Type `json:"types,omitempty"`

	// FreeOnly keeps only events with a known price of zero
	FreeOnly bool `json:"free_only,omitempty"`

	// Maximum price; events with an unknown price pass
	MaxPrice float64 `json:"max_price,omitempty"`

	// Location filtering (case-insensitive substring match)
	Locations []string `json:"locations,omitempty"`

	// Weekend-only filtering (Saturday/Sunday)
	WeekendsOnly bool `json:"weekends_only,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
// The filter will match all events until criteria are added.
func NewFilter() *Filter {
	return &Filter{}
}

// IsEmpty checks if the filter has any active criteria.
// Returns true if the filter would match all events.
func (f *Filter) IsEmpty() bool {
	return f.DateFrom == nil &&
		f.DateTo == nil &&
		len(f.Types) == 0 &&
		!f.FreeOnly &&
		f.MaxPrice == 0 &&
		len(f.Locations) == 0 &&
		!f.WeekendsOnly
}

// Matches checks if an event matches all active filter criteria.
// An empty filter matches all events.
//
// Matching logic:
//   - Date range: event start date must fall within DateFrom and
//     DateTo (inclusive); events without a date pass
//   - Types: event type must be one of the listed types
//   - FreeOnly: event price must be known and zero
//   - MaxPrice: event price must be at most MaxPrice; unknown passes
//   - Locations: event location must contain at least one entry
//     (case-insensitive)
//   - WeekendsOnly: event must start on Saturday or Sunday
func (f *Filter) Matches(ev *event.Extracted) bool {
	// Empty filter matches all events
	if f.IsEmpty() {
		return true
	}

	startDate := eventStart(ev)

	// Check date range
	if f.DateFrom != nil && startDate != nil {
		if startDate.Before(*f.DateFrom) {
			return false
		}
	}

	if f.DateTo != nil && startDate != nil {
		if startDate.After(*f.DateTo) {
			return false
		}
	}

	// Check weekends only
	if f.WeekendsOnly {
		if startDate == nil {
			return false
		}
		weekday := startDate.Weekday()
		if weekday != time.Saturday && weekday != time.Sunday {
			return false
		}
	}

	// Check event type
	if len(f.Types) > 0 {
		matched := false
		for _, t := range f.Types {
			if ev.Type == t {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	// Check price criteria
	if f.FreeOnly {
		if ev.Price == nil || *ev.Price != 0 {
			return false
		}
	}
	if f.MaxPrice > 0 && ev.Price != nil && *ev.Price > f.MaxPrice {
		return false
	}

	// Check location (case-insensitive substring match)
	if len(f.Locations) > 0 {
		if ev.Location == nil {
			return false
		}
		matched := false
		locationLower := strings.ToLower(*ev.Location)
		for _, loc := range f.Locations {
			if strings.Contains(locationLower, strings.ToLower(loc)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Apply applies the filter to a list of events and returns only matching events.
// If the filter is empty, returns the original list unchanged.
func (f *Filter) Apply(events []*event.Extracted) []*event.Extracted {
	if f.IsEmpty() {
		return events
	}

	var filtered []*event.Extracted
	for _, ev := range events {
		if f.Matches(ev) {
			filtered = append(filtered, ev)
		}
	}

	return filtered
}

// String returns a human-readable description of the active filter criteria.
// Returns "No active filters" if the filter is empty.
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if f.DateFrom != nil {
		parts = append(parts, fmt.Sprintf("From: %s", f.DateFrom.Format("Jan 2, 2006")))
	}

	if f.DateTo != nil {
		parts = append(parts, fmt.Sprintf("To: %s", f.DateTo.Format("Jan 2, 2006")))
	}

	if len(f.Types) > 0 {
		names := make([]string, len(f.Types))
		for i, t := range f.Types {
			names[i] = string(t)
		}
		parts = append(parts, fmt.Sprintf("Types: %s", strings.Join(names, ", ")))
	}

	if f.FreeOnly {
		parts = append(parts, "Free only")
	}

	if f.MaxPrice > 0 {
		parts = append(parts, fmt.Sprintf("Max price: $%.2f", f.MaxPrice))
	}

	if len(f.Locations) > 0 {
		parts = append(parts, fmt.Sprintf("Locations: %s", strings.Join(f.Locations, ", ")))
	}

	if f.WeekendsOnly {
		parts = append(parts, "Weekends only")
	}

	return strings.Join(parts, " | ")
}

// eventStart parses an event's ISO start date
// Returns nil if the event has no date
func eventStart(ev *event.Extracted) *time.Time {
	if ev.StartDate == nil {
		return nil
	}
	t, err := time.Parse("2006-01-02", *ev.StartDate)
	if err != nil {
		return nil
	}
	return &t
}
