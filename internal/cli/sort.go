package cli

import (
	"sort"
	"strings"

	"github.com/hpetersen/cityevents/internal/event"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDate       SortOrder = "date"
	SortByTitle      SortOrder = "title"
	SortByConfidence SortOrder = "confidence"
)

// sortEvents sorts a slice of events based on the specified sort order
func sortEvents(events []*event.Extracted, sortOrder SortOrder) {
	switch sortOrder {
	case SortByDate:
		sort.SliceStable(events, func(i, j int) bool {
			return compareByDate(events[i], events[j])
		})
	case SortByTitle:
		sort.SliceStable(events, func(i, j int) bool {
			if events[i].Title != events[j].Title {
				return strings.ToLower(events[i].Title) < strings.ToLower(events[j].Title)
			}
			// If titles are equal, sort by date
			return compareByDate(events[i], events[j])
		})
	case SortByConfidence:
		sort.SliceStable(events, func(i, j int) bool {
			if events[i].Confidence != events[j].Confidence {
				return events[i].Confidence > events[j].Confidence
			}
			return compareByDate(events[i], events[j])
		})
	}
}

// compareByDate compares two events by their start date
// Returns true if event i should come before event j
func compareByDate(i, j *event.Extracted) bool {
	dateI := i.When()
	dateJ := j.When()

	// If both dates are valid, compare them
	if !dateI.IsZero() && !dateJ.IsZero() {
		if !dateI.Equal(dateJ) {
			return dateI.Before(dateJ)
		}
		return strings.ToLower(i.Title) < strings.ToLower(j.Title)
	}

	// If only one date is valid, put the valid one first
	if !dateI.IsZero() {
		return true
	}
	if !dateJ.IsZero() {
		return false
	}

	// If neither has a valid date, sort by title
	return strings.ToLower(i.Title) < strings.ToLower(j.Title)
}
