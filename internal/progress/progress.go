// Package progress tracks the state of a scrape run across venues.
//
// A Tracker is shared between the scraper and whatever is reporting
// on the run (CLI summary output, periodic log lines). All operations
// are thread-safe, and Snapshot returns a deep copy that is safe to
// read while the run continues.
package progress

import (
	"sync"
	"time"
)

// Tracker records per-run scrape progress.
type Tracker struct {
	mu           sync.Mutex
	currentVenue string
	venuesTotal  int
	venuesDone   int
	eventsFound  int
	eventsKept   int
	errors       map[string]string
	timings      map[string]time.Duration
	started      time.Time
}

// Snapshot is a point-in-time copy of a Tracker's state.
type Snapshot struct {
	CurrentVenue string                   `json:"current_venue,omitempty"`
	VenuesTotal  int                      `json:"venues_total"`
	VenuesDone   int                      `json:"venues_done"`
	EventsFound  int                      `json:"events_found"`
	EventsKept   int                      `json:"events_kept"`
	Errors       map[string]string        `json:"errors,omitempty"`
	Timings      map[string]time.Duration `json:"timings,omitempty"`
	Elapsed      time.Duration            `json:"elapsed"`
}

// NewTracker creates a tracker for a run covering the given number of venues.
func NewTracker(venuesTotal int) *Tracker {
	return &Tracker{
		venuesTotal: venuesTotal,
		errors:      make(map[string]string),
		timings:     make(map[string]time.Duration),
		started:     time.Now(),
	}
}

// StartVenue marks a venue as the one currently being scraped.
func (t *Tracker) StartVenue(venue string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.currentVenue = venue
}

// FinishVenue records the outcome of one venue: how many event blocks
// were found on the page, how many survived parsing, and how long the
// scrape took.
func (t *Tracker) FinishVenue(venue string, found, kept int, elapsed time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.venuesDone++
	t.eventsFound += found
	t.eventsKept += kept
	t.timings[venue] = elapsed
	if t.currentVenue == venue {
		t.currentVenue = ""
	}
}

// RecordError records a per-venue failure. The venue still counts as
// done; a failed venue never blocks the rest of the run.
func (t *Tracker) RecordError(venue string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.venuesDone++
	t.errors[venue] = err.Error()
	if t.currentVenue == venue {
		t.currentVenue = ""
	}
}

// Snapshot returns a deep copy of the current state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	errs := make(map[string]string, len(t.errors))
	for k, v := range t.errors {
		errs[k] = v
	}
	timings := make(map[string]time.Duration, len(t.timings))
	for k, v := range t.timings {
		timings[k] = v
	}

	return Snapshot{
		CurrentVenue: t.currentVenue,
		VenuesTotal:  t.venuesTotal,
		VenuesDone:   t.venuesDone,
		EventsFound:  t.eventsFound,
		EventsKept:   t.eventsKept,
		Errors:       errs,
		Timings:      timings,
		Elapsed:      time.Since(t.started),
	}
}

// Done reports whether every venue in the run has been processed.
func (t *Tracker) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.venuesDone >= t.venuesTotal
}
