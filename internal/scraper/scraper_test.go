package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hpetersen/cityevents/internal/event"
	"github.com/hpetersen/cityevents/internal/fetch"
	"github.com/hpetersen/cityevents/internal/progress"
	"github.com/hpetersen/cityevents/internal/venue"
)

func testFetcher() *fetch.Fetcher {
	return fetch.New(fetch.WithTimeout(2*time.Second), fetch.WithMaxAttempts(1))
}

func TestScrapeURL_StructuredData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
<script type="application/ld+json">
{"@type":"Event","name":"Gallery Talk: Impressionism","startDate":"2025-06-01T18:00:00","location":{"@type":"Place","name":"East Building Auditorium"}}
</script>
</head><body></body></html>`))
	}))
	defer srv.Close()

	res, err := New(testFetcher()).ScrapeURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}

	if len(res.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(res.Events))
	}
	ev := res.Events[0]
	if ev.Title != "Gallery Talk: Impressionism" {
		t.Errorf("unexpected title %q", ev.Title)
	}
	if ev.StartDate == nil || *ev.StartDate != "2025-06-01" {
		t.Errorf("unexpected start date %v", ev.StartDate)
	}
	if ev.StartTime == nil || *ev.StartTime != "18:00" {
		t.Errorf("unexpected start time %v", ev.StartTime)
	}
	if ev.Type != event.TypeTalk {
		t.Errorf("expected talk, got %s", ev.Type)
	}
	if ev.Confidence < 0.9 {
		t.Errorf("expected confidence >= 0.9, got %f", ev.Confidence)
	}
	if ev.SourceURL != srv.URL {
		t.Errorf("expected source URL %q, got %q", srv.URL, ev.SourceURL)
	}
}

func TestScrapeVenue_SelectorOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
<div class="whatson-card"><h3>Clay Workshop</h3><p>June 14, 2025</p><p>2 to 4 pm</p><p>$25</p></div>
<div class="whatson-card"><h3>Sculpture Tour</h3><p>June 15, 2025</p><p>Free</p></div>
</body></html>`))
	}))
	defer srv.Close()

	profile := &venue.Profile{
		ID:       "test-venue",
		Name:     "Test Venue",
		URL:      srv.URL,
		Selector: ".whatson-card",
	}

	res, err := New(testFetcher()).ScrapeVenue(context.Background(), profile)
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}

	if len(res.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(res.Events))
	}
	first := res.Events[0]
	if first.Title != "Clay Workshop" {
		t.Errorf("unexpected title %q", first.Title)
	}
	if first.StartTime == nil || *first.StartTime != "14:00" {
		t.Errorf("expected 14:00 start, got %v", first.StartTime)
	}
	if first.EndTime == nil || *first.EndTime != "16:00" {
		t.Errorf("expected 16:00 end, got %v", first.EndTime)
	}
	if first.Price == nil || *first.Price != 25.0 {
		t.Errorf("expected price 25.0, got %v", first.Price)
	}
	second := res.Events[1]
	if second.Price == nil || *second.Price != 0.0 {
		t.Errorf("expected free event price 0.0, got %v", second.Price)
	}
	if second.Type != event.TypeTour {
		t.Errorf("expected tour, got %s", second.Type)
	}
}

func TestRun_SkipsFailingVenue(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
<div class="event-item"><h3>Evening Lecture</h3><span>July 1, 2025</span><span>7:00 pm</span></div>
</body></html>`))
	}))
	defer good.Close()

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer bad.Close()

	profiles := []*venue.Profile{
		{ID: "bad", Name: "Bad Venue", URL: bad.URL},
		{ID: "good", Name: "Good Venue", URL: good.URL},
	}
	tracker := progress.NewTracker(len(profiles))

	results, err := New(testFetcher()).Run(context.Background(), profiles, tracker)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 successful venue, got %d", len(results))
	}
	if results[0].Venue.ID != "good" {
		t.Errorf("expected good venue result, got %s", results[0].Venue.ID)
	}

	snap := tracker.Snapshot()
	if snap.VenuesDone != 2 {
		t.Errorf("expected both venues done, got %d", snap.VenuesDone)
	}
	if _, ok := snap.Errors["bad"]; !ok {
		t.Error("expected failure recorded for bad venue")
	}
	if !strings.Contains(snap.Errors["bad"], "404") {
		t.Errorf("expected 404 in recorded error, got %q", snap.Errors["bad"])
	}

	events := Events(results)
	if len(events) != 1 || events[0].Title != "Evening Lecture" {
		t.Errorf("unexpected flattened events: %+v", events)
	}
}

func TestRun_AllVenuesFail(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer bad.Close()

	profiles := []*venue.Profile{
		{ID: "a", URL: bad.URL},
		{ID: "b", URL: bad.URL},
	}

	_, err := New(testFetcher()).Run(context.Background(), profiles, nil)
	if err == nil {
		t.Fatal("expected error when every venue fails")
	}
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	profiles := []*venue.Profile{{ID: "a", URL: "http://127.0.0.1:1/"}}
	_, err := New(testFetcher()).Run(ctx, profiles, nil)
	if err == nil {
		t.Fatal("expected context error")
	}
}
