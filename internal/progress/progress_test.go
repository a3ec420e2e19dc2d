package progress

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestTracker_FinishVenue(t *testing.T) {
	tracker := NewTracker(2)

	tracker.StartVenue("nga")
	snap := tracker.Snapshot()
	if snap.CurrentVenue != "nga" {
		t.Errorf("expected current venue 'nga', got %q", snap.CurrentVenue)
	}

	tracker.FinishVenue("nga", 10, 8, 250*time.Millisecond)
	tracker.FinishVenue("phillips", 5, 5, 100*time.Millisecond)

	snap = tracker.Snapshot()
	if snap.CurrentVenue != "" {
		t.Errorf("expected current venue cleared, got %q", snap.CurrentVenue)
	}
	if snap.VenuesDone != 2 {
		t.Errorf("expected 2 venues done, got %d", snap.VenuesDone)
	}
	if snap.EventsFound != 15 {
		t.Errorf("expected 15 events found, got %d", snap.EventsFound)
	}
	if snap.EventsKept != 13 {
		t.Errorf("expected 13 events kept, got %d", snap.EventsKept)
	}
	if snap.Timings["nga"] != 250*time.Millisecond {
		t.Errorf("expected nga timing recorded, got %v", snap.Timings["nga"])
	}
	if !tracker.Done() {
		t.Error("expected tracker to report done")
	}
}

func TestTracker_RecordError(t *testing.T) {
	tracker := NewTracker(2)

	tracker.StartVenue("websters")
	tracker.RecordError("websters", errors.New("connection refused"))
	tracker.FinishVenue("palmer", 3, 3, 50*time.Millisecond)

	snap := tracker.Snapshot()
	if snap.VenuesDone != 2 {
		t.Errorf("expected failed venue to count as done, got %d", snap.VenuesDone)
	}
	if snap.Errors["websters"] != "connection refused" {
		t.Errorf("expected error recorded for websters, got %v", snap.Errors)
	}
	if snap.EventsKept != 3 {
		t.Errorf("expected 3 events kept, got %d", snap.EventsKept)
	}
}

func TestTracker_SnapshotIsCopy(t *testing.T) {
	tracker := NewTracker(1)
	tracker.RecordError("nga", errors.New("boom"))

	snap := tracker.Snapshot()
	snap.Errors["nga"] = "mutated"

	if tracker.Snapshot().Errors["nga"] != "boom" {
		t.Error("expected snapshot mutation not to affect tracker state")
	}
}

func TestTracker_Concurrent(t *testing.T) {
	tracker := NewTracker(50)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.FinishVenue("venue", 2, 1, time.Millisecond)
		}()
	}
	wg.Wait()

	snap := tracker.Snapshot()
	if snap.VenuesDone != 50 {
		t.Errorf("expected 50 venues done, got %d", snap.VenuesDone)
	}
	if snap.EventsFound != 100 || snap.EventsKept != 50 {
		t.Errorf("unexpected event totals: found=%d kept=%d", snap.EventsFound, snap.EventsKept)
	}
}
