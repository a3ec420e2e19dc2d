package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hpetersen/cityevents/internal/event"
)

// Storage handles persistence of event snapshots
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// snapshotPath returns the path to a venue's snapshot file. An empty
// or "all" venue ID means the combined snapshot.
func (s *Storage) snapshotPath(venueID string) string {
	if venueID == "" || strings.EqualFold(venueID, "all") {
		return filepath.Join(s.dataDir, "snapshot.json")
	}
	return filepath.Join(s.dataDir, fmt.Sprintf("snapshot_%s.json", strings.ToLower(venueID)))
}

// LoadSnapshot loads a venue's snapshot from disk. A missing file
// yields an empty snapshot, not an error.
func (s *Storage) LoadSnapshot(venueID string) (*event.Snapshot, error) {
	path := s.snapshotPath(venueID)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return event.NewSnapshot(), nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot event.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	// Ensure Events map is initialized
	if snapshot.Events == nil {
		snapshot.Events = make(map[string]*event.Extracted)
	}

	return &snapshot, nil
}

// SaveSnapshot saves a venue's snapshot to disk
func (s *Storage) SaveSnapshot(snapshot *event.Snapshot, venueID string) error {
	path := s.snapshotPath(venueID)

	// Set updated timestamp
	snapshot.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

// UpdateSnapshot merges freshly scraped events into a venue's stored
// snapshot and saves the result. The returned MergeResult says which
// events were new and which were already known.
func (s *Storage) UpdateSnapshot(events []*event.Extracted, venueID string) (*event.MergeResult, error) {
	prev, err := s.LoadSnapshot(venueID)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	result := event.Merge(prev, events)

	if err := s.SaveSnapshot(prev, venueID); err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}

	return result, nil
}

// GetEventByKey retrieves an event by its dedup key from the combined
// snapshot.
func (s *Storage) GetEventByKey(key string) (*event.Extracted, error) {
	snapshot, err := s.LoadSnapshot("all")
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	if ev, exists := snapshot.Events[key]; exists {
		return ev, nil
	}

	return nil, fmt.Errorf("event not found: %s", key)
}
