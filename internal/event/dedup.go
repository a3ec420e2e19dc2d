package event

import "sort"

// Snapshot is a collection of extracted events at a point in time,
// keyed by the deduplication key.
type Snapshot struct {
	Events    map[string]*Extracted `json:"events"`
	UpdatedAt string                `json:"updated_at"`
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{Events: make(map[string]*Extracted)}
}

// MergeResult describes the outcome of merging freshly scraped events
// into a previous snapshot.
type MergeResult struct {
	New       []*Extracted // events not present in the previous snapshot
	Duplicate int          // events already known (or repeated within the batch)
}

// Merge deduplicates current events against a previous snapshot by
// title+date key. The snapshot is updated in place; events already
// present keep their original record unless the new one carries a
// higher confidence.
func Merge(prev *Snapshot, current []*Extracted) *MergeResult {
	if prev.Events == nil {
		prev.Events = make(map[string]*Extracted)
	}

	result := &MergeResult{New: make([]*Extracted, 0)}
	for _, evt := range current {
		key := evt.Key()
		existing, seen := prev.Events[key]
		if !seen {
			prev.Events[key] = evt
			result.New = append(result.New, evt)
			continue
		}
		result.Duplicate++
		if evt.Confidence > existing.Confidence {
			prev.Events[key] = evt
		}
	}

	// Stable output order: date first, then title.
	sort.Slice(result.New, func(i, j int) bool {
		di, dj := "", ""
		if result.New[i].StartDate != nil {
			di = *result.New[i].StartDate
		}
		if result.New[j].StartDate != nil {
			dj = *result.New[j].StartDate
		}
		if di != dj {
			return di < dj
		}
		return result.New[i].Title < result.New[j].Title
	})

	return result
}
