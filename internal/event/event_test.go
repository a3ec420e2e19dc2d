package event

import "testing"

func strPtr(s string) *string { return &s }

func TestKeyIsStableAcrossCosmeticChanges(t *testing.T) {
	a := &Extracted{Title: "Gallery Talk", StartDate: strPtr("2025-06-01")}
	b := &Extracted{Title: "  gallery  talk ", StartDate: strPtr("2025-06-01")}

	if a.Key() != b.Key() {
		t.Errorf("expected identical keys, got %q and %q", a.Key(), b.Key())
	}
}

func TestKeyDiffersByDate(t *testing.T) {
	a := &Extracted{Title: "Gallery Talk", StartDate: strPtr("2025-06-01")}
	b := &Extracted{Title: "Gallery Talk", StartDate: strPtr("2025-06-02")}

	if a.Key() == b.Key() {
		t.Error("events on different dates should have different keys")
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Guided Tour", "guided tour"},
		{"  Guided   Tour  ", "guided tour"},
		{"Guided Tour!", "guided tour"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeTitle(tt.in); got != tt.want {
			t.Errorf("NormalizeTitle(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestValid(t *testing.T) {
	if (&Extracted{}).Valid() {
		t.Error("record with neither title nor date should be invalid")
	}
	if !(&Extracted{Title: "Photowalk"}).Valid() {
		t.Error("record with a title should be valid")
	}
	if !(&Extracted{StartDate: strPtr("2025-06-01")}).Valid() {
		t.Error("record with a start date should be valid")
	}
}

func TestMergeDeduplicates(t *testing.T) {
	snap := NewSnapshot()

	first := Merge(snap, []*Extracted{
		{Title: "Gallery Talk", StartDate: strPtr("2025-06-01"), Confidence: 0.6},
		{Title: "Guided Tour", StartDate: strPtr("2025-06-05"), Confidence: 0.4},
	})
	if len(first.New) != 2 {
		t.Fatalf("expected 2 new events, got %d", len(first.New))
	}

	second := Merge(snap, []*Extracted{
		{Title: "gallery talk", StartDate: strPtr("2025-06-01"), Confidence: 0.9},
		{Title: "Night Market", StartDate: strPtr("2025-06-07"), Confidence: 0.5},
	})
	if len(second.New) != 1 {
		t.Fatalf("expected 1 new event, got %d", len(second.New))
	}
	if second.New[0].Title != "Night Market" {
		t.Errorf("expected new event to be Night Market, got %q", second.New[0].Title)
	}
	if second.Duplicate != 1 {
		t.Errorf("expected 1 duplicate, got %d", second.Duplicate)
	}

	// Higher-confidence duplicate should replace the stored record.
	key := (&Extracted{Title: "Gallery Talk", StartDate: strPtr("2025-06-01")}).Key()
	if snap.Events[key].Confidence != 0.9 {
		t.Errorf("expected stored confidence 0.9, got %v", snap.Events[key].Confidence)
	}
}

func TestMergeOrdersByDateThenTitle(t *testing.T) {
	snap := NewSnapshot()
	result := Merge(snap, []*Extracted{
		{Title: "Zine Fair", StartDate: strPtr("2025-06-07")},
		{Title: "Gallery Talk", StartDate: strPtr("2025-06-01")},
		{Title: "Atrium Concert", StartDate: strPtr("2025-06-07")},
	})

	got := make([]string, 0, len(result.New))
	for _, evt := range result.New {
		got = append(got, evt.Title)
	}
	want := []string{"Gallery Talk", "Atrium Concert", "Zine Fair"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}
