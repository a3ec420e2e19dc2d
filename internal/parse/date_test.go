package parse

import "testing"

func TestExtractDatesNormalizesToISO(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"Long month name", "December 5, 2025", "2025-12-05"},
		{"Abbreviated month", "Dec 5, 2025", "2025-12-05"},
		{"Month with ordinal", "December 5th, 2025", "2025-12-05"},
		{"ISO date", "2025-12-05", "2025-12-05"},
		{"Slash date", "12/05/2025", "2025-12-05"},
		{"Date with trailing time", "June 5, 2025 | 2:00 pm–3:00 pm", "2025-06-05"},
		{"Date inside prose", "Join us on March 1, 2026 in the atrium", "2026-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := extractDates(tt.text)
			if start == nil {
				t.Fatalf("extractDates(%q) found no date", tt.text)
			}
			if *start != tt.want {
				t.Errorf("extractDates(%q) start = %q, expected %q", tt.text, *start, tt.want)
			}
			if end != nil {
				t.Errorf("expected no end date for %q, got %q", tt.text, *end)
			}
		})
	}
}

func TestExtractDatesRanges(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantStart string
		wantEnd   string
	}{
		{"Full range", "June 5 - June 8, 2025", "2025-06-05", "2025-06-08"},
		{"Range sharing month", "June 5-8, 2025", "2025-06-05", "2025-06-08"},
		{"Range with to", "June 5 to June 8, 2025", "2025-06-05", "2025-06-08"},
		{"Range across New Year", "December 28 - January 3, 2026", "2025-12-28", "2026-01-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := extractDates(tt.text)
			if start == nil || end == nil {
				t.Fatalf("extractDates(%q) = (%v, %v), expected a range", tt.text, start, end)
			}
			if *start != tt.wantStart {
				t.Errorf("start = %q, expected %q", *start, tt.wantStart)
			}
			if *end != tt.wantEnd {
				t.Errorf("end = %q, expected %q", *end, tt.wantEnd)
			}
		})
	}
}

func TestExtractDatesNoMatch(t *testing.T) {
	for _, text := range []string{"", "no date here", "call 555/1234 now", "13/45/2025"} {
		start, end := extractDates(text)
		if start != nil || end != nil {
			t.Errorf("extractDates(%q) found a date, expected none", text)
		}
	}
}
