package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/hpetersen/cityevents/internal/event"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func sampleResult() *OutputResult {
	events := []*event.Extracted{
		{
			Title:      "Summer Exhibition",
			StartDate:  strPtr("2025-06-05"),
			EndDate:    strPtr("2025-06-08"),
			Price:      f64Ptr(0),
			Type:       event.TypeExhibition,
			Confidence: 0.9,
			Source:     event.SourceStructured,
		},
		{
			Title:      "Clay Workshop",
			StartDate:  strPtr("2025-06-14"),
			StartTime:  strPtr("14:00"),
			EndTime:    strPtr("16:00"),
			Price:      f64Ptr(25),
			Type:       event.TypeWorkshop,
			Confidence: 0.66,
			Source:     event.SourceSelector,
		},
	}
	return &OutputResult{
		CheckedAt:  time.Now().UTC(),
		Events:     events,
		EventCount: len(events),
		NewCount:   1,
	}
}

func TestWriteOutput_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatText, false); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"2025-06-05 to 2025-06-08 [exhibition] Summer Exhibition",
		"Price: free",
		"2025-06-14 14:00-16:00 [workshop] Clay Workshop",
		"Price: $25.00",
		"Total: 2 events (1 new)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Confidence") {
		t.Error("confidence should only appear in verbose output")
	}
}

func TestWriteOutput_TextVerbose(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatText, true); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Confidence: 0.90 (structured)") {
		t.Errorf("expected confidence line, got:\n%s", buf.String())
	}
}

func TestWriteOutput_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	result := &OutputResult{CheckedAt: time.Now().UTC()}
	if err := WriteOutput(&buf, result, FormatText, false); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No events found.") {
		t.Errorf("unexpected empty output: %s", buf.String())
	}
}

func TestWriteOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatJSON, false); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var decoded OutputResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.EventCount != 2 || len(decoded.Events) != 2 {
		t.Errorf("unexpected decoded result: %+v", decoded)
	}
	if decoded.Events[0].Title != "Summer Exhibition" {
		t.Errorf("unexpected first event %q", decoded.Events[0].Title)
	}
}

func TestWriteOutput_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), OutputFormat("xml"), false); err == nil {
		t.Error("expected error for unknown format")
	}
}
