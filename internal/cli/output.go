package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/hpetersen/cityevents/internal/event"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt  time.Time          `json:"checked_at"`
	Events     []*event.Extracted `json:"events"`
	EventCount int                `json:"event_count"`
	NewCount   int                `json:"new_count"`
	Filter     string             `json:"filter,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.EventCount == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	for _, ev := range result.Events {
		fmt.Fprintf(w, "%s [%s] %s\n", formatWhen(ev), ev.Type, ev.Title)
		if ev.Location != nil {
			fmt.Fprintf(w, "    Location: %s\n", *ev.Location)
		}
		if ev.Price != nil {
			if *ev.Price == 0 {
				fmt.Fprintf(w, "    Price: free\n")
			} else {
				fmt.Fprintf(w, "    Price: $%.2f\n", *ev.Price)
			}
		}
		if verbose {
			fmt.Fprintf(w, "    Confidence: %.2f (%s)\n", ev.Confidence, ev.Source)
			if ev.SourceURL != "" {
				fmt.Fprintf(w, "    Source: %s\n", ev.SourceURL)
			}
		}
	}

	fmt.Fprintf(w, "\nTotal: %d events (%d new)\n", result.EventCount, result.NewCount)

	return nil
}

// formatWhen renders the event's date and time span for text output
func formatWhen(ev *event.Extracted) string {
	if ev.StartDate == nil {
		return "????-??-??"
	}
	s := *ev.StartDate
	if ev.EndDate != nil {
		s += " to " + *ev.EndDate
	}
	if ev.StartTime != nil {
		s += " " + *ev.StartTime
		if ev.EndTime != nil {
			s += "-" + *ev.EndTime
		}
	}
	return s
}
