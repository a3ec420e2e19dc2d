// Package calendar renders extracted events as iCalendar (.ics) data.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/hpetersen/cityevents/internal/event"
)

const defaultDuration = time.Hour

// GenerateICS generates a single iCalendar document containing one
// VEVENT per extracted event. Events without a parseable start date
// are skipped.
func GenerateICS(events []*event.Extracted) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//cityevents//cityevents//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	stamp := formatICSTime(time.Now().UTC())
	for _, ev := range events {
		writeEvent(&ics, ev, stamp)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func writeEvent(ics *strings.Builder, ev *event.Extracted, stamp string) {
	if ev.StartDate == nil {
		return
	}
	start, err := time.Parse("2006-01-02", *ev.StartDate)
	if err != nil {
		return
	}

	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s@cityevents\r\n", ev.Key()))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", stamp))

	if ev.StartTime != nil {
		// Timed event
		clock, err := time.Parse("15:04", *ev.StartTime)
		if err == nil {
			startAt := time.Date(start.Year(), start.Month(), start.Day(),
				clock.Hour(), clock.Minute(), 0, 0, time.UTC)
			endAt := startAt.Add(defaultDuration)
			if ev.EndTime != nil {
				if end, err := time.Parse("15:04", *ev.EndTime); err == nil {
					endAt = time.Date(start.Year(), start.Month(), start.Day(),
						end.Hour(), end.Minute(), 0, 0, time.UTC)
				}
			}
			ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(startAt)))
			ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(endAt)))
		}
	} else {
		// All-day event; DTEND is exclusive per RFC 5545
		endDay := start.AddDate(0, 0, 1)
		if ev.EndDate != nil {
			if end, err := time.Parse("2006-01-02", *ev.EndDate); err == nil {
				endDay = end.AddDate(0, 0, 1)
			}
		}
		ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", start.Format("20060102")))
		ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", endDay.Format("20060102")))
	}

	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(ev.Title)))
	if ev.Description != "" {
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(ev.Description)))
	}
	if ev.Location != nil {
		ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(*ev.Location)))
	}
	if ev.SourceURL != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", ev.SourceURL))
	}
	ics.WriteString(fmt.Sprintf("CATEGORIES:%s\r\n", strings.ToUpper(string(ev.Type))))
	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
