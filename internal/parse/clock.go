package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Time patterns in match order: 12-hour ranges, 24-hour ranges, then
// single 12-hour times. The 12-hour range form requires a trailing
// meridiem so digit ranges inside dates never match.
var (
	timeRange12 = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(a\.?m\.?|p\.?m\.?)?\s*(?:[-–—]|to)\s*(\d{1,2})(?::(\d{2}))?\s*(a\.?m\.?|p\.?m\.?)`)
	timeRange24 = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\s*(?:[-–—]|to)\s*([01]?\d|2[0-3]):([0-5]\d)\b`)
	timeSingle  = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(a\.?m\.?|p\.?m\.?)`)
)

// extractTimes scans text for the first supported time shape and
// returns normalized 24-hour HH:MM start and end times. A single time
// populates start only.
func extractTimes(text string) (start, end *string) {
	if m := timeRange12.FindStringSubmatch(text); m != nil {
		endClock, endOK := clock12(m[4], m[5], m[6])
		// A missing first meridiem inherits the second's.
		startMeridiem := m[3]
		if startMeridiem == "" {
			startMeridiem = m[6]
		}
		startClock, startOK := clock12(m[1], m[2], startMeridiem)
		if startOK && endOK {
			// "11:30–12:00 pm" reads as morning into noon, not
			// 23:30; pull an inverted start back twelve hours.
			if startClock > endClock && startClock >= 12*60 {
				startClock -= 12 * 60
			}
			s, e := formatClock(startClock), formatClock(endClock)
			return &s, &e
		}
	}

	if m := timeRange24.FindStringSubmatch(text); m != nil {
		startClock := atoiClock(m[1], m[2])
		endClock := atoiClock(m[3], m[4])
		s, e := formatClock(startClock), formatClock(endClock)
		return &s, &e
	}

	if m := timeSingle.FindStringSubmatch(text); m != nil {
		if c, ok := clock12(m[1], m[2], m[3]); ok {
			s := formatClock(c)
			return &s, nil
		}
	}

	return nil, nil
}

// clock12 converts 12-hour components to minutes since midnight.
func clock12(hourStr, minuteStr, meridiem string) (int, bool) {
	hour, _ := strconv.Atoi(hourStr)
	minute := 0
	if minuteStr != "" {
		minute, _ = strconv.Atoi(minuteStr)
	}
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, false
	}

	switch normalizeMeridiem(meridiem) {
	case "am":
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour != 12 {
			hour += 12
		}
	default:
		return 0, false
	}
	return hour*60 + minute, true
}

func normalizeMeridiem(meridiem string) string {
	meridiem = strings.ToLower(strings.ReplaceAll(meridiem, ".", ""))
	return strings.TrimSpace(meridiem)
}

func atoiClock(hourStr, minuteStr string) int {
	hour, _ := strconv.Atoi(hourStr)
	minute, _ := strconv.Atoi(minuteStr)
	return hour*60 + minute
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// containsTime reports whether text carries any recognizable time,
// used to veto time lines as title candidates.
func containsTime(text string) bool {
	return timeRange12.MatchString(text) ||
		timeRange24.MatchString(text) ||
		timeSingle.MatchString(text)
}
