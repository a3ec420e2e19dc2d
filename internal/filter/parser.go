package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const monthAlternates = `jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|september|oct|october|nov|november|dec|december`

// ParseDateRange parses a date range string into start and end times.
//
// Supported formats:
//   - "2025-06-01" - single ISO day
//   - "2025-06-01 - 2025-06-15" - ISO range
//   - "Mar 1-15" or "March 1-15" - same month, different days
//   - "March 1 - April 15" - different months
//   - "March" - entire month
//
// For month-name formats the year is inferred: a month already past
// this year means next year, and a cross-month range whose end month
// precedes its start month rolls the end into the next year.
//
// Returns (dateFrom, dateTo, error). Times are in UTC; start is at
// 00:00:00 and end at 23:59:59.
func ParseDateRange(input string) (*time.Time, *time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil, fmt.Errorf("date range cannot be empty")
	}

	// Format 1: ISO range "2025-06-01 - 2025-06-15"
	reISORange := regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s*-\s*(\d{4}-\d{2}-\d{2})$`)
	if matches := reISORange.FindStringSubmatch(input); matches != nil {
		from, err := time.Parse("2006-01-02", matches[1])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date: %s", matches[1])
		}
		end, err := time.Parse("2006-01-02", matches[2])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date: %s", matches[2])
		}
		to := endOfDay(end)

		if from.After(to) {
			return nil, nil, fmt.Errorf("start date must be before end date")
		}

		return &from, &to, nil
	}

	// Format 2: single ISO day "2025-06-01"
	if t, err := time.Parse("2006-01-02", input); err == nil {
		to := endOfDay(t)
		return &t, &to, nil
	}

	// Format 3: "Mar 1-15" or "March 1-15"
	reSameMonth := regexp.MustCompile(`(?i)^(` + monthAlternates + `)\s+(\d{1,2})\s*-\s*(\d{1,2})$`)
	if matches := reSameMonth.FindStringSubmatch(input); matches != nil {
		month := parseMonth(matches[1])
		if month == 0 {
			return nil, nil, fmt.Errorf("invalid month: %s", matches[1])
		}

		day1, err := strconv.Atoi(matches[2])
		if err != nil || day1 < 1 || day1 > 31 {
			return nil, nil, fmt.Errorf("invalid day: %s", matches[2])
		}

		day2, err := strconv.Atoi(matches[3])
		if err != nil || day2 < 1 || day2 > 31 {
			return nil, nil, fmt.Errorf("invalid day: %s", matches[3])
		}

		year := getYearForMonth(month)
		from := time.Date(year, month, day1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, month, day2, 23, 59, 59, 0, time.UTC)

		if from.After(to) {
			return nil, nil, fmt.Errorf("start date must be before end date")
		}

		return &from, &to, nil
	}

	// Format 4: "Mar 1 - Apr 15" or "March 1 - April 15"
	reCrossMonth := regexp.MustCompile(`(?i)^(` + monthAlternates + `)\s+(\d{1,2})\s*-\s*(` + monthAlternates + `)\s+(\d{1,2})$`)
	if matches := reCrossMonth.FindStringSubmatch(input); matches != nil {
		month1 := parseMonth(matches[1])
		if month1 == 0 {
			return nil, nil, fmt.Errorf("invalid month: %s", matches[1])
		}

		day1, err := strconv.Atoi(matches[2])
		if err != nil || day1 < 1 || day1 > 31 {
			return nil, nil, fmt.Errorf("invalid day: %s", matches[2])
		}

		month2 := parseMonth(matches[3])
		if month2 == 0 {
			return nil, nil, fmt.Errorf("invalid month: %s", matches[3])
		}

		day2, err := strconv.Atoi(matches[4])
		if err != nil || day2 < 1 || day2 > 31 {
			return nil, nil, fmt.Errorf("invalid day: %s", matches[4])
		}

		year1 := getYearForMonth(month1)
		year2 := getYearForMonth(month2)

		// If month2 < month1, assume month2 is in the next year
		if month2 < month1 {
			year2++
		}

		from := time.Date(year1, month1, day1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year2, month2, day2, 23, 59, 59, 0, time.UTC)

		if from.After(to) {
			return nil, nil, fmt.Errorf("start date must be before end date")
		}

		return &from, &to, nil
	}

	// Format 5: single month "March" or "Mar" (entire month)
	reMonth := regexp.MustCompile(`(?i)^(` + monthAlternates + `)$`)
	if matches := reMonth.FindStringSubmatch(input); matches != nil {
		month := parseMonth(matches[1])
		if month == 0 {
			return nil, nil, fmt.Errorf("invalid month: %s", matches[1])
		}

		year := getYearForMonth(month)
		from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		// Last day of month
		to := time.Date(year, month+1, 0, 23, 59, 59, 0, time.UTC)

		return &from, &to, nil
	}

	return nil, nil, fmt.Errorf("invalid date range format. Use '2025-06-01', 'Mar 1-15', 'March 1 - April 15', or 'March'")
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC)
}

// parseMonth converts a month name to time.Month
func parseMonth(name string) time.Month {
	name = strings.ToLower(strings.TrimSpace(name))

	months := map[string]time.Month{
		"jan": time.January, "january": time.January,
		"feb": time.February, "february": time.February,
		"mar": time.March, "march": time.March,
		"apr": time.April, "april": time.April,
		"may": time.May,
		"jun": time.June, "june": time.June,
		"jul": time.July, "july": time.July,
		"aug": time.August, "august": time.August,
		"sep": time.September, "september": time.September,
		"oct": time.October, "october": time.October,
		"nov": time.November, "november": time.November,
		"dec": time.December, "december": time.December,
	}

	return months[name]
}

// getYearForMonth returns the appropriate year for a given month
// If the month has already passed this year, returns next year
func getYearForMonth(month time.Month) int {
	now := time.Now()
	year := now.Year()

	// If month is in the past, use next year
	if month < now.Month() {
		year++
	}

	return year
}
