package parse

import (
	"fmt"
	"regexp"
	"strconv"
)

const monthNames = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`

// Date patterns in match order. The range form is tried before the
// single form so "June 5 - June 8, 2025" does not half-match.
var (
	dateMonthRange = regexp.MustCompile(`(?i)\b(` + monthNames + `)\.?\s+(\d{1,2})(?:st|nd|rd|th)?\s*(?:[-–—]|to|through)\s*(?:(` + monthNames + `)\.?\s+)?(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})`)
	dateMonthDay   = regexp.MustCompile(`(?i)\b(` + monthNames + `)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})`)
	dateISO        = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	dateSlash      = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
)

var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// extractDates scans text for the first supported date shape and
// returns normalized ISO 8601 start and end dates. A single date
// populates start only.
func extractDates(text string) (start, end *string) {
	if m := dateMonthRange.FindStringSubmatch(text); m != nil {
		startMonth := monthNumber(m[1])
		endMonth := startMonth
		if m[3] != "" {
			endMonth = monthNumber(m[3])
		}
		startDay, _ := strconv.Atoi(m[2])
		endDay, _ := strconv.Atoi(m[4])
		year, _ := strconv.Atoi(m[5])

		// The year is written next to the end date; a range wrapping
		// past New Year starts the year before.
		startYear := year
		if startMonth > endMonth {
			startYear = year - 1
		}

		if validDate(startYear, startMonth, startDay) && validDate(year, endMonth, endDay) {
			s := isoDate(startYear, startMonth, startDay)
			e := isoDate(year, endMonth, endDay)
			return &s, &e
		}
	}

	if m := dateMonthDay.FindStringSubmatch(text); m != nil {
		month := monthNumber(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if validDate(year, month, day) {
			s := isoDate(year, month, day)
			return &s, nil
		}
	}

	if m := dateISO.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if validDate(year, month, day) {
			s := isoDate(year, month, day)
			return &s, nil
		}
	}

	if m := dateSlash.FindStringSubmatch(text); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if validDate(year, month, day) {
			s := isoDate(year, month, day)
			return &s, nil
		}
	}

	return nil, nil
}

func monthNumber(name string) int {
	if len(name) < 3 {
		return 0
	}
	key := []byte(name[:3])
	for i, c := range key {
		if c >= 'A' && c <= 'Z' {
			key[i] = c + 'a' - 'A'
		}
	}
	return monthNumbers[string(key)]
}

func validDate(year, month, day int) bool {
	return year >= 1900 && year <= 2200 && month >= 1 && month <= 12 && day >= 1 && day <= 31
}

func isoDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// containsDate reports whether text carries any recognizable date,
// used to veto date lines as title candidates.
func containsDate(text string) bool {
	return dateMonthRange.MatchString(text) ||
		dateMonthDay.MatchString(text) ||
		dateISO.MatchString(text) ||
		dateSlash.MatchString(text)
}
