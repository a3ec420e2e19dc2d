package parse

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const maxTitleLen = 120

var (
	pricePattern = regexp.MustCompile(`[$€£]\s*(\d+(?:\.\d{1,2})?)`)
	freePattern  = regexp.MustCompile(`(?i)\bfree\b`)

	// Venue-room vocabulary that marks a line as a location.
	locationPattern = regexp.MustCompile(`\b(Gallery|Galleries|Room|Hall|Building|Theater|Theatre|Auditorium|Wing|Center|Centre|Museum|Library|Studio|Pavilion)\b`)
)

// extractTitle takes the first short line that is not itself a date,
// time or price pattern.
func extractTitle(lines []string) string {
	for _, line := range lines {
		if utf8.RuneCountInString(line) >= maxTitleLen {
			continue
		}
		if containsDate(line) || containsTime(line) {
			continue
		}
		if pricePattern.MatchString(line) || freePattern.MatchString(line) {
			continue
		}
		return line
	}
	return ""
}

// extractLocation takes a line matching venue-room vocabulary, if one
// exists. Location is never guessed from arbitrary prose.
func extractLocation(lines []string) *string {
	for _, line := range lines {
		if utf8.RuneCountInString(line) >= 100 {
			continue
		}
		if locationPattern.MatchString(line) {
			loc := strings.TrimSpace(line)
			return &loc
		}
	}
	return nil
}

// extractPrice finds a currency-prefixed number, or the literal word
// "Free" which normalizes to 0.
func extractPrice(text string) *float64 {
	if m := pricePattern.FindStringSubmatch(text); m != nil {
		if value, err := strconv.ParseFloat(m[1], 64); err == nil {
			return &value
		}
	}
	if freePattern.MatchString(text) {
		zero := 0.0
		return &zero
	}
	return nil
}
