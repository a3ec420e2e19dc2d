package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/hpetersen/cityevents/internal/event"
)

var clockPart = regexp.MustCompile(`[T ]\d{1,2}:\d{2}`)

// parseStructured copies typed JSON-LD fields onto the record. Fields
// the payload does not provide are left for the pattern matchers.
func parseStructured(payload map[string]any, ev *event.Extracted) {
	if name, ok := payload["name"].(string); ok {
		ev.Title = strings.TrimSpace(name)
	}
	if description, ok := payload["description"].(string); ok {
		ev.Description = strings.TrimSpace(description)
	}

	if raw, ok := payload["startDate"].(string); ok {
		date, clock := splitDateTime(raw)
		if date != "" {
			ev.StartDate = &date
		}
		if clock != "" {
			ev.StartTime = &clock
		}
	}
	if raw, ok := payload["endDate"].(string); ok {
		date, clock := splitDateTime(raw)
		if date != "" {
			ev.EndDate = &date
		}
		if clock != "" {
			ev.EndTime = &clock
		}
	}

	if loc := structuredLocation(payload["location"]); loc != "" {
		ev.Location = &loc
	}
	if price := structuredPrice(payload); price != nil {
		ev.Price = price
	}
}

// splitDateTime normalizes a schema.org datetime string into ISO date
// and 24-hour clock components. The clock is empty when the source
// carried a bare date.
func splitDateTime(raw string) (date, clock string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), t.Format("15:04")
		}
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.Format("2006-01-02"), ""
	}

	// Publishers put all sorts of formats in startDate; dateparse is
	// the last resort before giving up on the field.
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return "", ""
	}
	date = t.Format("2006-01-02")
	if clockPart.MatchString(raw) {
		clock = t.Format("15:04")
	}
	return date, clock
}

// structuredLocation handles both the bare-string and the nested
// Place object forms of schema.org location.
func structuredLocation(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		if name, ok := v["name"].(string); ok {
			return strings.TrimSpace(name)
		}
	}
	return ""
}

// structuredPrice reads offers.price (single offer or offer list) and
// the isAccessibleForFree flag.
func structuredPrice(payload map[string]any) *float64 {
	if free, ok := payload["isAccessibleForFree"].(bool); ok && free {
		zero := 0.0
		return &zero
	}

	offers := payload["offers"]
	if list, ok := offers.([]any); ok && len(list) > 0 {
		offers = list[0]
	}
	offer, ok := offers.(map[string]any)
	if !ok {
		return nil
	}

	switch price := offer["price"].(type) {
	case float64:
		return &price
	case string:
		if value, err := strconv.ParseFloat(strings.TrimSpace(price), 64); err == nil {
			return &value
		}
	}
	return nil
}
