package event

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"
)

// Type is the event category. Unrecognized content falls back to TypeGeneric.
type Type string

const (
	TypeTour       Type = "tour"
	TypeExhibition Type = "exhibition"
	TypeWorkshop   Type = "workshop"
	TypeTalk       Type = "talk"
	TypeFestival   Type = "festival"
	TypeGeneric    Type = "event"
)

// ParseType maps a user-supplied name to a Type.
func ParseType(name string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(name))) {
	case TypeTour:
		return TypeTour, nil
	case TypeExhibition:
		return TypeExhibition, nil
	case TypeWorkshop:
		return TypeWorkshop, nil
	case TypeTalk:
		return TypeTalk, nil
	case TypeFestival:
		return TypeFestival, nil
	case TypeGeneric:
		return TypeGeneric, nil
	}
	return "", fmt.Errorf("unknown event type: %s", name)
}

// Source identifies which extraction strategy produced a record.
type Source string

const (
	SourceStructured Source = "structured"
	SourceSelector   Source = "selector"
	SourceHeuristic  Source = "heuristic"
)

// Extracted is the parser's output for one candidate block.
//
// Every field except Title is optional; pointer fields distinguish
// "absent" from "empty". Dates are ISO 8601 (YYYY-MM-DD), times are
// 24-hour HH:MM. A record is only valid if at least a title or a
// start date is present; the parser drops anything else.
type Extracted struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	StartDate   *string  `json:"start_date,omitempty"`
	EndDate     *string  `json:"end_date,omitempty"`
	StartTime   *string  `json:"start_time,omitempty"`
	EndTime     *string  `json:"end_time,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Type        Type     `json:"event_type"`
	Confidence  float64  `json:"confidence"`
	Source      Source   `json:"source"`
	SourceURL   string   `json:"source_url,omitempty"`
}

// Valid reports whether the record carries at least a title or a start date.
func (e *Extracted) Valid() bool {
	return e.Title != "" || e.StartDate != nil
}

// Key returns a deterministic deduplication key built from the
// normalized title and the start date. Two scrapes of the same listing
// produce the same key even when description or price text shifts.
func (e *Extracted) Key() string {
	date := ""
	if e.StartDate != nil {
		date = *e.StartDate
	}
	h := sha1.New()
	h.Write([]byte(NormalizeTitle(e.Title) + "|" + date))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// NormalizeTitle lowercases, trims and collapses whitespace so that
// cosmetic differences between scrapes do not defeat deduplication.
func NormalizeTitle(title string) string {
	normalized := strings.ToLower(strings.TrimSpace(title))
	normalized = strings.Join(strings.Fields(normalized), " ")
	normalized = strings.Trim(normalized, ".!?,;:")
	return normalized
}

// When returns the start date as a time.Time, or the zero value when
// no start date is present or it does not parse.
func (e *Extracted) When() time.Time {
	if e.StartDate == nil {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", *e.StartDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// IsFree reports whether the event has an explicit zero price.
func (e *Extracted) IsFree() bool {
	return e.Price != nil && *e.Price == 0
}
