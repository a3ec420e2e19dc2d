package parse

import (
	"strings"

	"github.com/hpetersen/cityevents/internal/event"
)

// typeKeywords lists categories in classification order, most
// lexically unambiguous first. The first category with a keyword hit
// wins.
var typeKeywords = []struct {
	kind     event.Type
	keywords []string
}{
	{event.TypeExhibition, []string{"exhibit", "exhibition"}},
	{event.TypeTour, []string{"tour", "guided"}},
	{event.TypeWorkshop, []string{"workshop", "class"}},
	{event.TypeTalk, []string{"talk", "lecture", "discussion"}},
	{event.TypeFestival, []string{"festival", "performance"}},
}

// classify picks the event type from title and description keywords.
// Unrecognized content stays the generic type.
func classify(title, description string) event.Type {
	haystack := strings.ToLower(title + " " + description)
	for _, category := range typeKeywords {
		for _, keyword := range category.keywords {
			if strings.Contains(haystack, keyword) {
				return category.kind
			}
		}
	}
	return event.TypeGeneric
}
