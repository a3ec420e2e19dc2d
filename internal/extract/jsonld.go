package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hpetersen/cityevents/internal/event"
	"github.com/hpetersen/cityevents/internal/logger"
)

// Schema.org types treated as events. Publishers use subtypes freely,
// so anything ending in "Event" is also accepted.
var eventSchemaTypes = map[string]bool{
	"event":    true,
	"festival": true,
}

// structuredBlocks parses every embedded JSON-LD script and returns
// one block per event node. Malformed JSON is skipped locally so a
// broken script never fails the whole extraction.
func structuredBlocks(doc *goquery.Document, pageURL string) []Block {
	var blocks []Block
	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, s *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			logger.Debug("skipping malformed JSON-LD script", logger.Fields{
				"url":   pageURL,
				"index": i,
			})
			return
		}
		for _, node := range eventNodes(payload) {
			blocks = append(blocks, Block{
				Text:       structuredSummary(node),
				Source:     event.SourceStructured,
				Provenance: fmt.Sprintf("ld+json[%d]", i),
				Structured: node,
				PageURL:    pageURL,
			})
		}
	})
	return blocks
}

// eventNodes flattens a decoded JSON-LD payload (single node, array,
// or @graph container) into the event-typed nodes it contains.
func eventNodes(payload any) []map[string]any {
	switch v := payload.(type) {
	case []any:
		var nodes []map[string]any
		for _, item := range v {
			nodes = append(nodes, eventNodes(item)...)
		}
		return nodes
	case map[string]any:
		if graph, ok := v["@graph"]; ok {
			return eventNodes(graph)
		}
		if isEventType(v["@type"]) {
			return []map[string]any{v}
		}
	}
	return nil
}

func isEventType(t any) bool {
	switch v := t.(type) {
	case string:
		name := strings.ToLower(v)
		return eventSchemaTypes[name] || strings.HasSuffix(name, "event")
	case []any:
		for _, item := range v {
			if isEventType(item) {
				return true
			}
		}
	}
	return false
}

// structuredSummary renders a short text form of the node for
// debugging output; field parsing works off the payload itself.
func structuredSummary(node map[string]any) string {
	var parts []string
	for _, key := range []string{"name", "startDate", "endDate", "location"} {
		if v, ok := node[key].(string); ok && v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "\n")
}
