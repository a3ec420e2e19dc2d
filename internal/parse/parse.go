package parse

import (
	"strings"

	"github.com/hpetersen/cityevents/internal/event"
	"github.com/hpetersen/cityevents/internal/extract"
	"github.com/hpetersen/cityevents/internal/logger"
)

// Confidence scoring constants. Bases reflect how trustworthy the
// producing strategy is; the per-field increment rewards records with
// more populated fields. Tunable, not a compatibility surface.
const (
	baseStructured = 0.9
	baseSelector   = 0.6
	baseHeuristic  = 0.3
	fieldIncrement = 0.02
)

// Parser extracts event fields from candidate blocks.
type Parser struct{}

// New creates a Parser.
func New() *Parser {
	return &Parser{}
}

// Parse extracts an event record from one block. The second return
// value is false when the block yields neither a title nor a date;
// such blocks are rejected, never returned partially populated.
func (p *Parser) Parse(block extract.Block) (*event.Extracted, bool) {
	ev := &event.Extracted{
		Source:    block.Source,
		SourceURL: block.PageURL,
		Type:      event.TypeGeneric,
	}

	if block.Structured != nil {
		parseStructured(block.Structured, ev)
	}

	lines := splitLines(block.Text)
	if ev.Title == "" {
		ev.Title = extractTitle(lines)
	}
	if ev.StartDate == nil {
		ev.StartDate, ev.EndDate = extractDates(block.Text)
	}
	if ev.StartTime == nil {
		ev.StartTime, ev.EndTime = extractTimes(block.Text)
	}
	if ev.Location == nil {
		ev.Location = extractLocation(lines)
	}
	if ev.Price == nil {
		ev.Price = extractPrice(block.Text)
	}
	ev.Type = classify(ev.Title, ev.Description)

	if !ev.Valid() {
		return nil, false
	}

	ev.Confidence = score(ev)
	return ev, true
}

// ParseAll parses each block independently and drops rejects. One
// bad block never aborts the rest of the batch.
func (p *Parser) ParseAll(blocks []extract.Block) []*event.Extracted {
	events := make([]*event.Extracted, 0, len(blocks))
	rejected := 0
	for _, block := range blocks {
		ev, ok := p.Parse(block)
		if !ok {
			rejected++
			continue
		}
		events = append(events, ev)
	}
	if rejected > 0 {
		logger.Debug("rejected candidate blocks", logger.Fields{
			"rejected": rejected,
			"kept":     len(events),
		})
	}
	return events
}

// score starts from the strategy base and adds a fixed increment per
// populated field, capped at 1.0.
func score(ev *event.Extracted) float64 {
	base := baseHeuristic
	switch ev.Source {
	case event.SourceStructured:
		base = baseStructured
	case event.SourceSelector:
		base = baseSelector
	}

	populated := 0
	if ev.Title != "" {
		populated++
	}
	if ev.StartDate != nil {
		populated++
	}
	if ev.StartTime != nil {
		populated++
	}
	if ev.Location != nil {
		populated++
	}
	if ev.Price != nil {
		populated++
	}

	confidence := base + float64(populated)*fieldIncrement
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
