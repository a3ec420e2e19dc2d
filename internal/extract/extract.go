package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hpetersen/cityevents/internal/event"
	"github.com/hpetersen/cityevents/internal/fetch"
	"github.com/hpetersen/cityevents/internal/logger"
)

// Block is a fragment of a page believed to represent one event.
type Block struct {
	// Text is the cleaned visible text of the fragment, one line per
	// source line.
	Text string
	// HTML is the raw fragment markup (selector strategy only).
	HTML string
	// Source names the strategy that produced the block.
	Source event.Source
	// Provenance points back into the page (selector path or line
	// offset) for debugging.
	Provenance string
	// Structured holds the decoded JSON-LD payload (structured-data
	// strategy only).
	Structured map[string]any
	// PageURL is the URL of the page the block was cut from.
	PageURL string
}

// Extractor locates candidate event blocks in fetched pages. An
// optional selector override (from a venue profile) is tried before
// the built-in selector list, and a strategy override starts the
// ladder at a later rung.
type Extractor struct {
	selectorOverride string
	strategy         event.Source
}

// New creates an Extractor with default settings.
func New() *Extractor {
	return &Extractor{}
}

// WithSelector returns a copy of the extractor that tries the given
// container selector before the built-in list.
func (x *Extractor) WithSelector(selector string) *Extractor {
	return &Extractor{selectorOverride: selector, strategy: x.strategy}
}

// WithStrategy returns a copy of the extractor whose ladder starts at
// the given rung. Later rungs are still tried if the starting rung
// finds nothing; earlier, noisier-on-this-venue rungs are skipped.
func (x *Extractor) WithStrategy(strategy event.Source) *Extractor {
	return &Extractor{selectorOverride: x.selectorOverride, strategy: strategy}
}

// Extract returns the candidate blocks for a page, in document order.
// One page yields zero or more blocks; a zero-block result means no
// strategy recognized anything event-like.
func (x *Extractor) Extract(page *fetch.RawPage) []Block {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		logger.Warn("unparseable HTML document", logger.Fields{"url": page.URL})
		return nil
	}

	if x.strategy == "" || x.strategy == event.SourceStructured {
		if blocks := structuredBlocks(doc, page.URL); len(blocks) > 0 {
			return blocks
		}
	}
	if x.strategy != event.SourceHeuristic {
		if blocks := x.selectorBlocks(doc, page.URL); len(blocks) > 0 {
			return blocks
		}
	}
	return heuristicBlocks(page)
}

// cleanText trims every line and drops empty ones, preserving line
// structure for the field parser.
func cleanText(raw string) string {
	lines := cleanLines(raw)
	return strings.Join(lines, "\n")
}

func cleanLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
