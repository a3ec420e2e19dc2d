package extract

import (
	"os"
	"strings"
	"testing"

	"github.com/hpetersen/cityevents/internal/event"
	"github.com/hpetersen/cityevents/internal/fetch"
)

func pageOf(body string) *fetch.RawPage {
	return &fetch.RawPage{
		URL:  "https://museum.example/events",
		Body: body,
	}
}

func TestExtractStructuredData(t *testing.T) {
	body := `<html><head>
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"Event","name":"Gallery Talk","startDate":"2025-06-01T18:00:00"}
</script>
</head><body><p>nothing else</p></body></html>`

	blocks := New().Extract(pageOf(body))
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Source != event.SourceStructured {
		t.Errorf("expected structured source, got %s", blocks[0].Source)
	}
	if blocks[0].Structured["name"] != "Gallery Talk" {
		t.Errorf("expected structured payload to carry the name, got %v", blocks[0].Structured["name"])
	}
	if blocks[0].PageURL != "https://museum.example/events" {
		t.Errorf("block should trace back to its page, got %q", blocks[0].PageURL)
	}
}

func TestExtractStructuredDataGraphAndArrays(t *testing.T) {
	body := `<html><head>
<script type="application/ld+json">
{"@graph":[
  {"@type":"WebSite","name":"City Museum"},
  {"@type":"ExhibitionEvent","name":"Impressionism","startDate":"2025-12-05"},
  {"@type":["Event","Festival"],"name":"Summer Festival","startDate":"2025-07-01"}
]}
</script>
</head><body></body></html>`

	blocks := New().Extract(pageOf(body))
	if len(blocks) != 2 {
		t.Fatalf("expected 2 event blocks out of the graph, got %d", len(blocks))
	}
	if blocks[0].Structured["name"] != "Impressionism" || blocks[1].Structured["name"] != "Summer Festival" {
		t.Errorf("unexpected block order: %v, %v", blocks[0].Structured["name"], blocks[1].Structured["name"])
	}
}

func TestExtractSkipsMalformedStructuredData(t *testing.T) {
	body := `<html><head>
<script type="application/ld+json">{not valid json</script>
<script type="application/ld+json">
{"@type":"Event","name":"Gallery Talk","startDate":"2025-06-01"}
</script>
</head><body></body></html>`

	blocks := New().Extract(pageOf(body))
	if len(blocks) != 1 {
		t.Fatalf("expected malformed script to be skipped, got %d blocks", len(blocks))
	}
	if blocks[0].Structured["name"] != "Gallery Talk" {
		t.Errorf("expected the valid script to survive, got %v", blocks[0].Structured["name"])
	}
}

func TestExtractMalformedStructuredDataFallsThrough(t *testing.T) {
	// JSON-LD present but unusable: the selector strategy takes over.
	body := `<html><head>
<script type="application/ld+json">{broken</script>
</head><body>
<div class="event-item"><h3>Guided Tour</h3><span>June 5, 2025</span></div>
</body></html>`

	blocks := New().Extract(pageOf(body))
	if len(blocks) != 1 {
		t.Fatalf("expected 1 selector block, got %d", len(blocks))
	}
	if blocks[0].Source != event.SourceSelector {
		t.Errorf("expected selector source, got %s", blocks[0].Source)
	}
}

func TestExtractSelectorScan(t *testing.T) {
	data, err := os.ReadFile("testdata/museum_events.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	blocks := New().Extract(pageOf(string(data)))
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}

	for i, block := range blocks {
		if block.Source != event.SourceSelector {
			t.Errorf("block %d: expected selector source, got %s", i, block.Source)
		}
		if block.Provenance == "" {
			t.Errorf("block %d: expected a provenance pointer", i)
		}
	}
	if !strings.Contains(blocks[0].Text, "Impressionism Exhibit") {
		t.Errorf("first block should contain the first event, got %q", blocks[0].Text)
	}
	if !strings.Contains(blocks[2].Text, "Curator Lecture") {
		t.Errorf("blocks should keep document order, got %q", blocks[2].Text)
	}
}

func TestExtractStructuredBeatsSelectors(t *testing.T) {
	body := `<html><head>
<script type="application/ld+json">{"@type":"Event","name":"Gallery Talk","startDate":"2025-06-01"}</script>
</head><body>
<div class="event-item"><h3>Stale Listing</h3><span>June 5, 2024</span></div>
</body></html>`

	blocks := New().Extract(pageOf(body))
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Source != event.SourceStructured {
		t.Errorf("structured data should win precedence, got %s", blocks[0].Source)
	}
}

func TestExtractSelectorOverride(t *testing.T) {
	body := `<html><body>
<div class="whatson-card"><h3>Night Market</h3><span>July 3, 2025</span></div>
<div class="whatson-card"><h3>Photowalk</h3><span>July 4, 2025</span></div>
</body></html>`

	if blocks := New().Extract(pageOf(body)); len(blocks) != 0 {
		t.Fatalf("built-in selectors should not match, got %d blocks", len(blocks))
	}

	blocks := New().WithSelector(".whatson-card").Extract(pageOf(body))
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks via override selector, got %d", len(blocks))
	}
}

func TestExtractHeuristicFallback(t *testing.T) {
	body := `<html><body>
<p>welcome to our venue calendar.</p>
<p>Guided Tour</p>
<p>meet at the entrance</p>
<p>June 5, 2025 | 2:00 pm–3:00 pm</p>
<p>contact the front desk with questions.</p>
</body></html>`

	blocks := New().Extract(pageOf(body))
	if len(blocks) != 1 {
		t.Fatalf("expected 1 heuristic block, got %d", len(blocks))
	}
	if blocks[0].Source != event.SourceHeuristic {
		t.Errorf("expected heuristic source, got %s", blocks[0].Source)
	}
	lines := strings.Split(blocks[0].Text, "\n")
	if lines[0] != "Guided Tour" {
		t.Errorf("cluster should start at the title line, got %q", lines[0])
	}
	if !strings.Contains(blocks[0].Text, "June 5, 2025") {
		t.Errorf("cluster should contain the date line, got %q", blocks[0].Text)
	}
}

func TestExtractNothingRecognizable(t *testing.T) {
	body := `<html><body><p>just some prose with no events at all.</p></body></html>`

	if blocks := New().Extract(pageOf(body)); len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %d", len(blocks))
	}
}

func TestExtractStrategyOverride(t *testing.T) {
	body := `<html><head>
<script type="application/ld+json">{"@type":"Event","name":"Gallery Talk","startDate":"2025-06-01"}</script>
</head><body>
<div class="event-item"><h3>Member Preview</h3><span>June 5, 2025</span></div>
</body></html>`

	blocks := New().WithStrategy(event.SourceSelector).Extract(pageOf(body))
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Source != event.SourceSelector {
		t.Errorf("selector strategy should skip structured data, got %s", blocks[0].Source)
	}
	if !strings.Contains(blocks[0].Text, "Member Preview") {
		t.Errorf("expected selector block text, got %q", blocks[0].Text)
	}
}
