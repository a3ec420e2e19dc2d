package extract

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/hpetersen/cityevents/internal/event"
)

// containerSelectors are the class/attribute patterns known to mark
// event containers, in priority order. The first selector with at
// least one match is used for the entire page.
var containerSelectors = []string{
	".event-item",
	".event-card",
	".event-listing",
	".event-list-item",
	".calendar-event",
	".events-item",
	"article.event",
	"li.event",
	"[data-event]",
	"[data-event-id]",
	".event",
	".program-item",
	".program-event",
	".exhibition-item",
	".tour-item",
	".upcoming-event",
	".whats-on-item",
	".agenda-item",
}

// selectorBlocks tries the override selector followed by the built-in
// list; each matching element becomes one block.
func (x *Extractor) selectorBlocks(doc *goquery.Document, pageURL string) []Block {
	selectors := containerSelectors
	if x.selectorOverride != "" {
		selectors = append([]string{x.selectorOverride}, containerSelectors...)
	}

	for _, selector := range selectors {
		matches := doc.Find(selector)
		if matches.Length() == 0 {
			continue
		}

		blocks := make([]Block, 0, matches.Length())
		matches.Each(func(i int, s *goquery.Selection) {
			text := cleanText(blockText(s))
			if text == "" {
				return
			}
			html, _ := goquery.OuterHtml(s)
			blocks = append(blocks, Block{
				Text:       text,
				HTML:       html,
				Source:     event.SourceSelector,
				Provenance: fmt.Sprintf("%s[%d]", selector, i),
				PageURL:    pageURL,
			})
		})
		if len(blocks) > 0 {
			return blocks
		}
	}
	return nil
}

// blockText extracts the element's text with one line per child
// element, so the field parser sees the same line structure a reader
// would.
func blockText(s *goquery.Selection) string {
	var out string
	s.Contents().Each(func(i int, child *goquery.Selection) {
		text := child.Text()
		if text == "" {
			return
		}
		if out != "" {
			out += "\n"
		}
		out += text
	})
	if out == "" {
		out = s.Text()
	}
	return out
}
