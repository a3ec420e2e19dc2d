package extract

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/hpetersen/cityevents/internal/event"
	"github.com/hpetersen/cityevents/internal/fetch"
)

const (
	// titleWindow is how many lines above a date line a title
	// candidate may sit.
	titleWindow = 3
	// tailLines is how many lines after the date line are kept in
	// the cluster for time/price context.
	tailLines = 2
	maxTitleLen = 80
)

// dateBearing recognizes a line that contains any supported date
// shape. Kept deliberately loose; the field parser does the strict
// matching later.
var dateBearing = regexp.MustCompile(`(?i)\b(jan(uary)?|feb(ruary)?|mar(ch)?|apr(il)?|may|jun(e)?|jul(y)?|aug(ust)?|sep(t(ember)?)?|oct(ober)?|nov(ember)?|dec(ember)?)\.?\s+\d{1,2}\b|\b\d{4}-\d{2}-\d{2}\b|\b\d{1,2}/\d{1,2}/\d{2,4}\b`)

var timeOnly = regexp.MustCompile(`(?i)^\d{1,2}(:\d{2})?\s*(am|pm)([\s–—-]|to|$)`)

// heuristicBlocks is the last-resort strategy: scan readable text for
// clusters where a short capitalized line precedes a date-bearing
// line within a bounded window. Necessarily noisy, which shows up in
// lower confidence downstream.
func heuristicBlocks(page *fetch.RawPage) []Block {
	lines := cleanLines(readableText(page))

	var blocks []Block
	consumed := -1
	for i, line := range lines {
		if i <= consumed || !dateBearing.MatchString(line) {
			continue
		}

		titleIdx := -1
		for j := i - 1; j >= 0 && j >= i-titleWindow; j-- {
			if j <= consumed {
				break
			}
			if titleLike(lines[j]) {
				titleIdx = j
				break
			}
		}
		if titleIdx < 0 {
			continue
		}

		end := i + tailLines
		if end >= len(lines) {
			end = len(lines) - 1
		}
		// Don't swallow the next cluster's date line.
		for k := i + 1; k <= end; k++ {
			if dateBearing.MatchString(lines[k]) {
				end = k - 1
				break
			}
		}

		blocks = append(blocks, Block{
			Text:       strings.Join(lines[titleIdx:end+1], "\n"),
			Source:     event.SourceHeuristic,
			Provenance: fmt.Sprintf("line %d", titleIdx),
			PageURL:    page.URL,
		})
		consumed = end
	}
	return blocks
}

// titleLike matches a short capitalized line that is not itself a
// date, time or price.
func titleLike(line string) bool {
	if line == "" || utf8.RuneCountInString(line) > maxTitleLen {
		return false
	}
	first, _ := utf8.DecodeRuneInString(line)
	if !unicode.IsUpper(first) {
		return false
	}
	if dateBearing.MatchString(line) || timeOnly.MatchString(line) {
		return false
	}
	if strings.HasPrefix(line, "$") {
		return false
	}
	return true
}

// readableText distills the page to visible text, preferring the
// readability extraction and falling back to a bare DOM walk when it
// finds no article content.
func readableText(page *fetch.RawPage) string {
	pageURL, _ := url.Parse(page.URL)
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(page.Body), pageURL)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return article.TextContent
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		return ""
	}
	doc.Find("script,style,noscript").Remove()
	return doc.Text()
}
