package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/hpetersen/cityevents/internal/event"
	"github.com/hpetersen/cityevents/internal/extract"
	"github.com/hpetersen/cityevents/internal/fetch"
	"github.com/hpetersen/cityevents/internal/logger"
	"github.com/hpetersen/cityevents/internal/parse"
	"github.com/hpetersen/cityevents/internal/progress"
	"github.com/hpetersen/cityevents/internal/venue"
)

// Scraper runs the fetch -> extract -> parse pipeline.
type Scraper struct {
	fetcher *fetch.Fetcher
	parser  *parse.Parser
}

// Result is the outcome of scraping one page.
type Result struct {
	URL string
	// Venue is nil for ad hoc URL scrapes.
	Venue       *venue.Profile
	Events      []*event.Extracted
	BlocksFound int
	// Method and Insecure record how the page was fetched.
	Method   fetch.Method
	Insecure bool
}

// New creates a scraper. The fetcher may be nil, in which case a
// default one is used.
func New(fetcher *fetch.Fetcher) *Scraper {
	if fetcher == nil {
		fetcher = fetch.New()
	}
	return &Scraper{
		fetcher: fetcher,
		parser:  parse.New(),
	}
}

// ScrapeURL runs the pipeline against a single page with the default
// extraction ladder.
func (s *Scraper) ScrapeURL(ctx context.Context, url string) (*Result, error) {
	return s.scrape(ctx, url, nil, extract.New())
}

// ScrapeVenue runs the pipeline against a venue's events page,
// honoring the profile's selector and strategy overrides.
func (s *Scraper) ScrapeVenue(ctx context.Context, profile *venue.Profile) (*Result, error) {
	x := extract.New()
	if profile.Selector != "" {
		x = x.WithSelector(profile.Selector)
	}
	if profile.Strategy != "" {
		x = x.WithStrategy(profile.Strategy)
	}
	return s.scrape(ctx, profile.URL, profile, x)
}

func (s *Scraper) scrape(ctx context.Context, url string, profile *venue.Profile, x *extract.Extractor) (*Result, error) {
	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	blocks := x.Extract(page)
	events := s.parser.ParseAll(blocks)

	fields := logger.Fields{
		"url":    url,
		"method": string(page.Method),
		"blocks": len(blocks),
		"events": len(events),
	}
	if profile != nil {
		fields["venue"] = profile.ID
	}
	logger.Info("page scraped", fields)

	return &Result{
		URL:         url,
		Venue:       profile,
		Events:      events,
		BlocksFound: len(blocks),
		Method:      page.Method,
		Insecure:    page.Insecure,
	}, nil
}

// Run scrapes every profile in order. A venue that fails is recorded
// on the tracker and skipped; Run only returns an error when every
// venue failed. The tracker may be nil.
func (s *Scraper) Run(ctx context.Context, profiles []*venue.Profile, tracker *progress.Tracker) ([]*Result, error) {
	if tracker == nil {
		tracker = progress.NewTracker(len(profiles))
	}

	var results []*Result
	for _, profile := range profiles {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		tracker.StartVenue(profile.ID)
		started := time.Now()

		res, err := s.ScrapeVenue(ctx, profile)
		if err != nil {
			logger.Error("venue scrape failed", logger.Fields{
				"venue": profile.ID,
				"url":   profile.URL,
			}, err)
			tracker.RecordError(profile.ID, err)
			continue
		}

		tracker.FinishVenue(profile.ID, res.BlocksFound, len(res.Events), time.Since(started))
		results = append(results, res)
	}

	if len(results) == 0 && len(profiles) > 0 {
		return nil, fmt.Errorf("all %d venues failed", len(profiles))
	}
	return results, nil
}

// Events flattens run results into a single event list, preserving
// venue order.
func Events(results []*Result) []*event.Extracted {
	var events []*event.Extracted
	for _, res := range results {
		events = append(events, res.Events...)
	}
	return events
}
