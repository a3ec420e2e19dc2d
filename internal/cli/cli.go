package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hpetersen/cityevents/internal/calendar"
	"github.com/hpetersen/cityevents/internal/event"
	"github.com/hpetersen/cityevents/internal/filter"
	"github.com/hpetersen/cityevents/internal/logger"
	"github.com/hpetersen/cityevents/internal/progress"
	"github.com/hpetersen/cityevents/internal/scraper"
	"github.com/hpetersen/cityevents/internal/storage"
	"github.com/hpetersen/cityevents/internal/venue"
)

const (
	ExitSuccess   = 0
	ExitError     = 1
	ExitNewEvents = 2
)

var (
	flagURL        string
	flagVenues     []string
	flagAll        bool
	flagVenuesFile string
	flagDataDir    string
	flagFormat     string
	flagSort       string
	flagICS        string
	flagNewOnly    bool
	flagVerbose    bool

	flagDateRange string
	flagTypes     []string
	flagFree      bool
	flagMaxPrice  float64
	flagLocations []string
	flagWeekends  bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cityevents",
		Short: "Scrape local venue pages for upcoming events",
		Long: `A CLI tool that scrapes venue event pages, extracts event details
(dates, times, locations, prices), and tracks events across runs.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newVenuesCmd())

	return cmd
}

func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape one URL, selected venues, or every known venue",
		RunE:  runScrape,
	}

	cmd.Flags().StringVar(&flagURL, "url", "", "Scrape a single ad hoc URL")
	cmd.Flags().StringSliceVar(&flagVenues, "venue", nil, "Venue ID to scrape (repeatable)")
	cmd.Flags().BoolVar(&flagAll, "all", false, "Scrape every registered venue")
	cmd.Flags().StringVar(&flagVenuesFile, "venues-file", "", "YAML file with additional venue profiles")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", "~/.local/share/cityevents", "Data directory for snapshots")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagSort, "sort", "date", "Sort order: date, title, or confidence")
	cmd.Flags().StringVar(&flagICS, "ics", "", "Write an iCalendar file to this path")
	cmd.Flags().BoolVar(&flagNewOnly, "new-only", false, "Show only events not seen in previous runs")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.Flags().StringVar(&flagDateRange, "date-range", "", "Date range filter (e.g. '2025-06-01', 'Mar 1-15', 'June')")
	cmd.Flags().StringSliceVar(&flagTypes, "type", nil, "Event type filter (exhibition, tour, workshop, talk, festival, event)")
	cmd.Flags().BoolVar(&flagFree, "free", false, "Show only free events")
	cmd.Flags().Float64Var(&flagMaxPrice, "max-price", 0, "Maximum ticket price")
	cmd.Flags().StringSliceVar(&flagLocations, "location", nil, "Location substring filter (repeatable)")
	cmd.Flags().BoolVar(&flagWeekends, "weekends", false, "Show only weekend events")

	return cmd
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	targets := 0
	for _, set := range []bool{flagURL != "", len(flagVenues) > 0, flagAll} {
		if set {
			targets++
		}
	}
	if targets != 1 {
		return fmt.Errorf("exactly one of --url, --venue, or --all is required")
	}

	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	f, err := buildFilter()
	if err != nil {
		return err
	}

	ctx := context.Background()
	sc := scraper.New(nil)

	var results []*scraper.Result
	switch {
	case flagURL != "":
		res, err := sc.ScrapeURL(ctx, flagURL)
		if err != nil {
			return fmt.Errorf("scraping %s: %w", flagURL, err)
		}
		results = []*scraper.Result{res}
	default:
		profiles, err := selectProfiles()
		if err != nil {
			return err
		}
		tracker := progress.NewTracker(len(profiles))
		results, err = sc.Run(ctx, profiles, tracker)
		if err != nil {
			return fmt.Errorf("scraping venues: %w", err)
		}
		if flagVerbose {
			snap := tracker.Snapshot()
			fmt.Fprintf(os.Stderr, "Scraped %d/%d venues in %s (%d failed)\n",
				snap.VenuesDone-len(snap.Errors), snap.VenuesTotal, snap.Elapsed.Round(time.Millisecond), len(snap.Errors))
		}
	}

	events := scraper.Events(results)

	// Track events across runs in the combined snapshot
	store, err := storage.New(flagDataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	merge, err := store.UpdateSnapshot(events, "")
	if err != nil {
		return fmt.Errorf("updating snapshot: %w", err)
	}

	shown := events
	if flagNewOnly {
		shown = merge.New
	}
	shown = f.Apply(shown)
	sortEvents(shown, SortOrder(flagSort))

	if flagICS != "" {
		if err := os.WriteFile(flagICS, []byte(calendar.GenerateICS(shown)), 0644); err != nil {
			return fmt.Errorf("writing calendar: %w", err)
		}
		if flagVerbose {
			fmt.Fprintf(os.Stderr, "Wrote calendar to %s\n", flagICS)
		}
	}

	result := &OutputResult{
		CheckedAt:  time.Now().UTC(),
		Events:     shown,
		EventCount: len(shown),
		NewCount:   len(merge.New),
		Filter:     f.String(),
	}
	if err := WriteOutput(os.Stdout, result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if len(merge.New) > 0 {
		os.Exit(ExitNewEvents)
	}
	os.Exit(ExitSuccess)
	return nil
}

// buildFilter assembles the event filter from command-line flags
func buildFilter() (*filter.Filter, error) {
	f := filter.NewFilter()

	if flagDateRange != "" {
		from, to, err := filter.ParseDateRange(flagDateRange)
		if err != nil {
			return nil, fmt.Errorf("parsing --date-range: %w", err)
		}
		f.DateFrom = from
		f.DateTo = to
	}

	for _, name := range flagTypes {
		t, err := event.ParseType(name)
		if err != nil {
			return nil, fmt.Errorf("parsing --type: %w", err)
		}
		f.Types = append(f.Types, t)
	}

	f.FreeOnly = flagFree
	f.MaxPrice = flagMaxPrice
	f.Locations = flagLocations
	f.WeekendsOnly = flagWeekends

	return f, nil
}

// selectProfiles resolves --venue/--all flags against the registry
func selectProfiles() ([]*venue.Profile, error) {
	registry := venue.NewRegistry()
	if flagVenuesFile != "" {
		if err := registry.LoadFile(flagVenuesFile); err != nil {
			return nil, fmt.Errorf("loading venues file: %w", err)
		}
	}

	if flagAll {
		return registry.All(), nil
	}

	profiles := make([]*venue.Profile, 0, len(flagVenues))
	for _, id := range flagVenues {
		p := registry.Lookup(id)
		if p == nil {
			return nil, fmt.Errorf("unknown venue: %s", id)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func newVenuesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "venues",
		Short: "List known venue profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := venue.NewRegistry()
			if flagVenuesFile != "" {
				if err := registry.LoadFile(flagVenuesFile); err != nil {
					return fmt.Errorf("loading venues file: %w", err)
				}
			}
			for _, p := range registry.All() {
				fmt.Printf("%-20s %s (%s)\n", p.ID, p.Name, p.URL)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flagVenuesFile, "venues-file", "", "YAML file with additional venue profiles")
	return cmd
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
