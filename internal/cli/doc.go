// Package cli implements the command-line interface for cityevents.
//
// The cli package provides the Cobra-based CLI with support for
// scraping venue event pages, formatting output (text/JSON), sorting,
// filtering, exporting iCalendar files, and managing snapshots. It
// coordinates the scraper, venue, storage, filter, and calendar
// packages.
package cli
