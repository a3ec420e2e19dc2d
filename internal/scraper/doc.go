// Package scraper composes the fetch, extract, and parse stages into
// a single pipeline, and runs that pipeline across a set of venue
// profiles.
//
// A run is sequential: venues are scraped one at a time, a failing
// venue is recorded and skipped, and the rest of the run continues.
package scraper
