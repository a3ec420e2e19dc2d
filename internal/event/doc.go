// Package event defines the extracted event record shared across the
// scraping pipeline.
//
// The event package holds the Extracted record handed to callers after
// fetching and parsing a venue page, the fixed event type vocabulary,
// and snapshot-based deduplication. Each record gets a deterministic
// SHA1-based key from its normalized title and start date, so the same
// event scraped twice collapses to one entry across runs.
package event
