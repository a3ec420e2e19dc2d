// Package parse turns candidate blocks into extracted event records.
//
// The field parser applies an ordered set of pattern matchers with
// fixed precedence: title, dates, times, location, price and event
// type, each normalized to a canonical form (ISO 8601 dates, 24-hour
// times). Structured-data blocks carry typed fields already and skip
// most of the pattern matching. Parsing is a pure function of its
// input; a block yielding neither a title nor a date is rejected, and
// one rejection never aborts the rest of a batch.
package parse
