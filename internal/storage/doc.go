// Package storage provides JSON-based persistence for event snapshots.
//
// The storage package manages local snapshot files that track scraped
// events across runs. Snapshots are stored in JSON format, with
// separate files for each venue (snapshot_VENUE.json) and a combined
// file for the whole city (snapshot.json).
package storage
