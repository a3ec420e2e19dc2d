// Package extract locates candidate event fragments within a fetched
// page.
//
// Extraction walks a fixed strategy ladder: embedded JSON-LD
// structured data first, then a priority list of common event
// container selectors, and finally a heuristic scan of the page's
// readable text for title/date line clusters. The first strategy that
// yields at least one block wins; blocks are produced in document
// order and each traces back to its page via a provenance pointer.
package extract
