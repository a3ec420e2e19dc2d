// Package venue holds per-venue scraping profiles.
//
// A profile is a small configuration record keyed by a stable venue
// ID: display name, city, address override, events page URL, and an
// optional preferred extraction strategy or container selector. The
// registry seeds from a built-in table and can merge overrides from a
// YAML file, replacing the ad hoc per-site string matching a scraper
// would otherwise accumulate.
package venue
