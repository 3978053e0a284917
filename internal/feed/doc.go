// Package feed fetches and decodes the photo list from the feed host.
//
// The feed is a single JSON endpoint, <base>/list.json, returning an
// array of {url, size, title?} records. Decode failures and transport
// failures are reported as distinct error types so callers can log the
// difference, even though the state machine collapses both into an
// errored load cycle.
package feed
