// Package services defines the capability interfaces for the external services both pipelines call and implements the HTTP clients for them.
//
// # Capability Interfaces
//
// Network access is abstracted behind three small interfaces so tests can
// substitute deterministic fakes instead of live calls:
//   - [Identifier] : submit an acoustic fingerprint, receive scored candidates
//   - [Catalog] : resolve a recording ID into full metadata
//   - [DirLister] : list a directory on an already-connected remote host
//
// # AcoustID Implementation
//
// [AcoustIDService] queries the AcoustID lookup endpoint with the fingerprint
// and duration produced by fpcalc. The API key is read from the configured
// environment variable at lookup time; an absent key still permits the query
// with degraded accuracy.
//
// # MusicBrainz Implementation
//
// [MusicBrainzService] fetches recording metadata (artists, releases) from the
// MusicBrainz web service. Requests carry the configured User-Agent and are
// throttled to one per second with [rate.Limiter], per the service's
// etiquette rules.
//
// # Error Handling
//
// Both clients wrap failures in [shared.ErrLookupFailed]. Nothing is retried;
// a network failure surfaces to the user and the run ends.
package services
