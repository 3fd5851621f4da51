// package services defines interfaces for external lookups
//
// AcoustID, MusicBrainz, remote directory listings
package services

import (
	"context"

	"quickact/internal/models"
)

// Fingerprint is a compact acoustic signature of one audio file.
type Fingerprint struct {
	Duration int    // Track length in seconds
	Value    string // Base64 chromaprint from fpcalc
}

// Candidate is one scored identification returned by the identifier.
type Candidate struct {
	RecordingID string  // MusicBrainz recording MBID
	Title       string
	Artist      string
	Score       float64 // Confidence in [0, 1]
}

// Identifier submits fingerprints to a remote identification service.
type Identifier interface {
	// LookupFingerprint returns candidate identifications ordered as the
	// service returned them. An empty slice means no match was found.
	LookupFingerprint(ctx context.Context, fp Fingerprint) ([]Candidate, error)
}

// Catalog resolves recording IDs against a remote metadata catalog.
type Catalog interface {
	// FetchMetadata returns full metadata for a recording. The returned
	// match carries no confidence; the caller owns the gate decision.
	FetchMetadata(ctx context.Context, recordingID string) (*models.AudioMatch, error)
}

// Searcher queries the catalog's search index by textual metadata, used
// when the user corrects fields and asks for another lookup.
type Searcher interface {
	// SearchRecording returns the best catalog hit for a title and artist,
	// with the index's normalized score as its confidence.
	SearchRecording(ctx context.Context, title, artist string) (*models.AudioMatch, error)
}

// DirLister lists directories on a remote host over an established connection.
type DirLister interface {
	// ListDir returns the directory names directly under path.
	ListDir(ctx context.Context, path string) ([]string, error)
}
