// package models defines the data model for the quick action pipelines
package models

import (
	"path/filepath"
	"strings"
)

// AudioMatch is one candidate identification for an audio file.
// Matches are produced per lookup and discarded after the tagging decision.
type AudioMatch struct {
	RecordingID string  // MusicBrainz recording MBID
	Title       string
	Artist      string
	Album       string
	Date        string  // Release date, YYYY or YYYY-MM-DD
	Confidence  float64 // Match confidence in [0, 1]
}

// Usable reports whether the match clears the confidence gate.
// The threshold is inclusive: a 0.50 match proceeds.
func (m AudioMatch) Usable(threshold float64) bool {
	return m.Confidence >= threshold
}

// ServerEntry is one selectable host parsed from the SSH client config.
// Entries are read-only and re-parsed on every run.
type ServerEntry struct {
	Alias        string // Host alias from the config block
	HostName     string // Real hostname, falls back to Alias when empty
	User         string
	IdentityFile string // Expanded path to the private key, may be empty
}

// Addr returns the hostname to dial, preferring HostName over the alias.
func (s ServerEntry) Addr() string {
	if s.HostName != "" {
		return s.HostName
	}
	return s.Alias
}

// IsWildcard reports whether the alias contains pattern characters.
// Wildcard entries are parsed but never offered for selection.
func (s ServerEntry) IsWildcard() bool {
	return strings.ContainsAny(s.Alias, "*?")
}

// TransferTask describes one remote copy invocation.
// Created per invocation, consumed by the transfer step, then discarded.
type TransferTask struct {
	Sources     []string // Local files or directories, one or more
	Server      ServerEntry
	Destination string // Remote directory path
	Auth        AuthMode
	Password    string // Only set when Auth is AuthPassword
	CreateDest  bool   // Create the destination directory before copying
}

// AuthMode selects how the transfer authenticates.
type AuthMode int

const (
	AuthKey AuthMode = iota
	AuthPassword
)

func (a AuthMode) String() string {
	if a == AuthPassword {
		return "password"
	}
	return "key"
}

// ToolEnvironment describes an isolated per-tool script runtime.
// The path is deterministic per tool so re-invocation reuses it.
type ToolEnvironment struct {
	Tool         string   // Tool identifier, e.g. "music-import"
	Path         string   // Runtime directory, <runtime_root>/<tool>
	Dependencies []string // Declared dependency manifest
}

// EnvironmentPath derives the deterministic runtime path for a tool.
func EnvironmentPath(root, tool string) string {
	return filepath.Join(root, tool)
}

// Metadata holds the tag fields written to an audio file.
type Metadata struct {
	Title  string
	Artist string
	Album  string
	Date   string
}

// FromMatch copies the taggable fields out of an [AudioMatch].
func FromMatch(m AudioMatch) Metadata {
	return Metadata{Title: m.Title, Artist: m.Artist, Album: m.Album, Date: m.Date}
}

// Year returns the leading year of the release date, or 0 when unset.
func (m Metadata) Year() int {
	if len(m.Date) < 4 {
		return 0
	}
	year := 0
	for _, r := range m.Date[:4] {
		if r < '0' || r > '9' {
			return 0
		}
		year = year*10 + int(r-'0')
	}
	return year
}
