// Package sshconf parses the user's SSH client configuration into
// selectable server entries.
//
// Only the four keys the copy pipeline needs are read: Host, HostName,
// User, IdentityFile. Wildcard Host patterns are parsed without error but
// marked so the selection dialog can exclude them. Unknown keys and
// malformed lines are skipped; parsing never fails because of them.
package sshconf

import (
	"bufio"
	"os"
	"strings"

	"quickact/internal/models"
	"quickact/internal/shared"
)

// Parse reads the SSH config at path and returns its host entries in file
// order. A missing file yields an empty set, not an error.
func Parse(path string) ([]models.ServerEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []models.ServerEntry
	var current *models.ServerEntry

	flush := func() {
		if current != nil {
			entries = append(entries, *current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := splitDirective(line)
		if !ok || value == "" {
			continue
		}

		switch strings.ToLower(key) {
		case "host":
			flush()
			// Multiple patterns on one Host line select the first; the
			// pipeline only offers single-alias blocks anyway.
			alias := unquote(strings.Fields(value)[0])
			current = &models.ServerEntry{Alias: alias}
		case "hostname":
			if current != nil {
				current.HostName = value
			}
		case "user":
			if current != nil {
				current.User = value
			}
		case "identityfile":
			if current != nil {
				current.IdentityFile = shared.ExpandHome(unquote(value))
			}
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return entries, err
	}
	return entries, nil
}

// Selectable filters entries down to the set offered for selection,
// dropping wildcard aliases.
func Selectable(entries []models.ServerEntry) []models.ServerEntry {
	var out []models.ServerEntry
	for _, e := range entries {
		if !e.IsWildcard() {
			out = append(out, e)
		}
	}
	return out
}

// splitDirective splits "Key value" or "Key=value" into its parts.
func splitDirective(line string) (key, value string, ok bool) {
	if i := strings.IndexAny(line, " \t="); i > 0 {
		return line[:i], strings.TrimSpace(strings.TrimLeft(line[i:], " \t=")), true
	}
	return "", "", false
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
