// Relocation into the managed auto-import directory
package music

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Move relocates path into destDir and returns the final destination.
//
// Name collisions are resolved deterministically with numeric suffixes:
// track.mp3, track_1.mp3, track_2.mp3, first free counter wins. Existing
// files are never overwritten.
func Move(path, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create import directory: %w", err)
	}

	dest := filepath.Join(destDir, filepath.Base(path))
	if _, err := os.Stat(dest); err == nil {
		base := filepath.Base(path)
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)

		for counter := 1; ; counter++ {
			candidate := filepath.Join(destDir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
			if _, err := os.Stat(candidate); os.IsNotExist(err) {
				dest = candidate
				break
			}
		}
	}

	if err := os.Rename(path, dest); err != nil {
		// Rename fails across filesystems; fall back to copy then remove.
		if err := copyAcross(path, dest); err != nil {
			return "", fmt.Errorf("failed to move %s: %w", path, err)
		}
	}
	return dest, nil
}

func copyAcross(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
