// Acoustic fingerprinting via the chromaprint fpcalc binary
package music

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"quickact/internal/services"
	"quickact/internal/shared"
)

// Format is an accepted audio container format.
type Format int

const (
	FormatUnknown Format = iota
	FormatMP3
	FormatM4A
)

// DetectFormat classifies a file by extension. Only MP3 and M4A are
// accepted; everything else is an UnsupportedInput failure.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return FormatMP3, nil
	case ".m4a":
		return FormatM4A, nil
	default:
		return FormatUnknown, fmt.Errorf("%w: %s", shared.ErrUnsupportedInput, filepath.Ext(path))
	}
}

// Fingerprinter computes an acoustic fingerprint for one audio file.
type Fingerprinter interface {
	Fingerprint(ctx context.Context, path string) (services.Fingerprint, error)
}

// FpcalcFingerprinter shells out to chromaprint's fpcalc, the same tool
// the identification service's own clients use.
type FpcalcFingerprinter struct {
	Binary string // Defaults to "fpcalc" on PATH
}

type fpcalcOutput struct {
	Duration    float64 `json:"duration"`
	Fingerprint string  `json:"fingerprint"`
}

// Fingerprint runs fpcalc -json on the file.
func (f FpcalcFingerprinter) Fingerprint(ctx context.Context, path string) (services.Fingerprint, error) {
	binary := f.Binary
	if binary == "" {
		binary = "fpcalc"
	}

	out, err := exec.CommandContext(ctx, binary, "-json", path).Output()
	if err != nil {
		return services.Fingerprint{}, fmt.Errorf("fingerprinting failed: %w", err)
	}

	var parsed fpcalcOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return services.Fingerprint{}, fmt.Errorf("unexpected fpcalc output: %w", err)
	}
	if parsed.Fingerprint == "" {
		return services.Fingerprint{}, fmt.Errorf("fpcalc produced no fingerprint for %s", path)
	}

	return services.Fingerprint{
		Duration: int(parsed.Duration),
		Value:    parsed.Fingerprint,
	}, nil
}
