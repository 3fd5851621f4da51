// Package music implements the audio tagging pipeline: fingerprint,
// remote lookup, confidence gate, confirmation, tag write, relocation.
//
// The pipeline is a sequential per-file state machine. Its terminal state
// is an explicit [Outcome] variant (Done, Skipped, Failed) rather than a
// boolean, so a low-confidence skip is distinguishable from success and
// from error in both the UI and tests. Ordering is strict: tagging must
// fully succeed before relocation runs, so a late failure never leaves a
// moved-but-untagged file.
package music

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"quickact/internal/models"
	"quickact/internal/services"
	"quickact/internal/shared"
)

// State is the pipeline's position for one file.
type State int

const (
	StateIdle State = iota
	StateFingerprinting
	StateLookupPending
	StateMatchEvaluated
	StateTagging
	StateRelocating
	StateDone
	StateSkipped
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDone:
		return "done"
	case StateSkipped:
		return "skipped"
	case StateFailed:
		return "failed"
	default:
		return "running"
	}
}

// Outcome is the terminal result for one file.
type Outcome struct {
	State   State
	Match   *models.AudioMatch // Best match, when one was evaluated
	MovedTo string             // Final path, when State is Done
	Reason  string             // User-readable explanation for Skipped
	Err     error              // Set when State is Failed
}

// Confirmer presents resolved metadata for user confirmation and returns
// the (possibly edited) fields. ok is false when the user declines.
type Confirmer func(ctx context.Context, match models.AudioMatch, filename string) (meta models.Metadata, ok bool, err error)

// Pipeline wires the fingerprinter, the remote services, the tagger, and
// the import directory into the tagging flow.
type Pipeline struct {
	fingerprinter Fingerprinter
	identifier    services.Identifier
	catalog       services.Catalog
	tagger        Tagger
	importDir     string
	minConfidence float64
	logger        *log.Logger
}

// PipelineOpts contains the dependencies for creating a Pipeline.
type PipelineOpts struct {
	Fingerprinter Fingerprinter
	Identifier    services.Identifier
	Catalog       services.Catalog
	Tagger        Tagger
	ImportDir     string
	MinConfidence float64
	Logger        *log.Logger
}

// NewPipeline creates a Pipeline with the provided dependencies.
func NewPipeline(opts PipelineOpts) *Pipeline {
	if opts.Tagger == nil {
		opts.Tagger = NativeTagger{}
	}
	if opts.Fingerprinter == nil {
		opts.Fingerprinter = FpcalcFingerprinter{}
	}
	if opts.MinConfidence == 0 {
		opts.MinConfidence = 0.5
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Pipeline{
		fingerprinter: opts.Fingerprinter,
		identifier:    opts.Identifier,
		catalog:       opts.Catalog,
		tagger:        opts.Tagger,
		importDir:     opts.ImportDir,
		minConfidence: opts.MinConfidence,
		logger:        opts.Logger,
	}
}

// Process runs the full pipeline for exactly one file.
func (p *Pipeline) Process(ctx context.Context, path string, confirm Confirmer) Outcome {
	if _, err := DetectFormat(path); err != nil {
		return Outcome{State: StateFailed, Err: err}
	}

	p.logger.Info("fingerprinting", "file", path)
	fp, err := p.fingerprinter.Fingerprint(ctx, path)
	if err != nil {
		return Outcome{State: StateFailed, Err: err}
	}

	p.logger.Info("looking up fingerprint", "duration", fp.Duration)
	candidates, err := p.identifier.LookupFingerprint(ctx, fp)
	if err != nil {
		return Outcome{State: StateFailed, Err: err}
	}
	if len(candidates) == 0 {
		return Outcome{State: StateSkipped, Reason: "no match found for this recording"}
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	p.logger.Info("best match", "title", best.Title, "artist", best.Artist, "score", best.Score)

	if best.Score < p.minConfidence {
		return Outcome{
			State: StateSkipped,
			Match: &models.AudioMatch{RecordingID: best.RecordingID, Title: best.Title, Artist: best.Artist, Confidence: best.Score},
			Reason: fmt.Sprintf("best match %q by %q has confidence %.2f, below the %.2f threshold",
				best.Title, best.Artist, best.Score, p.minConfidence),
		}
	}

	match, err := p.catalog.FetchMetadata(ctx, best.RecordingID)
	if err != nil {
		return Outcome{State: StateFailed, Err: err}
	}
	match.Confidence = best.Score
	if match.Title == "" {
		match.Title = best.Title
	}
	if match.Artist == "" {
		match.Artist = best.Artist
	}

	meta, ok, err := confirm(ctx, *match, path)
	if err != nil {
		return Outcome{State: StateFailed, Match: match, Err: err}
	}
	if !ok {
		return Outcome{State: StateSkipped, Match: match, Reason: "import cancelled before tagging"}
	}

	p.logger.Info("writing tags", "file", path, "title", meta.Title)
	if err := p.tagger.WriteTags(path, meta); err != nil {
		// Tagging failed, so the file stays where it is.
		return Outcome{State: StateFailed, Match: match, Err: err}
	}

	moved, err := Move(path, p.importDir)
	if err != nil {
		return Outcome{State: StateFailed, Match: match, Err: err}
	}

	p.logger.Info("relocated", "from", path, "to", moved)
	return Outcome{State: StateDone, Match: match, MovedTo: moved}
}
