package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"quickact/internal/models"
	"quickact/internal/music"
	"quickact/internal/shared"
	"quickact/internal/ui"
)

// musicTool names the isolated runtime the import workflow is provisioned
// under.
const musicTool = "music-import"

// MusicAdd runs the tagging pipeline for each file argument in turn and
// prints a per-file summary.
func (r *Runner) MusicAdd(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("%w: at least one audio file is required", shared.ErrMissingArgument)
	}

	if _, err := r.boot.Ensure(ctx, musicTool, nil); err != nil {
		return err
	}

	confirm := r.confirm
	if cmd.Bool("yes") {
		confirm = func(_ context.Context, match models.AudioMatch, _ string) (models.Metadata, bool, error) {
			return models.FromMatch(match), true, nil
		}
	}

	var done, skipped, failed int
	for _, file := range files {
		out := r.pipeline.Process(ctx, file, confirm)
		name := filepath.Base(file)

		switch out.State {
		case music.StateDone:
			done++
			r.writePlain("%s\n", ui.Success("%s → %s", name, out.MovedTo))
		case music.StateSkipped:
			skipped++
			r.writePlain("%s\n", ui.Warning("skipped %s: %s", name, out.Reason))
		default:
			failed++
			r.writePlain("%s\n", ui.Failure("%s: %v", name, out.Err))
		}
	}

	if len(files) > 1 {
		r.writePlainln("%d imported, %d skipped, %d failed", done, skipped, failed)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}
