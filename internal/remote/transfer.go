// Remote copy execution over SFTP
package remote

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	gopath "path"
	"path/filepath"

	"quickact/internal/models"
	"quickact/internal/shared"
)

// WriteFile is the writable remote file handle the transfer produces.
type WriteFile interface {
	io.WriteCloser
}

// RemoteFS is the subset of SFTP operations the transfer step needs,
// kept narrow so tests can run against a local fake.
type RemoteFS interface {
	MkdirAll(path string) error
	Create(path string) (WriteFile, error)
}

// ItemResult records the outcome of copying one selected source path.
type ItemResult struct {
	Source string // Local path as selected
	Dest   string // Remote path it was copied to
	Err    error  // nil on success
}

// Transfer copies every source in the task to the destination directory.
//
// Directories are walked recursively. A failure on one item is recorded
// and the remaining items are still attempted; the summary error names how
// many items failed. Transfer is the last step of a run, so nothing is
// rolled back.
func Transfer(ctx context.Context, remote RemoteFS, task models.TransferTask) ([]ItemResult, error) {
	if task.CreateDest {
		if err := remote.MkdirAll(task.Destination); err != nil {
			return nil, fmt.Errorf("%w: creating %s: %v", shared.ErrTransferFailed, task.Destination, err)
		}
	}

	results := make([]ItemResult, 0, len(task.Sources))
	failed := 0

	for _, src := range task.Sources {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		dest := gopath.Join(task.Destination, filepath.Base(src))
		err := copyPath(ctx, remote, src, dest)
		results = append(results, ItemResult{Source: src, Dest: dest, Err: err})
		if err != nil {
			failed++
		}
	}

	if failed > 0 {
		return results, fmt.Errorf("%w: %d of %d items failed", shared.ErrTransferFailed, failed, len(task.Sources))
	}
	return results, nil
}

// copyPath copies one file or directory tree to the remote.
func copyPath(ctx context.Context, remote RemoteFS, src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return copyFile(remote, src, dest)
	}

	return filepath.WalkDir(src, func(local string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, local)
		if err != nil {
			return err
		}
		target := gopath.Join(dest, filepath.ToSlash(rel))

		if d.IsDir() {
			return remote.MkdirAll(target)
		}
		return copyFile(remote, local, target)
	})
}

func copyFile(remote RemoteFS, src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := remote.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
