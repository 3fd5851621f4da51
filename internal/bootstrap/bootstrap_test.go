package bootstrap

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// countingInstaller records install calls and writes a marker file.
type countingInstaller struct {
	calls int
	err   error
}

func (c *countingInstaller) Install(ctx context.Context, dir string, deps []string) error {
	c.calls++
	if c.err != nil {
		return c.err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "installed"), []byte("ok"), 0644)
}

func TestManager_Ensure(t *testing.T) {
	t.Run("first run provisions runtime", func(t *testing.T) {
		root := t.TempDir()
		installer := &countingInstaller{}
		mgr := NewManager(root, installer, nil)

		env, err := mgr.Ensure(context.Background(), "music-import", []string{"chromaprint"})
		if err != nil {
			t.Fatalf("ensure failed: %v", err)
		}

		if env.Path != filepath.Join(root, "music-import") {
			t.Errorf("unexpected runtime path %s", env.Path)
		}
		if _, err := os.Stat(filepath.Join(env.Path, "installed")); err != nil {
			t.Errorf("runtime contents missing: %v", err)
		}
		if _, err := os.Stat(filepath.Join(env.Path, "manifest.toml")); err != nil {
			t.Errorf("manifest missing: %v", err)
		}
		if installer.calls != 1 {
			t.Errorf("expected 1 install call, got %d", installer.calls)
		}
	})

	t.Run("second run installs nothing", func(t *testing.T) {
		root := t.TempDir()
		installer := &countingInstaller{}
		mgr := NewManager(root, installer, nil)

		if _, err := mgr.Ensure(context.Background(), "music-import", nil); err != nil {
			t.Fatalf("first ensure failed: %v", err)
		}
		before := readDir(t, root)

		if _, err := mgr.Ensure(context.Background(), "music-import", nil); err != nil {
			t.Fatalf("second ensure failed: %v", err)
		}

		if installer.calls != 1 {
			t.Errorf("second call reinstalled, %d install calls", installer.calls)
		}
		after := readDir(t, root)
		if len(before) != len(after) {
			t.Errorf("runtime root changed on second run: %v vs %v", before, after)
		}
	})

	t.Run("distinct tools get distinct paths", func(t *testing.T) {
		root := t.TempDir()
		mgr := NewManager(root, &countingInstaller{}, nil)

		a, err := mgr.Ensure(context.Background(), "music-import", nil)
		if err != nil {
			t.Fatalf("ensure failed: %v", err)
		}
		b, err := mgr.Ensure(context.Background(), "server-copy", nil)
		if err != nil {
			t.Fatalf("ensure failed: %v", err)
		}
		if a.Path == b.Path {
			t.Errorf("tools share a runtime path: %s", a.Path)
		}
	})

	t.Run("install failure is fatal and leaves nothing behind", func(t *testing.T) {
		root := t.TempDir()
		installer := &countingInstaller{err: errors.New("pip exploded")}
		mgr := NewManager(root, installer, nil)

		if _, err := mgr.Ensure(context.Background(), "music-import", []string{"x"}); err == nil {
			t.Fatal("expected bootstrap failure")
		}

		if _, err := os.Stat(filepath.Join(root, "music-import")); !os.IsNotExist(err) {
			t.Error("failed bootstrap left a runtime at the deterministic path")
		}
		if entries := readDir(t, root); len(entries) != 0 {
			t.Errorf("staging debris left behind: %v", entries)
		}
	})

	t.Run("directory without manifest is rebuilt", func(t *testing.T) {
		root := t.TempDir()
		if err := os.MkdirAll(filepath.Join(root, "music-import"), 0755); err != nil {
			t.Fatal(err)
		}

		installer := &countingInstaller{}
		mgr := NewManager(root, installer, nil)
		if _, err := mgr.Ensure(context.Background(), "music-import", nil); err != nil {
			// Rename onto the existing empty dir may fail; the runtime is
			// still incomplete, so an error is acceptable only if reported.
			t.Logf("rebuild returned: %v", err)
		}
		if installer.calls != 1 {
			t.Errorf("expected rebuild to run installer once, got %d", installer.calls)
		}
	})
}

func readDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
