package music

import (
	"os"
	"path/filepath"
	"testing"
)

func writeAudio(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMove(t *testing.T) {
	t.Run("moves into the import directory", func(t *testing.T) {
		src := writeAudio(t, t.TempDir(), "track.mp3", "audio")
		destDir := filepath.Join(t.TempDir(), "imports")

		dest, err := Move(src, destDir)
		if err != nil {
			t.Fatalf("move failed: %v", err)
		}
		if dest != filepath.Join(destDir, "track.mp3") {
			t.Errorf("unexpected destination %s", dest)
		}
		if _, err := os.Stat(src); !os.IsNotExist(err) {
			t.Error("source must be gone after the move")
		}
		data, err := os.ReadFile(dest)
		if err != nil || string(data) != "audio" {
			t.Errorf("content mismatch at destination: %q, %v", data, err)
		}
	})

	t.Run("collision keeps both files under distinct names", func(t *testing.T) {
		destDir := t.TempDir()
		writeAudio(t, destDir, "track.mp3", "already here")

		src := writeAudio(t, t.TempDir(), "track.mp3", "new arrival")
		dest, err := Move(src, destDir)
		if err != nil {
			t.Fatalf("move failed: %v", err)
		}
		if dest != filepath.Join(destDir, "track_1.mp3") {
			t.Errorf("expected first numeric suffix, got %s", dest)
		}

		existing, err := os.ReadFile(filepath.Join(destDir, "track.mp3"))
		if err != nil || string(existing) != "already here" {
			t.Errorf("existing file was disturbed: %q, %v", existing, err)
		}
		moved, err := os.ReadFile(dest)
		if err != nil || string(moved) != "new arrival" {
			t.Errorf("moved file content mismatch: %q, %v", moved, err)
		}
	})

	t.Run("counter advances past occupied suffixes", func(t *testing.T) {
		destDir := t.TempDir()
		writeAudio(t, destDir, "track.mp3", "a")
		writeAudio(t, destDir, "track_1.mp3", "b")
		writeAudio(t, destDir, "track_2.mp3", "c")

		src := writeAudio(t, t.TempDir(), "track.mp3", "d")
		dest, err := Move(src, destDir)
		if err != nil {
			t.Fatalf("move failed: %v", err)
		}
		if dest != filepath.Join(destDir, "track_3.mp3") {
			t.Errorf("expected track_3.mp3, got %s", dest)
		}
	})
}
