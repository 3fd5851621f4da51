package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"quickact/internal/models"
	"quickact/internal/shared"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestSelectModel(t *testing.T) {
	entries := []models.ServerEntry{
		{Alias: "staging", HostName: "stage.example.com", User: "deploy"},
		{Alias: "prod", HostName: "prod.example.com", User: "deploy"},
		{Alias: "backup", HostName: "10.0.0.9"},
	}

	t.Run("enter picks the highlighted entry", func(t *testing.T) {
		m := NewServerSelect("Pick a server", entries)
		m.Update(keyType(tea.KeyDown))
		m.Update(keyType(tea.KeyEnter))

		if m.Cancelled() {
			t.Fatal("selection must not register as cancelled")
		}
		if m.Choice() != 1 {
			t.Errorf("expected index 1, got %d", m.Choice())
		}
	})

	t.Run("escape cancels", func(t *testing.T) {
		m := NewServerSelect("Pick a server", entries)
		m.Update(keyType(tea.KeyEsc))

		if !m.Cancelled() || m.Choice() != -1 {
			t.Errorf("expected cancelled dialog, got choice %d", m.Choice())
		}
	})

	t.Run("string select over destinations", func(t *testing.T) {
		m := NewStringSelect("Destination", []string{"~/", "/srv/media"})
		m.Update(keyType(tea.KeyEnter))
		if m.Choice() != 0 {
			t.Errorf("expected first option, got %d", m.Choice())
		}
	})
}

func TestInputModel(t *testing.T) {
	t.Run("typing then enter yields the value", func(t *testing.T) {
		m := NewInput("Destination", "")
		for _, r := range "/srv" {
			m.Update(keyRune(r))
		}
		m.Update(keyType(tea.KeyEnter))

		if m.Cancelled() {
			t.Fatal("unexpected cancellation")
		}
		if m.Value() != "/srv" {
			t.Errorf("expected /srv, got %q", m.Value())
		}
	})

	t.Run("cancelled input reports no value", func(t *testing.T) {
		m := NewInput("Destination", "")
		m.Update(keyRune('x'))
		m.Update(keyType(tea.KeyEsc))

		if !m.Cancelled() || m.Value() != "" {
			t.Errorf("expected empty cancelled value, got %q", m.Value())
		}
	})

	t.Run("remote entries are joined onto the typed directory exactly once", func(t *testing.T) {
		// The suggest func returns bare names the way DirLister does.
		suggest := func(_ context.Context, dir string) ([]string, error) {
			if dir != "/home/deploy" {
				t.Errorf("unexpected dir %q", dir)
			}
			return []string{"music/", "videos/"}, nil
		}
		m := NewPathInput(context.Background(), "Destination", "/home/deploy/", suggest, nil)

		if m.Init() == nil {
			t.Fatal("expected initial suggestion fetch")
		}
		m.Update(m.fetchSuggestions("/home/deploy")())

		got := m.input.AvailableSuggestions()
		want := []string{"/home/deploy/music/", "/home/deploy/videos/"}
		if len(got) != len(want) {
			t.Fatalf("expected %d suggestions, got %v", len(want), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("suggestion %d = %q, want %q", i, got[i], want[i])
			}
			if strings.Count(got[i], "/home/deploy") != 1 {
				t.Errorf("directory repeated in suggestion %q", got[i])
			}
		}
	})

	t.Run("fetch failure degrades to static defaults", func(t *testing.T) {
		fallback := []string{"~/", "/srv/media/"}
		m := NewPathInput(context.Background(), "Destination", "/", nil, fallback)

		m.Update(suggestionsMsg{dir: "/", err: errors.New("connection lost")})

		got := m.input.AvailableSuggestions()
		if len(got) != 2 || got[0] != "~/" {
			t.Errorf("fallback suggestions not installed: %v", got)
		}
	})

	t.Run("secret input masks echo", func(t *testing.T) {
		m := NewSecretInput("Password")
		for _, r := range "hunter2" {
			m.Update(keyRune(r))
		}
		m.Update(keyType(tea.KeyEnter))

		if m.Value() != "hunter2" {
			t.Errorf("expected captured secret, got %q", m.Value())
		}
	})
}

func TestWrapRunErr(t *testing.T) {
	if wrapRunErr(nil) != nil {
		t.Error("clean dialog run must not produce an error")
	}

	cause := errors.New("open /dev/tty: no such device")
	err := wrapRunErr(cause)
	if err == nil {
		t.Fatal("program failure must surface")
	}
	if errors.Is(err, shared.ErrCancelled) {
		t.Error("a broken dialog program is not a user cancellation")
	}
	if !errors.Is(err, cause) {
		t.Error("underlying program error must stay inspectable")
	}
}

func TestDirOf(t *testing.T) {
	cases := map[string]string{
		"":                    ".",
		"/":                   "/",
		"/srv":                "/",
		"/srv/":               "/srv",
		"/srv/media/mus":      "/srv/media",
		"/home/deploy/music/": "/home/deploy/music",
	}
	for value, want := range cases {
		if got := dirOf(value); got != want {
			t.Errorf("dirOf(%q) = %q, want %q", value, got, want)
		}
	}
}

func TestMetadataModel(t *testing.T) {
	match := models.AudioMatch{
		Title: "Song", Artist: "Band", Album: "Album", Date: "2001-05-01", Confidence: 0.91,
	}

	t.Run("accept as resolved", func(t *testing.T) {
		m := NewMetadataConfirm(context.Background(), match, "/tmp/track.mp3", nil)
		m.Update(keyRune('y'))

		meta, ok := m.Result()
		if !ok {
			t.Fatal("expected confirmation")
		}
		if meta.Title != "Song" || meta.Artist != "Band" || meta.Date != "2001-05-01" {
			t.Errorf("resolved fields not carried: %+v", meta)
		}
	})

	t.Run("decline", func(t *testing.T) {
		m := NewMetadataConfirm(context.Background(), match, "/tmp/track.mp3", nil)
		m.Update(keyRune('n'))

		if _, ok := m.Result(); ok {
			t.Fatal("declined dialog must not confirm")
		}
	})

	t.Run("edit a field before accepting", func(t *testing.T) {
		m := NewMetadataConfirm(context.Background(), match, "/tmp/track.mp3", nil)
		m.Update(keyRune('e'))
		m.inputs[fieldTitle].SetValue("Corrected")
		m.Update(keyType(tea.KeyEsc)) // leave editing
		m.Update(keyRune('y'))

		meta, ok := m.Result()
		if !ok {
			t.Fatal("expected confirmation after edit")
		}
		if meta.Title != "Corrected" {
			t.Errorf("edit not honored: %+v", meta)
		}
		if meta.Artist != "Band" {
			t.Errorf("untouched fields must survive: %+v", meta)
		}
	})

	t.Run("re-search queries with the edited fields and refreshes the form", func(t *testing.T) {
		retry := func(_ context.Context, title, artist string) (*models.AudioMatch, error) {
			if title != "Corrected" || artist != "Band" {
				t.Errorf("search must use the edited fields, got %q by %q", title, artist)
			}
			return &models.AudioMatch{
				RecordingID: "rec-2", Title: "Corrected", Artist: "Band",
				Album: "Other Album", Date: "1999-03-01", Confidence: 0.88,
			}, nil
		}

		m := NewMetadataConfirm(context.Background(), match, "/tmp/track.mp3", retry)
		m.Update(keyRune('e'))
		m.inputs[fieldTitle].SetValue("Corrected")
		m.Update(keyType(tea.KeyEsc))

		_, cmd := m.Update(keyRune('r'))
		if cmd == nil {
			t.Fatal("expected a search command")
		}
		m.Update(cmd())

		if m.inputs[fieldAlbum].Value() != "Other Album" {
			t.Errorf("form not refreshed from the new match: %q", m.inputs[fieldAlbum].Value())
		}
		m.Update(keyRune('y'))
		meta, ok := m.Result()
		if !ok || meta.Album != "Other Album" || meta.Date != "1999-03-01" {
			t.Errorf("re-searched fields not carried into the result: %+v ok=%v", meta, ok)
		}
	})

	t.Run("failed re-search keeps the current fields", func(t *testing.T) {
		retry := func(context.Context, string, string) (*models.AudioMatch, error) {
			return nil, errors.New("no recording matched")
		}

		m := NewMetadataConfirm(context.Background(), match, "/tmp/track.mp3", retry)
		_, cmd := m.Update(keyRune('r'))
		m.Update(cmd())

		if m.inputs[fieldTitle].Value() != "Song" {
			t.Errorf("failed search must not clear the form: %q", m.inputs[fieldTitle].Value())
		}
		if m.notice == "" {
			t.Error("failed search must explain itself")
		}
		m.Update(keyRune('y'))
		if _, ok := m.Result(); !ok {
			t.Error("dialog must stay usable after a failed search")
		}
	})

	t.Run("re-search key is inert without a retry hook", func(t *testing.T) {
		m := NewMetadataConfirm(context.Background(), match, "/tmp/track.mp3", nil)
		if _, cmd := m.Update(keyRune('r')); cmd != nil {
			t.Error("no search command without a retry hook")
		}
		m.Update(keyRune('y'))
		if _, ok := m.Result(); !ok {
			t.Error("dialog must still confirm")
		}
	})
}
