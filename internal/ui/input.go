package ui

import (
	"context"
	"fmt"
	gopath "path"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SuggestFunc returns completion candidates for a directory. It may reach
// over the network; a failure only degrades completion, never the dialog.
type SuggestFunc func(ctx context.Context, dir string) ([]string, error)

type suggestionsMsg struct {
	dir   string
	items []string
	err   error
}

// InputModel is a one-line text dialog with optional path autocompletion.
// Suggestions are fetched per directory as the user types; when the fetch
// fails the static fallback set is offered instead.
type InputModel struct {
	ctx       context.Context
	input     textinput.Model
	suggest   SuggestFunc
	fallback  []string
	title     string
	fetched   string
	help      help.Model
	keys      keyMap
	done      bool
	cancelled bool
}

// NewInput builds a plain text dialog with no completion.
func NewInput(title, placeholder string) *InputModel {
	return NewPathInput(context.Background(), title, placeholder, nil, nil)
}

// NewPathInput builds a text dialog that completes directory paths via
// suggest, degrading to the fallback suggestions when suggest is nil or
// fails.
func NewPathInput(ctx context.Context, title, initial string, suggest SuggestFunc, fallback []string) *InputModel {
	in := textinput.New()
	in.SetValue(initial)
	in.CursorEnd()
	in.Focus()
	in.CharLimit = 512
	in.Width = 60
	in.ShowSuggestions = true
	in.SetSuggestions(fallback)

	return &InputModel{
		ctx:      ctx,
		input:    in,
		suggest:  suggest,
		fallback: fallback,
		title:    title,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// NewSecretInput builds a masked text dialog for credentials.
func NewSecretInput(title string) *InputModel {
	in := textinput.New()
	in.Focus()
	in.CharLimit = 256
	in.Width = 40
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '•'

	return &InputModel{
		ctx:   context.Background(),
		input: in,
		title: title,
		help:  help.New(),
		keys:  newKeyMap(),
	}
}

// Value returns the entered text. Empty when the dialog was cancelled.
func (m *InputModel) Value() string {
	if m.cancelled {
		return ""
	}
	return m.input.Value()
}

func (m *InputModel) Cancelled() bool { return m.cancelled }

func (m *InputModel) Init() tea.Cmd {
	if m.suggest == nil {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, m.fetchSuggestions(dirOf(m.input.Value())))
}

func (m *InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case suggestionsMsg:
		m.fetched = msg.dir
		if msg.err != nil || len(msg.items) == 0 {
			m.input.SetSuggestions(m.fallback)
			return m, nil
		}
		m.input.SetSuggestions(msg.items)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.suggest != nil {
		if dir := dirOf(m.input.Value()); dir != m.fetched {
			return m, tea.Batch(cmd, m.fetchSuggestions(dir))
		}
	}
	return m, cmd
}

func (m *InputModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s\n\n%s\n\n%s",
		styles.title.Render(m.title),
		m.input.View(),
		m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m *InputModel) fetchSuggestions(dir string) tea.Cmd {
	return func() tea.Msg {
		entries, err := m.suggest(m.ctx, dir)
		if err != nil {
			return suggestionsMsg{dir: dir, err: err}
		}

		// Suggestions must be full paths for prefix matching against the
		// typed value.
		items := make([]string, 0, len(entries))
		for _, e := range entries {
			items = append(items, gopath.Join(dir, strings.TrimSuffix(e, "/"))+"/")
		}
		return suggestionsMsg{dir: dir, items: items}
	}
}

// dirOf returns the directory portion the completion should list. A value
// ending in a separator is itself a directory.
func dirOf(value string) string {
	if value == "" {
		return "."
	}
	if strings.HasSuffix(value, "/") {
		if trimmed := strings.TrimSuffix(value, "/"); trimmed != "" {
			return trimmed
		}
		return "/"
	}
	return gopath.Dir(value)
}
