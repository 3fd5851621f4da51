package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"quickact/internal/models"
)

var (
	_ list.Item = serverItem{}
	_ list.Item = stringItem("")
)

// serverItem wraps [models.ServerEntry] to implement [list.Item].
type serverItem struct {
	entry models.ServerEntry
}

func (i serverItem) FilterValue() string { return i.entry.Alias }
func (i serverItem) Title() string       { return i.entry.Alias }
func (i serverItem) Description() string {
	user := i.entry.User
	if user == "" {
		user = "root"
	}
	desc := fmt.Sprintf("%s@%s", user, i.entry.Addr())
	if i.entry.IdentityFile != "" {
		desc = fmt.Sprintf("%s • key auth", desc)
	}
	return desc
}

// stringItem is a plain selectable string.
type stringItem string

func (i stringItem) FilterValue() string { return string(i) }
func (i stringItem) Title() string       { return string(i) }
func (i stringItem) Description() string { return "" }

// SelectModel is a single-choice list dialog.
type SelectModel struct {
	list      list.Model
	help      help.Model
	keys      keyMap
	choice    int
	done      bool
	cancelled bool
}

// NewServerSelect builds a selection dialog over concrete server entries.
func NewServerSelect(title string, entries []models.ServerEntry) *SelectModel {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = serverItem{entry: e}
	}
	return newSelect(title, items)
}

// NewStringSelect builds a selection dialog over plain strings.
func NewStringSelect(title string, options []string) *SelectModel {
	items := make([]list.Item, len(options))
	for i, opt := range options {
		items[i] = stringItem(opt)
	}
	return newSelect(title, items)
}

func newSelect(title string, items []list.Item) *SelectModel {
	l := list.New(items, list.NewDefaultDelegate(), 60, min(len(items)*3+6, 24))
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)

	return &SelectModel{
		list:   l,
		help:   help.New(),
		keys:   newKeyMap(),
		choice: -1,
	}
}

// Choice returns the selected index, or -1 when the dialog was cancelled.
func (m *SelectModel) Choice() int {
	if m.cancelled {
		return -1
	}
	return m.choice
}

func (m *SelectModel) Cancelled() bool { return m.cancelled }

func (m *SelectModel) Init() tea.Cmd { return nil }

func (m *SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case "enter":
			m.choice = m.list.Index()
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *SelectModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s\n\n%s", m.list.View(),
		m.help.ShortHelpView(m.keys.ShortHelp()))
}
