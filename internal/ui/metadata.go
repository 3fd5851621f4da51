package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quickact/internal/models"
)

const (
	fieldTitle = iota
	fieldArtist
	fieldAlbum
	fieldDate
	fieldCount
)

// RetryFunc re-queries the catalog with corrected title and artist,
// returning a fresh match to load into the form.
type RetryFunc func(ctx context.Context, title, artist string) (*models.AudioMatch, error)

type retryMsg struct {
	match *models.AudioMatch
	err   error
}

// MetadataModel presents a resolved match for review. The user can accept
// it as-is, edit any field first, re-search the catalog with the edited
// title/artist, or decline the import entirely.
type MetadataModel struct {
	ctx       context.Context
	match     models.AudioMatch
	filename  string
	retry     RetryFunc
	inputs    [fieldCount]textinput.Model
	editing   bool
	searching bool
	notice    string
	focus     int
	help      help.Model
	keys      keyMap
	done      bool
	confirmed bool
}

// NewMetadataConfirm builds the review dialog for one file's match. A nil
// retry disables the re-search action.
func NewMetadataConfirm(ctx context.Context, match models.AudioMatch, filename string, retry RetryFunc) *MetadataModel {
	m := &MetadataModel{
		ctx:      ctx,
		match:    match,
		filename: filename,
		retry:    retry,
		help:     help.New(),
		keys:     newKeyMap(),
	}

	labels := [fieldCount]string{"Title", "Artist", "Album", "Date"}
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = fmt.Sprintf("%-7s ", labels[i]+":")
		in.CharLimit = 256
		in.Width = 48
		m.inputs[i] = in
	}
	m.loadMatch(match)
	return m
}

func (m *MetadataModel) loadMatch(match models.AudioMatch) {
	m.match = match
	values := [fieldCount]string{match.Title, match.Artist, match.Album, match.Date}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
	}
}

// Result returns the metadata as edited and whether the user accepted it.
func (m *MetadataModel) Result() (models.Metadata, bool) {
	meta := models.Metadata{
		Title:  strings.TrimSpace(m.inputs[fieldTitle].Value()),
		Artist: strings.TrimSpace(m.inputs[fieldArtist].Value()),
		Album:  strings.TrimSpace(m.inputs[fieldAlbum].Value()),
		Date:   strings.TrimSpace(m.inputs[fieldDate].Value()),
	}
	return meta, m.confirmed
}

func (m *MetadataModel) Init() tea.Cmd { return nil }

func (m *MetadataModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case retryMsg:
		m.searching = false
		if msg.err != nil {
			m.notice = fmt.Sprintf("search failed: %v", msg.err)
			return m, nil
		}
		m.loadMatch(*msg.match)
		m.notice = fmt.Sprintf("found %q by %s", msg.match.Title, msg.match.Artist)
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			if msg.String() == "ctrl+c" {
				m.done = true
				return m, tea.Quit
			}
			return m, nil
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateReview(msg)
	}
	return m, nil
}

func (m *MetadataModel) updateReview(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "y", "enter":
		m.confirmed = true
		m.done = true
		return m, tea.Quit
	case "n", "q", "esc", "ctrl+c":
		m.done = true
		return m, tea.Quit
	case "e":
		m.editing = true
		m.focus = 0
		return m, m.inputs[0].Focus()
	case "r":
		if m.retry == nil {
			return m, nil
		}
		m.searching = true
		m.notice = ""
		return m, m.search()
	}
	return m, nil
}

func (m *MetadataModel) updateEditing(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c":
		m.done = true
		return m, tea.Quit
	case "esc":
		m.editing = false
		m.inputs[m.focus].Blur()
		return m, nil
	case "enter", "tab", "down":
		m.inputs[m.focus].Blur()
		if key.String() == "enter" && m.focus == fieldCount-1 {
			m.editing = false
			return m, nil
		}
		m.focus = (m.focus + 1) % fieldCount
		return m, m.inputs[m.focus].Focus()
	case "shift+tab", "up":
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + fieldCount - 1) % fieldCount
		return m, m.inputs[m.focus].Focus()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(key)
	return m, cmd
}

// search re-queries the catalog with the current title and artist fields.
func (m *MetadataModel) search() tea.Cmd {
	title := strings.TrimSpace(m.inputs[fieldTitle].Value())
	artist := strings.TrimSpace(m.inputs[fieldArtist].Value())
	return func() tea.Msg {
		match, err := m.retry(m.ctx, title, artist)
		return retryMsg{match: match, err: err}
	}
}

func (m *MetadataModel) View() string {
	if m.done {
		return ""
	}

	title := styles.title.Render(fmt.Sprintf("Match for %s", filepath.Base(m.filename)))
	confidence := styles.help.Render(fmt.Sprintf("confidence %.0f%%", m.match.Confidence*100))

	var fields strings.Builder
	for i := range m.inputs {
		fields.WriteString(m.inputs[i].View())
		fields.WriteByte('\n')
	}

	var hint string
	switch {
	case m.searching:
		hint = styles.help.Render("searching the catalog…")
	case m.editing:
		hint = styles.help.Render("tab next field • esc done editing")
	case m.retry != nil:
		hint = styles.help.Render("y/enter import • e edit • r re-search • n skip")
	default:
		hint = styles.help.Render("y/enter import • e edit • n skip")
	}

	var notice string
	if m.notice != "" {
		notice = styles.warn.Render(m.notice) + "\n"
	}

	return fmt.Sprintf("%s\n%s\n\n%s%s\n%s", title, confidence, fields.String(), notice, hint)
}
