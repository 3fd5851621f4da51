package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run executes a dialog to completion on the terminal. The returned error
// reports a broken program (no TTY, renderer failure), never a user
// dismissal; dismissal is exposed through each dialog's Cancelled state.
func Run(m tea.Model) error {
	_, err := tea.NewProgram(m).Run()
	return wrapRunErr(err)
}

func wrapRunErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("dialog failed: %w", err)
}
