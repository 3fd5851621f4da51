// Package ui implements the interactive dialog layer using bubbletea's Elm architecture.
//
// Every prompt in the CLI is one of a small set of reusable dialogs:
//  1. [SelectModel] : Pick one entry from a list (servers, audio files)
//  2. [InputModel] : Free text with optional path autocompletion
//  3. [MetadataModel] : Review and edit resolved tags before committing,
//     with an optional catalog re-search over the edited fields
//
// Non-interactive notices (info, success, error) are plain render helpers,
// not programs. All colors are [lipgloss.AdaptiveColor] pairs so output
// stays legible on light and dark terminal backgrounds alike.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q)
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
