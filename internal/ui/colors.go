package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette(
	lipgloss.AdaptiveColor{Light: "#5A32C8", Dark: "#7D56F4"},
	lipgloss.AdaptiveColor{Light: "#02804F", Dark: "#04B575"},
	lipgloss.AdaptiveColor{Light: "#C00000", Dark: "#FF5F5F"},
	lipgloss.AdaptiveColor{Light: "#A36A00", Dark: "#FFA500"},
	lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#626262"},
)

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h lipgloss.AdaptiveColor) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg lipgloss.AdaptiveColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(fg)
}

func NewBold(fg lipgloss.AdaptiveColor) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg lipgloss.AdaptiveColor) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// Info renders a neutral informational line.
func Info(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

// Success renders a completion notice with a check mark.
func Success(format string, args ...any) string {
	return styles.ok.Render("✓ " + fmt.Sprintf(format, args...))
}

// Failure renders an error notice with a cross mark.
func Failure(format string, args ...any) string {
	return styles.err.Render("✗ " + fmt.Sprintf(format, args...))
}

// Warning renders a cautionary notice.
func Warning(format string, args ...any) string {
	return styles.warn.Render(fmt.Sprintf(format, args...))
}
