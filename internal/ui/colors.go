package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#1DB954", "#FFFFFF", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title    lipgloss.Style
	ok       lipgloss.Style
	err      lipgloss.Style
	warn     lipgloss.Style
	help     lipgloss.Style
	login    lipgloss.Style
	fetch    lipgloss.Style
	card     lipgloss.Style
	selected lipgloss.Style
}

func NewPalette(accent, fg, e, w, h string) *Palette {
	card := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(fg)).
		Padding(0, 1).
		Align(lipgloss.Center)

	return &Palette{
		title:    NewBold(fg).MarginBottom(1),
		ok:       NewBold(accent),
		err:      NewBold(e),
		warn:     NewStyle(w),
		help:     NewEm(h),
		login:    NewBold("#000000").Background(lipgloss.Color(accent)).Padding(0, 2),
		fetch:    NewStyle(fg).Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color(fg)).Padding(0, 2),
		card:     card,
		selected: card.BorderForeground(lipgloss.Color(accent)),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
