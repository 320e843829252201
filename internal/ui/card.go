package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/desertthunder/toptracks/internal/viewer"
)

const (
	// cardWidth is the fixed card width in cells, padding included and border excluded.
	cardWidth = 32
	cardInner = cardWidth - 2
	// cover line, spacer, title and artist lines
	cardHeight = 2 + 2*viewer.ClampLines
	cardGap    = 1
	ellipsis   = "…"
)

// clamp wraps s to width cells and keeps at most lines lines, marking a cut with an ellipsis.
func clamp(s string, width, lines int) string {
	wrapped := strings.Split(ansi.Wrap(s, width, ""), "\n")
	if len(wrapped) <= lines {
		return strings.Join(wrapped, "\n")
	}

	kept := wrapped[:lines]
	last := strings.TrimRight(kept[lines-1], " ")
	kept[lines-1] = ansi.Truncate(last, width-ansi.StringWidth(ellipsis), "") + ellipsis
	return strings.Join(kept, "\n")
}

// renderCard draws one track card at a fixed size.
func renderCard(c viewer.Card, selected bool) string {
	cover := styles.help.Render(ansi.Truncate(c.CoverURL, cardInner, ellipsis))
	title := styles.ok.Render(clamp(c.Title, cardInner, viewer.ClampLines))
	artists := clamp(c.Artists, cardInner, viewer.ClampLines)

	body := lipgloss.JoinVertical(lipgloss.Center, cover, "", title, artists)

	style := styles.card
	if selected {
		style = styles.selected
	}
	return style.Width(cardWidth).Height(cardHeight).Render(body)
}

// gridColumns returns how many cards fit side by side in width cells.
func gridColumns(width int) int {
	// border adds two cells
	cols := (width + cardGap) / (cardWidth + 2 + cardGap)
	return max(cols, 1)
}

// renderGrid lays cards out row-major, cols per row, starting at row offset and showing at most rows rows.
func renderGrid(cards []viewer.Card, cursor, cols, offset, rows int) string {
	var lines []string
	gap := strings.Repeat(" ", cardGap)

	for row := offset; row < offset+rows; row++ {
		start := row * cols
		if start >= len(cards) {
			break
		}
		end := min(start+cols, len(cards))

		var rendered []string
		for i := start; i < end; i++ {
			if i > start {
				rendered = append(rendered, gap)
			}
			rendered = append(rendered, renderCard(cards[i], i == cursor))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
