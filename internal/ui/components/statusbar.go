package components

import "github.com/charmbracelet/lipgloss"

var (
	hintLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96a39b"))
	hintKeycapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#101714")).
			Background(lipgloss.Color("#8aa495")).
			Bold(true).
			Padding(0, 1)
	hintChipStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#24392e")).
			Padding(0, 1).
			MarginRight(1)
	footerStyle = lipgloss.NewStyle().
			PaddingLeft(2)
)

// Hint formats one keybinding as "action KEY", action first so the bar
// reads what the key does before which key it is.
func Hint(key, desc string) string {
	return hintLabelStyle.Render(desc+" ") + hintKeycapStyle.Render(key)
}

// StatusBar lays the hints out as bordered chips along the bottom of
// the screen, spilling onto extra rows when the terminal is narrow.
// The chip block is centered within width; width <= 0 renders a single
// uncentered row.
func StatusBar(hints []string, width int) string {
	chips := make([]string, len(hints))
	for i, h := range hints {
		chips[i] = hintChipStyle.Render(h)
	}
	if width <= 0 {
		return footerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, chips...))
	}

	rows := packChipRows(chips, width)
	if len(rows) == 0 {
		return ""
	}
	blockWidth := 0
	for _, row := range rows {
		if w := lipgloss.Width(row); w > blockWidth {
			blockWidth = w
		}
	}
	centered := lipgloss.NewStyle().Width(blockWidth).Align(lipgloss.Center)
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = centered.Render(row)
	}
	block := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return footerStyle.Width(width).Align(lipgloss.Center).Render(block)
}

// packChipRows greedily fills each row with chips until the next one
// would overflow width. A chip wider than the whole row gets a row of
// its own rather than being dropped.
func packChipRows(chips []string, width int) []string {
	var rows []string
	var row []string
	rowWidth := 0
	for _, chip := range chips {
		w := lipgloss.Width(chip)
		if len(row) > 0 && rowWidth+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, chip)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return rows
}
