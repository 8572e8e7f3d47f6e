package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableColumn describes one grid column: header text, content width in
// terminal cells, and how cell text lines up inside that width. The
// last column absorbs whatever width is left over, so its Width is a
// minimum rather than a fixed size.
type TableColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

// Grid glyphs match the rounded-border boxes the grids sit inside.
const (
	gridVert   = "│"
	gridHoriz  = "─"
	gridCross  = "┼"
	gridIndent = 2
)

var (
	gridRuleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#24392e"))
	gridActiveCellStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#d7dad8")).
				Background(lipgloss.Color("#1c2922")).
				Bold(true)
	gridActiveRuleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#24392e")).
				Background(lipgloss.Color("#1c2922"))
	gridMarkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d1606b")).
			Bold(true)
)

// TableGrid renders data rows under a ruled header line. activeRow is
// a 0-based index into rows to highlight; pass -1 for none. Every
// returned line spans tableWidth, which should fit the enclosing box
// content area (typically BoxContentWidth of the terminal width).
func TableGrid(columns []TableColumn, rows [][]string, tableWidth, activeRow int) string {
	if tableWidth <= 0 {
		return ""
	}
	if len(columns) == 0 {
		return padRight("", tableWidth)
	}

	cols := sizeColumns(columns, tableWidth)
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = SanitizeOneLine(c.Header)
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, gridRow(cols, headers, tableWidth, true, false))
	lines = append(lines, gridRule(cols, tableWidth))
	for i, row := range rows {
		lines = append(lines, gridRow(cols, row, tableWidth, false, i == activeRow))
	}
	return strings.Join(lines, "\n")
}

// sizeColumns clamps each declared width to at least one cell, then
// grows or shrinks the last column so header, separators and cells
// exactly fill the table width.
func sizeColumns(columns []TableColumn, tableWidth int) []TableColumn {
	cols := make([]TableColumn, len(columns))
	copy(cols, columns)

	avail := tableWidth - gridIndent
	if avail < len(cols) {
		avail = len(cols)
	}

	used := len(cols) - 1 // one separator between each pair of columns
	for i := range cols {
		if cols[i].Width < 1 {
			cols[i].Width = 1
		}
		used += cols[i].Width
	}

	last := len(cols) - 1
	cols[last].Width += avail - used
	if cols[last].Width < 1 {
		cols[last].Width = 1
	}
	return cols
}

func gridRow(columns []TableColumn, cells []string, tableWidth int, header, active bool) string {
	sep := gridRuleStyle.Inline(true).Render(gridVert)
	if active {
		sep = gridActiveRuleStyle.Inline(true).Render(gridVert)
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gridIndent))
	for i, col := range columns {
		if i > 0 {
			b.WriteString(sep)
		}
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		cell := alignCell(text, col.Width, col.Align)
		switch {
		case header:
			// Inline keeps the styled cell as exactly one rendered line.
			cell = boxLabelStyle.Bold(true).Inline(true).Render(cell)
		case active:
			cell = markSelection(gridActiveCellStyle.Inline(true).Render(cell))
		default:
			cell = markSelection(cell)
		}
		b.WriteString(cell)
	}

	line := b.String()
	if lipgloss.Width(line) < tableWidth {
		line = padRight(line, tableWidth)
	}
	return line
}

func gridRule(columns []TableColumn, tableWidth int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gridIndent))
	for i, col := range columns {
		if i > 0 {
			b.WriteString(gridCross)
		}
		b.WriteString(strings.Repeat(gridHoriz, col.Width))
	}
	line := b.String()
	if lipgloss.Width(line) < tableWidth {
		line = padRight(line, tableWidth)
	}
	return gridRuleStyle.Inline(true).Render(line)
}

func alignCell(text string, width int, align lipgloss.Position) string {
	if width <= 0 {
		return ""
	}
	clamped := ClampTextWidth(text, width)
	pad := width - lipgloss.Width(clamped)
	if pad <= 0 {
		return truncateRunes(clamped, width)
	}
	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", pad) + clamped
	case lipgloss.Center:
		left := pad / 2
		return strings.Repeat(" ", left) + clamped + strings.Repeat(" ", pad-left)
	default:
		return clamped + strings.Repeat(" ", pad)
	}
}

// markSelection colors the "[x]" selection marker the lists put in
// their first cell.
func markSelection(cell string) string {
	if !strings.Contains(cell, "[x]") {
		return cell
	}
	return strings.ReplaceAll(cell, "[x]", gridMarkStyle.Render("[x]"))
}
