package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestTableGridLinesSpanTableWidth(t *testing.T) {
	cols := []TableColumn{
		{Header: "ID", Width: 4},
		{Header: "Email", Width: 20},
	}
	rows := [][]string{
		{"1", "shop@kaspi.kz"},
		{"2", "store@kaspi.kz"},
	}
	out := TableGrid(cols, rows, 60, 1)
	lines := strings.Split(out, "\n")
	// header + rule + two rows
	assert.Len(t, lines, 4)
	for _, line := range lines {
		assert.Equal(t, 60, lipgloss.Width(line))
	}
}

func TestTableGridLastColumnAbsorbsSlack(t *testing.T) {
	cols := sizeColumns([]TableColumn{
		{Header: "ID", Width: 4},
		{Header: "Email", Width: 10},
	}, 40)
	// 40 - indent(2) - separator(1) - first(4) = 33
	assert.Equal(t, 4, cols[0].Width)
	assert.Equal(t, 33, cols[1].Width)
}

func TestTableGridSelectionMarker(t *testing.T) {
	cols := []TableColumn{{Header: "Sel", Width: 4}, {Header: "ID", Width: 6}}
	out := TableGrid(cols, [][]string{{"[x]", "7"}}, 40, -1)
	assert.Contains(t, out, "[x]")
}

func TestTableGridRightAlignsCells(t *testing.T) {
	assert.Equal(t, "   7", alignCell("7", 4, lipgloss.Right))
	assert.Equal(t, "7   ", alignCell("7", 4, lipgloss.Left))
}
