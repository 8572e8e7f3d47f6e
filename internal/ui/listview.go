package ui

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ordamat/waorder/cli/internal/api"
	"github.com/ordamat/waorder/cli/internal/logging"
	"github.com/ordamat/waorder/cli/internal/ui/components"
)

const defaultPageSize = 25

// listColumn describes one rendered column. compare enables client
// side sorting; columns without it are skipped by the sort cycle.
type listColumn[T any] struct {
	title   string
	width   int
	align   lipgloss.Position
	cell    func(T) string
	compare func(a, b T) int
}

// bulkOp is an action applied to every selected row, one request at a
// time. A failure on one row never aborts the rest.
type bulkOp struct {
	label   string
	confirm bool
	run     func(id int64) error
}

// listSource wires a ListModel to a resource collection.
type listSource[T any] struct {
	title   string
	fetch   func(skip, limit int) ([]T, error)
	id      func(T) int64
	columns []listColumn[T]
	bulk    map[string]bulkOp
}

type listRowsMsg[T any] struct {
	gen     int
	replace bool
	rows    []T
	err     error
}

type bulkDoneMsg struct {
	action string
	label  string
	total  int
	failed int
}

// ListModel renders a pageable, sortable, multi-select record list.
// Selection is keyed by record id, not row position, so refreshes and
// sorts never silently move a selection onto a different record.
type ListModel[T any] struct {
	src listSource[T]

	rows      []T
	cursor    int
	pageSize  int
	gen       int
	loading   bool
	exhausted bool

	selected    map[int64]bool
	sortCol     int
	sortDesc    bool
	confirmBulk string
	bulkRunning string

	width  int
	height int
}

func newListModel[T any](src listSource[T]) ListModel[T] {
	return ListModel[T]{
		src:      src,
		pageSize: defaultPageSize,
		sortCol:  -1,
		selected: make(map[int64]bool),
	}
}

func (m ListModel[T]) Init() tea.Cmd {
	return m.fetchCmd(0, true)
}

func (m ListModel[T]) fetchCmd(skip int, replace bool) tea.Cmd {
	gen := m.gen
	fetch := m.src.fetch
	limit := m.pageSize
	return func() tea.Msg {
		rows, err := fetch(skip, limit)
		return listRowsMsg[T]{gen: gen, replace: replace, rows: rows, err: err}
	}
}

// Reload drops loaded pages and fetches the first one again. Any
// in-flight fetch from before becomes stale via the generation bump.
func (m ListModel[T]) Reload() (ListModel[T], tea.Cmd) {
	m.gen++
	m.loading = true
	m.exhausted = false
	return m, m.fetchCmd(0, true)
}

// CursorRow returns the record under the cursor.
func (m ListModel[T]) CursorRow() (T, bool) {
	var zero T
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return zero, false
	}
	return m.rows[m.cursor], true
}

func (m ListModel[T]) Rows() []T { return m.rows }

func (m ListModel[T]) SelectedCount() int { return len(m.selected) }

func (m ListModel[T]) selectedIDs() []int64 {
	ids := make([]int64, 0, len(m.selected))
	for id := range m.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m ListModel[T]) Update(msg tea.Msg) (ListModel[T], tea.Cmd) {
	switch msg := msg.(type) {
	case listRowsMsg[T]:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m, func() tea.Msg { return errMsg{msg.err} }
		}
		if msg.replace {
			m.rows = msg.rows
			m.cursor = 0
		} else {
			m.rows = append(m.rows, msg.rows...)
		}
		if len(msg.rows) < m.pageSize {
			m.exhausted = true
		}
		m.applySort()
		return m, nil

	case bulkDoneMsg:
		// selection is spent whether or not every row succeeded
		m.selected = make(map[int64]bool)
		m.bulkRunning = ""
		return m.Reload()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m ListModel[T]) handleKey(msg tea.KeyMsg) (ListModel[T], tea.Cmd) {
	if m.confirmBulk != "" {
		switch {
		case isKey(msg, "y"):
			key := m.confirmBulk
			m.confirmBulk = ""
			m.bulkRunning = key
			return m, m.runBulkCmd(key)
		case isKey(msg, "n"), isBack(msg):
			m.confirmBulk = ""
		}
		return m, nil
	}

	switch {
	case isUp(msg):
		if m.cursor > 0 {
			m.cursor--
		}
	case isDown(msg):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case isSpace(msg):
		if row, ok := m.CursorRow(); ok {
			id := m.src.id(row)
			if m.selected[id] {
				delete(m.selected, id)
			} else {
				m.selected[id] = true
			}
		}
	case isKey(msg, "b"):
		for _, row := range m.rows {
			m.selected[m.src.id(row)] = true
		}
	case isKey(msg, "c"):
		m.selected = make(map[int64]bool)
	case isKey(msg, "m"):
		if !m.exhausted && !m.loading {
			m.loading = true
			return m, m.fetchCmd(len(m.rows), false)
		}
	case isKey(msg, "r"):
		return m.Reload()
	case isKey(msg, "s"):
		m.cycleSort()
	case isKey(msg, "S"):
		if m.sortCol >= 0 {
			m.sortDesc = !m.sortDesc
			m.applySort()
		}
	default:
		if op, ok := m.src.bulk[msg.String()]; ok && len(m.selected) > 0 && m.bulkRunning == "" {
			if op.confirm {
				m.confirmBulk = msg.String()
				return m, nil
			}
			m.bulkRunning = msg.String()
			return m, m.runBulkCmd(msg.String())
		}
	}
	return m, nil
}

// runBulkCmd applies the action to each selected id sequentially.
// Failed rows are logged and counted; the loop always finishes.
func (m ListModel[T]) runBulkCmd(key string) tea.Cmd {
	op := m.src.bulk[key]
	ids := m.selectedIDs()
	return func() tea.Msg {
		failed := 0
		for _, id := range ids {
			if err := op.run(id); err != nil && !api.IsNotFound(err) {
				logging.L().Warn("bulk action failed",
					zap.String("action", op.label),
					zap.Int64("id", id),
					zap.Error(err))
				failed++
			}
		}
		return bulkDoneMsg{action: key, label: op.label, total: len(ids), failed: failed}
	}
}

func (m *ListModel[T]) cycleSort() {
	if len(m.src.columns) == 0 {
		return
	}
	start := m.sortCol
	for i := 1; i <= len(m.src.columns); i++ {
		next := (start + i) % len(m.src.columns)
		if m.src.columns[next].compare != nil {
			m.sortCol = next
			m.sortDesc = false
			m.applySort()
			return
		}
	}
}

func (m *ListModel[T]) applySort() {
	if m.sortCol < 0 || m.sortCol >= len(m.src.columns) {
		return
	}
	cmp := m.src.columns[m.sortCol].compare
	if cmp == nil {
		return
	}
	desc := m.sortDesc
	sort.SliceStable(m.rows, func(i, j int) bool {
		c := cmp(m.rows[i], m.rows[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func (m ListModel[T]) View() string {
	if m.confirmBulk != "" {
		op := m.src.bulk[m.confirmBulk]
		return components.ConfirmDialog(
			op.label,
			fmt.Sprintf("Apply to %d selected record(s)?", len(m.selected)),
		)
	}

	if m.loading && len(m.rows) == 0 {
		return components.Box(MutedStyle.Render("Loading..."), m.width)
	}
	if len(m.rows) == 0 {
		return components.TitledBox(m.src.title, MutedStyle.Render("No records."), m.width)
	}

	cols := make([]components.TableColumn, 0, len(m.src.columns)+1)
	cols = append(cols, components.TableColumn{Header: "", Width: 3})
	for i, c := range m.src.columns {
		header := c.title
		if i == m.sortCol {
			if m.sortDesc {
				header += " ↓"
			} else {
				header += " ↑"
			}
		}
		cols = append(cols, components.TableColumn{Header: header, Width: c.width, Align: c.align})
	}

	rows := make([][]string, 0, len(m.rows))
	for _, r := range m.rows {
		marker := "   "
		if m.selected[m.src.id(r)] {
			marker = "[x]"
		}
		cells := make([]string, 0, len(cols))
		cells = append(cells, marker)
		for _, c := range m.src.columns {
			cells = append(cells, c.cell(r))
		}
		rows = append(rows, cells)
	}

	grid := components.TableGrid(cols, rows, components.BoxContentWidth(m.width), m.cursor)

	footer := fmt.Sprintf("%d loaded", len(m.rows))
	if len(m.selected) > 0 {
		footer += fmt.Sprintf(" · %d selected", len(m.selected))
	}
	if m.bulkRunning != "" {
		footer += " · working..."
	} else if m.loading {
		footer += " · loading..."
	} else if !m.exhausted {
		footer += " · m: more"
	}

	return components.TitledBox(m.src.title, grid+"\n\n"+MutedStyle.Render(footer), m.width)
}
