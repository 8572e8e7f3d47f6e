package ui

import (
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordamat/waorder/cli/internal/api"
)

type listRec struct {
	id   int64
	name string
}

func recSource(rows []listRec) listSource[listRec] {
	return listSource[listRec]{
		title: "Records",
		fetch: func(skip, limit int) ([]listRec, error) {
			if skip >= len(rows) {
				return nil, nil
			}
			end := skip + limit
			if end > len(rows) {
				end = len(rows)
			}
			return rows[skip:end], nil
		},
		id: func(r listRec) int64 { return r.id },
		columns: []listColumn[listRec]{
			{title: "ID", width: 5, cell: func(r listRec) string { return fmt.Sprint(r.id) },
				compare: func(a, b listRec) int { return int(a.id - b.id) }},
			{title: "Name", width: 12, cell: func(r listRec) string { return r.name }},
		},
	}
}

func makeRecs(n int) []listRec {
	recs := make([]listRec, n)
	for i := range recs {
		recs[i] = listRec{id: int64(i + 1), name: fmt.Sprintf("rec-%02d", i+1)}
	}
	return recs
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestListFirstPageMarksExhaustedWhenShort(t *testing.T) {
	m := newListModel(recSource(makeRecs(3)))

	msg := m.Init()()
	m, _ = m.Update(msg)

	assert.Len(t, m.rows, 3)
	assert.True(t, m.exhausted)
}

func TestListLoadMoreAppendsNextPage(t *testing.T) {
	m := newListModel(recSource(makeRecs(30)))

	m, _ = m.Update(m.Init()())
	require.Len(t, m.rows, defaultPageSize)
	assert.False(t, m.exhausted)

	_, cmd := m.Update(keyRunes("m"))
	require.NotNil(t, cmd)
	m.loading = true
	m, _ = m.Update(cmd())

	assert.Len(t, m.rows, 30)
	assert.True(t, m.exhausted)
}

func TestListStaleFetchDropped(t *testing.T) {
	m := newListModel(recSource(makeRecs(3)))
	stale := m.fetchCmd(0, true)

	m, cmd := m.Reload()
	m, _ = m.Update(cmd())
	require.Len(t, m.rows, 3)

	// the pre-reload fetch lands afterwards with an old generation
	m, _ = m.Update(stale())
	assert.Len(t, m.rows, 3)
}

func TestListSelectionKeyedByRecordID(t *testing.T) {
	m := newListModel(recSource(makeRecs(3)))
	m, _ = m.Update(m.Init()())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	require.Equal(t, []int64{2}, m.selectedIDs())

	// a reorder must not move the selection onto another record
	m.sortCol = 0
	m.sortDesc = true
	m.applySort()
	assert.Equal(t, []int64{2}, m.selectedIDs())
	assert.Equal(t, int64(3), m.rows[0].id)
}

func TestBulkContinuesPastFailures(t *testing.T) {
	var mu sync.Mutex
	var applied []int64
	src := recSource(makeRecs(3))
	src.bulk = map[string]bulkOp{
		"x": {label: "Stop", run: func(id int64) error {
			mu.Lock()
			defer mu.Unlock()
			applied = append(applied, id)
			if id == 2 {
				return fmt.Errorf("boom")
			}
			return nil
		}},
	}
	m := newListModel(src)
	m, _ = m.Update(m.Init()())
	m, _ = m.Update(keyRunes("b"))
	require.Equal(t, 3, m.SelectedCount())

	_, cmd := m.Update(keyRunes("x"))
	require.NotNil(t, cmd)
	done, ok := cmd().(bulkDoneMsg)
	require.True(t, ok)

	assert.Equal(t, []int64{1, 2, 3}, applied)
	assert.Equal(t, 3, done.total)
	assert.Equal(t, 1, done.failed)

	// selection is cleared even though one row failed
	m, _ = m.Update(done)
	assert.Equal(t, 0, m.SelectedCount())
}

func TestBulkToleratesAlreadyDeleted(t *testing.T) {
	src := recSource(makeRecs(2))
	src.bulk = map[string]bulkOp{
		"d": {label: "Delete", run: func(id int64) error {
			return &api.NotFoundError{Path: "/x"}
		}},
	}
	m := newListModel(src)
	m, _ = m.Update(m.Init()())
	m, _ = m.Update(keyRunes("b"))

	_, cmd := m.Update(keyRunes("d"))
	require.NotNil(t, cmd)
	done := cmd().(bulkDoneMsg)

	assert.Equal(t, 0, done.failed)
}

func TestBulkConfirmCancelIssuesNothing(t *testing.T) {
	src := recSource(makeRecs(2))
	called := false
	src.bulk = map[string]bulkOp{
		"d": {label: "Delete", confirm: true, run: func(id int64) error {
			called = true
			return nil
		}},
	}
	m := newListModel(src)
	m, _ = m.Update(m.Init()())
	m, _ = m.Update(keyRunes("b"))

	m, cmd := m.Update(keyRunes("d"))
	assert.Nil(t, cmd)
	assert.Equal(t, "d", m.confirmBulk)

	m, cmd = m.Update(keyRunes("n"))
	assert.Nil(t, cmd)
	assert.Empty(t, m.confirmBulk)
	assert.False(t, called)
	assert.Equal(t, 2, m.SelectedCount())
}

func TestSortCycleSkipsColumnsWithoutCompare(t *testing.T) {
	m := newListModel(recSource(makeRecs(3)))
	m, _ = m.Update(m.Init()())

	m, _ = m.Update(keyRunes("s"))
	assert.Equal(t, 0, m.sortCol)

	// Name has no compare, so the cycle wraps back to ID
	m, _ = m.Update(keyRunes("s"))
	assert.Equal(t, 0, m.sortCol)
}

func TestListViewMarksSelection(t *testing.T) {
	m := newListModel(recSource(makeRecs(2)))
	m.width = 80
	m, _ = m.Update(m.Init()())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})

	view := m.View()
	assert.Contains(t, view, "[x]")
	assert.Contains(t, view, "1 selected")
}
