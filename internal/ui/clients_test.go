package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordamat/waorder/cli/internal/api"
	"github.com/ordamat/waorder/cli/internal/config"
)

func testClient() *api.Client {
	return api.NewClient("http://localhost:1", api.NewAuthSession("tok"))
}

func testConfig() *config.Config {
	return &config.Config{Token: "tok", Username: "admin@x.kz", Role: "admin"}
}

func clientsWithRows(t *testing.T, rows []api.User) ClientsModel {
	t.Helper()
	m := NewClientsModel(testClient())
	m, _ = m.Update(listRowsMsg[api.User]{replace: true, rows: rows})
	require.Len(t, m.list.rows, len(rows))
	return m
}

func TestClientsOpenRecordThenWorkspace(t *testing.T) {
	m := clientsWithRows(t, []api.User{{ID: 5, Email: "shop@x.kz"}})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, clientsViewDetail, m.view)
	assert.Equal(t, int64(5), m.openID)
	assert.Equal(t, "shop@x.kz", m.openLabel)

	// record loads, then t opens the templates workspace
	m, _ = m.Update(detailLoadedMsg{schema: templateSchema(t), item: api.Instance{"id": float64(5)}})
	m, cmd = m.Update(keyRunes("t"))
	require.NotNil(t, cmd)
	assert.Equal(t, clientsViewTemplates, m.view)

	// esc at the workspace top pops back to the record
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, clientsViewDetail, m.view)

	// esc on the record returns to the roster
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, clientsViewList, m.view)
}

func TestClientsWorkspaceKeysNeedIdleRecord(t *testing.T) {
	m := clientsWithRows(t, []api.User{{ID: 5, Email: "shop@x.kz"}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(detailLoadedMsg{schema: templateSchema(t), item: api.Instance{"id": float64(5)}})

	// while editing, workspace shortcuts must type into the form instead
	m, _ = m.Update(keyRunes("e"))
	require.Equal(t, detailEditing, m.detail.mode)
	m, _ = m.Update(keyRunes("t"))
	assert.Equal(t, clientsViewDetail, m.view)
}

func TestClientsBulkOperations(t *testing.T) {
	m := NewClientsModel(testClient())

	require.Contains(t, m.list.src.bulk, "g")
	require.Contains(t, m.list.src.bulk, "x")
	require.Contains(t, m.list.src.bulk, "d")
	assert.False(t, m.list.src.bulk["g"].confirm)
	assert.False(t, m.list.src.bulk["x"].confirm)
	assert.True(t, m.list.src.bulk["d"].confirm, "delete must ask first")
}

func TestClientsRowShowsSendState(t *testing.T) {
	m := clientsWithRows(t, []api.User{
		{ID: 1, Email: "a@x.kz", CountMessagesSent: 4, LimitMessagesPerDay: 100},
		{ID: 2, Email: "b@x.kz", Disable: true},
	})
	m.list.width = 120

	view := m.list.View()
	assert.Contains(t, view, "4/100")
	assert.Contains(t, view, "stopped")
	assert.Contains(t, view, "active")
}

func TestOrdersGroupFilter(t *testing.T) {
	m := NewOrdersModel(testClient(), 5, "shop@x.kz")

	m, _ = m.Update(keyRunes("f"))
	require.True(t, m.textEntryActive())
	m, _ = m.Update(keyRunes("12"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, int64(12), m.state.filter.GroupID)
	assert.False(t, m.textEntryActive())

	// F drops the filter and reloads
	m, cmd = m.Update(keyRunes("F"))
	require.NotNil(t, cmd)
	assert.Zero(t, m.state.filter.GroupID)
}

func TestOrdersCodeSearchWinsOverFilter(t *testing.T) {
	m := NewOrdersModel(testClient(), 5, "shop@x.kz")
	m.state.filter.GroupID = 9

	m, _ = m.Update(keyRunes("/"))
	m, _ = m.Update(keyRunes("KSP-100"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "KSP-100", m.state.code)
	assert.Contains(t, m.View(), "code=KSP-100")
}

func TestOrdersFilterInputBackspaceAndCancel(t *testing.T) {
	m := NewOrdersModel(testClient(), 5, "shop@x.kz")

	m, _ = m.Update(keyRunes("f"))
	m, _ = m.Update(keyRunes("123"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "12", m.buffer)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.textEntryActive())
	assert.Zero(t, m.state.filter.GroupID)
}

func TestTemplatesPlaceholderPicker(t *testing.T) {
	m := NewTemplatesModel(testClient(), 5, "shop@x.kz")
	m.view = templatesViewCreate
	m.create = readyCreateFlow(t, nil)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	require.NotNil(t, m.picker)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, m.picker)

	m.create, _ = m.create.Update(keyRunes("!"))
	draft, err := m.create.form.Value()
	require.NoError(t, err)
	assert.Contains(t, draft["state_status"], "{{code}}")
}

func TestSettingsLogoutConfirms(t *testing.T) {
	m := NewSettingsModel(testClient(), testConfig())

	m, _ = m.Update(keyRunes("L"))
	require.True(t, m.confirm)

	m, cmd := m.Update(keyRunes("n"))
	assert.False(t, m.confirm)
	assert.Nil(t, cmd)

	m, _ = m.Update(keyRunes("L"))
	m, cmd = m.Update(keyRunes("y"))
	require.NotNil(t, cmd)
	_, ok := cmd().(logoutMsg)
	assert.True(t, ok)
}
