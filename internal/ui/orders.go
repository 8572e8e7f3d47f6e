package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ordamat/waorder/cli/internal/api"
	"github.com/ordamat/waorder/cli/internal/ui/components"
)

// orderFilterState is shared between the model and the list fetch
// closure so that filter changes take effect on the next fetch without
// rebuilding the list.
type orderFilterState struct {
	filter api.OrderFilter
	code   string
}

type ordersInput int

const (
	ordersInputNone ordersInput = iota
	ordersInputGroup
	ordersInputCode
)

// OrdersModel lists a client's orders with a group filter and a
// code search.
type OrdersModel struct {
	client *api.Client
	state  *orderFilterState
	input  ordersInput
	buffer string
	list   ListModel[api.Order]

	width  int
	height int
}

func NewOrdersModel(client *api.Client, userID int64, userLabel string) OrdersModel {
	state := &orderFilterState{filter: api.OrderFilter{UserID: userID}}
	src := listSource[api.Order]{
		title: fmt.Sprintf("Orders — %s", userLabel),
		fetch: func(skip, limit int) ([]api.Order, error) {
			if state.code != "" {
				return client.OrdersByCode(state.code, skip, limit)
			}
			return client.ListOrders(state.filter, skip, limit)
		},
		id: func(o api.Order) int64 { return o.ID },
		columns: []listColumn[api.Order]{
			{title: "ID", width: 7, cell: func(o api.Order) string { return strconv.FormatInt(o.ID, 10) },
				compare: func(a, b api.Order) int { return int(a.ID - b.ID) }},
			{title: "Code", width: 12, cell: func(o api.Order) string { return o.Code },
				compare: func(a, b api.Order) int { return strings.Compare(a.Code, b.Code) }},
			{title: "Status", width: 16, cell: func(o api.Order) string { return o.Status },
				compare: func(a, b api.Order) int { return strings.Compare(a.Status, b.Status) }},
			{title: "State", width: 14, cell: func(o api.Order) string { return o.StateStatus }},
			{title: "Phone", width: 14, cell: func(o api.Order) string { return o.Phone }},
			{title: "Sent", width: 4, align: lipgloss.Center, cell: func(o api.Order) string {
				if o.IsSended {
					return "✓"
				}
				return "·"
			}},
			{title: "Created", width: 19, cell: func(o api.Order) string { return o.CreatedAt },
				compare: func(a, b api.Order) int { return strings.Compare(a.CreatedAt, b.CreatedAt) }},
		},
	}
	return OrdersModel{client: client, state: state, list: newListModel(src)}
}

func (m OrdersModel) Init() tea.Cmd {
	return m.list.Init()
}

func (m OrdersModel) Update(msg tea.Msg) (OrdersModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if m.input != ordersInputNone {
			return m.updateInput(key)
		}
		switch {
		case isKey(key, "f"):
			m.input = ordersInputGroup
			m.buffer = ""
			return m, nil
		case isKey(key, "/"):
			m.input = ordersInputCode
			m.buffer = ""
			return m, nil
		case isKey(key, "F"):
			if m.state.filter.GroupID != 0 || m.state.code != "" {
				m.state.filter.GroupID = 0
				m.state.code = ""
				var cmd tea.Cmd
				m.list, cmd = m.list.Reload()
				return m, cmd
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m OrdersModel) updateInput(key tea.KeyMsg) (OrdersModel, tea.Cmd) {
	switch {
	case isBack(key):
		m.input = ordersInputNone
		return m, nil
	case isEnter(key):
		mode := m.input
		m.input = ordersInputNone
		switch mode {
		case ordersInputGroup:
			id, err := strconv.ParseInt(strings.TrimSpace(m.buffer), 10, 64)
			if err != nil {
				return m, nil
			}
			m.state.filter.GroupID = id
			m.state.code = ""
		case ordersInputCode:
			m.state.code = strings.TrimSpace(m.buffer)
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Reload()
		return m, cmd
	case key.Type == tea.KeyBackspace:
		if m.buffer != "" {
			m.buffer = m.buffer[:len(m.buffer)-1]
		}
		return m, nil
	case key.Type == tea.KeyRunes:
		m.buffer += string(key.Runes)
		return m, nil
	}
	return m, nil
}

func (m OrdersModel) textEntryActive() bool {
	return m.input != ordersInputNone
}

func (m *OrdersModel) setSize(width, height int) {
	m.width = width
	m.height = height
	m.list.width = width
	m.list.height = height
}

func (m OrdersModel) View() string {
	if m.input != ordersInputNone {
		title := "Filter by group id"
		if m.input == ordersInputCode {
			title = "Search by order code"
		}
		return components.InputDialog(title, m.buffer)
	}
	view := m.list.View()
	var active []string
	if m.state.filter.GroupID != 0 {
		active = append(active, fmt.Sprintf("group=%d", m.state.filter.GroupID))
	}
	if m.state.code != "" {
		active = append(active, fmt.Sprintf("code=%s", m.state.code))
	}
	if len(active) > 0 {
		view += "\n" + MutedStyle.Render("filter: "+strings.Join(active, " ")+"  (F clears)")
	}
	return view
}
