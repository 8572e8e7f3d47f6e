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

type groupsView int

const (
	groupsViewList groupsView = iota
	groupsViewDetail
)

// GroupsModel lists a client's order groups. Opening a group exposes
// the send action, which launches a background mailing task and polls
// it to completion.
type GroupsModel struct {
	client *api.Client
	userID int64
	view   groupsView
	list   ListModel[api.OrdersGroup]
	detail detailFlow

	width  int
	height int
}

func NewGroupsModel(client *api.Client, userID int64, userLabel string) GroupsModel {
	src := listSource[api.OrdersGroup]{
		title: fmt.Sprintf("Order Groups — %s", userLabel),
		fetch: func(skip, limit int) ([]api.OrdersGroup, error) {
			return client.ListOrdersGroups(userID, skip, limit)
		},
		id: func(g api.OrdersGroup) int64 { return g.ID },
		columns: []listColumn[api.OrdersGroup]{
			{title: "ID", width: 6, cell: func(g api.OrdersGroup) string { return strconv.FormatInt(g.ID, 10) },
				compare: func(a, b api.OrdersGroup) int { return int(a.ID - b.ID) }},
			{title: "Name", width: 22, cell: func(g api.OrdersGroup) string { return g.Name },
				compare: func(a, b api.OrdersGroup) int { return strings.Compare(a.Name, b.Name) }},
			{title: "Orders", width: 6, align: lipgloss.Right,
				cell: func(g api.OrdersGroup) string { return strconv.Itoa(g.TotalOrders) },
				compare: func(a, b api.OrdersGroup) int { return a.TotalOrders - b.TotalOrders }},
			{title: "Template", width: 36, cell: func(g api.OrdersGroup) string {
				return components.SanitizeOneLine(g.Template)
			}},
		},
		bulk: map[string]bulkOp{
			"d": {label: "Delete groups", confirm: true, run: func(id int64) error {
				return client.DeleteResource(api.GroupsResource, id)
			}},
		},
	}
	return GroupsModel{client: client, userID: userID, list: newListModel(src)}
}

func (m GroupsModel) Init() tea.Cmd {
	return m.list.Init()
}

func (m GroupsModel) Update(msg tea.Msg) (GroupsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case detailDeletedMsg:
		if m.view == groupsViewDetail {
			m.view = groupsViewList
			var cmd tea.Cmd
			m.list, cmd = m.list.Reload()
			return m, cmd
		}

	case tea.KeyMsg:
		if m.view == groupsViewList && isEnter(msg) {
			if group, ok := m.list.CursorRow(); ok {
				m.view = groupsViewDetail
				m.detail = m.newGroupDetail(group.ID)
				m.detail.setWidth(m.width)
				return m, m.detail.Init()
			}
		}
	}

	var cmd tea.Cmd
	if m.view == groupsViewDetail {
		m.detail, cmd = m.detail.Update(msg)
		if m.detail.closed {
			m.view = groupsViewList
		}
		return m, cmd
	}
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m GroupsModel) newGroupDetail(id int64) detailFlow {
	client := m.client
	return detailFlow{
		client:      client,
		title:       fmt.Sprintf("Order Group #%d", id),
		loading:     true,
		longText:    []string{"template"},
		schemaFetch: func() (*api.ResourceSchema, error) { return client.GetSchema(api.GroupsResource) },
		fetch:       func() (api.Instance, error) { return client.GetResource(api.GroupsResource, id) },
		update: func(draft api.Instance) (api.Instance, error) {
			return client.UpdateResource(api.GroupsResource, id, draft)
		},
		remove: func() error { return client.DeleteResource(api.GroupsResource, id) },
		actions: []sideAction{
			{key: "s", label: "send", watch: true, run: func() (string, error) {
				return client.SendOrdersGroup(id)
			}},
		},
	}
}

func (m GroupsModel) textEntryActive() bool {
	if m.view == groupsViewDetail {
		return m.detail.textEntryActive()
	}
	return false
}

func (m *GroupsModel) setSize(width, height int) {
	m.width = width
	m.height = height
	m.list.width = width
	m.list.height = height
	m.detail.setWidth(width)
}

func (m GroupsModel) View() string {
	if m.view == groupsViewDetail {
		return m.detail.View()
	}
	return m.list.View()
}
