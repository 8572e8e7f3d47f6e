package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ordamat/waorder/cli/internal/api"
)

type clientsView int

const (
	clientsViewList clientsView = iota
	clientsViewCreate
	clientsViewDetail
	clientsViewOrders
	clientsViewGroups
	clientsViewTemplates
	clientsViewCustomers
	clientsViewReviews
	clientsViewStats
)

// ClientsModel is the main tab: the client roster plus a per-client
// workspace reached from the open record (orders, groups, templates,
// customers, reviews, statistics).
type ClientsModel struct {
	client *api.Client
	view   clientsView
	list   ListModel[api.User]
	create createFlow
	detail detailFlow

	openID    int64
	openLabel string

	orders    OrdersModel
	groups    GroupsModel
	templates TemplatesModel
	customers CustomersModel
	reviews   ReviewsModel
	stats     StatsModel

	width  int
	height int
}

func NewClientsModel(client *api.Client) ClientsModel {
	src := listSource[api.User]{
		title: "Clients",
		fetch: client.ListClients,
		id:    func(u api.User) int64 { return u.ID },
		columns: []listColumn[api.User]{
			{title: "ID", width: 5, cell: func(u api.User) string { return strconv.FormatInt(u.ID, 10) },
				compare: func(a, b api.User) int { return int(a.ID - b.ID) }},
			{title: "Email", width: 26, cell: func(u api.User) string { return u.Email },
				compare: func(a, b api.User) int { return strings.Compare(a.Email, b.Email) }},
			{title: "Name", width: 20, cell: func(u api.User) string { return u.FullName },
				compare: func(a, b api.User) int { return strings.Compare(a.FullName, b.FullName) }},
			{title: "Sent", width: 11, align: lipgloss.Right, cell: func(u api.User) string {
				return fmt.Sprintf("%d/%d", u.CountMessagesSent, u.LimitMessagesPerDay)
			}},
			{title: "Plan ends", width: 10, cell: func(u api.User) string { return u.BillingPlanEnd }},
			{title: "State", width: 8, cell: func(u api.User) string {
				if u.Disable {
					return "stopped"
				}
				return "active"
			}, compare: func(a, b api.User) int {
				switch {
				case a.Disable == b.Disable:
					return 0
				case a.Disable:
					return 1
				}
				return -1
			}},
		},
		bulk: map[string]bulkOp{
			"g": {label: "Start sending", run: func(id int64) error {
				_, err := client.SetClientDisabled(id, false)
				return err
			}},
			"x": {label: "Stop sending", run: func(id int64) error {
				_, err := client.SetClientDisabled(id, true)
				return err
			}},
			"d": {label: "Delete clients", confirm: true, run: client.DeleteClient},
		},
	}
	return ClientsModel{client: client, list: newListModel(src)}
}

func (m ClientsModel) Init() tea.Cmd {
	return m.list.Init()
}

func (m ClientsModel) Update(msg tea.Msg) (ClientsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case createdMsg:
		if m.view == clientsViewCreate {
			m.view = clientsViewList
			var cmd tea.Cmd
			m.list, cmd = m.list.Reload()
			return m, cmd
		}

	case detailDeletedMsg:
		if m.view == clientsViewDetail {
			m.view = clientsViewList
			var cmd tea.Cmd
			m.list, cmd = m.list.Reload()
			return m, cmd
		}

	case tea.KeyMsg:
		switch m.view {
		case clientsViewList:
			switch {
			case isKey(msg, "n"):
				m.view = clientsViewCreate
				m.create = newCreateFlow("New Client",
					func() (*api.ResourceSchema, error) { return m.client.GetSchema(api.ClientsResource) },
					func(draft api.Instance) (api.Instance, error) {
						return m.client.CreateResource(api.ClientsResource, draft)
					})
				m.create.setWidth(m.width)
				return m, m.create.Init()
			case isEnter(msg):
				if user, ok := m.list.CursorRow(); ok {
					m.openID = user.ID
					m.openLabel = user.Email
					if m.openLabel == "" {
						m.openLabel = fmt.Sprintf("client #%d", user.ID)
					}
					m.view = clientsViewDetail
					m.detail = m.newClientDetail(user.ID)
					m.detail.setWidth(m.width)
					return m, m.detail.Init()
				}
			}

		case clientsViewCreate:
			if isBack(msg) && !m.create.saving {
				m.view = clientsViewList
				return m, nil
			}

		case clientsViewDetail:
			if m.detail.idleViewing() {
				if next, sub, ok := m.workspaceFor(msg); ok {
					m.view = next
					return m, sub
				}
			}

		default:
			// a workspace sub-view; esc at its top level returns to the record
			if isBack(msg) && !m.workspaceTextEntry() {
				if m.workspaceAtTop() {
					m.view = clientsViewDetail
					return m, nil
				}
			}
		}
	}

	return m.route(msg)
}

// workspaceFor maps a key pressed on the open client record to one of
// the workspace sub-views, returning its init cmd.
func (m *ClientsModel) workspaceFor(msg tea.KeyMsg) (clientsView, tea.Cmd, bool) {
	switch {
	case isKey(msg, "o"):
		m.orders = NewOrdersModel(m.client, m.openID, m.openLabel)
		m.orders.setSize(m.width, m.height)
		return clientsViewOrders, m.orders.Init(), true
	case isKey(msg, "g"):
		m.groups = NewGroupsModel(m.client, m.openID, m.openLabel)
		m.groups.setSize(m.width, m.height)
		return clientsViewGroups, m.groups.Init(), true
	case isKey(msg, "t"):
		m.templates = NewTemplatesModel(m.client, m.openID, m.openLabel)
		m.templates.setSize(m.width, m.height)
		return clientsViewTemplates, m.templates.Init(), true
	case isKey(msg, "u"):
		m.customers = NewCustomersModel(m.client, m.openID, m.openLabel)
		m.customers.setSize(m.width, m.height)
		return clientsViewCustomers, m.customers.Init(), true
	case isKey(msg, "v"):
		m.reviews = NewReviewsModel(m.client, m.openID, m.openLabel)
		m.reviews.setSize(m.width, m.height)
		return clientsViewReviews, m.reviews.Init(), true
	case isKey(msg, "s"):
		m.stats = NewStatsModel(m.client, m.openID, m.openLabel)
		m.stats.setSize(m.width, m.height)
		return clientsViewStats, m.stats.Init(), true
	}
	return 0, nil, false
}

// workspaceAtTop reports whether the active sub-view is showing its
// top-level list, meaning esc should pop back to the client record.
func (m ClientsModel) workspaceAtTop() bool {
	switch m.view {
	case clientsViewOrders:
		return m.orders.input == ordersInputNone && m.orders.list.confirmBulk == ""
	case clientsViewGroups:
		return m.groups.view == groupsViewList && m.groups.list.confirmBulk == ""
	case clientsViewTemplates:
		return m.templates.view == templatesViewList && m.templates.picker == nil &&
			m.templates.list.confirmBulk == ""
	case clientsViewCustomers:
		return m.customers.view == customersViewList
	case clientsViewReviews:
		return true
	case clientsViewStats:
		return true
	}
	return false
}

func (m ClientsModel) workspaceTextEntry() bool {
	switch m.view {
	case clientsViewOrders:
		return m.orders.textEntryActive()
	case clientsViewGroups:
		return m.groups.textEntryActive()
	case clientsViewTemplates:
		return m.templates.textEntryActive()
	}
	return false
}

func (m ClientsModel) route(msg tea.Msg) (ClientsModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case clientsViewCreate:
		m.create, cmd = m.create.Update(msg)
	case clientsViewDetail:
		m.detail, cmd = m.detail.Update(msg)
		if m.detail.closed {
			m.view = clientsViewList
		}
	case clientsViewOrders:
		m.orders, cmd = m.orders.Update(msg)
	case clientsViewGroups:
		m.groups, cmd = m.groups.Update(msg)
	case clientsViewTemplates:
		m.templates, cmd = m.templates.Update(msg)
	case clientsViewCustomers:
		m.customers, cmd = m.customers.Update(msg)
	case clientsViewReviews:
		m.reviews, cmd = m.reviews.Update(msg)
	case clientsViewStats:
		m.stats, cmd = m.stats.Update(msg)
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m ClientsModel) newClientDetail(id int64) detailFlow {
	client := m.client
	return detailFlow{
		client:      client,
		title:       fmt.Sprintf("Client #%d", id),
		loading:     true,
		schemaFetch: func() (*api.ResourceSchema, error) { return client.GetSchema(api.ClientsResource) },
		fetch:       func() (api.Instance, error) { return client.GetResource(api.ClientsResource, id) },
		update: func(draft api.Instance) (api.Instance, error) {
			return client.UpdateResource(api.ClientsResource, id, draft)
		},
		remove: func() error { return client.DeleteClient(id) },
		actions: []sideAction{
			{key: "b", label: "bind whatsapp", watch: true, run: func() (string, error) {
				return client.BindWhatsapp(id)
			}},
			{key: "c", label: "pairing code", resultTitle: "WhatsApp Pairing Code",
				resultHint: "Enter this code in WhatsApp → Linked Devices.",
				run: func() (string, error) {
					return client.WhatsappCode(id)
				}},
			{key: "Q", label: "qr", resultTitle: "WhatsApp QR Payload",
				resultHint: "Render this payload as a QR image and scan it from the phone.",
				run: func() (string, error) {
					return client.WhatsappQR(id)
				}},
		},
	}
}

func (m ClientsModel) textEntryActive() bool {
	switch m.view {
	case clientsViewCreate:
		return m.create.textEntryActive()
	case clientsViewDetail:
		return m.detail.textEntryActive()
	default:
		return m.workspaceTextEntry()
	}
}

func (m *ClientsModel) setSize(width, height int) {
	m.width = width
	m.height = height
	m.list.width = width
	m.list.height = height
	m.create.setWidth(width)
	m.detail.setWidth(width)
	m.orders.setSize(width, height)
	m.groups.setSize(width, height)
	m.templates.setSize(width, height)
	m.customers.setSize(width, height)
	m.reviews.setSize(width, height)
	m.stats.setSize(width, height)
}

func (m ClientsModel) View() string {
	switch m.view {
	case clientsViewCreate:
		return m.create.View()
	case clientsViewDetail:
		view := m.detail.View()
		if m.detail.idleViewing() {
			view += "\n" + MutedStyle.Render(
				"workspace  o: orders · g: groups · t: templates · u: customers · v: reviews · s: stats")
		}
		return view
	case clientsViewOrders:
		return m.orders.View()
	case clientsViewGroups:
		return m.groups.View()
	case clientsViewTemplates:
		return m.templates.View()
	case clientsViewCustomers:
		return m.customers.View()
	case clientsViewReviews:
		return m.reviews.View()
	case clientsViewStats:
		return m.stats.View()
	default:
		return m.list.View()
	}
}
