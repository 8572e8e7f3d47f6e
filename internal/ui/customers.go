package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ordamat/waorder/cli/internal/api"
)

type customersView int

const (
	customersViewList customersView = iota
	customersViewDetail
)

// CustomersModel is a read-only browse over a client's customers.
// Customer records are written by the sync pipeline, so the detail
// view exposes neither edit nor delete.
type CustomersModel struct {
	client *api.Client
	view   customersView
	list   ListModel[api.Customer]
	detail detailFlow

	width  int
	height int
}

func NewCustomersModel(client *api.Client, userID int64, userLabel string) CustomersModel {
	src := listSource[api.Customer]{
		title: fmt.Sprintf("Customers — %s", userLabel),
		fetch: func(skip, limit int) ([]api.Customer, error) {
			return client.ListCustomers(userID, skip, limit)
		},
		id: func(c api.Customer) int64 { return c.ID },
		columns: []listColumn[api.Customer]{
			{title: "ID", width: 7, cell: func(c api.Customer) string { return strconv.FormatInt(c.ID, 10) },
				compare: func(a, b api.Customer) int { return int(a.ID - b.ID) }},
			{title: "First name", width: 16, cell: func(c api.Customer) string { return c.FirstName },
				compare: func(a, b api.Customer) int { return strings.Compare(a.FirstName, b.FirstName) }},
			{title: "Last name", width: 16, cell: func(c api.Customer) string { return c.LastName },
				compare: func(a, b api.Customer) int { return strings.Compare(a.LastName, b.LastName) }},
			{title: "Phone", width: 15, cell: func(c api.Customer) string { return c.Phone }},
		},
	}
	return CustomersModel{client: client, list: newListModel(src)}
}

func (m CustomersModel) Init() tea.Cmd {
	return m.list.Init()
}

func (m CustomersModel) Update(msg tea.Msg) (CustomersModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && m.view == customersViewList && isEnter(key) {
		if cust, ok := m.list.CursorRow(); ok {
			client, id := m.client, cust.ID
			m.view = customersViewDetail
			m.detail = detailFlow{
				client:      client,
				title:       fmt.Sprintf("Customer #%d", id),
				loading:     true,
				schemaFetch: func() (*api.ResourceSchema, error) { return client.GetSchema("customers") },
				fetch:       func() (api.Instance, error) { return client.GetResource("customers", id) },
			}
			m.detail.setWidth(m.width)
			return m, m.detail.Init()
		}
	}

	var cmd tea.Cmd
	if m.view == customersViewDetail {
		m.detail, cmd = m.detail.Update(msg)
		if m.detail.closed {
			m.view = customersViewList
		}
		return m, cmd
	}
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *CustomersModel) setSize(width, height int) {
	m.width = width
	m.height = height
	m.list.width = width
	m.list.height = height
	m.detail.setWidth(width)
}

func (m CustomersModel) View() string {
	if m.view == customersViewDetail {
		return m.detail.View()
	}
	return m.list.View()
}
