package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ordamat/waorder/cli/internal/api"
)

type billingView int

const (
	billingViewList billingView = iota
	billingViewCreate
	billingViewDetail
)

// BillingModel is the billing plans tab: generic schema-driven CRUD
// over the billing_plans collection.
type BillingModel struct {
	client *api.Client
	view   billingView
	list   ListModel[api.BillingPlan]
	create createFlow
	detail detailFlow

	width  int
	height int
}

func NewBillingModel(client *api.Client) BillingModel {
	src := listSource[api.BillingPlan]{
		title: "Billing Plans",
		fetch: client.ListBillingPlans,
		id:    func(p api.BillingPlan) int64 { return p.ID },
		columns: []listColumn[api.BillingPlan]{
			{title: "ID", width: 5, cell: func(p api.BillingPlan) string { return strconv.FormatInt(p.ID, 10) },
				compare: func(a, b api.BillingPlan) int { return int(a.ID - b.ID) }},
			{title: "Name", width: 18, cell: func(p api.BillingPlan) string { return p.Name },
				compare: func(a, b api.BillingPlan) int { return strings.Compare(a.Name, b.Name) }},
			{title: "Price", width: 10, align: lipgloss.Right,
				cell: func(p api.BillingPlan) string { return strconv.FormatFloat(p.Price, 'f', -1, 64) },
				compare: func(a, b api.BillingPlan) int {
					switch {
					case a.Price < b.Price:
						return -1
					case a.Price > b.Price:
						return 1
					}
					return 0
				}},
			{title: "Msgs/day", width: 9, align: lipgloss.Right,
				cell: func(p api.BillingPlan) string { return strconv.Itoa(p.LimitMessages) }},
			{title: "Days", width: 5, align: lipgloss.Right,
				cell: func(p api.BillingPlan) string { return strconv.Itoa(p.DurationDays) }},
		},
		bulk: map[string]bulkOp{
			"d": {label: "Delete plans", confirm: true, run: func(id int64) error {
				return client.DeleteResource(api.BillingResource, id)
			}},
		},
	}
	return BillingModel{client: client, list: newListModel(src)}
}

func (m BillingModel) Init() tea.Cmd {
	return m.list.Init()
}

func (m BillingModel) Update(msg tea.Msg) (BillingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case createdMsg:
		if m.view == billingViewCreate {
			m.view = billingViewList
			var cmd tea.Cmd
			m.list, cmd = m.list.Reload()
			return m, cmd
		}

	case detailDeletedMsg:
		if m.view == billingViewDetail {
			m.view = billingViewList
			var cmd tea.Cmd
			m.list, cmd = m.list.Reload()
			return m, cmd
		}

	case tea.KeyMsg:
		switch m.view {
		case billingViewList:
			switch {
			case isKey(msg, "n"):
				m.view = billingViewCreate
				m.create = newCreateFlow("New Billing Plan",
					func() (*api.ResourceSchema, error) { return m.client.GetSchema(api.BillingResource) },
					func(draft api.Instance) (api.Instance, error) {
						return m.client.CreateResource(api.BillingResource, draft)
					})
				m.create.setWidth(m.width)
				return m, m.create.Init()
			case isEnter(msg):
				if plan, ok := m.list.CursorRow(); ok {
					m.view = billingViewDetail
					m.detail = m.newPlanDetail(plan.ID)
					m.detail.setWidth(m.width)
					return m, m.detail.Init()
				}
			}

		case billingViewCreate:
			if isBack(msg) && !m.create.saving {
				m.view = billingViewList
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.view {
	case billingViewCreate:
		m.create, cmd = m.create.Update(msg)
	case billingViewDetail:
		m.detail, cmd = m.detail.Update(msg)
		if m.detail.closed {
			m.view = billingViewList
		}
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m BillingModel) newPlanDetail(id int64) detailFlow {
	client := m.client
	return detailFlow{
		client:      client,
		title:       fmt.Sprintf("Billing Plan #%d", id),
		loading:     true,
		schemaFetch: func() (*api.ResourceSchema, error) { return client.GetSchema(api.BillingResource) },
		fetch:       func() (api.Instance, error) { return client.GetResource(api.BillingResource, id) },
		update: func(draft api.Instance) (api.Instance, error) {
			return client.UpdateResource(api.BillingResource, id, draft)
		},
		remove: func() error { return client.DeleteResource(api.BillingResource, id) },
	}
}

func (m BillingModel) textEntryActive() bool {
	switch m.view {
	case billingViewCreate:
		return m.create.textEntryActive()
	case billingViewDetail:
		return m.detail.textEntryActive()
	}
	return false
}

func (m *BillingModel) setSize(width, height int) {
	m.width = width
	m.height = height
	m.list.width = width
	m.list.height = height
	m.create.setWidth(width)
	m.detail.setWidth(width)
}

func (m BillingModel) View() string {
	switch m.view {
	case billingViewCreate:
		return m.create.View()
	case billingViewDetail:
		return m.detail.View()
	default:
		return m.list.View()
	}
}
