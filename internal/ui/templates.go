package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ordamat/waorder/cli/internal/api"
	"github.com/ordamat/waorder/cli/internal/ui/components"
)

// placeholders the message renderer substitutes per order. Shown in
// the ctrl+p picker while a template body is being edited.
var templatePlaceholders = []string{
	"{{name}}",
	"{{code}}",
	"{{status}}",
	"{{phone}}",
	"{{city}}",
	"{{total_price}}",
	"{{delivery_date}}",
	"{{review_link}}",
}

type templatesView int

const (
	templatesViewList templatesView = iota
	templatesViewCreate
	templatesViewDetail
)

// TemplatesModel manages a client's message templates and the periodic
// notification, both created through nested routes under the client.
type TemplatesModel struct {
	client *api.Client
	userID int64
	view   templatesView
	list   ListModel[api.Template]
	create createFlow
	detail detailFlow

	picker *components.Picker

	width  int
	height int
}

func NewTemplatesModel(client *api.Client, userID int64, userLabel string) TemplatesModel {
	src := listSource[api.Template]{
		title: fmt.Sprintf("Templates — %s", userLabel),
		fetch: func(skip, limit int) ([]api.Template, error) {
			return client.ListTemplates(userID, skip, limit)
		},
		id: func(t api.Template) int64 { return t.ID },
		columns: []listColumn[api.Template]{
			{title: "ID", width: 6, cell: func(t api.Template) string { return strconv.FormatInt(t.ID, 10) },
				compare: func(a, b api.Template) int { return int(a.ID - b.ID) }},
			{title: "Trigger", width: 20, cell: func(t api.Template) string { return t.StateStatus },
				compare: func(a, b api.Template) int { return strings.Compare(a.StateStatus, b.StateStatus) }},
			{title: "Template", width: 46, cell: func(t api.Template) string {
				return components.SanitizeOneLine(t.Template)
			}},
		},
		bulk: map[string]bulkOp{
			"d": {label: "Delete templates", confirm: true, run: func(id int64) error {
				return client.DeleteResource("templates", id)
			}},
		},
	}
	return TemplatesModel{client: client, userID: userID, list: newListModel(src)}
}

func (m TemplatesModel) Init() tea.Cmd {
	return m.list.Init()
}

func (m TemplatesModel) Update(msg tea.Msg) (TemplatesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case createdMsg:
		if m.view == templatesViewCreate {
			m.view = templatesViewList
			m.picker = nil
			var cmd tea.Cmd
			m.list, cmd = m.list.Reload()
			return m, cmd
		}

	case detailDeletedMsg:
		if m.view == templatesViewDetail {
			m.view = templatesViewList
			m.picker = nil
			var cmd tea.Cmd
			m.list, cmd = m.list.Reload()
			return m, cmd
		}

	case tea.KeyMsg:
		if m.picker != nil {
			return m.updatePicker(msg)
		}
		switch m.view {
		case templatesViewList:
			switch {
			case isKey(msg, "n"):
				m.view = templatesViewCreate
				m.create = m.newTemplateCreate()
				m.create.setWidth(m.width)
				return m, m.create.Init()
			case isKey(msg, "N"):
				m.view = templatesViewCreate
				m.create = m.newPeriodCreate()
				m.create.setWidth(m.width)
				return m, m.create.Init()
			case isEnter(msg):
				if tpl, ok := m.list.CursorRow(); ok {
					m.view = templatesViewDetail
					m.detail = m.newTemplateDetail(tpl.ID)
					m.detail.setWidth(m.width)
					return m, m.detail.Init()
				}
			}

		case templatesViewCreate:
			if isKey(msg, "ctrl+p") && !m.create.loading {
				m.openPicker()
				return m, nil
			}
			if isBack(msg) && !m.create.saving {
				m.view = templatesViewList
				return m, nil
			}

		case templatesViewDetail:
			if isKey(msg, "ctrl+p") && m.detail.mode == detailEditing {
				m.openPicker()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.view {
	case templatesViewCreate:
		m.create, cmd = m.create.Update(msg)
	case templatesViewDetail:
		m.detail, cmd = m.detail.Update(msg)
		if m.detail.closed {
			m.view = templatesViewList
		}
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m *TemplatesModel) openPicker() {
	m.picker = components.NewPicker(templatePlaceholders)
}

func (m TemplatesModel) updatePicker(msg tea.KeyMsg) (TemplatesModel, tea.Cmd) {
	switch {
	case isBack(msg):
		m.picker = nil
	case isUp(msg):
		m.picker.Prev()
	case isDown(msg):
		m.picker.Next()
	case isEnter(msg):
		text := m.picker.Choice()
		m.picker = nil
		if m.view == templatesViewCreate {
			m.create.insertText(text)
		} else {
			m.detail.insertText(text)
		}
	}
	return m, nil
}

func (m TemplatesModel) newTemplateCreate() createFlow {
	client, userID := m.client, m.userID
	return newCreateFlow("New Template",
		func() (*api.ResourceSchema, error) { return client.GetSchema("templates") },
		func(draft api.Instance) (api.Instance, error) {
			return client.CreateTemplate(userID, draft)
		},
		"template")
}

func (m TemplatesModel) newPeriodCreate() createFlow {
	client, userID := m.client, m.userID
	return newCreateFlow("New Periodic Notification",
		func() (*api.ResourceSchema, error) { return client.GetSchema("period_notification") },
		func(draft api.Instance) (api.Instance, error) {
			return client.CreatePeriodNotification(userID, draft)
		},
		"template")
}

func (m TemplatesModel) newTemplateDetail(id int64) detailFlow {
	client := m.client
	return detailFlow{
		client:      client,
		title:       fmt.Sprintf("Template #%d", id),
		loading:     true,
		longText:    []string{"template"},
		schemaFetch: func() (*api.ResourceSchema, error) { return client.GetSchema("templates") },
		fetch:       func() (api.Instance, error) { return client.GetResource("templates", id) },
		update: func(draft api.Instance) (api.Instance, error) {
			return client.UpdateResource("templates", id, draft)
		},
		remove: func() error { return client.DeleteResource("templates", id) },
	}
}

func (m TemplatesModel) textEntryActive() bool {
	if m.picker != nil {
		return false
	}
	switch m.view {
	case templatesViewCreate:
		return m.create.textEntryActive()
	case templatesViewDetail:
		return m.detail.textEntryActive()
	}
	return false
}

func (m *TemplatesModel) setSize(width, height int) {
	m.width = width
	m.height = height
	m.list.width = width
	m.list.height = height
	m.create.setWidth(width)
	m.detail.setWidth(width)
}

func (m TemplatesModel) View() string {
	if m.picker != nil {
		var b strings.Builder
		for i, item := range m.picker.Items() {
			if i == m.picker.Cursor() {
				b.WriteString(SelectedStyle.Render("▸ "+item) + "\n")
			} else {
				b.WriteString(NormalStyle.Render("  "+item) + "\n")
			}
		}
		b.WriteString("\n" + MutedStyle.Render("enter: insert · esc: cancel"))
		return components.TitledBox("Insert Placeholder", b.String(), m.width)
	}
	switch m.view {
	case templatesViewCreate:
		return m.create.View()
	case templatesViewDetail:
		return m.detail.View()
	default:
		return m.list.View()
	}
}
