package ui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ordamat/waorder/cli/internal/api"
	"github.com/ordamat/waorder/cli/internal/ui/components"
	"github.com/ordamat/waorder/cli/internal/ui/form"
)

type createSchemaMsg struct{ schema *api.ResourceSchema }
type createdMsg struct{ item api.Instance }
type createErrMsg struct{ err error }

// createFlow drives a schema-fetched create form: fetch schema, edit
// draft, submit, then the parent navigates away on createdMsg.
type createFlow struct {
	title       string
	schemaFetch func() (*api.ResourceSchema, error)
	create      func(api.Instance) (api.Instance, error)
	longText    []string

	schema  *api.ResourceSchema
	form    form.Model
	loading bool
	saving  bool
	banner  []string
	width   int
}

func newCreateFlow(
	title string,
	schemaFetch func() (*api.ResourceSchema, error),
	create func(api.Instance) (api.Instance, error),
	longText ...string,
) createFlow {
	return createFlow{
		title:       title,
		schemaFetch: schemaFetch,
		create:      create,
		longText:    longText,
		loading:     true,
	}
}

func (m createFlow) Init() tea.Cmd {
	fetch := m.schemaFetch
	return func() tea.Msg {
		schema, err := fetch()
		if err != nil {
			return errMsg{err}
		}
		return createSchemaMsg{schema: schema}
	}
}

func (m createFlow) Update(msg tea.Msg) (createFlow, tea.Cmd) {
	switch msg := msg.(type) {
	case createSchemaMsg:
		m.loading = false
		m.schema = msg.schema
		m.form = form.New(msg.schema, api.Instance{}, form.Options{LongText: m.longText})
		m.form.SetWidth(m.width)
		return m, nil

	case createErrMsg:
		m.saving = false
		var verr *api.ValidationError
		if errors.As(msg.err, &verr) {
			m.form.SetFieldErrors(verr.Fields)
			m.banner = m.banner[:0]
			for _, f := range verr.Fields {
				m.banner = append(m.banner, f.String())
			}
			return m, nil
		}
		return m, func() tea.Msg { return errMsg{msg.err} }

	case tea.KeyMsg:
		if m.loading || m.saving {
			return m, nil
		}
		if isKey(msg, "ctrl+s") {
			return m.submit()
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m createFlow) submit() (createFlow, tea.Cmd) {
	draft, err := m.form.Value()
	if err != nil {
		m.banner = []string{"Fix the highlighted fields."}
		return m, nil
	}
	m.banner = nil
	m.saving = true
	create := m.create
	return m, func() tea.Msg {
		item, err := create(draft)
		if err != nil {
			return createErrMsg{err: err}
		}
		return createdMsg{item: item}
	}
}

func (m *createFlow) insertText(s string) {
	if !m.loading {
		m.form.InsertText(s)
	}
}

// textEntryActive reports whether the form eats plain keystrokes.
func (m createFlow) textEntryActive() bool {
	return !m.loading && m.form.TextEntryActive()
}

func (m *createFlow) setWidth(width int) {
	m.width = width
	m.form.SetWidth(width)
}

func (m createFlow) View() string {
	if m.loading {
		return components.Box(MutedStyle.Render("Loading schema..."), m.width)
	}

	var b strings.Builder
	if len(m.banner) > 0 {
		for _, line := range m.banner {
			b.WriteString(ErrorStyle.Render("✗ " + line) + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(m.form.View())
	b.WriteString("\n\n")
	if m.saving {
		b.WriteString(MutedStyle.Render("Saving..."))
	} else {
		b.WriteString(MutedStyle.Render("ctrl+s: save · tab: next field · esc: cancel"))
	}
	return components.TitledBox(m.title, b.String(), m.width)
}
