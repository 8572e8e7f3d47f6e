package ui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ordamat/waorder/cli/internal/api"
	"github.com/ordamat/waorder/cli/internal/ui/components"
	"github.com/ordamat/waorder/cli/internal/ui/form"
)

type detailLoadedMsg struct {
	schema   *api.ResourceSchema
	item     api.Instance
	notFound bool
}

type detailSavedMsg struct{ item api.Instance }
type detailSaveErrMsg struct{ err error }
type detailDeletedMsg struct{}

type sideActionMsg struct {
	idx    int
	taskID string
	result string
	err    error
}

// sideAction is an extra operation on the open record, like binding a
// WhatsApp instance or launching a group send. watch actions return a
// task id that gets polled; the rest return a payload shown in a
// dialog.
type sideAction struct {
	key         string
	label       string
	watch       bool
	run         func() (string, error)
	resultTitle string
	resultHint  string
}

type detailMode int

const (
	detailViewing detailMode = iota
	detailEditing
	detailConfirmDelete
)

// detailFlow drives a single record: read-only view, schema-driven
// edit, two-step delete, and side actions. A nil update or remove
// disables that affordance entirely.
type detailFlow struct {
	client      *api.Client
	title       string
	schemaFetch func() (*api.ResourceSchema, error)
	fetch       func() (api.Instance, error)
	update      func(api.Instance) (api.Instance, error)
	remove      func() error
	actions     []sideAction
	longText    []string

	mode     detailMode
	schema   *api.ResourceSchema
	item     api.Instance
	view     form.Model
	edit     form.Model
	loading  bool
	saving   bool
	notFound bool
	banner   []string

	watcher  *taskWatcher
	watchGen int

	resultTitle string
	resultLines []string

	closed bool
	width  int
}

func (m detailFlow) Init() tea.Cmd {
	schemaFetch, fetch := m.schemaFetch, m.fetch
	return func() tea.Msg {
		schema, err := schemaFetch()
		if err != nil {
			return errMsg{err}
		}
		item, err := fetch()
		if err != nil {
			if api.IsNotFound(err) {
				return detailLoadedMsg{notFound: true}
			}
			return errMsg{err}
		}
		return detailLoadedMsg{schema: schema, item: item}
	}
}

func (m detailFlow) Update(msg tea.Msg) (detailFlow, tea.Cmd) {
	if m.watcher != nil {
		if cmd, handled := m.watcher.Update(msg); handled {
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case detailLoadedMsg:
		m.loading = false
		m.notFound = msg.notFound
		if msg.notFound {
			return m, nil
		}
		m.schema = msg.schema
		m.item = msg.item
		m.view = form.New(m.schema, m.item, form.Options{ReadOnly: true, LongText: m.longText})
		m.view.SetWidth(m.width)
		return m, nil

	case detailSavedMsg:
		m.saving = false
		m.banner = nil
		m.mode = detailViewing
		m.item = m.item.Merge(msg.item)
		m.view = form.New(m.schema, m.item, form.Options{ReadOnly: true, LongText: m.longText})
		m.view.SetWidth(m.width)
		return m, nil

	case detailSaveErrMsg:
		m.saving = false
		var verr *api.ValidationError
		if errors.As(msg.err, &verr) {
			m.edit.SetFieldErrors(verr.Fields)
			m.banner = m.banner[:0]
			for _, f := range verr.Fields {
				m.banner = append(m.banner, f.String())
			}
			return m, nil
		}
		return m, func() tea.Msg { return errMsg{msg.err} }

	case sideActionMsg:
		if msg.err != nil {
			return m, func() tea.Msg { return errMsg{msg.err} }
		}
		action := m.actions[msg.idx]
		if action.watch {
			m.watchGen++
			m.watcher = newTaskWatcher(m.client, msg.taskID, action.label, m.watchGen)
			return m, m.watcher.Init()
		}
		m.resultTitle = action.resultTitle
		m.resultLines = []string{msg.result}
		if action.resultHint != "" {
			m.resultLines = append(m.resultLines, "", action.resultHint)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == detailEditing {
		var cmd tea.Cmd
		m.edit, cmd = m.edit.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m detailFlow) handleKey(msg tea.KeyMsg) (detailFlow, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	if m.resultTitle != "" {
		if isBack(msg) || isEnter(msg) {
			m.resultTitle = ""
			m.resultLines = nil
		}
		return m, nil
	}

	if m.watcher != nil {
		switch {
		case isKey(msg, "x"):
			return m, m.watcher.StopCmd()
		case isBack(msg):
			// abandoning the watcher; its generation dies with it
			m.watcher = nil
		}
		return m, nil
	}

	if m.notFound {
		if isBack(msg) {
			m.closed = true
		}
		return m, nil
	}

	switch m.mode {
	case detailConfirmDelete:
		switch {
		case isKey(msg, "y"):
			m.mode = detailViewing
			remove := m.remove
			return m, func() tea.Msg {
				if err := remove(); err != nil && !api.IsNotFound(err) {
					return errMsg{err}
				}
				return detailDeletedMsg{}
			}
		case isKey(msg, "n"), isBack(msg):
			m.mode = detailViewing
		}
		return m, nil

	case detailEditing:
		if isBack(msg) {
			// discard the draft entirely
			m.mode = detailViewing
			m.banner = nil
			return m, nil
		}
		if isKey(msg, "ctrl+s") && !m.saving {
			return m.save()
		}
		var cmd tea.Cmd
		m.edit, cmd = m.edit.Update(msg)
		return m, cmd

	default: // viewing
		switch {
		case isBack(msg):
			m.closed = true
			return m, nil
		case isKey(msg, "e") && m.update != nil:
			m.mode = detailEditing
			m.banner = nil
			m.edit = form.New(m.schema, m.item, form.Options{LongText: m.longText})
			m.edit.SetWidth(m.width)
			return m, nil
		case isKey(msg, "d") && m.remove != nil:
			m.mode = detailConfirmDelete
			return m, nil
		}
		for i, action := range m.actions {
			if isKey(msg, action.key) {
				idx, run := i, action.run
				return m, func() tea.Msg {
					out, err := run()
					if err != nil {
						return sideActionMsg{idx: idx, err: err}
					}
					if m.actions[idx].watch {
						return sideActionMsg{idx: idx, taskID: out}
					}
					return sideActionMsg{idx: idx, result: out}
				}
			}
		}
		return m, nil
	}
}

func (m detailFlow) save() (detailFlow, tea.Cmd) {
	draft, err := m.edit.Value()
	if err != nil {
		m.banner = []string{"Fix the highlighted fields."}
		return m, nil
	}
	m.banner = nil
	m.saving = true
	update := m.update
	return m, func() tea.Msg {
		saved, err := update(draft)
		if err != nil {
			return detailSaveErrMsg{err: err}
		}
		return detailSavedMsg{item: saved}
	}
}

func (m detailFlow) textEntryActive() bool {
	return m.mode == detailEditing && m.edit.TextEntryActive()
}

// idleViewing reports whether the plain record view has focus, with no
// overlay, watcher, draft, or pending load in the way. Parents use it
// to decide when their own shortcut keys may fire.
func (m detailFlow) idleViewing() bool {
	return !m.loading && !m.notFound && m.mode == detailViewing &&
		m.watcher == nil && m.resultTitle == ""
}

func (m *detailFlow) insertText(s string) {
	if m.mode == detailEditing {
		m.edit.InsertText(s)
	}
}

func (m *detailFlow) setWidth(width int) {
	m.width = width
	m.view.SetWidth(width)
	m.edit.SetWidth(width)
}

func (m detailFlow) View() string {
	if m.loading {
		return components.Box(MutedStyle.Render("Loading..."), m.width)
	}
	if m.notFound {
		return components.TitledBox(m.title,
			MutedStyle.Render("Record not found. It may have been deleted.\n\nesc: back"), m.width)
	}
	if m.resultTitle != "" {
		return components.InfoDialog(m.resultTitle, m.resultLines)
	}
	if m.watcher != nil {
		return m.watcher.View(m.width)
	}

	switch m.mode {
	case detailConfirmDelete:
		return components.ConfirmDialog("Delete record", "This cannot be undone.")

	case detailEditing:
		var b strings.Builder
		for _, line := range m.banner {
			b.WriteString(ErrorStyle.Render("✗ "+line) + "\n")
		}
		if len(m.banner) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.edit.View())
		b.WriteString("\n\n")
		if m.saving {
			b.WriteString(MutedStyle.Render("Saving..."))
		} else {
			b.WriteString(MutedStyle.Render("ctrl+s: save · esc: discard"))
		}
		return components.TitledBox(m.title+" — edit", b.String(), m.width)

	default:
		var b strings.Builder
		b.WriteString(m.view.View())
		b.WriteString("\n\n")
		hints := make([]string, 0, 4)
		if m.update != nil {
			hints = append(hints, "e: edit")
		}
		if m.remove != nil {
			hints = append(hints, "d: delete")
		}
		for _, a := range m.actions {
			hints = append(hints, a.key+": "+a.label)
		}
		hints = append(hints, "esc: back")
		b.WriteString(MutedStyle.Render(strings.Join(hints, " · ")))
		return components.TitledBox(m.title, b.String(), m.width)
	}
}
