// Package form renders schema-driven create and edit forms. The field
// set is derived entirely from the server's resource schema, so record
// shapes can change server-side without touching this client.
package form

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ordamat/waorder/cli/internal/api"
)

var (
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#3f7a5e")).Bold(true)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#d7dad8"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#96a39b"))
	focusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2fa874")).Bold(true)
	requiredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d1606b"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#e06c75"))
	sectionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2fa874")).Bold(true)
)

// Options tune form construction.
type Options struct {
	// ReadOnly renders values without editors.
	ReadOnly bool
	// LongText names fields that get the multi-line editor even when
	// the schema does not mark them with format "textarea".
	LongText []string
}

type arraySection struct {
	name  string
	prop  *api.Property
	count int
}

// Model is a bubbletea model for one schema-driven form.
type Model struct {
	schema   *api.ResourceSchema
	fields   []*Field
	arrays   map[string]*arraySection
	longText map[string]bool
	focus    int
	readOnly bool
	width    int
}

// New builds a form for the schema, prefilled from initial. Fields not
// present in the schema are ignored entirely: they are neither shown
// nor carried into the submitted value.
func New(schema *api.ResourceSchema, initial api.Instance, opts Options) Model {
	m := Model{
		schema:   schema,
		arrays:   make(map[string]*arraySection),
		longText: make(map[string]bool, len(opts.LongText)),
		readOnly: opts.ReadOnly,
	}
	for _, name := range opts.LongText {
		m.longText[name] = true
	}
	if schema == nil {
		return m
	}

	for _, name := range schema.Order {
		p := schema.Properties[name]
		required := schema.IsRequired(name)
		switch {
		case p.Type == "array" && p.Items != nil && p.Items.Type == "object":
			sec := &arraySection{name: name, prop: p}
			m.arrays[name] = sec
			items, _ := initial[name].([]any)
			for idx, item := range items {
				itemMap, _ := item.(map[string]any)
				m.fields = append(m.fields, m.itemFields(sec, idx, itemMap)...)
				sec.count++
			}
		case p.Type == "object" && len(p.Properties) > 0:
			child, _ := initial[name].(map[string]any)
			for _, childName := range p.Order {
				childProp := p.Properties[childName]
				var iv any
				if child != nil {
					iv = child[childName]
				}
				f := newField([]string{name, childName}, childName, childProp, false, m.longText, iv)
				if f.Group == "" {
					f.Group = p.Group
				}
				m.fields = append(m.fields, f)
			}
		default:
			var iv any
			if initial != nil {
				iv = initial[name]
			}
			m.fields = append(m.fields, newField([]string{name}, name, p, required, m.longText, iv))
		}
	}

	if !m.readOnly && len(m.fields) > 0 {
		m.fields[0].focusEditor()
	}
	return m
}

func (m *Model) itemFields(sec *arraySection, idx int, item map[string]any) []*Field {
	items := sec.prop.Items
	out := make([]*Field, 0, len(items.Order))
	for _, childName := range items.Order {
		childProp := items.Properties[childName]
		var iv any
		if item != nil {
			iv = item[childName]
		}
		f := newField([]string{sec.name, strconv.Itoa(idx), childName}, childName, childProp, false, m.longText, iv)
		if f.Group == "" {
			f.Group = sec.prop.Group
		}
		out = append(out, f)
	}
	return out
}

func (f *Field) focusEditor() tea.Cmd {
	switch f.Kind {
	case KindLongText:
		return f.area.Focus()
	case KindBool, KindEnum:
		return nil
	default:
		return f.input.Focus()
	}
}

func (f *Field) blurEditor() {
	switch f.Kind {
	case KindLongText:
		f.area.Blur()
	case KindBool, KindEnum:
	default:
		f.input.Blur()
	}
}

// Empty reports whether the form has no fields at all. Empty schemas
// are legal; the form simply submits an empty record.
func (m *Model) Empty() bool { return len(m.fields) == 0 }

// Fields exposes the built fields for tests and for parents that need
// to inspect structure.
func (m *Model) Fields() []*Field { return m.fields }

func (m *Model) Focused() *Field {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return nil
	}
	return m.fields[m.focus]
}

// TextEntryActive reports whether keystrokes are currently being
// consumed by an editor, so parents suppress their hotkeys.
func (m *Model) TextEntryActive() bool {
	if m.readOnly {
		return false
	}
	f := m.Focused()
	if f == nil {
		return false
	}
	return f.Kind != KindBool && f.Kind != KindEnum
}

func (m *Model) SetWidth(width int) {
	m.width = width
	inner := width - 8
	if inner < 20 {
		inner = 20
	}
	if inner > 72 {
		inner = 72
	}
	for _, f := range m.fields {
		switch f.Kind {
		case KindLongText:
			f.area.SetWidth(inner)
		case KindBool, KindEnum:
		default:
			f.input.Width = inner
		}
	}
}

func (m Model) moveFocus(delta int) (Model, tea.Cmd) {
	if len(m.fields) == 0 {
		return m, nil
	}
	if f := m.Focused(); f != nil {
		f.blurEditor()
	}
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	return m, m.fields[m.focus].focusEditor()
}

// Update handles editing keys. Parents should only forward messages
// while the form is the active surface.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.readOnly {
		return m, nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return m.updateEditor(msg)
	}

	f := m.Focused()
	key := keyMsg.String()
	switch key {
	case "tab":
		return m.moveFocus(1)
	case "shift+tab":
		return m.moveFocus(-1)
	case "up":
		if f == nil || f.Kind != KindLongText {
			return m.moveFocus(-1)
		}
	case "down":
		if f == nil || f.Kind != KindLongText {
			return m.moveFocus(1)
		}
	case "ctrl+n":
		return m.addArrayItem()
	case "ctrl+d":
		return m.removeArrayItem()
	}

	if f == nil {
		return m, nil
	}
	switch f.Kind {
	case KindBool:
		if key == " " || key == "space" || key == "enter" {
			f.boolVal = !f.boolVal
		}
		return m, nil
	case KindEnum:
		switch key {
		case "left", "h":
			if len(f.Enum) > 0 {
				if f.enumIdx < 0 {
					// unset: leftward entry starts at the last value
					f.enumIdx = len(f.Enum) - 1
				} else {
					f.enumIdx = (f.enumIdx - 1 + len(f.Enum)) % len(f.Enum)
				}
			}
		case "right", "l", " ", "space", "enter":
			if len(f.Enum) > 0 {
				f.enumIdx = (f.enumIdx + 1) % len(f.Enum)
			}
		}
		return m, nil
	}
	return m.updateEditor(msg)
}

func (m Model) updateEditor(msg tea.Msg) (Model, tea.Cmd) {
	f := m.Focused()
	if f == nil {
		return m, nil
	}
	var cmd tea.Cmd
	switch f.Kind {
	case KindLongText:
		f.area, cmd = f.area.Update(msg)
	case KindBool, KindEnum:
	default:
		f.input, cmd = f.input.Update(msg)
	}
	return m, cmd
}

// InsertText types text into the focused editor. Used by the template
// placeholder picker.
func (m *Model) InsertText(s string) {
	f := m.Focused()
	if f == nil {
		return
	}
	switch f.Kind {
	case KindLongText:
		f.area.InsertString(s)
	case KindBool, KindEnum:
	default:
		f.input.SetValue(f.input.Value() + s)
	}
}

// addArrayItem appends a blank item to the array the focus sits in, or
// to the first array section when the focus is elsewhere.
func (m Model) addArrayItem() (Model, tea.Cmd) {
	sec := m.focusedArray()
	if sec == nil {
		for _, name := range m.schema.Order {
			if s, ok := m.arrays[name]; ok {
				sec = s
				break
			}
		}
	}
	if sec == nil {
		return m, nil
	}

	newFields := m.itemFields(sec, sec.count, nil)
	sec.count++

	insertAt := len(m.fields)
	for i := len(m.fields) - 1; i >= 0; i-- {
		if m.fields[i].Path[0] == sec.name {
			insertAt = i + 1
			break
		}
	}
	fields := make([]*Field, 0, len(m.fields)+len(newFields))
	fields = append(fields, m.fields[:insertAt]...)
	fields = append(fields, newFields...)
	fields = append(fields, m.fields[insertAt:]...)
	m.fields = fields

	if f := m.Focused(); f != nil {
		f.blurEditor()
	}
	m.focus = insertAt
	return m, m.fields[m.focus].focusEditor()
}

// removeArrayItem drops the array item containing the focused field
// and renumbers the items after it.
func (m Model) removeArrayItem() (Model, tea.Cmd) {
	sec := m.focusedArray()
	f := m.Focused()
	if sec == nil || f == nil || len(f.Path) < 3 {
		return m, nil
	}
	removeIdx, err := strconv.Atoi(f.Path[1])
	if err != nil {
		return m, nil
	}

	kept := m.fields[:0:0]
	for _, fld := range m.fields {
		if fld.Path[0] == sec.name && len(fld.Path) >= 3 {
			idx, _ := strconv.Atoi(fld.Path[1])
			if idx == removeIdx {
				continue
			}
			if idx > removeIdx {
				fld.Path[1] = strconv.Itoa(idx - 1)
			}
		}
		kept = append(kept, fld)
	}
	m.fields = kept
	sec.count--

	if m.focus >= len(m.fields) {
		m.focus = len(m.fields) - 1
	}
	if m.focus < 0 {
		m.focus = 0
		return m, nil
	}
	return m, m.fields[m.focus].focusEditor()
}

func (m *Model) focusedArray() *arraySection {
	f := m.Focused()
	if f == nil {
		return nil
	}
	return m.arrays[f.Path[0]]
}
