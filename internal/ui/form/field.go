package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/ordamat/waorder/cli/internal/api"
)

// Kind is the closed set of editors a schema property can map to.
// Every property type the backend emits lands on exactly one of these;
// anything unrecognized degrades to a plain text field rather than
// breaking the form.
type Kind int

const (
	KindText Kind = iota
	KindLongText
	KindNumber
	KindBool
	KindEnum
	KindArray // scalar items, entered comma-separated
)

func kindOf(name string, p *api.Property, longText map[string]bool) Kind {
	switch p.Type {
	case "boolean":
		return KindBool
	case "integer", "number":
		return KindNumber
	case "array":
		return KindArray
	default:
		if len(p.Enum) > 0 {
			return KindEnum
		}
		if p.Format == "textarea" || longText[name] {
			return KindLongText
		}
		return KindText
	}
}

// Field is one editable input. Nested object and array-of-object
// properties are flattened into fields with multi-segment paths, e.g.
// ["green_api_data", "0", "phone"].
type Field struct {
	Path     []string
	Name     string
	Label    string
	Group    string
	Kind     Kind
	Required bool
	Enum     []string
	Err      string

	input   textinput.Model
	area    textarea.Model
	boolVal bool
	enumIdx int
}

// DottedPath renders the field path as "green_api_data.0.phone".
func (f *Field) DottedPath() string {
	return strings.Join(f.Path, ".")
}

func newField(path []string, name string, p *api.Property, required bool, longText map[string]bool, initial any) *Field {
	f := &Field{
		Path:     path,
		Name:     name,
		Label:    p.Title,
		Group:    p.Group,
		Kind:     kindOf(name, p, longText),
		Required: required,
		Enum:     p.EnumStrings(),
	}
	if f.Label == "" {
		f.Label = name
	}
	if initial == nil {
		initial = p.Default
	}

	switch f.Kind {
	case KindBool:
		f.boolVal, _ = initial.(bool)
	case KindEnum:
		f.enumIdx = -1
		if initial != nil {
			want := fmt.Sprint(initial)
			for i, v := range f.Enum {
				if v == want {
					f.enumIdx = i
					break
				}
			}
		}
	case KindLongText:
		ta := textarea.New()
		ta.ShowLineNumbers = false
		ta.SetHeight(5)
		ta.CharLimit = 0
		if s, ok := initial.(string); ok {
			ta.SetValue(s)
		}
		f.area = ta
	default:
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 40
		ti.SetValue(renderInitial(f.Kind, initial))
		f.input = ti
	}
	return f
}

func renderInitial(kind Kind, initial any) string {
	if initial == nil {
		return ""
	}
	switch kind {
	case KindNumber:
		if fl, ok := initial.(float64); ok {
			if fl == float64(int64(fl)) {
				return strconv.FormatInt(int64(fl), 10)
			}
			return strconv.FormatFloat(fl, 'f', -1, 64)
		}
	case KindArray:
		if items, ok := initial.([]any); ok {
			parts := make([]string, 0, len(items))
			for _, it := range items {
				parts = append(parts, fmt.Sprint(it))
			}
			return strings.Join(parts, ", ")
		}
	}
	return fmt.Sprint(initial)
}

// displayValue renders the field's current value for read-only views.
func (f *Field) displayValue() string {
	switch f.Kind {
	case KindBool:
		if f.boolVal {
			return "yes"
		}
		return "no"
	case KindEnum:
		if f.enumIdx >= 0 && f.enumIdx < len(f.Enum) {
			return f.Enum[f.enumIdx]
		}
		return ""
	case KindLongText:
		return f.area.Value()
	default:
		return f.input.Value()
	}
}

// rawValue parses the field into the value submitted to the server.
// The bool return is false when an empty optional field should be
// omitted from the payload.
func (f *Field) rawValue() (any, bool, error) {
	switch f.Kind {
	case KindBool:
		return f.boolVal, true, nil
	case KindEnum:
		if f.enumIdx < 0 || f.enumIdx >= len(f.Enum) {
			return nil, false, nil
		}
		return f.Enum[f.enumIdx], true, nil
	case KindNumber:
		text := strings.TrimSpace(f.input.Value())
		if text == "" {
			return nil, false, nil
		}
		n, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, false, fmt.Errorf("must be a number")
		}
		return n, true, nil
	case KindArray:
		var items []any
		for _, part := range strings.Split(f.input.Value(), ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				items = append(items, part)
			}
		}
		if items == nil {
			return nil, false, nil
		}
		return items, true, nil
	case KindLongText:
		text := f.area.Value()
		if text == "" {
			return nil, false, nil
		}
		return text, true, nil
	default:
		text := f.input.Value()
		if text == "" {
			return nil, false, nil
		}
		return text, true, nil
	}
}
