package form

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ordamat/waorder/cli/internal/api"
)

// FieldErrors maps dotted field paths to messages.
type FieldErrors map[string]string

// InvalidError is returned by Value when client-side validation fails.
// No request should be made while the draft is invalid.
type InvalidError struct {
	Fields FieldErrors
}

func (e *InvalidError) Error() string {
	paths := make([]string, 0, len(e.Fields))
	for p := range e.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		parts = append(parts, p+": "+e.Fields[p])
	}
	return strings.Join(parts, "; ")
}

// Value validates the draft and assembles the record to submit. Only
// schema fields ever appear in the result; values the initial record
// carried outside the schema are dropped. Empty optional fields are
// omitted rather than sent as empty strings.
func (m *Model) Value() (api.Instance, error) {
	for _, f := range m.fields {
		f.Err = ""
	}

	invalid := FieldErrors{}
	for _, f := range m.fields {
		_, ok, err := f.rawValue()
		if err != nil {
			f.Err = err.Error()
			invalid[f.DottedPath()] = f.Err
			continue
		}
		if f.Required && !ok {
			f.Err = "required"
			invalid[f.DottedPath()] = f.Err
		}
	}
	if len(invalid) > 0 {
		return nil, &InvalidError{Fields: invalid}
	}

	out := api.Instance{}
	for _, f := range m.fields {
		val, ok, _ := f.rawValue()
		if !ok {
			if len(f.Path) == 1 {
				continue
			}
			// nested children always travel with their item, so the
			// server sees complete objects
			val = ""
			if f.Kind == KindNumber || f.Kind == KindArray {
				continue
			}
		}
		place(out, f.Path, val)
	}

	// arrays the user emptied still submit as empty lists so the
	// server clears them
	for name, sec := range m.arrays {
		if sec.count == 0 {
			place(out, []string{name}, []any{})
		}
	}
	return out, nil
}

func place(out map[string]any, path []string, val any) {
	if len(path) == 1 {
		out[path[0]] = val
		return
	}
	head := path[0]
	if idx, err := strconv.Atoi(path[1]); err == nil {
		arr, _ := out[head].([]any)
		for len(arr) <= idx {
			arr = append(arr, map[string]any{})
		}
		item, _ := arr[idx].(map[string]any)
		if item == nil {
			item = map[string]any{}
			arr[idx] = item
		}
		place(item, path[2:], val)
		out[head] = arr
		return
	}
	obj, _ := out[head].(map[string]any)
	if obj == nil {
		obj = map[string]any{}
		out[head] = obj
	}
	place(obj, path[1:], val)
}

// SetFieldErrors attaches server-side validation messages to their
// fields. Locations arrive as "body.green_api_data.0.phone"; the body
// prefix is noise from the server's request model.
func (m *Model) SetFieldErrors(fields []api.FieldError) {
	for _, fe := range fields {
		loc := strings.TrimPrefix(fe.Location, "body.")
		for _, f := range m.fields {
			if f.DottedPath() == loc || f.Name == loc {
				f.Err = fe.Message
			}
		}
	}
}
