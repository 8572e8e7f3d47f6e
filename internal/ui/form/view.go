package form

import (
	"fmt"
	"strconv"
	"strings"
)

// View renders the form grouped by the schema's group labels: the
// default (unlabeled) group first, then named groups in first
// appearance order.
func (m Model) View() string {
	if len(m.fields) == 0 {
		return mutedStyle.Render("No fields.")
	}

	order, grouped := m.groupFields()
	sections := make([]string, 0, len(order))
	for _, group := range order {
		var b strings.Builder
		if group != "" {
			b.WriteString(sectionStyle.Render("── "+group+" ──") + "\n")
		}
		lastArray, lastItem := "", ""
		for _, f := range grouped[group] {
			if sec, ok := m.arrays[f.Path[0]]; ok && len(f.Path) >= 3 {
				if f.Path[0] != lastArray {
					b.WriteString(m.renderArrayHeader(sec))
					lastItem = ""
				}
				if f.Path[1] != lastItem {
					idx, _ := strconv.Atoi(f.Path[1])
					b.WriteString(mutedStyle.Render(fmt.Sprintf("  #%d", idx+1)) + "\n")
				}
				lastArray, lastItem = f.Path[0], f.Path[1]
			}
			b.WriteString(m.renderField(f))
		}
		for _, name := range m.schema.Order {
			sec, ok := m.arrays[name]
			if ok && sec.count == 0 && m.arrayGroup(sec) == group {
				b.WriteString(m.renderArrayHeader(sec))
				b.WriteString(mutedStyle.Render("  (none)") + "\n")
			}
		}
		sections = append(sections, strings.TrimRight(b.String(), "\n"))
	}
	return strings.Join(sections, "\n\n")
}

func (m Model) groupFields() ([]string, map[string][]*Field) {
	grouped := make(map[string][]*Field)
	order := []string{""}
	seen := map[string]bool{"": true}
	for _, f := range m.fields {
		if !seen[f.Group] {
			seen[f.Group] = true
			order = append(order, f.Group)
		}
		grouped[f.Group] = append(grouped[f.Group], f)
	}
	// empty arrays contribute their group even without fields
	for _, name := range m.schema.Order {
		if sec, ok := m.arrays[name]; ok && sec.count == 0 {
			g := m.arrayGroup(sec)
			if !seen[g] {
				seen[g] = true
				order = append(order, g)
			}
		}
	}
	if len(grouped[""]) == 0 && !m.hasEmptyArrayInGroup("") {
		order = order[1:]
	}
	return order, grouped
}

func (m Model) hasEmptyArrayInGroup(group string) bool {
	for _, sec := range m.arrays {
		if sec.count == 0 && m.arrayGroup(sec) == group {
			return true
		}
	}
	return false
}

func (m Model) arrayGroup(sec *arraySection) string {
	return sec.prop.Group
}

func (m Model) renderArrayHeader(sec *arraySection) string {
	title := sec.prop.Title
	if title == "" {
		title = sec.name
	}
	hint := ""
	if !m.readOnly {
		hint = mutedStyle.Render("  ctrl+n add · ctrl+d remove")
	}
	return labelStyle.Render(title) + hint + "\n"
}

func (m Model) renderField(f *Field) string {
	indent := ""
	if len(f.Path) > 1 {
		indent = "  "
	}

	label := f.Label
	if f.Required {
		label += requiredStyle.Render(" *")
	}

	marker := "  "
	focused := !m.readOnly && m.Focused() == f
	if focused {
		marker = focusStyle.Render("▸ ")
	}

	if m.readOnly {
		line := indent + "  " + labelStyle.Render(label+":") + " " + valueStyle.Render(f.displayValue())
		return line + "\n"
	}

	var editor string
	switch f.Kind {
	case KindBool:
		box := "[ ]"
		if f.boolVal {
			box = "[x]"
		}
		if focused {
			editor = focusStyle.Render(box)
		} else {
			editor = valueStyle.Render(box)
		}
	case KindEnum:
		val := f.displayValue()
		if val == "" {
			val = "—"
		}
		arrow := fmt.Sprintf("‹ %s ›", val)
		if focused {
			editor = focusStyle.Render(arrow)
		} else {
			editor = valueStyle.Render(arrow)
		}
	case KindLongText:
		editor = "\n" + f.area.View()
	default:
		editor = f.input.View()
	}

	line := indent + marker + labelStyle.Render(label+":") + " " + editor
	out := line + "\n"
	if f.Err != "" {
		out += indent + "    " + errStyle.Render("✗ "+f.Err) + "\n"
	}
	return out
}
