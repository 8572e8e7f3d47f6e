package components

// Picker is a cursor over a fixed set of choices. Pickers hold a
// handful of entries and always show all of them, so there is no
// paging; the cursor wraps at either end instead.
type Picker struct {
	items  []string
	cursor int
}

func NewPicker(items []string) *Picker {
	return &Picker{items: items}
}

// Items returns every choice in display order.
func (p *Picker) Items() []string { return p.items }

// Cursor returns the index of the highlighted choice.
func (p *Picker) Cursor() int { return p.cursor }

// Choice returns the highlighted choice, or "" when the picker is empty.
func (p *Picker) Choice() string {
	if len(p.items) == 0 {
		return ""
	}
	return p.items[p.cursor]
}

// Next moves the highlight down, wrapping past the last choice.
func (p *Picker) Next() {
	if len(p.items) > 0 {
		p.cursor = (p.cursor + 1) % len(p.items)
	}
}

// Prev moves the highlight up, wrapping past the first choice.
func (p *Picker) Prev() {
	if len(p.items) > 0 {
		p.cursor = (p.cursor + len(p.items) - 1) % len(p.items)
	}
}
