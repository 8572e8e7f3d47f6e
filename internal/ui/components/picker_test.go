package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickerCursorWraps(t *testing.T) {
	p := NewPicker([]string{"a", "b", "c"})

	assert.Equal(t, "a", p.Choice())
	p.Prev()
	assert.Equal(t, "c", p.Choice())
	p.Next()
	assert.Equal(t, "a", p.Choice())
	p.Next()
	p.Next()
	assert.Equal(t, 2, p.Cursor())
}

func TestPickerEmptyIsInert(t *testing.T) {
	p := NewPicker(nil)

	p.Next()
	p.Prev()
	assert.Equal(t, "", p.Choice())
	assert.Equal(t, 0, p.Cursor())
}
