package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeTextStripsANSI(t *testing.T) {
	assert.Equal(t, "hello", SanitizeText("\x1b[31mhello\x1b[0m"))
}

func TestSanitizeTextKeepsNewlinesAndTabs(t *testing.T) {
	assert.Equal(t, "a\n\tb", SanitizeText("a\n\tb"))
}

func TestSanitizeTextStripsControlAndBidi(t *testing.T) {
	assert.Equal(t, "ab", SanitizeText("a\x00‮b"))
}

func TestSanitizeTextStripsEveryBidiControl(t *testing.T) {
	for r := range bidiControls {
		assert.Equal(t, "xy", SanitizeText("x"+string(r)+"y"), "U+%04X should be stripped", r)
	}
}

func TestSanitizeOneLineCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "hello {{name}}, order ready", SanitizeOneLine("hello {{name}},\n\torder   ready"))
	assert.Equal(t, "", SanitizeOneLine(""))
}
