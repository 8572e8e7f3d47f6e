package components

import (
	"regexp"
	"strings"
	"unicode"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

var bidiControls = map[rune]struct{}{
	'‪': {}, // LRE
	'‫': {}, // RLE
	'‬': {}, // PDF
	'‭': {}, // LRO
	'‮': {}, // RLO
	'⁦': {}, // LRI
	'⁧': {}, // RLI
	'⁨': {}, // FSI
	'⁩': {}, // PDI
	'‎': {}, // LRM
	'‏': {}, // RLM
}

// SanitizeText strips control characters and ANSI escape sequences from
// display strings. Record fields come straight from marketplace data
// and customer input, so they are never trusted to be terminal-safe.
func SanitizeText(input string) string {
	if input == "" {
		return input
	}
	cleaned := ansiPattern.ReplaceAllString(input, "")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if _, ok := bidiControls[r]; ok {
			return -1
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, cleaned)
}

// SanitizeOneLine is SanitizeText for single-line contexts: newlines
// and tabs collapse to spaces.
func SanitizeOneLine(input string) string {
	cleaned := SanitizeText(input)
	if cleaned == "" {
		return cleaned
	}
	cleaned = strings.NewReplacer("\n", " ", "\t", " ").Replace(cleaned)
	return strings.Join(strings.Fields(cleaned), " ")
}
