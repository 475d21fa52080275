package components

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

var (
	ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)
	oscPattern  = regexp.MustCompile(`\x1b\][^\x07\x1b]*(\x07|\x1b\\)`)
)

var bidiControls = map[rune]struct{}{
	'‪': {},
	'‫': {},
	'‬': {},
	'‭': {},
	'‮': {},
	'⁦': {},
	'⁧': {},
	'⁨': {},
	'⁩': {},
	'‎': {},
	'‏': {},
}

// SanitizeText strips control characters and ANSI escape sequences from display strings.
func SanitizeText(input string) string {
	if input == "" {
		return input
	}
	cleaned := oscPattern.ReplaceAllString(input, "")
	cleaned = ansiPattern.ReplaceAllString(cleaned, "")
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

// SanitizeOneLine sanitizes and collapses all whitespace into single spaces,
// for text rendered inside a single table cell or row.
func SanitizeOneLine(input string) string {
	if input == "" {
		return input
	}
	cleaned := SanitizeText(input)
	return strings.Join(strings.Fields(cleaned), " ")
}

// ClampTextWidthEllipsis truncates like ClampTextWidth but appends an
// ellipsis when the text was cut.
func ClampTextWidthEllipsis(text string, width int) string {
	if width <= 0 {
		return text
	}
	cleaned := SanitizeOneLine(text)
	if lipgloss.Width(cleaned) <= width {
		return cleaned
	}
	if width <= 1 {
		return truncateRunes(cleaned, width)
	}
	return truncateRunes(cleaned, width-1) + "…"
}
