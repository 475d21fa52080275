package ui

import "strings"

// formField is a single editable text field in a form.
type formField struct {
	label string
	value string
}

// formMode distinguishes create from edit flows.
type formMode int

const (
	formModeCreate formMode = iota
	formModeEdit
)

func (m formMode) String() string {
	if m == formModeEdit {
		return "edit"
	}
	return "create"
}

// optionIndex returns the index of value in options and whether it was
// found. Matching is case-insensitive.
func optionIndex(options []string, value string) (int, bool) {
	for i, opt := range options {
		if strings.EqualFold(opt, value) {
			return i, true
		}
	}
	return 0, false
}

func dropLastRune(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return string(runes[:len(runes)-1])
}
