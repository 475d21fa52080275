package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestModalRendersTitleContentAndFooter(t *testing.T) {
	m := Modal{Title: "Add Asset", Footer: "enter: save | esc: cancel"}
	out := m.Render("form body", 100)
	clean := SanitizeText(out)

	assert.Contains(t, clean, "Add Asset")
	assert.Contains(t, clean, "form body")
	assert.Contains(t, clean, "enter: save | esc: cancel")
}

func TestModalShowCloseAddsHint(t *testing.T) {
	m := Modal{Title: "Details", ShowClose: true}
	out := m.Render("body", 100)
	clean := SanitizeText(out)

	assert.Contains(t, clean, "esc to close")
}

func TestModalSizesWiden(t *testing.T) {
	content := "x"
	small := Modal{Size: ModalSmall}.Render(content, 120)
	medium := Modal{Size: ModalMedium}.Render(content, 120)
	large := Modal{Size: ModalLarge}.Render(content, 120)

	widthOf := func(s string) int {
		return lipgloss.Width(strings.Split(s, "\n")[0])
	}
	assert.Less(t, widthOf(small), widthOf(medium))
	assert.Less(t, widthOf(medium), widthOf(large))
}

func TestModalNeverExceedsTerminalWidth(t *testing.T) {
	m := Modal{Title: "Tight", Size: ModalLarge}
	out := m.Render("body", 38)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 38)
	}
}
