package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalSize selects how much of the terminal a modal occupies.
type ModalSize int

const (
	ModalSmall ModalSize = iota
	ModalMedium
	ModalLarge
)

// Modal renders a titled overlay panel. The screens draw it instead of their
// list content while a form or confirmation is open.
type Modal struct {
	Title     string
	Footer    string
	ShowClose bool
	Size      ModalSize
}

var modalFooterStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#969bab"))

var modalCloseStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#969bab"))

func (m Modal) width(termWidth int) int {
	if termWidth <= 0 {
		return 48
	}
	var pct int
	switch m.Size {
	case ModalSmall:
		pct = 40
	case ModalLarge:
		pct = 85
	default:
		pct = 60
	}
	w := termWidth * pct / 100
	if w < 36 {
		w = 36
	}
	// The border adds two columns around the styled width.
	if max := termWidth - 2; w > max && max > 0 {
		w = max
	}
	return w
}

// Render draws the modal around content at the given terminal width.
func (m Modal) Render(content string, termWidth int) string {
	w := m.width(termWidth)

	var b strings.Builder
	if m.ShowClose {
		closeHint := modalCloseStyle.Render("esc to close")
		pad := w - 6 - lipgloss.Width(closeHint)
		if pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(closeHint)
		b.WriteString("\n")
	}
	b.WriteString(content)
	if m.Footer != "" {
		b.WriteString("\n\n")
		b.WriteString(modalFooterStyle.Render(m.Footer))
	}

	boxStyle := boxBorderActive.Width(w)
	if m.Title == "" {
		return boxStyle.Render(b.String())
	}
	boxed := boxStyle.Render(b.String())
	return retitle(boxed, m.Title, lipgloss.Color("#4f9cc8"))
}

// retitle replaces the top border line of an already-boxed string with a
// centered title, reusing the TitledBox layout rules.
func retitle(boxed, title string, borderColor lipgloss.Color) string {
	lines := strings.Split(boxed, "\n")
	if len(lines) == 0 {
		return boxed
	}
	lineWidth := lipgloss.Width(lines[0])
	if lineWidth < 4 {
		return boxed
	}

	border := lipgloss.RoundedBorder()
	middleLen := lineWidth - 2
	titleText := " [ " + title + " ] "
	if lipgloss.Width(titleText) > middleLen {
		titleText = truncateRunes(titleText, middleLen)
	}

	titleWidth := lipgloss.Width(titleText)
	left := (middleLen - titleWidth) / 2
	if left < 0 {
		left = 0
	}
	right := middleLen - titleWidth - left
	if right < 0 {
		right = 0
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	leftSeg := borderStyle.Render(border.TopLeft + strings.Repeat(border.Top, left))
	rightSeg := borderStyle.Render(strings.Repeat(border.Top, right) + border.TopRight)
	line := leftSeg + boxHeaderStyle.Render(titleText) + rightSeg
	if w := lipgloss.Width(line); w < lineWidth {
		line += borderStyle.Render(strings.Repeat(border.Top, lineWidth-w))
	} else if w > lineWidth {
		line = truncateRunes(line, lineWidth)
	}

	lines[0] = line
	return strings.Join(lines, "\n")
}
