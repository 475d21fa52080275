package ui

import "github.com/charmbracelet/lipgloss"

// --- Theme Colors ---

var (
	ColorPrimary    = lipgloss.Color("#4f9cc8") // steel blue
	ColorSecondary  = lipgloss.Color("#3f7059") // green
	ColorAccent     = lipgloss.Color("#d99a3d") // amber
	ColorBackground = lipgloss.Color("#14181c") // dark
	ColorText       = lipgloss.Color("#d8dadc") // main text
	ColorMuted      = lipgloss.Color("#969bab") // muted text
	ColorSuccess    = lipgloss.Color("#4f9e6b") // green
	ColorError      = lipgloss.Color("#c25450") // red
	ColorWarning    = lipgloss.Color("#d99a3d") // warning
	ColorBorder     = lipgloss.Color("#2c333a") // border
)

// --- Reusable Styles ---

var (
	BannerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(ColorBackground).
			Background(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true).
			PaddingBottom(1)

	FieldErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)
)
