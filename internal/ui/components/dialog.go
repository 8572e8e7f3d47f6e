package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Dialogs share one fixed-width rounded frame so they land in the same
// spot regardless of which flow opened them.
var (
	dialogFrame = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#24392e")).
			Padding(1, 2).
			Width(44)
	dialogTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#2fa874")).
				Bold(true)
	dialogTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96a39b"))
	dialogInputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3f7a5e"))
	dialogPayloadStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#d7dad8"))
)

func dialog(title string, body, hint string) string {
	return dialogFrame.Render(
		dialogTitleStyle.Render(title) + "\n\n" + body + "\n" + dialogTextStyle.Render(hint))
}

// ConfirmDialog renders a yes/no confirmation.
func ConfirmDialog(title, message string) string {
	return dialog(title, dialogTextStyle.Render(message), "y: confirm | n: cancel")
}

// InputDialog renders a one-line text prompt with the typed value so far.
func InputDialog(title, input string) string {
	return dialog(title, dialogInputStyle.Render("> "+input+"█"), "enter: submit | esc: cancel")
}

// InfoDialog renders a result payload, like a WhatsApp pairing code or
// QR string, with a close hint.
func InfoDialog(title string, lines []string) string {
	return dialog(title, dialogPayloadStyle.Render(strings.Join(lines, "\n")), "esc: close")
}
