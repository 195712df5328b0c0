package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// renderModalFrame centers a titled, bordered modal around body.
func renderModalFrame(title, body, status string, width, height int) string {
	modalWidth := max(30, width-8)
	contentWidth := modalWidth - 4

	header := lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(ColorBlue).
		Bold(true).
		Render(title)

	modal := lipgloss.JoinVertical(lipgloss.Left, header, body, helpStyle.Render(status))

	framed := lipgloss.NewStyle().
		Width(modalWidth).
		MaxHeight(max(5, height-2)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Padding(0, 1).
		Render(modal)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, framed)
}

// renderScrollModal renders content in a scrollable viewport.
func renderScrollModal(vp *viewport.Model, title, content string, width, height int) string {
	contentWidth := max(20, width-16)
	contentHeight := max(3, height-10)

	vp.Width = contentWidth
	vp.Height = contentHeight
	vp.SetContent(content)

	pane := lipgloss.NewStyle().
		Width(contentWidth).
		Height(contentHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Render(vp.View())

	return renderModalFrame(title, pane, renderModalStatusBar(), width, height)
}

// renderModalStatusBar renders the status bar for scrollable modals.
func renderModalStatusBar() string {
	return strings.Join([]string{"up/down/Wheel: Scroll", "PgUp/PgDn: Page", "ESC: Close"}, " | ")
}

// scrollViewport applies the shared scroll keys. It reports whether the
// modal should close.
func scrollViewport(vp *viewport.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			vp.ScrollUp(1)
			return false, nil
		case "down", "j":
			vp.ScrollDown(1)
			return false, nil
		case "pgup":
			vp.HalfPageUp()
			return false, nil
		case "pgdown":
			vp.HalfPageDown()
			return false, nil
		case "esc", "q":
			return true, nil
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				vp.ScrollUp(1)
			case tea.MouseButtonWheelDown:
				vp.ScrollDown(1)
			}
		}
		return false, nil
	}
	var cmd tea.Cmd
	*vp, cmd = vp.Update(msg)
	return false, cmd
}

// formError renders an inline validation message for form modals.
func formError(err error) string {
	if err == nil {
		return ""
	}
	return lipgloss.NewStyle().Foreground(ColorRed).Render(describeError(err))
}
