package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerFrame picks the frame from the wall clock so it animates on
// re-render.
func spinnerFrame() string {
	return spinnerFrames[time.Now().UnixMilli()/spinnerInterval.Milliseconds()%int64(len(spinnerFrames))]
}

// renderLoadingPlaceholder renders an animated loading indicator.
func renderLoadingPlaceholder(width, height int) string {
	text := lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true).
		Render(spinnerFrame() + " Loading...")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
}

// SpinnerTickMsg triggers a re-render while a load is in flight.
type SpinnerTickMsg struct{}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg { return SpinnerTickMsg{} })
}

// handleSpinnerTick keeps ticking while any page is loading.
func (a *App) handleSpinnerTick() tea.Cmd {
	if a.store.AnyInFlight() {
		return spinnerTick()
	}
	a.spinning = false
	return nil
}

// startSpinnerIfNeeded starts the spinner unless it is already running.
func (a *App) startSpinnerIfNeeded() tea.Cmd {
	if a.spinning || !a.store.AnyInFlight() {
		return nil
	}
	a.spinning = true
	return spinnerTick()
}
