package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// intentQueryMsg carries a validated intent query back to the UI loop.
type intentQueryMsg struct {
	query string
}

// IntentQueryModal edits the free-text request of the intent page.
type IntentQueryModal struct {
	input textinput.Model
	err   error
}

func NewIntentQueryModal(current string) *IntentQueryModal {
	ti := textinput.New()
	ti.Placeholder = "e.g. I want a good value laptop"
	ti.CharLimit = maxQueryLength + 1
	ti.Width = 60
	ti.SetValue(current)
	ti.Focus()
	return &IntentQueryModal{input: ti}
}

func (m *IntentQueryModal) ID() string { return "intent-query" }

func (m *IntentQueryModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	switch km.String() {
	case "esc":
		return true, nil
	case "enter":
		q, err := validateQuery(m.input.Value())
		if err != nil {
			m.err = err
			return false, nil
		}
		return true, func() tea.Msg { return intentQueryMsg{query: q} }
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(km)
	m.err = nil
	return false, cmd
}

func (m *IntentQueryModal) View(width, height int) string {
	m.input.Width = max(20, width-20)
	body := lipgloss.JoinVertical(lipgloss.Left,
		helpStyle.Render("Describe what you are looking for."),
		"",
		m.input.View(),
		formError(m.err),
	)
	return renderModalFrame("Intent analysis", body, "Enter: Analyze | ESC: Cancel", width, height)
}
