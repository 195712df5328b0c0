package tui

import tea "github.com/charmbracelet/bubbletea"

// Modal is a self-contained modal that owns its own Update/View lifecycle.
// Modals are kept on a stack on the App; the topmost one receives all
// input and renders full-screen.
type Modal interface {
	// ID returns a unique identifier used to deduplicate pushes.
	ID() string
	// Update processes a message. Return pop=true to close the modal.
	Update(msg tea.Msg) (pop bool, cmd tea.Cmd)
	// View renders the modal content for the given terminal dimensions.
	View(width, height int) string
}

// PushModal pushes m unless a modal with the same ID is already open.
func (a *App) PushModal(m Modal) {
	for _, open := range a.modals {
		if open.ID() == m.ID() {
			return
		}
	}
	a.modals = append(a.modals, m)
}

// PopModal closes the topmost modal.
func (a *App) PopModal() {
	if len(a.modals) > 0 {
		a.modals = a.modals[:len(a.modals)-1]
	}
}

// TopModal returns the topmost modal, or nil.
func (a *App) TopModal() Modal {
	if len(a.modals) == 0 {
		return nil
	}
	return a.modals[len(a.modals)-1]
}

func (a *App) HasModal() bool { return len(a.modals) > 0 }
