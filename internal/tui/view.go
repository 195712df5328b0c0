package tui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	minWidth  = 60
	minHeight = 20
)

func (a *App) contentWidth() int {
	return max(40, a.width-sidebarWidth-1)
}

// View renders the console.
func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return "Initializing console..."
	}
	if modal := a.TopModal(); modal != nil {
		return modal.View(a.width, a.height)
	}
	if a.width < minWidth || a.height < minHeight {
		return "Terminal too small. Resize to at least 60x20."
	}

	w := a.contentWidth()
	bodyHeight := a.height - 1

	var sections []string
	if cur, ok := a.store.Current(); ok {
		sections = append(sections, pageTitleStyle.Render(cur.Title()))
		if panel := a.renderErrorPanel(w); panel != "" {
			sections = append(sections, panel)
		}
		used := lipgloss.Height(lipgloss.JoinVertical(lipgloss.Left, sections...))
		pageHeight := max(1, bodyHeight-used)

		ctrl, _ := a.nav.Page(cur)
		switch {
		case ctrl == nil:
		case !ctrl.HasData() && a.store.State(cur).InFlight:
			sections = append(sections, renderLoadingPlaceholder(w, pageHeight))
		default:
			sections = append(sections, ctrl.View(w, pageHeight))
		}
	} else {
		sections = append(sections, renderLoadingPlaceholder(w, bodyHeight))
	}

	content := lipgloss.NewStyle().
		Width(w).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	body := lipgloss.JoinHorizontal(lipgloss.Top, a.renderSidebar(bodyHeight), content)

	return lipgloss.JoinVertical(lipgloss.Left, body, a.renderStatusLine(a.width))
}
