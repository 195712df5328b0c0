package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const sidebarWidth = 22

// renderSidebar draws the navigation items of the board. The active item is
// whichever the navigator last marked.
func (a *App) renderSidebar(height int) string {
	lines := []string{pageTitleStyle.Render("Pages"), ""}
	for i, item := range a.board.Nav() {
		label := truncateText(fmt.Sprintf("%d %s", i+1, item.Label), sidebarWidth-3)
		if item.Active {
			lines = append(lines, navActiveStyle.Width(sidebarWidth-2).Render(label))
			continue
		}
		lines = append(lines, navItemStyle.Width(sidebarWidth-2).Render(label))
	}

	status := a.board.Text(elSystemStatus)
	statusStyle := lipgloss.NewStyle().Foreground(classColor(a.board.Class(elSystemStatus)))
	lines = append(lines, "", helpStyle.Render(" System"), " "+statusStyle.Render("● "+status))
	if checked := a.board.Text(elLastChecked); checked != "" {
		lines = append(lines, helpStyle.Render(" checked "+checked))
	}
	lines = append(lines, "", helpStyle.Render(" user "+a.deps.UserID))

	return lipgloss.NewStyle().
		Width(sidebarWidth).
		Height(max(1, height)).
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(ColorGray).
		Render(strings.Join(lines, "\n"))
}
