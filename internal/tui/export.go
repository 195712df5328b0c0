package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/heimdall/internal/export"
)

// exportDoneMsg reports where an export was written.
type exportDoneMsg struct {
	path string
	err  error
}

// exportDocument snapshots the loaded data of every page.
func (a *App) exportDocument() export.Document {
	pages := make(map[string]any)
	for _, p := range a.order {
		ex, ok := p.(Exporter)
		if !ok || !p.HasData() {
			continue
		}
		if data := ex.ExportData(); data != nil {
			pages[string(p.ID())] = data
		}
	}
	return export.Document{
		SessionID:   a.deps.SessionID,
		UserID:      a.deps.UserID,
		BaseURL:     a.deps.Client.BaseURL(),
		CurrentPage: string(a.currentPage()),
		APIStats:    a.deps.Client.Stats(),
		Pages:       pages,
		Timestamp:   a.deps.Now(),
	}
}

// exportCmd writes the export file off the UI loop.
func (a *App) exportCmd() tea.Cmd {
	doc := a.exportDocument()
	dir := a.deps.ExportDir
	format := a.deps.ExportFormat
	return func() tea.Msg {
		path, err := export.Write(dir, format, doc)
		return exportDoneMsg{path: path, err: err}
	}
}
