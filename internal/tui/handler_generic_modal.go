package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// DetailModal displays preformatted content, typically the raw data of a
// page.
type DetailModal struct {
	title    string
	content  string
	viewport viewport.Model
}

func NewDetailModal(title, content string) *DetailModal {
	return &DetailModal{title: title, content: content, viewport: viewport.New(80, 20)}
}

// NewRawDataModal renders v as indented JSON.
func NewRawDataModal(title string, v any) *DetailModal {
	if v == nil {
		return NewDetailModal(title, "Nothing loaded yet.")
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return NewDetailModal(title, "cannot encode data: "+err.Error())
	}
	return NewDetailModal(title, string(data))
}

func (d *DetailModal) ID() string { return "detail" }

func (d *DetailModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	return scrollViewport(&d.viewport, msg)
}

func (d *DetailModal) View(width, height int) string {
	return renderScrollModal(&d.viewport, d.title, d.content, width, height)
}
