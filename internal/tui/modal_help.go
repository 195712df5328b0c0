package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/heimdall/internal/model"
)

// HelpModal lists the key bindings.
type HelpModal struct {
	keys     KeyMap
	viewport viewport.Model
}

func NewHelpModal(keys KeyMap) *HelpModal {
	return &HelpModal{keys: keys, viewport: viewport.New(80, 20)}
}

func (h *HelpModal) ID() string { return "help" }

func (h *HelpModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, h.keys.Help) {
		return true, nil
	}
	return scrollViewport(&h.viewport, msg)
}

func (h *HelpModal) View(width, height int) string {
	return renderScrollModal(&h.viewport, "Help", h.content(), width, height)
}

func (h *HelpModal) content() string {
	var b strings.Builder
	section := func(title string, bindings ...key.Binding) {
		b.WriteString(title + ":\n")
		for _, kb := range bindings {
			hp := kb.Help()
			fmt.Fprintf(&b, "  %-14s - %s\n", hp.Key, hp.Desc)
		}
		b.WriteString("\n")
	}

	section("NAVIGATION", h.keys.NextPage, h.keys.PrevPage, h.keys.GoTo, h.keys.Escape)
	section("ACTIONS", h.keys.Retry, h.keys.Dismiss, h.keys.Export, h.keys.Inspect, h.keys.RecordBehavior, h.keys.Help, h.keys.Quit, h.keys.ForceQuit)
	section("PAGE KEYS", h.keys.NextUser, h.keys.PrevUser, h.keys.Strategy, h.keys.Period, h.keys.Query, h.keys.AddProduct)

	b.WriteString("PAGES:\n")
	for i, p := range model.AllPages() {
		fmt.Fprintf(&b, "  %d  %s\n", i+1, p.Title())
	}
	b.WriteString("\nThe system status is checked hourly; the monitoring page refreshes every 30 seconds while shown.\n")
	return b.String()
}
