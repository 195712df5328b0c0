package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/heimdall/internal/viewstate"
)

// card is one labelled metric tile.
type card struct {
	label string
	value string
	class string
}

func renderCards(width int, cards ...card) string {
	tiles := make([]string, 0, len(cards))
	for _, c := range cards {
		value := c.value
		if value == "" {
			value = "-"
		}
		valueStyle := cardValueStyle
		if c.class != "" {
			valueStyle = valueStyle.Foreground(classColor(c.class))
		}
		tile := lipgloss.JoinVertical(lipgloss.Left,
			cardLabelStyle.Render(truncateText(c.label, width-4)),
			valueStyle.Render(truncateText(value, width-4)),
		)
		tiles = append(tiles, sectionStyle.Width(width-2).Render(tile))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

// renderBox frames content with an optional title line.
func renderBox(title, content string, width int) string {
	if title != "" {
		content = deckTitleStyle.Render(title) + "\n" + content
	}
	return sectionStyle.Width(max(10, width-2)).Render(content)
}

// renderTable lays rows out in columns sized to their widest cell. Rows
// beyond maxRows are summarised. A single-cell row spans the table.
func renderTable(headers []string, rows [][]string, width, maxRows int) string {
	if len(rows) == 0 {
		return helpStyle.Render("No data")
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		if len(row) == 1 && len(headers) > 1 {
			continue
		}
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	fitColumns(widths, width)

	line := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			var cell string
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = style.Width(w).Render(truncateText(cell, w))
		}
		return strings.Join(parts, " ")
	}

	out := []string{line(headers, tableHeaderStyle)}
	shown := rows
	if maxRows > 0 && len(rows) > maxRows {
		shown = rows[:maxRows]
	}
	plain := lipgloss.NewStyle()
	for _, row := range shown {
		if len(row) == 1 && len(headers) > 1 {
			out = append(out, helpStyle.Render(truncateText(row[0], width)))
			continue
		}
		out = append(out, line(row, plain))
	}
	if len(shown) < len(rows) {
		out = append(out, helpStyle.Render(fmt.Sprintf("… %d more", len(rows)-len(shown))))
	}
	return strings.Join(out, "\n")
}

// fitColumns shrinks the widest columns until the row fits width.
func fitColumns(widths []int, width int) {
	total := func() int {
		n := len(widths) - 1
		for _, w := range widths {
			n += w
		}
		return n
	}
	for total() > width {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= 4 {
			return
		}
		widths[widest]--
	}
}

func truncateText(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// renderErrorPanel renders the inline error panel of the current page, or
// "" when it is empty.
func (a *App) renderErrorPanel(width int) string {
	cur, ok := a.store.Current()
	if !ok {
		return ""
	}
	id := errorPanelID(cur)
	text := a.board.Text(id)
	if text == "" {
		return ""
	}
	color := classColor(a.board.Class(id))
	hint := "x: dismiss"
	if a.board.Class(id) == classError {
		hint = "r: retry  x: dismiss"
	}
	body := lipgloss.NewStyle().Foreground(color).Render(text) + "  " + helpStyle.Render(hint)
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(max(10, width-2)).
		Render(body)
}

func renderBranding() string {
	colors := []string{"#F2C14E", "#E8B04A", "#DE9F46", "#D48E42", "#CA7D3E", "#C06C3A", "#B65B36", "#AC4A32"}
	var b strings.Builder
	for i, ch := range "Heimdall" {
		b.WriteString(lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(lipgloss.Color(colors[i%len(colors)])).
			Bold(true).
			Render(string(ch)))
	}
	return b.String()
}

// renderStatusLine renders the bottom line: page and load state on the
// left, key hints in the center, API counters and connectivity on the right.
func (a *App) renderStatusLine(w int) string {
	baseStyle := lipgloss.NewStyle().
		Background(ColorNavy).
		Foreground(ColorWhite)

	narrow := w < 80
	medium := w < 120

	var leftText string
	if cur, ok := a.store.Current(); ok {
		st := a.store.State(cur)
		leftText = "[" + cur.Title() + "]"
		switch st.Outcome {
		case viewstate.OutcomeLoading:
			leftText += " " + spinnerFrame()
		case viewstate.OutcomeFailure:
			leftText += " failed"
		case viewstate.OutcomeFallback:
			leftText += " fallback"
		}
	}

	var center string
	switch {
	case a.HasModal():
		center = "ESC: Close"
	case a.flashText() != "":
		center = a.flashText()
	case narrow:
		center = "?: Help • Tab: Page • r • q"
	case medium:
		center = "?: Help • Tab/1-7: Page • r: Refresh • e: Export • q: Quit"
	default:
		center = "?: Help • Tab/1-7: Page • r: Refresh • e: Export • v: Raw data • x: Dismiss • q: Quit"
	}

	stats := a.deps.Client.Stats()
	var rightParts []string
	if !narrow {
		rightParts = append(rightParts, fmt.Sprintf("API %d/%d", stats.Success, stats.Total))
	}
	dotColor := ColorOrange
	switch {
	case a.statusKnown && a.online:
		dotColor = ColorGreen
	case a.statusKnown:
		dotColor = ColorRed
	}
	rightParts = append(rightParts, lipgloss.NewStyle().Background(ColorNavy).Foreground(dotColor).Render("●"))
	if w >= 40 {
		rightParts = append(rightParts, renderBranding())
	}
	rightText := strings.Join(rightParts, " ")

	leftWidth := lipgloss.Width(leftText) + 2
	rightWidth := lipgloss.Width(rightText) + 2
	centerWidth := max(0, w-leftWidth-rightWidth)
	if lipgloss.Width(center) > centerWidth {
		center = truncateText(center, centerWidth)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		baseStyle.Align(lipgloss.Left).Width(leftWidth).Render(leftText),
		baseStyle.Align(lipgloss.Center).Width(centerWidth).Render(center),
		baseStyle.Align(lipgloss.Right).Width(rightWidth).Render(rightText),
	)
}
