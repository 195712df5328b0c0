package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	jsoniter "github.com/json-iterator/go"

	"github.com/tinytelemetry/heimdall/internal/apiclient"
	"github.com/tinytelemetry/heimdall/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// behaviorRecordedMsg reports the result of POST /record-behavior.
type behaviorRecordedMsg struct {
	record model.BehaviorRecord
	result apiclient.Result[model.Ack]
}

// parseBehaviorData parses the free-form JSON attached to a behavior.
// Empty input is an empty object.
func parseBehaviorData(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}, nil
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, &MalformedInputError{Field: "behavior data", Reason: "not valid JSON"}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &MalformedInputError{Field: "behavior data", Reason: "must be a JSON object"}
	}
	return obj, nil
}

// BehaviorModal records one behavior for the selected user.
type BehaviorModal struct {
	userID    string
	sessionID string
	typeIdx   int
	data      textarea.Model
	err       error
	submit    func(model.BehaviorRecord) tea.Cmd
}

func NewBehaviorModal(userID, sessionID string, submit func(model.BehaviorRecord) tea.Cmd) *BehaviorModal {
	ta := textarea.New()
	ta.Placeholder = `{"product_id": "P001", "category": "Electronics"}`
	ta.SetWidth(60)
	ta.SetHeight(6)
	ta.ShowLineNumbers = false
	ta.Focus()
	return &BehaviorModal{userID: userID, sessionID: sessionID, data: ta, submit: submit}
}

func (m *BehaviorModal) ID() string { return "record-behavior" }

func (m *BehaviorModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	switch km.String() {
	case "esc":
		return true, nil
	case "tab":
		m.typeIdx = cycle(m.typeIdx, 1, len(model.BehaviorTypes))
		return false, nil
	case "shift+tab":
		m.typeIdx = cycle(m.typeIdx, -1, len(model.BehaviorTypes))
		return false, nil
	case "ctrl+s":
		data, err := parseBehaviorData(m.data.Value())
		if err != nil {
			m.err = err
			return false, nil
		}
		return true, m.submit(model.BehaviorRecord{
			UserID:       m.userID,
			SessionID:    m.sessionID,
			BehaviorType: model.BehaviorTypes[m.typeIdx],
			BehaviorData: data,
		})
	}
	var cmd tea.Cmd
	m.data, cmd = m.data.Update(km)
	m.err = nil
	return false, cmd
}

func (m *BehaviorModal) View(width, height int) string {
	m.data.SetWidth(max(20, width-20))
	types := make([]string, len(model.BehaviorTypes))
	for i, t := range model.BehaviorTypes {
		if i == m.typeIdx {
			types[i] = navActiveStyle.Render(t + " ")
			continue
		}
		types[i] = navItemStyle.Render(t)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		cardLabelStyle.Render("User")+" "+m.userID,
		cardLabelStyle.Render("Type")+" "+strings.Join(types, " "),
		"",
		cardLabelStyle.Render("Behavior data (JSON object)"),
		m.data.View(),
		formError(m.err),
	)
	return renderModalFrame("Record behavior", body, "Tab: Type | Ctrl+S: Record | ESC: Cancel", width, height)
}
