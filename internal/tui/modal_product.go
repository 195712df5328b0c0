package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/heimdall/internal/apiclient"
	"github.com/tinytelemetry/heimdall/internal/model"
)

// productCreatedMsg reports the result of POST /products.
type productCreatedMsg struct {
	name   string
	result apiclient.Result[model.CreatedProduct]
}

const (
	fieldName = iota
	fieldPrice
	fieldCategory
	fieldBrand
	fieldDescription
	fieldTags
	productFieldCount
)

var productFieldLabels = [productFieldCount]string{"Name", "Price", "Category id", "Brand", "Description", "Tags"}

// ProductModal is the add-product form. submit runs only for input that
// parses.
type ProductModal struct {
	inputs [productFieldCount]textinput.Model
	focus  int
	err    error
	submit func(model.NewProduct) tea.Cmd
}

func NewProductModal(submit func(model.NewProduct) tea.Cmd) *ProductModal {
	m := &ProductModal{submit: submit}
	placeholders := [productFieldCount]string{"required", "e.g. 4999", "1-5", "", "", "comma separated"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Width = 40
		m.inputs[i] = ti
	}
	m.inputs[fieldName].Focus()
	return m
}

func (m *ProductModal) ID() string { return "add-product" }

func (m *ProductModal) form() productForm {
	return productForm{
		Name:        m.inputs[fieldName].Value(),
		Price:       m.inputs[fieldPrice].Value(),
		CategoryID:  m.inputs[fieldCategory].Value(),
		Brand:       m.inputs[fieldBrand].Value(),
		Description: m.inputs[fieldDescription].Value(),
		Tags:        m.inputs[fieldTags].Value(),
	}
}

func (m *ProductModal) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = cycle(i, 0, productFieldCount)
	m.inputs[m.focus].Focus()
}

func (m *ProductModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	switch km.String() {
	case "esc":
		return true, nil
	case "tab", "down":
		m.setFocus(m.focus + 1)
		return false, nil
	case "shift+tab", "up":
		m.setFocus(m.focus - 1)
		return false, nil
	case "enter":
		if m.focus < productFieldCount-1 {
			m.setFocus(m.focus + 1)
			return false, nil
		}
		fallthrough
	case "ctrl+s":
		p, err := parseNewProduct(m.form())
		if err != nil {
			m.err = err
			return false, nil
		}
		return true, m.submit(p)
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(km)
	m.err = nil
	return false, cmd
}

func (m *ProductModal) View(width, height int) string {
	lines := make([]string, 0, productFieldCount+4)
	for i, in := range m.inputs {
		label := cardLabelStyle.Width(13).Render(productFieldLabels[i])
		lines = append(lines, label+" "+in.View())
	}
	ids := make([]int, 0, len(model.Categories))
	for id := range model.Categories {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	cats := make([]string, 0, len(ids))
	for _, id := range ids {
		cats = append(cats, fmt.Sprintf("%d %s", id, model.Categories[id]))
	}
	lines = append(lines, "", helpStyle.Render("categories: "+strings.Join(cats, ", ")), formError(m.err))
	return renderModalFrame("Add product", lipgloss.JoinVertical(lipgloss.Left, lines...),
		"Tab: Next field | Enter/Ctrl+S: Save | ESC: Cancel", width, height)
}
