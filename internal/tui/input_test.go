package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinytelemetry/heimdall/internal/model"
)

func TestParseNewProduct(t *testing.T) {
	t.Parallel()

	valid := productForm{Name: " Kindle ", Price: "899", CategoryID: "1", Brand: "Amazon", Tags: "reader, , e-ink"}

	tests := []struct {
		name  string
		edit  func(f *productForm)
		field string
	}{
		{"valid", func(*productForm) {}, ""},
		{"missing name", func(f *productForm) { f.Name = "  " }, "name"},
		{"price not a number", func(f *productForm) { f.Price = "cheap" }, "price"},
		{"negative price", func(f *productForm) { f.Price = "-3" }, "price"},
		{"unknown category", func(f *productForm) { f.CategoryID = "9" }, "category"},
		{"category not a number", func(f *productForm) { f.CategoryID = "books" }, "category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := valid
			tt.edit(&f)
			p, err := parseNewProduct(f)
			if tt.field == "" {
				require.NoError(t, err)
				assert.Equal(t, "Kindle", p.Name)
				assert.Equal(t, 899.0, p.Price)
				assert.Equal(t, []string{"reader", "e-ink"}, p.Tags)
				return
			}
			var inputErr *MalformedInputError
			require.True(t, errors.As(err, &inputErr), "err = %v", err)
			assert.Equal(t, tt.field, inputErr.Field)
		})
	}
}

func TestParseBehaviorData(t *testing.T) {
	t.Parallel()

	data, err := parseBehaviorData("")
	require.NoError(t, err)
	assert.Empty(t, data)

	data, err = parseBehaviorData(`{"product_id":"P001","duration":12}`)
	require.NoError(t, err)
	assert.Equal(t, "P001", data["product_id"])

	for _, raw := range []string{`{"product_id":`, `[1,2]`, `"view"`} {
		_, err := parseBehaviorData(raw)
		var inputErr *MalformedInputError
		assert.True(t, errors.As(err, &inputErr), "input %q: err = %v", raw, err)
	}
}

func TestValidateQuery(t *testing.T) {
	t.Parallel()

	q, err := validateQuery("  laptop for school ")
	require.NoError(t, err)
	assert.Equal(t, "laptop for school", q)

	_, err = validateQuery("   ")
	assert.Error(t, err)

	_, err = validateQuery(strings.Repeat("a", maxQueryLength+1))
	assert.Error(t, err)
}

func TestBehaviorModal_MalformedJSONBlocksSubmit(t *testing.T) {
	t.Parallel()

	var submitted []model.BehaviorRecord
	m := NewBehaviorModal("user_002", "s1", func(r model.BehaviorRecord) tea.Cmd {
		submitted = append(submitted, r)
		return nil
	})
	m.data.SetValue(`{"product_id": P001}`)

	pop, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.False(t, pop)
	assert.Empty(t, submitted)
	assert.Error(t, m.err)

	m.data.SetValue(`{"product_id": "P001"}`)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	pop, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.True(t, pop)
	require.Len(t, submitted, 1)
	assert.Equal(t, "user_002", submitted[0].UserID)
	assert.Equal(t, model.BehaviorTypes[1], submitted[0].BehaviorType)
	assert.Equal(t, "P001", submitted[0].BehaviorData["product_id"])
}

func TestProductModal_InvalidFormStaysOpen(t *testing.T) {
	t.Parallel()

	calls := 0
	m := NewProductModal(func(model.NewProduct) tea.Cmd { calls++; return nil })
	m.inputs[fieldName].SetValue("Desk lamp")
	m.inputs[fieldPrice].SetValue("abc")

	pop, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.False(t, pop)
	assert.Zero(t, calls)
	assert.Contains(t, describeError(m.err), "price")

	m.inputs[fieldPrice].SetValue("129")
	m.inputs[fieldCategory].SetValue("3")
	pop, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.True(t, pop)
	assert.Equal(t, 1, calls)
}

func TestIntentQueryModal_RejectsEmpty(t *testing.T) {
	t.Parallel()

	m := NewIntentQueryModal("")
	pop, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, pop)
	assert.Nil(t, cmd)
	assert.Error(t, m.err)

	m.input.SetValue("running earbuds")
	pop, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, pop)
	assert.Equal(t, intentQueryMsg{query: "running earbuds"}, cmd())
}
