package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/heimdall/internal/board"
	"github.com/tinytelemetry/heimdall/internal/chart"
	"github.com/tinytelemetry/heimdall/internal/model"
	"github.com/tinytelemetry/heimdall/internal/viewstate"
)

const (
	noProductsText     = "No products found"
	productsFailedText = "Failed to load products"
)

var productColumns = []string{"ID", "Name", "Category", "Brand", "Price", "Rating", "Stock"}

type productsPage struct {
	pageBase
	last *model.ProductList
}

func newProductsPage(deps *Deps, b *board.Board, charts *chart.Registry) *productsPage {
	return &productsPage{pageBase: newPageBase(model.PageProducts, deps, b, charts)}
}

func (p *productsPage) Mount(b *board.Board) {
	addElements(b, elProductsTable, elProductsTotal)
}

func (p *productsPage) Loader(ctx context.Context) func() (any, error) {
	client := p.deps.Client
	return func() (any, error) {
		list, err := client.Products(ctx).Unwrap()
		if err != nil {
			return nil, err
		}
		return &list, nil
	}
}

func (p *productsPage) Apply(data any) viewstate.Outcome {
	list, ok := data.(*model.ProductList)
	if !ok {
		return p.Fail(fmt.Errorf("products: unexpected payload %T", data))
	}
	p.loaded = true
	p.last = list
	p.clearError()

	if len(list.Products) == 0 {
		p.setRows(elProductsTable, [][]string{{noProductsText}})
		p.set(elProductsTotal, "0 products")
		return viewstate.OutcomeSuccess
	}

	rows := make([][]string, 0, len(list.Products))
	for _, pr := range list.Products {
		id := pr.ProductID
		if id == "" {
			id = strconv.FormatInt(pr.ID, 10)
		}
		rows = append(rows, []string{
			id, pr.Name, pr.Category, pr.Brand,
			formatPrice(pr.Price), formatRating(pr.Rating), formatCount(pr.StockQuantity),
		})
	}
	p.setRows(elProductsTable, rows)

	total := list.Total
	if total == 0 {
		total = int64(len(list.Products))
	}
	p.set(elProductsTotal, fmt.Sprintf("%s products", formatCount(total)))
	return viewstate.OutcomeSuccess
}

func (p *productsPage) Fail(err error) viewstate.Outcome {
	p.loaded = true
	p.showError(err)
	p.setRows(elProductsTable, [][]string{{productsFailedText}})
	p.set(elProductsTotal, "")
	return viewstate.OutcomeFailure
}

func (p *productsPage) ExportData() any {
	if p.last == nil {
		return nil
	}
	return p.last
}

func (p *productsPage) View(width, height int) string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		deckTitleStyle.Render("Catalogue"), "  ",
		helpStyle.Render(p.board.Text(elProductsTotal)), "  ",
		helpStyle.Render("n: add product"),
	)
	table := renderTable(productColumns, p.board.Rows(elProductsTable), width-4, max(3, height-6))
	return renderBox("", strings.Join([]string{header, "", table}, "\n"), width)
}

// productForm is the raw text of the add-product form.
type productForm struct {
	Name        string
	Price       string
	CategoryID  string
	Brand       string
	Description string
	Tags        string
}

// parseNewProduct validates the form. Nothing is sent when it fails.
func parseNewProduct(f productForm) (model.NewProduct, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return model.NewProduct{}, &MalformedInputError{Field: "name", Reason: "required"}
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if err != nil || price <= 0 {
		return model.NewProduct{}, &MalformedInputError{Field: "price", Reason: "must be a positive number"}
	}
	catID, err := strconv.Atoi(strings.TrimSpace(f.CategoryID))
	if _, known := model.Categories[catID]; err != nil || !known {
		return model.NewProduct{}, &MalformedInputError{Field: "category", Reason: "must be one of 1-5"}
	}
	tags := []string{}
	for _, t := range strings.Split(f.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return model.NewProduct{
		Name:        name,
		Description: strings.TrimSpace(f.Description),
		Price:       price,
		CategoryID:  catID,
		Brand:       strings.TrimSpace(f.Brand),
		Tags:        tags,
	}, nil
}
