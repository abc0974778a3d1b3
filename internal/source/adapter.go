// Package source turns retailer feeds into canonical products.
package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"swipecatalog/internal/classifier"
	"swipecatalog/internal/models"
	"swipecatalog/pkg/utils"
)

// ErrMissingColumn is returned when a feed lacks a column its layout requires.
var ErrMissingColumn = errors.New("missing required column")

// Adapter maps the rows of one retailer feed onto canonical products.
type Adapter interface {
	Name() string
	Layout() Layout
	Adapt(index int, raw models.RawRecord) models.Product
}

// Retailer is the layout-driven Adapter used by every built-in feed.
type Retailer struct {
	layout     Layout
	classifier *classifier.Classifier
	strings    *utils.StringHelper
}

// NewRetailer creates an adapter for layout using cls for per-row classification.
func NewRetailer(layout Layout, cls *classifier.Classifier) *Retailer {
	if layout.ColorPolicy == "" {
		layout.ColorPolicy = ColorFillMissing
	}

	return &Retailer{
		layout:     layout,
		classifier: cls,
		strings:    utils.NewStringHelper(),
	}
}

// Name returns the source name.
func (r *Retailer) Name() string {
	return r.layout.Name
}

// Layout returns the declared column layout.
func (r *Retailer) Layout() Layout {
	return r.layout
}

// Adapt builds and classifies the product for the row at index.
func (r *Retailer) Adapt(index int, raw models.RawRecord) models.Product {
	l := r.layout

	p := models.Product{
		ID:         r.id(index, raw),
		Name:       r.strings.NormalizeWhitespace(raw.Get(l.NameColumn)),
		Brand:      l.Brand,
		RawPrice:   raw.Get(l.PriceColumn),
		ImageURL:   raw.Get(l.ImageColumn),
		ProductURL: raw.Get(l.URLColumn),
	}

	var sourceColor string

	switch {
	case l.TitleColor:
		sourceColor = r.strings.LastToken(p.Name)
	case l.ColorColumn != "":
		sourceColor = raw.Get(l.ColorColumn)
	}

	res := r.classifier.Classify(p.Name, p.Brand)

	p.Category = res.Category
	p.Subcategory = res.Subcategory
	p.Style = res.Style
	p.Color = strings.ToLower(l.ColorPolicy.Resolve(sourceColor, res.Color))
	p.Fit = res.Fit

	if fit := models.Fit(strings.ToLower(raw.Get(l.FitColumn))); fit.IsValid() {
		p.Fit = fit
	}

	return p
}

// id prefers the native id. Feeds with a native id column fall back to
// "<prefix>_row<index>" so a numeric native id can never equal a row ordinal.
func (r *Retailer) id(index int, raw models.RawRecord) string {
	if r.layout.IDColumn == "" {
		return r.layout.Prefix + "_" + strconv.Itoa(index)
	}

	if native, ok := raw.Lookup(r.layout.IDColumn); ok {
		return r.layout.Prefix + "_" + native
	}

	return r.layout.Prefix + "_row" + strconv.Itoa(index)
}

// CheckColumns verifies that header carries every required column.
func (l Layout) CheckColumns(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	var missing []string

	for _, col := range l.Required {
		if !present[col] {
			missing = append(missing, col)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	return nil
}

// Load reads the adapter's feed from dir and adapts every row in file order.
func Load(ctx context.Context, a Adapter, dir string) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	layout := a.Layout()
	path := filepath.Join(dir, layout.File)

	header, rows, err := ReadCSV(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := layout.CheckColumns(header); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	products := make([]models.Product, 0, len(rows))
	for i, raw := range rows {
		products = append(products, a.Adapt(i, raw))
	}

	return products, nil
}
