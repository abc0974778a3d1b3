// Package normalizer merges adapted source batches and applies the global
// cleanup pass: price coercion, price-range bucketing and default filling.
package normalizer

import (
	"fmt"

	"swipecatalog/internal/models"
)

// PlaceholderImageURL is the stock image used for products without one.
const PlaceholderImageURL = "https://placehold.co/400x500/e0e0e0/black?text=No+Image"

// Defaults are substituted for fields still empty after bucketing.
type Defaults struct {
	// Price is only filled when set; nil keeps unresolved prices null.
	Price      *float64
	Name       string
	Color      string
	ImageURL   string
	ProductURL string
	Style      models.Style
	Fit        models.Fit
}

// DefaultDefaults returns the stock fill values.
func DefaultDefaults() Defaults {
	return Defaults{
		Name:       "Unknown Product",
		Color:      "unknown",
		ImageURL:   PlaceholderImageURL,
		ProductURL: "#",
		Style:      models.StyleCasual,
		Fit:        models.FitRegular,
	}
}

// Report summarizes one post-processing pass.
type Report struct {
	Filled           map[string]int
	Records          int
	PricesResolved   int
	PricesUnresolved int
}

// Processor runs the post-merge cleanup over the unified catalog.
type Processor struct {
	validator   *Validator
	transformer *Transformer
	defaults    Defaults
}

// NewProcessor creates a new processor instance.
func NewProcessor(th Thresholds, defaults Defaults) *Processor {
	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(th),
		defaults:    defaults,
	}
}

// Process rewrites price-derived fields and fills defaults in place, then
// validates the result. The returned report is populated even when
// validation fails.
func (p *Processor) Process(products []models.Product) (*Report, error) {
	report := &Report{Records: len(products), Filled: map[string]int{}}

	for i := range products {
		if p.transformer.Transform(&products[i]) {
			report.PricesResolved++
		} else {
			report.PricesUnresolved++
		}

		p.fill(&products[i], report.Filled)
	}

	if err := p.validator.Validate(products); err != nil {
		return report, fmt.Errorf("validation failed: %w", err)
	}

	return report, nil
}

// fill never overwrites a value that is already present.
func (p *Processor) fill(rec *models.Product, filled map[string]int) {
	setString := func(field string, dst *string, v string) {
		if *dst == "" && v != "" {
			*dst = v
			filled[field]++
		}
	}

	setString("name", &rec.Name, p.defaults.Name)
	setString("subcategory", &rec.Subcategory, models.SubcategoryOther)
	setString("color", &rec.Color, p.defaults.Color)
	setString("image_url", &rec.ImageURL, p.defaults.ImageURL)
	setString("product_url", &rec.ProductURL, p.defaults.ProductURL)

	if rec.Category == "" {
		rec.Category = models.CategoryOther
		filled["category"]++
	}

	if rec.Style == "" {
		rec.Style = p.defaults.Style
		filled["style"]++
	}

	if rec.Fit == "" {
		rec.Fit = p.defaults.Fit
		filled["fit"]++
	}

	if rec.PriceRange == "" {
		rec.PriceRange = models.PriceUnknown
		filled["price_range"]++
	}

	if rec.Price == nil && p.defaults.Price != nil {
		v := *p.defaults.Price
		rec.Price = &v
		filled["price"]++
	}
}
