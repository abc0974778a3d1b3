package normalizer

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"swipecatalog/internal/models"
)

// Thresholds are the inclusive upper bounds of the priced buckets.
type Thresholds struct {
	BudgetMax   float64
	MidRangeMax float64
	PremiumMax  float64
}

// DefaultThresholds returns the stock 30 / 75 / 150 bounds.
func DefaultThresholds() Thresholds {
	return Thresholds{BudgetMax: 30, MidRangeMax: 75, PremiumMax: 150}
}

// Transformer cleans raw price strings and assigns price ranges.
type Transformer struct {
	budget   decimal.Decimal
	midRange decimal.Decimal
	premium  decimal.Decimal
	noise    *regexp.Regexp
}

// NewTransformer creates a new transformer instance.
func NewTransformer(th Thresholds) *Transformer {
	return &Transformer{
		budget:   decimal.NewFromFloat(th.BudgetMax),
		midRange: decimal.NewFromFloat(th.MidRangeMax),
		premium:  decimal.NewFromFloat(th.PremiumMax),
		noise:    regexp.MustCompile(`[$€£¥,]`),
	}
}

// ParsePrice strips currency symbols and thousands separators and parses the rest.
// Only surrounding whitespace is trimmed, so "1 299" is unparseable.
// Anything unparseable reports false.
func (t *Transformer) ParsePrice(raw string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSpace(t.noise.ReplaceAllString(raw, ""))
	if cleaned == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}

	return d, true
}

// Bucket maps a price onto its range. A nil or negative price is unknown.
func (t *Transformer) Bucket(price *decimal.Decimal) models.PriceRange {
	switch {
	case price == nil || price.IsNegative():
		return models.PriceUnknown
	case price.LessThanOrEqual(t.budget):
		return models.PriceBudget
	case price.LessThanOrEqual(t.midRange):
		return models.PriceMidRange
	case price.LessThanOrEqual(t.premium):
		return models.PricePremium
	default:
		return models.PriceLuxury
	}
}

// Transform resolves Price and PriceRange of p from its raw price.
// It reports whether a usable price was found.
func (t *Transformer) Transform(p *models.Product) bool {
	var price *decimal.Decimal

	if d, ok := t.ParsePrice(p.RawPrice); ok {
		price = &d
	} else if p.Price != nil {
		d := decimal.NewFromFloat(*p.Price)
		price = &d
	}

	p.PriceRange = t.Bucket(price)

	if price == nil || price.IsNegative() {
		p.Price = nil
		return false
	}

	f := price.InexactFloat64()
	p.Price = &f

	return true
}
