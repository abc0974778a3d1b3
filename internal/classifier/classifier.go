// Package classifier infers category, subcategory, style, color and fit of a
// product from its free-text name using ordered keyword tables.
package classifier

import (
	"regexp"
	"strings"

	"swipecatalog/internal/models"
)

// Result holds the attributes inferred for one product.
type Result struct {
	Category    models.Category
	Subcategory string
	Style       models.Style
	Color       string
	Fit         models.Fit
}

// Options carries the fallbacks used when no keyword matches.
type Options struct {
	DefaultStyle models.Style
	DefaultFit   models.Fit
}

// DefaultOptions returns the stock fallbacks (casual, regular).
func DefaultOptions() Options {
	return Options{
		DefaultStyle: models.StyleCasual,
		DefaultFit:   models.FitRegular,
	}
}

// Classifier is a stateless rule evaluator. The zero value is not usable; call New.
type Classifier struct {
	opts        Options
	colorRegexp *regexp.Regexp
}

// New creates a classifier. Invalid fallbacks are replaced with the stock ones.
func New(opts Options) *Classifier {
	defaults := DefaultOptions()
	if !opts.DefaultStyle.IsValid() {
		opts.DefaultStyle = defaults.DefaultStyle
	}

	if !opts.DefaultFit.IsValid() {
		opts.DefaultFit = defaults.DefaultFit
	}

	return &Classifier{
		opts:        opts,
		colorRegexp: regexp.MustCompile(`(` + strings.Join(colorVocabulary, "|") + `)`),
	}
}

var std = New(DefaultOptions())

// Classify runs the default classifier.
func Classify(name, brand string) Result {
	return std.Classify(name, brand)
}

// Classify infers every attribute of a product from its name and brand.
// It never fails; empty inputs produce the fallback values.
func (c *Classifier) Classify(name, brand string) Result {
	name = strings.ToLower(name)
	brand = strings.ToLower(strings.TrimSpace(brand))

	category := firstMatch(categoryRules, name, models.CategoryOther)
	if activewearBrands[brand] && (category == models.CategoryTops || category == models.CategoryBottoms) {
		category = models.CategoryActivewear
	}

	style := firstMatch(styleRules, name, c.opts.DefaultStyle)
	if override, ok := brandStyles[brand]; ok {
		style = override
	}

	return Result{
		Category:    category,
		Subcategory: Subcategory(category, name),
		Style:       style,
		Color:       c.ExtractColor(name),
		Fit:         c.DetectFit(name),
	}
}

// Subcategory resolves the subcategory of name within category.
func Subcategory(category models.Category, name string) string {
	rules, ok := subcategoryRules[category]
	if !ok {
		return models.SubcategoryOther
	}

	return firstMatch(rules, strings.ToLower(name), models.SubcategoryOther)
}

// ExtractColor returns the leftmost color word found in name, or "".
func (c *Classifier) ExtractColor(name string) string {
	return c.colorRegexp.FindString(strings.ToLower(name))
}

// DetectFit looks for an explicit fit word in name.
func (c *Classifier) DetectFit(name string) models.Fit {
	name = strings.ToLower(name)

	switch {
	case strings.Contains(name, "oversized"):
		return models.FitOversized
	case strings.Contains(name, "slim"):
		return models.FitSlim
	default:
		return c.opts.DefaultFit
	}
}

func firstMatch[L ~string](rules []Rule[L], text string, fallback L) L {
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if strings.Contains(text, kw) {
				return r.Label
			}
		}
	}

	return fallback
}
