package source

import (
	"errors"
	"fmt"
)

// ColorPolicy decides between a feed's own color and the one inferred from the name.
type ColorPolicy string

// Color policies.
const (
	// ColorFillMissing keeps the feed's color and infers only when it is absent.
	ColorFillMissing ColorPolicy = "fill_missing"
	// ColorPreferExtracted uses the inferred color whenever the name yields one.
	ColorPreferExtracted ColorPolicy = "prefer_extracted"
	// ColorSourceOnly never infers.
	ColorSourceOnly ColorPolicy = "source_only"
)

// Source lookup errors.
var (
	ErrUnknownSource      = errors.New("unknown source")
	ErrUnknownColorPolicy = errors.New("unknown color policy")
)

// Layout declares the known columns of one retailer feed.
type Layout struct {
	Name   string
	File   string
	Prefix string
	Brand  string

	// IDColumn names a stable native product id; empty means the row ordinal is used.
	IDColumn    string
	NameColumn  string
	PriceColumn string
	ImageColumn string
	URLColumn   string
	ColorColumn string
	FitColumn   string

	// TitleColor reads the feed color from the trailing word of the title.
	TitleColor  bool
	ColorPolicy ColorPolicy

	// Required columns abort the whole source when missing from the header.
	Required []string
}

// builtins lists the retailer feeds in their merge order.
var builtins = []Layout{
	{
		Name:        "alo_yoga",
		File:        "alo_yoga_products.csv",
		Prefix:      "alo",
		Brand:       "Alo Yoga",
		NameColumn:  "name",
		PriceColumn: "price",
		ImageColumn: "image_url",
		URLColumn:   "product_url",
		ColorColumn: "current_color",
		FitColumn:   "fit",
		ColorPolicy: ColorFillMissing,
		Required:    []string{"name"},
	},
	{
		Name:        "princess_polly",
		File:        "princess_polly.csv",
		Prefix:      "pp",
		Brand:       "Princess Polly",
		NameColumn:  "title",
		PriceColumn: "price",
		ImageColumn: "image_url",
		URLColumn:   "product_url",
		FitColumn:   "fit",
		TitleColor:  true,
		ColorPolicy: ColorFillMissing,
		Required:    []string{"title"},
	},
	{
		Name:        "gymshark",
		File:        "gymshark_products.csv",
		Prefix:      "gs",
		Brand:       "Gymshark",
		IDColumn:    "product_id",
		NameColumn:  "name",
		PriceColumn: "price",
		ImageColumn: "image_url",
		URLColumn:   "url",
		ColorColumn: "color",
		FitColumn:   "fit",
		ColorPolicy: ColorSourceOnly,
		Required:    []string{"product_id", "name"},
	},
	{
		Name:        "edikted",
		File:        "edikted_products.csv",
		Prefix:      "ed",
		Brand:       "Edikted",
		NameColumn:  "name",
		PriceColumn: "price",
		ImageColumn: "image_url",
		URLColumn:   "product_url",
		ColorColumn: "color",
		FitColumn:   "fit",
		ColorPolicy: ColorFillMissing,
		Required:    []string{"name"},
	},
	tolerantLayout("nakd", "nakd_products.csv", "nakd", "Nakd"),
	tolerantLayout("cupshe", "cupshe_products.csv", "cup", "Cupshe"),
	tolerantLayout("altardstate", "altardstate_products.csv", "as", "Altardstate"),
	tolerantLayout("vuori", "vuori_products.csv", "vu", "Vuori"),
}

// tolerantLayout describes feeds where every column, the title included, may be missing.
func tolerantLayout(name, file, prefix, brand string) Layout {
	return Layout{
		Name:        name,
		File:        file,
		Prefix:      prefix,
		Brand:       brand,
		NameColumn:  "name",
		PriceColumn: "price",
		ImageColumn: "image_url",
		URLColumn:   "product_url",
		ColorColumn: "color",
		FitColumn:   "fit",
		ColorPolicy: ColorFillMissing,
	}
}

// Lookup returns the built-in layout registered under name.
func Lookup(name string) (Layout, error) {
	for _, l := range builtins {
		if l.Name == name {
			l.Required = append([]string(nil), l.Required...)
			return l, nil
		}
	}

	return Layout{}, fmt.Errorf("%w: %q", ErrUnknownSource, name)
}

// Names returns the built-in source names in merge order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for _, l := range builtins {
		names = append(names, l.Name)
	}

	return names
}

// ParseColorPolicy validates a policy name. Empty input yields "" so callers
// can keep the layout's own policy.
func ParseColorPolicy(s string) (ColorPolicy, error) {
	switch p := ColorPolicy(s); p {
	case "", ColorFillMissing, ColorPreferExtracted, ColorSourceOnly:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownColorPolicy, s)
	}
}

// Resolve picks the final color given the feed value and the inferred one.
func (p ColorPolicy) Resolve(fromSource, inferred string) string {
	switch p {
	case ColorPreferExtracted:
		if inferred != "" {
			return inferred
		}

		return fromSource
	case ColorSourceOnly:
		return fromSource
	default:
		if fromSource != "" {
			return fromSource
		}

		return inferred
	}
}
