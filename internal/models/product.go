// Package models defines the data structures shared by the catalog pipeline.
package models

// Category is the top-level garment class of a product.
type Category string

// Known categories.
const (
	CategoryTops        Category = "tops"
	CategoryBottoms     Category = "bottoms"
	CategoryDresses     Category = "dresses"
	CategoryActivewear  Category = "activewear"
	CategoryOuterwear   Category = "outerwear"
	CategorySwimwear    Category = "swimwear"
	CategoryAccessories Category = "accessories"
	CategoryOther       Category = "other"
)

// Categories lists every category value.
var Categories = []Category{
	CategoryTops, CategoryBottoms, CategoryDresses, CategoryActivewear,
	CategoryOuterwear, CategorySwimwear, CategoryAccessories, CategoryOther,
}

// Style is the inferred aesthetic of a product.
type Style string

// Known styles.
const (
	StyleCasual     Style = "casual"
	StyleFormal     Style = "formal"
	StyleAthletic   Style = "athletic"
	StyleBohemian   Style = "bohemian"
	StyleVintage    Style = "vintage"
	StyleStreetwear Style = "streetwear"
	StyleMinimalist Style = "minimalist"
)

// Styles lists every style value.
var Styles = []Style{
	StyleCasual, StyleFormal, StyleAthletic, StyleBohemian,
	StyleVintage, StyleStreetwear, StyleMinimalist,
}

// Fit is the cut of a garment.
type Fit string

// Known fits.
const (
	FitOversized Fit = "oversized"
	FitSlim      Fit = "slim"
	FitRegular   Fit = "regular"
)

// Fits lists every fit value.
var Fits = []Fit{FitOversized, FitSlim, FitRegular}

// PriceRange is the discrete price band of a product.
type PriceRange string

// Known price ranges.
const (
	PriceUnknown  PriceRange = "unknown"
	PriceBudget   PriceRange = "budget"
	PriceMidRange PriceRange = "mid-range"
	PricePremium  PriceRange = "premium"
	PriceLuxury   PriceRange = "luxury"
)

// PriceRanges lists every price range value.
var PriceRanges = []PriceRange{PriceUnknown, PriceBudget, PriceMidRange, PricePremium, PriceLuxury}

// SubcategoryOther is used when no subcategory keyword matches.
const SubcategoryOther = "other"

// Columns is the fixed column order of the unified catalog.
var Columns = []string{
	"id", "name", "brand", "category", "subcategory", "color",
	"price", "image_url", "product_url", "style", "fit", "price_range",
}

// Product is the canonical, schema-consistent record of one catalog item.
type Product struct {
	Price       *float64   `json:"price"`
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Brand       string     `json:"brand"`
	Category    Category   `json:"category"`
	Subcategory string     `json:"subcategory"`
	Color       string     `json:"color"`
	ImageURL    string     `json:"image_url"`
	ProductURL  string     `json:"product_url"`
	Style       Style      `json:"style"`
	Fit         Fit        `json:"fit"`
	PriceRange  PriceRange `json:"price_range"`

	// RawPrice is the price cell as read from the source, before cleanup.
	RawPrice string `json:"-"`
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}

	return false
}

// IsValid reports whether s is a known style.
func (s Style) IsValid() bool {
	for _, v := range Styles {
		if v == s {
			return true
		}
	}

	return false
}

// IsValid reports whether f is a known fit.
func (f Fit) IsValid() bool {
	for _, v := range Fits {
		if v == f {
			return true
		}
	}

	return false
}

// IsValid reports whether r is a known price range.
func (r PriceRange) IsValid() bool {
	for _, v := range PriceRanges {
		if v == r {
			return true
		}
	}

	return false
}
