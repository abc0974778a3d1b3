// Package export writes the unified catalog to CSV, JSON and SQLite.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"swipecatalog/internal/models"
)

// FormatPrice renders a price the same way in every output; nil is "".
func FormatPrice(price *float64) string {
	if price == nil {
		return ""
	}

	return strconv.FormatFloat(*price, 'f', -1, 64)
}

// Row returns the product's cells in models.Columns order.
func Row(p models.Product) []string {
	return []string{
		p.ID, p.Name, p.Brand, string(p.Category), p.Subcategory, p.Color,
		FormatPrice(p.Price), p.ImageURL, p.ProductURL, string(p.Style), string(p.Fit), string(p.PriceRange),
	}
}

// EncodeCSV writes the header and one row per product.
func EncodeCSV(w io.Writer, products []models.Product) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(models.Columns); err != nil {
		return err
	}

	for _, p := range products {
		if err := cw.Write(Row(p)); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// jsonProduct keeps the column order of the CSV and renders a missing price as "".
type jsonProduct struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Color       string `json:"color"`
	Price       any    `json:"price"`
	ImageURL    string `json:"image_url"`
	ProductURL  string `json:"product_url"`
	Style       string `json:"style"`
	Fit         string `json:"fit"`
	PriceRange  string `json:"price_range"`
}

func toJSON(p models.Product) jsonProduct {
	var price any = ""
	if p.Price != nil {
		price = *p.Price
	}

	return jsonProduct{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    string(p.Category),
		Subcategory: p.Subcategory,
		Color:       p.Color,
		Price:       price,
		ImageURL:    p.ImageURL,
		ProductURL:  p.ProductURL,
		Style:       string(p.Style),
		Fit:         string(p.Fit),
		PriceRange:  string(p.PriceRange),
	}
}

// EncodeJSON writes the products as one JSON array.
func EncodeJSON(w io.Writer, products []models.Product, pretty bool) error {
	out := make([]jsonProduct, 0, len(products))
	for _, p := range products {
		out = append(out, toJSON(p))
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if pretty {
		enc.SetIndent("", "  ")
	}

	return enc.Encode(out)
}

// WriteCSV writes the catalog to path, creating parent directories.
func WriteCSV(path string, products []models.Product) error {
	return writeFile(path, func(w io.Writer) error { return EncodeCSV(w, products) })
}

// WriteJSON writes the catalog to path, creating parent directories.
func WriteJSON(path string, products []models.Product, pretty bool) error {
	return writeFile(path, func(w io.Writer) error { return EncodeJSON(w, products, pretty) })
}

func writeFile(path string, encode func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return f.Close()
}
