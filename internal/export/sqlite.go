package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"swipecatalog/internal/models"
)

// SQLiteTable is the table the catalog is written to.
const SQLiteTable = "products"

// WriteSQLite replaces the database at path with a products table holding the catalog.
func WriteSQLite(ctx context.Context, path string, products []models.Product) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	_ = os.Remove(path)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite: %w", err)
	}
	defer db.Close()

	defs := make([]string, 0, len(models.Columns))
	quoted := make([]string, 0, len(models.Columns))

	for _, c := range models.Columns {
		t := "TEXT"
		if c == "price" {
			t = "REAL"
		}

		defs = append(defs, fmt.Sprintf("%q %s", c, t))
		quoted = append(quoted, fmt.Sprintf("%q", c))
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE %q (%s)`, SQLiteTable, strings.Join(defs, ","))); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	ph := strings.TrimRight(strings.Repeat("?,", len(models.Columns)), ",")

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %q (%s) VALUES (%s)`, SQLiteTable, strings.Join(quoted, ","), ph))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range products {
		var price any
		if p.Price != nil {
			price = *p.Price
		}

		if _, err := stmt.ExecContext(ctx,
			p.ID, p.Name, p.Brand, string(p.Category), p.Subcategory, p.Color,
			price, p.ImageURL, p.ProductURL, string(p.Style), string(p.Fit), string(p.PriceRange),
		); err != nil {
			return fmt.Errorf("failed to insert %s: %w", p.ID, err)
		}
	}

	for _, idx := range []string{
		`CREATE INDEX IF NOT EXISTS idx_products_id ON products(id)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)`,
		`CREATE INDEX IF NOT EXISTS idx_products_brand ON products(brand)`,
		`CREATE INDEX IF NOT EXISTS idx_products_price_range ON products(price_range)`,
	} {
		if _, err := tx.ExecContext(ctx, idx); err != nil {
			return err
		}
	}

	return tx.Commit()
}
