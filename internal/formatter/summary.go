// Package formatter renders run summaries as aligned plain-text tables.
package formatter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"swipecatalog/internal/models"
)

// Count is one row of a value distribution.
type Count struct {
	Value string
	Count int
}

// Distribution counts the values returned by field across products, most
// frequent first and ties broken alphabetically.
func Distribution(products []models.Product, field func(models.Product) string) []Count {
	counts := map[string]int{}
	for _, p := range products {
		counts[field(p)]++
	}

	out := make([]Count, 0, len(counts))
	for v, n := range counts {
		out = append(out, Count{Value: v, Count: n})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}

		return out[i].Value < out[j].Value
	})

	return out
}

// Summary renders the category, brand, style and price range distributions.
func Summary(products []models.Product) string {
	sections := []struct {
		title string
		field func(models.Product) string
	}{
		{"category", func(p models.Product) string { return string(p.Category) }},
		{"brand", func(p models.Product) string { return p.Brand }},
		{"style", func(p models.Product) string { return string(p.Style) }},
		{"price_range", func(p models.Product) string { return string(p.PriceRange) }},
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Total items: %d\n", len(products))

	for _, s := range sections {
		rows := [][]string{}
		for _, c := range Distribution(products, s.field) {
			rows = append(rows, []string{c.Value, strconv.Itoa(c.Count)})
		}

		sb.WriteString("\n")
		sb.WriteString(strings.Join(Table([]string{s.title, "count"}, rows), "\n"))
		sb.WriteString("\n")
	}

	return sb.String()
}

// Table lays out header and rows as a pipe table padded to display width.
func Table(header []string, rows [][]string) []string {
	colCount := len(header)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	colWidths := make([]int, colCount)

	for _, row := range append([][]string{header}, rows...) {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	// Ensure min width for separator "---"
	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	separator := make([]string, colCount)
	for i, w := range colWidths {
		separator[i] = strings.Repeat("-", w)
	}

	result := []string{renderRow(header, colWidths), renderRow(separator, colWidths)}
	for _, row := range rows {
		result = append(result, renderRow(row, colWidths))
	}

	return result
}

func renderRow(row []string, colWidths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, width := range colWidths {
		content := ""
		if j < len(row) {
			content = row[j]
		}

		sb.WriteString(" ")
		sb.WriteString(runewidth.FillRight(content, width))
		sb.WriteString(" |")
	}

	return sb.String()
}
