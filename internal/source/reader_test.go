package source

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	input := "\ufeffname , price,color\n\"Tie Front Top, White\",\"$1,299.00\",white\nShort Row\n"

	header, rows, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}

	if len(header) != 3 || header[0] != "name" || header[1] != "price" {
		t.Fatalf("header = %q", header)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	if got := rows[0].Get("name"); got != "Tie Front Top, White" {
		t.Errorf("name = %q", got)
	}

	if got := rows[0].Get("price"); got != "$1,299.00" {
		t.Errorf("price = %q", got)
	}

	if _, ok := rows[1]["price"]; ok {
		t.Error("short row should not carry trailing columns")
	}
}

func TestParseCSV_Empty(t *testing.T) {
	if _, _, err := ParseCSV(strings.NewReader("")); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("Expected ErrEmptyFile, got %v", err)
	}
}

func TestLayout_CheckColumns(t *testing.T) {
	l, _ := Lookup("gymshark")

	if err := l.CheckColumns([]string{"product_id", "name", "price"}); err != nil {
		t.Errorf("CheckColumns returned unexpected error: %v", err)
	}

	err := l.CheckColumns([]string{"price"})
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("Expected ErrMissingColumn, got %v", err)
	}

	if !strings.Contains(err.Error(), "product_id, name") {
		t.Errorf("error should list missing columns: %v", err)
	}
}
