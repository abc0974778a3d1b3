package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"swipecatalog/internal/models"
)

// ErrEmptyFile is returned for a feed with no header row.
var ErrEmptyFile = errors.New("feed has no header row")

const utf8BOM = "\ufeff"

// ReadCSV loads a feed file. Short rows simply lack the trailing columns.
func ReadCSV(path string) ([]string, []models.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return ParseCSV(f)
}

// ParseCSV reads a header row followed by data rows from r.
func ParseCSV(r io.Reader) ([]string, []models.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrEmptyFile
	}

	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse header: %w", err)
	}

	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
	}

	var rows []models.RawRecord

	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse row: %w", err)
		}

		rec := make(models.RawRecord, len(header))
		for i, col := range header {
			if i < len(fields) {
				rec[col] = fields[i]
			}
		}

		rows = append(rows, rec)
	}

	return header, rows, nil
}
