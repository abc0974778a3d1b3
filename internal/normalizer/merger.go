package normalizer

import (
	"errors"

	"swipecatalog/internal/models"
)

// ErrNoRecords is returned when there is nothing to merge.
var ErrNoRecords = errors.New("no source produced any records")

// Merge concatenates source batches in the order given. Records are copied as-is
// and never deduplicated.
func Merge(batches ...[]models.Product) ([]models.Product, error) {
	total := 0
	for _, b := range batches {
		total += len(b)
	}

	if total == 0 {
		return nil, ErrNoRecords
	}

	merged := make([]models.Product, 0, total)
	for _, b := range batches {
		merged = append(merged, b...)
	}

	return merged, nil
}
