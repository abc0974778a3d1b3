package normalizer

import (
	"errors"
	"fmt"

	"swipecatalog/internal/models"
)

// Validation errors.
var (
	ErrMissingID     = errors.New("record has no id")
	ErrDuplicateID   = errors.New("duplicate record id")
	ErrInvalidEnum   = errors.New("value outside its enumeration")
	ErrNegativePrice = errors.New("negative price")
)

// Validator checks the invariants of the unified catalog.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks every record and returns all violations joined, or nil.
func (v *Validator) Validate(products []models.Product) error {
	var errs []error

	seen := make(map[string]int, len(products))

	for i, p := range products {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("%w at index %d", ErrMissingID, i))
		} else if first, dup := seen[p.ID]; dup {
			errs = append(errs, fmt.Errorf("%w %q at index %d (first at %d)", ErrDuplicateID, p.ID, i, first))
		} else {
			seen[p.ID] = i
		}

		if !p.Category.IsValid() {
			errs = append(errs, fmt.Errorf("%w: category %q on %s", ErrInvalidEnum, p.Category, p.ID))
		}

		if p.Subcategory == "" {
			errs = append(errs, fmt.Errorf("%w: empty subcategory on %s", ErrInvalidEnum, p.ID))
		}

		if !p.Style.IsValid() {
			errs = append(errs, fmt.Errorf("%w: style %q on %s", ErrInvalidEnum, p.Style, p.ID))
		}

		if !p.Fit.IsValid() {
			errs = append(errs, fmt.Errorf("%w: fit %q on %s", ErrInvalidEnum, p.Fit, p.ID))
		}

		if !p.PriceRange.IsValid() {
			errs = append(errs, fmt.Errorf("%w: price_range %q on %s", ErrInvalidEnum, p.PriceRange, p.ID))
		}

		if p.Price != nil && *p.Price < 0 {
			errs = append(errs, fmt.Errorf("%w on %s", ErrNegativePrice, p.ID))
		}
	}

	return errors.Join(errs...)
}
