package models

import "strings"

// RawRecord is one row of a retailer feed keyed by that retailer's column names.
type RawRecord map[string]string

// Lookup returns the trimmed cell value. Missing columns, blank cells and
// spreadsheet null markers are all reported as absent.
func (r RawRecord) Lookup(column string) (string, bool) {
	v, ok := r[column]
	if !ok {
		return "", false
	}

	v = strings.TrimSpace(v)
	if isNullMarker(v) {
		return "", false
	}

	return v, true
}

// Get returns the cell value or an empty string when absent.
func (r RawRecord) Get(column string) string {
	v, _ := r.Lookup(column)
	return v
}

func isNullMarker(v string) bool {
	switch strings.ToLower(v) {
	case "", "nan", "null", "none", "n/a":
		return true
	}

	return false
}
