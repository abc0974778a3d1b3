// Package utils provides common utility functions.
package utils

import "strings"

// StringHelper provides string utility functions.
type StringHelper struct{}

// NewStringHelper creates a new string helper.
func NewStringHelper() *StringHelper {
	return &StringHelper{}
}

// NormalizeWhitespace replaces runs of whitespace with a single space.
func (s *StringHelper) NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// LastToken returns the final whitespace-delimited word of str.
// Single-word input yields "" since there is nothing trailing the word itself.
func (s *StringHelper) LastToken(str string) string {
	parts := strings.Fields(str)
	if len(parts) < 2 {
		return ""
	}

	return parts[len(parts)-1]
}
