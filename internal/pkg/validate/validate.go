// Package validate holds small input checks shared by the registry layers.
package validate

import "strings"

// Required reports whether the value carries anything beyond whitespace.
func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}
