package util

import "regexp"

// VINs are 17 characters and never contain I, O or Q.
var vinPattern = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)

// IsValidVIN reports whether s is a well-formed vehicle identification
// number. Callers that treat the VIN as optional check for empty first.
func IsValidVIN(s string) bool {
	return vinPattern.MatchString(s)
}
