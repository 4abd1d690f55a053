// backend/utils/normalize.go
package utils

import "strings"

// NormalizePlate uppercases a plate and strips spaces and dashes, so
// "abc-123-d" and "ABC 123 D" compare equal.
func NormalizePlate(plate string) string {
	upper := strings.ToUpper(strings.TrimSpace(plate))
	upper = strings.ReplaceAll(upper, "-", "")
	upper = strings.ReplaceAll(upper, " ", "")
	return upper
}

// NormalizeEconomicNumber trims whitespace and drops a trailing ".0" left over
// from spreadsheet cells that stored the number as a float.
func NormalizeEconomicNumber(num string) string {
	trimmed := strings.TrimSpace(num)
	trimmed = strings.TrimSuffix(trimmed, ".0")
	return trimmed
}
