package domain

import (
	"strconv"
	"strings"
)

// FormatDecimal writes v in its shortest decimal form with at least one
// fractional digit: 70 -> "70.0", 22.857 -> "22.857". Stored records and
// reports use this form.
func FormatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
