package extract

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount normalizes a locale-formatted currency string like "1,234.56"
// to a number. Empty or unparseable input yields 0: column bucketing can
// route a stray token into an amount field, and that must not reject the row.
func ParseAmount(s string) float64 {
	v, _ := ParseAmountChecked(s)
	return v
}

// ParseAmountChecked is ParseAmount with an explicit validity result, so
// callers can report parse accuracy without changing the default behavior.
func ParseAmountChecked(s string) (float64, bool) {
	clean := strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if clean == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
