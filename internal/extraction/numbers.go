package extraction

import (
	"strconv"
	"strings"
)

// ParseNumeric normalizes numeric text to a plain number: currency symbols
// and thousands separators are stripped, a parenthesized value is negative,
// and a trailing percent sign divides by 100 so ratios are stored as
// decimals ("98%" becomes 0.98). Returns false for unparseable input.
func ParseNumeric(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	percent := false
	if strings.HasSuffix(s, "%") {
		percent = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}

	for _, symbol := range []string{"$", "€", "£", ","} {
		s = strings.ReplaceAll(s, symbol, "")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	if negative {
		value = -value
	}
	if percent {
		value /= 100
	}
	return value, true
}
