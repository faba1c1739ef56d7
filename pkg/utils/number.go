package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToInt parses a loosely formatted count ("1,200", " 45 "). Returns nil
// on any non-numeric input, never an error.
func ToInt(s string) *int {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if cleaned == "" {
		return nil
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return nil
	}
	return &n
}

// ToDecimal parses a loosely formatted currency amount. Currency symbols
// and thousands separators are stripped; an informal "m"/"M" suffix
// expands to millions ("€2.5M" -> 2500000). Returns nil on parse failure.
func ToDecimal(s string) *float64 {
	cleaned := strings.TrimSpace(s)
	for _, sym := range []string{"€", "$", ","} {
		cleaned = strings.ReplaceAll(cleaned, sym, "")
	}
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil
	}

	multiplier := 1.0
	if strings.HasSuffix(cleaned, "m") || strings.HasSuffix(cleaned, "M") {
		multiplier = 1_000_000
		cleaned = strings.TrimSpace(cleaned[:len(cleaned)-1])
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	v *= multiplier
	return &v
}

// FormatCurrency renders an amount as a euro string with dots as
// thousands separators ("€2.000.000").
func FormatCurrency(amount float64) string {
	whole := strconv.FormatInt(int64(amount), 10)
	negative := strings.HasPrefix(whole, "-")
	if negative {
		whole = whole[1:]
	}

	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s€%s", sign, b.String())
}
