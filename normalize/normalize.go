// Package normalize converts raw, possibly malformed field values from the
// external workbook into canonical typed values. Every function is total:
// malformed input degrades to a neutral default (0, "", or absence) instead
// of returning an error, so dirty rows never take down the rest of the
// pipeline.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// Currency strips everything that is not a decimal digit from the textual
// form of raw and returns the remaining digits as an integer amount.
// Inputs like "₺1.500.000", "1,500,000 TL" or 1500000 all come back as
// 1500000. When no digits remain the result is 0.
func Currency(raw any) int64 {
	digits := digitsOf(raw)
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		// More digits than int64 can hold; treat as unusable.
		return 0
	}
	return n
}

// Phone strips all non-digit characters from the textual form of raw.
// "0 (532) 123-45-67" becomes "05321234567". Empty or digit-free input
// yields "".
func Phone(raw any) string {
	return digitsOf(raw)
}

// Coordinate parses raw as a decimal-degrees value, accepting both the
// decimal comma ("41,28") and the decimal point ("41.28") form. The second
// return value reports whether parsing succeeded; callers use it to filter
// out rows without a usable geographic point.
func Coordinate(raw any) (float64, bool) {
	s := strings.TrimSpace(textOf(raw))
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Text trims leading/trailing whitespace and collapses internal runs of
// whitespace to a single space. Used for lookup-key comparison so that
// "  Deniz  Manzaralı 3+1 " still matches the stored title.
func Text(raw any) string {
	return strings.Join(strings.Fields(textOf(raw)), " ")
}

func textOf(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func digitsOf(raw any) string {
	var b strings.Builder
	for _, r := range textOf(raw) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
