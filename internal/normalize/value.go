// Package normalize holds the locale-aware cell normalizers shared by the
// spreadsheet and PDF extraction paths.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var nonNumeric = regexp.MustCompile(`[^0-9,.\-]`)

// ParseBRL parses a locale-formatted currency cell ("R$ 1.234,56",
// "1234.56", "-23,50") into a signed amount. Returns nil when the cell
// holds no parseable number; callers must treat nil as excluded from
// sums, never as zero.
func ParseBRL(raw string) *float64 {
	s := nonNumeric.ReplaceAllString(strings.TrimSpace(raw), "")
	if s == "" || s == "-" {
		return nil
	}

	commas := strings.Count(s, ",")
	periods := strings.Count(s, ".")
	switch {
	case commas == 1 && periods >= 1:
		// Brazilian layout: periods are thousands separators, comma is decimal.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case commas == 1 && periods == 0:
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

var fourDigits = regexp.MustCompile(`\d{4}`)

// Last4 derives a card's display key from a masked identifier such as
// "**** **** **** 4321". When no 4-digit group exists the raw value's
// last four characters are used as a fallback.
func Last4(raw string) string {
	s := strings.TrimSpace(raw)
	if groups := fourDigits.FindAllString(s, -1); len(groups) > 0 {
		return groups[len(groups)-1]
	}
	r := []rune(s)
	if len(r) > 4 {
		return string(r[len(r)-4:])
	}
	return s
}
