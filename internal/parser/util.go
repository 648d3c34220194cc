package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Portuguese month names and abbreviations, keyed by three-letter prefix.
var ptMonths = map[string]time.Month{
	"jan": time.January, "fev": time.February, "mar": time.March,
	"abr": time.April, "mai": time.May, "jun": time.June,
	"jul": time.July, "ago": time.August, "set": time.September,
	"out": time.October, "nov": time.November, "dez": time.December,
}

// Date token patterns found in Brazilian card statements.
var (
	// "05 Jan", "5 de janeiro", "05 JAN 2024"
	dateTokenText = regexp.MustCompile(`(?i)^(\d{1,2})\s+(?:de\s+)?([a-zç]{3,})\.?(?:\s+(?:de\s+)?(\d{2,4}))?$`)
	// "05/01", "5/1/24", "05/01/2024"
	dateTokenNumeric = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?$`)
)

// parseDateToken parses a statement date token: "D MonthName[ Year]" with
// Portuguese month names, or "D/M[/YY[YY]]". A missing year defaults to
// the current calendar year; two-digit years are expanded by adding 2000.
// Returns nil when the token is not a date.
func parseDateToken(token string) *time.Time {
	token = strings.TrimSpace(token)

	if m := dateTokenText.FindStringSubmatch(token); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, ok := ptMonths[strings.ToLower(m[2])[:3]]
		if !ok || day < 1 || day > 31 {
			return nil
		}
		return buildDate(day, int(month), expandYear(m[3]))
	}

	if m := dateTokenNumeric.FindStringSubmatch(token); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if day < 1 || day > 31 || month < 1 || month > 12 {
			return nil
		}
		return buildDate(day, month, expandYear(m[3]))
	}

	return nil
}

func expandYear(raw string) int {
	if raw == "" {
		return time.Now().Year()
	}
	y, err := strconv.Atoi(raw)
	if err != nil {
		return time.Now().Year()
	}
	if y < 100 {
		y += 2000
	}
	return y
}

func buildDate(day, month, year int) *time.Time {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Reject overflowed dates like 31/02.
	if d.Day() != day || int(d.Month()) != month {
		return nil
	}
	return &d
}

// Spreadsheet cell date formats tried in order.
var cellDateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/06",
	"2006-01-02",
	"02-01-2006",
	"01-02-06", // excelize's default short-date rendering
}

// parseCellDate parses a spreadsheet date cell. Returns nil on failure;
// a bad date is never fatal.
func parseCellDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, layout := range cellDateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return &d
		}
	}
	return parseDateToken(s)
}

// installmentSuffix matches an "N/M" marker (optionally prefixed with
// "Parcela" or separated by a dash) at the end of a description.
var installmentSuffix = regexp.MustCompile(`(?i)(?:\s*[-–]\s*|\s+)(?:parcela\s+)?(\d{1,2}\s*/\s*\d{1,3})\s*$`)

// splitInstallmentSuffix strips a trailing installment marker from the
// description, returning the cleaned description and the "N/M" label
// (empty when the description carries no marker).
func splitInstallmentSuffix(description string) (cleaned, label string) {
	m := installmentSuffix.FindStringSubmatchIndex(description)
	if m == nil {
		return strings.TrimSpace(description), ""
	}
	label = strings.ReplaceAll(description[m[2]:m[3]], " ", "")
	cleaned = strings.TrimSpace(description[:m[0]])
	if cleaned == "" {
		// The whole text was the marker; keep it as description.
		return strings.TrimSpace(description), ""
	}
	return cleaned, label
}
