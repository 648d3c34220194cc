// Package installment parses "N/M" installment markers and fills in the
// derived installment metadata on canonical transactions.
package installment

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/faturatools/fatura-processor/internal/models"
)

// labelPattern accepts "3/10", "Parcela 3/10" and "3 de 10" style labels.
var labelPattern = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)$`)

// Parse extracts the current/total counts from an installment label.
// ok is false for labels that do not carry an N/M marker; malformed
// labels degrade, they never raise.
func Parse(label string) (number, total int, ok bool) {
	s := strings.TrimSpace(strings.ToLower(label))
	s = strings.TrimSpace(strings.TrimPrefix(s, "parcela"))
	s = strings.Replace(s, " de ", "/", 1)

	m := labelPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	number, err1 := strconv.Atoi(m[1])
	total, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil || number <= 0 || total <= 0 {
		return 0, 0, false
	}
	return number, total, true
}

// Enrich fills InstallmentNumber and InstallmentTotal from the row's
// label. Rows without a parseable label keep all-nil installment fields.
// number > total is accepted as-is: remaining clamps to zero and the row
// counts as a final installment.
func Enrich(t *models.Transaction) {
	number, total, ok := Parse(t.InstallmentLabel)
	if !ok {
		t.InstallmentNumber = nil
		t.InstallmentTotal = nil
		return
	}
	t.InstallmentNumber = &number
	t.InstallmentTotal = &total
}
