package models

import "time"

// Transaction is one canonical statement row: a purchase, a credit/refund,
// or one installment of a split purchase.
type Transaction struct {
	Date              *time.Time `json:"date,omitempty"`
	CardholderName    string     `json:"cardholderName"`
	CardLast4         string     `json:"cardLast4"`
	Category          string     `json:"category"`
	Description       string     `json:"description"`
	InstallmentLabel  string     `json:"installmentLabel,omitempty"` // "N/M", empty when not an installment
	InstallmentNumber *int       `json:"installmentNumber,omitempty"`
	InstallmentTotal  *int       `json:"installmentTotal,omitempty"`
	Amount            *float64   `json:"amount,omitempty"` // positive = charge, negative = credit/refund
}

// RemainingInstallments returns how many installments are still due after
// this one, floored at zero. ok is false when the row is not an installment.
func (t *Transaction) RemainingInstallments() (remaining int, ok bool) {
	if t.InstallmentNumber == nil || t.InstallmentTotal == nil {
		return 0, false
	}
	r := *t.InstallmentTotal - *t.InstallmentNumber
	if r < 0 {
		r = 0
	}
	return r, true
}

// IsLastInstallment reports whether this row is the final installment.
func (t *Transaction) IsLastInstallment() bool {
	if t.InstallmentNumber == nil || t.InstallmentTotal == nil {
		return false
	}
	return *t.InstallmentNumber >= *t.InstallmentTotal
}

// EstimatedCompletion returns the purchase date shifted forward by the
// remaining installment months, or nil when either input is missing.
func (t *Transaction) EstimatedCompletion() *time.Time {
	remaining, ok := t.RemainingInstallments()
	if !ok || t.Date == nil {
		return nil
	}
	d := t.Date.AddDate(0, remaining, 0)
	return &d
}

// FutureCommitment is the amount still to be billed for this purchase:
// amount times remaining installments, for positive-amount rows only.
func (t *Transaction) FutureCommitment() float64 {
	remaining, ok := t.RemainingInstallments()
	if !ok || remaining == 0 {
		return 0
	}
	if t.Amount == nil || *t.Amount <= 0 {
		return 0
	}
	return *t.Amount * float64(remaining)
}

// BankType identifies a supported statement source format.
type BankType string

const (
	BankC6     BankType = "c6"     // xlsx export
	BankNubank BankType = "nubank" // PDF statement
)

// Statement holds everything extracted from one uploaded file.
// It lives only for the duration of a single report generation.
type Statement struct {
	Bank           BankType
	CardholderName string // statement-level holder (inferred for PDFs)
	CardLast4      string // statement-level card key (inferred for PDFs)
	Transactions   []Transaction
}

// Charges returns the rows with a parsed positive amount.
func (s *Statement) Charges() []Transaction {
	return s.filter(func(v float64) bool { return v > 0 })
}

// Refunds returns the rows with a parsed negative amount.
func (s *Statement) Refunds() []Transaction {
	return s.filter(func(v float64) bool { return v < 0 })
}

func (s *Statement) filter(keep func(float64) bool) []Transaction {
	var out []Transaction
	for _, t := range s.Transactions {
		if t.Amount != nil && keep(*t.Amount) {
			out = append(out, t)
		}
	}
	return out
}

// Sum adds the parsed amounts of the given rows. Rows whose amount failed
// to parse carry a nil amount and are excluded, not counted as zero.
func Sum(txns []Transaction) float64 {
	var total float64
	for _, t := range txns {
		if t.Amount != nil {
			total += *t.Amount
		}
	}
	return total
}
