// Package pipeline turns raw statement bytes into the canonical table
// and the aggregates the report is built from.
package pipeline

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/faturatools/fatura-processor/internal/category"
	"github.com/faturatools/fatura-processor/internal/installment"
	"github.com/faturatools/fatura-processor/internal/models"
	"github.com/faturatools/fatura-processor/internal/parser"
)

// Summary holds the statement-level totals.
type Summary struct {
	TotalCharges float64 `json:"totalCharges"`
	TotalRefunds float64 `json:"totalRefunds"` // negative or zero
	NetTotal     float64 `json:"netTotal"`
}

// Result is the processed statement plus everything the report consumes.
type Result struct {
	Statement *models.Statement

	Charges []models.Transaction
	Refunds []models.Transaction
	Summary Summary

	// ByCard* aggregate positive spend keyed by card last-4.
	ByCardTotal    map[string]float64
	ByCardMerchant map[string]map[string]float64
	ByCardCategory map[string]map[string]float64
	ByMerchant     map[string]float64

	// CardHolders maps each last-4 to the holder name seen on its
	// highest positive charge.
	CardHolders map[string]string

	// ActiveInstallments are the rows with installments still due.
	ActiveInstallments []models.Transaction
}

// Build parses the statement bytes with the parser for the given bank and
// derives the canonical table and its aggregates.
func Build(data []byte, bank models.BankType, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	p, err := parser.New(bank)
	if err != nil {
		return nil, err
	}

	stmt, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s statement: %w", p.BankName(), err)
	}

	for i := range stmt.Transactions {
		t := &stmt.Transactions[i]
		// Spreadsheet rows carry their own category column; PDF rows
		// are categorized from the merchant text.
		if stmt.Bank == models.BankNubank || t.Category == "" {
			t.Category = category.Categorize(t.Description)
		}
		installment.Enrich(t)
	}

	res := aggregate(stmt)

	logger.Info("statement processed",
		"bank", string(stmt.Bank),
		"transactions", len(stmt.Transactions),
		"charges", len(res.Charges),
		"refunds", len(res.Refunds),
		"activeInstallments", len(res.ActiveInstallments),
	)
	return res, nil
}

func aggregate(stmt *models.Statement) *Result {
	res := &Result{
		Statement:      stmt,
		Charges:        stmt.Charges(),
		Refunds:        stmt.Refunds(),
		ByCardTotal:    map[string]float64{},
		ByCardMerchant: map[string]map[string]float64{},
		ByCardCategory: map[string]map[string]float64{},
		ByMerchant:     map[string]float64{},
		CardHolders:    map[string]string{},
	}

	res.Summary.TotalCharges = models.Sum(res.Charges)
	res.Summary.TotalRefunds = models.Sum(res.Refunds)
	res.Summary.NetTotal = models.Sum(stmt.Transactions)

	topCharge := map[string]float64{}
	for _, t := range res.Charges {
		card := t.CardLast4
		res.ByCardTotal[card] += *t.Amount
		res.ByMerchant[t.Description] += *t.Amount

		if res.ByCardMerchant[card] == nil {
			res.ByCardMerchant[card] = map[string]float64{}
		}
		res.ByCardMerchant[card][t.Description] += *t.Amount

		if res.ByCardCategory[card] == nil {
			res.ByCardCategory[card] = map[string]float64{}
		}
		res.ByCardCategory[card][t.Category] += *t.Amount

		if t.CardholderName != "" && *t.Amount > topCharge[card] {
			topCharge[card] = *t.Amount
			res.CardHolders[card] = t.CardholderName
		}
	}

	for _, t := range stmt.Transactions {
		if remaining, ok := t.RemainingInstallments(); ok && remaining > 0 {
			res.ActiveInstallments = append(res.ActiveInstallments, t)
		}
	}

	return res
}

// Cards returns the card last-4 keys in ascending order.
func (r *Result) Cards() []string {
	cards := make([]string, 0, len(r.ByCardTotal))
	for card := range r.ByCardTotal {
		cards = append(cards, card)
	}
	sort.Strings(cards)
	return cards
}

// HolderFor returns the inferred cardholder for a card, falling back to
// the statement-level holder.
func (r *Result) HolderFor(card string) string {
	if name, ok := r.CardHolders[card]; ok {
		return name
	}
	return r.Statement.CardholderName
}
