// Package writer exports the canonical transaction table as CSV, for
// users who want the flat data instead of the report workbook.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/faturatools/fatura-processor/internal/models"
)

// CSVWriter writes the canonical transaction table in CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the statement to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, stmt *models.Statement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, stmt)
}

// Write writes the statement in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, stmt *models.Statement) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	// Write metadata as comment rows
	if w.IncludeHeader {
		if stmt.Bank != "" {
			writer.Write([]string{"# Banco", string(stmt.Bank)})
		}
		if stmt.CardholderName != "" {
			writer.Write([]string{"# Titular", stmt.CardholderName})
		}
		if stmt.CardLast4 != "" {
			writer.Write([]string{"# Final do Cartão", stmt.CardLast4})
		}
	}

	// Write column headers
	header := []string{"Data", "Nome no Cartão", "Final do Cartão", "Categoria", "Descrição", "Parcela", "Valor BRL"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write transaction rows
	for _, txn := range stmt.Transactions {
		date := ""
		if txn.Date != nil {
			date = txn.Date.Format("02/01/2006")
		}
		row := []string{
			date,
			txn.CardholderName,
			txn.CardLast4,
			txn.Category,
			txn.Description,
			txn.InstallmentLabel,
			formatAmount(txn.Amount),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

// formatAmount renders a parsed amount; unparsed amounts stay empty
// rather than becoming zero.
func formatAmount(amount *float64) string {
	if amount == nil {
		return ""
	}
	return strconv.FormatFloat(*amount, 'f', 2, 64)
}
