// Package parser converts bank statement files into canonical statements.
package parser

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/faturatools/fatura-processor/internal/models"
)

// Parser defines the interface for bank statement parsers.
type Parser interface {
	// Parse takes the uploaded file bytes and returns the canonical statement.
	Parse(data []byte) (*models.Statement, error)
	// BankName returns the human-readable bank name.
	BankName() string
}

// New returns the appropriate parser for the given bank type.
func New(bankType models.BankType) (Parser, error) {
	switch bankType {
	case models.BankC6:
		return &C6Parser{}, nil
	case models.BankNubank:
		return &NubankParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported bank type: %q", bankType)
	}
}

// DetectBank identifies the statement source from the file bytes,
// falling back to the filename extension.
func DetectBank(data []byte, filename string) (models.BankType, error) {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return models.BankNubank, nil
	}
	// xlsx files are zip archives.
	if bytes.HasPrefix(data, []byte("PK\x03\x04")) {
		return models.BankC6, nil
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return models.BankNubank, nil
	case ".xlsx", ".xlsm":
		return models.BankC6, nil
	}

	return "", fmt.Errorf("could not detect statement format from content or filename %q; expected a C6 .xlsx export or a Nubank .pdf statement", filename)
}
