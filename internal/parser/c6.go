package parser

import (
	"fmt"
	"strings"

	"github.com/faturatools/fatura-processor/internal/extractor"
	"github.com/faturatools/fatura-processor/internal/headermatch"
	"github.com/faturatools/fatura-processor/internal/models"
	"github.com/faturatools/fatura-processor/internal/normalize"
)

// C6Parser handles the C6 Bank xlsx statement export.
//
// The export is tolerant to layout drift: the data may sit on any sheet,
// the header row may not be row 1 (banks like to prepend title rows), and
// column names vary between "Descrição", "Estabelecimento" and "Loja".
// Sheet and header-row election both go through the header matcher.
type C6Parser struct{}

// knownSheetName is tried before any sheet scoring.
const knownSheetName = "Transações Originais"

// headerScanRows is how deep into a sheet the header row may sit.
const headerScanRows = 8

func (p *C6Parser) BankName() string {
	return "C6 Bank"
}

func (p *C6Parser) Parse(data []byte) (*models.Statement, error) {
	sheets, err := extractor.ExtractSheets(data)
	if err != nil {
		return nil, err
	}

	sheet := pickSheet(sheets)

	headers, dataRows, err := locateHeader(sheet)
	if err != nil {
		return nil, err
	}

	columns, missing := headermatch.Resolve(headers)
	if len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = string(f)
		}
		return nil, fmt.Errorf("could not resolve required columns [%s] on sheet %q; headers found: [%s]",
			strings.Join(names, ", "), sheet.Name, strings.Join(headers, ", "))
	}

	st := &models.Statement{Bank: models.BankC6}
	for _, row := range dataRows {
		txn, ok := buildRow(row, columns)
		if !ok {
			continue
		}
		st.Transactions = append(st.Transactions, txn)
	}
	return st, nil
}

// pickSheet prefers the known C6 sheet name, then the sheet whose first
// row scores best against the canonical fields. Ties keep workbook order.
func pickSheet(sheets []extractor.SheetGrid) extractor.SheetGrid {
	for _, s := range sheets {
		if s.Name == knownSheetName && len(s.Rows) > 0 {
			return s
		}
	}

	best := sheets[0]
	bestScore := -1
	for _, s := range sheets {
		if len(s.Rows) == 0 {
			continue
		}
		if score := headermatch.Score(s.Rows[0]); score > bestScore {
			best = s
			bestScore = score
		}
	}
	return best
}

// locateHeader finds the true header row. Row 1 is taken when it scores
// well; otherwise the first headerScanRows rows are scanned and the best
// accepted candidate re-headers the sheet, discarding the rows above it.
func locateHeader(sheet extractor.SheetGrid) (headers []string, dataRows [][]string, err error) {
	if len(sheet.Rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %q is empty", sheet.Name)
	}

	if headermatch.Accept(sheet.Rows[0]) {
		return sheet.Rows[0], sheet.Rows[1:], nil
	}

	limit := headerScanRows
	if limit > len(sheet.Rows) {
		limit = len(sheet.Rows)
	}
	ranked := headermatch.Rank(sheet.Rows[:limit])
	top := ranked[0]
	if top.Score >= headermatch.AcceptThreshold {
		return sheet.Rows[top.Index], sheet.Rows[top.Index+1:], nil
	}

	// No acceptable header anywhere — let column resolution on row 1
	// produce the descriptive missing-fields error.
	return sheet.Rows[0], sheet.Rows[1:], nil
}

func buildRow(row []string, columns map[headermatch.Field]int) (models.Transaction, bool) {
	cell := func(f headermatch.Field) string {
		idx, ok := columns[f]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	description, suffixLabel := splitInstallmentSuffix(cell(headermatch.FieldDescription))
	name := cell(headermatch.FieldCardholder)
	if name == "" && description == "" {
		return models.Transaction{}, false // blank filler row
	}

	label := cell(headermatch.FieldInstallment)
	if label == "" {
		label = suffixLabel
	}

	cat := cell(headermatch.FieldCategory)
	if cat == "" {
		cat = "Other"
	}

	txn := models.Transaction{
		CardholderName:   name,
		CardLast4:        normalize.Last4(cell(headermatch.FieldLast4)),
		Category:         cat,
		Description:      description,
		InstallmentLabel: label,
		Amount:           normalize.ParseBRL(cell(headermatch.FieldAmount)),
		Date:             parseCellDate(cell(headermatch.FieldDate)),
	}
	return txn, true
}
