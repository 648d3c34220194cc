package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/faturatools/fatura-processor/internal/extractor"
	"github.com/faturatools/fatura-processor/internal/models"
	"github.com/faturatools/fatura-processor/internal/normalize"
)

// NubankParser handles Nubank credit-card statement PDFs.
//
// Nubank statements are free-text documents, not tables: each transaction
// renders as one line starting with a date token and ending with the
// amount, e.g.
//
//	05 JAN Uber *Trip 23,50
//	12/01 Magalu - Parcela 3/10 149,90
//
// Cardholder name and card last-4 are never labeled per line and have to
// be inferred from the page headers.
type NubankParser struct{}

func (p *NubankParser) BankName() string {
	return "Nubank"
}

// Transaction line patterns, tried in order. The trailing group is the
// amount; the middle group is the free-text description.
var (
	// "05 JAN Uber *Trip 23,50" / "5 de janeiro de 2024 Padaria 12,00"
	nubankTextDateLine = regexp.MustCompile(
		`(?i)^(\d{1,2}\s+(?:de\s+)?(?:jan|fev|mar|abr|mai|jun|jul|ago|set|out|nov|dez)[a-zç]*\.?(?:\s+(?:de\s+)?\d{2,4})?)\s+` +
			`(.+?)\s+(-?\s*(?:R\$\s*)?\d[\d.,]*[,.]\d{2})\s*$`,
	)
	// "05/01 Uber *Trip 23,50" / "05/01/2024 ..."
	nubankNumericDateLine = regexp.MustCompile(
		`^(\d{1,2}/\d{1,2}(?:/\d{2,4})?)\s+` +
			`(.+?)\s+(-?\s*(?:R\$\s*)?\d[\d.,]*[,.]\d{2})\s*$`,
	)
)

// creditKeywords force the amount negative: payments received, refunds,
// reversals and adjustments reduce the invoice.
var creditKeywords = []string{
	"pagamento", "estorno", "devolucao", "devolução", "reembolso",
	"ajuste", "credito", "crédito",
}

func (p *NubankParser) Parse(data []byte) (*models.Statement, error) {
	pages, err := extractor.ExtractText(data)
	if err != nil {
		return nil, err
	}

	st := &models.Statement{
		Bank:           models.BankNubank,
		CardholderName: inferCardholder(pages),
		CardLast4:      inferLast4(pages),
	}

	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			txn, ok := p.parseLine(line)
			if !ok {
				continue // not every line is a transaction
			}
			txn.CardholderName = st.CardholderName
			txn.CardLast4 = st.CardLast4
			st.Transactions = append(st.Transactions, txn)
		}
	}

	// Tabular layout fallback: no line matched the free-text pattern.
	if len(st.Transactions) == 0 {
		st.Transactions = p.parseTables(data, st.CardholderName, st.CardLast4)
	}

	return st, nil
}

// parseLine matches one statement line against the transaction patterns.
func (p *NubankParser) parseLine(line string) (models.Transaction, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return models.Transaction{}, false
	}

	m := nubankTextDateLine.FindStringSubmatch(line)
	if m == nil {
		m = nubankNumericDateLine.FindStringSubmatch(line)
	}
	if m == nil {
		return models.Transaction{}, false
	}

	date := parseDateToken(m[1])
	if date == nil {
		return models.Transaction{}, false
	}

	description, label := splitInstallmentSuffix(strings.TrimSpace(m[2]))
	amount := normalize.ParseBRL(m[3])
	if amount == nil {
		return models.Transaction{}, false
	}
	forceCreditSign(amount, description)

	return models.Transaction{
		Date:             date,
		Description:      description,
		InstallmentLabel: label,
		Amount:           amount,
	}, true
}

// parseTables is the fallback for tabular PDF layouts: first column date,
// second description, last column amount. Rows missing any of the three
// are skipped.
func (p *NubankParser) parseTables(data []byte, holder, last4 string) []models.Transaction {
	tables, err := extractor.ExtractTables(data)
	if err != nil {
		return nil
	}

	var txns []models.Transaction
	for _, page := range tables {
		for _, row := range page {
			if len(row) < 3 {
				continue
			}
			date := parseDateToken(row[0])
			if date == nil {
				continue
			}
			description, label := splitInstallmentSuffix(strings.TrimSpace(row[1]))
			if description == "" {
				continue
			}
			amount := normalize.ParseBRL(row[len(row)-1])
			if amount == nil {
				continue
			}
			forceCreditSign(amount, description)

			txns = append(txns, models.Transaction{
				Date:             date,
				CardholderName:   holder,
				CardLast4:        last4,
				Description:      description,
				InstallmentLabel: label,
				Amount:           amount,
			})
		}
	}
	return txns
}

// forceCreditSign flips a positive amount negative when the description
// carries a payment/refund keyword.
func forceCreditSign(amount *float64, description string) {
	if *amount <= 0 {
		return
	}
	lower := strings.ToLower(description)
	for _, kw := range creditKeywords {
		if strings.Contains(lower, kw) {
			*amount = -*amount
			return
		}
	}
}

// headerScanLines is how many lines from the top of each page are
// considered when hunting for the cardholder name.
const headerScanLines = 12

// nameBlacklist rejects bank and product vocabulary that renders in the
// same uppercase style as the holder name.
var nameBlacklist = []string{
	"nubank", "nu pagamentos", "banco", "fatura", "cartao", "cartão",
	"mastercard", "visa", "limite", "total", "pagamento", "vencimento",
	"ouvidoria", "atendimento", "sac ", "cnpj", "www", "internet",
	"resumo", "lançamento", "lancamento", "proxima", "próxima",
}

// labeledName matches explicit "Titular: NAME" / "Nome: NAME" markers.
var labeledName = regexp.MustCompile(`(?im)^\s*(?:titular|nome)\s*:\s*(.+)$`)

// inferCardholder finds the statement holder's name. Candidates are taken
// from the first lines of every page; the most frequent normalized
// candidate wins (first seen breaks ties). Falls back to a labeled
// pattern, then to the first name-like line anywhere, then to "Nubank".
func inferCardholder(pages []string) string {
	counts := make(map[string]int)
	var order []string

	for _, page := range pages {
		lines := strings.Split(page, "\n")
		limit := headerScanLines
		if limit > len(lines) {
			limit = len(lines)
		}
		for _, line := range lines[:limit] {
			if !isNameCandidate(line) {
				continue
			}
			name := titleCasePT(line)
			if counts[name] == 0 {
				order = append(order, name)
			}
			counts[name]++
		}
	}

	best := ""
	bestCount := 0
	for _, name := range order {
		// Strictly greater keeps first-seen order on ties.
		if counts[name] > bestCount {
			best = name
			bestCount = counts[name]
		}
	}
	if best != "" {
		return best
	}

	allText := strings.Join(pages, "\n")
	if m := labeledName.FindStringSubmatch(allText); m != nil {
		if name := strings.TrimSpace(m[1]); name != "" {
			return titleCasePT(name)
		}
	}

	for _, line := range strings.Split(allText, "\n") {
		if isNameCandidate(line) {
			return titleCasePT(line)
		}
	}

	return "Nubank"
}

// isNameCandidate applies the holder-line heuristics: at least 8
// characters and 2 words, no bank vocabulary, and a majority of the
// letters uppercase (names print in caps on the statement header).
func isNameCandidate(line string) bool {
	line = strings.TrimSpace(line)
	if len([]rune(line)) < 8 {
		return false
	}
	lower := strings.ToLower(line)
	for _, kw := range nameBlacklist {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	if len(strings.Fields(line)) < 2 {
		return false
	}

	letters, upper := 0, 0
	for _, r := range line {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	return letters > 0 && upper*2 > letters
}

// ptConnectors stay lowercase when title-casing a Portuguese name,
// unless they are the first word.
var ptConnectors = map[string]bool{
	"da": true, "de": true, "do": true, "dos": true, "das": true, "e": true,
}

// titleCasePT converts "JOÃO DA SILVA" to "João da Silva".
func titleCasePT(name string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	for i, w := range words {
		if i > 0 && ptConnectors[w] {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// Card last-4 patterns: a masked prefix (bullets or asterisks) followed by
// four digits, a labeled "final 1234", or four digits ending a line.
var (
	maskedLast4  = regexp.MustCompile(`[•*]+\s*(\d{4})\b`)
	labeledLast4 = regexp.MustCompile(`(?i)final\s+(\d{4})\b`)
	lineEndLast4 = regexp.MustCompile(`(?m)\b(\d{4})\s*$`)
)

// inferLast4 finds the card's display key in the statement text.
// Defaults to "0000" when nothing matches.
func inferLast4(pages []string) string {
	allText := strings.Join(pages, "\n")

	if m := maskedLast4.FindStringSubmatch(allText); m != nil {
		return m[1]
	}
	if m := labeledLast4.FindStringSubmatch(allText); m != nil {
		return m[1]
	}
	for _, m := range lineEndLast4.FindAllStringSubmatch(allText, -1) {
		if !looksLikeYear(m[1]) {
			return m[1]
		}
	}
	return "0000"
}

// looksLikeYear guards only the bare line-end fallback: statement headers
// and footers routinely end lines with calendar years ("Fatura de março
// de 2024"), so a group starting 19/20 is read as a year there. Cards
// whose digits happen to start with 19 or 20 still resolve through the
// masked and "final NNNN" patterns above.
func looksLikeYear(s string) bool {
	return strings.HasPrefix(s, "19") || strings.HasPrefix(s, "20")
}
