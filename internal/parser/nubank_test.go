package parser

import (
	"testing"
	"time"
)

func TestNubankParseLine(t *testing.T) {
	p := &NubankParser{}
	year := time.Now().Year()

	tests := []struct {
		name        string
		line        string
		wantDesc    string
		wantAmount  float64
		wantLabel   string
		wantDay     int
		wantMonth   time.Month
	}{
		{
			"text date positive",
			"05 Jan Uber *Trip 23,50",
			"Uber *Trip", 23.50, "", 5, time.January,
		},
		{
			"payment keyword forces negative",
			"10 Jan Pagamento recebido 150,00",
			"Pagamento recebido", -150.00, "", 10, time.January,
		},
		{
			"explicit minus",
			"12 Fev Estorno de compra -89,90",
			"Estorno de compra", -89.90, "", 12, time.February,
		},
		{
			"numeric date with installment",
			"12/01 Magalu - Parcela 3/10 149,90",
			"Magalu", 149.90, "3/10", 12, time.January,
		},
		{
			"installment without parcela word",
			"03/02 Casas Bahia 2/6 99,90",
			"Casas Bahia", 99.90, "2/6", 3, time.February,
		},
		{
			"thousands separator",
			"20 Mar Passagem aérea 1.234,56",
			"Passagem aérea", 1234.56, "", 20, time.March,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, ok := p.parseLine(tt.line)
			if !ok {
				t.Fatalf("parseLine(%q) did not match", tt.line)
			}
			if txn.Description != tt.wantDesc {
				t.Errorf("description = %q, want %q", txn.Description, tt.wantDesc)
			}
			if txn.Amount == nil || *txn.Amount != tt.wantAmount {
				t.Errorf("amount = %v, want %v", txn.Amount, tt.wantAmount)
			}
			if txn.InstallmentLabel != tt.wantLabel {
				t.Errorf("installment label = %q, want %q", txn.InstallmentLabel, tt.wantLabel)
			}
			if txn.Date == nil {
				t.Fatal("date is nil")
			}
			if txn.Date.Day() != tt.wantDay || txn.Date.Month() != tt.wantMonth || txn.Date.Year() != year {
				t.Errorf("date = %v, want %d %v %d", txn.Date, tt.wantDay, tt.wantMonth, year)
			}
		})
	}
}

func TestNubankParseLineSkips(t *testing.T) {
	p := &NubankParser{}

	nonTransactions := []string{
		"",
		"FATURA DE JANEIRO",
		"Limite total R$ 5.000,00",
		"05 Jan",              // date with no amount
		"Uber *Trip 23,50",    // amount with no date
		"TRANSAÇÕES",
	}
	for _, line := range nonTransactions {
		if _, ok := p.parseLine(line); ok {
			t.Errorf("parseLine(%q) matched, want skip", line)
		}
	}
}

func TestNubankLineWithExplicitYear(t *testing.T) {
	p := &NubankParser{}

	txn, ok := p.parseLine("05/01/24 Padaria Central 12,00")
	if !ok {
		t.Fatal("line did not match")
	}
	if txn.Date.Year() != 2024 {
		t.Errorf("two-digit year expanded to %d, want 2024", txn.Date.Year())
	}

	txn, ok = p.parseLine("05 Jan 2023 Padaria Central 12,00")
	if !ok {
		t.Fatal("line with text date and year did not match")
	}
	if txn.Date.Year() != 2023 {
		t.Errorf("year = %d, want 2023", txn.Date.Year())
	}
}

func TestInferCardholder(t *testing.T) {
	pages := []string{
		"NUBANK FATURA\nJOÃO DA SILVA\nLimite R$ 5.000,00\n05 Jan Uber *Trip 23,50",
		"NUBANK FATURA\nJOÃO DA SILVA\n12 Jan Ifood 45,00",
	}

	if got := inferCardholder(pages); got != "João da Silva" {
		t.Errorf("inferCardholder = %q, want %q", got, "João da Silva")
	}
}

func TestInferCardholderFrequencyVote(t *testing.T) {
	// "MARIA SOUZA" appears on two pages, the noise line on one.
	pages := []string{
		"MARIA SOUZA\nCOBRANCA ESPECIAL XYZ",
		"MARIA SOUZA\noutra linha",
	}
	if got := inferCardholder(pages); got != "Maria Souza" {
		t.Errorf("inferCardholder = %q, want %q", got, "Maria Souza")
	}
}

func TestInferCardholderLabeledFallback(t *testing.T) {
	pages := []string{
		"fatura do cartão\nTitular: ana beatriz dos santos\nvencimento 10/02",
	}
	if got := inferCardholder(pages); got != "Ana Beatriz dos Santos" {
		t.Errorf("inferCardholder = %q, want %q", got, "Ana Beatriz dos Santos")
	}
}

func TestInferCardholderDefault(t *testing.T) {
	pages := []string{"fatura\nvencimento 10/02\ntotal 1.000,00"}
	if got := inferCardholder(pages); got != "Nubank" {
		t.Errorf("inferCardholder = %q, want %q", got, "Nubank")
	}
}

func TestIsNameCandidate(t *testing.T) {
	tests := []struct {
		line     string
		expected bool
	}{
		{"JOÃO DA SILVA", true},
		{"MARIA SOUZA", true},
		{"joão da silva", false},  // lowercase majority
		{"NUBANK FATURA", false},  // blacklisted vocabulary
		{"JOSÉ", false},           // single word
		{"AB CD", false},          // too short
		{"LIMITE TOTAL", false},   // blacklisted
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := isNameCandidate(tt.line); got != tt.expected {
				t.Errorf("isNameCandidate(%q) = %v, want %v", tt.line, got, tt.expected)
			}
		})
	}
}

func TestTitleCasePT(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"JOÃO DA SILVA", "João da Silva"},
		{"ANA BEATRIZ DOS SANTOS", "Ana Beatriz dos Santos"},
		{"DE SOUZA LIMA", "De Souza Lima"}, // connector capitalized as first word
		{"PEDRO E MARIA", "Pedro e Maria"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := titleCasePT(tt.input); got != tt.expected {
				t.Errorf("titleCasePT(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInferLast4(t *testing.T) {
	tests := []struct {
		name     string
		pages    []string
		expected string
	}{
		{"masked bullets", []string{"Cartão •••• 4321"}, "4321"},
		{"masked asterisks", []string{"**** **** **** 1234"}, "1234"},
		{"labeled final", []string{"cartão final 5678 mastercard"}, "5678"},
		{"digits at line end", []string{"cartão virtual\nmeu cartao 9876\noutros"}, "9876"},
		{"year is not a card", []string{"fatura de 2024"}, "0000"},
		{"masked year-like digits still win", []string{"Cartão •••• 2045"}, "2045"},
		{"labeled year-like digits still win", []string{"cartão final 2045"}, "2045"},
		{"nothing", []string{"sem cartão aqui"}, "0000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferLast4(tt.pages); got != tt.expected {
				t.Errorf("inferLast4 = %q, want %q", got, tt.expected)
			}
		})
	}
}
