package parser

import (
	"testing"
	"time"
)

func TestParseDateToken(t *testing.T) {
	year := time.Now().Year()

	tests := []struct {
		input string
		day   int
		month time.Month
		year  int
	}{
		{"05 Jan", 5, time.January, year},
		{"5 de janeiro", 5, time.January, year},
		{"12 FEV", 12, time.February, year},
		{"20 março", 20, time.March, year},
		{"05 Jan 2023", 5, time.January, 2023},
		{"5 de dezembro de 2024", 5, time.December, 2024},
		{"05/01", 5, time.January, year},
		{"5/1/24", 5, time.January, 2024},
		{"05/01/2024", 5, time.January, 2024},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseDateToken(tt.input)
			if got == nil {
				t.Fatalf("parseDateToken(%q) = nil", tt.input)
			}
			if got.Day() != tt.day || got.Month() != tt.month || got.Year() != tt.year {
				t.Errorf("parseDateToken(%q) = %v, want %d %v %d", tt.input, got, tt.day, tt.month, tt.year)
			}
		})
	}
}

func TestParseDateTokenRejects(t *testing.T) {
	invalid := []string{
		"",
		"Uber *Trip",
		"32/01",
		"05/13",
		"31/02", // overflows February
		"05 xyz",
		"totalmente 10",
	}
	for _, input := range invalid {
		t.Run(input, func(t *testing.T) {
			if got := parseDateToken(input); got != nil {
				t.Errorf("parseDateToken(%q) = %v, want nil", input, got)
			}
		})
	}
}

func TestParseCellDate(t *testing.T) {
	got := parseCellDate("15/03/2024")
	if got == nil || got.Day() != 15 || got.Month() != time.March || got.Year() != 2024 {
		t.Errorf("parseCellDate(15/03/2024) = %v", got)
	}

	got = parseCellDate("2024-03-15")
	if got == nil || got.Day() != 15 {
		t.Errorf("parseCellDate(2024-03-15) = %v", got)
	}

	if got := parseCellDate("not a date"); got != nil {
		t.Errorf("parseCellDate(not a date) = %v, want nil", got)
	}
	if got := parseCellDate(""); got != nil {
		t.Errorf("parseCellDate(\"\") = %v, want nil", got)
	}
}

func TestSplitInstallmentSuffix(t *testing.T) {
	tests := []struct {
		input       string
		wantCleaned string
		wantLabel   string
	}{
		{"Magalu - Parcela 3/10", "Magalu", "3/10"},
		{"Casas Bahia 2/6", "Casas Bahia", "2/6"},
		{"Shopee Parcela 1/2", "Shopee", "1/2"},
		{"Padaria Central", "Padaria Central", ""},
		{"Uber *Trip", "Uber *Trip", ""},
		{"3/10", "3/10", ""}, // marker alone stays a description
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cleaned, label := splitInstallmentSuffix(tt.input)
			if cleaned != tt.wantCleaned || label != tt.wantLabel {
				t.Errorf("splitInstallmentSuffix(%q) = (%q, %q), want (%q, %q)",
					tt.input, cleaned, label, tt.wantCleaned, tt.wantLabel)
			}
		})
	}
}

func TestDetectBank(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		filename string
		want     string
		wantErr  bool
	}{
		{"pdf magic", []byte("%PDF-1.7 ..."), "fatura.bin", "nubank", false},
		{"xlsx magic", []byte("PK\x03\x04rest"), "fatura.bin", "c6", false},
		{"pdf extension", []byte("unknown"), "fatura.pdf", "nubank", false},
		{"xlsx extension", []byte("unknown"), "fatura.xlsx", "c6", false},
		{"unknown", []byte("unknown"), "fatura.txt", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectBank(tt.data, tt.filename)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("DetectBank = %q, want %q", got, tt.want)
			}
		})
	}
}
