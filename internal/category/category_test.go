package category

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		description string
		expected    string
	}{
		{"IFOOD *RESTAURANTE BOM", "Alimentação"},
		{"POSTO SHELL", "Combustível"},
		{"Uber *Trip", "Transporte"},
		{"NETFLIX.COM", "Assinaturas"},
		{"AMAZON PRIME BR", "Assinaturas"},
		{"AMAZON MARKETPLACE", "Compras"},
		{"DROGARIA SAO PAULO", "Saúde"},
		{"SMART FIT CENTRO", "Academia"},
		{"PORTO SEGURO AUTO", "Seguros"},
		{"LOJA DESCONHECIDA LTDA", "Other"},
		{"", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			if got := Categorize(tt.description); got != tt.expected {
				t.Errorf("Categorize(%q) = %q, want %q", tt.description, got, tt.expected)
			}
		})
	}
}

func TestFirstMatchWins(t *testing.T) {
	// "POSTO UBER" contains both a fuel and a transport keyword; the fuel
	// rule comes first in the table and must take precedence.
	if got := Categorize("POSTO UBER CENTER"); got != "Combustível" {
		t.Errorf("got %q, want Combustível", got)
	}
}
