package headermatch

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		expected int
	}{
		{
			"full C6 header",
			[]string{"Nome no Cartão", "Final do Cartão", "Categoria", "Descrição", "Valor BRL"},
			5,
		},
		{
			"shuffled with decorations",
			[]string{"Valor (R$)", "Loja", "Final do Cartão **", "Nome no Cartão", "Categoria"},
			5,
		},
		{
			"only date and amount",
			[]string{"Data", "Valor"},
			1,
		},
		{
			"title row",
			[]string{"Fatura de Março", "", ""},
			0,
		},
		{
			"alternative vocabulary",
			[]string{"Portador", "Final", "Estabelecimento", "Amount"},
			4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.headers); got != tt.expected {
				t.Errorf("Score(%v) = %d, want %d", tt.headers, got, tt.expected)
			}
		})
	}
}

func TestAccept(t *testing.T) {
	if !Accept([]string{"Nome no Cartão", "Final do Cartão", "Categoria", "Descrição", "Valor BRL"}) {
		t.Error("full header row should be accepted")
	}
	if Accept([]string{"Data", "Valor"}) {
		t.Error("two-column row should be rejected (score ≤ 2, threshold 3)")
	}
}

func TestRank(t *testing.T) {
	rows := [][]string{
		{"Resumo da Fatura"},
		{"Data", "Valor"},
		{"Nome no Cartão", "Final do Cartão", "Categoria", "Loja", "Valor BRL"},
		{"Titular", "Final", "Categoria"},
	}

	ranked := Rank(rows)
	if len(ranked) != 4 {
		t.Fatalf("got %d candidates, want 4", len(ranked))
	}
	if ranked[0].Index != 2 {
		t.Errorf("best candidate index = %d, want 2", ranked[0].Index)
	}
	if ranked[0].Score != 5 {
		t.Errorf("best candidate score = %d, want 5", ranked[0].Score)
	}
	if ranked[1].Index != 3 || ranked[1].Score != 3 {
		t.Errorf("second candidate = (%d, %d), want (3, 3)", ranked[1].Index, ranked[1].Score)
	}
}

func TestRankTieKeepsOrder(t *testing.T) {
	rows := [][]string{
		{"Titular", "Categoria", "Valor"},
		{"Portador", "Categoria", "Amount"},
	}
	ranked := Rank(rows)
	if ranked[0].Score != ranked[1].Score {
		t.Fatalf("expected a tie, got scores %d and %d", ranked[0].Score, ranked[1].Score)
	}
	if ranked[0].Index != 0 {
		t.Errorf("tie should keep input order, best index = %d", ranked[0].Index)
	}
}

func TestResolve(t *testing.T) {
	headers := []string{"Data", "Nome no Cartão", "Final do Cartão **", "Categoria", "Loja", "Parcela", "Valor (R$)"}

	columns, missing := Resolve(headers)
	if len(missing) != 0 {
		t.Fatalf("unexpected missing fields: %v", missing)
	}

	want := map[Field]int{
		FieldCardholder:  1,
		FieldLast4:       2,
		FieldCategory:    3,
		FieldDescription: 4,
		FieldAmount:      6,
		FieldDate:        0,
		FieldInstallment: 5,
	}
	for f, idx := range want {
		if columns[f] != idx {
			t.Errorf("columns[%s] = %d, want %d", f, columns[f], idx)
		}
	}
}

func TestResolveMissing(t *testing.T) {
	headers := []string{"Data", "Descrição", "Valor BRL"}

	_, missing := Resolve(headers)
	if len(missing) != 3 {
		t.Fatalf("got %d missing fields, want 3: %v", len(missing), missing)
	}
	wantMissing := map[Field]bool{FieldCardholder: true, FieldLast4: true, FieldCategory: true}
	for _, f := range missing {
		if !wantMissing[f] {
			t.Errorf("unexpected missing field %s", f)
		}
	}
}
