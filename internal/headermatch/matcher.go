// Package headermatch locates the real data inside arbitrarily laid out
// spreadsheets. Both sheet selection and header-row detection reduce to
// the same scoring question: how many of the canonical fields does a
// candidate list of headers cover?
package headermatch

import (
	"strings"

	"github.com/faturatools/fatura-processor/internal/normalize"
)

// Field names a canonical column of the transaction schema.
type Field string

const (
	FieldCardholder  Field = "Nome no Cartão"
	FieldLast4       Field = "Final do Cartão"
	FieldCategory    Field = "Categoria"
	FieldDescription Field = "Descrição"
	FieldAmount      Field = "Valor BRL"
	FieldDate        Field = "Data"    // optional
	FieldInstallment Field = "Parcela" // optional
)

// Required lists the five fields a statement sheet must resolve.
var Required = []Field{FieldCardholder, FieldLast4, FieldCategory, FieldDescription, FieldAmount}

// Optional fields are resolved when present but never block acceptance.
var Optional = []Field{FieldDate, FieldInstallment}

// fieldTokens maps each field to its alternative token sets. A header
// matches a field when every token of at least one alternative is a
// substring of the normalized header.
var fieldTokens = map[Field][][]string{
	FieldCardholder:  {{"nome", "cartao"}, {"portador"}, {"titular"}},
	FieldLast4:       {{"final", "cartao"}, {"final"}},
	FieldCategory:    {{"categoria"}, {"category"}},
	FieldDescription: {{"descricao"}, {"estabelecimento"}, {"loja"}, {"merchant"}},
	FieldAmount:      {{"valor"}, {"amount"}},
	FieldDate:        {{"data"}, {"date"}},
	FieldInstallment: {{"parcela"}},
}

// AcceptThreshold is the minimum score for a row to count as a header row.
const AcceptThreshold = 3

// MatchField reports whether a raw header resolves to the given field.
func MatchField(header string, f Field) bool {
	return matchNormalized(normalize.Header(header), f)
}

func matchNormalized(norm string, f Field) bool {
	if norm == "" {
		return false
	}
	for _, alt := range fieldTokens[f] {
		all := true
		for _, tok := range alt {
			if !strings.Contains(norm, tok) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// Score counts how many of the five required fields have at least one
// matching header in the candidate list (0–5).
func Score(headers []string) int {
	normed := make([]string, len(headers))
	for i, h := range headers {
		normed[i] = normalize.Header(h)
	}
	score := 0
	for _, f := range Required {
		for _, n := range normed {
			if matchNormalized(n, f) {
				score++
				break
			}
		}
	}
	return score
}

// Accept reports whether a candidate row scores well enough to be taken
// as the true header row.
func Accept(headers []string) bool {
	return Score(headers) >= AcceptThreshold
}

// Candidate is one scored header-row (or sheet first-row) candidate.
type Candidate struct {
	Index   int
	Score   int
	Headers []string
}

// Rank scores every candidate row and returns them ordered best-first.
// Ties keep input order, so the first of equally scored candidates wins.
func Rank(rows [][]string) []Candidate {
	candidates := make([]Candidate, 0, len(rows))
	for i, row := range rows {
		candidates = append(candidates, Candidate{Index: i, Score: Score(row), Headers: row})
	}
	// Insertion sort keeps the ordering stable for equal scores.
	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && candidates[j].Score > candidates[j-1].Score; j-- {
			candidates[j], candidates[j-1] = candidates[j-1], candidates[j]
		}
	}
	return candidates
}

// Resolve maps every canonical field to the index of its first matching
// header. Missing required fields are returned separately so the caller
// can build a descriptive error.
func Resolve(headers []string) (columns map[Field]int, missing []Field) {
	normed := make([]string, len(headers))
	for i, h := range headers {
		normed[i] = normalize.Header(h)
	}

	columns = make(map[Field]int)
	resolve := func(f Field) bool {
		for i, n := range normed {
			if _, taken := columnTaken(columns, i); taken {
				continue
			}
			if matchNormalized(n, f) {
				columns[f] = i
				return true
			}
		}
		return false
	}

	for _, f := range Required {
		if !resolve(f) {
			missing = append(missing, f)
		}
	}
	for _, f := range Optional {
		resolve(f)
	}
	return columns, missing
}

func columnTaken(columns map[Field]int, idx int) (Field, bool) {
	for f, i := range columns {
		if i == idx {
			return f, true
		}
	}
	return "", false
}
